package domain

import (
	"fmt"
	"time"
)

// DateLayout is the snapshot key format (ISO calendar date)
const DateLayout = "2006-01-02"

// SnapshotWindow is how many daily snapshots are returned for charting
const SnapshotWindow = 7

// TrackedShop binds a user to an Etsy shop
type TrackedShop struct {
	ID          string    `json:"id"` // userId_shopId
	UserID      string    `json:"userId"`
	ShopID      int64     `json:"shop_id"`
	ShopName    string    `json:"shop_name"`
	IconURL     *string   `json:"icon_url"`
	URL         string    `json:"url"`
	LastUpdated time.Time `json:"last_updated"`
}

// ShopSnapshot is one day's capture of a tracked shop's counters
type ShopSnapshot struct {
	Date                 string `json:"date"`
	TransactionSoldCount int64  `json:"sold_count"`
	ListingActiveCount   int64  `json:"active_listing_count"`
	NumFavorers          int64  `json:"favorer_count"`
}

// TrackedShopID builds the composite key of a tracked shop
func TrackedShopID(userID string, shopID int64) string {
	return fmt.Sprintf("%s_%d", userID, shopID)
}

// SnapshotDate returns the snapshot key for the calendar day of t (UTC)
func SnapshotDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// NewSnapshot captures the counters of shop for the day of now
func NewSnapshot(shop *Shop, now time.Time) *ShopSnapshot {
	return &ShopSnapshot{
		Date:                 SnapshotDate(now),
		TransactionSoldCount: shop.TransactionSoldCount,
		ListingActiveCount:   shop.ListingActiveCount,
		NumFavorers:          shop.NumFavorers,
	}
}

// IsStale reports whether the shop was last refreshed before today
func (t *TrackedShop) IsStale(now time.Time) bool {
	return SnapshotDate(t.LastUpdated) < SnapshotDate(now)
}
