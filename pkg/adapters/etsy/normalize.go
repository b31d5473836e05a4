package etsy

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
)

type rawMoney struct {
	Amount  json.RawMessage `json:"amount"`
	Divisor json.RawMessage `json:"divisor"`
}

type rawImage struct {
	URL75x75 *string `json:"url_75x75"`
}

// rawListing mirrors the listing records of the v3 listings endpoints
type rawListing struct {
	ListingID                 int64     `json:"listing_id"`
	Title                     string    `json:"title"`
	ListingType               string    `json:"listing_type"`
	NumFavorers               int64     `json:"num_favorers"`
	Views                     int64     `json:"views"`
	OriginalCreationTimestamp int64     `json:"original_creation_timestamp"`
	LastModifiedTimestamp     int64     `json:"last_modified_timestamp"`
	Quantity                  int64     `json:"quantity"`
	Tags                      []string  `json:"tags"`
	URL                       string    `json:"url"`
	Price                     *rawMoney `json:"price"`
	MainImage                 *rawImage `json:"MainImage"`
}

// Normalize converts raw listing records into domain listings. Order is kept
// and nothing is deduplicated.
func Normalize(raw []rawListing) []domain.Listing {
	listings := make([]domain.Listing, 0, len(raw))
	for _, r := range raw {
		l := domain.Listing{
			ListingID:                 r.ListingID,
			Title:                     r.Title,
			ListingType:               r.ListingType,
			NumFavorers:               r.NumFavorers,
			Views:                     r.Views,
			OriginalCreationTimestamp: r.OriginalCreationTimestamp,
			LastModifiedTimestamp:     r.LastModifiedTimestamp,
			Quantity:                  r.Quantity,
			Tags:                      r.Tags,
			URL:                       r.URL,
			Price:                     price(r.Price),
		}
		if l.Tags == nil {
			l.Tags = []string{}
		}
		if r.MainImage != nil && r.MainImage.URL75x75 != nil {
			l.ImageURL = r.MainImage.URL75x75
		}
		listings = append(listings, l)
	}
	return listings
}

// price is amount / divisor, or 0 when either part is missing or unusable
func price(m *rawMoney) float64 {
	if m == nil {
		return 0
	}
	amount, ok := number(m.Amount)
	if !ok {
		return 0
	}
	divisor, ok := number(m.Divisor)
	if !ok || divisor == 0 {
		return 0
	}
	return amount / divisor
}

// number accepts a JSON number or a numeric string
func number(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
