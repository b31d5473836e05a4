package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

// TrackerService keeps one snapshot per tracked shop per day. A shop is stale
// once its last refresh falls on an earlier calendar day; refreshing upserts
// today's snapshot, so it can run any number of times per day.
type TrackerService struct {
	source ports.ShopSource
	repo   ports.TrackingRepository
	now    func() time.Time
}

func NewTrackerService(source ports.ShopSource, repo ports.TrackingRepository) *TrackerService {
	return &TrackerService{source: source, repo: repo, now: time.Now}
}

func (s *TrackerService) Track(ctx context.Context, userID, store string) (*domain.TrackedShop, error) {
	store = strings.TrimSpace(store)
	if store == "" {
		return nil, domain.Validation("store name is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: you must be logged in to track a shop", domain.ErrUnauthorized)
	}

	shop, err := s.source.FindShopByName(ctx, store)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tracked := &domain.TrackedShop{
		ID:          domain.TrackedShopID(userID, shop.ShopID),
		UserID:      userID,
		ShopID:      shop.ShopID,
		ShopName:    shop.ShopName,
		IconURL:     shop.IconURL,
		URL:         shop.URL,
		LastUpdated: now,
	}
	if err := s.repo.CreateTrackedShop(ctx, tracked, domain.NewSnapshot(shop, now)); err != nil {
		return nil, err
	}

	log.Printf("Track: user %s now tracking %s (%d)", userID, shop.ShopName, shop.ShopID)
	return tracked, nil
}

func (s *TrackerService) Refresh(ctx context.Context, trackedShopID string, shopID int64) (*domain.ShopSnapshot, error) {
	shop, err := s.source.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	snapshot := domain.NewSnapshot(shop, now)
	if err := s.repo.UpsertSnapshot(ctx, trackedShopID, snapshot, now); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// ListSnapshots returns the latest week of snapshots, oldest first
func (s *TrackerService) ListSnapshots(ctx context.Context, trackedShopID string) ([]domain.ShopSnapshot, error) {
	snapshots, err := s.repo.LatestSnapshots(ctx, trackedShopID, domain.SnapshotWindow)
	if err != nil {
		return nil, err
	}
	slices.Reverse(snapshots)
	return snapshots, nil
}

func (s *TrackerService) ListTracked(ctx context.Context, userID string) ([]domain.TrackedShop, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ListTrackedShops(ctx, userID)
}

// Open loads a tracked shop for charting, refreshing it first when stale. A
// failed refresh still returns the snapshots already stored.
func (s *TrackerService) Open(ctx context.Context, userID, trackedShopID string) (*domain.TrackedShop, []domain.ShopSnapshot, error) {
	tracked, err := s.owned(ctx, userID, trackedShopID)
	if err != nil {
		return nil, nil, err
	}

	if tracked.IsStale(s.now()) {
		if _, err := s.Refresh(ctx, tracked.ID, tracked.ShopID); err != nil {
			log.Printf("Open: refresh %s failed: %v", tracked.ID, err)
		} else if reloaded, err := s.repo.GetTrackedShop(ctx, tracked.ID); err == nil && reloaded != nil {
			tracked = reloaded
		}
	}

	snapshots, err := s.ListSnapshots(ctx, tracked.ID)
	if err != nil {
		return nil, nil, err
	}
	return tracked, snapshots, nil
}

func (s *TrackerService) Untrack(ctx context.Context, userID, trackedShopID string) error {
	if _, err := s.owned(ctx, userID, trackedShopID); err != nil {
		return err
	}
	return s.repo.DeleteTrackedShop(ctx, trackedShopID)
}

func (s *TrackerService) owned(ctx context.Context, userID, trackedShopID string) (*domain.TrackedShop, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	tracked, err := s.repo.GetTrackedShop(ctx, trackedShopID)
	if err != nil {
		return nil, err
	}
	if tracked == nil || tracked.UserID != userID {
		return nil, domain.NotFound("tracked shop not found")
	}
	return tracked, nil
}

var _ ports.TrackerService = (*TrackerService)(nil)
