package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

var fixedNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu          sync.Mutex
	shops       map[string]*domain.Shop // keyed by lowercased name
	listings    map[int64][]domain.Listing
	search      []domain.Listing
	searchCount int64
	listingsErr error
	failing     map[string]error
	getShopErr  error
	getShopHits int
}

func newFakeSource(shops ...*domain.Shop) *fakeSource {
	f := &fakeSource{
		shops:    map[string]*domain.Shop{},
		listings: map[int64][]domain.Listing{},
		failing:  map[string]error{},
	}
	for _, s := range shops {
		f.shops[strings.ToLower(s.ShopName)] = s
	}
	return f
}

func (f *fakeSource) FindShopByName(_ context.Context, name string) (*domain.Shop, error) {
	if err, ok := f.failing[name]; ok {
		return nil, err
	}
	shop, ok := f.shops[strings.ToLower(name)]
	if !ok {
		return nil, domain.NotFound("shop " + name + " not found")
	}
	cp := *shop
	return &cp, nil
}

func (f *fakeSource) GetShop(_ context.Context, shopID int64) (*domain.Shop, error) {
	f.mu.Lock()
	f.getShopHits++
	f.mu.Unlock()
	if f.getShopErr != nil {
		return nil, f.getShopErr
	}
	for _, s := range f.shops {
		if s.ShopID == shopID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.NotFound("shop not found")
}

func (f *fakeSource) ActiveListings(_ context.Context, shopID int64) ([]domain.Listing, error) {
	if f.listingsErr != nil {
		return nil, f.listingsErr
	}
	return f.listings[shopID], nil
}

func (f *fakeSource) SearchListings(_ context.Context, _ string) ([]domain.Listing, int64, error) {
	return f.search, f.searchCount, nil
}

type fakeRepo struct {
	shops     map[string]domain.TrackedShop
	snapshots map[string]map[string]domain.ShopSnapshot
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops:     map[string]domain.TrackedShop{},
		snapshots: map[string]map[string]domain.ShopSnapshot{},
	}
}

func (r *fakeRepo) CreateTrackedShop(_ context.Context, shop *domain.TrackedShop, snapshot *domain.ShopSnapshot) error {
	if _, ok := r.shops[shop.ID]; ok {
		return domain.ErrAlreadyTracking
	}
	r.shops[shop.ID] = *shop
	r.snapshots[shop.ID] = map[string]domain.ShopSnapshot{snapshot.Date: *snapshot}
	return nil
}

func (r *fakeRepo) GetTrackedShop(_ context.Context, id string) (*domain.TrackedShop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeRepo) ListTrackedShops(_ context.Context, userID string) ([]domain.TrackedShop, error) {
	out := []domain.TrackedShop{}
	for _, s := range r.shops {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) DeleteTrackedShop(_ context.Context, id string) error {
	delete(r.shops, id)
	delete(r.snapshots, id)
	return nil
}

func (r *fakeRepo) UpsertSnapshot(_ context.Context, id string, snapshot *domain.ShopSnapshot, updatedAt time.Time) error {
	s, ok := r.shops[id]
	if !ok {
		return domain.NotFound("tracked shop not found")
	}
	s.LastUpdated = updatedAt
	r.shops[id] = s
	r.snapshots[id][snapshot.Date] = *snapshot
	return nil
}

func (r *fakeRepo) LatestSnapshots(_ context.Context, id string, limit int) ([]domain.ShopSnapshot, error) {
	out := []domain.ShopSnapshot{}
	for _, s := range r.snapshots[id] {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// seed inserts a tracked shop with one snapshot per date
func (r *fakeRepo) seed(shop domain.TrackedShop, dates ...string) {
	r.shops[shop.ID] = shop
	r.snapshots[shop.ID] = map[string]domain.ShopSnapshot{}
	for _, d := range dates {
		r.snapshots[shop.ID][d] = domain.ShopSnapshot{Date: d}
	}
}

type fakeGenerator struct {
	reply     string
	err       error
	prompts   []string
	schemas   []*ports.Schema
	mimeType  string
	imageData []byte
}

func (g *fakeGenerator) GenerateJSON(_ context.Context, prompt string, schema *ports.Schema, out any) error {
	g.prompts = append(g.prompts, prompt)
	g.schemas = append(g.schemas, schema)
	if g.err != nil {
		return g.err
	}
	return json.Unmarshal([]byte(g.reply), out)
}

func (g *fakeGenerator) GenerateImage(_ context.Context, prompt string) (string, []byte, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", nil, g.err
	}
	return g.mimeType, g.imageData, nil
}
