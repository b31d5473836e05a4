package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/analytics"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

type ShopService struct {
	source      ports.ShopSource
	concurrency int
	now         func() time.Time
}

func NewShopService(source ports.ShopSource, concurrency int) *ShopService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ShopService{source: source, concurrency: concurrency, now: time.Now}
}

// AnalyzeShop fetches a shop with its active listings and derives the analyzer
// view. When the shop exists but its listings cannot be fetched, the shop is
// still returned with the failure in Error.
func (s *ShopService) AnalyzeShop(ctx context.Context, store string, filters domain.Filters) (*domain.ShopAnalysis, error) {
	store = strings.TrimSpace(store)
	if store == "" {
		return nil, domain.Validation("store name is required")
	}
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	filters = filters.WithDefaults()

	shop, err := s.source.FindShopByName(ctx, store)
	if err != nil {
		return nil, err
	}

	analysis := &domain.ShopAnalysis{
		Shop:     shop,
		Filters:  filters,
		Listings: []domain.AnalyzedListing{},
		Filtered: []domain.Listing{},
		Timeline: []domain.TimelineBucket{},
	}

	listings, err := s.source.ActiveListings(ctx, shop.ShopID)
	if err != nil {
		log.Printf("AnalyzeShop: listings for %s: %v", store, err)
		analysis.Error = "Shop found, but failed to fetch listings."
		return analysis, nil
	}

	now := s.now()
	analysis.Listings = analytics.AnalyzeListings(listings, filters, now)
	analysis.Filtered = analytics.FilterListings(listings, filters, now)
	analysis.Finance = analytics.FinancialInsights(shop, listings, now)
	analysis.Timeline = analytics.MonthlyTimeline(listings)
	return analysis, nil
}

// CompareShops looks up a comma separated list of stores. Lookups run with a
// bounded fan-out; results keep input order and a failed store only adds a
// message to the returned error list.
func (s *ShopService) CompareShops(ctx context.Context, stores string) ([]domain.ShopResult, []string, error) {
	names := splitStores(stores)
	if len(names) == 0 {
		return nil, nil, domain.Validation("please enter at least one store name")
	}

	results := make([]domain.ShopResult, len(names))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, name := range names {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			results[i].Store = name
			shop, err := s.source.FindShopByName(ctx, name)
			if err != nil {
				log.Printf("CompareShops: %s: %v", name, err)
				results[i].Error = compareError(name, err)
				return
			}
			results[i].Shop = shop
		}()
	}
	wg.Wait()

	var errs []string
	for _, r := range results {
		if r.Error != "" {
			errs = append(errs, r.Error)
		}
	}
	return results, errs, nil
}

func compareError(store string, err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Sprintf("Shop %q not found.", store)
	}
	return fmt.Sprintf("Failed to fetch data for %q.", store)
}

func splitStores(stores string) []string {
	var names []string
	for _, part := range strings.Split(stores, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// KeywordResearch searches active listings for keyword and aggregates the
// first page. The top listings rows carry placeholder metrics seeded by the
// keyword, so repeated searches render the same numbers.
func (s *ShopService) KeywordResearch(ctx context.Context, keyword string) (*domain.KeywordResearch, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.Validation("keyword is required")
	}

	listings, count, err := s.source.SearchListings(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		count = 0
	}

	return &domain.KeywordResearch{
		Keyword:     keyword,
		Stats:       analytics.KeywordStats(listings, count),
		Listings:    listings,
		CommonTags:  analytics.TagFrequency(listings),
		TopListings: analytics.PlaceholderMetrics(listings, keywordSeed(keyword)),
	}, nil
}

func keywordSeed(keyword string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(keyword)))
	return h.Sum64()
}

var _ ports.ShopService = (*ShopService)(nil)
