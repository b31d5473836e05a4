// Package analytics derives filters, aggregates and estimates from fetched
// Etsy data. Every function is pure: callers pass "now" explicitly.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
)

const (
	secondsPerDay = 86400

	// TopTagsCount caps the tag frequency table
	TopTagsCount = 20

	transactionFeeRate  = 0.065
	paymentFeeRate      = 0.03
	listingFeePerItem   = 0.20
	viewsPerSale        = 100.0
	conservativeAvgSale = 15
	moderateAvgSale     = 25
	premiumAvgSale      = 35
)

// wholeDays returns the number of whole days elapsed between epoch seconds and now
func wholeDays(now time.Time, epochSeconds int64) int64 {
	elapsed := now.Unix() - epochSeconds
	return int64(math.Floor(float64(elapsed) / secondsPerDay))
}

// ListingAgeDays is the number of whole days since the listing was created
func ListingAgeDays(l domain.Listing, now time.Time) int64 {
	return wholeDays(now, l.OriginalCreationTimestamp)
}

// MatchFilters evaluates each threshold separately
func MatchFilters(l domain.Listing, f domain.Filters, now time.Time) domain.FilterMatch {
	return domain.FilterMatch{
		Favorites: l.NumFavorers >= int64(f.Favorites),
		Age:       ListingAgeDays(l, now) <= int64(f.Age),
		Views:     l.Views >= int64(f.Views),
	}
}

// FilterListings keeps the listings meeting all thresholds, in input order
func FilterListings(listings []domain.Listing, f domain.Filters, now time.Time) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if MatchFilters(l, f, now).All() {
			out = append(out, l)
		}
	}
	return out
}

// AnalyzeListings annotates every listing with its age and per-threshold result
func AnalyzeListings(listings []domain.Listing, f domain.Filters, now time.Time) []domain.AnalyzedListing {
	out := make([]domain.AnalyzedListing, 0, len(listings))
	for _, l := range listings {
		out = append(out, domain.AnalyzedListing{
			Listing: l,
			AgeDays: ListingAgeDays(l, now),
			Matches: MatchFilters(l, f, now),
		})
	}
	return out
}

// AveragePrice is 0 for an empty set
func AveragePrice(listings []domain.Listing) float64 {
	if len(listings) == 0 {
		return 0
	}
	var total float64
	for _, l := range listings {
		total += l.Price
	}
	return total / float64(len(listings))
}

// AverageFavorites is 0 for an empty set
func AverageFavorites(listings []domain.Listing) float64 {
	if len(listings) == 0 {
		return 0
	}
	var total int64
	for _, l := range listings {
		total += l.NumFavorers
	}
	return float64(total) / float64(len(listings))
}

// CompetitionLevel buckets the total result count of a keyword search
func CompetitionLevel(count int64) string {
	switch {
	case count > 100000:
		return "Very High"
	case count > 50000:
		return "High"
	case count > 10000:
		return "Moderate"
	default:
		return "Low"
	}
}

// KeywordStats aggregates a search page. totalCount is the count reported by
// Etsy, which may exceed len(listings) because pages are capped.
func KeywordStats(listings []domain.Listing, totalCount int64) domain.KeywordStats {
	return domain.KeywordStats{
		AvgPrice:         AveragePrice(listings),
		AvgFavorites:     AverageFavorites(listings),
		CompetitionCount: totalCount,
		CompetitionLevel: CompetitionLevel(totalCount),
	}
}

// TagFrequency counts exact tag strings, most frequent first. Ties keep the
// order in which tags were first seen.
func TagFrequency(listings []domain.Listing) []domain.TagCount {
	index := make(map[string]int)
	var counts []domain.TagCount
	for _, l := range listings {
		for _, tag := range l.Tags {
			if i, ok := index[tag]; ok {
				counts[i].Count++
				continue
			}
			index[tag] = len(counts)
			counts = append(counts, domain.TagCount{Tag: tag, Count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > TopTagsCount {
		counts = counts[:TopTagsCount]
	}
	if counts == nil {
		return []domain.TagCount{}
	}
	return counts
}

// FinancialInsights estimates revenue and fees for a shop. The revenue figure
// assumes one sale per hundred views.
func FinancialInsights(shop *domain.Shop, listings []domain.Listing, now time.Time) *domain.FinancialInsights {
	fi := &domain.FinancialInsights{
		ShopAgeDays:       wholeDays(now, shop.CreateDate),
		SalesStatus:       "Inactive",
		GeneratingRevenue: "No",
	}
	if fi.ShopAgeDays > 0 {
		fi.AvgSalesPerDay = float64(shop.TransactionSoldCount) / float64(fi.ShopAgeDays)
	}
	if shop.ListingActiveCount > 0 {
		fi.SalesStatus = "Active"
	}
	if shop.TransactionSoldCount > 0 {
		fi.GeneratingRevenue = "Yes"
	}

	for _, l := range listings {
		fi.TotalRevenueEstimate += l.Price * float64(l.Views) / viewsPerSale
	}
	fi.TransactionFee = fi.TotalRevenueEstimate * transactionFeeRate
	fi.PaymentProcessingFee = fi.TotalRevenueEstimate * paymentFeeRate
	fi.ListingFee = float64(shop.ListingActiveCount) * listingFeePerItem
	fi.TotalFees = fi.TransactionFee + fi.PaymentProcessingFee + fi.ListingFee
	fi.NetRevenueEstimate = fi.TotalRevenueEstimate - fi.TotalFees

	sold := float64(shop.TransactionSoldCount)
	fi.RevenueConservative = sold * conservativeAvgSale
	fi.RevenueModerate = sold * moderateAvgSale
	fi.RevenuePremium = sold * premiumAvgSale
	return fi
}

// MonthlyTimeline counts listings per creation month (UTC), oldest first.
// Months without listings are omitted.
func MonthlyTimeline(listings []domain.Listing) []domain.TimelineBucket {
	type key struct{ year, month int }
	counts := make(map[key]int)
	for _, l := range listings {
		t := time.Unix(l.OriginalCreationTimestamp, 0).UTC()
		counts[key{t.Year(), int(t.Month())}]++
	}

	buckets := make([]domain.TimelineBucket, 0, len(counts))
	for k, c := range counts {
		buckets = append(buckets, domain.TimelineBucket{
			Year:  k.year,
			Month: k.month,
			Label: fmt.Sprintf("%s %d", time.Month(k.month).String()[:3], k.year),
			Count: c,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year < buckets[j].Year
		}
		return buckets[i].Month < buckets[j].Month
	})
	return buckets
}

// SummaryInput renders listings as the plain text fed to the summary prompt
func SummaryInput(listings []domain.Listing) string {
	lines := make([]string, 0, len(listings))
	for _, l := range listings {
		lines = append(lines, fmt.Sprintf("Title: %s, Tags: [%s]", l.Title, strings.Join(l.Tags, ", ")))
	}
	return strings.Join(lines, "\n")
}
