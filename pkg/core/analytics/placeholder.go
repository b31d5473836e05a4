package analytics

import (
	"math"
	"math/rand/v2"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
)

const trendPoints = 10

// PlaceholderMetrics fabricates demo sales numbers and LQS scores for the top
// listings view. The output is cosmetic: it is a seeded random walk, not a
// model of real sales. The same seed always yields the same rows.
func PlaceholderMetrics(listings []domain.Listing, seed uint64) []domain.PlaceholderMetric {
	out := make([]domain.PlaceholderMetric, 0, len(listings))
	for _, l := range listings {
		rng := rand.New(rand.NewPCG(seed, uint64(l.ListingID)))

		sales := l.NumFavorers * int64(rng.IntN(5)+1)
		price := math.Round((rng.Float64()*50+5)*100) / 100
		monthly := int64(math.Floor(float64(sales) / (rng.Float64()*3 + 1)))

		out = append(out, domain.PlaceholderMetric{
			ListingID:    l.ListingID,
			Title:        l.Title,
			URL:          l.URL,
			MonthlySales: monthly,
			Sales:        sales,
			Revenue:      float64(sales) * price,
			LQS:          rng.IntN(30) + 70,
			Price:        price,
			SalesTrend:   salesTrend(rng),
			Placeholder:  true,
		})
	}
	return out
}

// salesTrend is a random walk clamped to [0, 100] for display
func salesTrend(rng *rand.Rand) []float64 {
	points := make([]float64, trendPoints)
	last := rng.Float64()*50 + 25
	for i := range points {
		next := last + (rng.Float64()*20 - 10)
		points[i] = math.Max(0, math.Min(100, next))
		last = next
	}
	return points
}
