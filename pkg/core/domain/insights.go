package domain

// ShopAnalysis is the view model of the single shop analyzer
type ShopAnalysis struct {
	Shop     *Shop              `json:"shop"`
	Filters  Filters            `json:"filters"`
	Listings []AnalyzedListing  `json:"listings"`
	Filtered []Listing          `json:"filtered_listings"`
	Finance  *FinancialInsights `json:"financial_insights,omitempty"`
	Timeline []TimelineBucket   `json:"timeline"`
	Error    string             `json:"error,omitempty"`
}

// AnalyzedListing pairs a listing with its per-threshold filter result
type AnalyzedListing struct {
	Listing
	AgeDays int64       `json:"age_days"`
	Matches FilterMatch `json:"matches"`
}

// FinancialInsights are illustrative estimates, not accounting figures
type FinancialInsights struct {
	ShopAgeDays          int64   `json:"shop_age_days"`
	AvgSalesPerDay       float64 `json:"avg_sales_per_day"`
	SalesStatus          string  `json:"sales_status"`
	GeneratingRevenue    string  `json:"generating_revenue"`
	TotalRevenueEstimate float64 `json:"total_revenue_estimate"`
	TransactionFee       float64 `json:"transaction_fee"`
	PaymentProcessingFee float64 `json:"payment_processing_fee"`
	ListingFee           float64 `json:"listing_fee"`
	TotalFees            float64 `json:"total_fees"`
	NetRevenueEstimate   float64 `json:"net_revenue_estimate"`
	RevenueConservative  float64 `json:"revenue_conservative"`
	RevenueModerate      float64 `json:"revenue_moderate"`
	RevenuePremium       float64 `json:"revenue_premium"`
}

// TimelineBucket counts listings created in one calendar month
type TimelineBucket struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"` // e.g. "Mar 2024"
	Count int    `json:"count"`
}

// TagCount is one row of the tag frequency table
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// KeywordStats aggregates a keyword search result
type KeywordStats struct {
	AvgPrice         float64 `json:"avg_price"`
	AvgFavorites     float64 `json:"avg_favorites"`
	CompetitionCount int64   `json:"competition_count"`
	CompetitionLevel string  `json:"competition_level"`
}

// KeywordResearch is the view model of the keyword research page
type KeywordResearch struct {
	Keyword     string              `json:"keyword"`
	Stats       KeywordStats        `json:"stats"`
	Listings    []Listing           `json:"listings"`
	CommonTags  []TagCount          `json:"common_tags"`
	TopListings []PlaceholderMetric `json:"top_listings"`
}

// PlaceholderMetric holds cosmetic demo numbers for a listing. None of these
// values are derived from real sales data.
type PlaceholderMetric struct {
	ListingID    int64     `json:"listing_id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	MonthlySales int64     `json:"monthly_sales"`
	Sales        int64     `json:"sales"`
	Revenue      float64   `json:"revenue"`
	LQS          int       `json:"lqs"`
	Price        float64   `json:"price"`
	SalesTrend   []float64 `json:"sales_trend"`
	Placeholder  bool      `json:"placeholder"`
}
