package domain

// Shop is an Etsy storefront and its aggregate counters, as returned by the shops endpoints
type Shop struct {
	ShopID               int64   `json:"shop_id"`
	ShopName             string  `json:"shop_name"`
	ListingActiveCount   int64   `json:"listing_active_count"`
	DigitalListingCount  int64   `json:"digital_listing_count"`
	TransactionSoldCount int64   `json:"transaction_sold_count"`
	NumFavorers          int64   `json:"num_favorers"`
	IconURL              *string `json:"icon_url_fullxfull"`
	CreateDate           int64   `json:"create_date"` // seconds since epoch
	URL                  string  `json:"url"`
}

// ShopResult is one row of a competitor comparison
type ShopResult struct {
	Store string `json:"store"`
	Shop  *Shop  `json:"shop,omitempty"`
	Error string `json:"error,omitempty"`
}
