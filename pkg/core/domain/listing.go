package domain

// Listing is a normalized active listing
type Listing struct {
	ListingID                 int64    `json:"listing_id"`
	Title                     string   `json:"title"`
	ListingType               string   `json:"listing_type"`
	NumFavorers               int64    `json:"num_favorers"`
	Views                     int64    `json:"views"`
	OriginalCreationTimestamp int64    `json:"original_creation_timestamp"`
	LastModifiedTimestamp     int64    `json:"last_modified_timestamp"`
	Quantity                  int64    `json:"quantity"`
	Tags                      []string `json:"tags"`
	URL                       string   `json:"url"`
	ImageURL                  *string  `json:"image_url"`
	Price                     float64  `json:"price"`
}

// Filters are the conjunctive thresholds applied to a shop's listings
type Filters struct {
	Favorites int `json:"favorites"`
	Age       int `json:"age"` // days
	Views     int `json:"views"`
}

// DefaultFilters returns the thresholds used when the form leaves them blank
func DefaultFilters() Filters {
	return Filters{Favorites: 5, Age: 30, Views: 5}
}

// WithDefaults replaces zero thresholds with the defaults, mirroring the analyzer form.
// Zero is indistinguishable from unset, so it never reaches the filter.
func (f Filters) WithDefaults() Filters {
	d := DefaultFilters()
	if f.Favorites == 0 {
		f.Favorites = d.Favorites
	}
	if f.Age == 0 {
		f.Age = d.Age
	}
	if f.Views == 0 {
		f.Views = d.Views
	}
	return f
}

// Validate rejects negative thresholds
func (f Filters) Validate() error {
	if f.Favorites < 0 || f.Age < 0 || f.Views < 0 {
		return Validation("filters must not be negative")
	}
	return nil
}

// FilterMatch records which individual thresholds a listing meets
type FilterMatch struct {
	Favorites bool `json:"favorites"`
	Age       bool `json:"age"`
	Views     bool `json:"views"`
}

// All reports whether every threshold is met
func (m FilterMatch) All() bool {
	return m.Favorites && m.Age && m.Views
}
