package ports

import (
	"context"
	"time"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
)

// ShopSource reads shops and listings from Etsy
type ShopSource interface {
	FindShopByName(ctx context.Context, name string) (*domain.Shop, error)
	GetShop(ctx context.Context, shopID int64) (*domain.Shop, error)
	ActiveListings(ctx context.Context, shopID int64) ([]domain.Listing, error)
	SearchListings(ctx context.Context, keyword string) ([]domain.Listing, int64, error)
}

// TrackingRepository persists tracked shops and their daily snapshots
type TrackingRepository interface {
	// CreateTrackedShop inserts the shop and its first snapshot atomically.
	// Returns domain.ErrAlreadyTracking if the id exists.
	CreateTrackedShop(ctx context.Context, shop *domain.TrackedShop, snapshot *domain.ShopSnapshot) error
	GetTrackedShop(ctx context.Context, id string) (*domain.TrackedShop, error)
	ListTrackedShops(ctx context.Context, userID string) ([]domain.TrackedShop, error)
	DeleteTrackedShop(ctx context.Context, id string) error
	// UpsertSnapshot merges the snapshot for its date and touches last_updated
	UpsertSnapshot(ctx context.Context, trackedShopID string, snapshot *domain.ShopSnapshot, updatedAt time.Time) error
	// LatestSnapshots returns up to limit snapshots, newest first
	LatestSnapshots(ctx context.Context, trackedShopID string, limit int) ([]domain.ShopSnapshot, error)
}

// Generator is a structured-output generative model
type Generator interface {
	// GenerateJSON sends prompt and decodes the model's JSON reply into out,
	// constraining the reply with schema.
	GenerateJSON(ctx context.Context, prompt string, schema *Schema, out any) error
	// GenerateImage returns the first image produced for prompt
	GenerateImage(ctx context.Context, prompt string) (mimeType string, data []byte, err error)
}

// Schema is a minimal JSON schema understood by Generator implementations
type Schema struct {
	Type        string             `json:"type"` // object, array, string
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	MinItems    int                `json:"minItems,omitempty"`
	MaxItems    int                `json:"maxItems,omitempty"`
}

// ShopService drives the analyzer, competitor and keyword pages
type ShopService interface {
	AnalyzeShop(ctx context.Context, store string, filters domain.Filters) (*domain.ShopAnalysis, error)
	CompareShops(ctx context.Context, stores string) ([]domain.ShopResult, []string, error)
	KeywordResearch(ctx context.Context, keyword string) (*domain.KeywordResearch, error)
}

// TrackerService implements the daily snapshot state machine
type TrackerService interface {
	Track(ctx context.Context, userID, store string) (*domain.TrackedShop, error)
	Refresh(ctx context.Context, trackedShopID string, shopID int64) (*domain.ShopSnapshot, error)
	ListSnapshots(ctx context.Context, trackedShopID string) ([]domain.ShopSnapshot, error)
	ListTracked(ctx context.Context, userID string) ([]domain.TrackedShop, error)
	Open(ctx context.Context, userID, trackedShopID string) (*domain.TrackedShop, []domain.ShopSnapshot, error)
	Untrack(ctx context.Context, userID, trackedShopID string) error
}

// AIService holds the fixed prompt features
type AIService interface {
	KeywordIdeas(ctx context.Context, seed string) (*domain.KeywordIdeas, error)
	GenerateListing(ctx context.Context, idea string) (*domain.ListingDraft, error)
	GenerateTags(ctx context.Context, description string) (*domain.TagSuggestions, error)
	NicheIdeas(ctx context.Context, category string) (*domain.NicheIdeas, error)
	SummarizeListings(ctx context.Context, listings []domain.Listing) (*domain.ListingSummary, error)
	GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error)
}
