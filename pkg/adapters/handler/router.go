package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/config"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, shops ports.ShopService, tracker ports.TrackerService, ai ports.AIService) http.Handler {
	sh := NewShopHandler(shops)
	th := NewTrackerHandler(tracker)
	ah := NewAIHandler(ai)

	mw := NewMiddleware(cfg)
	authHandler := NewAuthHandler(cfg)

	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("GET /auth/google/login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/callback", authHandler.Callback)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)

	// Protected Routes
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("POST /api/v1/shops/analyze", sh.Analyze)
	protectedMux.HandleFunc("POST /api/v1/shops/compare", sh.Compare)
	protectedMux.HandleFunc("GET /api/v1/shops/compare/export", sh.ExportCompare)
	protectedMux.HandleFunc("POST /api/v1/keywords/research", sh.KeywordResearch)
	protectedMux.HandleFunc("GET /api/v1/keywords/export", sh.ExportKeyword)

	protectedMux.HandleFunc("POST /api/v1/ai/keywords", ah.KeywordIdeas)
	protectedMux.HandleFunc("POST /api/v1/ai/listing", ah.Listing)
	protectedMux.HandleFunc("POST /api/v1/ai/tags", ah.Tags)
	protectedMux.HandleFunc("POST /api/v1/ai/niches", ah.Niches)
	protectedMux.HandleFunc("POST /api/v1/ai/summary", ah.Summary)
	protectedMux.HandleFunc("POST /api/v1/ai/image", ah.Image)

	protectedMux.HandleFunc("GET /api/v1/tracker/shops", th.List)
	protectedMux.HandleFunc("POST /api/v1/tracker/shops", th.Track)
	protectedMux.HandleFunc("GET /api/v1/tracker/shops/{id}/snapshots", th.Snapshots)
	protectedMux.HandleFunc("POST /api/v1/tracker/shops/{id}/refresh", th.Refresh)
	protectedMux.HandleFunc("DELETE /api/v1/tracker/shops/{id}", th.Untrack)

	mux.Handle("/api/v1/", mw.AuthMiddleware(protectedMux))

	return RequestLogger(mux)
}
