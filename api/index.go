package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/etsy"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/gemini"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/handler"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/config"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/services"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	// Note: On Vercel, a local sqlite file is ephemeral; use a libsql or postgres DATABASE_URL
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	source := etsy.NewClient(cfg)

	var gen ports.Generator
	if g, err := gemini.NewClient(context.Background(), cfg); err != nil {
		log.Printf("AI features disabled: %v", err)
	} else {
		gen = g
	}

	mux = handler.NewRouter(cfg,
		services.NewShopService(source, cfg.CompareConcurrency),
		services.NewTrackerService(source, repo),
		services.NewAIService(gen),
	)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
