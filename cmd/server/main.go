package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/etsy"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/gemini"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/handler"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/config"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/services"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

func main() {
	cfg := config.Load()

	mux, err := newHandler(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Minute, // image generation is slow
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func newHandler(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	source := etsy.NewClient(cfg)

	var gen ports.Generator
	if g, err := gemini.NewClient(ctx, cfg); err != nil {
		log.Printf("AI features disabled: %v", err)
	} else {
		gen = g
	}

	return handler.NewRouter(cfg,
		services.NewShopService(source, cfg.CompareConcurrency),
		services.NewTrackerService(source, repo),
		services.NewAIService(gen),
	), nil
}
