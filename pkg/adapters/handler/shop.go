package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/export"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

type ShopHandler struct {
	service ports.ShopService
}

func NewShopHandler(service ports.ShopService) *ShopHandler {
	return &ShopHandler{service: service}
}

// analyzeRequest is the analyzer form. A filter left out or sent as 0 takes
// its default (5 favorites, 30 days, 5 views), so a threshold of 0 cannot be
// asked for; send 1 to keep every listing on that axis.
type analyzeRequest struct {
	Store   string         `json:"store"`
	Filters domain.Filters `json:"filters"`
}

func (h *ShopHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	analysis, err := h.service.AnalyzeShop(r.Context(), req.Store, req.Filters)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

type compareRequest struct {
	Stores string `json:"stores"`
}

type compareResponse struct {
	Results []domain.ShopResult `json:"results"`
	Errors  []string            `json:"errors"`
}

func (h *ShopHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	results, errs, err := h.service.CompareShops(r.Context(), req.Stores)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if errs == nil {
		errs = []string{}
	}
	writeJSON(w, http.StatusOK, compareResponse{Results: results, Errors: errs})
}

// ExportCompare streams the comparison of ?stores= as CSV, one row per shop found
func (h *ShopHandler) ExportCompare(w http.ResponseWriter, r *http.Request) {
	results, _, err := h.service.CompareShops(r.Context(), r.URL.Query().Get("stores"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ShopsFilename))
	if err := export.WriteShops(w, results); err != nil {
		log.Printf("ExportCompare: %v", err)
	}
}

type keywordRequest struct {
	Keyword string `json:"keyword"`
}

func (h *ShopHandler) KeywordResearch(w http.ResponseWriter, r *http.Request) {
	var req keywordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	research, err := h.service.KeywordResearch(r.Context(), req.Keyword)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, research)
}

// ExportKeyword streams the top listings table of a keyword search as CSV
func (h *ShopHandler) ExportKeyword(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	research, err := h.service.KeywordResearch(r.Context(), keyword)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(research.Keyword)))
	if err := export.WriteCSV(w, research.TopListings); err != nil {
		log.Printf("ExportKeyword: %v", err)
	}
}
