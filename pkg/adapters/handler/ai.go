package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

type AIHandler struct {
	service ports.AIService
}

func NewAIHandler(service ports.AIService) *AIHandler {
	return &AIHandler{service: service}
}

type aiRequest struct {
	SeedKeyword        string           `json:"seed_keyword"`
	ProductIdea        string           `json:"product_idea"`
	ProductDescription string           `json:"product_description"`
	Category           string           `json:"category"`
	Prompt             string           `json:"prompt"`
	Listings           []domain.Listing `json:"listings"`
}

// serve decodes the shared request shape and writes whatever call returns
func serve[T any](w http.ResponseWriter, r *http.Request, call func(req aiRequest) (T, error)) {
	var req aiRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := call(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AIHandler) KeywordIdeas(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(req aiRequest) (*domain.KeywordIdeas, error) {
		return h.service.KeywordIdeas(r.Context(), req.SeedKeyword)
	})
}

func (h *AIHandler) Listing(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(req aiRequest) (*domain.ListingDraft, error) {
		return h.service.GenerateListing(r.Context(), req.ProductIdea)
	})
}

func (h *AIHandler) Tags(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(req aiRequest) (*domain.TagSuggestions, error) {
		return h.service.GenerateTags(r.Context(), req.ProductDescription)
	})
}

func (h *AIHandler) Niches(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(req aiRequest) (*domain.NicheIdeas, error) {
		return h.service.NicheIdeas(r.Context(), req.Category)
	})
}

func (h *AIHandler) Summary(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(req aiRequest) (*domain.ListingSummary, error) {
		return h.service.SummarizeListings(r.Context(), req.Listings)
	})
}

func (h *AIHandler) Image(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(req aiRequest) (*domain.GeneratedImage, error) {
		return h.service.GenerateImage(r.Context(), req.Prompt)
	})
}
