package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/analytics"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

var errAIDisabled = errors.New("AI service is not configured")

// AIService forwards fixed prompt templates to a generative model. Each
// feature is one request with one response schema.
type AIService struct {
	gen ports.Generator
}

// NewAIService accepts a nil generator; every call then fails as upstream.
func NewAIService(gen ports.Generator) *AIService {
	return &AIService{gen: gen}
}

func (s *AIService) KeywordIdeas(ctx context.Context, seed string) (*domain.KeywordIdeas, error) {
	var out domain.KeywordIdeas
	if err := s.generate(ctx, keywordIdeasPrompt, seed, "seed keyword", keywordIdeasSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AIService) GenerateListing(ctx context.Context, idea string) (*domain.ListingDraft, error) {
	var out domain.ListingDraft
	if err := s.generate(ctx, listingPrompt, idea, "product idea", listingSchema, &out); err != nil {
		return nil, err
	}
	if err := checkTagCount(out.Tags); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AIService) GenerateTags(ctx context.Context, description string) (*domain.TagSuggestions, error) {
	var out domain.TagSuggestions
	if err := s.generate(ctx, tagsPrompt, description, "product description", tagsSchema, &out); err != nil {
		return nil, err
	}
	if err := checkTagCount(out.Tags); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AIService) NicheIdeas(ctx context.Context, category string) (*domain.NicheIdeas, error) {
	var out domain.NicheIdeas
	if err := s.generate(ctx, nichePrompt, category, "category", nicheSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AIService) SummarizeListings(ctx context.Context, listings []domain.Listing) (*domain.ListingSummary, error) {
	if len(listings) == 0 {
		return nil, domain.Validation("no listings to summarize")
	}
	var out domain.ListingSummary
	if err := s.generate(ctx, summaryPrompt, analytics.SummaryInput(listings), "listings", summarySchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AIService) GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domain.Validation("prompt is required")
	}
	if s.gen == nil {
		return nil, domain.Upstream("image generation failed", errAIDisabled)
	}

	mimeType, data, err := s.gen.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, domain.Upstream("image generation failed", err)
	}
	if len(data) == 0 {
		return nil, domain.Upstream("image generation failed to return a data URI", nil)
	}
	if mimeType == "" {
		mimeType = "image/png"
	}
	return &domain.GeneratedImage{
		ImageURL: fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
	}, nil
}

func (s *AIService) generate(ctx context.Context, t *template.Template, input, field string, schema *ports.Schema, out any) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.Validation(field + " is required")
	}
	if s.gen == nil {
		return domain.Upstream("AI generation failed", errAIDisabled)
	}

	prompt, err := render(t, input)
	if err != nil {
		return err
	}
	if err := s.gen.GenerateJSON(ctx, prompt, schema, out); err != nil {
		return domain.Upstream("AI generation failed", err)
	}
	return nil
}

func checkTagCount(tags []string) error {
	if len(tags) != domain.ListingTagCount {
		return domain.Upstream(fmt.Sprintf("expected %d tags, got %d", domain.ListingTagCount, len(tags)), nil)
	}
	return nil
}

var _ ports.AIService = (*AIService)(nil)
