package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
)

const thirteenTags = `["a","b","c","d","e","f","g","h","i","j","k","l","m"]`

func TestKeywordIdeas(t *testing.T) {
	gen := &fakeGenerator{reply: `{"relatedKeywords":["boho mug","ceramic mug"]}`}
	svc := NewAIService(gen)

	got, err := svc.KeywordIdeas(context.Background(), " mug ")
	require.NoError(t, err)

	assert.Equal(t, []string{"boho mug", "ceramic mug"}, got.RelatedKeywords)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Seed Keyword:\nmug")
	assert.Equal(t, []string{"relatedKeywords"}, gen.schemas[0].Required)
}

func TestGenerateListing(t *testing.T) {
	gen := &fakeGenerator{reply: `{"title":"T","description":"D","tags":` + thirteenTags + `}`}
	svc := NewAIService(gen)

	got, err := svc.GenerateListing(context.Background(), "hand-poured candle")
	require.NoError(t, err)

	assert.Equal(t, "T", got.Title)
	assert.Len(t, got.Tags, domain.ListingTagCount)
	assert.Equal(t, domain.ListingTagCount, gen.schemas[0].Properties["tags"].MinItems)
}

func TestGenerateTagsRejectsWrongCount(t *testing.T) {
	gen := &fakeGenerator{reply: `{"tags":["a","b"]}`}
	svc := NewAIService(gen)

	_, err := svc.GenerateTags(context.Background(), "a mug")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestNicheIdeas(t *testing.T) {
	gen := &fakeGenerator{reply: `{"niches":[{"niche":"N","description":"D","keywords":["k1","k2","k3"]}]}`}
	svc := NewAIService(gen)

	got, err := svc.NicheIdeas(context.Background(), "jewelry")
	require.NoError(t, err)

	require.Len(t, got.Niches, 1)
	assert.Equal(t, []string{"k1", "k2", "k3"}, got.Niches[0].Keywords)
}

func TestSummarizeListings(t *testing.T) {
	gen := &fakeGenerator{reply: `{"summary":"S"}`}
	svc := NewAIService(gen)

	got, err := svc.SummarizeListings(context.Background(), []domain.Listing{
		{Title: "Mug", Tags: []string{"a", "b"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "S", got.Summary)
	assert.Contains(t, gen.prompts[0], "Title: Mug, Tags: [a, b]")

	_, err = svc.SummarizeListings(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGenerateImageReturnsDataURI(t *testing.T) {
	gen := &fakeGenerator{mimeType: "image/png", imageData: []byte("png")}
	svc := NewAIService(gen)

	got, err := svc.GenerateImage(context.Background(), "a cat")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,cG5n", got.ImageURL)

	gen.imageData = nil
	_, err = svc.GenerateImage(context.Background(), "a cat")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestAIErrors(t *testing.T) {
	_, err := NewAIService(&fakeGenerator{}).KeywordIdeas(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewAIService(nil).GenerateTags(context.Background(), "mug")
	assert.ErrorIs(t, err, domain.ErrUpstream)

	_, err = NewAIService(nil).GenerateImage(context.Background(), "mug")
	assert.ErrorIs(t, err, domain.ErrUpstream)

	cause := errors.New("quota exceeded")
	_, err = NewAIService(&fakeGenerator{err: cause}).NicheIdeas(context.Background(), "art")
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, cause)
}
