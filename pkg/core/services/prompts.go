package services

import (
	"strings"
	"text/template"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

var (
	keywordIdeasPrompt = template.Must(template.New("keywordIdeas").Parse(
		`You are an expert in Etsy SEO and keyword research.

Based on the following seed keyword, generate a list of 10-15 related and long-tail keywords that would be effective for an Etsy listing. The keywords should be a mix of popular search terms and more specific, less competitive phrases.

Seed Keyword:
{{.}}`))

	listingPrompt = template.Must(template.New("listing").Parse(
		`You are an expert Etsy copywriter and SEO specialist. Your task is to create a complete, high-converting Etsy listing based on a simple product idea.

Given the following product idea, generate:
1. A compelling, keyword-rich title that grabs attention and is optimized for Etsy search.
2. A detailed and persuasive product description. Use clear headings and bullet points to make it easy to read. Highlight the key features and benefits for the customer.
3. Exactly 13 relevant and effective tags, mixing broad and long-tail keywords to maximize visibility.

Product Idea:
{{.}}`))

	tagsPrompt = template.Must(template.New("tags").Parse(
		`You are an expert in Etsy SEO and marketing.

Based on the following product description, generate exactly 13 relevant and effective tags for an Etsy listing. The tags should be a mix of broad and long-tail keywords to maximize visibility. Ensure the tags are concise and directly related to the product.

Product Description:
{{.}}`))

	nichePrompt = template.Must(template.New("niches").Parse(
		`You are an expert Etsy market analyst specializing in identifying emerging trends and profitable niches.

Based on the following broad category, generate a list of 5 promising and specific niche ideas. For each idea, provide a catchy name, a brief description of the opportunity, and a few relevant keywords.

Category:
{{.}}`))

	summaryPrompt = template.Must(template.New("summary").Parse(
		`You are an expert Etsy listings summarizer.

You will receive a list of Etsy listings and provide a concise summary of the listings.

Listings: {{.}}`))
)

func render(t *template.Template, input string) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, input); err != nil {
		return "", err
	}
	return b.String(), nil
}

func stringArray(desc string, exact int) *ports.Schema {
	return &ports.Schema{
		Type:        "array",
		Description: desc,
		Items:       &ports.Schema{Type: "string"},
		MinItems:    exact,
		MaxItems:    exact,
	}
}

func object(required []string, props map[string]*ports.Schema) *ports.Schema {
	return &ports.Schema{Type: "object", Properties: props, Required: required}
}

var (
	keywordIdeasSchema = object([]string{"relatedKeywords"}, map[string]*ports.Schema{
		"relatedKeywords": stringArray("Related and long-tail keywords for Etsy.", 0),
	})

	listingSchema = object([]string{"title", "description", "tags"}, map[string]*ports.Schema{
		"title":       {Type: "string", Description: "An SEO-friendly and compelling title for the Etsy listing."},
		"description": {Type: "string", Description: "A detailed and persuasive product description, formatted for readability on Etsy."},
		"tags":        stringArray("Exactly 13 relevant Etsy tags.", domain.ListingTagCount),
	})

	tagsSchema = object([]string{"tags"}, map[string]*ports.Schema{
		"tags": stringArray("13 relevant Etsy tags.", domain.ListingTagCount),
	})

	nicheSchema = object([]string{"niches"}, map[string]*ports.Schema{
		"niches": {
			Type:        "array",
			Description: "Promising niche ideas.",
			Items: object([]string{"niche", "description", "keywords"}, map[string]*ports.Schema{
				"niche":       {Type: "string", Description: "A short, catchy name for the niche idea."},
				"description": {Type: "string", Description: "Why the niche has potential."},
				"keywords":    stringArray("3-5 relevant keywords for this niche.", 0),
			}),
		},
	})

	summarySchema = object([]string{"summary"}, map[string]*ports.Schema{
		"summary": {Type: "string", Description: "A summary of the listings."},
	})
)
