package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/config"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

// Client sends single-shot prompts to Gemini
type Client struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{client: c, textModel: cfg.GeminiTextModel, imageModel: cfg.GeminiImageModel}, nil
}

func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *ports.Schema, out any) error {
	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toSchema(schema),
	})
	if err != nil {
		return err
	}

	text := resp.Text()
	if text == "" {
		return errors.New("model returned no content")
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		log.Printf("genai: undecodable reply from %s: %v", c.textModel, err)
		return fmt.Errorf("decode model reply: %w", err)
	}
	return nil
}

func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, []byte, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.imageModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return "", nil, err
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.MIMEType, part.InlineData.Data, nil
			}
		}
	}
	return "", nil, errors.New("model returned no image")
}

func toSchema(s *ports.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genai.Type(strings.ToUpper(s.Type)),
		Description: s.Description,
		Required:    s.Required,
		Items:       toSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toSchema(p)
		}
	}
	if s.MinItems > 0 {
		out.MinItems = ptr(int64(s.MinItems))
	}
	if s.MaxItems > 0 {
		out.MaxItems = ptr(int64(s.MaxItems))
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}

var _ ports.Generator = (*Client)(nil)
