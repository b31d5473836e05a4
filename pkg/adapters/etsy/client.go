package etsy

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/config"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

const pageLimit = "100"

// Client talks to the Etsy Open API v3 with a static API key
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.EtsyBaseURL, "/"),
		apiKey:  cfg.EtsyAPIKey,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

type shopsResponse struct {
	Count   int64         `json:"count"`
	Results []domain.Shop `json:"results"`
}

type listingsResponse struct {
	Count   int64        `json:"count"`
	Results []rawListing `json:"results"`
}

func (c *Client) FindShopByName(ctx context.Context, name string) (*domain.Shop, error) {
	q := url.Values{}
	q.Set("shop_name", name)

	var resp shopsResponse
	if err := c.get(ctx, "/shops", q, &resp); err != nil {
		return nil, domain.Upstream("failed to fetch shop data from Etsy", err)
	}
	if len(resp.Results) == 0 {
		return nil, domain.NotFound(fmt.Sprintf("shop %q not found", name))
	}
	shop := resp.Results[0]
	return &shop, nil
}

func (c *Client) GetShop(ctx context.Context, shopID int64) (*domain.Shop, error) {
	var shop domain.Shop
	if err := c.get(ctx, "/shops/"+strconv.FormatInt(shopID, 10), nil, &shop); err != nil {
		return nil, domain.Upstream("failed to fetch shop from Etsy", err)
	}
	return &shop, nil
}

func (c *Client) ActiveListings(ctx context.Context, shopID int64) ([]domain.Listing, error) {
	q := url.Values{}
	q.Set("limit", pageLimit)
	q.Set("includes", "MainImage")

	var resp listingsResponse
	path := fmt.Sprintf("/shops/%d/listings/active", shopID)
	if err := c.get(ctx, path, q, &resp); err != nil {
		return nil, domain.Upstream("shop found, but failed to fetch listings", err)
	}
	return Normalize(resp.Results), nil
}

// SearchListings returns the first page of matches and the total match count
func (c *Client) SearchListings(ctx context.Context, keyword string) ([]domain.Listing, int64, error) {
	q := url.Values{}
	q.Set("keywords", keyword)
	q.Set("limit", pageLimit)
	q.Set("sort_on", "score")
	q.Set("includes", "MainImage")

	var resp listingsResponse
	if err := c.get(ctx, "/listings/active", q, &resp); err != nil {
		return nil, 0, domain.Upstream("failed to fetch keyword data from Etsy", err)
	}
	return Normalize(resp.Results), resp.Count, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	log.Printf("etsy GET %s -> %d (%s)", path, res.StatusCode, time.Since(start).Round(time.Millisecond))

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("etsy responded %s", res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

var _ ports.ShopSource = (*Client)(nil)
