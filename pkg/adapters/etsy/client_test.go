package etsy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/config"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
)

const listingsJSON = `{
	"count": 2,
	"results": [
		{
			"listing_id": 10,
			"title": "Mug",
			"num_favorers": 12,
			"views": 40,
			"tags": ["coffee", "gift"],
			"price": {"amount": 2500, "divisor": 100, "currency_code": "USD"},
			"MainImage": {"url_75x75": "https://img.example/10.jpg"}
		},
		{
			"listing_id": 11,
			"title": "Poster",
			"price": {"amount": "abc", "divisor": 100}
		}
	]
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(&config.Config{
		EtsyBaseURL: srv.URL,
		EtsyAPIKey:  "test-key",
		HTTPTimeout: 5 * time.Second,
	})
}

func TestFindShopByName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shops", r.URL.Path)
		assert.Equal(t, "CraftyCorner", r.URL.Query().Get("shop_name"))
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		w.Write([]byte(`{"count":1,"results":[{"shop_id":42,"shop_name":"CraftyCorner","transaction_sold_count":100,"icon_url_fullxfull":null}]}`))
	})

	shop, err := c.FindShopByName(context.Background(), "CraftyCorner")

	require.NoError(t, err)
	assert.Equal(t, int64(42), shop.ShopID)
	assert.Equal(t, int64(100), shop.TransactionSoldCount)
	assert.Nil(t, shop.IconURL)
}

func TestFindShopByNameNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":0,"results":[]}`))
	})

	_, err := c.FindShopByName(context.Background(), "ghost")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := c.GetShop(context.Background(), 42)

	assert.True(t, errors.Is(err, domain.ErrUpstream))
}

func TestActiveListingsNormalizes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shops/42/listings/active", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.Equal(t, "MainImage", r.URL.Query().Get("includes"))
		w.Write([]byte(listingsJSON))
	})

	listings, err := c.ActiveListings(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, 25.0, listings[0].Price)
	require.NotNil(t, listings[0].ImageURL)
	assert.Equal(t, "https://img.example/10.jpg", *listings[0].ImageURL)
	assert.Zero(t, listings[1].Price)
	assert.Nil(t, listings[1].ImageURL)
	assert.Empty(t, listings[1].Tags)
}

func TestSearchListingsReportsTotalCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listings/active", r.URL.Path)
		assert.Equal(t, "boho mug", r.URL.Query().Get("keywords"))
		assert.Equal(t, "score", r.URL.Query().Get("sort_on"))
		w.Write([]byte(`{"count": 87000, "results": [{"listing_id": 1}]}`))
	})

	listings, count, err := c.SearchListings(context.Background(), "boho mug")

	require.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.Equal(t, int64(87000), count)
}
