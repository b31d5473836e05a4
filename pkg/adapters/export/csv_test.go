package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []domain.PlaceholderMetric{
		{Title: `Blue "Mug", large`, MonthlySales: 3, Sales: 12, Revenue: 240, LQS: 80, Price: 20, URL: "https://etsy.test/1"},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		Header,
		{`Blue "Mug", large`, "3", "12", "240.00", "80", "20.00", "https://etsy.test/1"},
	}, records)
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Title,Monthly Sales,Total Sales,Revenue,LQS,Price,URL\n", buf.String())
}

func TestWriteShopsSkipsFailedStores(t *testing.T) {
	var buf bytes.Buffer
	err := WriteShops(&buf, []domain.ShopResult{
		{Store: "CraftCo", Shop: &domain.Shop{ShopName: "CraftCo", TransactionSoldCount: 1200, NumFavorers: 90, ListingActiveCount: 14, URL: "https://etsy.test/shop/CraftCo"}},
		{Store: "Nope", Error: `Shop "Nope" not found.`},
		{Store: "Beads", Shop: &domain.Shop{ShopName: "Beads", TransactionSoldCount: 3}},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Shop Name", "Total Sales", "Followers", "Active Listings", "URL"},
		{"CraftCo", "1200", "90", "14", "https://etsy.test/shop/CraftCo"},
		{"Beads", "3", "0", "0", ""},
	}, records)
}

func TestWriteShopsAllFailed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteShops(&buf, []domain.ShopResult{{Store: "Nope", Error: "x"}}))
	assert.Equal(t, "Shop Name,Total Sales,Followers,Active Listings,URL\n", buf.String())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "top-listings-boho-wall-art.csv", Filename("  Boho Wall-Art! "))
	assert.Equal(t, "top-listings-keyword.csv", Filename("!!!"))
}
