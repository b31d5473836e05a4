package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/export"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	shop := `{"shop_id":7,"shop_name":"CraftCo","listing_active_count":2,"transaction_sold_count":1234,"num_favorers":90,"create_date":1600000000}`
	listings := fmt.Sprintf(`{"count":2,"results":[
		{"listing_id":1,"title":"Mug","num_favorers":10,"views":20,"original_creation_timestamp":%d,"tags":["mug"],"price":{"amount":2000,"divisor":100}},
		{"listing_id":2,"title":"Cup","num_favorers":1,"views":2,"original_creation_timestamp":%d,"tags":["mug"],"price":{"amount":1000,"divisor":100}}
	]}`, time.Now().Unix(), time.Now().Unix())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /shops", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("shop_name") != "CraftCo" {
			fmt.Fprint(w, `{"count":0,"results":[]}`)
			return
		}
		fmt.Fprintf(w, `{"count":1,"results":[%s]}`, shop)
	})
	mux.HandleFunc("GET /shops/7", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, shop) })
	mux.HandleFunc("GET /shops/7/listings/active", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, listings) })
	mux.HandleFunc("GET /listings/active", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, listings) })
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &config.Config{
		DatabaseURL:        "file:" + t.Name() + "?mode=memory&cache=shared",
		EtsyBaseURL:        srv.URL,
		CompareConcurrency: 2,
		HTTPTimeout:        5 * time.Second,
	}
}

func runCLI(t *testing.T, cfg *config.Config, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), cfg, args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestAnalyzeCommand(t *testing.T) {
	cfg := testConfig(t)

	code, out, _ := runCLI(t, cfg, "analyze", "CraftCo", "--favorites", "5")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "CraftCo (7)")
	assert.Contains(t, out, "sold 1,234")
	assert.Contains(t, out, "1 of 2 listings match favorites>=5 age<=30 views>=5")
}

func TestCompareCommand(t *testing.T) {
	cfg := testConfig(t)

	code, out, _ := runCLI(t, cfg, "compare", "CraftCo", "Nope")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "CraftCo (7)")
	assert.Contains(t, out, `Shop "Nope" not found.`)
}

func TestCompareCommandWritesCSV(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "competitors.csv")

	code, out, errOut := runCLI(t, cfg, "compare", "CraftCo", "Nope", "--out", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "wrote 1 shops to")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		export.ShopHeader,
		{"CraftCo", "1234", "90", "2", ""},
	}, records)
}

func TestExportCommand(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "out.csv")

	code, out, errOut := runCLI(t, cfg, "export", "blue", "mug", "-o", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "wrote 2 rows")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, export.Header, records[0])
}

func TestTrackAndRefreshCommands(t *testing.T) {
	cfg := testConfig(t)

	code, out, errOut := runCLI(t, cfg, "track", "CraftCo", "--user", "u1")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "tracking CraftCo as u1_7")

	code, _, errOut = runCLI(t, cfg, "track", "CraftCo", "--user", "u1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "already tracking")

	code, out, errOut = runCLI(t, cfg, "refresh", "-u", "u1")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "1,234 sold")
}

func TestUsageErrors(t *testing.T) {
	cfg := testConfig(t)

	code, _, errOut := runCLI(t, cfg)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "usage:")

	code, _, errOut = runCLI(t, cfg, "bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `unknown command "bogus"`)

	code, _, errOut = runCLI(t, cfg, "track", "CraftCo")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "--user is required")
}
