// Package export renders keyword research tables as CSV files.
package export

import (
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
)

// Header is the column row of the top listings export
var Header = []string{"Title", "Monthly Sales", "Total Sales", "Revenue", "LQS", "Price", "URL"}

// WriteCSV writes the header and one row per metric
func WriteCSV(w io.Writer, rows []domain.PlaceholderMetric) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, m := range rows {
		err := cw.Write([]string{
			m.Title,
			strconv.FormatInt(m.MonthlySales, 10),
			strconv.FormatInt(m.Sales, 10),
			strconv.FormatFloat(m.Revenue, 'f', 2, 64),
			strconv.Itoa(m.LQS),
			strconv.FormatFloat(m.Price, 'f', 2, 64),
			m.URL,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ShopHeader is the column row of the competitor comparison export
var ShopHeader = []string{"Shop Name", "Total Sales", "Followers", "Active Listings", "URL"}

// ShopsFilename is the default file name of a comparison export
const ShopsFilename = "competitors.csv"

// WriteShops writes one row per shop that was found. Stores that failed
// to load are left out.
func WriteShops(w io.Writer, results []domain.ShopResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ShopHeader); err != nil {
		return err
	}
	for _, r := range results {
		if r.Shop == nil {
			continue
		}
		err := cw.Write([]string{
			r.Shop.ShopName,
			strconv.FormatInt(r.Shop.TransactionSoldCount, 10),
			strconv.FormatInt(r.Shop.NumFavorers, 10),
			strconv.FormatInt(r.Shop.ListingActiveCount, 10),
			r.Shop.URL,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// Filename derives a stable file name for a keyword export
func Filename(keyword string) string {
	slug := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(keyword), "-"), "-")
	if slug == "" {
		slug = "keyword"
	}
	return "top-listings-" + slug + ".csv"
}
