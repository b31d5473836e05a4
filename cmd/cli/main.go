package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/etsy"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/export"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/config"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/services"
)

const usage = `usage: etsy-analyzer <command> [flags]

commands:
  analyze <store>       Analyze a shop and its filtered listings
  compare <store>...    Compare shops side by side (--out writes CSV)
  keyword <keyword>     Keyword research summary
  track <store>         Start tracking a shop (--user)
  refresh               Refresh every shop tracked by --user
  export <keyword>      Write the top listings table as CSV (--out)
`

var errUsage = errors.New("invalid usage")

func main() {
	cfg := config.Load()
	os.Exit(run(context.Background(), cfg, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, cfg *config.Config, args []string, out, errOut io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(errOut, usage)
		return 1
	}

	source := etsy.NewClient(cfg)
	shops := services.NewShopService(source, cfg.CompareConcurrency)

	var err error
	switch args[0] {
	case "analyze":
		err = cmdAnalyze(ctx, shops, args[1:], out)
	case "compare":
		err = cmdCompare(ctx, shops, args[1:], out)
	case "keyword":
		err = cmdKeyword(ctx, shops, args[1:], out)
	case "export":
		err = cmdExport(ctx, shops, args[1:], out)
	case "track", "refresh":
		var repo *sqlite.SQLiteRepository
		repo, err = sqlite.NewSQLiteRepository(cfg.DatabaseURL)
		if err != nil {
			break
		}
		tracker := services.NewTrackerService(source, repo)
		if args[0] == "track" {
			err = cmdTrack(ctx, tracker, args[1:], out)
		} else {
			err = cmdRefresh(ctx, tracker, args[1:], out)
		}
	case "-h", "--help", "help":
		fmt.Fprint(out, usage)
		return 0
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		if errors.Is(err, errUsage) {
			fmt.Fprint(errOut, usage)
		}
		return 1
	}
	return 0
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func cmdAnalyze(ctx context.Context, svc *services.ShopService, args []string, out io.Writer) error {
	fs := newFlagSet("analyze")
	var f domain.Filters
	fs.IntVar(&f.Favorites, "favorites", 0, "minimum favorites (default 5)")
	fs.IntVar(&f.Age, "age", 0, "maximum listing age in days (default 30)")
	fs.IntVar(&f.Views, "views", 0, "minimum views (default 5)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: analyze takes one store name", errUsage)
	}

	a, err := svc.AnalyzeShop(ctx, fs.Arg(0), f)
	if err != nil {
		return err
	}

	printShop(out, a.Shop)
	if a.Error != "" {
		fmt.Fprintln(out, a.Error)
		return nil
	}
	if fi := a.Finance; fi != nil {
		fmt.Fprintf(out, "Shop age:       %s days (%s sales/day)\n", humanize.Comma(fi.ShopAgeDays), humanize.FtoaWithDigits(fi.AvgSalesPerDay, 2))
		fmt.Fprintf(out, "Sales status:   %s, generating revenue: %s\n", fi.SalesStatus, fi.GeneratingRevenue)
		fmt.Fprintf(out, "Est. revenue:   $%s (net $%s after $%s fees)\n",
			humanize.CommafWithDigits(fi.TotalRevenueEstimate, 2),
			humanize.CommafWithDigits(fi.NetRevenueEstimate, 2),
			humanize.CommafWithDigits(fi.TotalFees, 2))
	}

	fmt.Fprintf(out, "\n%d of %d listings match favorites>=%d age<=%d views>=%d\n",
		len(a.Filtered), len(a.Listings), a.Filters.Favorites, a.Filters.Age, a.Filters.Views)
	for _, l := range a.Filtered {
		fmt.Fprintf(out, "  %-50.50s  %6s fav  %8s views  $%.2f\n", l.Title, humanize.Comma(l.NumFavorers), humanize.Comma(l.Views), l.Price)
	}
	return nil
}

func printShop(out io.Writer, s *domain.Shop) {
	fmt.Fprintf(out, "%s (%d)\n", s.ShopName, s.ShopID)
	fmt.Fprintf(out, "  sold %s  active %s  favorers %s\n",
		humanize.Comma(s.TransactionSoldCount), humanize.Comma(s.ListingActiveCount), humanize.Comma(s.NumFavorers))
}

func cmdCompare(ctx context.Context, svc *services.ShopService, args []string, out io.Writer) error {
	fs := newFlagSet("compare")
	path := fs.StringP("out", "o", "", "also write the found shops as CSV to this file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: compare takes at least one store name", errUsage)
	}

	results, errs, err := svc.CompareShops(ctx, strings.Join(fs.Args(), ","))
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Shop != nil {
			printShop(out, r.Shop)
		}
	}
	for _, msg := range errs {
		fmt.Fprintln(out, msg)
	}

	if *path == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := export.WriteShops(&buf, results); err != nil {
		return err
	}
	if err := atomic.WriteFile(*path, &buf); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %d shops to %s\n", len(results)-len(errs), *path)
	return nil
}

func cmdKeyword(ctx context.Context, svc *services.ShopService, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: keyword takes a search phrase", errUsage)
	}

	k, err := svc.KeywordResearch(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%q: %s results, competition %s\n", k.Keyword, humanize.Comma(k.Stats.CompetitionCount), k.Stats.CompetitionLevel)
	fmt.Fprintf(out, "avg price $%s, avg favorites %s\n", humanize.CommafWithDigits(k.Stats.AvgPrice, 2), humanize.FtoaWithDigits(k.Stats.AvgFavorites, 1))
	for _, t := range k.CommonTags {
		fmt.Fprintf(out, "  %-30s %d\n", t.Tag, t.Count)
	}
	return nil
}

func cmdExport(ctx context.Context, svc *services.ShopService, args []string, out io.Writer) error {
	fs := newFlagSet("export")
	path := fs.StringP("out", "o", "", "output file (default top-listings-<keyword>.csv)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: export takes a keyword", errUsage)
	}

	k, err := svc.KeywordResearch(ctx, strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, k.TopListings); err != nil {
		return err
	}
	if *path == "" {
		*path = export.Filename(k.Keyword)
	}
	if err := atomic.WriteFile(*path, &buf); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %d rows to %s\n", len(k.TopListings), *path)
	return nil
}

func userFlag(name string, args []string) (*flag.FlagSet, string, error) {
	fs := newFlagSet(name)
	user := fs.StringP("user", "u", "", "owner user id")
	if err := fs.Parse(args); err != nil {
		return nil, "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if *user == "" {
		return nil, "", fmt.Errorf("%w: --user is required", errUsage)
	}
	return fs, *user, nil
}

func cmdTrack(ctx context.Context, svc *services.TrackerService, args []string, out io.Writer) error {
	fs, user, err := userFlag("track", args)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: track takes one store name", errUsage)
	}

	shop, err := svc.Track(ctx, user, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "tracking %s as %s\n", shop.ShopName, shop.ID)
	return nil
}

// cmdRefresh captures today's snapshot for each of the user's shops. A failed
// shop is reported and the rest still refresh.
func cmdRefresh(ctx context.Context, svc *services.TrackerService, args []string, out io.Writer) error {
	_, user, err := userFlag("refresh", args)
	if err != nil {
		return err
	}

	shops, err := svc.ListTracked(ctx, user)
	if err != nil {
		return err
	}

	failed := 0
	for _, s := range shops {
		snap, err := svc.Refresh(ctx, s.ID, s.ShopID)
		if err != nil {
			log.Printf("refresh %s: %v", s.ID, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%-30s %s sold (last updated %s)\n", s.ShopName, humanize.Comma(snap.TransactionSoldCount), humanize.RelTime(s.LastUpdated, time.Now(), "ago", "from now"))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d shops failed to refresh", failed, len(shops))
	}
	return nil
}
