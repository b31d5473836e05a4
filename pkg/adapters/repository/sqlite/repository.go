package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"                               // Postgres driver
	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/core/domain"
	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

// SQLiteRepository stores the trackedShops/{id}/snapshots/{date} document
// layout as two tables keyed by (id) and (tracked_shop_id, date).
type SQLiteRepository struct {
	db       *sql.DB
	postgres bool
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := driverFor(dbURL)

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db, postgres: driverName == "postgres"}, nil
}

func driverFor(dbURL string) string {
	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return "postgres"
	case strings.Contains(dbURL, "libsql://"), strings.Contains(dbURL, "wss://"):
		return "libsql"
	default:
		return "sqlite"
	}
}

func migrate(db *sql.DB) error {
	// last_updated is unix milliseconds so every driver reads it the same way
	query := `
	CREATE TABLE IF NOT EXISTS tracked_shops (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		shop_id BIGINT NOT NULL,
		shop_name TEXT NOT NULL,
		icon_url TEXT,
		url TEXT,
		last_updated BIGINT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tracked_shops_user_id ON tracked_shops(user_id);

	CREATE TABLE IF NOT EXISTS shop_snapshots (
		tracked_shop_id TEXT NOT NULL,
		date TEXT NOT NULL,
		sold_count BIGINT DEFAULT 0,
		active_listing_count BIGINT DEFAULT 0,
		favorer_count BIGINT DEFAULT 0,
		PRIMARY KEY (tracked_shop_id, date)
	);
	`
	_, err := db.Exec(query)
	return err
}

// rebind rewrites ? placeholders as $1..$n for Postgres
func (r *SQLiteRepository) rebind(query string) string {
	if !r.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (r *SQLiteRepository) CreateTrackedShop(ctx context.Context, shop *domain.TrackedShop, snapshot *domain.ShopSnapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, r.rebind(`SELECT 1 FROM tracked_shops WHERE id = ?`), shop.ID).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%w %q", domain.ErrAlreadyTracking, shop.ShopName)
	}
	if err != sql.ErrNoRows {
		return err
	}

	// 1. Tracked shop document
	queryShop := `INSERT INTO tracked_shops (id, user_id, shop_id, shop_name, icon_url, url, last_updated)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, r.rebind(queryShop),
		shop.ID, shop.UserID, shop.ShopID, shop.ShopName, nullString(shop.IconURL), shop.URL, shop.LastUpdated.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w %q", domain.ErrAlreadyTracking, shop.ShopName)
		}
		return err
	}

	// 2. First snapshot
	if err := r.upsertSnapshot(ctx, tx, shop.ID, snapshot); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLiteRepository) GetTrackedShop(ctx context.Context, id string) (*domain.TrackedShop, error) {
	query := `SELECT id, user_id, shop_id, shop_name, icon_url, url, last_updated
			  FROM tracked_shops WHERE id = ?`

	shop, err := scanTrackedShop(r.db.QueryRowContext(ctx, r.rebind(query), id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return shop, nil
}

func (r *SQLiteRepository) ListTrackedShops(ctx context.Context, userID string) ([]domain.TrackedShop, error) {
	query := `SELECT id, user_id, shop_id, shop_name, icon_url, url, last_updated
			  FROM tracked_shops WHERE user_id = ? ORDER BY shop_name ASC`

	rows, err := r.db.QueryContext(ctx, r.rebind(query), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := []domain.TrackedShop{}
	for rows.Next() {
		s, err := scanTrackedShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, *s)
	}
	return shops, rows.Err()
}

func (r *SQLiteRepository) DeleteTrackedShop(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.rebind(`DELETE FROM shop_snapshots WHERE tracked_shop_id = ?`), id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, r.rebind(`DELETE FROM tracked_shops WHERE id = ?`), id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) UpsertSnapshot(ctx context.Context, trackedShopID string, snapshot *domain.ShopSnapshot, updatedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.upsertSnapshot(ctx, tx, trackedShopID, snapshot); err != nil {
		return err
	}

	queryTouch := `UPDATE tracked_shops SET last_updated = ? WHERE id = ?`
	res, err := tx.ExecContext(ctx, r.rebind(queryTouch), updatedAt.UnixMilli(), trackedShopID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// rollback drops the snapshot written above
		return domain.NotFound("tracked shop not found")
	}

	return tx.Commit()
}

func (r *SQLiteRepository) upsertSnapshot(ctx context.Context, tx *sql.Tx, trackedShopID string, s *domain.ShopSnapshot) error {
	query := `INSERT INTO shop_snapshots (tracked_shop_id, date, sold_count, active_listing_count, favorer_count)
			  VALUES (?, ?, ?, ?, ?)
			  ON CONFLICT (tracked_shop_id, date) DO UPDATE SET
				sold_count = excluded.sold_count,
				active_listing_count = excluded.active_listing_count,
				favorer_count = excluded.favorer_count`
	_, err := tx.ExecContext(ctx, r.rebind(query),
		trackedShopID, s.Date, s.TransactionSoldCount, s.ListingActiveCount, s.NumFavorers)
	return err
}

func (r *SQLiteRepository) LatestSnapshots(ctx context.Context, trackedShopID string, limit int) ([]domain.ShopSnapshot, error) {
	query := `SELECT date, sold_count, active_listing_count, favorer_count
			  FROM shop_snapshots WHERE tracked_shop_id = ?
			  ORDER BY date DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, r.rebind(query), trackedShopID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []domain.ShopSnapshot{}
	for rows.Next() {
		var s domain.ShopSnapshot
		if err := rows.Scan(&s.Date, &s.TransactionSoldCount, &s.ListingActiveCount, &s.NumFavorers); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrackedShop(row scanner) (*domain.TrackedShop, error) {
	var s domain.TrackedShop
	var iconURL, url sql.NullString
	var lastUpdated int64
	if err := row.Scan(&s.ID, &s.UserID, &s.ShopID, &s.ShopName, &iconURL, &url, &lastUpdated); err != nil {
		return nil, err
	}
	if iconURL.Valid {
		s.IconURL = &iconURL.String
	}
	s.URL = url.String
	s.LastUpdated = time.UnixMilli(lastUpdated).UTC()
	return &s, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

// Ensure interface compliance
var _ ports.TrackingRepository = (*SQLiteRepository)(nil)
