package postgres

// Package postgres provides a Postgres-backed cart snapshot store for
// deployments without Redis. Each cart is one row holding the JSON
// snapshot; the schema is created on startup.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/storez/storefront/internal/domain/cart"
	apperrors "github.com/storez/storefront/internal/errors"
	"github.com/storez/storefront/internal/ports"
)

var _ ports.CartStorage = (*CartStore)(nil)

// CartStore persists cart snapshots in a Postgres table.
type CartStore struct {
	DB *sql.DB
}

// NewCartStore creates a new Postgres cart snapshot store.
func NewCartStore(db *sql.DB) *CartStore {
	return &CartStore{DB: db}
}

// EnsureSchema creates the snapshot table if it does not exist.
// Called once at startup by bootstrap.
func (s *CartStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS cart_snapshots (
			cart_id    text PRIMARY KEY,
			items      jsonb NOT NULL DEFAULT '[]'::jsonb,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`
	if _, err := s.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure cart_snapshots schema: %w", apperrors.MapDBError(err))
	}
	return nil
}

// Load retrieves a snapshot. A missing row yields a nil slice; a
// malformed snapshot decodes to an empty cart per the tolerant contract.
func (s *CartStore) Load(ctx context.Context, cartID string) ([]cart.Item, error) {
	if cartID == "" {
		return nil, errors.New("cart ID cannot be empty")
	}

	var raw []byte
	err := withPgxConn(ctx, s.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT items FROM cart_snapshots WHERE cart_id = $1`, cartID)
		if err != nil {
			return err
		}
		defer rows.Close()

		raw, err = pgx.CollectOneRow(rows, pgx.RowTo[[]byte])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart snapshot: %w", apperrors.MapDBError(err))
	}

	return cart.DecodeSnapshot(raw), nil
}

// Save upserts the full snapshot for the cart.
func (s *CartStore) Save(ctx context.Context, cartID string, items []cart.Item) error {
	if cartID == "" {
		return errors.New("cart ID cannot be empty")
	}

	data, err := cart.EncodeSnapshot(items)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO cart_snapshots (cart_id, items, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (cart_id)
		DO UPDATE SET items = EXCLUDED.items, updated_at = now()`,
		cartID, data)
	if err != nil {
		return fmt.Errorf("save cart snapshot: %w", apperrors.MapDBError(err))
	}
	return nil
}

// Delete removes the snapshot row. Deleting a missing cart is not an error.
func (s *CartStore) Delete(ctx context.Context, cartID string) error {
	if cartID == "" {
		return nil
	}
	if _, err := s.DB.ExecContext(ctx,
		`DELETE FROM cart_snapshots WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("delete cart snapshot: %w", apperrors.MapDBError(err))
	}
	return nil
}
