package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/saydulla27/foodapp-frontend/internal/cart"
)

// CartRepo persists carts in postgres, one row per tenant.
type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

// Init creates the carts table when it does not exist yet.
func (r *CartRepo) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS webapp_carts (
			storage_key TEXT PRIMARY KEY,
			data        JSONB NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create carts table: %w", err)
	}
	return nil
}

func (r *CartRepo) Load(ctx context.Context, tenantID int64) (cart.Cart, error) {
	var data []byte

	query := `SELECT data FROM webapp_carts WHERE storage_key = $1`

	err := r.db.QueryRowContext(ctx, query, cart.StorageKey(tenantID)).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cart.Cart{}, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart.Decode(data), nil
}

func (r *CartRepo) Save(ctx context.Context, tenantID int64, c cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	query := `
		INSERT INTO webapp_carts (storage_key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (storage_key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, cart.StorageKey(tenantID), data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (r *CartRepo) Clear(ctx context.Context, tenantID int64) error {
	query := `DELETE FROM webapp_carts WHERE storage_key = $1`

	if _, err := r.db.ExecContext(ctx, query, cart.StorageKey(tenantID)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
