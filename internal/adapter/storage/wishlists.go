package storage

import (
	"context"
	"fmt"

	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
)

var _ port.WishlistStore = (*WishlistsRepository)(nil)
var _ port.WishlistRowsReader = (*WishlistsRepository)(nil)

type WishlistsRepository struct {
	sqldb sqldb
}

func NewWishlistsRepository(sqldb sqldb) WishlistsRepository {
	return WishlistsRepository{sqldb}
}

func (r WishlistsRepository) GetWishlist(
	ctx context.Context, userID string,
) ([]domain.WishlistItem, error) {
	const op = "WishlistsRepository.GetWishlist"

	query := `
		SELECT id, user_id, product_id, created_at
		FROM wishlists
		WHERE user_id = $1
		ORDER BY created_at DESC;`

	rows, err := r.sqldb.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	defer rows.Close()

	items, err := scanWishlistItems(rows.Next, rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return items, nil
}

func (r WishlistsRepository) AddToWishlist(
	ctx context.Context, userID string, productID int64,
) error {
	const op = "WishlistsRepository.AddToWishlist"

	query := `
		INSERT INTO wishlists (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING;`

	if _, err := r.sqldb.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return nil
}

func (r WishlistsRepository) RemoveFromWishlist(
	ctx context.Context, userID string, productID int64,
) error {
	const op = "WishlistsRepository.RemoveFromWishlist"

	query := `DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2;`

	if _, err := r.sqldb.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return nil
}

// WishlistRows returns every wishlist row, for the analytics rollup.
func (r WishlistsRepository) WishlistRows(
	ctx context.Context,
) ([]domain.WishlistItem, error) {
	const op = "WishlistsRepository.WishlistRows"

	query := `SELECT id, user_id, product_id, created_at FROM wishlists;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	defer rows.Close()

	items, err := scanWishlistItems(rows.Next, rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return items, nil
}

func scanWishlistItems(
	next func() bool, scan func(dest ...any) error,
) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem
	for next() {
		var it domain.WishlistItem
		err := scan(&it.ID, &it.UserID, &it.ProductID, &it.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
