package storage

import (
	"context"
	"fmt"

	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
)

var _ port.CategoriesReader = (*CategoriesRepository)(nil)

type CategoriesRepository struct {
	sqldb sqldb
}

func NewCategoriesRepository(sqldb sqldb) CategoriesRepository {
	return CategoriesRepository{sqldb}
}

func (r CategoriesRepository) ListCategories(
	ctx context.Context,
) ([]domain.Category, error) {
	const op = "CategoriesRepository.ListCategories"

	query := `
		SELECT id, name, description, image, product_count,
			is_active, created_at
		FROM categories
		WHERE is_active = TRUE
		ORDER BY name;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	defer rows.Close()

	var cs []domain.Category
	for rows.Next() {
		var c domain.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Image,
			&c.ProductCount, &c.IsActive, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cs = append(cs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return cs, nil
}
