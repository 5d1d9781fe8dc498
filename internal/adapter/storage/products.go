package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
)

var _ port.ProductsReader = (*ProductsRepository)(nil)
var _ port.ProductsSearcher = (*ProductsRepository)(nil)
var _ port.ProductsWriter = (*ProductsRepository)(nil)

// searchLimit caps the header-search summary projection.
const searchLimit = 10

const productColumns = `
	id, name, description, category, colors, sizes, images,
	price, original_price, stock, rating, review_count,
	features, specifications, is_active, is_featured,
	created_at, updated_at`

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) ListProducts(
	ctx context.Context, q port.ProductQuery,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query, args := buildListQuery(q)

	rows, err := r.sqldb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return ps, nil
}

func buildListQuery(q port.ProductQuery) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT" + productColumns + " FROM products WHERE is_active = TRUE")

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.Category != "" && q.Category != domain.CategoryAll {
		b.WriteString(" AND category = " + arg(q.Category))
	}
	if q.Search != "" {
		b.WriteString(" AND name ILIKE " + arg("%" + q.Search + "%"))
	}
	if q.MinPrice > 0 {
		b.WriteString(" AND price >= " + arg(q.MinPrice))
	}
	if q.MaxPrice > 0 {
		b.WriteString(" AND price <= " + arg(q.MaxPrice))
	}

	switch q.SortBy {
	case domain.SortPriceAsc:
		b.WriteString(" ORDER BY price ASC")
	case domain.SortPriceDesc:
		b.WriteString(" ORDER BY price DESC")
	case domain.SortRatingDesc:
		b.WriteString(" ORDER BY rating DESC")
	default:
		b.WriteString(" ORDER BY created_at DESC")
	}

	return b.String() + ";", args
}

func (r ProductsRepository) GetProduct(
	ctx context.Context, id int64,
) (domain.Product, error) {
	const op = "ProductsRepository.GetProduct"

	query := `
		SELECT` + productColumns + `
		FROM products
		WHERE id = $1 AND is_active = TRUE;`

	row := r.sqldb.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row.Scan)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return p, nil
}

func (r ProductsRepository) SearchProducts(
	ctx context.Context, text string,
) ([]domain.ProductSummary, error) {
	const op = "ProductsRepository.SearchProducts"

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	query := `
		SELECT id, name, price, images, category
		FROM products
		WHERE is_active = TRUE
			AND (name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1)
		LIMIT $2;`

	rows, err := r.sqldb.QueryContext(ctx, query, "%"+text+"%", searchLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	defer rows.Close()

	var out []domain.ProductSummary
	for rows.Next() {
		var s domain.ProductSummary
		var imagesS string
		err := rows.Scan(&s.ID, &s.Name, &s.Price, &imagesS, &s.Category)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal([]byte(imagesS), &s.Images); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return out, nil
}

func (r ProductsRepository) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.CreateProduct"

	query := `
		INSERT INTO products (
			name, description, category, colors, sizes, images,
			price, original_price, stock, rating, review_count,
			features, specifications, is_active, is_featured,
			discount_percentage
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16)
		RETURNING` + productColumns + `;`

	colorsB, _ := json.Marshal(p.Colors)
	sizesB, _ := json.Marshal(p.Sizes)
	imagesB, _ := json.Marshal(p.Images)
	featuresB, _ := json.Marshal(p.Features)
	specsB, _ := json.Marshal(p.Specifications)

	row := r.sqldb.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Category,
		string(colorsB), string(sizesB), string(imagesB),
		p.Price, p.OriginalPrice, p.Stock, p.Rating, p.ReviewCount,
		string(featuresB), string(specsB), p.IsActive, p.IsFeatured,
		p.DiscountPercentage(),
	)
	created, err := scanProduct(row.Scan)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return created, nil
}

func (r ProductsRepository) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.UpdateProduct"

	query := `
		UPDATE products SET
			name = $2, description = $3, category = $4,
			colors = $5, sizes = $6, images = $7,
			price = $8, original_price = $9, stock = $10,
			rating = $11, review_count = $12, features = $13,
			specifications = $14, is_active = $15, is_featured = $16,
			discount_percentage = $17, updated_at = now()
		WHERE id = $1
		RETURNING` + productColumns + `;`

	colorsB, _ := json.Marshal(p.Colors)
	sizesB, _ := json.Marshal(p.Sizes)
	imagesB, _ := json.Marshal(p.Images)
	featuresB, _ := json.Marshal(p.Features)
	specsB, _ := json.Marshal(p.Specifications)

	row := r.sqldb.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Description, p.Category,
		string(colorsB), string(sizesB), string(imagesB),
		p.Price, p.OriginalPrice, p.Stock, p.Rating, p.ReviewCount,
		string(featuresB), string(specsB), p.IsActive, p.IsFeatured,
		p.DiscountPercentage(),
	)
	updated, err := scanProduct(row.Scan)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return updated, nil
}

func (r ProductsRepository) DeleteProduct(
	ctx context.Context, id int64,
) error {
	const op = "ProductsRepository.DeleteProduct"
	log := slog.With("op", op)

	res, err := r.sqldb.ExecContext(ctx,
		`DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}

	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	log.Info("product deleted", "id", id)
	return nil
}

func scanProduct(scan func(dest ...any) error) (domain.Product, error) {
	var (
		p                                          domain.Product
		colorsS, sizesS, imagesS, featuresS, specS string
	)
	err := scan(
		&p.ID, &p.Name, &p.Description, &p.Category,
		&colorsS, &sizesS, &imagesS,
		&p.Price, &p.OriginalPrice, &p.Stock, &p.Rating, &p.ReviewCount,
		&featuresS, &specS, &p.IsActive, &p.IsFeatured,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	for _, pair := range []struct {
		raw  string
		dest any
	}{
		{colorsS, &p.Colors},
		{sizesS, &p.Sizes},
		{imagesS, &p.Images},
		{featuresS, &p.Features},
		{specS, &p.Specifications},
	} {
		if pair.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(pair.raw), pair.dest); err != nil {
			return domain.Product{}, err
		}
	}
	return p, nil
}
