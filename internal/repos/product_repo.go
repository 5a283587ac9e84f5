package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"shopassist/internal/domain"
)

const productCols = `
    id, name, category, price, description, brand, rating, image_url,
    COALESCE(specifications,'') AS specifications, COALESCE(created_at,'') AS created_at`

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT`+productCols+`
  FROM products
  ORDER BY created_at DESC, id ASC
`)
	if err != nil {
		return nil, domain.StoreUnavailable("list products", err)
	}
	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `
  SELECT`+productCols+`
  FROM products
  WHERE id = ?
`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, domain.StoreUnavailable("get product", err)
	}
	return p, nil
}

func (r *ProductRepo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT`+productCols+`
  FROM products
  WHERE category = ?
  ORDER BY created_at DESC, id ASC
`, category)
	if err != nil {
		return nil, domain.StoreUnavailable("list products by category", err)
	}
	return out, nil
}

func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	out := []string{}
	if err := r.db.SelectContext(ctx, &out, `SELECT DISTINCT category FROM products ORDER BY category`); err != nil {
		return nil, domain.StoreUnavailable("list categories", err)
	}
	return out, nil
}

// Search matches q as a case-insensitive substring of name, description,
// category or brand.
func (r *ProductRepo) Search(ctx context.Context, q string) ([]domain.Product, error) {
	like := "%" + escapeLike(strings.ToLower(q)) + "%"
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT`+productCols+`
  FROM products
  WHERE LOWER(name || ' ' || description || ' ' || category || ' ' || brand) LIKE ? ESCAPE '\'
  ORDER BY created_at DESC, id ASC
`, like)
	if err != nil {
		return nil, domain.StoreUnavailable("search products", err)
	}
	return out, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
