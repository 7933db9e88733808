package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"beauty-assistant/internal/models"
)

type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Load returns the whole catalog ordered by id.
func (r *ProductRepo) Load(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, name, brand, category, description, image
		FROM products ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &p.Description, &p.Image); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Upsert writes products, replacing rows with the same id.
func (r *ProductRepo) Upsert(ctx context.Context, products []models.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO products (id, name, brand, category, description, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, brand = EXCLUDED.brand,
			category = EXCLUDED.category, description = EXCLUDED.description, image = EXCLUDED.image`

	for _, p := range products {
		if _, err := tx.Exec(ctx, query, p.ID, p.Name, p.Brand, p.Category, p.Description, p.Image); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
