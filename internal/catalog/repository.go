package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Repository is a SQLite-backed catalog. The product table is written only
// by migrations; at runtime the catalog is read-only.
type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := `
		SELECT id, name, description, unit_price, category, icon, image_url
		FROM products
		WHERE id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	defer rows.Close()

	var product *Product
	for rows.Next() {
		p, errScan := scanProduct(rows)
		if errScan != nil {
			return nil, errScan
		}
		product = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (r *Repository) ListByCategory(ctx context.Context, category Category) ([]*Product, error) {
	query := `
		SELECT id, name, description, unit_price, category, icon, image_url
		FROM products
		ORDER BY id
	`
	args := []any{}
	if category != CategoryAll {
		query = `
			SELECT id, name, description, unit_price, category, icon, image_url
			FROM products
			WHERE category = $1
			ORDER BY id
		`
		args = append(args, string(category))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		p, errScan := scanProduct(rows)
		if errScan != nil {
			return nil, errScan
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) Categories(ctx context.Context) ([]Category, error) {
	query := `
		SELECT category
		FROM products
		GROUP BY category
		ORDER BY MIN(id)
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{CategoryAll}
	for rows.Next() {
		var c string
		if errScan := rows.Scan(&c); errScan != nil {
			return nil, fmt.Errorf("failed to scan category: %w", errScan)
		}
		categories = append(categories, Category(c))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return categories, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func scanProduct(rows *sql.Rows) (*Product, error) {
	p := &Product{}
	var price, category string
	err := rows.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&price,
		&category,
		&p.Icon,
		&p.ImageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	p.UnitPrice, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid unit price for product %d: %w", p.ID, err)
	}
	p.Category = Category(category)
	return p, nil
}
