package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dermamatch/internal/domain"
)

// ProductRepository persiste el catalogo y expone el contrato de query
// que consume el recomendador (service.Catalog, satisfecho sin importar
// ese paquete).
type ProductRepository interface {
	FindCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (domain.Product, error)
	UpsertSeed(ctx context.Context, product domain.Product) error
}

type PgProductRepository struct {
	pool *pgxpool.Pool
}

func NewPgProductRepository(pool *pgxpool.Pool) *PgProductRepository {
	return &PgProductRepository{pool: pool}
}

const productColumns = `id, name, brand, category, description, ingredients, published, skin_types, tags, safety_score, created_at`

// FindCandidates implementa el contrato de candidatos del recomendador:
// published AND compatibilidad de arquetipo AND categoria preferida AND
// (required-any vacio O interseccion de tags) AND sin tags excluidos.
func (r *PgProductRepository) FindCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Product, error) {
	const query = `
		SELECT ` + productColumns + `
		FROM products
		WHERE published = TRUE
		  AND $1 = ANY(skin_types)
		  AND category = ANY($2)
		  AND (cardinality($3::text[]) = 0 OR tags && $3)
		  AND NOT (tags && $4)
		ORDER BY id
	`
	required := filter.RequiredTagsAny
	if required == nil {
		required = []string{}
	}
	excluded := filter.ExcludedTags
	if excluded == nil {
		excluded = []string{}
	}

	rows, err := r.pool.Query(ctx, query,
		string(filter.SkinType),
		filter.Categories,
		required,
		excluded,
	)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PgProductRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	const query = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, err
	}
	return p, err
}

// UpsertSeed inserta o actualiza un producto ya enriquecido (tags y
// safety score incluidos) desde el pipeline de seed.
func (r *PgProductRepository) UpsertSeed(ctx context.Context, product domain.Product) error {
	const query = `
		INSERT INTO products (id, name, brand, category, description, ingredients, published, skin_types, tags, safety_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			brand = EXCLUDED.brand,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			ingredients = EXCLUDED.ingredients,
			published = EXCLUDED.published,
			skin_types = EXCLUDED.skin_types,
			tags = EXCLUDED.tags,
			safety_score = EXCLUDED.safety_score
	`
	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Brand,
		product.Category,
		product.Description,
		product.Ingredients,
		product.Published,
		skinTypeStrings(product.SkinTypes),
		product.Tags,
		product.SafetyScore,
		product.CreatedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var skinTypes []string
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Category,
		&p.Description,
		&p.Ingredients,
		&p.Published,
		&skinTypes,
		&p.Tags,
		&p.SafetyScore,
		&p.CreatedAt,
	); err != nil {
		return domain.Product{}, err
	}
	for _, st := range skinTypes {
		p.SkinTypes = append(p.SkinTypes, domain.SkinType(st))
	}
	return p, nil
}

func skinTypeStrings(types []domain.SkinType) []string {
	out := make([]string, 0, len(types))
	for _, st := range types {
		out = append(out, string(st))
	}
	return out
}
