package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"gameshelf-backend/internal/domains/category/model"
	"gameshelf-backend/pkg/cache"
	"gameshelf-backend/pkg/logger"
)

const (
	categoriesCacheKey = "categories:all"
	categoriesCacheTTL = 10 * time.Minute
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.CategoryDetail, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// postgresRepository - Raw SQL with pgxpool. The category list is small
// and read-heavy, so it is cached whole and invalidated on writes.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) CategoryRepository {
	return &postgresRepository{pool: pool, cache: cache}
}

func (r *postgresRepository) List(ctx context.Context) ([]model.CategoryDetail, error) {
	var cached []model.CategoryDetail
	if hit, err := r.cache.Get(ctx, categoriesCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	byID := map[uuid.UUID]int{}
	out := []model.CategoryDetail{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		byID[c.ID] = len(out)
		out = append(out, model.CategoryDetail{Category: c, Translations: []model.CategoryTranslation{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	trRows, err := r.pool.Query(ctx,
		`SELECT id, category_id, language_id, name FROM category_translations ORDER BY language_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list category translations: %w", err)
	}
	defer trRows.Close()
	for trRows.Next() {
		var t model.CategoryTranslation
		if err := trRows.Scan(&t.ID, &t.CategoryID, &t.LanguageID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category translation row: %w", err)
		}
		if idx, ok := byID[t.CategoryID]; ok {
			out[idx].Translations = append(out[idx].Translations, t)
		}
	}
	if err := trRows.Err(); err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, categoriesCacheKey, out, categoriesCacheTTL); err != nil {
		logger.Warn("failed to cache category list", err)
	}
	return out, nil
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	c := &model.Category{ID: uuid.New(), Name: req.Name, CreatedAt: time.Now()}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)`, c.ID, c.Name, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	for _, t := range req.Translations {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO category_translations (id, category_id, language_id, name)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (category_id, language_id) DO UPDATE SET name = EXCLUDED.name
		`, uuid.New(), c.ID, t.LanguageID, t.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to insert category translation: %w", err)
		}
	}
	r.invalidate(ctx)
	return c, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM category_translations WHERE category_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category translations: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	r.invalidate(ctx)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, categoriesCacheKey); err != nil {
		logger.Warn("failed to invalidate category cache", err)
	}
}
