package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"gameshelf-backend/internal/domains/language/model"
	"gameshelf-backend/pkg/database"
)

type LanguageRepository interface {
	List(ctx context.Context) ([]model.Language, error)
	GetByCode(ctx context.Context, code string) (*model.Language, error)
	Exists(ctx context.Context, id int) (bool, error)
}

type postgresLanguageRepository struct {
	db database.Querier
}

func NewPostgresLanguageRepository(db database.Querier) LanguageRepository {
	return &postgresLanguageRepository{db: db}
}

func (r *postgresLanguageRepository) List(ctx context.Context) ([]model.Language, error) {
	rows, err := r.db.Query(ctx, `SELECT id, code, name FROM languages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	defer rows.Close()

	var languages []model.Language
	for rows.Next() {
		var lang model.Language
		if err := rows.Scan(&lang.ID, &lang.Code, &lang.Name); err != nil {
			return nil, fmt.Errorf("failed to scan language: %w", err)
		}
		languages = append(languages, lang)
	}

	return languages, rows.Err()
}

func (r *postgresLanguageRepository) GetByCode(ctx context.Context, code string) (*model.Language, error) {
	lang := &model.Language{}
	err := r.db.QueryRow(ctx,
		`SELECT id, code, name FROM languages WHERE code = $1`, code,
	).Scan(&lang.ID, &lang.Code, &lang.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLanguageNotFound
		}
		return nil, fmt.Errorf("failed to get language: %w", err)
	}

	return lang, nil
}

func (r *postgresLanguageRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM languages WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check language: %w", err)
	}

	return exists, nil
}
