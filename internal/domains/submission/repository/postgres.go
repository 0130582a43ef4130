package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gameshelf-backend/internal/domains/submission/model"
	"gameshelf-backend/pkg/database"
)

type SubmissionRepository interface {
	WithTx(tx pgx.Tx) SubmissionRepository

	Insert(ctx context.Context, s *model.SubmittedGame) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SubmittedGame, error)
	List(ctx context.Context) ([]model.SubmittedGame, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(pool *pgxpool.Pool) SubmissionRepository {
	return &postgresRepository{db: pool}
}

func (r *postgresRepository) WithTx(tx pgx.Tx) SubmissionRepository {
	return &postgresRepository{db: tx}
}

func (r *postgresRepository) Insert(ctx context.Context, s *model.SubmittedGame) error {
	query := `
		INSERT INTO submitted_games (id, name, player_count, description, alias,
			necessities, category_id, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.db.Exec(ctx, query, s.ID, s.Name, s.PlayerCount, s.Description, s.Alias,
		s.Necessities, s.CategoryID, s.CreatorID)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

const submissionColumns = `id, name, player_count, description, alias, necessities, category_id, creator_id, created_at`

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SubmittedGame, error) {
	query := fmt.Sprintf(`SELECT %s FROM submitted_games WHERE id = $1`, submissionColumns)
	var s model.SubmittedGame
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.PlayerCount, &s.Description,
		&s.Alias, &s.Necessities, &s.CategoryID, &s.CreatorID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.SubmittedGame, error) {
	query := fmt.Sprintf(`SELECT %s FROM submitted_games ORDER BY created_at`, submissionColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	out := []model.SubmittedGame{}
	for rows.Next() {
		var s model.SubmittedGame
		if err := rows.Scan(&s.ID, &s.Name, &s.PlayerCount, &s.Description, &s.Alias,
			&s.Necessities, &s.CategoryID, &s.CreatorID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM submitted_games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSubmissionNotFound
	}
	return nil
}
