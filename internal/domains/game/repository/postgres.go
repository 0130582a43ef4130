package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gameshelf-backend/internal/domains/game/model"
	"gameshelf-backend/pkg/database"
)

// postgresRepository - Raw SQL with pgxpool. The db field holds either
// the pool or a transaction, so the same queries run in both modes.
type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(pool *pgxpool.Pool) GameRepository {
	return &postgresRepository{db: pool}
}

func (r *postgresRepository) WithTx(tx pgx.Tx) GameRepository {
	return &postgresRepository{db: tx}
}

// ========================= CANONICAL ROWS =========================

func (r *postgresRepository) Insert(ctx context.Context, g *model.Game) error {
	query := `
		INSERT INTO games (id, name, player_count, image, description, alias,
			category_id, creator_id, publish, new, popularity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		g.ID, g.Name, g.PlayerCount, g.Image, g.Description, g.Alias,
		g.CategoryID, g.CreatorID, g.Publish, g.New)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

const gameColumns = `id, name, player_count, image, description, alias,
	category_id, creator_id, publish, new, popularity, created_at, updated_at`

func scanGame(row pgx.Row) (*model.Game, error) {
	var g model.Game
	err := row.Scan(&g.ID, &g.Name, &g.PlayerCount, &g.Image, &g.Description, &g.Alias,
		&g.CategoryID, &g.CreatorID, &g.Publish, &g.New, &g.Popularity, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}
	return &g, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE id = $1`, gameColumns)
	return scanGame(r.db.QueryRow(ctx, query, id))
}

func (r *postgresRepository) GetImage(ctx context.Context, id uuid.UUID) (string, error) {
	var image string
	err := r.db.QueryRow(ctx, `SELECT image FROM games WHERE id = $1`, id).Scan(&image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrGameNotFound
		}
		return "", fmt.Errorf("failed to get game image: %w", err)
	}
	return image, nil
}

func (r *postgresRepository) UpdateScalars(ctx context.Context, id uuid.UUID, playerCount int, categoryID uuid.UUID) error {
	query := `UPDATE games SET player_count = $1, category_id = $2, updated_at = NOW() WHERE id = $3`
	tag, err := r.db.Exec(ctx, query, playerCount, categoryID, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateImage(ctx context.Context, id uuid.UUID, image string) error {
	tag, err := r.db.Exec(ctx, `UPDATE games SET image = $1, updated_at = NOW() WHERE id = $2`, image, id)
	if err != nil {
		return fmt.Errorf("failed to update game image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (r *postgresRepository) UpdatePublish(ctx context.Context, id uuid.UUID, publish bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE games SET publish = $1, updated_at = NOW() WHERE id = $2`, publish, id)
	if err != nil {
		return fmt.Errorf("failed to update publish flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateNew(ctx context.Context, id uuid.UUID, isNew bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE games SET new = $1, updated_at = NOW() WHERE id = $2`, isNew, id)
	if err != nil {
		return fmt.Errorf("failed to update new flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

// RefreshDenormalized copies the default-language translation back onto
// the canonical row.
func (r *postgresRepository) RefreshDenormalized(ctx context.Context, id uuid.UUID, name string, alias *string, description string) error {
	query := `UPDATE games SET name = $1, alias = $2, description = $3, updated_at = NOW() WHERE id = $4`
	tag, err := r.db.Exec(ctx, query, name, alias, description, id)
	if err != nil {
		return fmt.Errorf("failed to refresh denormalized fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateAlias(ctx context.Context, id uuid.UUID, alias *string) error {
	tag, err := r.db.Exec(ctx, `UPDATE games SET alias = $1, updated_at = NOW() WHERE id = $2`, alias, id)
	if err != nil {
		return fmt.Errorf("failed to update game alias: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateDescription(ctx context.Context, id uuid.UUID, description string) error {
	tag, err := r.db.Exec(ctx, `UPDATE games SET description = $1, updated_at = NOW() WHERE id = $2`, description, id)
	if err != nil {
		return fmt.Errorf("failed to update game description: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (r *postgresRepository) ListPublished(ctx context.Context) ([]model.Game, error) {
	return r.listGames(ctx, `WHERE publish = true`)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Game, error) {
	return r.listGames(ctx, ``)
}

func (r *postgresRepository) listGames(ctx context.Context, where string) ([]model.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games %s ORDER BY created_at DESC`, gameColumns, where)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	games := []model.Game{}
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(&g.ID, &g.Name, &g.PlayerCount, &g.Image, &g.Description, &g.Alias,
			&g.CategoryID, &g.CreatorID, &g.Publish, &g.New, &g.Popularity, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// ========================= TRANSLATIONS =========================

// UpsertTranslation replaces the whole translation row for the
// (game, language) pair. Absent alias/description clear stored values.
func (r *postgresRepository) UpsertTranslation(ctx context.Context, t *model.Translation) error {
	query := `
		INSERT INTO game_translations (id, game_id, language_id, name, alias, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (game_id, language_id)
		DO UPDATE SET name = EXCLUDED.name, alias = EXCLUDED.alias, description = EXCLUDED.description
	`
	_, err := r.db.Exec(ctx, query, t.ID, t.GameID, t.LanguageID, t.Name, t.Alias, t.Description)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *postgresRepository) UpdateTranslationAlias(ctx context.Context, gameID uuid.UUID, languageID int, alias *string) error {
	query := `UPDATE game_translations SET alias = $1 WHERE game_id = $2 AND language_id = $3`
	_, err := r.db.Exec(ctx, query, alias, gameID, languageID)
	if err != nil {
		return fmt.Errorf("failed to update translation alias: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateTranslationDescription(ctx context.Context, gameID uuid.UUID, languageID int, description string) error {
	query := `UPDATE game_translations SET description = $1 WHERE game_id = $2 AND language_id = $3`
	_, err := r.db.Exec(ctx, query, description, gameID, languageID)
	if err != nil {
		return fmt.Errorf("failed to update translation description: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListTranslations(ctx context.Context, gameID uuid.UUID) ([]model.Translation, error) {
	query := `
		SELECT id, game_id, language_id, name, alias, description
		FROM game_translations
		WHERE game_id = $1
		ORDER BY language_id
	`
	rows, err := r.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}
	defer rows.Close()
	return scanTranslations(rows)
}

// ListAllTranslations feeds the slug backfill job.
func (r *postgresRepository) ListAllTranslations(ctx context.Context) ([]model.Translation, error) {
	query := `SELECT id, game_id, language_id, name, alias, description FROM game_translations`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}
	defer rows.Close()
	return scanTranslations(rows)
}

func scanTranslations(rows pgx.Rows) ([]model.Translation, error) {
	out := []model.Translation{}
	for rows.Next() {
		var t model.Translation
		if err := rows.Scan(&t.ID, &t.GameID, &t.LanguageID, &t.Name, &t.Alias, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan translation row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *postgresRepository) DeleteTranslations(ctx context.Context, gameID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM game_translations WHERE game_id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("failed to delete translations: %w", err)
	}
	return nil
}

// ========================= SLUGS =========================

func (r *postgresRepository) UpsertSlug(ctx context.Context, s *model.Slug) error {
	query := `
		INSERT INTO game_slugs (game_id, language_id, slug)
		VALUES ($1, $2, $3)
		ON CONFLICT (game_id, language_id)
		DO UPDATE SET slug = EXCLUDED.slug
	`
	_, err := r.db.Exec(ctx, query, s.GameID, s.LanguageID, s.Slug)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *postgresRepository) ResolveSlug(ctx context.Context, languageCode, slug string) (uuid.UUID, error) {
	query := `
		SELECT gs.game_id
		FROM game_slugs gs
		JOIN languages l ON gs.language_id = l.id
		WHERE l.code = $1 AND gs.slug = $2
	`
	var gameID uuid.UUID
	err := r.db.QueryRow(ctx, query, languageCode, slug).Scan(&gameID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, model.ErrGameNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve slug: %w", err)
	}
	return gameID, nil
}

func (r *postgresRepository) DeleteSlugs(ctx context.Context, gameID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM game_slugs WHERE game_id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("failed to delete slugs: %w", err)
	}
	return nil
}

// ========================= NECESSITIES =========================

func (r *postgresRepository) InsertNecessity(ctx context.Context, n *model.Necessity) error {
	query := `INSERT INTO necessities (id, name, game_id) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, n.ID, n.Name, n.GameID)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

// UpdateNecessityName is scoped by game so a caller can never touch a
// necessity belonging to another game.
func (r *postgresRepository) UpdateNecessityName(ctx context.Context, id, gameID uuid.UUID, name string) error {
	query := `UPDATE necessities SET name = $1 WHERE id = $2 AND game_id = $3`
	tag, err := r.db.Exec(ctx, query, name, id, gameID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNecessityNotFound
	}
	return nil
}

func (r *postgresRepository) FindNecessityByName(ctx context.Context, gameID uuid.UUID, name string) (*model.Necessity, error) {
	query := `SELECT id, name, game_id FROM necessities WHERE game_id = $1 AND name = $2`
	var n model.Necessity
	err := r.db.QueryRow(ctx, query, gameID, name).Scan(&n.ID, &n.Name, &n.GameID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNecessityNotFound
		}
		return nil, fmt.Errorf("failed to find necessity: %w", err)
	}
	return &n, nil
}

func (r *postgresRepository) UpsertNecessityTranslation(ctx context.Context, necessityID uuid.UUID, languageID int, name string) error {
	query := `
		INSERT INTO necessity_translations (id, necessity_id, language_id, name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (necessity_id, language_id)
		DO UPDATE SET name = EXCLUDED.name
	`
	_, err := r.db.Exec(ctx, query, uuid.New(), necessityID, languageID, name)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *postgresRepository) ListNecessities(ctx context.Context, gameID uuid.UUID) ([]model.NecessityDetail, error) {
	query := `SELECT id, name, game_id FROM necessities WHERE game_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list necessities: %w", err)
	}
	defer rows.Close()

	byID := map[uuid.UUID]int{}
	out := []model.NecessityDetail{}
	for rows.Next() {
		var n model.Necessity
		if err := rows.Scan(&n.ID, &n.Name, &n.GameID); err != nil {
			return nil, fmt.Errorf("failed to scan necessity row: %w", err)
		}
		byID[n.ID] = len(out)
		out = append(out, model.NecessityDetail{Necessity: n, Translations: []model.NecessityTranslation{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	trQuery := `
		SELECT nt.id, nt.necessity_id, nt.language_id, nt.name
		FROM necessity_translations nt
		JOIN necessities n ON nt.necessity_id = n.id
		WHERE n.game_id = $1
		ORDER BY nt.language_id
	`
	trRows, err := r.db.Query(ctx, trQuery, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list necessity translations: %w", err)
	}
	defer trRows.Close()
	for trRows.Next() {
		var t model.NecessityTranslation
		if err := trRows.Scan(&t.ID, &t.NecessityID, &t.LanguageID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan necessity translation row: %w", err)
		}
		if idx, ok := byID[t.NecessityID]; ok {
			out[idx].Translations = append(out[idx].Translations, t)
		}
	}
	return out, trRows.Err()
}

// DeleteNecessitiesExcept removes every necessity of the game whose id
// is not in keep, translations first. An empty keep wipes them all.
func (r *postgresRepository) DeleteNecessitiesExcept(ctx context.Context, gameID uuid.UUID, keep []uuid.UUID) error {
	if keep == nil {
		keep = []uuid.UUID{}
	}
	_, err := r.db.Exec(ctx, `
		DELETE FROM necessity_translations
		WHERE necessity_id IN (
			SELECT id FROM necessities WHERE game_id = $1 AND NOT (id = ANY($2))
		)
	`, gameID, keep)
	if err != nil {
		return fmt.Errorf("failed to delete orphan necessity translations: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`DELETE FROM necessities WHERE game_id = $1 AND NOT (id = ANY($2))`, gameID, keep)
	if err != nil {
		return fmt.Errorf("failed to delete orphan necessities: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteNecessities(ctx context.Context, gameID uuid.UUID) error {
	return r.DeleteNecessitiesExcept(ctx, gameID, nil)
}

// ========================= ERROR MAPPING =========================

// mapPgError turns constraint violations into domain errors.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("database error: %w", err)
	}
	switch pgErr.Code {
	case "23505":
		switch {
		case strings.Contains(pgErr.ConstraintName, "game_slugs_slug"):
			return model.ErrSlugTaken
		case strings.Contains(pgErr.ConstraintName, "necessities_name"):
			return model.ErrDuplicateNecessity
		}
		return fmt.Errorf("unique constraint %s violated: %w", pgErr.ConstraintName, err)
	case "23503":
		return model.ErrInvalidReference
	}
	return fmt.Errorf("database error: %w", err)
}
