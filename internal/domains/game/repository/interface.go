package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"gameshelf-backend/internal/domains/game/model"
)

// GameRepository is the persistence surface of the game domain.
// WithTx returns a copy bound to the given transaction so callers can
// compose several writes atomically.
type GameRepository interface {
	WithTx(tx pgx.Tx) GameRepository

	// Canonical rows
	Insert(ctx context.Context, g *model.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Game, error)
	GetImage(ctx context.Context, id uuid.UUID) (string, error)
	UpdateScalars(ctx context.Context, id uuid.UUID, playerCount int, categoryID uuid.UUID) error
	UpdateImage(ctx context.Context, id uuid.UUID, image string) error
	UpdatePublish(ctx context.Context, id uuid.UUID, publish bool) error
	UpdateNew(ctx context.Context, id uuid.UUID, isNew bool) error
	RefreshDenormalized(ctx context.Context, id uuid.UUID, name string, alias *string, description string) error
	UpdateAlias(ctx context.Context, id uuid.UUID, alias *string) error
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublished(ctx context.Context) ([]model.Game, error)
	ListAll(ctx context.Context) ([]model.Game, error)

	// Translations
	UpsertTranslation(ctx context.Context, t *model.Translation) error
	UpdateTranslationAlias(ctx context.Context, gameID uuid.UUID, languageID int, alias *string) error
	UpdateTranslationDescription(ctx context.Context, gameID uuid.UUID, languageID int, description string) error
	ListTranslations(ctx context.Context, gameID uuid.UUID) ([]model.Translation, error)
	ListAllTranslations(ctx context.Context) ([]model.Translation, error)
	DeleteTranslations(ctx context.Context, gameID uuid.UUID) error

	// Slugs
	UpsertSlug(ctx context.Context, s *model.Slug) error
	ResolveSlug(ctx context.Context, languageCode, slug string) (uuid.UUID, error)
	DeleteSlugs(ctx context.Context, gameID uuid.UUID) error

	// Necessities
	InsertNecessity(ctx context.Context, n *model.Necessity) error
	UpdateNecessityName(ctx context.Context, id, gameID uuid.UUID, name string) error
	FindNecessityByName(ctx context.Context, gameID uuid.UUID, name string) (*model.Necessity, error)
	UpsertNecessityTranslation(ctx context.Context, necessityID uuid.UUID, languageID int, name string) error
	ListNecessities(ctx context.Context, gameID uuid.UUID) ([]model.NecessityDetail, error)
	DeleteNecessitiesExcept(ctx context.Context, gameID uuid.UUID, keep []uuid.UUID) error
	DeleteNecessities(ctx context.Context, gameID uuid.UUID) error
}
