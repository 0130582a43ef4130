package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	categoryrepo "gameshelf-backend/internal/domains/category/repository"
	gamemodel "gameshelf-backend/internal/domains/game/model"
	gamerepo "gameshelf-backend/internal/domains/game/repository"
	"gameshelf-backend/internal/domains/submission/model"
	"gameshelf-backend/internal/domains/submission/repository"
	"gameshelf-backend/internal/infrastructure/webhook"
	"gameshelf-backend/internal/shared/utils"
	"gameshelf-backend/pkg/database"
)

type SubmissionService interface {
	Submit(ctx context.Context, creatorID uuid.UUID, req model.SubmitGameRequest) (*model.SubmittedGame, error)
	List(ctx context.Context) ([]model.SubmittedGame, error)
	Approve(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	Reject(ctx context.Context, id uuid.UUID) error
}

// txFunc runs a unit of work against transaction-bound repositories.
type txFunc func(sub repository.SubmissionRepository, games gamerepo.GameRepository) error

type submissionService struct {
	repo        repository.SubmissionRepository
	games       gamerepo.GameRepository
	categories  categoryrepo.CategoryRepository
	notifier    webhook.Notifier
	defaultLang int
	runTx       func(ctx context.Context, fn txFunc) error
}

func NewSubmissionService(
	pool *pgxpool.Pool,
	repo repository.SubmissionRepository,
	games gamerepo.GameRepository,
	categories categoryrepo.CategoryRepository,
	notifier webhook.Notifier,
	defaultLang int,
) SubmissionService {
	return &submissionService{
		repo:        repo,
		games:       games,
		categories:  categories,
		notifier:    notifier,
		defaultLang: defaultLang,
		runTx: func(ctx context.Context, fn txFunc) error {
			return database.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
				return fn(repo.WithTx(tx), games.WithTx(tx))
			})
		},
	}
}

func (s *submissionService) Submit(ctx context.Context, creatorID uuid.UUID, req model.SubmitGameRequest) (*model.SubmittedGame, error) {
	exists, err := s.categories.Exists(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, gamemodel.ErrInvalidReference
	}

	draft := &model.SubmittedGame{
		ID:          uuid.New(),
		Name:        req.Name,
		PlayerCount: req.PlayerCount,
		Description: req.Description,
		Alias:       req.Alias,
		Necessities: req.Necessities,
		CategoryID:  req.CategoryID,
		CreatorID:   creatorID,
	}
	if err := s.repo.Insert(ctx, draft); err != nil {
		return nil, err
	}

	s.notify("game.submitted", map[string]any{"submission_id": draft.ID, "name": draft.Name})
	return draft, nil
}

func (s *submissionService) List(ctx context.Context) ([]model.SubmittedGame, error) {
	return s.repo.List(ctx)
}

// Approve promotes a draft into the catalog in one transaction: the
// canonical game row (unpublished, flagged new), its default-language
// translation and slug, one necessity per comma separated entry, and
// the draft deletion. Any failure, a slug collision included, leaves
// both sides untouched.
func (s *submissionService) Approve(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var gameID uuid.UUID

	err := s.runTx(ctx, func(sub repository.SubmissionRepository, games gamerepo.GameRepository) error {
		draft, err := sub.GetByID(ctx, id)
		if err != nil {
			return err
		}

		g := &gamemodel.Game{
			ID:          uuid.New(),
			Name:        draft.Name,
			PlayerCount: draft.PlayerCount,
			Image:       "",
			Description: draft.Description,
			Alias:       draft.Alias,
			CategoryID:  draft.CategoryID,
			CreatorID:   draft.CreatorID,
			Publish:     false,
			New:         true,
		}
		if err := games.Insert(ctx, g); err != nil {
			return err
		}

		description := draft.Description
		if err := games.UpsertTranslation(ctx, &gamemodel.Translation{
			ID:          uuid.New(),
			GameID:      g.ID,
			LanguageID:  s.defaultLang,
			Name:        draft.Name,
			Alias:       draft.Alias,
			Description: &description,
		}); err != nil {
			return err
		}
		if err := games.UpsertSlug(ctx, &gamemodel.Slug{
			GameID:     g.ID,
			LanguageID: s.defaultLang,
			Slug:       utils.GenerateSlug(draft.Name),
		}); err != nil {
			return err
		}

		for _, name := range utils.SplitTrimmed(draft.Necessities, ",") {
			n := &gamemodel.Necessity{ID: uuid.New(), GameID: g.ID, Name: name}
			if err := games.InsertNecessity(ctx, n); err != nil {
				return err
			}
			if err := games.UpsertNecessityTranslation(ctx, n.ID, s.defaultLang, name); err != nil {
				return err
			}
		}

		if err := sub.Delete(ctx, draft.ID); err != nil {
			return err
		}

		gameID = g.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.notify("game.approved", map[string]any{"game_id": gameID, "submission_id": id})
	return gameID, nil
}

// Reject drops the draft. Nothing else references it, so no
// transaction is needed.
func (s *submissionService) Reject(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify("game.rejected", map[string]any{"submission_id": id})
	return nil
}

func (s *submissionService) notify(event string, payload any) {
	if s.notifier != nil {
		s.notifier.Notify(event, payload)
	}
}
