package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	categoryrepo "gameshelf-backend/internal/domains/category/repository"
	"gameshelf-backend/internal/domains/game/model"
	"gameshelf-backend/internal/domains/game/repository"
	"gameshelf-backend/internal/infrastructure/webhook"
	"gameshelf-backend/internal/shared"
	"gameshelf-backend/internal/shared/utils"
	"gameshelf-backend/pkg/logger"
)

// TaskEnqueuer is the slice of asynq.Client the service needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type GameService interface {
	Create(ctx context.Context, creatorID uuid.UUID, req model.CreateGameRequest) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateGameRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetPublish(ctx context.Context, id uuid.UUID, publish bool) error
	SetNew(ctx context.Context, id uuid.UUID, isNew bool) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.GameDetail, error)
	GetBySlug(ctx context.Context, languageCode, slug string) (*model.GameDetail, error)
	ListPublished(ctx context.Context) ([]model.GameDetail, error)
	ListAll(ctx context.Context) ([]model.GameDetail, error)
}

type gameService struct {
	repo        repository.GameRepository
	categories  categoryrepo.CategoryRepository
	tasks       TaskEnqueuer
	notifier    webhook.Notifier
	defaultLang int
}

func NewGameService(
	repo repository.GameRepository,
	categories categoryrepo.CategoryRepository,
	tasks TaskEnqueuer,
	notifier webhook.Notifier,
	defaultLang int,
) GameService {
	return &gameService{
		repo:        repo,
		categories:  categories,
		tasks:       tasks,
		notifier:    notifier,
		defaultLang: defaultLang,
	}
}

// Create inserts the canonical row from the default-language translation
// (first translation if no default is present), then writes every
// translation with its slug and reconciles the necessity list.
func (s *gameService) Create(ctx context.Context, creatorID uuid.UUID, req model.CreateGameRequest) (uuid.UUID, error) {
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return uuid.Nil, err
	}

	base := req.Translations[0]
	for _, t := range req.Translations {
		if t.LanguageID == s.defaultLang {
			base = t
			break
		}
	}

	g := &model.Game{
		ID:          uuid.New(),
		Name:        base.Name,
		PlayerCount: req.PlayerCount,
		Image:       req.Image,
		Description: derefOrEmpty(base.Description),
		Alias:       base.Alias,
		CategoryID:  req.CategoryID,
		CreatorID:   creatorID,
		Publish:     req.Publish,
		New:         req.New,
	}
	if err := s.repo.Insert(ctx, g); err != nil {
		return uuid.Nil, err
	}

	for _, t := range req.Translations {
		if err := s.writeTranslation(ctx, s.repo, g.ID, t); err != nil {
			return uuid.Nil, err
		}
	}

	if err := s.reconcileNecessities(ctx, s.repo, g.ID, req.Necessities); err != nil {
		return uuid.Nil, err
	}

	s.notify("game.created", map[string]any{"game_id": g.ID, "name": g.Name})
	return g.ID, nil
}

// Update runs the ordered write pipeline: scalars, image swap, full
// translation upserts with slug refresh, alias patches, description
// patches, then necessity reconciliation. Each translation write that
// hits the default language refreshes the denormalized columns.
func (s *gameService) Update(ctx context.Context, id uuid.UUID, req model.UpdateGameRequest) error {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return err
	}

	// Step 1: scalar columns
	if err := s.repo.UpdateScalars(ctx, id, req.PlayerCount, req.CategoryID); err != nil {
		return err
	}

	// Step 2: image swap, old object cleaned up in the background
	if req.Image != "" && req.Image != g.Image {
		if err := s.repo.UpdateImage(ctx, id, req.Image); err != nil {
			return err
		}
		s.enqueueImageCleanup(g.Image)
	}

	// Step 3: whole-row translation upserts, blank names skipped
	for _, t := range req.Translations {
		if strings.TrimSpace(t.Name) == "" {
			continue
		}
		if err := s.writeTranslation(ctx, s.repo, id, t); err != nil {
			return err
		}
	}

	// Step 4: alias patches
	for _, a := range req.Aliases {
		if err := s.repo.UpdateTranslationAlias(ctx, id, a.LanguageID, a.Alias); err != nil {
			return err
		}
		if a.LanguageID == s.defaultLang {
			if err := s.repo.UpdateAlias(ctx, id, a.Alias); err != nil {
				return err
			}
		}
	}

	// Step 5: description patches
	for _, d := range req.Descriptions {
		if err := s.repo.UpdateTranslationDescription(ctx, id, d.LanguageID, d.Description); err != nil {
			return err
		}
		if d.LanguageID == s.defaultLang {
			if err := s.repo.UpdateDescription(ctx, id, d.Description); err != nil {
				return err
			}
		}
	}

	// Step 6: necessity reconciliation
	if err := s.reconcileNecessities(ctx, s.repo, id, req.Necessities); err != nil {
		return err
	}

	s.notify("game.updated", map[string]any{"game_id": id})
	return nil
}

// writeTranslation upserts one translation row, derives its slug and,
// for the default language, refreshes the denormalized game columns.
func (s *gameService) writeTranslation(ctx context.Context, repo repository.GameRepository, gameID uuid.UUID, t model.TranslationInput) error {
	tr := &model.Translation{
		ID:          uuid.New(),
		GameID:      gameID,
		LanguageID:  t.LanguageID,
		Name:        t.Name,
		Alias:       t.Alias,
		Description: t.Description,
	}
	if err := repo.UpsertTranslation(ctx, tr); err != nil {
		return err
	}
	if err := repo.UpsertSlug(ctx, &model.Slug{
		GameID:     gameID,
		LanguageID: t.LanguageID,
		Slug:       utils.GenerateSlug(t.Name),
	}); err != nil {
		return err
	}
	if t.LanguageID == s.defaultLang {
		return repo.RefreshDenormalized(ctx, gameID, t.Name, t.Alias, derefOrEmpty(t.Description))
	}
	return nil
}

func (s *gameService) Delete(ctx context.Context, id uuid.UUID) error {
	image, err := s.repo.GetImage(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteNecessities(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteSlugs(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteTranslations(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.enqueueImageCleanup(image)
	s.notify("game.deleted", map[string]any{"game_id": id})
	return nil
}

func (s *gameService) SetPublish(ctx context.Context, id uuid.UUID, publish bool) error {
	return s.repo.UpdatePublish(ctx, id, publish)
}

func (s *gameService) SetNew(ctx context.Context, id uuid.UUID, isNew bool) error {
	return s.repo.UpdateNew(ctx, id, isNew)
}

func (s *gameService) GetByID(ctx context.Context, id uuid.UUID) (*model.GameDetail, error) {
	return s.detail(ctx, id)
}

func (s *gameService) GetBySlug(ctx context.Context, languageCode, slug string) (*model.GameDetail, error) {
	id, err := s.repo.ResolveSlug(ctx, languageCode, slug)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, id)
}

func (s *gameService) ListPublished(ctx context.Context) ([]model.GameDetail, error) {
	games, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachTranslations(ctx, games)
}

func (s *gameService) ListAll(ctx context.Context) ([]model.GameDetail, error) {
	games, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachTranslations(ctx, games)
}

// attachTranslations builds the list read model. Necessities are only
// loaded on the detail endpoints.
func (s *gameService) attachTranslations(ctx context.Context, games []model.Game) ([]model.GameDetail, error) {
	all, err := s.repo.ListAllTranslations(ctx)
	if err != nil {
		return nil, err
	}
	byGame := map[uuid.UUID][]model.Translation{}
	for _, t := range all {
		byGame[t.GameID] = append(byGame[t.GameID], t)
	}

	out := make([]model.GameDetail, 0, len(games))
	for _, g := range games {
		translations := byGame[g.ID]
		if translations == nil {
			translations = []model.Translation{}
		}
		out = append(out, model.GameDetail{
			Game:         g,
			Translations: translations,
			Necessities:  []model.NecessityDetail{},
		})
	}
	return out, nil
}

func (s *gameService) detail(ctx context.Context, id uuid.UUID) (*model.GameDetail, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	translations, err := s.repo.ListTranslations(ctx, id)
	if err != nil {
		return nil, err
	}
	necessities, err := s.repo.ListNecessities(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.GameDetail{Game: *g, Translations: translations, Necessities: necessities}, nil
}

func (s *gameService) checkCategory(ctx context.Context, id uuid.UUID) error {
	exists, err := s.categories.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrInvalidReference
	}
	return nil
}

func (s *gameService) enqueueImageCleanup(image string) {
	if image == "" || s.tasks == nil {
		return
	}
	payload, err := json.Marshal(shared.DeleteGameImagePayload{Image: image})
	if err != nil {
		return
	}
	task := asynq.NewTask(shared.TypeDeleteGameImage, payload, asynq.Queue(shared.QueueLow))
	if _, err := s.tasks.Enqueue(task); err != nil {
		logger.Warn("failed to enqueue image cleanup", err)
	}
}

func (s *gameService) notify(event string, payload any) {
	if s.notifier != nil {
		s.notifier.Notify(event, payload)
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
