package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"

	categorymodel "gameshelf-backend/internal/domains/category/model"
	"gameshelf-backend/internal/domains/game/model"
	"gameshelf-backend/internal/domains/game/repository"
)

// fakeGameRepo is an in-memory GameRepository mirroring the constraint
// behavior of the real schema: slug uniqueness per language, necessity
// name uniqueness per game, game-scoped necessity updates.
type fakeGameRepo struct {
	games                 map[uuid.UUID]*model.Game
	translations          map[string]*model.Translation      // gameID|languageID
	slugs                 map[string]*model.Slug             // gameID|languageID
	necessities           map[uuid.UUID]*model.Necessity
	necessityTranslations map[string]model.NecessityTranslation // necessityID|languageID
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{
		games:                 map[uuid.UUID]*model.Game{},
		translations:          map[string]*model.Translation{},
		slugs:                 map[string]*model.Slug{},
		necessities:           map[uuid.UUID]*model.Necessity{},
		necessityTranslations: map[string]model.NecessityTranslation{},
	}
}

func key(gameID uuid.UUID, languageID int) string {
	return fmt.Sprintf("%s|%d", gameID, languageID)
}

func (r *fakeGameRepo) WithTx(tx pgx.Tx) repository.GameRepository { return r }

func (r *fakeGameRepo) Insert(ctx context.Context, g *model.Game) error {
	cp := *g
	r.games[g.ID] = &cp
	return nil
}

func (r *fakeGameRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	g, ok := r.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGameRepo) GetImage(ctx context.Context, id uuid.UUID) (string, error) {
	g, ok := r.games[id]
	if !ok {
		return "", model.ErrGameNotFound
	}
	return g.Image, nil
}

func (r *fakeGameRepo) UpdateScalars(ctx context.Context, id uuid.UUID, playerCount int, categoryID uuid.UUID) error {
	g, ok := r.games[id]
	if !ok {
		return model.ErrGameNotFound
	}
	g.PlayerCount = playerCount
	g.CategoryID = categoryID
	return nil
}

func (r *fakeGameRepo) UpdateImage(ctx context.Context, id uuid.UUID, image string) error {
	g, ok := r.games[id]
	if !ok {
		return model.ErrGameNotFound
	}
	g.Image = image
	return nil
}

func (r *fakeGameRepo) UpdatePublish(ctx context.Context, id uuid.UUID, publish bool) error {
	g, ok := r.games[id]
	if !ok {
		return model.ErrGameNotFound
	}
	g.Publish = publish
	return nil
}

func (r *fakeGameRepo) UpdateNew(ctx context.Context, id uuid.UUID, isNew bool) error {
	g, ok := r.games[id]
	if !ok {
		return model.ErrGameNotFound
	}
	g.New = isNew
	return nil
}

func (r *fakeGameRepo) RefreshDenormalized(ctx context.Context, id uuid.UUID, name string, alias *string, description string) error {
	g, ok := r.games[id]
	if !ok {
		return model.ErrGameNotFound
	}
	g.Name = name
	g.Alias = alias
	g.Description = description
	return nil
}

func (r *fakeGameRepo) UpdateAlias(ctx context.Context, id uuid.UUID, alias *string) error {
	g, ok := r.games[id]
	if !ok {
		return model.ErrGameNotFound
	}
	g.Alias = alias
	return nil
}

func (r *fakeGameRepo) UpdateDescription(ctx context.Context, id uuid.UUID, description string) error {
	g, ok := r.games[id]
	if !ok {
		return model.ErrGameNotFound
	}
	g.Description = description
	return nil
}

func (r *fakeGameRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.games[id]; !ok {
		return model.ErrGameNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *fakeGameRepo) ListPublished(ctx context.Context) ([]model.Game, error) {
	out := []model.Game{}
	for _, g := range r.games {
		if g.Publish {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGameRepo) ListAll(ctx context.Context) ([]model.Game, error) {
	out := []model.Game{}
	for _, g := range r.games {
		out = append(out, *g)
	}
	return out, nil
}

func (r *fakeGameRepo) UpsertTranslation(ctx context.Context, t *model.Translation) error {
	if _, ok := r.games[t.GameID]; !ok {
		return model.ErrInvalidReference
	}
	cp := *t
	r.translations[key(t.GameID, t.LanguageID)] = &cp
	return nil
}

func (r *fakeGameRepo) UpdateTranslationAlias(ctx context.Context, gameID uuid.UUID, languageID int, alias *string) error {
	if t, ok := r.translations[key(gameID, languageID)]; ok {
		t.Alias = alias
	}
	return nil
}

func (r *fakeGameRepo) UpdateTranslationDescription(ctx context.Context, gameID uuid.UUID, languageID int, description string) error {
	if t, ok := r.translations[key(gameID, languageID)]; ok {
		t.Description = &description
	}
	return nil
}

func (r *fakeGameRepo) ListTranslations(ctx context.Context, gameID uuid.UUID) ([]model.Translation, error) {
	out := []model.Translation{}
	for _, t := range r.translations {
		if t.GameID == gameID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeGameRepo) ListAllTranslations(ctx context.Context) ([]model.Translation, error) {
	out := []model.Translation{}
	for _, t := range r.translations {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeGameRepo) DeleteTranslations(ctx context.Context, gameID uuid.UUID) error {
	for k, t := range r.translations {
		if t.GameID == gameID {
			delete(r.translations, k)
		}
	}
	return nil
}

func (r *fakeGameRepo) UpsertSlug(ctx context.Context, s *model.Slug) error {
	for _, existing := range r.slugs {
		if existing.LanguageID == s.LanguageID && existing.Slug == s.Slug && existing.GameID != s.GameID {
			return model.ErrSlugTaken
		}
	}
	cp := *s
	r.slugs[key(s.GameID, s.LanguageID)] = &cp
	return nil
}

func (r *fakeGameRepo) ResolveSlug(ctx context.Context, languageCode, slug string) (uuid.UUID, error) {
	languageID := languageCodeToID(languageCode)
	for _, s := range r.slugs {
		if s.LanguageID == languageID && s.Slug == slug {
			return s.GameID, nil
		}
	}
	return uuid.Nil, model.ErrGameNotFound
}

func (r *fakeGameRepo) DeleteSlugs(ctx context.Context, gameID uuid.UUID) error {
	for k, s := range r.slugs {
		if s.GameID == gameID {
			delete(r.slugs, k)
		}
	}
	return nil
}

func (r *fakeGameRepo) InsertNecessity(ctx context.Context, n *model.Necessity) error {
	if _, ok := r.games[n.GameID]; !ok {
		return model.ErrInvalidReference
	}
	for _, existing := range r.necessities {
		if existing.GameID == n.GameID && existing.Name == n.Name {
			return model.ErrDuplicateNecessity
		}
	}
	cp := *n
	r.necessities[n.ID] = &cp
	return nil
}

func (r *fakeGameRepo) UpdateNecessityName(ctx context.Context, id, gameID uuid.UUID, name string) error {
	n, ok := r.necessities[id]
	if !ok || n.GameID != gameID {
		return model.ErrNecessityNotFound
	}
	n.Name = name
	return nil
}

func (r *fakeGameRepo) FindNecessityByName(ctx context.Context, gameID uuid.UUID, name string) (*model.Necessity, error) {
	for _, n := range r.necessities {
		if n.GameID == gameID && n.Name == name {
			cp := *n
			return &cp, nil
		}
	}
	return nil, model.ErrNecessityNotFound
}

func (r *fakeGameRepo) UpsertNecessityTranslation(ctx context.Context, necessityID uuid.UUID, languageID int, name string) error {
	k := fmt.Sprintf("%s|%d", necessityID, languageID)
	r.necessityTranslations[k] = model.NecessityTranslation{
		ID:          uuid.New(),
		NecessityID: necessityID,
		LanguageID:  languageID,
		Name:        name,
	}
	return nil
}

func (r *fakeGameRepo) ListNecessities(ctx context.Context, gameID uuid.UUID) ([]model.NecessityDetail, error) {
	out := []model.NecessityDetail{}
	for _, n := range r.necessities {
		if n.GameID != gameID {
			continue
		}
		detail := model.NecessityDetail{Necessity: *n, Translations: []model.NecessityTranslation{}}
		for _, t := range r.necessityTranslations {
			if t.NecessityID == n.ID {
				detail.Translations = append(detail.Translations, t)
			}
		}
		out = append(out, detail)
	}
	return out, nil
}

func (r *fakeGameRepo) DeleteNecessitiesExcept(ctx context.Context, gameID uuid.UUID, keep []uuid.UUID) error {
	keepSet := map[uuid.UUID]bool{}
	for _, id := range keep {
		keepSet[id] = true
	}
	for id, n := range r.necessities {
		if n.GameID == gameID && !keepSet[id] {
			delete(r.necessities, id)
			for k, t := range r.necessityTranslations {
				if t.NecessityID == id {
					delete(r.necessityTranslations, k)
				}
			}
		}
	}
	return nil
}

func (r *fakeGameRepo) DeleteNecessities(ctx context.Context, gameID uuid.UUID) error {
	return r.DeleteNecessitiesExcept(ctx, gameID, nil)
}

func languageCodeToID(code string) int {
	switch code {
	case "en":
		return 1
	case "nl":
		return 2
	case "de":
		return 3
	case "fr":
		return 4
	case "es":
		return 5
	case "it":
		return 6
	}
	return 0
}

// fakeCategoryRepo answers Exists from a fixed set.
type fakeCategoryRepo struct {
	known map[uuid.UUID]bool
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]categorymodel.CategoryDetail, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.known[id], nil
}

func (r *fakeCategoryRepo) Create(ctx context.Context, req categorymodel.CreateCategoryRequest) (*categorymodel.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

// fakeEnqueuer records enqueued tasks.
type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}
