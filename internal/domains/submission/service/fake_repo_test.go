package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	categorymodel "gameshelf-backend/internal/domains/category/model"
	gamemodel "gameshelf-backend/internal/domains/game/model"
	gamerepo "gameshelf-backend/internal/domains/game/repository"
	"gameshelf-backend/internal/domains/submission/model"
	"gameshelf-backend/internal/domains/submission/repository"
)

// fakeCatalog is the slice of GameRepository the promotion path writes
// to, with snapshot/restore so a fake transaction can roll back.
type fakeCatalog struct {
	games                 map[uuid.UUID]gamemodel.Game
	translations          []gamemodel.Translation
	slugs                 []gamemodel.Slug
	necessities           []gamemodel.Necessity
	necessityTranslations []gamemodel.NecessityTranslation
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{games: map[uuid.UUID]gamemodel.Game{}}
}

type catalogSnapshot struct {
	games                 map[uuid.UUID]gamemodel.Game
	translations          []gamemodel.Translation
	slugs                 []gamemodel.Slug
	necessities           []gamemodel.Necessity
	necessityTranslations []gamemodel.NecessityTranslation
}

func (c *fakeCatalog) snapshot() catalogSnapshot {
	games := make(map[uuid.UUID]gamemodel.Game, len(c.games))
	for k, v := range c.games {
		games[k] = v
	}
	return catalogSnapshot{
		games:                 games,
		translations:          append([]gamemodel.Translation(nil), c.translations...),
		slugs:                 append([]gamemodel.Slug(nil), c.slugs...),
		necessities:           append([]gamemodel.Necessity(nil), c.necessities...),
		necessityTranslations: append([]gamemodel.NecessityTranslation(nil), c.necessityTranslations...),
	}
}

func (c *fakeCatalog) restore(s catalogSnapshot) {
	c.games = s.games
	c.translations = s.translations
	c.slugs = s.slugs
	c.necessities = s.necessities
	c.necessityTranslations = s.necessityTranslations
}

func (c *fakeCatalog) WithTx(tx pgx.Tx) gamerepo.GameRepository { return c }

func (c *fakeCatalog) Insert(ctx context.Context, g *gamemodel.Game) error {
	c.games[g.ID] = *g
	return nil
}

func (c *fakeCatalog) UpsertTranslation(ctx context.Context, t *gamemodel.Translation) error {
	c.translations = append(c.translations, *t)
	return nil
}

func (c *fakeCatalog) UpsertSlug(ctx context.Context, s *gamemodel.Slug) error {
	for _, existing := range c.slugs {
		if existing.LanguageID == s.LanguageID && existing.Slug == s.Slug && existing.GameID != s.GameID {
			return gamemodel.ErrSlugTaken
		}
	}
	c.slugs = append(c.slugs, *s)
	return nil
}

func (c *fakeCatalog) InsertNecessity(ctx context.Context, n *gamemodel.Necessity) error {
	c.necessities = append(c.necessities, *n)
	return nil
}

func (c *fakeCatalog) UpsertNecessityTranslation(ctx context.Context, necessityID uuid.UUID, languageID int, name string) error {
	c.necessityTranslations = append(c.necessityTranslations, gamemodel.NecessityTranslation{
		ID: uuid.New(), NecessityID: necessityID, LanguageID: languageID, Name: name,
	})
	return nil
}

// The promotion path never reads the catalog, the remaining methods
// just satisfy the interface.

func (c *fakeCatalog) GetByID(ctx context.Context, id uuid.UUID) (*gamemodel.Game, error) {
	g, ok := c.games[id]
	if !ok {
		return nil, gamemodel.ErrGameNotFound
	}
	return &g, nil
}

func (c *fakeCatalog) GetImage(ctx context.Context, id uuid.UUID) (string, error) { return "", nil }
func (c *fakeCatalog) UpdateScalars(ctx context.Context, id uuid.UUID, playerCount int, categoryID uuid.UUID) error {
	return nil
}
func (c *fakeCatalog) UpdateImage(ctx context.Context, id uuid.UUID, image string) error { return nil }
func (c *fakeCatalog) UpdatePublish(ctx context.Context, id uuid.UUID, publish bool) error {
	return nil
}
func (c *fakeCatalog) UpdateNew(ctx context.Context, id uuid.UUID, isNew bool) error { return nil }
func (c *fakeCatalog) RefreshDenormalized(ctx context.Context, id uuid.UUID, name string, alias *string, description string) error {
	return nil
}
func (c *fakeCatalog) UpdateAlias(ctx context.Context, id uuid.UUID, alias *string) error { return nil }
func (c *fakeCatalog) UpdateDescription(ctx context.Context, id uuid.UUID, description string) error {
	return nil
}
func (c *fakeCatalog) Delete(ctx context.Context, id uuid.UUID) error               { return nil }
func (c *fakeCatalog) ListPublished(ctx context.Context) ([]gamemodel.Game, error)  { return nil, nil }
func (c *fakeCatalog) ListAll(ctx context.Context) ([]gamemodel.Game, error)        { return nil, nil }
func (c *fakeCatalog) UpdateTranslationAlias(ctx context.Context, gameID uuid.UUID, languageID int, alias *string) error {
	return nil
}
func (c *fakeCatalog) UpdateTranslationDescription(ctx context.Context, gameID uuid.UUID, languageID int, description string) error {
	return nil
}
func (c *fakeCatalog) ListTranslations(ctx context.Context, gameID uuid.UUID) ([]gamemodel.Translation, error) {
	return nil, nil
}
func (c *fakeCatalog) ListAllTranslations(ctx context.Context) ([]gamemodel.Translation, error) {
	return nil, nil
}
func (c *fakeCatalog) DeleteTranslations(ctx context.Context, gameID uuid.UUID) error { return nil }
func (c *fakeCatalog) ResolveSlug(ctx context.Context, languageCode, slug string) (uuid.UUID, error) {
	return uuid.Nil, gamemodel.ErrGameNotFound
}
func (c *fakeCatalog) DeleteSlugs(ctx context.Context, gameID uuid.UUID) error { return nil }
func (c *fakeCatalog) UpdateNecessityName(ctx context.Context, id, gameID uuid.UUID, name string) error {
	return nil
}
func (c *fakeCatalog) FindNecessityByName(ctx context.Context, gameID uuid.UUID, name string) (*gamemodel.Necessity, error) {
	return nil, gamemodel.ErrNecessityNotFound
}
func (c *fakeCatalog) ListNecessities(ctx context.Context, gameID uuid.UUID) ([]gamemodel.NecessityDetail, error) {
	return nil, nil
}
func (c *fakeCatalog) DeleteNecessitiesExcept(ctx context.Context, gameID uuid.UUID, keep []uuid.UUID) error {
	return nil
}
func (c *fakeCatalog) DeleteNecessities(ctx context.Context, gameID uuid.UUID) error { return nil }

// fakeDrafts is an in-memory SubmissionRepository.
type fakeDrafts struct {
	drafts map[uuid.UUID]model.SubmittedGame
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{drafts: map[uuid.UUID]model.SubmittedGame{}}
}

func (r *fakeDrafts) snapshot() map[uuid.UUID]model.SubmittedGame {
	out := make(map[uuid.UUID]model.SubmittedGame, len(r.drafts))
	for k, v := range r.drafts {
		out[k] = v
	}
	return out
}

func (r *fakeDrafts) restore(s map[uuid.UUID]model.SubmittedGame) { r.drafts = s }

func (r *fakeDrafts) WithTx(tx pgx.Tx) repository.SubmissionRepository { return r }

func (r *fakeDrafts) Insert(ctx context.Context, s *model.SubmittedGame) error {
	r.drafts[s.ID] = *s
	return nil
}

func (r *fakeDrafts) GetByID(ctx context.Context, id uuid.UUID) (*model.SubmittedGame, error) {
	s, ok := r.drafts[id]
	if !ok {
		return nil, model.ErrSubmissionNotFound
	}
	return &s, nil
}

func (r *fakeDrafts) List(ctx context.Context) ([]model.SubmittedGame, error) {
	out := []model.SubmittedGame{}
	for _, s := range r.drafts {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeDrafts) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.drafts[id]; !ok {
		return model.ErrSubmissionNotFound
	}
	delete(r.drafts, id)
	return nil
}

type fakeCategories struct {
	known map[uuid.UUID]bool
}

func (r *fakeCategories) List(ctx context.Context) ([]categorymodel.CategoryDetail, error) {
	return nil, nil
}
func (r *fakeCategories) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.known[id], nil
}
func (r *fakeCategories) Create(ctx context.Context, req categorymodel.CreateCategoryRequest) (*categorymodel.Category, error) {
	return nil, nil
}
func (r *fakeCategories) Delete(ctx context.Context, id uuid.UUID) error { return nil }

// newTestService wires a submission service whose transaction runner
// snapshots both fakes and restores them when the unit of work fails,
// mimicking a database rollback.
func newTestService(drafts *fakeDrafts, catalog *fakeCatalog, categoryID uuid.UUID) *submissionService {
	return &submissionService{
		repo:        drafts,
		games:       catalog,
		categories:  &fakeCategories{known: map[uuid.UUID]bool{categoryID: true}},
		defaultLang: 1,
		runTx: func(ctx context.Context, fn txFunc) error {
			draftsSnap := drafts.snapshot()
			catalogSnap := catalog.snapshot()
			if err := fn(drafts, catalog); err != nil {
				drafts.restore(draftsSnap)
				catalog.restore(catalogSnap)
				return err
			}
			return nil
		},
	}
}
