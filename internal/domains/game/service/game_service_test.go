package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameshelf-backend/internal/domains/game/model"
	"gameshelf-backend/internal/shared"
)

const defaultLanguage = 1

func newTestService(repo *fakeGameRepo, categoryID uuid.UUID) (*gameService, *fakeEnqueuer) {
	enqueuer := &fakeEnqueuer{}
	svc := &gameService{
		repo:        repo,
		categories:  &fakeCategoryRepo{known: map[uuid.UUID]bool{categoryID: true}},
		tasks:       enqueuer,
		defaultLang: defaultLanguage,
	}
	return svc, enqueuer
}

func strPtr(s string) *string { return &s }

func TestCreateGameDenormalizesDefaultLanguage(t *testing.T) {
	repo := newFakeGameRepo()
	categoryID := uuid.New()
	svc, _ := newTestService(repo, categoryID)

	id, err := svc.Create(context.Background(), uuid.New(), model.CreateGameRequest{
		Translations: []model.TranslationInput{
			{LanguageID: 2, Name: "Schaken", Description: strPtr("Nederlands")},
			{LanguageID: 1, Name: "Chess", Alias: strPtr("The Royal Game"), Description: strPtr("English")},
		},
		PlayerCount: 2,
		CategoryID:  categoryID,
		Image:       "games/abc",
	})
	require.NoError(t, err)

	g, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Chess", g.Name)
	assert.Equal(t, "English", g.Description)
	require.NotNil(t, g.Alias)
	assert.Equal(t, "The Royal Game", *g.Alias)

	// One slug per translated language, none for untranslated ones
	for code, want := range map[string]string{"en": "chess", "nl": "schaken"} {
		gameID, err := repo.ResolveSlug(context.Background(), code, want)
		require.NoError(t, err, code)
		assert.Equal(t, id, gameID)
	}
	_, err = repo.ResolveSlug(context.Background(), "de", "chess")
	assert.ErrorIs(t, err, model.ErrGameNotFound)
}

func TestCreateGameRejectsUnknownCategory(t *testing.T) {
	repo := newFakeGameRepo()
	svc, _ := newTestService(repo, uuid.New())

	_, err := svc.Create(context.Background(), uuid.New(), model.CreateGameRequest{
		Translations: []model.TranslationInput{{LanguageID: 1, Name: "Chess"}},
		PlayerCount:  2,
		CategoryID:   uuid.New(), // not in the fake's known set
		Image:        "games/abc",
	})
	assert.ErrorIs(t, err, model.ErrInvalidReference)
	assert.Empty(t, repo.games)
}

func TestUpdateGameMirrorsDefaultLanguageAlias(t *testing.T) {
	repo := newFakeGameRepo()
	categoryID := uuid.New()
	svc, _ := newTestService(repo, categoryID)

	id, err := svc.Create(context.Background(), uuid.New(), model.CreateGameRequest{
		Translations: []model.TranslationInput{
			{LanguageID: 1, Name: "Chess"},
			{LanguageID: 2, Name: "Schaken"},
		},
		PlayerCount: 2,
		CategoryID:  categoryID,
		Image:       "games/abc",
	})
	require.NoError(t, err)

	err = svc.Update(context.Background(), id, model.UpdateGameRequest{
		Aliases: []model.AliasInput{
			{LanguageID: 2, Alias: strPtr("Het Koninklijke Spel")},
			{LanguageID: 1, Alias: strPtr("The Royal Game")},
		},
		PlayerCount: 2,
		CategoryID:  categoryID,
	})
	require.NoError(t, err)

	g, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, g.Alias)
	assert.Equal(t, "The Royal Game", *g.Alias, "only the default language alias lands on the canonical row")

	nl := repo.translations[key(id, 2)]
	require.NotNil(t, nl.Alias)
	assert.Equal(t, "Het Koninklijke Spel", *nl.Alias)
}

func TestUpdateGameSkipsBlankTranslationNames(t *testing.T) {
	repo := newFakeGameRepo()
	categoryID := uuid.New()
	svc, _ := newTestService(repo, categoryID)

	id, err := svc.Create(context.Background(), uuid.New(), model.CreateGameRequest{
		Translations: []model.TranslationInput{{LanguageID: 1, Name: "Chess"}},
		PlayerCount:  2,
		CategoryID:   categoryID,
		Image:        "games/abc",
	})
	require.NoError(t, err)

	err = svc.Update(context.Background(), id, model.UpdateGameRequest{
		Translations: []model.TranslationInput{{LanguageID: 1, Name: "   "}},
		PlayerCount:  4,
		CategoryID:   categoryID,
	})
	require.NoError(t, err)

	g, _ := repo.GetByID(context.Background(), id)
	assert.Equal(t, "Chess", g.Name, "blank name must not clobber the translation")
	assert.Equal(t, 4, g.PlayerCount)
	assert.Equal(t, "Chess", repo.translations[key(id, 1)].Name)
}

func TestUpdateGameImageSwapEnqueuesCleanup(t *testing.T) {
	repo := newFakeGameRepo()
	categoryID := uuid.New()
	svc, enqueuer := newTestService(repo, categoryID)

	id, err := svc.Create(context.Background(), uuid.New(), model.CreateGameRequest{
		Translations: []model.TranslationInput{{LanguageID: 1, Name: "Chess"}},
		PlayerCount:  2,
		CategoryID:   categoryID,
		Image:        "games/old",
	})
	require.NoError(t, err)

	err = svc.Update(context.Background(), id, model.UpdateGameRequest{
		PlayerCount: 2,
		CategoryID:  categoryID,
		Image:       "games/new",
	})
	require.NoError(t, err)

	g, _ := repo.GetByID(context.Background(), id)
	assert.Equal(t, "games/new", g.Image)

	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, shared.TypeDeleteGameImage, enqueuer.tasks[0].Type())
	var payload shared.DeleteGameImagePayload
	require.NoError(t, json.Unmarshal(enqueuer.tasks[0].Payload(), &payload))
	assert.Equal(t, "games/old", payload.Image)
}

func TestUpdateGameSlugCollisionSurfaces(t *testing.T) {
	repo := newFakeGameRepo()
	categoryID := uuid.New()
	svc, _ := newTestService(repo, categoryID)

	_, err := svc.Create(context.Background(), uuid.New(), model.CreateGameRequest{
		Translations: []model.TranslationInput{{LanguageID: 1, Name: "Chess"}},
		PlayerCount:  2,
		CategoryID:   categoryID,
		Image:        "games/a",
	})
	require.NoError(t, err)

	id, err := svc.Create(context.Background(), uuid.New(), model.CreateGameRequest{
		Translations: []model.TranslationInput{{LanguageID: 1, Name: "Checkers"}},
		PlayerCount:  2,
		CategoryID:   categoryID,
		Image:        "games/b",
	})
	require.NoError(t, err)

	// Renaming Checkers to Chess derives the same slug in the same language
	err = svc.Update(context.Background(), id, model.UpdateGameRequest{
		Translations: []model.TranslationInput{{LanguageID: 1, Name: "Chess"}},
		PlayerCount:  2,
		CategoryID:   categoryID,
	})
	assert.ErrorIs(t, err, model.ErrSlugTaken)
}

func TestDeleteGameRemovesChildrenAndEnqueuesCleanup(t *testing.T) {
	repo := newFakeGameRepo()
	categoryID := uuid.New()
	svc, enqueuer := newTestService(repo, categoryID)

	id, err := svc.Create(context.Background(), uuid.New(), model.CreateGameRequest{
		Translations: []model.TranslationInput{{LanguageID: 1, Name: "Chess"}},
		Necessities:  []model.NecessityInput{{Name: "board", Translations: []model.NecessityTranslationInput{{LanguageID: 1}}}},
		PlayerCount:  2,
		CategoryID:   categoryID,
		Image:        "games/abc",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))

	assert.Empty(t, repo.games)
	assert.Empty(t, repo.translations)
	assert.Empty(t, repo.slugs)
	assert.Empty(t, repo.necessities)
	assert.Empty(t, repo.necessityTranslations)
	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, shared.TypeDeleteGameImage, enqueuer.tasks[0].Type())
}

func TestListPublishedAttachesTranslations(t *testing.T) {
	repo := newFakeGameRepo()
	categoryID := uuid.New()
	svc, _ := newTestService(repo, categoryID)

	id, err := svc.Create(context.Background(), uuid.New(), model.CreateGameRequest{
		Translations: []model.TranslationInput{
			{LanguageID: 1, Name: "Chess"},
			{LanguageID: 2, Name: "Schaken"},
		},
		PlayerCount: 2,
		CategoryID:  categoryID,
		Image:       "games/abc",
		Publish:     true,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), model.CreateGameRequest{
		Translations: []model.TranslationInput{{LanguageID: 1, Name: "Draft Only"}},
		PlayerCount:  2,
		CategoryID:   categoryID,
		Image:        "games/def",
	})
	require.NoError(t, err)

	published, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, id, published[0].ID)
	assert.Len(t, published[0].Translations, 2)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetBySlugReturnsFullDetail(t *testing.T) {
	repo := newFakeGameRepo()
	categoryID := uuid.New()
	svc, _ := newTestService(repo, categoryID)

	id, err := svc.Create(context.Background(), uuid.New(), model.CreateGameRequest{
		Translations: []model.TranslationInput{
			{LanguageID: 1, Name: "Chess"},
			{LanguageID: 3, Name: "Schach"},
		},
		Necessities: []model.NecessityInput{
			{Name: "board", Translations: []model.NecessityTranslationInput{{LanguageID: 1, Name: "board"}}},
		},
		PlayerCount: 2,
		CategoryID:  categoryID,
		Image:       "games/abc",
	})
	require.NoError(t, err)

	detail, err := svc.GetBySlug(context.Background(), "de", "schach")
	require.NoError(t, err)
	assert.Equal(t, id, detail.ID)
	assert.Len(t, detail.Translations, 2)
	require.Len(t, detail.Necessities, 1)
	assert.Equal(t, "board", detail.Necessities[0].Name)
}
