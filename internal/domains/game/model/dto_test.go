package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validCreateRequest() CreateGameRequest {
	return CreateGameRequest{
		Translations: []TranslationInput{{LanguageID: 1, Name: "Chess"}},
		PlayerCount:  2,
		CategoryID:   uuid.New(),
		Image:        "games/abc",
	}
}

func TestCreateGameRequestValidation(t *testing.T) {
	assert.NoError(t, validCreateRequest().Validate())

	noTranslations := validCreateRequest()
	noTranslations.Translations = nil
	assert.Error(t, noTranslations.Validate())

	blankName := validCreateRequest()
	blankName.Translations = []TranslationInput{{LanguageID: 1}}
	assert.Error(t, blankName.Validate())

	zeroPlayers := validCreateRequest()
	zeroPlayers.PlayerCount = 0
	assert.Error(t, zeroPlayers.Validate())

	noCategory := validCreateRequest()
	noCategory.CategoryID = uuid.Nil
	assert.Error(t, noCategory.Validate())

	noImage := validCreateRequest()
	noImage.Image = ""
	assert.Error(t, noImage.Validate())
}

func TestUpdateGameRequestValidation(t *testing.T) {
	valid := UpdateGameRequest{PlayerCount: 2, CategoryID: uuid.New()}
	assert.NoError(t, valid.Validate())

	badLanguage := valid
	badLanguage.Aliases = []AliasInput{{LanguageID: 0}}
	assert.Error(t, badLanguage.Validate())

	badNecessityTranslation := valid
	badNecessityTranslation.Necessities = []NecessityInput{
		{Name: "board", Translations: []NecessityTranslationInput{{LanguageID: 0, Name: "board"}}},
	}
	assert.Error(t, badNecessityTranslation.Validate())
}
