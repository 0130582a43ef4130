package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ===== REQUEST DTOs =====

// TranslationInput carries the full text of one language. Upserting a
// translation replaces the whole row, so omitted alias/description
// clear the stored values.
type TranslationInput struct {
	LanguageID  int     `json:"language_id"`
	Name        string  `json:"name"`
	Alias       *string `json:"alias"`
	Description *string `json:"description"`
}

func (t TranslationInput) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.LanguageID, validation.Required, validation.Min(1)),
		validation.Field(&t.Name, validation.Required, validation.Length(1, 255)),
	)
}

// AliasInput patches a single translation's alias without touching the
// rest of the row. A nil alias clears it.
type AliasInput struct {
	LanguageID int     `json:"language_id"`
	Alias      *string `json:"alias"`
}

func (a AliasInput) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.LanguageID, validation.Required, validation.Min(1)),
	)
}

// DescriptionInput patches a single translation's description.
type DescriptionInput struct {
	LanguageID  int    `json:"language_id"`
	Description string `json:"description"`
}

func (d DescriptionInput) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.LanguageID, validation.Required, validation.Min(1)),
	)
}

type NecessityTranslationInput struct {
	LanguageID int    `json:"language_id"`
	Name       string `json:"name"`
}

func (n NecessityTranslationInput) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.LanguageID, validation.Required, validation.Min(1)),
		validation.Field(&n.Name, validation.Length(0, 255)),
	)
}

// NecessityInput is one requirement descriptor. A nil ID means create;
// a set ID means update the existing row owned by the same game.
// Descriptors whose name is blank are skipped entirely, which also
// means an existing necessity not re-sent (or sent blank) is deleted
// by the reconciler.
type NecessityInput struct {
	ID           *uuid.UUID                  `json:"necessity_id"`
	Name         string                      `json:"name"`
	Translations []NecessityTranslationInput `json:"translations"`
}

func (n NecessityInput) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Name, validation.Length(0, 255)),
		validation.Field(&n.Translations),
	)
}

type CreateGameRequest struct {
	Translations []TranslationInput `json:"translations"`
	Necessities  []NecessityInput   `json:"necessities"`
	PlayerCount  int                `json:"player_count"`
	CategoryID   uuid.UUID          `json:"category_id"`
	Image        string             `json:"image"`
	Publish      bool               `json:"publish"`
	New          bool               `json:"new"`
}

func (r CreateGameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Translations, validation.Required, validation.Length(1, 0)),
		validation.Field(&r.Necessities),
		validation.Field(&r.PlayerCount, validation.Required, validation.Min(1)),
		validation.Field(&r.CategoryID, validation.By(requiredUUID)),
		validation.Field(&r.Image, validation.Required),
	)
}

type UpdateGameRequest struct {
	Translations []TranslationInput `json:"translations"`
	Aliases      []AliasInput       `json:"aliases"`
	Descriptions []DescriptionInput `json:"descriptions"`
	Necessities  []NecessityInput   `json:"necessities"`
	PlayerCount  int                `json:"player_count"`
	CategoryID   uuid.UUID          `json:"category_id"`
	Image        string             `json:"image"`
}

func (r UpdateGameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Translations),
		validation.Field(&r.Aliases),
		validation.Field(&r.Descriptions),
		validation.Field(&r.Necessities),
		validation.Field(&r.PlayerCount, validation.Required, validation.Min(1)),
		validation.Field(&r.CategoryID, validation.By(requiredUUID)),
	)
}

type SetPublishRequest struct {
	Publish bool `json:"publish"`
}

type SetNewRequest struct {
	New bool `json:"new"`
}

func requiredUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}
