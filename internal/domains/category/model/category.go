package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CategoryTranslation struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	LanguageID int       `json:"language_id"`
	Name       string    `json:"name"`
}

type CategoryDetail struct {
	Category
	Translations []CategoryTranslation `json:"translations"`
}

var ErrCategoryNotFound = errors.New("category not found")

type CategoryTranslationInput struct {
	LanguageID int    `json:"language_id"`
	Name       string `json:"name"`
}

func (t CategoryTranslationInput) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.LanguageID, validation.Required, validation.Min(1)),
		validation.Field(&t.Name, validation.Required, validation.Length(1, 255)),
	)
}

type CreateCategoryRequest struct {
	Name         string                     `json:"name"`
	Translations []CategoryTranslationInput `json:"translations"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Translations),
	)
}
