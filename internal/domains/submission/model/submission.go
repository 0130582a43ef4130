package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// SubmittedGame is a visitor draft awaiting review. Drafts are flat:
// one language, necessities as a comma separated string. Promotion
// expands them into the normalized catalog shape.
type SubmittedGame struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PlayerCount int       `json:"player_count"`
	Description string    `json:"description"`
	Alias       *string   `json:"alias,omitempty"`
	Necessities string    `json:"necessities"`
	CategoryID  uuid.UUID `json:"category_id"`
	CreatorID   uuid.UUID `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

var ErrSubmissionNotFound = errors.New("submission not found")

type SubmitGameRequest struct {
	Name        string    `json:"name"`
	PlayerCount int       `json:"player_count"`
	Description string    `json:"description"`
	Alias       *string   `json:"alias"`
	Necessities string    `json:"necessities"`
	CategoryID  uuid.UUID `json:"category_id"`
}

func (r SubmitGameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.PlayerCount, validation.Required, validation.Min(1)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Necessities, validation.Length(0, 255)),
		validation.Field(&r.CategoryID, validation.By(requiredUUID)),
	)
}

func requiredUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}
