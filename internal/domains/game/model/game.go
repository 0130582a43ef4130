package model

import (
	"time"

	"github.com/google/uuid"
)

// Game is the canonical catalog row. Name, alias and description are
// denormalized copies of the default-language translation and are kept
// in sync by the service whenever that translation changes.
type Game struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PlayerCount int       `json:"player_count"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Alias       *string   `json:"alias,omitempty"`
	CategoryID  uuid.UUID `json:"category_id"`
	CreatorID   uuid.UUID `json:"creator_id"`
	Publish     bool      `json:"publish"`
	New         bool      `json:"new"`
	Popularity  int       `json:"popularity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Translation is the per-language text of a game. At most one row per
// (game, language); name is required, alias and description optional.
type Translation struct {
	ID          uuid.UUID `json:"id"`
	GameID      uuid.UUID `json:"game_id"`
	LanguageID  int       `json:"language_id"`
	Name        string    `json:"name"`
	Alias       *string   `json:"alias,omitempty"`
	Description *string   `json:"description,omitempty"`
}

// Slug maps (game, language) to the URL slug derived from the
// translation name. Unique per language, not globally.
type Slug struct {
	GameID     uuid.UUID `json:"game_id"`
	LanguageID int       `json:"language_id"`
	Slug       string    `json:"slug"`
}

// Necessity is a requirement sub-entity owned by one game. The canonical
// name is denormalized from the default-language translation;
// (name, game) is unique.
type Necessity struct {
	ID     uuid.UUID `json:"id"`
	GameID uuid.UUID `json:"game_id"`
	Name   string    `json:"name"`
}

type NecessityTranslation struct {
	ID          uuid.UUID `json:"id"`
	NecessityID uuid.UUID `json:"necessity_id"`
	LanguageID  int       `json:"language_id"`
	Name        string    `json:"name"`
}

// NecessityDetail is a necessity with its translations attached, as
// returned by the read endpoints.
type NecessityDetail struct {
	Necessity
	Translations []NecessityTranslation `json:"translations"`
}

// GameDetail is the full read model: canonical row plus children.
type GameDetail struct {
	Game
	Translations []Translation     `json:"translations"`
	Necessities  []NecessityDetail `json:"necessities"`
}
