package model

import "errors"

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrSlugTaken          = errors.New("slug already in use for this language")
	ErrDuplicateNecessity = errors.New("necessity already exists for this game")
	ErrNecessityNotFound  = errors.New("necessity not found for this game")
	ErrInvalidReference   = errors.New("referenced record does not exist")
)
