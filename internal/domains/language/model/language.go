package model

import "errors"

// Language is fixed seed data: the six catalog languages addressed by
// numeric id and short code. Id 1 is the default language whose
// translation is mirrored into the denormalized game columns.
type Language struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

var ErrLanguageNotFound = errors.New("language not found")
