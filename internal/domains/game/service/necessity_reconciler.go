package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"gameshelf-backend/internal/domains/game/model"
	"gameshelf-backend/internal/domains/game/repository"
)

// reconcileNecessities makes the stored necessity list of a game match
// the submitted descriptors. Descriptors with an id update the existing
// row, descriptors without one create or adopt a row by name, and blank
// names are skipped. Everything the pass did not touch is deleted, so
// omitting a necessity removes it.
func (s *gameService) reconcileNecessities(ctx context.Context, repo repository.GameRepository, gameID uuid.UUID, inputs []model.NecessityInput) error {
	kept := make([]uuid.UUID, 0, len(inputs))

	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}

		var necessityID uuid.UUID
		switch {
		case in.ID != nil:
			if err := repo.UpdateNecessityName(ctx, *in.ID, gameID, name); err != nil {
				return err
			}
			necessityID = *in.ID
		default:
			existing, err := repo.FindNecessityByName(ctx, gameID, name)
			switch {
			case err == nil:
				necessityID = existing.ID
			case errors.Is(err, model.ErrNecessityNotFound):
				n := &model.Necessity{ID: uuid.New(), GameID: gameID, Name: name}
				if err := repo.InsertNecessity(ctx, n); err != nil {
					return err
				}
				necessityID = n.ID
			default:
				return err
			}
		}

		for _, t := range in.Translations {
			trName := strings.TrimSpace(t.Name)
			if trName == "" {
				trName = name
			}
			if err := repo.UpsertNecessityTranslation(ctx, necessityID, t.LanguageID, trName); err != nil {
				return err
			}
		}

		kept = append(kept, necessityID)
	}

	return repo.DeleteNecessitiesExcept(ctx, gameID, kept)
}
