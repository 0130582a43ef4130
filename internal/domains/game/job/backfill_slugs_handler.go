package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"gameshelf-backend/internal/domains/game/model"
	"gameshelf-backend/internal/domains/game/repository"
	"gameshelf-backend/internal/shared/utils"
)

// BackfillSlugsHandler walks every translation and re-derives its slug.
// It repairs rows written before slug derivation existed and rows whose
// translation name changed out of band. Collisions are logged and
// skipped so one bad row cannot stall the sweep.
type BackfillSlugsHandler struct {
	gameRepo repository.GameRepository
}

func NewBackfillSlugsHandler(gameRepo repository.GameRepository) *BackfillSlugsHandler {
	return &BackfillSlugsHandler{gameRepo: gameRepo}
}

func (h *BackfillSlugsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	translations, err := h.gameRepo.ListAllTranslations(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load translations for slug backfill")
		return err
	}

	var written, skipped int
	for _, t := range translations {
		slug := utils.GenerateSlug(t.Name)
		if slug == "" {
			skipped++
			continue
		}
		err := h.gameRepo.UpsertSlug(ctx, &model.Slug{
			GameID:     t.GameID,
			LanguageID: t.LanguageID,
			Slug:       slug,
		})
		if err != nil {
			log.Warn().
				Err(err).
				Str("game_id", t.GameID.String()).
				Int("language_id", t.LanguageID).
				Str("slug", slug).
				Msg("Skipping slug backfill row")
			skipped++
			continue
		}
		written++
	}

	log.Info().
		Int("written", written).
		Int("skipped", skipped).
		Msg("Slug backfill completed")
	return nil
}
