package main

import (
	"github.com/hibiken/asynq"

	gameJob "gameshelf-backend/internal/domains/game/job"
	"gameshelf-backend/internal/shared"
	"gameshelf-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	deleteGameImage *gameJob.DeleteImageHandler
	backfillSlugs   *gameJob.BackfillSlugsHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		deleteGameImage: gameJob.NewDeleteImageHandler(c.Storage),
		backfillSlugs:   gameJob.NewBackfillSlugsHandler(c.GameRepo),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeDeleteGameImage, h.deleteGameImage.ProcessTask)
	mux.HandleFunc(shared.TypeBackfillSlugs, h.backfillSlugs.ProcessTask)
}
