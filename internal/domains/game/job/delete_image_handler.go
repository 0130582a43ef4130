package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"gameshelf-backend/internal/infrastructure/storage"
	"gameshelf-backend/internal/shared"
)

// DeleteImageHandler removes the stored image variants of a replaced or
// deleted game. Cleanup is best effort from the caller's point of view;
// a failed task is retried by asynq.
type DeleteImageHandler struct {
	storage *storage.MinIOStorage
}

func NewDeleteImageHandler(storage *storage.MinIOStorage) *DeleteImageHandler {
	return &DeleteImageHandler{storage: storage}
}

func (h *DeleteImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteGameImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteGameImage payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if payload.Image == "" {
		return nil
	}

	log.Info().
		Str("image", payload.Image).
		Msg("Deleting game image")

	if err := h.storage.DeleteByPrefix(ctx, payload.Image); err != nil {
		log.Error().
			Err(err).
			Str("image", payload.Image).
			Msg("Failed to delete game image")
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
