package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gameshelf-backend/internal/domains/game/model"
	"gameshelf-backend/internal/domains/game/service"
	"gameshelf-backend/internal/infrastructure/storage"
	"gameshelf-backend/internal/shared/response"
	"gameshelf-backend/pkg/logger"
)

type GameHandler struct {
	gameService service.GameService
	storage     *storage.MinIOStorage
	processor   *storage.ImageProcessor
}

func NewGameHandler(gameService service.GameService, storage *storage.MinIOStorage, processor *storage.ImageProcessor) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		storage:     storage,
		processor:   processor,
	}
}

// ===== PUBLIC ENDPOINTS =====

// ListPublished GET /api/v1/games
func (h *GameHandler) ListPublished(c *gin.Context) {
	games, err := h.gameService.ListPublished(c.Request.Context())
	if err != nil {
		logger.Error("failed to list games", err)
		response.InternalServerError(c, "Failed to list games")
		return
	}
	response.Success(c, http.StatusOK, games)
}

// GetBySlug GET /api/v1/games/:lang/:slug
func (h *GameHandler) GetBySlug(c *gin.Context) {
	lang := c.Param("lang")
	slug := c.Param("slug")

	game, err := h.gameService.GetBySlug(c.Request.Context(), lang, slug)
	if err != nil {
		h.writeError(c, err, "Failed to get game")
		return
	}
	response.Success(c, http.StatusOK, game)
}

// ===== ADMIN ENDPOINTS =====

// ListAll GET /api/v1/admin/games
func (h *GameHandler) ListAll(c *gin.Context) {
	games, err := h.gameService.ListAll(c.Request.Context())
	if err != nil {
		logger.Error("failed to list games", err)
		response.InternalServerError(c, "Failed to list games")
		return
	}
	response.Success(c, http.StatusOK, games)
}

// GetByID GET /api/v1/admin/games/:id
func (h *GameHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid game id")
		return
	}

	game, err := h.gameService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to get game")
		return
	}
	response.Success(c, http.StatusOK, game)
}

// Create POST /api/v1/admin/games
func (h *GameHandler) Create(c *gin.Context) {
	var req model.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	creatorID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		response.Unauthorized(c, "Invalid session")
		return
	}

	id, err := h.gameService.Create(c.Request.Context(), creatorID, req)
	if err != nil {
		h.writeError(c, err, "Failed to create game")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id})
}

// Update PUT /api/v1/admin/games/:id
func (h *GameHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid game id")
		return
	}

	var req model.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.gameService.Update(c.Request.Context(), id, req); err != nil {
		h.writeError(c, err, "Failed to update game")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

// Delete DELETE /api/v1/admin/games/:id
func (h *GameHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid game id")
		return
	}

	if err := h.gameService.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to delete game")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// SetPublish PATCH /api/v1/admin/games/:id/publish
func (h *GameHandler) SetPublish(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid game id")
		return
	}

	var req model.SetPublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.gameService.SetPublish(c.Request.Context(), id, req.Publish); err != nil {
		h.writeError(c, err, "Failed to update publish flag")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"publish": req.Publish})
}

// SetNew PATCH /api/v1/admin/games/:id/new
func (h *GameHandler) SetNew(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid game id")
		return
	}

	var req model.SetNewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.gameService.SetNew(c.Request.Context(), id, req.New); err != nil {
		h.writeError(c, err, "Failed to update new flag")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"new": req.New})
}

// UploadImage POST /api/v1/admin/games/image
// Validates and resizes the upload, stores all variants under one key
// prefix and returns that prefix as the image reference.
func (h *GameHandler) UploadImage(c *gin.Context) {
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Missing image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "Failed to read image file")
		return
	}
	if err := h.processor.ValidateImage(data); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	variants, err := h.processor.ProcessImage(data)
	if err != nil {
		logger.Error("failed to process image", err)
		response.InternalServerError(c, "Failed to process image")
		return
	}

	prefix := fmt.Sprintf("games/%s", uuid.New())
	for size, body := range variants {
		key := fmt.Sprintf("%s/%s.jpg", prefix, size)
		if _, err := h.storage.Upload(c.Request.Context(), key, body, "image/jpeg"); err != nil {
			logger.Error("failed to upload image variant", err)
			response.InternalServerError(c, "Failed to store image")
			return
		}
	}

	response.Success(c, http.StatusCreated, gin.H{
		"image": prefix,
		"url":   h.storage.URL(prefix + "/large.jpg"),
	})
}

// writeError maps domain errors onto HTTP statuses.
func (h *GameHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		response.NotFound(c, "Game not found")
	case errors.Is(err, model.ErrNecessityNotFound):
		response.BadRequest(c, "Necessity does not belong to this game")
	case errors.Is(err, model.ErrInvalidReference):
		response.BadRequest(c, "Referenced record does not exist")
	case errors.Is(err, model.ErrSlugTaken):
		response.Conflict(c, "Slug already in use for this language")
	case errors.Is(err, model.ErrDuplicateNecessity):
		response.Conflict(c, "Necessity already exists for this game")
	default:
		logger.Error(fallback, err)
		response.InternalServerError(c, fallback)
	}
}
