package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	gamemodel "gameshelf-backend/internal/domains/game/model"
	"gameshelf-backend/internal/domains/submission/model"
	"gameshelf-backend/internal/domains/submission/service"
	"gameshelf-backend/internal/shared/response"
	"gameshelf-backend/pkg/logger"
)

type SubmissionHandler struct {
	submissionService service.SubmissionService
}

func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Submit POST /api/v1/games/submit
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req model.SubmitGameRequest
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

	draft, err := h.submissionService.Submit(c.Request.Context(), creatorID, req)
	if err != nil {
		if errors.Is(err, gamemodel.ErrInvalidReference) {
			response.BadRequest(c, "Referenced record does not exist")
			return
		}
		logger.Error("failed to submit game", err)
		response.InternalServerError(c, "Failed to submit game")
		return
	}
	response.Success(c, http.StatusCreated, draft)
}

// List GET /api/v1/admin/submissions
func (h *SubmissionHandler) List(c *gin.Context) {
	drafts, err := h.submissionService.List(c.Request.Context())
	if err != nil {
		logger.Error("failed to list submissions", err)
		response.InternalServerError(c, "Failed to list submissions")
		return
	}
	response.Success(c, http.StatusOK, drafts)
}

// Approve POST /api/v1/admin/submissions/:id/approve
func (h *SubmissionHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid submission id")
		return
	}

	gameID, err := h.submissionService.Approve(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrSubmissionNotFound):
			response.NotFound(c, "Submission not found")
		case errors.Is(err, gamemodel.ErrSlugTaken):
			response.Conflict(c, "Slug already in use for this language")
		case errors.Is(err, gamemodel.ErrInvalidReference):
			response.BadRequest(c, "Referenced record does not exist")
		default:
			logger.Error("failed to approve submission", err)
			response.InternalServerError(c, "Failed to approve submission")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"game_id": gameID})
}

// Reject DELETE /api/v1/admin/submissions/:id
func (h *SubmissionHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid submission id")
		return
	}

	if err := h.submissionService.Reject(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrSubmissionNotFound) {
			response.NotFound(c, "Submission not found")
			return
		}
		logger.Error("failed to reject submission", err)
		response.InternalServerError(c, "Failed to reject submission")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rejected": true})
}
