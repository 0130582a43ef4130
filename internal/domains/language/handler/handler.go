package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gameshelf-backend/internal/domains/language/repository"
	"gameshelf-backend/internal/shared/response"
)

type LanguageHandler struct {
	languageRepo repository.LanguageRepository
}

func NewLanguageHandler(languageRepo repository.LanguageRepository) *LanguageHandler {
	return &LanguageHandler{languageRepo: languageRepo}
}

// List returns the fixed language dimension.
// GET /api/v1/languages
func (h *LanguageHandler) List(c *gin.Context) {
	languages, err := h.languageRepo.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to list languages")
		return
	}

	response.Success(c, http.StatusOK, languages)
}
