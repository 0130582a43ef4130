package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gameshelf-backend/internal/domains/category/model"
	"gameshelf-backend/internal/domains/category/repository"
	"gameshelf-backend/internal/shared/response"
	"gameshelf-backend/pkg/logger"
)

type CategoryHandler struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryHandler(categoryRepo repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo}
}

// List GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryRepo.List(c.Request.Context())
	if err != nil {
		logger.Error("failed to list categories", err)
		response.InternalServerError(c, "Failed to list categories")
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// Create POST /api/v1/admin/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryRepo.Create(c.Request.Context(), req)
	if err != nil {
		logger.Error("failed to create category", err)
		response.InternalServerError(c, "Failed to create category")
		return
	}
	response.Success(c, http.StatusCreated, category)
}

// Delete DELETE /api/v1/admin/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category id")
		return
	}

	if err := h.categoryRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrCategoryNotFound) {
			response.NotFound(c, "Category not found")
			return
		}
		logger.Error("failed to delete category", err)
		response.InternalServerError(c, "Failed to delete category")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
