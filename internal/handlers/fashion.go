package handlers

import (
	"net/http"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"
	"github.com/lewis-Dimun/green-fashion-score/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FashionHandler struct {
	log    *zap.Logger
	scores *repository.FashionRepo
}

func NewFashionHandler(log *zap.Logger, scores *repository.FashionRepo) *FashionHandler {
	return &FashionHandler{log: log, scores: scores}
}

func (h *FashionHandler) List(c *gin.Context) {
	scores, err := h.scores.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list fashion scores", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to load fashion scores")
		return
	}
	c.JSON(http.StatusOK, scores)
}

type fashionScoreRequest struct {
	Brand       string   `json:"brand"`
	Score       *float64 `json:"score"`
	Category    string   `json:"category"`
	Description *string  `json:"description"`
}

func (h *FashionHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req fashionScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Brand == "" || req.Score == nil || req.Category == "" {
		jsonError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	score := &models.FashionScore{
		UserID:      user.ID,
		Brand:       req.Brand,
		Score:       *req.Score,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := h.scores.Create(c.Request.Context(), score); err != nil {
		h.log.Error("Failed to create fashion score", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to create fashion score")
		return
	}
	c.JSON(http.StatusCreated, score)
}
