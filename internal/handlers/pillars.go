package handlers

import (
	"errors"
	"net/http"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"
	"github.com/lewis-Dimun/green-fashion-score/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PillarsHandler struct {
	log     *zap.Logger
	pillars *repository.PillarRepo
}

func NewPillarsHandler(log *zap.Logger, pillars *repository.PillarRepo) *PillarsHandler {
	return &PillarsHandler{log: log, pillars: pillars}
}

func (h *PillarsHandler) List(c *gin.Context) {
	pillars, err := h.pillars.ListWithQuestions(c.Request.Context(), false)
	if err != nil {
		h.log.Error("Failed to list pillars", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to load pillars")
		return
	}
	c.JSON(http.StatusOK, pillars)
}

type createPillarRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	MaxPoints   *float64 `json:"maxPoints"`
	Weight      *float64 `json:"weight"`
}

func (h *PillarsHandler) Create(c *gin.Context) {
	var req createPillarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Name == "" || req.MaxPoints == nil || req.Weight == nil {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	pillar := &models.Pillar{
		Name:        req.Name,
		Description: req.Description,
		MaxPoints:   *req.MaxPoints,
		Weight:      *req.Weight,
	}
	if err := h.pillars.Create(c.Request.Context(), pillar); err != nil {
		h.log.Error("Failed to create pillar", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to create pillar")
		return
	}
	c.JSON(http.StatusCreated, pillar)
}

func (h *PillarsHandler) Get(c *gin.Context) {
	pillar, err := h.pillars.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "Pillar not found")
			return
		}
		h.log.Error("Failed to load pillar", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to load pillar")
		return
	}
	c.JSON(http.StatusOK, pillar)
}

func (h *PillarsHandler) Update(c *gin.Context) {
	var req createPillarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	// Description is always written, clearing it when absent; the other
	// fields only change when supplied.
	changes := map[string]interface{}{"description": req.Description}
	if req.Name != "" {
		changes["name"] = req.Name
	}
	if req.MaxPoints != nil {
		changes["max_points"] = *req.MaxPoints
	}
	if req.Weight != nil {
		changes["weight"] = *req.Weight
	}

	pillar, err := h.pillars.Update(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "Pillar not found")
			return
		}
		h.log.Error("Failed to update pillar", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to update pillar")
		return
	}
	c.JSON(http.StatusOK, pillar)
}

func (h *PillarsHandler) Delete(c *gin.Context) {
	if err := h.pillars.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Error("Failed to delete pillar", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to delete pillar")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
