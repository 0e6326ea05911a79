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

type QuestionsHandler struct {
	log       *zap.Logger
	questions *repository.QuestionRepo
}

func NewQuestionsHandler(log *zap.Logger, questions *repository.QuestionRepo) *QuestionsHandler {
	return &QuestionsHandler{log: log, questions: questions}
}

func (h *QuestionsHandler) List(c *gin.Context) {
	questions, err := h.questions.List(c.Request.Context(), c.Query("pillarId"))
	if err != nil {
		h.log.Error("Failed to list questions", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to load questions")
		return
	}
	c.JSON(http.StatusOK, questions)
}

type questionRequest struct {
	Text      string   `json:"text"`
	MaxPoints *float64 `json:"maxPoints"`
	PillarID  string   `json:"pillarId"`
	IsHidden  *bool    `json:"isHidden"`
}

func (h *QuestionsHandler) Create(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Text == "" || req.MaxPoints == nil || req.PillarID == "" {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	question := &models.Question{
		Text:      req.Text,
		MaxPoints: *req.MaxPoints,
		PillarID:  req.PillarID,
	}
	if err := h.questions.Create(c.Request.Context(), question); err != nil {
		h.log.Error("Failed to create question", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to create question")
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (h *QuestionsHandler) Get(c *gin.Context) {
	question, err := h.questions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "Question not found")
			return
		}
		h.log.Error("Failed to load question", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to load question")
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionsHandler) Update(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	changes := map[string]interface{}{}
	if req.Text != "" {
		changes["text"] = req.Text
	}
	if req.MaxPoints != nil {
		changes["max_points"] = *req.MaxPoints
	}
	if req.PillarID != "" {
		changes["pillar_id"] = req.PillarID
	}
	if req.IsHidden != nil {
		changes["is_hidden"] = *req.IsHidden
	}
	if len(changes) == 0 {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	question, err := h.questions.Update(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "Question not found")
			return
		}
		h.log.Error("Failed to update question", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to update question")
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionsHandler) Delete(c *gin.Context) {
	if err := h.questions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Error("Failed to delete question", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to delete question")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
