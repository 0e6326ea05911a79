package handlers

import (
	"net/http"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"
	"github.com/lewis-Dimun/green-fashion-score/internal/repository"
	"github.com/lewis-Dimun/green-fashion-score/internal/scoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SurveyHandler struct {
	log       *zap.Logger
	pillars   *repository.PillarRepo
	options   *repository.OptionRepo
	responses *repository.ResponseRepo
	engine    *scoring.Engine
}

func NewSurveyHandler(log *zap.Logger, pillars *repository.PillarRepo, options *repository.OptionRepo, responses *repository.ResponseRepo, engine *scoring.Engine) *SurveyHandler {
	return &SurveyHandler{log: log, pillars: pillars, options: options, responses: responses, engine: engine}
}

// GetSurvey returns the live survey: every pillar with its visible
// questions, options ordered best-first.
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	pillars, err := h.pillars.ListWithQuestions(c.Request.Context(), true)
	if err != nil {
		h.log.Error("Failed to load survey", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to load survey")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pillars": pillars, "userId": user.ID})
}

type submittedAnswer struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

type submitSurveyRequest struct {
	Responses []submittedAnswer `json:"responses"`
}

// SubmitSurvey validates the submitted answers against the stored options,
// replaces the user's responses for those questions in one transaction,
// then runs the scoring engine and returns the fresh result.
func (h *SurveyHandler) SubmitSurvey(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req submitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}
	if len(req.Responses) == 0 {
		jsonError(c, http.StatusBadRequest, "No responses provided")
		return
	}

	sanitized := make([]submittedAnswer, 0, len(req.Responses))
	for _, entry := range req.Responses {
		if entry.QuestionID != "" && entry.OptionID != "" {
			sanitized = append(sanitized, entry)
		}
	}
	if len(sanitized) == 0 {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	optionIDs := make([]string, 0, len(sanitized))
	for _, entry := range sanitized {
		optionIDs = append(optionIDs, entry.OptionID)
	}
	optionByID, err := h.options.GetByIDs(c.Request.Context(), optionIDs)
	if err != nil {
		h.log.Error("Failed to load options for submission", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to submit survey")
		return
	}

	seenQuestions := make(map[string]struct{}, len(sanitized))
	records := make([]models.Response, 0, len(sanitized))
	for _, entry := range sanitized {
		option, ok := optionByID[entry.OptionID]
		if !ok || option.QuestionID != entry.QuestionID {
			jsonError(c, http.StatusBadRequest, "Invalid option selection")
			return
		}
		if _, dup := seenQuestions[option.QuestionID]; dup {
			jsonError(c, http.StatusBadRequest, "Duplicate responses for question detected")
			return
		}
		seenQuestions[option.QuestionID] = struct{}{}

		optionID := option.ID
		records = append(records, models.Response{
			UserID:     user.ID,
			QuestionID: option.QuestionID,
			OptionID:   &optionID,
			Score:      option.Points,
		})
	}

	if err := h.responses.Replace(c.Request.Context(), user.ID, records); err != nil {
		h.log.Error("Failed to store responses", zap.Error(err), zap.String("userID", user.ID))
		jsonError(c, http.StatusInternalServerError, "Failed to submit survey")
		return
	}

	result, err := h.engine.ComputeAndPersist(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to score submission", zap.Error(err), zap.String("userID", user.ID))
		jsonError(c, http.StatusInternalServerError, "Failed to submit survey")
		return
	}

	c.JSON(http.StatusCreated, result)
}
