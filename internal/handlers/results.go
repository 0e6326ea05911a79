package handlers

import (
	"errors"
	"net/http"

	"github.com/lewis-Dimun/green-fashion-score/internal/repository"
	"github.com/lewis-Dimun/green-fashion-score/internal/scoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type ResultsHandler struct {
	log     *zap.Logger
	engine  *scoring.Engine
	results *repository.ResultRepo
}

func NewResultsHandler(log *zap.Logger, engine *scoring.Engine, results *repository.ResultRepo) *ResultsHandler {
	return &ResultsHandler{log: log, engine: engine, results: results}
}

// resolveTarget decides whose results are being requested. Admins may ask
// for any user via ?userId=; everyone else only gets their own.
func (h *ResultsHandler) resolveTarget(c *gin.Context) (string, bool) {
	user, ok := currentUser(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}

	requested := c.Query("userId")
	if requested == "" || requested == user.ID {
		return user.ID, true
	}
	if !user.IsAdmin() {
		jsonError(c, http.StatusForbidden, "Forbidden")
		return "", false
	}
	return requested, true
}

// Me recomputes the caller's score and returns the summary alongside the
// stored snapshot row.
func (h *ResultsHandler) Me(c *gin.Context) {
	userID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	summary, err := h.engine.ComputeAndPersist(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to compute score", zap.Error(err), zap.String("userID", userID))
		if errors.Is(err, scoring.ErrSave) {
			jsonError(c, http.StatusInternalServerError, "Failed to save results")
		} else {
			jsonError(c, http.StatusInternalServerError, "Failed to load results")
		}
		return
	}

	result, err := h.results.GetByUserID(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.log.Error("Failed to load snapshot", zap.Error(err), zap.String("userID", userID))
		jsonError(c, http.StatusInternalServerError, "Failed to load results")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":  userID,
		"summary": summary,
		"result":  result,
	})
}

// Chart renders the per-pillar breakdown as echarts bar-chart options:
// each pillar's weighted contribution next to its weight ceiling.
func (h *ResultsHandler) Chart(c *gin.Context) {
	userID, ok := h.resolveTarget(c)
	if !ok {
		return
	}

	summary, err := h.engine.ComputeAndPersist(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to compute score for chart", zap.Error(err), zap.String("userID", userID))
		jsonError(c, http.StatusInternalServerError, "Failed to load results")
		return
	}

	c.JSON(http.StatusOK, generateBreakdownChart(summary).JSON())
}

// List returns every stored snapshot, newest first. Admin only.
func (h *ResultsHandler) List(c *gin.Context) {
	results, err := h.results.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list results", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to load results")
		return
	}
	c.JSON(http.StatusOK, results)
}

// Get returns one snapshot by row id. Admin only.
func (h *ResultsHandler) Get(c *gin.Context) {
	result, err := h.results.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "Result not found")
			return
		}
		h.log.Error("Failed to load result", zap.Error(err), zap.String("id", c.Param("id")))
		jsonError(c, http.StatusInternalServerError, "Failed to load results")
		return
	}
	c.JSON(http.StatusOK, result)
}

func generateBreakdownChart(summary *scoring.ScoringResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Sustainability Score Breakdown",
			Subtitle: "Weighted contribution per pillar",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
	)

	names := make([]string, 0, len(summary.Breakdown))
	achieved := make([]opts.BarData, 0, len(summary.Breakdown))
	ceilings := make([]opts.BarData, 0, len(summary.Breakdown))
	for _, entry := range summary.Breakdown {
		names = append(names, entry.PillarName)
		achieved = append(achieved, opts.BarData{Value: entry.WeightedScore})
		ceilings = append(ceilings, opts.BarData{Value: entry.Weight})
	}

	bar.SetXAxis(names).
		AddSeries("Weighted score", achieved).
		AddSeries("Weight ceiling", ceilings)
	return bar
}
