package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"

	"go.uber.org/zap"
)

// ErrLoad and ErrSave let callers tell a failed read apart from a failed
// snapshot write. A caller seeing ErrSave must not assume the computed
// result was persisted.
var (
	ErrLoad = errors.New("scoring: data load failed")
	ErrSave = errors.New("scoring: snapshot save failed")
)

// PillarBreakdown is one pillar's computed achievement summary.
type PillarBreakdown struct {
	PillarID      string  `json:"pillarId"`
	PillarName    string  `json:"pillarName"`
	Obtained      float64 `json:"obtained"`
	MaxPoints     float64 `json:"maxPoints"`
	Weight        float64 `json:"weight"`
	WeightedScore float64 `json:"weightedScore"`
}

// QuestionResponse is the denormalized projection of one stored response,
// carrying enough context for dashboards and certificates to render it
// without further joins.
type QuestionResponse struct {
	QuestionID   string  `json:"questionId"`
	QuestionText string  `json:"questionText"`
	PillarID     string  `json:"pillarId"`
	PillarName   string  `json:"pillarName"`
	OptionID     *string `json:"optionId"`
	OptionLabel  *string `json:"optionLabel"`
	Points       float64 `json:"points"`
}

// ScoringResult is what a single engine run produces.
type ScoringResult struct {
	TotalScore float64            `json:"totalScore"`
	Breakdown  []PillarBreakdown  `json:"breakdown"`
	Responses  []QuestionResponse `json:"responses"`
}

// Store is the engine's seam to the persistence layer: two reads and one
// atomic replace-by-key write. Implementations must preload each response's
// question, that question's pillar, and (when still present) its option.
type Store interface {
	ListPillars(ctx context.Context) ([]models.Pillar, error)
	ListResponses(ctx context.Context, userID string) ([]models.Response, error)
	ReplaceSnapshot(ctx context.Context, userID string, totalScore float64, breakdown []PillarBreakdown) error
}

// Engine aggregates a user's stored responses into a weighted composite
// score and persists the result as that user's current snapshot.
type Engine struct {
	store Store
	log   *zap.Logger
}

func NewEngine(store Store, log *zap.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// pillarAccum is the per-invocation keyed accumulator for one pillar's
// running total. Built fresh on every run, never shared across calls.
type pillarAccum struct {
	id        string
	name      string
	maxPoints float64
	weight    float64
	obtained  float64
}

// ComputeAndPersist loads the pillar universe and the user's responses,
// folds response scores into per-pillar totals, caps and weights each
// pillar, upserts the snapshot keyed by user, and returns the result.
//
// Every configured pillar appears in the breakdown even with zero obtained
// points. A response whose pillar is missing from the configured set (for
// example the pillar was deleted after the answer was recorded) still gets
// an entry built from the pillar data carried on the join, so historical
// points are never silently dropped.
func (e *Engine) ComputeAndPersist(ctx context.Context, userID string) (*ScoringResult, error) {
	pillars, err := e.store.ListPillars(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list pillars: %w", ErrLoad, err)
	}

	responses, err := e.store.ListResponses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list responses: %w", ErrLoad, err)
	}

	accums := make(map[string]*pillarAccum, len(pillars))
	order := make([]string, 0, len(pillars))
	for _, p := range pillars {
		accums[p.ID] = &pillarAccum{
			id:        p.ID,
			name:      p.Name,
			maxPoints: p.MaxPoints,
			weight:    p.Weight,
		}
		order = append(order, p.ID)
	}

	summaries := make([]QuestionResponse, 0, len(responses))
	for _, r := range responses {
		question := r.Question
		pillar := question.Pillar
		if pillar.ID == "" {
			// Response lost its question/pillar join entirely; nothing to
			// attribute the points to.
			continue
		}

		entry, ok := accums[pillar.ID]
		if !ok {
			entry = &pillarAccum{
				id:        pillar.ID,
				name:      pillar.Name,
				maxPoints: pillar.MaxPoints,
				weight:    pillar.Weight,
			}
			accums[pillar.ID] = entry
			order = append(order, pillar.ID)
		}
		entry.obtained += r.Score

		summary := QuestionResponse{
			QuestionID:   question.ID,
			QuestionText: question.Text,
			PillarID:     pillar.ID,
			PillarName:   pillar.Name,
			Points:       r.Score,
		}
		if r.Option != nil {
			summary.OptionID = &r.Option.ID
			summary.OptionLabel = &r.Option.Label
			summary.Points = r.Option.Points
		}
		summaries = append(summaries, summary)
	}

	breakdown := make([]PillarBreakdown, 0, len(order))
	totalScore := 0.0
	for _, id := range order {
		entry := accums[id]
		capped := math.Min(entry.obtained, entry.maxPoints)

		var weighted float64
		switch {
		case capped >= entry.maxPoints:
			// Fully achieved. Also the zero-ceiling case: min(obtained, 0)
			// with obtained >= 0 yields 0 >= 0, awarding the full weight.
			weighted = entry.weight
		case entry.maxPoints == 0:
			weighted = 0
		default:
			weighted = entry.weight * (capped / entry.maxPoints)
		}

		breakdown = append(breakdown, PillarBreakdown{
			PillarID:      entry.id,
			PillarName:    entry.name,
			Obtained:      entry.obtained,
			MaxPoints:     entry.maxPoints,
			Weight:        entry.weight,
			WeightedScore: weighted,
		})
		totalScore += weighted
	}

	if err := e.store.ReplaceSnapshot(ctx, userID, totalScore, breakdown); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSave, err)
	}

	e.log.Debug("Scoring snapshot replaced",
		zap.String("userID", userID),
		zap.Float64("totalScore", totalScore),
		zap.Int("pillars", len(breakdown)),
		zap.Int("responses", len(summaries)),
	)

	return &ScoringResult{
		TotalScore: totalScore,
		Breakdown:  breakdown,
		Responses:  summaries,
	}, nil
}
