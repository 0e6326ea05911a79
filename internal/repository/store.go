package repository

import (
	"context"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"
	"github.com/lewis-Dimun/green-fashion-score/internal/scoring"
)

// ScoringStore adapts the pillar, response and result repositories to the
// scoring engine's Store interface.
type ScoringStore struct {
	pillars   *PillarRepo
	responses *ResponseRepo
	results   *ResultRepo
}

func NewScoringStore(pillars *PillarRepo, responses *ResponseRepo, results *ResultRepo) *ScoringStore {
	return &ScoringStore{pillars: pillars, responses: responses, results: results}
}

func (s *ScoringStore) ListPillars(ctx context.Context) ([]models.Pillar, error) {
	return s.pillars.List(ctx)
}

func (s *ScoringStore) ListResponses(ctx context.Context, userID string) ([]models.Response, error) {
	return s.responses.ListForUser(ctx, userID)
}

func (s *ScoringStore) ReplaceSnapshot(ctx context.Context, userID string, totalScore float64, breakdown []scoring.PillarBreakdown) error {
	return s.results.ReplaceSnapshot(ctx, userID, totalScore, breakdown)
}
