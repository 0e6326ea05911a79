package repository

import (
	"context"
	"encoding/json"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"
	"github.com/lewis-Dimun/green-fashion-score/internal/scoring"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultRepo struct {
	db *gorm.DB
}

func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// ReplaceSnapshot upserts the user's scoring snapshot in one atomic
// statement keyed on user_id: created if absent, fully overwritten if
// present. Concurrent recomputes therefore leave whichever complete
// snapshot committed last.
func (r *ResultRepo) ReplaceSnapshot(ctx context.Context, userID string, totalScore float64, breakdown []scoring.PillarBreakdown) error {
	payload, err := json.Marshal(breakdown)
	if err != nil {
		return err
	}

	result := models.SurveyResult{
		UserID:     userID,
		TotalScore: totalScore,
		Breakdown:  datatypes.JSON(payload),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_score", "breakdown", "updated_at"}),
	}).Create(&result).Error
}

// List returns every snapshot, newest first, with the owning user loaded.
func (r *ResultRepo) List(ctx context.Context) ([]models.SurveyResult, error) {
	var results []models.SurveyResult
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}

func (r *ResultRepo) Get(ctx context.Context, id string) (*models.SurveyResult, error) {
	var result models.SurveyResult
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&result, "id = ?", id).Error
	return &result, err
}

func (r *ResultRepo) GetByUserID(ctx context.Context, userID string) (*models.SurveyResult, error) {
	var result models.SurveyResult
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&result, "user_id = ?", userID).Error
	return &result, err
}

func (r *ResultRepo) CountForUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SurveyResult{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
