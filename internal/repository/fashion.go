package repository

import (
	"context"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"

	"gorm.io/gorm"
)

type FashionRepo struct {
	db *gorm.DB
}

func NewFashionRepo(db *gorm.DB) *FashionRepo {
	return &FashionRepo{db: db}
}

// List returns all brand scores, newest first, with the submitting user.
func (r *FashionRepo) List(ctx context.Context) ([]models.FashionScore, error) {
	var scores []models.FashionScore
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&scores).Error
	return scores, err
}

func (r *FashionRepo) Create(ctx context.Context, score *models.FashionScore) error {
	if err := r.db.WithContext(ctx).Create(score).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("User").First(score, "id = ?", score.ID).Error
}
