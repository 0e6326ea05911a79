package repository

import (
	"context"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"

	"gorm.io/gorm"
)

type PillarRepo struct {
	db *gorm.DB
}

func NewPillarRepo(db *gorm.DB) *PillarRepo {
	return &PillarRepo{db: db}
}

// List returns every pillar in creation order, without associations.
func (r *PillarRepo) List(ctx context.Context) ([]models.Pillar, error) {
	var pillars []models.Pillar
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&pillars).Error
	return pillars, err
}

// ListWithQuestions returns pillars with their questions and options
// preloaded. When visibleOnly is set, hidden questions are excluded and
// options are ordered by points descending, which is the shape the survey
// page renders.
func (r *PillarRepo) ListWithQuestions(ctx context.Context, visibleOnly bool) ([]models.Pillar, error) {
	var pillars []models.Pillar
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if visibleOnly {
		query = query.
			Preload("Questions", func(db *gorm.DB) *gorm.DB {
				return db.Where("is_hidden = ?", false).Order("created_at ASC")
			}).
			Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
				return db.Order("points DESC")
			})
	} else {
		query = query.Preload("Questions").Preload("Questions.Options")
	}
	err := query.Find(&pillars).Error
	return pillars, err
}

func (r *PillarRepo) Get(ctx context.Context, id string) (*models.Pillar, error) {
	var pillar models.Pillar
	err := r.db.WithContext(ctx).
		Preload("Questions").
		Preload("Questions.Options").
		First(&pillar, "id = ?", id).Error
	return &pillar, err
}

func (r *PillarRepo) Create(ctx context.Context, pillar *models.Pillar) error {
	return r.db.WithContext(ctx).Create(pillar).Error
}

// Update applies the given column changes and returns the updated pillar.
func (r *PillarRepo) Update(ctx context.Context, id string, changes map[string]interface{}) (*models.Pillar, error) {
	result := r.db.WithContext(ctx).Model(&models.Pillar{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var pillar models.Pillar
	err := r.db.WithContext(ctx).First(&pillar, "id = ?", id).Error
	return &pillar, err
}

// Delete removes a pillar and its questions and options. Stored responses
// are left in place.
func (r *PillarRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var questionIDs []string
		if err := tx.Model(&models.Question{}).Where("pillar_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("pillar_id = ?", id).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Pillar{}, "id = ?", id).Error
	})
}

func (r *PillarRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Pillar{}).Count(&count).Error
	return count, err
}
