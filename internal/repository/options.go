package repository

import (
	"context"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"

	"gorm.io/gorm"
)

type OptionRepo struct {
	db *gorm.DB
}

func NewOptionRepo(db *gorm.DB) *OptionRepo {
	return &OptionRepo{db: db}
}

// List returns options ordered by points descending, optionally filtered
// to one question.
func (r *OptionRepo) List(ctx context.Context, questionID string) ([]models.Option, error) {
	var options []models.Option
	query := r.db.WithContext(ctx).Order("points DESC")
	if questionID != "" {
		query = query.Where("question_id = ?", questionID)
	}
	err := query.Find(&options).Error
	return options, err
}

func (r *OptionRepo) Get(ctx context.Context, id string) (*models.Option, error) {
	var option models.Option
	err := r.db.WithContext(ctx).First(&option, "id = ?", id).Error
	return &option, err
}

// GetByIDs loads the given options keyed by id, for validating a survey
// submission in one query.
func (r *OptionRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Option, error) {
	var options []models.Option
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&options).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.Option, len(options))
	for _, opt := range options {
		byID[opt.ID] = opt
	}
	return byID, nil
}

func (r *OptionRepo) Create(ctx context.Context, option *models.Option) error {
	return r.db.WithContext(ctx).Create(option).Error
}

func (r *OptionRepo) Update(ctx context.Context, id string, changes map[string]interface{}) (*models.Option, error) {
	result := r.db.WithContext(ctx).Model(&models.Option{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var option models.Option
	err := r.db.WithContext(ctx).First(&option, "id = ?", id).Error
	return &option, err
}

func (r *OptionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Option{}, "id = ?", id).Error
}
