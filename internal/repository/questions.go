package repository

import (
	"context"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"

	"gorm.io/gorm"
)

type QuestionRepo struct {
	db *gorm.DB
}

func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// List returns questions in creation order with options and pillar
// preloaded, optionally filtered to one pillar.
func (r *QuestionRepo) List(ctx context.Context, pillarID string) ([]models.Question, error) {
	var questions []models.Question
	query := r.db.WithContext(ctx).
		Preload("Options").
		Preload("Pillar").
		Order("created_at ASC")
	if pillarID != "" {
		query = query.Where("pillar_id = ?", pillarID)
	}
	err := query.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepo) Get(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).
		Preload("Options").
		Preload("Pillar").
		First(&question, "id = ?", id).Error
	return &question, err
}

func (r *QuestionRepo) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *QuestionRepo) Update(ctx context.Context, id string, changes map[string]interface{}) (*models.Question, error) {
	result := r.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var question models.Question
	err := r.db.WithContext(ctx).First(&question, "id = ?", id).Error
	return &question, err
}

// Delete removes a question and its options.
func (r *QuestionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, "id = ?", id).Error
	})
}
