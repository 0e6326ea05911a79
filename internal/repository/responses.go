package repository

import (
	"context"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"

	"gorm.io/gorm"
)

type ResponseRepo struct {
	db *gorm.DB
}

func NewResponseRepo(db *gorm.DB) *ResponseRepo {
	return &ResponseRepo{db: db}
}

// ListForUser returns every stored response for a user with the question,
// its pillar, and the selected option preloaded. Ordering follows creation
// time so repeated reads of the same data come back in the same order.
func (r *ResponseRepo) ListForUser(ctx context.Context, userID string) ([]models.Response, error) {
	var responses []models.Response
	err := r.db.WithContext(ctx).
		Preload("Question").
		Preload("Question.Pillar").
		Preload("Option").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&responses).Error
	return responses, err
}

// Replace swaps out the user's answers for the submitted questions in a
// single transaction: prior responses to those questions are removed, then
// the new ones inserted. Responses to questions not in this submission are
// untouched.
func (r *ResponseRepo) Replace(ctx context.Context, userID string, responses []models.Response) error {
	questionIDs := make([]string, 0, len(responses))
	for _, resp := range responses {
		questionIDs = append(questionIDs, resp.QuestionID)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(questionIDs) > 0 {
			if err := tx.Where("user_id = ? AND question_id IN ?", userID, questionIDs).
				Delete(&models.Response{}).Error; err != nil {
				return err
			}
		}
		if len(responses) > 0 {
			if err := tx.Create(&responses).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
