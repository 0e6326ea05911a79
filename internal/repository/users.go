package repository

import (
	"context"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"

	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, email, password, name string, role models.UserRole) (*models.User, error) {
	user := &models.User{
		Email: email,
		Name:  name,
		Role:  role,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "email = ?", email)
	return &user, result.Error
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	return &user, result.Error
}

// ListIDsWithSnapshots returns the ids of every user holding a scoring
// snapshot, for the background recomputer.
func (r *UserRepo) ListIDsWithSnapshots(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.SurveyResult{}).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
