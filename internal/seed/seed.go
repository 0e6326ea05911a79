package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/lewis-Dimun/green-fashion-score/internal/config"
	"github.com/lewis-Dimun/green-fashion-score/internal/models"
	"github.com/lewis-Dimun/green-fashion-score/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Run seeds the default accounts and, when the pillar table is still
// empty, the survey definition from the configured YAML file.
func Run(ctx context.Context, log *zap.Logger, db *gorm.DB) error {
	if err := seedUsers(ctx, log, db); err != nil {
		return err
	}
	return seedSurvey(ctx, log, db)
}

func seedUsers(ctx context.Context, log *zap.Logger, db *gorm.DB) error {
	users := repository.NewUserRepo(db)
	seedConf := config.Conf.Seed

	defaults := []struct {
		email    string
		name     string
		password string
		role     models.UserRole
	}{
		{seedConf.AdminEmail, "Admin User", seedConf.AdminPassword, models.RoleAdmin},
		{seedConf.UserEmail, "Survey User", seedConf.UserPassword, models.RoleUser},
	}

	for _, d := range defaults {
		if d.email == "" {
			continue
		}
		_, err := users.GetByEmail(ctx, d.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check seed user %s: %w", d.email, err)
		}
		if _, err := users.Create(ctx, d.email, d.password, d.name, d.role); err != nil {
			return fmt.Errorf("failed to create seed user %s: %w", d.email, err)
		}
		log.Info("Seeded default account", zap.String("email", d.email), zap.String("role", string(d.role)))
	}
	return nil
}

func seedSurvey(ctx context.Context, log *zap.Logger, db *gorm.DB) error {
	pillars := repository.NewPillarRepo(db)

	count, err := pillars.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pillars: %w", err)
	}
	if count > 0 {
		return nil
	}

	path := config.Conf.Seed.SurveyFile
	def, err := models.LoadSurveyDefinition(path)
	if err != nil {
		// Running with an empty survey is fine; an admin can build it up
		// through the API.
		log.Warn("No survey definition seeded", zap.String("file", path), zap.Error(err))
		return nil
	}

	for _, pd := range def.Pillars {
		pillar := models.Pillar{
			Name:      pd.Name,
			MaxPoints: pd.MaxPoints,
			Weight:    pd.Weight,
		}
		if pd.Description != "" {
			desc := pd.Description
			pillar.Description = &desc
		}
		for _, qd := range pd.Questions {
			question := models.Question{
				Text:      qd.Text,
				MaxPoints: qd.MaxPoints,
			}
			for _, od := range qd.Options {
				question.Options = append(question.Options, models.Option{
					Label:  od.Label,
					Points: od.Points,
				})
			}
			pillar.Questions = append(pillar.Questions, question)
		}
		if err := pillars.Create(ctx, &pillar); err != nil {
			return fmt.Errorf("failed to seed pillar %q: %w", pd.Name, err)
		}
	}

	log.Info("Seeded survey definition", zap.String("file", path), zap.Int("pillars", len(def.Pillars)))
	return nil
}
