package main

import (
	"context"
	"time"

	"github.com/lewis-Dimun/green-fashion-score/internal/config"
	"github.com/lewis-Dimun/green-fashion-score/internal/database"
	"github.com/lewis-Dimun/green-fashion-score/internal/logging"
	"github.com/lewis-Dimun/green-fashion-score/internal/repository"
	"github.com/lewis-Dimun/green-fashion-score/internal/router"
	"github.com/lewis-Dimun/green-fashion-score/internal/scoring"
	"github.com/lewis-Dimun/green-fashion-score/internal/seed"
	"github.com/lewis-Dimun/green-fashion-score/internal/services"

	"go.uber.org/zap"
)

func main() {
	// Bootstrap logger until the configured one is available.
	bootLog, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	if err := config.Init(".", bootLog); err != nil {
		bootLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	log, err := logging.Init(logging.Options{
		Directory:  config.Conf.Logging.Directory,
		MaxSize:    config.Conf.Logging.MaxSize,
		MaxBackups: config.Conf.Logging.MaxBackups,
		MaxAge:     config.Conf.Logging.MaxAge,
		Compress:   config.Conf.Logging.Compress,
	})
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	db, err := database.Init(log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if err := seed.Run(context.Background(), log, db); err != nil {
		log.Fatal("Failed to seed database", zap.Error(err))
	}

	if config.Conf.Recompute.Enabled {
		engine := scoring.NewEngine(repository.NewScoringStore(
			repository.NewPillarRepo(db),
			repository.NewResponseRepo(db),
			repository.NewResultRepo(db),
		), log)
		recomputer := services.NewRecomputer(log, engine, repository.NewUserRepo(db),
			time.Duration(config.Conf.Recompute.IntervalMinutes)*time.Minute)
		recomputer.Start()
		defer recomputer.Stop()
	}

	r := router.Setup(log, db)

	addr := ":" + config.Conf.Server.Port
	log.Info("Server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("Server exited", zap.Error(err))
	}
}
