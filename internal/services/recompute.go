package services

import (
	"context"
	"time"

	"github.com/lewis-Dimun/green-fashion-score/internal/repository"
	"github.com/lewis-Dimun/green-fashion-score/internal/scoring"

	"go.uber.org/zap"
)

// Recomputer periodically re-runs the scoring engine for every user who
// holds a snapshot, so stored totals follow admin edits to pillar weights
// and ceilings without waiting for the user's next visit.
type Recomputer struct {
	log      *zap.Logger
	engine   *scoring.Engine
	users    *repository.UserRepo
	interval time.Duration
	stop     chan struct{}
}

func NewRecomputer(log *zap.Logger, engine *scoring.Engine, users *repository.UserRepo, interval time.Duration) *Recomputer {
	return &Recomputer{
		log:      log,
		engine:   engine,
		users:    users,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start runs the recompute loop in a goroutine.
func (r *Recomputer) Start() {
	r.log.Info("Starting snapshot recomputer", zap.Duration("interval", r.interval))
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.runOnce()
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop ends the loop. A recompute already in flight finishes.
func (r *Recomputer) Stop() {
	close(r.stop)
}

func (r *Recomputer) runOnce() {
	ctx := context.Background()

	userIDs, err := r.users.ListIDsWithSnapshots(ctx)
	if err != nil {
		r.log.Error("Failed to list users for recompute", zap.Error(err))
		return
	}

	refreshed := 0
	for _, id := range userIDs {
		if _, err := r.engine.ComputeAndPersist(ctx, id); err != nil {
			r.log.Error("Failed to recompute score", zap.String("userID", id), zap.Error(err))
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		r.log.Debug("Snapshot recompute pass finished",
			zap.Int("refreshed", refreshed),
			zap.Int("total", len(userIDs)),
		)
	}
}
