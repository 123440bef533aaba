package app

import (
	"context"

	"github.com/llehouerou/tabata/internal/timer"
	"github.com/llehouerou/tabata/internal/workout"
)

// Engine is the part of timer.Engine the UI drives.
type Engine interface {
	Initialize(cfg workout.Config) error
	Start(ctx context.Context) error
	Pause()
	Resume()
	Stop()
	State() timer.Snapshot
	Config() workout.Config
	Subscribe() *timer.Subscription
}

var _ Engine = (*timer.Engine)(nil)
