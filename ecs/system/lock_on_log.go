package system

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/milk9111/lockon/ecs"
)

// LockOnLogSystem reports lock-on and combat events.
type LockOnLogSystem struct {
	logger *log.Logger
}

func NewLockOnLogSystem(logger *log.Logger) *LockOnLogSystem {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &LockOnLogSystem{logger: logger}
}

func (s *LockOnLogSystem) Update(w *ecs.World, _ float64) {
	events := w.Events()
	events.Each(ecs.EventLockOnStateChanged, func(evt ecs.Event) {
		if data, ok := evt.Data.(ecs.LockOnStateChanged); ok {
			s.logger.Debug("lock-on state", "owner", data.Owner, "state", data.State)
		}
	})
	events.Each(ecs.EventLockOnTargetChanged, func(evt ecs.Event) {
		data, ok := evt.Data.(ecs.LockOnTargetChanged)
		if !ok {
			return
		}
		if data.Target.Valid() {
			s.logger.Info("locked on", "owner", data.Owner, "target", data.Target)
		} else {
			s.logger.Info("lock released", "owner", data.Owner)
		}
	})
	events.Each(ecs.EventDied, func(evt ecs.Event) {
		if data, ok := evt.Data.(ecs.Died); ok {
			s.logger.Info("enemy down", "entity", data.Entity)
		}
	})
}
