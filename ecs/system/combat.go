package system

import (
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
)

// corpseTime is how long, in seconds, a dead enemy lingers before it is
// destroyed.
const corpseTime = 1.5

// CombatSystem applies pending damage to health and retires the dead.
type CombatSystem struct{}

func NewCombatSystem() *CombatSystem {
	return &CombatSystem{}
}

func (s *CombatSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.DamageRequestComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, req *component.DamageRequest, h *component.Health) {
		amount := req.Amount
		ecs.Remove(w, e, component.DamageRequestComponent.Kind())
		if amount <= 0 || !h.Alive() {
			return
		}

		h.Current -= amount
		if h.Current < 0 {
			h.Current = 0
		}
		w.Events().Push(ecs.Event{Type: ecs.EventDamaged, Data: ecs.Damaged{Entity: e, Amount: amount, Remaining: h.Current}})

		if h.Alive() {
			return
		}
		w.Events().Push(ecs.Event{Type: ecs.EventDied, Data: ecs.Died{Entity: e}})
		if !ecs.Has(w, e, component.TTLComponent.Kind()) {
			_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: corpseTime})
		}
	})
}

// RequestDamage queues amount against e, adding to anything already queued
// this tick.
func RequestDamage(w *ecs.World, e ecs.Entity, amount float64) {
	if req, ok := ecs.Get(w, e, component.DamageRequestComponent.Kind()); ok {
		req.Amount += amount
		return
	}
	_ = ecs.Add(w, e, component.DamageRequestComponent.Kind(), &component.DamageRequest{Amount: amount})
}
