package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
	"github.com/milk9111/lockon/lockon"
)

const (
	lookPitchMin = -70.0
	lookPitchMax = 60.0
)

// PlayerControllerSystem turns Input into movement, free look, lock-on
// requests and attacks. Movement is camera relative; while locked the
// player faces the target and free look is left to the lock-on controller.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (s *PlayerControllerSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach4(w, component.InputComponent.Kind(), component.MoverComponent.Kind(), component.TransformComponent.Kind(), component.ControlRotationComponent.Kind(),
		func(e ecs.Entity, in *component.Input, mv *component.Mover, tr *component.Transform, cr *component.ControlRotation) {
			target, locked := lockedTarget(w, e)

			if !locked {
				cr.Yaw -= in.Look.X() * mv.LookRate * dt
				cr.Pitch = mgl64.Clamp(cr.Pitch+in.Look.Y()*mv.LookRate*dt, lookPitchMin, lookPitchMax)
				cr.Rotator = cr.Normalized()
			}

			move := in.Move
			if move.Len() > 1 {
				move = move.Normalize()
			}
			yaw := mgl64.DegToRad(cr.Yaw)
			fwd := mgl64.Vec3{math.Cos(yaw), math.Sin(yaw), 0}
			right := fwd.Cross(worldUp)
			vel := fwd.Mul(move.Y()).Add(right.Mul(move.X())).Mul(mv.Speed)
			tr.Position = tr.Position.Add(vel.Mul(dt))

			switch {
			case locked:
				if tt, ok := ecs.Get(w, target, component.TransformComponent.Kind()); ok {
					tr.Yaw = turnToward(tr.Yaw, lockon.RotationOf(tt.Position.Sub(tr.Position)).Yaw, mv.TurnRate*dt)
				}
			case vel.Len() > 0:
				tr.Yaw = turnToward(tr.Yaw, lockon.RotationOf(vel).Yaw, mv.TurnRate*dt)
			}

			if req, ok := ecs.Get(w, e, component.LockOnRequestComponent.Kind()); ok {
				req.Toggle = req.Toggle || in.ToggleLock
				req.Clear = req.Clear || in.ClearLock
				if in.Switch.Len() > 0 {
					req.Switch = in.Switch
				}
			}

			if in.Attack {
				attack(w, tr, mv, target, locked)
			}
		})
}

// attack hits the locked target when it is in reach, otherwise the closest
// enemy in front of the player.
func attack(w *ecs.World, tr *component.Transform, mv *component.Mover, target ecs.Entity, locked bool) {
	if locked {
		if tt, ok := ecs.Get(w, target, component.TransformComponent.Kind()); ok && tt.Position.Sub(tr.Position).Len() <= mv.AttackRange {
			RequestDamage(w, target, mv.AttackDamage)
		}
		return
	}

	var (
		best     ecs.Entity
		bestDist = math.Inf(1)
	)
	fwd := tr.Forward()
	ecs.ForEach2(w, component.EnemyTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.EnemyTag, et *component.Transform) {
		to := et.Position.Sub(tr.Position)
		to[2] = 0
		d := to.Len()
		if d > mv.AttackRange || d >= bestDist {
			return
		}
		if d > 0 && to.Normalize().Dot(fwd) < 0.5 {
			return
		}
		best, bestDist = e, d
	})
	if best.Valid() {
		RequestDamage(w, best, mv.AttackDamage)
	}
}

func lockedTarget(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	lo, ok := ecs.Get(w, e, component.LockOnComponent.Kind())
	if !ok || lo.Controller == nil {
		return 0, false
	}
	id, ok := lo.Controller.CurrentTarget()
	return ecs.Entity(id), ok
}

// turnToward moves yaw toward want by at most step degrees the short way
// round.
func turnToward(yaw, want, step float64) float64 {
	delta := math.Mod(want-yaw+540, 360) - 180
	if math.Abs(delta) <= step {
		return want
	}
	if delta < 0 {
		return yaw - step
	}
	return yaw + step
}
