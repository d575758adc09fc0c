package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
)

// PatrolSystem walks living patrollers around their circle, facing along it.
type PatrolSystem struct{}

func NewPatrolSystem() *PatrolSystem {
	return &PatrolSystem{}
}

func (s *PatrolSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PatrolComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Patrol, tr *component.Transform) {
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !h.Alive() {
			return
		}

		p.Angle = math.Mod(p.Angle+p.AngularSpeed*dt, 360)
		rad := mgl64.DegToRad(p.Angle)
		tr.Position = p.Center.Add(mgl64.Vec3{math.Cos(rad) * p.Radius, math.Sin(rad) * p.Radius, 0})

		if p.AngularSpeed >= 0 {
			tr.Yaw = p.Angle + 90
		} else {
			tr.Yaw = p.Angle - 90
		}
	})
}
