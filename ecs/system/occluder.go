package system

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
)

// OccluderSystem registers new occluder components with the world's physics
// world so line-of-sight and boom probes see them. Destroying an entity
// removes its shapes.
type OccluderSystem struct {
	logger *log.Logger
}

func NewOccluderSystem(logger *log.Logger) *OccluderSystem {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &OccluderSystem{logger: logger}
}

func (s *OccluderSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		pw = ecs.NewPhysicsWorld()
		w.SetPhysicsWorld(pw)
	}

	ecs.ForEach(w, component.OccluderComponent.Kind(), func(e ecs.Entity, occ *component.Occluder) {
		if occ.Registered {
			return
		}
		switch occ.Shape {
		case component.OccluderBox:
			pw.AddBox(e, occ.Min, occ.Max, occ.MinZ, occ.MaxZ)
		case component.OccluderCircle:
			pw.AddCircle(e, occ.Center, occ.Radius, occ.MinZ, occ.MaxZ)
		case component.OccluderPolygon:
			pw.AddPolygon(e, occ.Points, occ.MinZ, occ.MaxZ)
		default:
			s.logger.Warn("unknown occluder shape", "entity", e, "shape", occ.Shape)
		}
		occ.Registered = true
	})
}
