package ecs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// PhysicsWorld owns the Chipmunk space holding occluder footprints. The
// space is 2D on the ground plane; every shape carries a height range and a
// ray only hits a shape where its own height at the crossing falls inside
// that range.
type PhysicsWorld struct {
	space *cp.Space

	shapes   map[*cp.Shape]occluderShape
	byEntity map[Entity][]*cp.Shape
}

type occluderShape struct {
	entity     Entity
	minZ, maxZ float64
}

// RayHit is the first occluder a ray runs into.
type RayHit struct {
	Entity   Entity
	Point    mgl64.Vec3
	Normal   mgl64.Vec2
	Distance float64
}

// NewPhysicsWorld creates an empty occlusion world.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	return &PhysicsWorld{
		space:    space,
		shapes:   make(map[*cp.Shape]occluderShape),
		byEntity: make(map[Entity][]*cp.Shape),
	}
}

// AddBox adds an axis-aligned box footprint spanning min..max on the ground
// plane and minZ..maxZ in height.
func (pw *PhysicsWorld) AddBox(e Entity, min, max mgl64.Vec2, minZ, maxZ float64) {
	if pw == nil {
		return
	}
	bb := cp.BB{
		L: math.Min(min.X(), max.X()),
		B: math.Min(min.Y(), max.Y()),
		R: math.Max(min.X(), max.X()),
		T: math.Max(min.Y(), max.Y()),
	}
	pw.add(e, cp.NewBox2(pw.space.StaticBody, bb, 0), minZ, maxZ)
}

// AddCircle adds a round footprint, e.g. a pillar.
func (pw *PhysicsWorld) AddCircle(e Entity, center mgl64.Vec2, radius, minZ, maxZ float64) {
	if pw == nil || radius <= 0 {
		return
	}
	pw.add(e, cp.NewCircle(pw.space.StaticBody, radius, cp.Vector{X: center.X(), Y: center.Y()}), minZ, maxZ)
}

// AddPolygon adds the convex hull of points as a footprint.
func (pw *PhysicsWorld) AddPolygon(e Entity, points []mgl64.Vec2, minZ, maxZ float64) {
	if pw == nil || len(points) < 3 {
		return
	}
	verts := make([]cp.Vector, 0, len(points))
	for _, p := range points {
		verts = append(verts, cp.Vector{X: p.X(), Y: p.Y()})
	}
	pw.add(e, cp.NewPolyShape(pw.space.StaticBody, len(verts), verts, cp.NewTransformIdentity(), 0), minZ, maxZ)
}

func (pw *PhysicsWorld) add(e Entity, shape *cp.Shape, minZ, maxZ float64) {
	if minZ > maxZ {
		minZ, maxZ = maxZ, minZ
	}
	pw.space.AddShape(shape)
	pw.shapes[shape] = occluderShape{entity: e, minZ: minZ, maxZ: maxZ}
	pw.byEntity[e] = append(pw.byEntity[e], shape)
}

// HasEntity reports whether e owns any shape.
func (pw *PhysicsWorld) HasEntity(e Entity) bool {
	if pw == nil {
		return false
	}
	return len(pw.byEntity[e]) > 0
}

// RemoveEntity drops every shape owned by e.
func (pw *PhysicsWorld) RemoveEntity(e Entity) {
	if pw == nil {
		return
	}
	for _, shape := range pw.byEntity[e] {
		pw.space.RemoveShape(shape)
		delete(pw.shapes, shape)
	}
	delete(pw.byEntity, e)
}

// Raycast returns the first occluder hit on the segment origin..dest,
// skipping shapes owned by ignored entities. A ray with no horizontal extent
// never hits.
func (pw *PhysicsWorld) Raycast(origin, dest mgl64.Vec3, ignore ...Entity) (RayHit, bool) {
	if pw == nil || pw.space == nil {
		return RayHit{}, false
	}
	start := cp.Vector{X: origin.X(), Y: origin.Y()}
	end := cp.Vector{X: dest.X(), Y: dest.Y()}
	if start.DistanceSq(end) < 1e-12 {
		return RayHit{}, false
	}

	ray := dest.Sub(origin)
	best := math.Inf(1)
	var hit RayHit
	pw.space.SegmentQuery(start, end, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
		occ, ok := pw.shapes[shape]
		if !ok || alpha >= best || ignored(occ.entity, ignore) {
			return
		}
		z := origin.Z() + ray.Z()*alpha
		if z < occ.minZ || z > occ.maxZ {
			return
		}
		best = alpha
		hit = RayHit{
			Entity:   occ.entity,
			Point:    mgl64.Vec3{point.X, point.Y, z},
			Normal:   mgl64.Vec2{normal.X, normal.Y},
			Distance: ray.Len() * alpha,
		}
	}, nil)

	return hit, !math.IsInf(best, 1)
}

func ignored(e Entity, ignore []Entity) bool {
	for _, i := range ignore {
		if i == e {
			return true
		}
	}
	return false
}
