package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform places an entity in the world. Z is up; Yaw is in degrees,
// counter-clockwise from +X.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
}

// Forward is the unit vector the entity faces on the ground plane.
func (t Transform) Forward() mgl64.Vec3 {
	r := mgl64.DegToRad(t.Yaw)
	return mgl64.Vec3{math.Cos(r), math.Sin(r), 0}
}

var TransformComponent = NewComponent[Transform]()
