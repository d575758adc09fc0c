package component

import "github.com/go-gl/mathgl/mgl64"

// Patrol walks an enemy around a circle. AngularSpeed is degrees/s.
type Patrol struct {
	Center       mgl64.Vec3
	Radius       float64
	AngularSpeed float64
	Angle        float64
}

var PatrolComponent = NewComponent[Patrol]()
