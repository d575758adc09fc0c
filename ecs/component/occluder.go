package component

import "github.com/go-gl/mathgl/mgl64"

type OccluderShape string

const (
	OccluderBox     OccluderShape = "box"
	OccluderCircle  OccluderShape = "circle"
	OccluderPolygon OccluderShape = "polygon"
)

// Occluder is static geometry that blocks line of sight and the camera boom.
// Footprints are on the ground plane and extruded over MinZ..MaxZ.
type Occluder struct {
	Shape  OccluderShape
	Min    mgl64.Vec2
	Max    mgl64.Vec2
	Center mgl64.Vec2
	Radius float64
	Points []mgl64.Vec2
	MinZ   float64
	MaxZ   float64

	// Registered is set once the physics world holds the shape.
	Registered bool
}

var OccluderComponent = NewComponent[Occluder]()
