package component

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a boom-arm camera following an owner. The first block is the rig
// the lock-on controller snapshots and drives; the rest is derived by the
// camera system each tick.
type Camera struct {
	TargetName   string
	ArmLength    float64
	SocketOffset mgl64.Vec3
	Focus        mgl64.Vec3
	HasFocus     bool
	// Smoothness is the pivot follow speed in 1/s; zero snaps.
	Smoothness float64

	FOV  float64
	Near float64
	Far  float64

	Pivot      mgl64.Vec3
	Location   mgl64.Vec3
	Forward    mgl64.Vec3
	View       mgl64.Mat4
	Projection mgl64.Mat4
	ViewportW  float64
	ViewportH  float64
	Ready      bool
}

var CameraComponent = NewComponent[Camera]()

// Project maps a world point to screen pixels, origin top-left. Points
// behind the camera do not project.
func (c *Camera) Project(pos mgl64.Vec3) (mgl64.Vec2, bool) {
	if c == nil || !c.Ready || c.ViewportW <= 0 || c.ViewportH <= 0 {
		return mgl64.Vec2{}, false
	}
	clip := c.Projection.Mul4(c.View).Mul4x1(pos.Vec4(1))
	if clip.W() <= 0 {
		return mgl64.Vec2{}, false
	}
	win := mgl64.Project(pos, c.View, c.Projection, 0, 0, int(c.ViewportW), int(c.ViewportH))
	return mgl64.Vec2{win.X(), c.ViewportH - win.Y()}, true
}
