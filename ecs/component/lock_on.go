package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lockon/lockon"
)

// LockOn attaches a lock-on controller to its owner entity.
type LockOn struct {
	Controller *lockon.Controller
	Preset     string

	// subscribed is set once the lock-on system mirrors the controller's
	// notifications into the world event queue.
	Subscribed bool
}

var LockOnComponent = NewComponent[LockOn]()

// LockOnRequest carries this frame's lock-on intents from input to the
// lock-on system.
type LockOnRequest struct {
	Toggle bool
	Clear  bool
	Switch mgl64.Vec2
}

var LockOnRequestComponent = NewComponent[LockOnRequest]()

// ControlRotation is where the owner's camera is pointed.
type ControlRotation struct {
	lockon.Rotator
}

var ControlRotationComponent = NewComponent[ControlRotation]()
