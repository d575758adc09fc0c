package component

import "github.com/go-gl/mathgl/mgl64"

// Input stores per-frame input state for an entity. Move and Look are in
// screen terms: X right, Y forward/up.
type Input struct {
	Move mgl64.Vec2
	Look mgl64.Vec2

	ToggleLock bool
	ClearLock  bool
	Attack     bool
	// Switch is the stick flick that moves the lock to another target; zero
	// when no flick happened this frame.
	Switch mgl64.Vec2
}

var InputComponent = NewComponent[Input]()
