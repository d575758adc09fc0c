package lockon

import "github.com/go-gl/mathgl/mgl64"

// EntityID is a handle into the caller's entity registry. The controller never
// dereferences it directly; every use goes back through Registry.Lookup.
type EntityID uint64

// NoTarget is the handle carried by notifications when the lock is released.
const NoTarget EntityID = 0

// State is the lock-on session state.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateLocked
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateLocked:
		return "locked"
	default:
		return "idle"
	}
}

func parseState(name string) State {
	switch name {
	case "searching":
		return StateSearching
	case "locked":
		return StateLocked
	default:
		return StateIdle
	}
}

// Target is anything the player can lock onto.
type Target interface {
	ID() EntityID
	Alive() bool
	Position() mgl64.Vec3
}

// Registry enumerates targetable entities and resolves handles. Lookup must
// report false for handles whose entity no longer exists.
type Registry interface {
	Targets() []Target
	Lookup(id EntityID) (Target, bool)
}

// Hit describes the first blocking hit of a ray cast.
type Hit struct {
	Point    mgl64.Vec3
	Distance float64
	Entity   EntityID
}

// Geometry answers point-in-time world queries.
type Geometry interface {
	Raycast(origin, dest mgl64.Vec3, ignore ...EntityID) (Hit, bool)
	ProjectToScreen(pos mgl64.Vec3) (mgl64.Vec2, bool)
	ViewportSize() (w, h float64)
}

// Owner is the player-controlled entity the controller is attached to.
type Owner interface {
	ID() EntityID
	Position() mgl64.Vec3
	Forward() mgl64.Vec3
	ControlRotation() Rotator
	SetControlRotation(r Rotator)
}

// RigSettings are the boom arm values the controller snapshots and restores.
type RigSettings struct {
	ArmLength    float64
	SocketOffset mgl64.Vec3
}

// Rig is the camera boom. SetFocus pins the boom pivot to a world point;
// ClearFocus hands the pivot back to the owner.
type Rig interface {
	Settings() RigSettings
	Apply(s RigSettings)
	Location() mgl64.Vec3
	Forward() mgl64.Vec3
	SetFocus(p mgl64.Vec3)
	ClearFocus()
}

// Bindings are the collaborators a controller works against. Any of them may
// be nil; operations that need a missing one do nothing for that call.
type Bindings struct {
	Registry Registry
	Geometry Geometry
	Owner    Owner
	Rig      Rig
}

// Candidate is one entry of a scan result.
type Candidate struct {
	ID        EntityID
	Position  mgl64.Vec3
	Distance  float64
	Direction mgl64.Vec3 // unit vector owner -> target
	Dot       float64    // camera forward . Direction
	Angle     float64    // degrees between camera forward and the camera -> target ray
}
