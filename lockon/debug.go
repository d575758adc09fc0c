package lockon

import "github.com/go-gl/mathgl/mgl64"

// DebugSnapshot is a read-only view of the controller for overlays and logs.
type DebugSnapshot struct {
	State   State
	Target  EntityID
	Session Session

	OwnerPos    mgl64.Vec3
	TargetPos   mgl64.Vec3
	HasTarget   bool
	Radius      float64
	BreakRadius float64

	// ConeLeft and ConeRight are the edges of the lock-on cone around the
	// owner's forward vector, each LockOnRadius long.
	ConeLeft  mgl64.Vec3
	ConeRight mgl64.Vec3

	Framed     bool
	Focus      mgl64.Vec3
	ArmLength  float64
	Blocked    bool
	Correction float64

	Candidates []Candidate
}

func (c *Controller) Debug() DebugSnapshot {
	snap := DebugSnapshot{
		State:       c.CurrentState(),
		Target:      c.session.Target,
		Session:     c.session,
		Radius:      c.cfg.LockOnRadius,
		BreakRadius: c.cfg.BreakDistance,
		Candidates:  append([]Candidate(nil), c.candidates...),
	}

	if c.owner != nil {
		snap.OwnerPos = c.owner.Position()
		fwd := c.owner.Forward()
		flat := safeNormal(mgl64.Vec3{fwd.X(), fwd.Y(), 0})
		snap.ConeLeft = snap.OwnerPos.Add(rotateYaw(flat, c.cfg.LockOnAngle).Mul(c.cfg.LockOnRadius))
		snap.ConeRight = snap.OwnerPos.Add(rotateYaw(flat, -c.cfg.LockOnAngle).Mul(c.cfg.LockOnRadius))
	}
	if t, ok := c.resolveTarget(); ok {
		snap.TargetPos = t.Position()
		snap.HasTarget = true
	}
	if c.framed && snap.State == StateLocked {
		snap.Framed = true
		snap.Focus = c.lastFrame.Focus
		snap.ArmLength = c.lastFrame.ArmLength
		snap.Blocked = c.lastFrame.Blocked
		snap.Correction = c.lastFrame.Strength
	}
	return snap
}
