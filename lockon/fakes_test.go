package lockon

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeTarget struct {
	id    EntityID
	pos   mgl64.Vec3
	alive bool
}

func (t *fakeTarget) ID() EntityID         { return t.id }
func (t *fakeTarget) Alive() bool          { return t.alive }
func (t *fakeTarget) Position() mgl64.Vec3 { return t.pos }

type fakeRegistry struct {
	targets []*fakeTarget
}

func (r *fakeRegistry) add(id EntityID, pos mgl64.Vec3) *fakeTarget {
	t := &fakeTarget{id: id, pos: pos, alive: true}
	r.targets = append(r.targets, t)
	return t
}

func (r *fakeRegistry) destroy(id EntityID) {
	for i, t := range r.targets {
		if t.id == id {
			r.targets = append(r.targets[:i], r.targets[i+1:]...)
			return
		}
	}
}

func (r *fakeRegistry) Targets() []Target {
	out := make([]Target, 0, len(r.targets))
	for _, t := range r.targets {
		out = append(out, t)
	}
	return out
}

func (r *fakeRegistry) Lookup(id EntityID) (Target, bool) {
	for _, t := range r.targets {
		if t.id == id {
			return t, true
		}
	}
	return nil, false
}

// sphere is a round occluder owned by entity id.
type sphere struct {
	id     EntityID
	center mgl64.Vec3
	radius float64
}

type fakeGeometry struct {
	spheres []sphere
	screen  func(pos mgl64.Vec3) (mgl64.Vec2, bool)
	w, h    float64
	casts   int
}

func newFakeGeometry() *fakeGeometry {
	return &fakeGeometry{w: 1280, h: 720}
}

func (g *fakeGeometry) Raycast(origin, dest mgl64.Vec3, ignore ...EntityID) (Hit, bool) {
	g.casts++
	d := dest.Sub(origin)
	a := d.Dot(d)
	if a == 0 {
		return Hit{}, false
	}
	best := math.Inf(1)
	var hit Hit
	for _, s := range g.spheres {
		if ignored(s.id, ignore) {
			continue
		}
		f := origin.Sub(s.center)
		b := 2 * f.Dot(d)
		c := f.Dot(f) - s.radius*s.radius
		disc := b*b - 4*a*c
		if disc < 0 {
			continue
		}
		t := (-b - math.Sqrt(disc)) / (2 * a)
		if c < 0 {
			t = 0
		}
		if t < 0 || t > 1 || t >= best {
			continue
		}
		best = t
		p := origin.Add(d.Mul(t))
		hit = Hit{Point: p, Distance: p.Sub(origin).Len(), Entity: s.id}
	}
	return hit, !math.IsInf(best, 1)
}

func ignored(id EntityID, ignore []EntityID) bool {
	for _, i := range ignore {
		if i == id {
			return true
		}
	}
	return false
}

func (g *fakeGeometry) ProjectToScreen(pos mgl64.Vec3) (mgl64.Vec2, bool) {
	if g.screen != nil {
		return g.screen(pos)
	}
	return mgl64.Vec2{g.w / 2, g.h / 2}, true
}

func (g *fakeGeometry) ViewportSize() (float64, float64) {
	return g.w, g.h
}

type fakeOwner struct {
	id  EntityID
	pos mgl64.Vec3
	fwd mgl64.Vec3
	rot Rotator
}

func (o *fakeOwner) ID() EntityID                 { return o.id }
func (o *fakeOwner) Position() mgl64.Vec3         { return o.pos }
func (o *fakeOwner) Forward() mgl64.Vec3          { return o.fwd }
func (o *fakeOwner) ControlRotation() Rotator     { return o.rot }
func (o *fakeOwner) SetControlRotation(r Rotator) { o.rot = r }

type fakeRig struct {
	settings RigSettings
	location mgl64.Vec3
	forward  mgl64.Vec3
	focus    mgl64.Vec3
	focused  bool
	applies  int
}

func (r *fakeRig) Settings() RigSettings { return r.settings }
func (r *fakeRig) Apply(s RigSettings)   { r.settings = s; r.applies++ }
func (r *fakeRig) Location() mgl64.Vec3  { return r.location }
func (r *fakeRig) Forward() mgl64.Vec3   { return r.forward }
func (r *fakeRig) SetFocus(p mgl64.Vec3) { r.focus = p; r.focused = true }
func (r *fakeRig) ClearFocus()           { r.focused = false }

type fixture struct {
	registry *fakeRegistry
	geometry *fakeGeometry
	owner    *fakeOwner
	rig      *fakeRig
	ctrl     *Controller

	targetEvents []EntityID
	stateEvents  []State
}

func (f *fixture) bindings() Bindings {
	return Bindings{Registry: f.registry, Geometry: f.geometry, Owner: f.owner, Rig: f.rig}
}

// newFixture places the owner and the camera at the origin, both facing +X.
func newFixture(cfg Config, opts ...Option) *fixture {
	f := &fixture{
		registry: &fakeRegistry{},
		geometry: newFakeGeometry(),
		owner:    &fakeOwner{id: 1, fwd: mgl64.Vec3{1, 0, 0}},
		rig: &fakeRig{
			settings: RigSettings{ArmLength: 300, SocketOffset: mgl64.Vec3{0, 40, 60}},
			forward:  mgl64.Vec3{1, 0, 0},
		},
	}
	f.ctrl = NewController(cfg, f.bindings(), opts...)
	f.ctrl.OnTargetChanged(func(id EntityID) { f.targetEvents = append(f.targetEvents, id) })
	f.ctrl.OnStateChanged(func(s State) { f.stateEvents = append(f.stateEvents, s) })
	return f
}

// lock toggles and ticks until the scan interval has elapsed.
func (f *fixture) lock() {
	f.ctrl.Toggle()
	f.ctrl.Update(f.ctrl.Config().SearchInterval)
}

func (f *fixture) resetEvents() {
	f.targetEvents = nil
	f.stateEvents = nil
}

// atAngle returns a point dist away from the origin, deg degrees
// counter-clockwise from +X on the ground plane.
func atAngle(deg, dist float64) mgl64.Vec3 {
	r := mgl64.DegToRad(deg)
	return mgl64.Vec3{dist * math.Cos(r), dist * math.Sin(r), 0}
}
