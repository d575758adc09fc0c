package system

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
	"github.com/milk9111/lockon/lockon"
)

// LockOnSystem binds every lock-on controller to the world, feeds it this
// frame's requests and advances it. Controller notifications are mirrored
// onto the world event queue.
type LockOnSystem struct {
	logger *log.Logger
}

func NewLockOnSystem(logger *log.Logger) *LockOnSystem {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &LockOnSystem{logger: logger}
}

func (s *LockOnSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	_, cam, _ := ecs.First(w, component.CameraComponent.Kind())

	ecs.ForEach3(w, component.LockOnComponent.Kind(), component.TransformComponent.Kind(), component.ControlRotationComponent.Kind(),
		func(e ecs.Entity, lo *component.LockOn, tr *component.Transform, cr *component.ControlRotation) {
			if lo.Controller == nil {
				return
			}

			b := lockon.Bindings{
				Registry: worldRegistry{w: w},
				Owner:    &ownerAdapter{entity: e, transform: tr, rotation: cr},
			}
			if cam != nil {
				b.Rig = &rigAdapter{cam: cam}
				b.Geometry = &worldGeometry{w: w, cam: cam}
			}
			lo.Controller.Bind(b)

			if !lo.Subscribed {
				s.subscribe(w, e, lo.Controller)
				lo.Subscribed = true
			}

			if req, ok := ecs.Get(w, e, component.LockOnRequestComponent.Kind()); ok {
				switch {
				case req.Clear:
					lo.Controller.Clear()
				case req.Toggle:
					lo.Controller.Toggle()
				}
				if req.Switch.Len() > 0 {
					lo.Controller.SwitchTarget(req.Switch)
				}
				*req = component.LockOnRequest{}
			}

			lo.Controller.Update(dt)
		})
}

func (s *LockOnSystem) subscribe(w *ecs.World, owner ecs.Entity, c *lockon.Controller) {
	c.OnTargetChanged(func(id lockon.EntityID) {
		w.Events().Push(ecs.Event{
			Type: ecs.EventLockOnTargetChanged,
			Data: ecs.LockOnTargetChanged{Owner: owner, Target: ecs.Entity(id)},
		})
	})
	c.OnStateChanged(func(st lockon.State) {
		w.Events().Push(ecs.Event{
			Type: ecs.EventLockOnStateChanged,
			Data: ecs.LockOnStateChanged{Owner: owner, State: st},
		})
	})
	s.logger.Debug("controller subscribed", "owner", owner)
}

// worldRegistry exposes enemies as lock-on targets. Handles are entity ids,
// so a destroyed enemy stops resolving on its own.
type worldRegistry struct {
	w *ecs.World
}

type enemyTarget struct {
	w      *ecs.World
	entity ecs.Entity
}

func (t enemyTarget) ID() lockon.EntityID {
	return lockon.EntityID(t.entity)
}

func (t enemyTarget) Alive() bool {
	if !ecs.IsAlive(t.w, t.entity) {
		return false
	}
	h, ok := ecs.Get(t.w, t.entity, component.HealthComponent.Kind())
	return !ok || h.Alive()
}

func (t enemyTarget) Position() mgl64.Vec3 {
	tr, ok := ecs.Get(t.w, t.entity, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{}
	}
	return tr.Position
}

func (r worldRegistry) Targets() []lockon.Target {
	var out []lockon.Target
	ecs.ForEach2(r.w, component.EnemyTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.EnemyTag, _ *component.Transform) {
		out = append(out, enemyTarget{w: r.w, entity: e})
	})
	return out
}

func (r worldRegistry) Lookup(id lockon.EntityID) (lockon.Target, bool) {
	e := ecs.Entity(id)
	if !ecs.Has(r.w, e, component.EnemyTagComponent.Kind()) {
		return nil, false
	}
	return enemyTarget{w: r.w, entity: e}, true
}

type ownerAdapter struct {
	entity    ecs.Entity
	transform *component.Transform
	rotation  *component.ControlRotation
}

func (o *ownerAdapter) ID() lockon.EntityID             { return lockon.EntityID(o.entity) }
func (o *ownerAdapter) Position() mgl64.Vec3            { return o.transform.Position }
func (o *ownerAdapter) Forward() mgl64.Vec3             { return o.transform.Forward() }
func (o *ownerAdapter) ControlRotation() lockon.Rotator { return o.rotation.Rotator }

func (o *ownerAdapter) SetControlRotation(r lockon.Rotator) {
	o.rotation.Rotator = r
}

// rigAdapter drives the camera component. Location and Forward come from the
// last camera system pass.
type rigAdapter struct {
	cam *component.Camera
}

func (r *rigAdapter) Settings() lockon.RigSettings {
	return lockon.RigSettings{ArmLength: r.cam.ArmLength, SocketOffset: r.cam.SocketOffset}
}

func (r *rigAdapter) Apply(s lockon.RigSettings) {
	r.cam.ArmLength = s.ArmLength
	r.cam.SocketOffset = s.SocketOffset
}

func (r *rigAdapter) Location() mgl64.Vec3 { return r.cam.Location }
func (r *rigAdapter) Forward() mgl64.Vec3  { return r.cam.Forward }

func (r *rigAdapter) SetFocus(p mgl64.Vec3) {
	r.cam.Focus = p
	r.cam.HasFocus = true
}

func (r *rigAdapter) ClearFocus() {
	r.cam.HasFocus = false
}

type worldGeometry struct {
	w   *ecs.World
	cam *component.Camera
}

func (g *worldGeometry) Raycast(origin, dest mgl64.Vec3, ignore ...lockon.EntityID) (lockon.Hit, bool) {
	skip := make([]ecs.Entity, len(ignore))
	for i, id := range ignore {
		skip[i] = ecs.Entity(id)
	}
	hit, ok := g.w.PhysicsWorld().Raycast(origin, dest, skip...)
	if !ok {
		return lockon.Hit{}, false
	}
	return lockon.Hit{Point: hit.Point, Distance: hit.Distance, Entity: lockon.EntityID(hit.Entity)}, true
}

func (g *worldGeometry) ProjectToScreen(pos mgl64.Vec3) (mgl64.Vec2, bool) {
	return g.cam.Project(pos)
}

func (g *worldGeometry) ViewportSize() (float64, float64) {
	return g.cam.ViewportW, g.cam.ViewportH
}
