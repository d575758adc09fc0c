package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
	"github.com/milk9111/lockon/lockon"
)

// boomPadding keeps a blocked camera this far in front of the wall it hit.
const boomPadding = 10.0

var worldUp = mgl64.Vec3{0, 0, 1}

// CameraSystem places the boom camera behind the player along its control
// rotation and derives the view and projection used for screen queries.
type CameraSystem struct {
	viewportW float64
	viewportH float64
}

func NewCameraSystem(viewportW, viewportH float64) *CameraSystem {
	return &CameraSystem{viewportW: viewportW, viewportH: viewportH}
}

// SetViewport updates the screen size the projection is built for.
func (cs *CameraSystem) SetViewport(w, h float64) {
	if w > 0 && h > 0 {
		cs.viewportW, cs.viewportH = w, h
	}
}

func (cs *CameraSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	_, cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	owner, tr, ok := findPlayer(w)
	if !ok {
		return
	}
	rot := lockon.Rotator{}
	if cr, ok := ecs.Get(w, owner, component.ControlRotationComponent.Kind()); ok {
		rot = cr.Rotator
	}

	target := tr.Position
	if cam.HasFocus {
		target = cam.Focus
	}
	if !cam.Ready || cam.Smoothness <= 0 {
		cam.Pivot = target
	} else {
		cam.Pivot = lockon.VInterpTo(cam.Pivot, target, dt, cam.Smoothness)
	}

	dir := rot.Vector()
	offset := mgl64.Rotate3DZ(mgl64.DegToRad(rot.Yaw)).Mul3x1(cam.SocketOffset)
	loc := cam.Pivot.Sub(dir.Mul(cam.ArmLength)).Add(offset)

	if hit, blocked := w.PhysicsWorld().Raycast(cam.Pivot, loc, owner); blocked {
		back := cam.Pivot.Sub(hit.Point)
		if back.Len() > boomPadding {
			loc = hit.Point.Add(back.Normalize().Mul(boomPadding))
		} else {
			loc = cam.Pivot
		}
	}

	cam.Location = loc
	cam.Forward = dir
	cam.ViewportW, cam.ViewportH = cs.viewportW, cs.viewportH
	cam.View = mgl64.LookAtV(loc, loc.Add(dir), worldUp)
	if cs.viewportH > 0 {
		cam.Projection = mgl64.Perspective(mgl64.DegToRad(cam.FOV), cs.viewportW/cs.viewportH, cam.Near, cam.Far)
	}
	cam.Ready = true
}

func findPlayer(w *ecs.World) (ecs.Entity, *component.Transform, bool) {
	var (
		player ecs.Entity
		tr     *component.Transform
		found  bool
	)
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform) {
		if !found {
			player, tr, found = e, t, true
		}
	})
	return player, tr, found
}
