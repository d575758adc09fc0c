package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	gridExtent  = 3000.0
	gridStep    = 250.0
	actorHeight = 180.0
	ringSides   = 16
)

// RenderSystem draws the arena as a wireframe through the boom camera.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(*ecs.World, float64) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil {
		return
	}
	_, cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok || !cam.Ready {
		return
	}

	screen.Fill(color.RGBA{R: 18, G: 20, B: 28, A: 255})

	// One segment per cell edge so lines crossing behind the camera still
	// draw their visible part.
	gridColor := color.RGBA{R: 45, G: 50, B: 64, A: 255}
	for v := -gridExtent; v <= gridExtent; v += gridStep {
		for u := -gridExtent; u < gridExtent; u += gridStep {
			drawSegment(screen, cam, mgl64.Vec3{v, u, 0}, mgl64.Vec3{v, u + gridStep, 0}, 1, gridColor)
			drawSegment(screen, cam, mgl64.Vec3{u, v, 0}, mgl64.Vec3{u + gridStep, v, 0}, 1, gridColor)
		}
	}

	ecs.ForEach(w, component.OccluderComponent.Kind(), func(_ ecs.Entity, occ *component.Occluder) {
		drawPrism(screen, cam, footprint(occ), occ.MinZ, occ.MaxZ, colornames.Slategray)
	})

	target, locked := ecs.Entity(0), false
	if p, _, ok := findPlayer(w); ok {
		target, locked = lockedTarget(w, p)
	}

	ecs.ForEach2(w, component.EnemyTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.EnemyTag, tr *component.Transform) {
		clr := color.Color(colornames.Indianred)
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !h.Alive() {
			clr = colornames.Dimgray
		}
		drawActor(screen, cam, tr, clr)
		if locked && e == target {
			drawReticle(screen, cam, tr.Position.Add(mgl64.Vec3{0, 0, actorHeight / 2}))
		}
	})

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, tr *component.Transform) {
		drawActor(screen, cam, tr, colornames.Cornflowerblue)
	})

	ecs.ForEach(w, component.LockOnComponent.Kind(), func(_ ecs.Entity, lo *component.LockOn) {
		if lo.Controller == nil {
			return
		}
		msg := fmt.Sprintf("preset: %s\nlock-on: %s", lo.Preset, lo.Controller.CurrentState())
		if id, ok := lo.Controller.CurrentTarget(); ok {
			msg += fmt.Sprintf(" -> %d", id)
		}
		ebitenutil.DebugPrintAt(screen, msg, 8, 8)
	})
}

func footprint(occ *component.Occluder) []mgl64.Vec2 {
	switch occ.Shape {
	case component.OccluderBox:
		return []mgl64.Vec2{occ.Min, {occ.Max.X(), occ.Min.Y()}, occ.Max, {occ.Min.X(), occ.Max.Y()}}
	case component.OccluderCircle:
		pts := make([]mgl64.Vec2, ringSides)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / ringSides
			pts[i] = occ.Center.Add(mgl64.Vec2{math.Cos(a), math.Sin(a)}.Mul(occ.Radius))
		}
		return pts
	default:
		return occ.Points
	}
}

func drawPrism(screen *ebiten.Image, cam *component.Camera, ring []mgl64.Vec2, minZ, maxZ float64, clr color.Color) {
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		drawSegment(screen, cam, p.Vec3(minZ), q.Vec3(minZ), 1, clr)
		drawSegment(screen, cam, p.Vec3(maxZ), q.Vec3(maxZ), 1, clr)
		drawSegment(screen, cam, p.Vec3(minZ), p.Vec3(maxZ), 1, clr)
	}
}

func drawActor(screen *ebiten.Image, cam *component.Camera, tr *component.Transform, clr color.Color) {
	foot, ok := cam.Project(tr.Position)
	if !ok {
		return
	}
	head, ok := cam.Project(tr.Position.Add(mgl64.Vec3{0, 0, actorHeight}))
	if !ok {
		return
	}
	height := foot.Sub(head).Len()
	vector.StrokeLine(screen, float32(foot.X()), float32(foot.Y()), float32(head.X()), float32(head.Y()), float32(math.Max(2, height/6)), clr, true)
	vector.DrawFilledCircle(screen, float32(head.X()), float32(head.Y()), float32(math.Max(3, height/8)), clr, true)
	drawSegment(screen, cam, tr.Position, tr.Position.Add(tr.Forward().Mul(actorHeight/2)), 2, clr)
}

func drawReticle(screen *ebiten.Image, cam *component.Camera, pos mgl64.Vec3) {
	p, ok := cam.Project(pos)
	if !ok {
		return
	}
	vector.StrokeCircle(screen, float32(p.X()), float32(p.Y()), 14, 2, colornames.Gold, true)
}

// drawSegment projects a world segment. Segments with an end behind the
// camera are skipped rather than clipped.
func drawSegment(screen *ebiten.Image, cam *component.Camera, a, b mgl64.Vec3, width float32, clr color.Color) {
	pa, ok := cam.Project(a)
	if !ok {
		return
	}
	pb, ok := cam.Project(b)
	if !ok {
		return
	}
	vector.StrokeLine(screen, float32(pa.X()), float32(pa.Y()), float32(pb.X()), float32(pb.Y()), width, clr, true)
}
