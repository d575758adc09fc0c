package system

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
	"github.com/milk9111/lockon/lockon"
	"golang.org/x/image/colornames"
)

const minimapSize = 260.0

// DebugRenderSystem draws a top-down map of the lock-on state in the
// bottom-right corner: the lock radius and break radius, the view cone,
// candidates from the last scan, the target and the framing focus.
type DebugRenderSystem struct {
	Enabled bool
}

func NewDebugRenderSystem(enabled bool) *DebugRenderSystem {
	return &DebugRenderSystem{Enabled: enabled}
}

func (d *DebugRenderSystem) Update(*ecs.World, float64) {}

func (d *DebugRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if d == nil || !d.Enabled {
		return
	}

	ecs.ForEach(w, component.LockOnComponent.Kind(), func(_ ecs.Entity, lo *component.LockOn) {
		if lo.Controller == nil {
			return
		}
		d.drawSnapshot(w, screen, lo.Controller.Debug())
	})
}

func (d *DebugRenderSystem) drawSnapshot(w *ecs.World, screen *ebiten.Image, snap lockon.DebugSnapshot) {
	bounds := screen.Bounds()
	ox := float64(bounds.Dx()) - minimapSize - 8
	oy := float64(bounds.Dy()) - minimapSize - 8
	extent := snap.BreakRadius
	if extent <= 0 {
		extent = snap.Radius
	}
	if extent <= 0 {
		return
	}
	scale := minimapSize / (2 * extent)

	// Owner at the centre, +X right, +Y up.
	toMap := func(p mgl64.Vec3) (float32, float32) {
		rel := p.Sub(snap.OwnerPos)
		return float32(ox + minimapSize/2 + rel.X()*scale), float32(oy + minimapSize/2 - rel.Y()*scale)
	}

	vector.DrawFilledRect(screen, float32(ox), float32(oy), minimapSize, minimapSize, color.RGBA{A: 170}, false)
	vector.StrokeRect(screen, float32(ox), float32(oy), minimapSize, minimapSize, 1, colornames.Dimgray, false)

	cx, cy := toMap(snap.OwnerPos)
	vector.StrokeCircle(screen, cx, cy, float32(snap.Radius*scale), 1, colornames.Seagreen, true)
	vector.StrokeCircle(screen, cx, cy, float32(snap.BreakRadius*scale), 1, colornames.Darkred, true)
	lx, ly := toMap(snap.ConeLeft)
	rx, ry := toMap(snap.ConeRight)
	vector.StrokeLine(screen, cx, cy, lx, ly, 1, colornames.Seagreen, true)
	vector.StrokeLine(screen, cx, cy, rx, ry, 1, colornames.Seagreen, true)

	ecs.ForEach(w, component.OccluderComponent.Kind(), func(_ ecs.Entity, occ *component.Occluder) {
		ring := footprint(occ)
		for i, p := range ring {
			q := ring[(i+1)%len(ring)]
			ax, ay := toMap(p.Vec3(0))
			bx, by := toMap(q.Vec3(0))
			vector.StrokeLine(screen, ax, ay, bx, by, 1, colornames.Slategray, false)
		}
	})

	for _, c := range snap.Candidates {
		px, py := toMap(c.Position)
		vector.DrawFilledCircle(screen, px, py, 3, colornames.Orange, true)
	}

	vector.DrawFilledCircle(screen, cx, cy, 4, colornames.Cornflowerblue, true)
	if snap.HasTarget {
		tx, ty := toMap(snap.TargetPos)
		vector.StrokeLine(screen, cx, cy, tx, ty, 2, colornames.Gold, true)
		vector.StrokeCircle(screen, tx, ty, 6, 2, colornames.Gold, true)
	}
	if snap.Framed {
		fx, fy := toMap(snap.Focus)
		clr := color.Color(colornames.White)
		if snap.Blocked {
			clr = colornames.Red
		}
		vector.DrawFilledCircle(screen, fx, fy, 3, clr, true)
	}

	msg := fmt.Sprintf("state %s\nout of view %.2fs\nsearch %.2fs scans %d\narm %.0f corr %.2f",
		snap.State, snap.Session.TimeOutOfView, snap.Session.SearchElapsed, snap.Session.Scans, snap.ArmLength, snap.Correction)
	ebitenutil.DebugPrintAt(screen, msg, int(ox)+4, int(oy)+4)
}
