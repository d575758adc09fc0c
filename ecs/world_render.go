package ecs

import "github.com/hajimehoshi/ebiten/v2"

// RenderSystem is implemented by systems that also draw. Drawing never
// mutates the world; state changes belong in Update.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image)
}

// Draw lets every render-capable system paint screen, in run order, so the
// debug overlay added last lands on top of the scene.
func (w *World) Draw(screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, s := range w.scheduler.systems {
		if rs, ok := s.(RenderSystem); ok {
			rs.Draw(w, screen)
		}
	}
}
