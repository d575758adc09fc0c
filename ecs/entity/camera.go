package entity

import "github.com/milk9111/lockon/ecs"

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "camera.yaml", nil)
}
