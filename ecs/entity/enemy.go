package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lockon/ecs"
)

func NewEnemyAt(w *ecs.World, pos mgl64.Vec3) (ecs.Entity, error) {
	entity, err := BuildEntity(w, "enemy.yaml", nil)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, pos, 0); err != nil {
		return 0, fmt.Errorf("enemy: override transform: %w", err)
	}
	return entity, nil
}
