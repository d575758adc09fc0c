package entity

import (
	"fmt"

	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
	"github.com/milk9111/lockon/prefabs"
)

// Arena is the set of entities built from one arena spec.
type Arena struct {
	Name     string
	Player   ecs.Entity
	Camera   ecs.Entity
	Entities []ecs.Entity
}

// BuildArena populates w from an arena file. On error every entity built so
// far is destroyed again.
func BuildArena(w *ecs.World, path string, ctx *BuildContext) (*Arena, error) {
	spec, err := prefabs.LoadArenaSpec(path)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}

	arena := &Arena{Name: spec.Name}
	for i, es := range spec.Entities {
		e, err := BuildEntityWith(w, es.Prefab, es.Components, ctx)
		if err != nil {
			arena.Destroy(w)
			return nil, fmt.Errorf("arena: %s entity %d: %w", path, i, err)
		}
		arena.Entities = append(arena.Entities, e)

		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) && !arena.Player.Valid() {
			arena.Player = e
		}
		if ecs.Has(w, e, component.CameraComponent.Kind()) && !arena.Camera.Valid() {
			arena.Camera = e
		}
	}

	if !arena.Player.Valid() {
		arena.Destroy(w)
		return nil, fmt.Errorf("arena: %s has no player", path)
	}
	if !arena.Camera.Valid() {
		arena.Destroy(w)
		return nil, fmt.Errorf("arena: %s has no camera", path)
	}
	return arena, nil
}

// Destroy removes every entity of the arena that is still alive.
func (a *Arena) Destroy(w *ecs.World) {
	if a == nil {
		return
	}
	for _, e := range a.Entities {
		ecs.DestroyEntity(w, e)
	}
	a.Entities = nil
}

// LockOn returns the player's lock-on component.
func (a *Arena) LockOn(w *ecs.World) (*component.LockOn, bool) {
	if a == nil {
		return nil, false
	}
	return ecs.Get(w, a.Player, component.LockOnComponent.Kind())
}
