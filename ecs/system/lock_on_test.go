package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
	"github.com/milk9111/lockon/lockon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockOnSystemAcquiresAndMirrorsEvents(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	enemy := s.addEnemy(t, mgl64.Vec3{500, 0, 0}, 100)

	s.lock(t)

	id, ok := s.ctrl.CurrentTarget()
	require.True(t, ok)
	assert.Equal(t, enemy, ecs.Entity(id))
	assert.Equal(t, []lockon.State{lockon.StateSearching, lockon.StateLocked}, s.recorder.states())
	assert.Equal(t, []ecs.Entity{0, enemy}, s.recorder.targets())

	cam := s.cam(t)
	assert.True(t, cam.HasFocus)
	orig, ok := s.ctrl.OriginalSettings()
	require.True(t, ok)
	assert.Equal(t, 300.0, orig.ArmLength)
}

func TestLockOnSystemClearRestoresCamera(t *testing.T) {
	cfg := lockon.DefaultConfig()
	cfg.IdleRecenterThreshold = 0
	s := newSandbox(t, cfg)
	s.addEnemy(t, mgl64.Vec3{500, 0, 0}, 100)
	s.lock(t)
	require.True(t, s.ctrl.IsLockedOn())
	s.run(30)

	s.request(t, component.LockOnRequest{Clear: true})
	s.run(1)

	assert.Equal(t, lockon.StateIdle, s.ctrl.CurrentState())
	cam := s.cam(t)
	assert.False(t, cam.HasFocus)
	assert.Equal(t, 300.0, cam.ArmLength)
	assert.Equal(t, mgl64.Vec3{0, 0, 60}, cam.SocketOffset)

	cr, ok := ecs.Get(s.w, s.player, component.ControlRotationComponent.Kind())
	require.True(t, ok)
	assert.Zero(t, cr.Pitch)
}

func TestLockOnReleasedWhenTargetDies(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	enemy := s.addEnemy(t, mgl64.Vec3{500, 0, 0}, 100)
	s.lock(t)
	require.True(t, s.ctrl.IsLockedOn())

	RequestDamage(s.w, enemy, 500)
	s.run(1)

	assert.Equal(t, lockon.StateIdle, s.ctrl.CurrentState())
	assert.True(t, ecs.IsAlive(s.w, enemy), "corpse lingers")

	s.run(int(corpseTime/tick) - 2)
	assert.True(t, ecs.IsAlive(s.w, enemy))
	s.run(4)
	assert.False(t, ecs.IsAlive(s.w, enemy))

	// The stale handle no longer resolves through the registry.
	_, ok := worldRegistry{w: s.w}.Lookup(lockon.EntityID(enemy))
	assert.False(t, ok)
}

func TestLockOnReleasedWhenTargetDestroyed(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	enemy := s.addEnemy(t, mgl64.Vec3{500, 0, 0}, 100)
	s.lock(t)
	require.True(t, s.ctrl.IsLockedOn())

	require.True(t, ecs.DestroyEntity(s.w, enemy))
	s.run(1)

	assert.Equal(t, lockon.StateIdle, s.ctrl.CurrentState())
}

func TestLockOnIgnoresOccludedEnemies(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	s.addEnemy(t, mgl64.Vec3{500, 0, 0}, 100)
	s.addOccluder(t, component.Occluder{
		Shape: component.OccluderBox,
		Min:   mgl64.Vec2{200, -100},
		Max:   mgl64.Vec2{220, 100},
		MinZ:  0,
		MaxZ:  400,
	})

	s.lock(t)
	s.run(20)

	assert.Equal(t, lockon.StateIdle, s.ctrl.CurrentState())
	assert.NotContains(t, s.recorder.states(), lockon.StateLocked)
}

func TestLockOnSwitchRequest(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	ahead := s.addEnemy(t, mgl64.Vec3{500, 0, 0}, 100)
	right := s.addEnemy(t, mgl64.Vec3{500, -250, 0}, 100)
	s.lock(t)

	id, ok := s.ctrl.CurrentTarget()
	require.True(t, ok)
	require.Equal(t, ahead, ecs.Entity(id))

	s.request(t, component.LockOnRequest{Switch: mgl64.Vec2{1, 0}})
	s.run(1)

	id, ok = s.ctrl.CurrentTarget()
	require.True(t, ok)
	assert.Equal(t, right, ecs.Entity(id))
}

func TestWorldRegistry(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	alive := s.addEnemy(t, mgl64.Vec3{100, 0, 0}, 10)
	dead := s.addEnemy(t, mgl64.Vec3{200, 0, 0}, 0)
	reg := worldRegistry{w: s.w}

	assert.Len(t, reg.Targets(), 2)

	tgt, ok := reg.Lookup(lockon.EntityID(alive))
	require.True(t, ok)
	assert.True(t, tgt.Alive())
	assert.Equal(t, mgl64.Vec3{100, 0, 0}, tgt.Position())

	tgt, ok = reg.Lookup(lockon.EntityID(dead))
	require.True(t, ok)
	assert.False(t, tgt.Alive())

	_, ok = reg.Lookup(lockon.EntityID(s.player))
	assert.False(t, ok, "the player is not a target")
}
