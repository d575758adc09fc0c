package lockon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugSnapshot(t *testing.T) {
	cfg := DefaultConfig()
	f := newFixture(cfg)
	f.registry.add(10, atAngle(0, 500))

	idle := f.ctrl.Debug()
	assert.Equal(t, StateIdle, idle.State)
	assert.False(t, idle.HasTarget)
	assert.False(t, idle.Framed)
	assert.InDelta(t, cfg.LockOnRadius, idle.ConeLeft.Len(), 1e-9)
	assert.InDelta(t, cfg.LockOnRadius, idle.ConeRight.Len(), 1e-9)
	assert.Greater(t, idle.ConeLeft.Y(), 0.0)
	assert.Less(t, idle.ConeRight.Y(), 0.0)
	assert.InDelta(t, cfg.LockOnAngle, angleBetween(idle.ConeLeft, f.owner.fwd), 1e-9)

	f.lock()
	f.ctrl.Update(tick)
	locked := f.ctrl.Debug()

	require.Equal(t, StateLocked, locked.State)
	assert.Equal(t, EntityID(10), locked.Target)
	assert.True(t, locked.HasTarget)
	assert.Equal(t, atAngle(0, 500), locked.TargetPos)
	assert.True(t, locked.Framed)
	assert.Equal(t, f.rig.focus, locked.Focus)
	assert.Equal(t, f.rig.settings.ArmLength, locked.ArmLength)
	require.Len(t, locked.Candidates, 1)

	f.ctrl.Clear()
	assert.False(t, f.ctrl.Debug().Framed)
}
