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

func TestCameraSystemPlacesBoom(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	s.run(1)

	cam := s.cam(t)
	require.True(t, cam.Ready)
	assert.InDeltaSlice(t, []float64{-300, 0, 60}, cam.Location[:], 1e-9)
	assert.InDeltaSlice(t, []float64{1, 0, 0}, cam.Forward[:], 1e-9)

	centre, ok := cam.Project(cam.Location.Add(mgl64.Vec3{1000, 0, 0}))
	require.True(t, ok)
	assert.InDelta(t, 640, centre.X(), 1e-6)
	assert.InDelta(t, 360, centre.Y(), 1e-6)

	right, ok := cam.Project(cam.Location.Add(mgl64.Vec3{1000, -100, 0}))
	require.True(t, ok)
	assert.Greater(t, right.X(), 640.0)

	up, ok := cam.Project(cam.Location.Add(mgl64.Vec3{1000, 0, 100}))
	require.True(t, ok)
	assert.Less(t, up.Y(), 360.0)

	_, ok = cam.Project(cam.Location.Add(mgl64.Vec3{-1000, 0, 0}))
	assert.False(t, ok, "behind the camera")
}

func TestCameraSystemFollowsYaw(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	cr, ok := ecs.Get(s.w, s.player, component.ControlRotationComponent.Kind())
	require.True(t, ok)
	cr.Yaw = 90

	s.run(1)

	cam := s.cam(t)
	assert.InDeltaSlice(t, []float64{0, -300, 60}, cam.Location[:], 1e-9)
}

func TestCameraSystemViewport(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	cs := NewCameraSystem(1280, 720)
	cs.Update(s.w, tick)

	cs.SetViewport(1920, 1080)
	cs.SetViewport(0, 500)
	cs.Update(s.w, tick)

	cam := s.cam(t)
	assert.Equal(t, 1920.0, cam.ViewportW)
	assert.Equal(t, 1080.0, cam.ViewportH)
	centre, ok := cam.Project(cam.Location.Add(mgl64.Vec3{1000, 0, 0}))
	require.True(t, ok)
	assert.InDelta(t, 960, centre.X(), 1e-6)
	assert.InDelta(t, 540, centre.Y(), 1e-6)
}

func TestCameraBoomStopsAtWall(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	s.addOccluder(t, component.Occluder{
		Shape: component.OccluderBox,
		Min:   mgl64.Vec2{-160, -100},
		Max:   mgl64.Vec2{-140, 100},
		MaxZ:  500,
	})

	s.run(1)

	cam := s.cam(t)
	assert.Greater(t, cam.Location.X(), -140.0)
	assert.Less(t, cam.Location.X(), 0.0)
}

func TestCameraUnreadyDoesNotProject(t *testing.T) {
	var cam component.Camera
	_, ok := cam.Project(mgl64.Vec3{})
	assert.False(t, ok)

	var nilCam *component.Camera
	_, ok = nilCam.Project(mgl64.Vec3{})
	assert.False(t, ok)
}

func TestCombatSystem(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	enemy := s.addEnemy(t, mgl64.Vec3{1000, 1000, 0}, 100)

	RequestDamage(s.w, enemy, 30)
	RequestDamage(s.w, enemy, 20)
	s.run(1)

	h, ok := ecs.Get(s.w, enemy, component.HealthComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 50.0, h.Current)
	assert.False(t, ecs.Has(s.w, enemy, component.DamageRequestComponent.Kind()))
	require.Len(t, s.recorder.events, 1)
	assert.Equal(t, ecs.Damaged{Entity: enemy, Amount: 50, Remaining: 50}, s.recorder.events[0].Data)

	RequestDamage(s.w, enemy, 80)
	s.run(1)

	assert.Zero(t, h.Current)
	assert.True(t, ecs.Has(s.w, enemy, component.TTLComponent.Kind()))
	require.Len(t, s.recorder.events, 3)
	assert.Equal(t, ecs.Died{Entity: enemy}, s.recorder.events[2].Data)

	RequestDamage(s.w, enemy, 10)
	s.run(1)
	assert.Len(t, s.recorder.events, 3, "the dead take no damage")
}

func TestTTLSystem(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewTTLSystem())
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: 0.04}))
	expired := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, expired, component.TTLComponent.Kind(), &component.TTL{}))

	w.Update(tick)
	assert.False(t, ecs.IsAlive(w, expired))
	w.Update(tick)
	assert.True(t, ecs.IsAlive(w, e))

	w.Update(tick)
	assert.False(t, ecs.IsAlive(w, e))
}

func TestPatrolSystem(t *testing.T) {
	tests := []struct {
		name    string
		speed   float64
		wantPos mgl64.Vec3
		wantYaw float64
	}{
		{"counter-clockwise", 90, mgl64.Vec3{100, 200, 0}, 180},
		{"clockwise", -90, mgl64.Vec3{100, 0, 0}, -180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
			require.NoError(t, ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{
				Center: mgl64.Vec3{100, 100, 0}, Radius: 100, AngularSpeed: tt.speed,
			}))

			NewPatrolSystem().Update(w, 1)

			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			assert.InDeltaSlice(t, tt.wantPos[:], tr.Position[:], 1e-9)
			assert.InDelta(t, tt.wantYaw, tr.Yaw, 1e-9)
		})
	}
}

func TestPatrolStopsWhenDead(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{5, 5, 0}}))
	require.NoError(t, ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{}))
	require.NoError(t, ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{Radius: 100, AngularSpeed: 90}))

	NewPatrolSystem().Update(w, 1)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, mgl64.Vec3{5, 5, 0}, tr.Position)
}

func TestPlayerControllerMovesRelativeToCamera(t *testing.T) {
	tests := []struct {
		name string
		yaw  float64
		move mgl64.Vec2
		want mgl64.Vec3
	}{
		{"forward", 0, mgl64.Vec2{0, 1}, mgl64.Vec3{600, 0, 0}},
		{"strafe right", 0, mgl64.Vec2{1, 0}, mgl64.Vec3{0, -600, 0}},
		{"forward while turned", 90, mgl64.Vec2{0, 1}, mgl64.Vec3{0, 600, 0}},
		{"diagonal is not faster", 0, mgl64.Vec2{1, 1}, mgl64.Vec3{424.26406871192853, -424.26406871192853, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSandbox(t, lockon.DefaultConfig())
			cr, _ := ecs.Get(s.w, s.player, component.ControlRotationComponent.Kind())
			cr.Yaw = tt.yaw
			in, _ := ecs.Get(s.w, s.player, component.InputComponent.Kind())
			in.Move = tt.move

			NewPlayerControllerSystem().Update(s.w, 1)

			tr, _ := ecs.Get(s.w, s.player, component.TransformComponent.Kind())
			assert.InDeltaSlice(t, tt.want[:], tr.Position[:], 1e-6)
		})
	}
}

func TestPlayerControllerLook(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	in, _ := ecs.Get(s.w, s.player, component.InputComponent.Kind())
	in.Look = mgl64.Vec2{1, 1}

	NewPlayerControllerSystem().Update(s.w, 0.25)

	cr, _ := ecs.Get(s.w, s.player, component.ControlRotationComponent.Kind())
	assert.InDelta(t, -30, cr.Yaw, 1e-9)
	assert.InDelta(t, 30, cr.Pitch, 1e-9)

	NewPlayerControllerSystem().Update(s.w, 1)
	assert.InDelta(t, lookPitchMax, cr.Pitch, 1e-9)
}

func TestPlayerControllerForwardsLockRequests(t *testing.T) {
	s := newSandbox(t, lockon.DefaultConfig())
	in, _ := ecs.Get(s.w, s.player, component.InputComponent.Kind())
	in.ToggleLock = true
	in.Switch = mgl64.Vec2{-1, 0}

	NewPlayerControllerSystem().Update(s.w, tick)

	req, ok := ecs.Get(s.w, s.player, component.LockOnRequestComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.LockOnRequest{Toggle: true, Switch: mgl64.Vec2{-1, 0}}, *req)
}

func TestPlayerAttack(t *testing.T) {
	tests := []struct {
		name    string
		pos     mgl64.Vec3
		wantHit bool
	}{
		{"in front", mgl64.Vec3{200, 0, 0}, true},
		{"out of reach", mgl64.Vec3{400, 0, 0}, false},
		{"behind", mgl64.Vec3{-100, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSandbox(t, lockon.DefaultConfig())
			enemy := s.addEnemy(t, tt.pos, 100)
			in, _ := ecs.Get(s.w, s.player, component.InputComponent.Kind())
			in.Attack = true

			NewPlayerControllerSystem().Update(s.w, tick)

			req, ok := ecs.Get(s.w, enemy, component.DamageRequestComponent.Kind())
			require.Equal(t, tt.wantHit, ok)
			if ok {
				assert.Equal(t, 40.0, req.Amount)
			}
		})
	}
}

func TestOccluderSystemRegistersShapes(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	occ := &component.Occluder{Shape: component.OccluderCircle, Center: mgl64.Vec2{100, 0}, Radius: 20, MaxZ: 100}
	require.NoError(t, ecs.Add(w, e, component.OccluderComponent.Kind(), occ))

	NewOccluderSystem(nil).Update(w, tick)

	require.NotNil(t, w.PhysicsWorld())
	assert.True(t, occ.Registered)
	assert.True(t, w.PhysicsWorld().HasEntity(e))

	hit, ok := w.PhysicsWorld().Raycast(mgl64.Vec3{0, 0, 50}, mgl64.Vec3{200, 0, 50})
	require.True(t, ok)
	assert.Equal(t, e, hit.Entity)
}

func TestTurnToward(t *testing.T) {
	tests := []struct {
		name           string
		yaw, want, max float64
		expect         float64
	}{
		{"reaches", 0, 10, 20, 10},
		{"limited", 0, 90, 20, 20},
		{"short way round", 170, -170, 5, 175},
		{"negative", 0, -90, 30, -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expect, turnToward(tt.yaw, tt.want, tt.max), 1e-9)
		})
	}
}
