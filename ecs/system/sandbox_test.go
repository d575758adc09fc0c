package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
	"github.com/milk9111/lockon/lockon"
	"github.com/stretchr/testify/require"
)

const tick = 1.0 / 60

// recorder keeps every event the world queued during an update.
type recorder struct {
	events []ecs.Event
}

func (r *recorder) Update(w *ecs.World, _ float64) {
	for _, typ := range []string{ecs.EventLockOnStateChanged, ecs.EventLockOnTargetChanged, ecs.EventDamaged, ecs.EventDied} {
		w.Events().Each(typ, func(evt ecs.Event) {
			r.events = append(r.events, evt)
		})
	}
}

func (r *recorder) states() []lockon.State {
	var out []lockon.State
	for _, evt := range r.events {
		if data, ok := evt.Data.(ecs.LockOnStateChanged); ok {
			out = append(out, data.State)
		}
	}
	return out
}

func (r *recorder) targets() []ecs.Entity {
	var out []ecs.Entity
	for _, evt := range r.events {
		if data, ok := evt.Data.(ecs.LockOnTargetChanged); ok {
			out = append(out, data.Target)
		}
	}
	return out
}

type sandbox struct {
	w        *ecs.World
	player   ecs.Entity
	camera   ecs.Entity
	ctrl     *lockon.Controller
	recorder *recorder
}

// newSandbox builds a player at the origin facing +X with a boom camera
// behind it, wired through the same systems the game runs.
func newSandbox(t *testing.T, cfg lockon.Config) *sandbox {
	t.Helper()

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())

	s := &sandbox{w: w, recorder: &recorder{}}
	s.ctrl = lockon.NewController(cfg, lockon.Bindings{})

	s.player = ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, s.player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, s.player, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(w, s.player, component.ControlRotationComponent.Kind(), &component.ControlRotation{}))
	require.NoError(t, ecs.Add(w, s.player, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, s.player, component.MoverComponent.Kind(), &component.Mover{
		Speed: 600, TurnRate: 720, LookRate: 120, AttackDamage: 40, AttackRange: 250,
	}))
	require.NoError(t, ecs.Add(w, s.player, component.LockOnComponent.Kind(), &component.LockOn{Controller: s.ctrl, Preset: "test"}))
	require.NoError(t, ecs.Add(w, s.player, component.LockOnRequestComponent.Kind(), &component.LockOnRequest{}))

	s.camera = ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, s.camera, component.CameraTagComponent.Kind(), &component.CameraTag{}))
	require.NoError(t, ecs.Add(w, s.camera, component.CameraComponent.Kind(), &component.Camera{
		ArmLength:    300,
		SocketOffset: mgl64.Vec3{0, 0, 60},
		FOV:          70,
		Near:         1,
		Far:          10000,
	}))

	w.AddSystem(NewOccluderSystem(nil))
	w.AddSystem(NewPlayerControllerSystem())
	w.AddSystem(NewCombatSystem())
	w.AddSystem(NewLockOnSystem(nil))
	w.AddSystem(NewCameraSystem(1280, 720))
	w.AddSystem(s.recorder)
	w.AddSystem(NewTTLSystem())
	return s
}

func (s *sandbox) addEnemy(t *testing.T, pos mgl64.Vec3, hp float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(s.w)
	require.NoError(t, ecs.Add(s.w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}))
	require.NoError(t, ecs.Add(s.w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	require.NoError(t, ecs.Add(s.w, e, component.HealthComponent.Kind(), &component.Health{Current: hp, Max: hp}))
	return e
}

func (s *sandbox) addOccluder(t *testing.T, occ component.Occluder) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(s.w)
	require.NoError(t, ecs.Add(s.w, e, component.OccluderComponent.Kind(), &occ))
	return e
}

func (s *sandbox) request(t *testing.T, req component.LockOnRequest) {
	t.Helper()
	r, ok := ecs.Get(s.w, s.player, component.LockOnRequestComponent.Kind())
	require.True(t, ok)
	*r = req
}

func (s *sandbox) run(ticks int) {
	for i := 0; i < ticks; i++ {
		s.w.Update(tick)
	}
}

// lock toggles and runs until the first scan has had time to happen.
func (s *sandbox) lock(t *testing.T) {
	t.Helper()
	s.run(1)
	s.request(t, component.LockOnRequest{Toggle: true})
	s.run(int(s.ctrl.Config().SearchInterval/tick) + 2)
}

func (s *sandbox) cam(t *testing.T) *component.Camera {
	t.Helper()
	cam, ok := ecs.Get(s.w, s.camera, component.CameraComponent.Kind())
	require.True(t, ok)
	return cam
}
