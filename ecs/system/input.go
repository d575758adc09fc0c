package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
)

// InputSystem samples keyboard, mouse and the first gamepad into every
// Input component.
type InputSystem struct {
	// flicked holds the right stick latch: a switch fires once per push
	// past switchThreshold and rearms when the stick returns to rest.
	flicked bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}

	const (
		stickDeadzone   = 0.2
		switchThreshold = 0.7
	)

	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Move[0] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Move[0] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		in.Move[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		in.Move[1] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Look[0] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Look[0] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.Look[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.Look[1] -= 1
	}

	in.ToggleLock = inpututil.IsKeyJustPressed(ebiten.KeyTab) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle)
	in.ClearLock = inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
	in.Attack = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		in.Switch = mgl64.Vec2{-1, 0}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		in.Switch = mgl64.Vec2{1, 0}
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			// Stick Y grows downwards.
			in.Move = mgl64.Vec2{lx, -ly}
		}

		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		stick := mgl64.Vec2{rx, -ry}
		switch mag := stick.Len(); {
		case mag > switchThreshold && !i.flicked:
			i.flicked = true
			in.Switch = stick
		case mag < stickDeadzone:
			i.flicked = false
		}
		if stick.Len() > stickDeadzone {
			in.Look = stick
		}

		in.ToggleLock = in.ToggleLock || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightStick)
		in.ClearLock = in.ClearLock || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		in.Attack = in.Attack || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = in
	})
}
