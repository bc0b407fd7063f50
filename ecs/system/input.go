package system

import (
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tickreg/ecs"
	"github.com/milk9111/tickreg/ecs/component"
)

const stickDeadzone = 0.2

var errNoBindings = errors.New("input: keyboard has no key bindings")

// InputSystem copies the world's polled input into every Input entity and
// drives its Velocity from it.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	state := w.Input()
	r := w.Registry()

	ecs.ForEach(r, component.InputComponent, func(e ecs.EntityID, input *component.Input) {
		input.MoveX = state.MoveX
		input.MoveY = state.MoveY
		input.Fire = state.Fire

		vel, ok := ecs.Get(r, e, component.VelocityComponent)
		if !ok {
			return
		}
		vel.X = state.MoveX * input.Speed
		vel.Y = state.MoveY * input.Speed
	})
}

// KeyboardInput reads the keyboard and the first standard gamepad through
// ebiten. Moving reads held keys, firing reads keys pressed this frame.
type KeyboardInput struct {
	Left  []ebiten.Key
	Right []ebiten.Key
	Up    []ebiten.Key
	Down  []ebiten.Key
	Fire  []ebiten.Key

	pressed     func(ebiten.Key) bool
	justPressed func(ebiten.Key) bool
	gamepad     func() (ebiten.GamepadID, bool)
	ready       bool
}

func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{
		pressed:     ebiten.IsKeyPressed,
		justPressed: inpututil.IsKeyJustPressed,
		gamepad:     firstGamepad,
	}
}

func (k *KeyboardInput) Name() string {
	return "keyboard"
}

// Init fills in WASD, arrow and space bindings for any direction left empty.
func (k *KeyboardInput) Init() error {
	if k.Left == nil {
		k.Left = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	}
	if k.Right == nil {
		k.Right = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	}
	if k.Up == nil {
		k.Up = []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}
	}
	if k.Down == nil {
		k.Down = []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}
	}
	if k.Fire == nil {
		k.Fire = []ebiten.Key{ebiten.KeySpace}
	}
	if len(k.Left)+len(k.Right)+len(k.Up)+len(k.Down)+len(k.Fire) == 0 {
		return errNoBindings
	}
	k.ready = true
	return nil
}

// Poll returns the zero state until Init has succeeded.
func (k *KeyboardInput) Poll() ecs.InputState {
	if !k.ready {
		return ecs.InputState{}
	}

	var state ecs.InputState
	if k.any(k.pressed, k.Left) {
		state.MoveX -= 1
	}
	if k.any(k.pressed, k.Right) {
		state.MoveX += 1
	}
	if k.any(k.pressed, k.Up) {
		state.MoveY -= 1
	}
	if k.any(k.pressed, k.Down) {
		state.MoveY += 1
	}
	state.Fire = k.any(k.justPressed, k.Fire)

	if k.gamepad == nil {
		return state
	}
	if id, ok := k.gamepad(); ok {
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(x) > stickDeadzone {
			state.MoveX = x
		}
		if math.Abs(y) > stickDeadzone {
			state.MoveY = y
		}
		state.Fire = state.Fire || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}
	return state
}

func (k *KeyboardInput) any(check func(ebiten.Key) bool, keys []ebiten.Key) bool {
	if check == nil {
		return false
	}
	for _, key := range keys {
		if check(key) {
			return true
		}
	}
	return false
}

func firstGamepad() (ebiten.GamepadID, bool) {
	ids := ebiten.GamepadIDs()
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}
