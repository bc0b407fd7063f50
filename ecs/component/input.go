package component

// Input marks an entity as player controlled. The input system copies the
// world's polled state into it each frame and sets Velocity to Move * Speed.
type Input struct {
	Speed float64
	MoveX float64
	MoveY float64
	Fire  bool
}

var InputComponent = NewComponent[Input]("input")

func (*Input) ComponentKind() Kind { return InputComponent.Kind() }
