package component

// Cooldown is a simple frame-based cooldown marker. Systems may add this
// component to an entity to start a countdown; when Frames reaches zero the
// component is removed and a "cooldown_finished" event is published.
type Cooldown struct {
	// Frames remaining for the cooldown (in update ticks)
	Frames int
	// Label is carried on the finish event so subscribers can tell cooldowns apart.
	Label string
}

var CooldownComponent = NewComponent[Cooldown]("cooldown")

func (*Cooldown) ComponentKind() Kind { return CooldownComponent.Kind() }
