package component

type Health struct {
	Current int
	Max     int
}

var HealthComponent = NewComponent[Health]("health")

func (*Health) ComponentKind() Kind { return HealthComponent.Kind() }

func (h *Health) Dead() bool {
	return h != nil && h.Current <= 0
}
