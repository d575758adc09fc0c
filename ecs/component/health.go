package component

type Health struct {
	Current float64
	Max     float64
}

func (h Health) Alive() bool {
	return h.Current > 0
}

var HealthComponent = NewComponent[Health]()

// DamageRequest accumulates damage for the health system to apply this tick.
type DamageRequest struct {
	Amount float64
}

var DamageRequestComponent = NewComponent[DamageRequest]()
