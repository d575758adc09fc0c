package component

// Mover drives a player entity from its Input. Speed is units/s, TurnRate and
// LookRate degrees/s.
type Mover struct {
	Speed    float64
	TurnRate float64
	LookRate float64

	AttackDamage float64
	AttackRange  float64
}

var MoverComponent = NewComponent[Mover]()
