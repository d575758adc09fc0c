package component

// TTL is a time-to-live in seconds. Dead enemies get one so their corpse
// lingers briefly before the handle goes stale.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()
