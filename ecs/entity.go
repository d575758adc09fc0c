package ecs

import "strconv"

// Entity is a handle: the low 32 bits are the slot id, the high 32 bits the
// slot generation. Destroying an entity bumps the generation, so old handles
// stop resolving.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String renders the handle as slot:generation, e.g. "7:2", so stale handles
// are easy to tell apart in logs.
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + ":" + strconv.FormatUint(uint64(e.generation()), 10)
}

// Valid reports whether e could refer to an entity at all. It says nothing
// about liveness; use IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() > 0
}
