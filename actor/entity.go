package actor

import (
	"strconv"
	"sync"
)

// Entity identifies a slot in the Arena. The low 32 bits hold the slot index,
// the high 32 bits its generation, so a stale handle never matches a recycled slot.
type Entity uint64

// NoEntity is never returned by Spawn.
const NoEntity Entity = 0

func newEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the arena slot of the entity
func (e Entity) Index() uint32 {
	return uint32(e)
}

// Generation returns how many times the slot has been recycled
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.Index()), 10) + "v" + strconv.FormatUint(uint64(e.Generation()), 10)
}

// Arena allocates entity handles and recycles despawned slots
type Arena struct {
	mu          sync.Mutex
	generations []uint32
	alive       []bool
	free        []uint32
	count       int
}

func NewArena() *Arena {
	return &Arena{
		// slot 0 is reserved so that NoEntity stays invalid
		generations: []uint32{0},
		alive:       []bool{false},
	}
}

// Spawn returns a fresh entity, reusing a freed slot when one is available
func (a *Arena) Spawn() Entity {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.count++
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		a.alive[index] = true
		return newEntity(index, a.generations[index])
	}

	index := uint32(len(a.generations))
	a.generations = append(a.generations, 1)
	a.alive = append(a.alive, true)
	return newEntity(index, 1)
}

// Despawn frees the slot of e. It returns false if e was already dead.
func (a *Arena) Despawn(e Entity) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.aliveLocked(e) {
		return false
	}
	index := e.Index()
	a.alive[index] = false
	a.generations[index]++
	a.free = append(a.free, index)
	a.count--
	return true
}

// Alive reports whether e still refers to a live slot
func (a *Arena) Alive(e Entity) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.aliveLocked(e)
}

func (a *Arena) aliveLocked(e Entity) bool {
	index := e.Index()
	if int(index) >= len(a.generations) {
		return false
	}
	return a.alive[index] && a.generations[index] == e.Generation()
}

// Len returns the number of live entities
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}
