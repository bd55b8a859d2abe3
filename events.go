package curveball

import (
	"sync"

	"github.com/akmonengine/curveball/actor"
	"github.com/akmonengine/curveball/contact"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	CONTACT_ENTER EventType = iota
	CONTACT_STAY
	CONTACT_EXIT
	BALL_RESET
	SPIN_APPLIED
	BRICK_DAMAGED
	BRICK_DESTROYED
)

type pairKey struct {
	mover    actor.Entity
	obstacle actor.Entity
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Contact events, one per (mover, obstacle) pair
type ContactEnterEvent struct {
	Mover    actor.Entity
	Obstacle actor.Entity
}

func (e ContactEnterEvent) Type() EventType { return CONTACT_ENTER }

type ContactStayEvent struct {
	Mover    actor.Entity
	Obstacle actor.Entity
}

func (e ContactStayEvent) Type() EventType { return CONTACT_STAY }

type ContactExitEvent struct {
	Mover    actor.Entity
	Obstacle actor.Entity
}

func (e ContactExitEvent) Type() EventType { return CONTACT_EXIT }

// BallResetEvent is sent when a ball passed the player goal and was relaunched
type BallResetEvent struct {
	Ball     actor.Entity
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

func (e BallResetEvent) Type() EventType { return BALL_RESET }

type SpinAppliedEvent struct {
	Paddle actor.Entity
	Ball   actor.Entity
	Curve  mgl64.Vec2
}

func (e SpinAppliedEvent) Type() EventType { return SPIN_APPLIED }

type BrickDamagedEvent struct {
	Brick     actor.Entity
	Ball      actor.Entity
	Remaining int
}

func (e BrickDamagedEvent) Type() EventType { return BRICK_DAMAGED }

type BrickDestroyedEvent struct {
	Brick actor.Entity
	Ball  actor.Entity
}

func (e BrickDestroyedEvent) Type() EventType { return BRICK_DESTROYED }

// EventListener - callback for events
type EventListener func(event Event)

type subscription struct {
	id       string
	listener EventListener
}

// Events collects what happened during a tick and hands it to the listeners
// once the tick is over. Systems may emit concurrently.
type Events struct {
	mu sync.Mutex

	// Listeners by event type
	listeners map[EventType][]subscription

	// Event buffer to send at flush
	buffer []Event

	// Contact tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
	// order of the current pairs, for a stable dispatch order
	currentOrder  []pairKey
	previousOrder []pairKey
}

func NewEvents() *Events {
	return &Events{
		listeners:           make(map[EventType][]subscription),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type and returns its subscription id
func (e *Events) Subscribe(eventType EventType, listener EventListener) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := uuid.NewString()
	e.listeners[eventType] = append(e.listeners[eventType], subscription{id: id, listener: listener})
	return id
}

// Unsubscribe removes the listener registered under id
func (e *Events) Unsubscribe(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for eventType, subs := range e.listeners {
		for i, sub := range subs {
			if sub.id == id {
				e.listeners[eventType] = append(subs[:i:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// recordContacts marks the pairs of a detection batch as active for this tick
func (e *Events) recordContacts(batch []contact.Notification) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, n := range batch {
		pair := pairKey{mover: n.Mover, obstacle: n.Obstacle}
		if e.currentActivePairs[pair] {
			continue
		}
		e.currentActivePairs[pair] = true
		e.currentOrder = append(e.currentOrder, pair)
	}
}

func (e *Events) emit(event Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.buffer = append(e.buffer, event)
}

// forget drops the pairs involving a despawned entity, without an exit event
func (e *Events) forget(entity actor.Entity) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for pair := range e.currentActivePairs {
		if pair.mover == entity || pair.obstacle == entity {
			delete(e.currentActivePairs, pair)
		}
	}
	for pair := range e.previousActivePairs {
		if pair.mover == entity || pair.obstacle == entity {
			delete(e.previousActivePairs, pair)
		}
	}
}

// processContactEvents compares current and previous pairs to detect Enter/Stay/Exit.
// Must be called with the lock held.
func (e *Events) processContactEvents() {
	for _, pair := range e.currentOrder {
		if !e.currentActivePairs[pair] {
			continue
		}
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, ContactStayEvent{Mover: pair.mover, Obstacle: pair.obstacle})
		} else {
			e.buffer = append(e.buffer, ContactEnterEvent{Mover: pair.mover, Obstacle: pair.obstacle})
		}
	}

	for _, pair := range e.previousOrder {
		if e.previousActivePairs[pair] && !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, ContactExitEvent{Mover: pair.mover, Obstacle: pair.obstacle})
		}
	}

	// Swap for next tick and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	e.previousOrder, e.currentOrder = e.currentOrder, e.previousOrder[:0]
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer.
// Listeners run without the lock held and may subscribe or unsubscribe.
func (e *Events) flush() {
	e.mu.Lock()
	e.processContactEvents()

	events := make([]Event, len(e.buffer))
	copy(events, e.buffer)
	clear(e.buffer)
	e.buffer = e.buffer[:0]

	listeners := make(map[EventType][]EventListener, len(e.listeners))
	for eventType, subs := range e.listeners {
		for _, sub := range subs {
			listeners[eventType] = append(listeners[eventType], sub.listener)
		}
	}
	e.mu.Unlock()

	for _, event := range events {
		for _, listener := range listeners[event.Type()] {
			listener(event)
		}
	}
}
