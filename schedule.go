package curveball

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Set groups systems that run together. Sets always run in declaration
// order, whatever order systems were added in: each one reads what the
// previous ones wrote.
type Set uint8

const (
	// SetComputeForces turns spin into velocity
	SetComputeForces Set = iota
	// SetApplyForces integrates velocity into position
	SetApplyForces
	// SetDetectCollisions sees post-integration positions and publishes contacts
	SetDetectCollisions
	// SetResolveCollisions reacts to the complete contact batch of the tick
	SetResolveCollisions
	// SetReactToContacts runs after the bounce, so it can override it
	SetReactToContacts
	// SetResolveGestures closes gesture windows and hands out spin
	SetResolveGestures

	setCount
)

func (s Set) String() string {
	switch s {
	case SetComputeForces:
		return "compute_forces"
	case SetApplyForces:
		return "apply_forces"
	case SetDetectCollisions:
		return "detect_collisions"
	case SetResolveCollisions:
		return "resolve_collisions"
	case SetReactToContacts:
		return "react_to_contacts"
	case SetResolveGestures:
		return "resolve_gestures"
	default:
		return "unknown"
	}
}

// System is one unit of per-tick work.
// Systems of the same set may run concurrently and must not assume any order
// among themselves.
type System interface {
	Update(w *World, dt float64) error
}

type SystemFunc func(w *World, dt float64) error

func (f SystemFunc) Update(w *World, dt float64) error {
	return f(w, dt)
}

type namedSystem struct {
	name   string
	system System
}

type Schedule struct {
	sets [setCount][]namedSystem
}

func NewSchedule() *Schedule {
	return &Schedule{}
}

// Add registers a system in a set
func (s *Schedule) Add(set Set, name string, system System) {
	if set >= setCount {
		panic("curveball: unknown system set " + set.String())
	}
	s.sets[set] = append(s.sets[set], namedSystem{name: name, system: system})
}

// Remove unregisters every system called name, returning how many were removed
func (s *Schedule) Remove(name string) int {
	removed := 0
	for set := range s.sets {
		kept := s.sets[set][:0]
		for _, ns := range s.sets[set] {
			if ns.name == name {
				removed++
				continue
			}
			kept = append(kept, ns)
		}
		s.sets[set] = kept
	}
	return removed
}

func (s *Schedule) run(w *World, dt float64) {
	for set := range setCount {
		systems := s.sets[set]
		if len(systems) == 0 {
			continue
		}

		var g errgroup.Group
		g.SetLimit(w.Workers)
		for _, ns := range systems {
			g.Go(func() error {
				if err := ns.system.Update(w, dt); err != nil {
					w.Logger.Warn("system failed",
						zap.String("set", set.String()),
						zap.String("system", ns.name),
						zap.Error(err),
					)
					return err
				}
				return nil
			})
		}
		// failures are logged above; the tick goes on
		_ = g.Wait()
	}
}
