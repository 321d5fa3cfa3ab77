package systems

import (
	"fmt"

	"github.com/spaghettifunk/tessera/engine/core"
)

type System interface {
	Name() string
	Shutdown() error
}

// Simulation is a system that scene switches pause and reset.
type Simulation interface {
	System
	SetPaused(paused bool)
	SetDefaults()
}

type SystemManagerConfig struct {
	JobWorkers   int
	JobQueueSize int
	Physics3D    PhysicsConfig
	Physics2D    PhysicsConfig
}

// SystemManager owns the engine systems in registration order.
type SystemManager struct {
	systems []System
	byName  map[string]System

	jobSystem *JobSystem
}

func NewSystemManager(cfg SystemManagerConfig) (*SystemManager, error) {
	if cfg.JobWorkers <= 0 {
		cfg.JobWorkers = 1
	}
	js, err := NewJobSystem(cfg.JobWorkers, cfg.JobQueueSize)
	if err != nil {
		return nil, err
	}

	sm := &SystemManager{
		byName:    make(map[string]System),
		jobSystem: js,
	}
	for _, s := range []System{
		js,
		NewPhysicsSystem(Physics3DName, cfg.Physics3D),
		NewPhysicsSystem(Physics2DName, cfg.Physics2D),
	} {
		if err := sm.Register(s); err != nil {
			return nil, err
		}
	}
	return sm, nil
}

func (sm *SystemManager) Register(s System) error {
	if _, ok := sm.byName[s.Name()]; ok {
		return fmt.Errorf("%w: %s", core.ErrSystemAlreadyExists, s.Name())
	}
	sm.systems = append(sm.systems, s)
	sm.byName[s.Name()] = s
	core.LogDebug("registered system %s", s.Name())
	return nil
}

func (sm *SystemManager) Lookup(name string) (System, bool) {
	s, ok := sm.byName[name]
	return s, ok
}

// Get returns the first registered system of type T.
func Get[T System](sm *SystemManager) (T, bool) {
	for _, s := range sm.systems {
		if typed, ok := s.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

func (sm *SystemManager) Simulations() []Simulation {
	out := make([]Simulation, 0, len(sm.systems))
	for _, s := range sm.systems {
		if sim, ok := s.(Simulation); ok {
			out = append(out, sim)
		}
	}
	return out
}

func (sm *SystemManager) JobSystem() *JobSystem {
	return sm.jobSystem
}

func (sm *SystemManager) Physics(name string) (*PhysicsSystem, bool) {
	s, ok := sm.byName[name]
	if !ok {
		return nil, false
	}
	ps, ok := s.(*PhysicsSystem)
	return ps, ok
}

// Shutdown stops the systems in reverse registration order.
func (sm *SystemManager) Shutdown() error {
	var firstErr error
	for i := len(sm.systems) - 1; i >= 0; i-- {
		s := sm.systems[i]
		if err := s.Shutdown(); err != nil {
			core.LogError("failed to shutdown %s: %s", s.Name(), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	sm.systems = nil
	sm.byName = make(map[string]System)
	return firstErr
}
