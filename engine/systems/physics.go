package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tessera/engine/core"
)

const (
	Physics3DName = "Physics3D"
	Physics2DName = "Physics2D"
)

type PhysicsConfig struct {
	Gravity             [3]float32 `toml:"gravity"`
	MaxUpdatesPerSecond int        `toml:"max_updates_per_second"`
	VelocityIterations  int        `toml:"velocity_iterations"`
	PositionIterations  int        `toml:"position_iterations"`
}

func DefaultPhysics3DConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:             [3]float32{0, -9.81, 0},
		MaxUpdatesPerSecond: 60,
		VelocityIterations:  8,
		PositionIterations:  3,
	}
}

func DefaultPhysics2DConfig() PhysicsConfig {
	cfg := DefaultPhysics3DConfig()
	cfg.VelocityIterations = 6
	cfg.PositionIterations = 2
	return cfg
}

// PhysicsSystem holds the simulation settings a scene runs with. Scene
// switches pause it, restore the defaults and resume it.
type PhysicsSystem struct {
	name     string
	defaults PhysicsConfig

	gravity             mgl32.Vec3
	maxUpdatesPerSecond int
	velocityIterations  int
	positionIterations  int
	paused              bool
}

func NewPhysicsSystem(name string, defaults PhysicsConfig) *PhysicsSystem {
	ps := &PhysicsSystem{
		name:     name,
		defaults: defaults,
	}
	ps.SetDefaults()
	return ps
}

func (ps *PhysicsSystem) Name() string {
	return ps.name
}

func (ps *PhysicsSystem) SetDefaults() {
	ps.gravity = mgl32.Vec3(ps.defaults.Gravity)
	ps.maxUpdatesPerSecond = ps.defaults.MaxUpdatesPerSecond
	ps.velocityIterations = ps.defaults.VelocityIterations
	ps.positionIterations = ps.defaults.PositionIterations
}

func (ps *PhysicsSystem) SetPaused(paused bool) {
	if ps.paused != paused {
		core.LogDebug("%s paused : %t", ps.name, paused)
	}
	ps.paused = paused
}

func (ps *PhysicsSystem) Paused() bool {
	return ps.paused
}

func (ps *PhysicsSystem) Gravity() mgl32.Vec3 {
	return ps.gravity
}

func (ps *PhysicsSystem) SetGravity(gravity mgl32.Vec3) {
	ps.gravity = gravity
}

func (ps *PhysicsSystem) MaxUpdatesPerSecond() int {
	return ps.maxUpdatesPerSecond
}

func (ps *PhysicsSystem) SetMaxUpdatesPerSecond(n int) {
	ps.maxUpdatesPerSecond = n
}

func (ps *PhysicsSystem) Iterations() (velocity int, position int) {
	return ps.velocityIterations, ps.positionIterations
}

// StepSeconds is the fixed timestep, zero when the rate is unbounded.
func (ps *PhysicsSystem) StepSeconds() float64 {
	if ps.maxUpdatesPerSecond <= 0 {
		return 0
	}
	return 1.0 / float64(ps.maxUpdatesPerSecond)
}

func (ps *PhysicsSystem) Shutdown() error {
	ps.paused = true
	return nil
}
