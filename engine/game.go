package engine

import (
	"github.com/spaghettifunk/tessera/engine/scene"
	"github.com/spaghettifunk/tessera/engine/systems"
)

// Game is the application plugged into the engine. The engine fills in the
// managers before calling FnInitialize.
type Game struct {
	ApplicationConfig *ApplicationConfig
	Engine            *Engine
	SystemManager     *systems.SystemManager
	SceneManager      *scene.Manager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnOnResize        OnResize
	FnOnNewScene      OnNewScene
	FnOnExitScene     OnExitScene
	FnShutdown        Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type OnNewScene func(s scene.Scene)
type OnExitScene func()
type Shutdown func() error
