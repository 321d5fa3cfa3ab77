/*
Sample game registering a few scenes and editor key bindings on top of the
engine package.
*/
package testbed

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tessera/engine"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/scene"
)

const spinTag = "spin"

type TestGame struct {
	*engine.Game
}

type gameState struct {
	DeltaTime float64
	width     uint32
	height    uint32
	scenes    []scene.Scene
}

func NewTestGame(cfg *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: cfg,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnOnResize = tg.OnResize
	tg.FnOnNewScene = tg.OnNewScene
	tg.FnOnExitScene = tg.OnExitScene
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	state := g.State.(*gameState)
	state.scenes = []scene.Scene{
		newSpinScene("Sandbox", 3),
		newSpinScene("Carousel", 12),
		scene.New("Empty"),
	}

	dir := g.ApplicationConfig.Scenes.Directory
	for _, s := range state.scenes {
		g.SceneManager.EnqueueScene(s)

		// write a starting file for scenes that were never saved
		if _, err := os.Stat(scene.FilePath(dir, s.Name())); os.IsNotExist(err) {
			if sp, ok := s.(*spinScene); ok {
				sp.populate()
			}
			if err := s.Serialise(dir); err != nil {
				core.LogWarn("failed to save scene %s: %s", s.Name(), err)
			}
		}
	}

	g.Engine.Dispatcher().Register(core.EVENT_CODE_KEY_PRESSED, g, g.onKey)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.DeltaTime = deltaTime
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) OnNewScene(s scene.Scene) {
	core.LogInfo("Active scene : %s (%s)", s.Name(), g.Engine.EditorState())
}

func (g *TestGame) OnExitScene() {
	core.LogDebug("Leaving scene")
}

func (g *TestGame) Shutdown() error {
	core.LogInfo("shutting down testbed...")
	return nil
}

func (g *TestGame) onKey(e core.Event, _ interface{}) bool {
	ke, ok := e.(core.KeyPressedEvent)
	if !ok || ke.RepeatCount > 0 {
		return false
	}

	switch ke.KeyCode {
	case core.KEY_ESCAPE:
		g.Engine.Stop()
	case core.KEY_TAB:
		g.SceneManager.SwitchScene()
	case core.KEY_F1, core.KEY_F2, core.KEY_F3:
		g.SceneManager.SwitchSceneIndex(int(ke.KeyCode - core.KEY_F1))
	case core.KEY_F5:
		if g.Engine.EditorState() == core.EditorStatePlay {
			g.Engine.SetEditorState(core.EditorStatePaused)
		} else {
			g.Engine.SetEditorState(core.EditorStatePlay)
		}
	case core.KEY_F6:
		if err := g.Engine.SaveScenes(); err != nil {
			core.LogError("failed to save scenes: %s", err)
		} else {
			core.LogInfo("Saved %d scenes", g.SceneManager.SceneCount())
		}
	case core.KEY_V:
		g.Engine.Window().ToggleVSync()
	default:
		return false
	}
	return true
}

// spinScene rotates its tagged entities while playing.
type spinScene struct {
	*scene.Base
	count int
	speed float32
}

func newSpinScene(name string, count int) *spinScene {
	return &spinScene{
		Base:  scene.New(name),
		count: count,
		speed: 45,
	}
}

func (s *spinScene) populate() {
	camera := s.CreateEntity("Camera")
	camera.Tags = []string{"camera"}
	camera.Transform.Position = mgl32.Vec3{0, 2, -10}

	for i := 0; i < s.count; i++ {
		cube := s.CreateEntity("Cube")
		cube.Tags = []string{spinTag}
		cube.Transform.Position = mgl32.Vec3{float32(i)*2 - float32(s.count), 0, 0}
	}
}

func (s *spinScene) OnInit() error {
	if s.EntityCount() == 0 {
		s.populate()
	}
	return s.Base.OnInit()
}

func (s *spinScene) OnUpdate(dt float64) {
	step := s.speed * float32(dt)
	for _, e := range s.Entities() {
		if e.HasTag(spinTag) {
			e.Transform.Rotation[1] += step
		}
	}
}
