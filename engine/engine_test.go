package engine

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/platform"
	"github.com/spaghettifunk/tessera/engine/scene"
	"github.com/spaghettifunk/tessera/engine/systems"
)

type playScene struct {
	*scene.Base
	inits   int
	updates int
}

func (s *playScene) OnInit() error {
	s.inits++
	return s.Base.OnInit()
}

func (s *playScene) OnUpdate(dt float64) {
	s.updates++
}

func testEngine(t *testing.T) (*Engine, *Game, *fakeBackend) {
	return testEngineWith(t, func(*ApplicationConfig) {})
}

func testEngineWith(t *testing.T, configure func(*ApplicationConfig)) (*Engine, *Game, *fakeBackend) {
	t.Helper()
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Application.LogLevel = "error"
	cfg.VFS.Mounts = map[string]string{}
	cfg.Scenes.Directory = filepath.Join(root, "scenes")
	cfg.Scenes.Watch = false
	configure(cfg)

	g := &Game{ApplicationConfig: cfg}
	backend := &fakeBackend{}
	e, err := New(g, backend)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { _ = e.Shutdown() })
	return e, g, backend
}

func TestFirstFrameActivatesDefaultScene(t *testing.T) {
	e, g, backend := testEngine(t)

	require.NoError(t, e.Frame(0.016))
	current := g.SceneManager.CurrentScene()
	require.NotNil(t, current)
	assert.Equal(t, scene.DefaultSceneName, current.Name())
	assert.Equal(t, "Tessera - NewScene", backend.window.title)
	assert.Equal(t, 1, backend.window.swaps)
	assert.Equal(t, EngineStageInitialized, e.Stage())
}

func TestStartupSceneAndPlayMode(t *testing.T) {
	e, g, _ := testEngine(t)

	a := &playScene{Base: scene.New("A")}
	b := &playScene{Base: scene.New("B")}
	g.SceneManager.EnqueueScene(a)
	g.SceneManager.EnqueueScene(b)
	g.SceneManager.SwitchSceneName("B")

	require.NoError(t, e.Frame(0.016))
	assert.Same(t, b, g.SceneManager.CurrentScene())
	assert.Zero(t, b.inits)
	assert.Zero(t, b.updates)

	e.SetEditorState(core.EditorStatePlay)
	assert.True(t, g.SceneManager.IsSwitching())
	require.NoError(t, e.Frame(0.016))
	assert.Equal(t, 1, b.inits)
	assert.Equal(t, 1, b.updates)
	assert.Equal(t, core.EditorStatePlay, e.EditorState())
}

func TestDroppedSceneFileIsRegistered(t *testing.T) {
	e, g, backend := testEngine(t)
	require.NoError(t, e.Frame(0.016))

	path := filepath.Join(e.config.Scenes.Directory, "Dropped.scene")
	backend.window.callbacks.Drop([]string{path, "/other.scene"})
	backend.window.callbacks.Drop([]string{"/notes.txt"})
	assert.Equal(t, 1, g.SceneManager.SceneCount())

	require.NoError(t, e.Frame(0.016))
	assert.Equal(t, []string{scene.DefaultSceneName, "Dropped"}, g.SceneManager.SceneNames())
	assert.Equal(t, 1, g.SceneManager.EnqueueSceneFromFile("//Scenes/Dropped.scene"))
}

func TestMinimiseSuspendsUpdates(t *testing.T) {
	e, g, backend := testEngine(t)

	updates := 0
	resizes := 0
	g.FnUpdate = func(float64) error { updates++; return nil }
	g.FnOnResize = func(uint32, uint32) error { resizes++; return nil }

	require.NoError(t, e.Frame(0.016))
	assert.Equal(t, 1, updates)

	backend.window.resize(0, 0)
	assert.True(t, e.IsSuspended())
	require.NoError(t, e.Frame(0.016))
	assert.Equal(t, 1, updates)

	backend.window.resize(640, 480)
	assert.False(t, e.IsSuspended())
	assert.Equal(t, 1, resizes)
	w, h := e.WindowSize()
	assert.Equal(t, uint32(640), w)
	assert.Equal(t, uint32(480), h)

	require.NoError(t, e.Frame(0.016))
	assert.Equal(t, 2, updates)
}

func TestCloseStopsLoop(t *testing.T) {
	e, _, backend := testEngine(t)
	assert.True(t, e.IsRunning())

	backend.window.callbacks.Close()
	assert.False(t, e.IsRunning())
	require.NoError(t, e.Frame(0.016))
	assert.True(t, e.Window().ShouldExit())
}

func TestKeyEventsReachInput(t *testing.T) {
	e, _, backend := testEngine(t)

	backend.window.callbacks.Key(core.KEY_SPACE, platform.ActionPress)
	assert.True(t, e.Input().IsKeyDown(core.KEY_SPACE))
	assert.True(t, e.Input().IsKeyPressed(core.KEY_SPACE))

	require.NoError(t, e.Frame(0.016))
	assert.False(t, e.Input().IsKeyPressed(core.KEY_SPACE))
	assert.True(t, e.Input().WasKeyDown(core.KEY_SPACE))
}

func TestSaveScenesWritesEveryScene(t *testing.T) {
	e, g, _ := testEngine(t)

	a := scene.New("A")
	a.CreateEntity("Player")
	g.SceneManager.EnqueueScene(a)
	g.SceneManager.EnqueueScene(scene.New("B"))

	require.NoError(t, e.SaveScenes())
	for _, name := range []string{"A", "B"} {
		_, err := os.Stat(scene.FilePath(e.config.Scenes.Directory, name))
		assert.NoError(t, err, name)
	}

	// switching back to A reloads it from disk
	a.OnCleanupScene()
	g.SceneManager.SwitchSceneName("A")
	require.NoError(t, e.Frame(0.016))
	assert.Equal(t, 1, a.EntityCount())
}

func TestSavedScenesAreNotRegisteredTwice(t *testing.T) {
	e, g, _ := testEngineWith(t, func(cfg *ApplicationConfig) {
		cfg.Scenes.Watch = true
	})

	a := &playScene{Base: scene.New("A")}
	g.SceneManager.EnqueueScene(a)
	require.NoError(t, e.Frame(0.016))
	require.NoError(t, e.SaveScenes())

	// a file written after the save arrives after its events
	other := scene.New("Other")
	require.NoError(t, other.Serialise(e.config.Scenes.Directory))

	require.Eventually(t, func() bool {
		if err := e.Frame(0.016); err != nil {
			return false
		}
		return g.SceneManager.SceneCount() == 2
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"A", "Other"}, g.SceneManager.SceneNames())
	assert.Same(t, a, g.SceneManager.Scenes()[0])
}

// slowScene takes a while to write its file.
type slowScene struct {
	*scene.Base
	written atomic.Bool
}

func (s *slowScene) Serialise(dir string) error {
	time.Sleep(50 * time.Millisecond)
	s.written.Store(true)
	return nil
}

// closingScene shuts the job system down when its save is about to be queued.
type closingScene struct {
	*scene.Base
	js    *systems.JobSystem
	armed atomic.Bool
}

func (s *closingScene) Name() string {
	if s.armed.CompareAndSwap(true, false) {
		go func() { _ = s.js.Shutdown() }()
		for s.js.Submit(systems.JobTask{Name: "noop"}) == nil {
			time.Sleep(time.Millisecond)
		}
	}
	return s.Base.Name()
}

func TestSaveScenesWaitsForQueuedJobsOnFailure(t *testing.T) {
	e, g, _ := testEngine(t)

	slow := &slowScene{Base: scene.New("Slow")}
	closing := &closingScene{Base: scene.New("Closing"), js: g.SystemManager.JobSystem()}
	g.SceneManager.EnqueueScene(slow)
	g.SceneManager.EnqueueScene(closing)

	closing.armed.Store(true)
	err := e.SaveScenes()
	assert.ErrorIs(t, err, systems.ErrJobSystemClosed)
	assert.True(t, slow.written.Load())
}

func TestShutdownReleasesWindow(t *testing.T) {
	e, _, backend := testEngine(t)
	require.NoError(t, e.Shutdown())

	assert.True(t, backend.window.destroyed)
	assert.True(t, backend.terminated)
	assert.Equal(t, EngineStageShutdown, e.Stage())
	require.NoError(t, e.Shutdown())
}

func TestNewFailsWithoutJobWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Application.LogLevel = "error"
	cfg.Application.JobWorkers = 0

	e, err := New(&Game{ApplicationConfig: cfg}, &fakeBackend{})
	assert.ErrorIs(t, err, systems.ErrNoWorkers)
	assert.Nil(t, e)
}
