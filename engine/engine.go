package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/tessera/engine/assets"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/platform"
	"github.com/spaghettifunk/tessera/engine/scene"
	"github.com/spaghettifunk/tessera/engine/systems"
	"github.com/spaghettifunk/tessera/engine/vfs"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released everything it owned
	EngineStageShutdown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	config       *ApplicationConfig
	isRunning    bool
	isSuspended  bool
	editorState  core.EditorState

	library       *platform.Library
	window        *platform.Window
	input         *core.InputState
	dispatcher    *core.EventDispatcher
	vfs           *vfs.VFS
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	sceneManager  *scene.Manager
	cursor        platform.GUICursorState

	width    uint32
	height   uint32
	clock    *core.Clock
	metrics  *core.Metrics
	lastTime float64
}

func New(g *Game, backend platform.Backend) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultConfig()
	}
	cfg := g.ApplicationConfig

	if err := core.SetLogLevel(cfg.Application.LogLevel); err != nil {
		core.LogError("%s, keeping the current level", err)
	}

	state, err := core.ParseEditorState(cfg.Application.EditorState)
	if err != nil {
		core.LogError("%s, starting paused", err)
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sm, err := systems.NewSystemManager(cfg.SystemsConfig())
	if err != nil {
		core.LogError(err.Error())
		_ = am.Close()
		return nil, err
	}

	e := &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		config:        cfg,
		editorState:   state,
		library:       platform.NewLibrary(backend),
		input:         core.NewInputState(),
		dispatcher:    core.NewEventDispatcher(),
		vfs:           vfs.New(),
		assetManager:  am,
		systemManager: sm,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
		cursor:        platform.GUICursorState{Shape: platform.CursorShapeArrow},
	}
	e.sceneManager = scene.NewManager(e.vfs, e)

	g.Engine = e
	g.SystemManager = sm
	g.SceneManager = e.sceneManager
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	cfg := e.config

	for name, dir := range cfg.VFS.Mounts {
		if err := e.vfs.Mount(name, dir); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := os.MkdirAll(cfg.Scenes.Directory, 0o755); err != nil {
		return err
	}
	if err := e.vfs.Mount(strings.TrimSuffix(scene.ScenesMount, "/"), cfg.Scenes.Directory); err != nil {
		return err
	}

	for _, code := range []core.EventType{
		core.EVENT_CODE_KEY_PRESSED,
		core.EVENT_CODE_KEY_RELEASED,
		core.EVENT_CODE_BUTTON_PRESSED,
		core.EVENT_CODE_BUTTON_RELEASED,
		core.EVENT_CODE_MOUSE_MOVED,
		core.EVENT_CODE_MOUSE_WHEEL,
		core.EVENT_CODE_WINDOW_FOCUS,
	} {
		e.dispatcher.Register(code, e.input, e.input.OnEvent)
	}
	e.dispatcher.Register(core.EVENT_CODE_WINDOW_CLOSE, e, e.onEvent)
	e.dispatcher.Register(core.EVENT_CODE_WINDOW_RESIZE, e, e.onResized)
	e.dispatcher.Register(core.EVENT_CODE_WINDOW_FILE, e, e.onFileDropped)

	window, err := platform.NewWindow(e.library, cfg.WindowConfig(), e.input, e.dispatcher.Callback())
	if err != nil {
		return err
	}
	e.window = window
	e.width, e.height = window.Width(), window.Height()

	if cfg.Scenes.Watch {
		if err := e.assetManager.Initialize(cfg.Scenes.Directory); err != nil {
			core.LogError("failed to watch %s: %s", cfg.Scenes.Directory, err)
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if cfg.Scenes.Startup != "" {
		e.sceneManager.SwitchSceneName(cfg.Scenes.Startup)
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	e.isRunning = true
	return nil
}

// Run drives the frame loop until the window closes, the game stops it or
// ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		if ctx.Err() != nil {
			core.LogInfo("context cancelled, shutting down.")
			e.isRunning = false
			break
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		if err := e.Frame(currentTime - e.lastTime); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}
		e.lastTime = currentTime
	}
	return nil
}

// Frame runs one iteration of the loop.
func (e *Engine) Frame(delta float64) error {
	e.window.ProcessInput()
	if e.window.ShouldExit() {
		e.isRunning = false
		return nil
	}

	e.collectSceneFiles()
	e.sceneManager.LoadCurrentList()
	e.sceneManager.ApplySceneSwitch()

	if !e.isSuspended {
		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				return err
			}
		}
		if current := e.sceneManager.CurrentScene(); current != nil && e.editorState == core.EditorStatePlay {
			current.OnUpdate(delta)
		}

		e.window.UpdateCursor(&e.cursor)
		e.window.OnUpdate()
		e.metrics.Update(delta)
	}

	e.input.Update()
	return nil
}

// collectSceneFiles hands the scene files written since the last frame to the
// scene manager without blocking.
func (e *Engine) collectSceneFiles() {
	files := e.assetManager.SceneFiles()
	for {
		select {
		case path, ok := <-files:
			if !ok {
				return
			}
			e.sceneManager.AddFileToLoadList(path)
		default:
			return
		}
	}
}

// Stop ends the frame loop after the current frame.
func (e *Engine) Stop() {
	e.isRunning = false
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	var errs []error
	e.sceneManager.Shutdown()
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	if err := e.assetManager.Close(); err != nil && !errors.Is(err, assets.ErrWatcherClosed) {
		errs = append(errs, err)
	}
	errs = append(errs, e.systemManager.Shutdown())
	errs = append(errs, e.dispatcher.Shutdown())
	if e.window != nil {
		e.window.Destroy()
	}

	e.currentStage = EngineStageShutdown
	return errors.Join(errs...)
}

// SaveScenes writes every registered scene into the scenes directory on the
// job system and waits for all of them.
func (e *Engine) SaveScenes() error {
	dir, ok := e.vfs.ResolvePhysicalPath(strings.TrimSuffix(scene.ScenesMount, "/"))
	if !ok {
		return fmt.Errorf("scenes directory %s is not mounted", scene.ScenesMount)
	}

	js := e.systemManager.JobSystem()
	errCh := make(chan error, e.sceneManager.SceneCount())
	for _, s := range e.sceneManager.Scenes() {
		if err := js.Submit(systems.JobTask{
			Name:      "save " + s.Name(),
			Run:       func() error { return s.Serialise(dir) },
			OnFailure: func(err error) { errCh <- fmt.Errorf("%s: %w", s.Name(), err) },
		}); err != nil {
			// the scenes already queued still finish writing
			js.Wait()
			return err
		}
	}
	js.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SetEditorState switches between editing and playing. The current scene is
// reloaded so it starts from its saved state.
func (e *Engine) SetEditorState(state core.EditorState) {
	if state == e.editorState {
		return
	}
	core.LogInfo("Editor state : %s -> %s", e.editorState, state)
	e.editorState = state
	if idx := e.sceneManager.CurrentSceneIndex(); idx >= 0 {
		e.sceneManager.SwitchSceneIndex(idx)
	}
}

func (e *Engine) onEvent(ev core.Event, _ interface{}) bool {
	if ev.Type() == core.EVENT_CODE_WINDOW_CLOSE {
		core.LogInfo("EVENT_CODE_WINDOW_CLOSE received, shutting down.")
		e.isRunning = false
	}
	return false
}

func (e *Engine) onResized(ev core.Event, _ interface{}) bool {
	re, ok := ev.(core.WindowResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ev.Type())
		return false
	}
	width, height := re.Width, re.Height
	if width == e.width && height == e.height {
		return false
	}
	e.width, e.height = width, height
	core.LogDebug("Window resize: %d, %d", width, height)

	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return false
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if current := e.sceneManager.CurrentScene(); current != nil {
		current.SetScreenSize(width, height)
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	return false
}

func (e *Engine) onFileDropped(ev core.Event, _ interface{}) bool {
	fe, ok := ev.(core.WindowFileEvent)
	if !ok {
		return false
	}
	if strings.EqualFold(filepath.Ext(fe.Path), scene.FileExtension) {
		core.LogInfo("Scene file dropped : %s", fe.Path)
		e.sceneManager.AddFileToLoadList(fe.Path)
	}
	return false
}

// Simulations implements scene.Host.
func (e *Engine) Simulations() []scene.Simulation {
	sims := e.systemManager.Simulations()
	out := make([]scene.Simulation, len(sims))
	for i, s := range sims {
		out[i] = s
	}
	return out
}

// OnExitScene implements scene.Host.
func (e *Engine) OnExitScene() {
	if e.gameInstance.FnOnExitScene != nil {
		e.gameInstance.FnOnExitScene()
	}
}

// OnNewScene implements scene.Host.
func (e *Engine) OnNewScene(s scene.Scene) {
	if e.window != nil {
		e.window.SetWindowTitle(fmt.Sprintf("%s - %s", e.config.WindowConfig().Title, s.Name()))
	}
	if e.gameInstance.FnOnNewScene != nil {
		e.gameInstance.FnOnNewScene(s)
	}
}

// WindowSize implements scene.Host.
func (e *Engine) WindowSize() (uint32, uint32) {
	return e.width, e.height
}

// EditorState implements scene.Host.
func (e *Engine) EditorState() core.EditorState {
	return e.editorState
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) IsRunning() bool {
	return e.isRunning
}

func (e *Engine) IsSuspended() bool {
	return e.isSuspended
}

func (e *Engine) Window() *platform.Window {
	return e.window
}

func (e *Engine) Input() *core.InputState {
	return e.input
}

func (e *Engine) Dispatcher() *core.EventDispatcher {
	return e.dispatcher
}

func (e *Engine) VFS() *vfs.VFS {
	return e.vfs
}

func (e *Engine) Assets() *assets.AssetManager {
	return e.assetManager
}

// Cursor is the cursor the GUI layer requests each frame.
func (e *Engine) Cursor() *platform.GUICursorState {
	return &e.cursor
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}
