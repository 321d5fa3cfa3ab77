package scene

import (
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/tessera/engine/core"
)

const (
	// ScenesMount is the virtual directory holding the scene files.
	ScenesMount = "//Scenes/"
	// DefaultSceneName is used for the scene created when nothing is registered.
	DefaultSceneName = "NewScene"
)

// Resolver maps between virtual and physical paths.
type Resolver interface {
	ResolvePhysicalPath(path string) (string, bool)
	AbsolutePathToVFS(path string) (string, bool)
}

// Simulation is an engine subsystem a transition pauses and resets.
type Simulation interface {
	SetPaused(paused bool)
	SetDefaults()
}

// Host is the application the manager reports transitions to.
type Host interface {
	Simulations() []Simulation
	OnExitScene()
	OnNewScene(s Scene)
	WindowSize() (uint32, uint32)
	EditorState() core.EditorState
}

type transition struct {
	index   int
	pending bool
}

// Manager owns the scene registry and applies queued scene switches once per
// frame. It is not safe for concurrent use.
type Manager struct {
	resolver Resolver
	host     Host

	scenes       []Scene
	current      Scene
	currentIndex int
	request      transition

	// physical or virtual path -> registry index
	fileIndex map[string]int
	loadList  []string
}

func NewManager(resolver Resolver, host Host) *Manager {
	return &Manager{
		resolver:     resolver,
		host:         host,
		currentIndex: -1,
		fileIndex:    make(map[string]int),
	}
}

// SwitchScene queues the scene after the current one, wrapping around.
func (m *Manager) SwitchScene() {
	if len(m.scenes) == 0 {
		core.LogError("No scenes to switch to")
		return
	}
	next := 0
	if m.currentIndex >= 0 {
		next = (m.currentIndex + 1) % len(m.scenes)
	}
	m.SwitchSceneIndex(next)
}

// SwitchSceneIndex queues the scene at index. The index is validated when the
// switch is applied.
func (m *Manager) SwitchSceneIndex(index int) {
	m.request = transition{index: index, pending: true}
}

// SwitchSceneName queues the first scene called name. An unknown name leaves
// the pending request as it was.
func (m *Manager) SwitchSceneName(name string) bool {
	i := slices.IndexFunc(m.scenes, func(s Scene) bool { return s.Name() == name })
	if i < 0 {
		core.LogError("Unknown scene alias : %s", name)
		return false
	}
	m.SwitchSceneIndex(i)
	return true
}

// IsSwitching reports whether a switch is queued or being applied.
func (m *Manager) IsSwitching() bool {
	return m.request.pending
}

// ApplySceneSwitch performs the queued switch. Without a queued switch it
// only makes sure some scene is active.
func (m *Manager) ApplySceneSwitch() {
	if !m.request.pending {
		if m.current != nil {
			return
		}
		m.request = transition{index: 0, pending: true}
	}

	if len(m.scenes) == 0 {
		core.LogInfo("No scenes registered, creating %s", DefaultSceneName)
		m.EnqueueScene(New(DefaultSceneName))
	}

	index := m.request.index
	if index < 0 || index >= len(m.scenes) {
		core.LogError("Invalid scene index : %d, loading scene 0", index)
		index = 0
	}

	sims := m.simulations()
	if m.current != nil {
		for _, sim := range sims {
			sim.SetPaused(true)
		}
		m.current.OnCleanupScene()
		if m.host != nil {
			m.host.OnExitScene()
		}
	}

	m.current = m.scenes[index]
	m.currentIndex = index
	core.LogInfo("Switching to scene %d : %s", index, m.current.Name())

	for _, sim := range sims {
		sim.SetDefaults()
		sim.SetPaused(false)
	}

	if m.resolver != nil {
		if physical, ok := m.resolver.ResolvePhysicalPath(ScenesMount + m.current.Name() + FileExtension); ok {
			if err := m.current.Deserialise(filepath.Dir(physical)); err != nil {
				core.LogError("Failed to load scene %s : %s", m.current.Name(), err)
			}
		}
	}

	if m.host != nil {
		m.current.SetScreenSize(m.host.WindowSize())
		if m.host.EditorState() == core.EditorStatePlay {
			if err := m.current.OnInit(); err != nil {
				core.LogError("Failed to init scene %s : %s", m.current.Name(), err)
			}
		}
		m.host.OnNewScene(m.current)
	}

	m.request.pending = false
}

func (m *Manager) simulations() []Simulation {
	if m.host == nil {
		return nil
	}
	return m.host.Simulations()
}

func (m *Manager) SceneNames() []string {
	names := make([]string, len(m.scenes))
	for i, s := range m.scenes {
		names[i] = s.Name()
	}
	return names
}

// EnqueueSceneFromFile registers a scene named after the file and returns its
// index. A path that was already enqueued returns the existing index.
func (m *Manager) EnqueueSceneFromFile(path string) int {
	if i, ok := m.fileIndex[path]; ok {
		return i
	}

	base := filepath.Base(filepath.FromSlash(path))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	m.EnqueueScene(New(name))

	i := len(m.scenes) - 1
	m.fileIndex[path] = i
	return i
}

// EnqueueScene appends the scene and claims its file under the scenes mount,
// so saving it does not register a second copy when the watcher reports the
// write.
func (m *Manager) EnqueueScene(s Scene) {
	m.scenes = append(m.scenes, s)
	path := ScenesMount + s.Name() + FileExtension
	if _, ok := m.fileIndex[path]; !ok {
		m.fileIndex[path] = len(m.scenes) - 1
	}
	core.LogInfo("Enqueued scene : %s", s.Name())
}

// AddFileToLoadList defers EnqueueSceneFromFile to the next LoadCurrentList.
func (m *Manager) AddFileToLoadList(path string) {
	m.loadList = append(m.loadList, path)
}

// LoadCurrentList enqueues every file added since the last call, using the
// virtual path when the file lives under a mount.
func (m *Manager) LoadCurrentList() {
	for _, path := range m.loadList {
		if m.resolver != nil {
			if virtual, ok := m.resolver.AbsolutePathToVFS(path); ok {
				path = virtual
			}
		}
		m.EnqueueSceneFromFile(path)
	}
	m.loadList = m.loadList[:0]
}

// SceneFilePaths returns the virtual path of every scene, without extension.
func (m *Manager) SceneFilePaths() []string {
	paths := make([]string, len(m.scenes))
	for i, s := range m.scenes {
		paths[i] = ScenesMount + s.Name()
	}
	return paths
}

// CurrentScene is nil until the first switch is applied.
func (m *Manager) CurrentScene() Scene {
	return m.current
}

func (m *Manager) CurrentSceneIndex() int {
	return m.currentIndex
}

func (m *Manager) Scenes() []Scene {
	return slices.Clone(m.scenes)
}

func (m *Manager) SceneCount() int {
	return len(m.scenes)
}

// Shutdown cleans up the active scene and drops the registry.
func (m *Manager) Shutdown() {
	if m.current != nil {
		m.current.OnCleanupScene()
		core.LogInfo("Exited scene : %s", m.current.Name())
	}
	m.current = nil
	m.currentIndex = -1
	m.request = transition{}
	m.scenes = nil
	m.fileIndex = make(map[string]int)
	m.loadList = nil
}
