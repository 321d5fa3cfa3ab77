package scene

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/tessera/engine/core"
)

// FileExtension is appended to a scene name to build its backing file.
const FileExtension = ".scene"

// Scene is one loadable unit of world state.
type Scene interface {
	Name() string
	// OnInit prepares the scene to run. It is only called in play mode.
	OnInit() error
	// OnCleanupScene releases everything the scene built since it was activated.
	OnCleanupScene()
	OnUpdate(dt float64)
	// Deserialise loads the scene from <dir>/<name>.scene.
	Deserialise(dir string) error
	// Serialise writes the scene to <dir>/<name>.scene.
	Serialise(dir string) error
	SetScreenSize(width, height uint32)
}

// Base is a Scene holding a flat list of entities. Games embed it and
// override the hooks they need.
type Base struct {
	name string

	mutex       sync.RWMutex
	entities    []*Entity
	width       uint32
	height      uint32
	initialised bool
}

func New(name string) *Base {
	return &Base{name: name}
}

func (s *Base) Name() string {
	return s.name
}

func (s *Base) OnInit() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.initialised = true
	core.LogDebug("scene %s initialised with %d entities", s.name, len(s.entities))
	return nil
}

func (s *Base) Initialised() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.initialised
}

func (s *Base) OnCleanupScene() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.entities = nil
	s.initialised = false
}

func (s *Base) OnUpdate(dt float64) {}

func (s *Base) SetScreenSize(width, height uint32) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.width, s.height = width, height
}

func (s *Base) ScreenSize() (uint32, uint32) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.width, s.height
}

func (s *Base) CreateEntity(name string) *Entity {
	e := NewEntity(name)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.entities = append(s.entities, e)
	return e
}

// Entities returns a snapshot of the entity list.
func (s *Base) Entities() []*Entity {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return slices.Clone(s.entities)
}

func (s *Base) EntityCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.entities)
}

func (s *Base) FindEntity(id uuid.UUID) (*Entity, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	i := slices.IndexFunc(s.entities, func(e *Entity) bool { return e.ID == id })
	if i < 0 {
		return nil, false
	}
	return s.entities[i], true
}

func (s *Base) FindEntityByName(name string) (*Entity, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	i := slices.IndexFunc(s.entities, func(e *Entity) bool { return e.Name == name })
	if i < 0 {
		return nil, false
	}
	return s.entities[i], true
}

func (s *Base) RemoveEntity(id uuid.UUID) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := slices.IndexFunc(s.entities, func(e *Entity) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	return true
}

func (s *Base) setEntities(entities []*Entity) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.entities = entities
}
