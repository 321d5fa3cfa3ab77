package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/tessera/engine/core"
)

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeScene
	AssetTypeImage
	AssetTypeScript
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeScene:
		return "scene"
	case AssetTypeImage:
		return "image"
	case AssetTypeScript:
		return "script"
	default:
		return "none"
	}
}

// SceneFileExtension must match the extension the scene package writes.
const SceneFileExtension = ".scene"

const sceneQueueSize = 64

var ErrWatcherClosed = errors.New("asset watcher already closed")

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

// AssetManager indexes the files under a directory and keeps the index in
// sync with the disk. Scene files that are created or rewritten are
// published on SceneFiles.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[AssetType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	started  bool
	isClosed bool
	scenes   chan string
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[AssetType]Loader),
		fsnotify: fsWatch,
		scenes:   make(chan string, sceneQueueSize),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	am.registerLoader(AssetTypeScene, &SceneLoader{})
	am.registerLoader(AssetTypeImage, &ImageLoader{})
	return am, nil
}

// Initialize indexes assetsDir and starts watching it and every directory below.
func (am *AssetManager) Initialize(assetsDir string) error {
	if err := am.watchRecursive(assetsDir, false); err != nil {
		return err
	}

	am.mutex.Lock()
	am.started = true
	am.mutex.Unlock()
	go am.start()

	core.LogInfo("Watching assets in %s (%d files)", assetsDir, am.Len())
	return nil
}

// SceneFiles delivers the physical path of every scene file written while
// watching. The engine drains it once per frame.
func (am *AssetManager) SceneFiles() <-chan string {
	return am.scenes
}

// Close stops the watcher. The scene channel is closed once the watch loop exits.
func (am *AssetManager) Close() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return ErrWatcherClosed
	}
	am.isClosed = true
	started := am.started
	am.mutex.Unlock()

	if !started {
		close(am.scenes)
		return am.fsnotify.Close()
	}
	close(am.done)
	<-am.stopped
	return nil
}

func (am *AssetManager) registerLoader(assetType AssetType, loader Loader) {
	am.loaders[assetType] = loader
}

// Lookup returns the indexed asset at path.
func (am *AssetManager) Lookup(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	asset, ok := am.assets[filepath.Clean(path)]
	return asset, ok
}

// Assets lists the indexed assets of one type, sorted by path.
func (am *AssetManager) Assets(assetType AssetType) []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	out := make([]AssetInfo, 0)
	for _, asset := range am.assets {
		if asset.Type == assetType {
			out = append(out, asset)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// LoadAsset reads the metadata of an indexed asset with the loader for its type.
func (am *AssetManager) LoadAsset(path string) (*Resource, error) {
	path = filepath.Clean(path)

	am.mutex.Lock()
	asset, exists := am.assets[path]
	if exists {
		asset.LastLoaded = time.Now()
		am.assets[path] = asset
	}
	am.mutex.Unlock()

	if !exists {
		return nil, fmt.Errorf("asset not found: %s", path)
	}

	loader, ok := am.loaders[asset.Type]
	if !ok {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}
	return loader.Load(path)
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	defer close(am.scenes)

	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
		if e.Has(fsnotify.Create) {
			if err := am.watchRecursive(e.Name, false); err != nil {
				core.LogWarn("failed to watch %s: %s", e.Name, err)
			}
		}
		return
	}

	if e.Has(fsnotify.Create) || e.Has(fsnotify.Write) {
		if am.indexFile(e.Name) == AssetTypeScene {
			am.publishScene(e.Name)
		}
	}
	// a removed directory cannot be stat'ed, so it is dropped from the watch
	// list as if it was one
	if e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename) {
		am.removeAsset(e.Name)
		_ = am.fsnotify.Remove(e.Name)
	}
}

func (am *AssetManager) publishScene(path string) {
	select {
	case am.scenes <- path:
	default:
		core.LogWarn("scene queue full, dropping %s", path)
	}
}

// watchRecursive adds or removes every directory under path and indexes the
// files it finds.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	am.mutex.RLock()
	closed := am.isClosed
	am.mutex.RUnlock()
	if closed {
		return ErrWatcherClosed
	}

	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		if !unWatch {
			am.indexFile(walkPath)
		}
		return nil
	})
}

func (am *AssetManager) indexFile(path string) AssetType {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return assetType
	}

	path = filepath.Clean(path)
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	return assetType
}

func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) AssetType {
	switch strings.ToLower(filepath.Ext(path)) {
	case SceneFileExtension:
		return AssetTypeScene
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
		return AssetTypeImage
	case ".lua", ".luac":
		return AssetTypeScript
	default:
		return AssetTypeNone
	}
}
