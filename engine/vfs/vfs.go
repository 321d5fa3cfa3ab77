package vfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Prefix marks a path as virtual: "//Scenes/level.scene".
const Prefix = "//"

var (
	ErrInvalidMount = errors.New("invalid mount point")
	ErrNotMounted   = errors.New("mount point not found")
)

// VFS maps virtual mount points onto physical directories.
type VFS struct {
	mutex  sync.RWMutex
	mounts map[string]string
}

func New() *VFS {
	return &VFS{
		mounts: make(map[string]string),
	}
}

func cleanMountName(name string) string {
	return strings.Trim(strings.TrimPrefix(name, Prefix), "/")
}

// Mount binds the virtual name to a physical directory. Mounting an existing
// name replaces its target.
func (v *VFS) Mount(virtual, physical string) error {
	name := cleanMountName(virtual)
	if name == "" || strings.Contains(name, "/") || physical == "" {
		return fmt.Errorf("%w: %q -> %q", ErrInvalidMount, virtual, physical)
	}
	abs, err := filepath.Abs(physical)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMount, err)
	}

	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.mounts[name] = filepath.Clean(abs)
	return nil
}

func (v *VFS) Unmount(virtual string) error {
	name := cleanMountName(virtual)

	v.mutex.Lock()
	defer v.mutex.Unlock()
	if _, ok := v.mounts[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotMounted, virtual)
	}
	delete(v.mounts, name)
	return nil
}

// Mounts returns the mount names in sorted order.
func (v *VFS) Mounts() []string {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	names := make([]string, 0, len(v.mounts))
	for name := range v.mounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolvePhysicalPath turns a virtual path into a physical one. It only
// succeeds when the file exists. Paths without the virtual prefix are taken
// as physical paths.
func (v *VFS) ResolvePhysicalPath(path string) (string, bool) {
	physical, ok := v.physicalPath(path)
	if !ok {
		return "", false
	}
	if _, err := os.Stat(physical); err != nil {
		return "", false
	}
	return physical, true
}

func (v *VFS) physicalPath(path string) (string, bool) {
	if !strings.HasPrefix(path, Prefix) {
		if path == "" {
			return "", false
		}
		return filepath.Clean(path), true
	}

	name, rest, _ := strings.Cut(strings.TrimPrefix(path, Prefix), "/")

	v.mutex.RLock()
	root, ok := v.mounts[name]
	v.mutex.RUnlock()
	if !ok {
		return "", false
	}
	if rest == "" {
		return root, true
	}
	return filepath.Join(root, filepath.FromSlash(rest)), true
}

// AbsolutePathToVFS maps a physical path back into the virtual namespace.
// When mounts nest, the deepest one wins.
func (v *VFS) AbsolutePathToVFS(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	v.mutex.RLock()
	defer v.mutex.RUnlock()

	bestName, bestRoot := "", ""
	for name, root := range v.mounts {
		if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
			continue
		}
		if len(root) > len(bestRoot) {
			bestName, bestRoot = name, root
		}
	}
	if bestName == "" {
		return "", false
	}

	rel, err := filepath.Rel(bestRoot, abs)
	if err != nil {
		return "", false
	}
	if rel == "." {
		return Prefix + bestName, true
	}
	return Prefix + bestName + "/" + filepath.ToSlash(rel), true
}
