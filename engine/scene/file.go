package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/tessera/engine/core"
)

// FileVersion is written into every scene file. Newer files are rejected.
const FileVersion = 1

type fileTransform struct {
	Position [3]float32 `toml:"position"`
	Rotation [3]float32 `toml:"rotation"`
	Scale    [3]float32 `toml:"scale"`
}

type fileEntity struct {
	ID        string        `toml:"id"`
	Name      string        `toml:"name"`
	Tags      []string      `toml:"tags,omitempty"`
	Transform fileTransform `toml:"transform"`
}

type file struct {
	Name     string       `toml:"name"`
	Version  int          `toml:"version"`
	Entities []fileEntity `toml:"entities"`
}

func FilePath(dir, name string) string {
	return filepath.Join(dir, name+FileExtension)
}

func (s *Base) Deserialise(dir string) error {
	path := FilePath(dir, s.name)
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var f file
	if err := toml.Unmarshal(buf, &f); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if f.Name != s.name {
		return fmt.Errorf("%w: %s holds %q, expected %q", core.ErrSceneFileMismatch, path, f.Name, s.name)
	}
	if f.Version > FileVersion {
		return fmt.Errorf("%s has version %d, newest supported is %d", path, f.Version, FileVersion)
	}

	entities := make([]*Entity, 0, len(f.Entities))
	for _, fe := range f.Entities {
		id, err := uuid.Parse(fe.ID)
		if err != nil {
			return fmt.Errorf("entity %q in %s: %w", fe.Name, path, err)
		}
		entities = append(entities, &Entity{
			ID:   id,
			Name: fe.Name,
			Tags: fe.Tags,
			Transform: Transform{
				Position: mgl32.Vec3(fe.Transform.Position),
				Rotation: mgl32.Vec3(fe.Transform.Rotation),
				Scale:    mgl32.Vec3(fe.Transform.Scale),
			},
		})
	}
	s.setEntities(entities)

	core.LogInfo("Loaded scene %s (%d entities)", s.name, len(entities))
	return nil
}

func (s *Base) Serialise(dir string) error {
	f := file{
		Name:    s.name,
		Version: FileVersion,
	}
	for _, e := range s.Entities() {
		f.Entities = append(f.Entities, fileEntity{
			ID:   e.ID.String(),
			Name: e.Name,
			Tags: e.Tags,
			Transform: fileTransform{
				Position: e.Transform.Position,
				Rotation: e.Transform.Rotation,
				Scale:    e.Transform.Scale,
			},
		})
	}

	buf, err := toml.Marshal(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// the previous file stays intact until the rename
	path := FilePath(dir, s.name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}

	core.LogDebug("Saved scene %s to %s", s.name, path)
	return nil
}
