package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pelletier/go-toml/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Resource is the metadata a loader extracts from an asset on disk.
type Resource struct {
	Name     string
	FullPath string
	Type     AssetType
	DataSize uint64
	Data     interface{}
}

type Loader interface {
	Load(path string) (*Resource, error)
}

// SceneHeader is the part of a scene file needed to list it without loading
// its entities.
type SceneHeader struct {
	Name    string `toml:"name"`
	Version int    `toml:"version"`
}

type SceneLoader struct{}

func (sl *SceneLoader) Load(path string) (*Resource, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var header SceneHeader
	if err := toml.Unmarshal(buf, &header); err != nil {
		return nil, fmt.Errorf("failed to parse scene %s: %w", path, err)
	}

	return &Resource{
		Name:     header.Name,
		FullPath: path,
		Type:     AssetTypeScene,
		DataSize: uint64(len(buf)),
		Data:     &header,
	}, nil
}

type ImageInfo struct {
	Format string
	Width  uint32
	Height uint32
}

// ImageLoader only reads the image header.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string) (*Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	var size uint64
	if fi, err := f.Stat(); err == nil {
		size = uint64(fi.Size())
	}

	return &Resource{
		Name:     "image",
		FullPath: path,
		Type:     AssetTypeImage,
		DataSize: size,
		Data: &ImageInfo{
			Format: format,
			Width:  uint32(cfg.Width),
			Height: uint32(cfg.Height),
		},
	}, nil
}
