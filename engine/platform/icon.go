package platform

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/tessera/engine/core"
)

func loadIconImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// SetIcon loads the window icons. Icons that fail to load are skipped with a
// warning; the window keeps its previous icon if none load.
func (w *Window) SetIcon(file string, smallIconFile string) {
	images := make([]image.Image, 0, 2)

	for _, path := range []string{smallIconFile, file} {
		if path == "" {
			continue
		}
		img, err := loadIconImage(path)
		if err != nil {
			core.LogWarn("Failed to load app icon %s: %s", path, err)
			continue
		}
		images = append(images, img)
	}

	if len(images) == 0 {
		return
	}
	w.handle.SetIcon(images)
}
