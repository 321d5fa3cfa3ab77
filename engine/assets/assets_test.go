package assets

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDetermineAssetType(t *testing.T) {
	assert.Equal(t, AssetTypeScene, determineAssetType("a/b/level.scene"))
	assert.Equal(t, AssetTypeImage, determineAssetType("icon.PNG"))
	assert.Equal(t, AssetTypeImage, determineAssetType("icon.webp"))
	assert.Equal(t, AssetTypeScript, determineAssetType("player.lua"))
	assert.Equal(t, AssetTypeNone, determineAssetType("notes.txt"))
}

func TestInitializeIndexesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scenes", "a.scene"), "name = \"A\"\nversion = 1\n")
	writeFile(t, filepath.Join(dir, "scripts", "b.lua"), "-- script")
	writeFile(t, filepath.Join(dir, "readme.txt"), "ignored")

	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	defer am.Close()

	assert.Equal(t, 2, am.Len())
	scenes := am.Assets(AssetTypeScene)
	require.Len(t, scenes, 1)
	assert.Equal(t, filepath.Join(dir, "scenes", "a.scene"), scenes[0].Path)

	_, ok := am.Lookup(filepath.Join(dir, "readme.txt"))
	assert.False(t, ok)

	res, err := am.LoadAsset(filepath.Join(dir, "scenes", "a.scene"))
	require.NoError(t, err)
	header, ok := res.Data.(*SceneHeader)
	require.True(t, ok)
	assert.Equal(t, "A", header.Name)
	assert.Equal(t, 1, header.Version)

	_, err = am.LoadAsset(filepath.Join(dir, "scripts", "b.lua"))
	assert.Error(t, err)
}

func TestSceneFilesPublishesWrites(t *testing.T) {
	dir := t.TempDir()

	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	defer am.Close()

	path := filepath.Join(dir, "new.scene")
	writeFile(t, path, "name = \"New\"\n")

	select {
	case got := <-am.SceneFiles():
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("scene file was not published")
	}

	require.Eventually(t, func() bool {
		_, ok := am.Lookup(path)
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool {
		_, ok := am.Lookup(path)
		return !ok
	}, 5*time.Second, 10*time.Millisecond)
}

func TestCloseClosesSceneChannel(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(t.TempDir()))

	require.NoError(t, am.Close())
	_, ok := <-am.SceneFiles()
	assert.False(t, ok)
	assert.ErrorIs(t, am.Close(), ErrWatcherClosed)
	assert.ErrorIs(t, am.Initialize(t.TempDir()), ErrWatcherClosed)
}

func TestImageLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 4))))
	require.NoError(t, f.Close())

	res, err := (&ImageLoader{}).Load(path)
	require.NoError(t, err)
	info, ok := res.Data.(*ImageInfo)
	require.True(t, ok)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, uint32(8), info.Width)
	assert.Equal(t, uint32(4), info.Height)
}
