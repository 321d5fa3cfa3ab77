package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/platform"
	"github.com/spaghettifunk/tessera/engine/systems"
)

// DefaultConfigPath is read when no -config flag is given.
const DefaultConfigPath = "tessera.toml"

type ApplicationSection struct {
	// The application name used in windowing, if applicable.
	Name        string `toml:"name"`
	LogLevel    string `toml:"log_level"`
	EditorState string `toml:"editor_state"`
	JobWorkers  int    `toml:"job_workers"`
}

type WindowSection struct {
	Title      string `toml:"title"`
	Width      uint32 `toml:"width"`
	Height     uint32 `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	Borderless bool   `toml:"borderless"`
	VSync      bool   `toml:"vsync"`
	RenderAPI  string `toml:"render_api"`
	Icon       string `toml:"icon"`
	SmallIcon  string `toml:"small_icon"`
}

type VFSSection struct {
	// virtual mount name -> physical directory
	Mounts map[string]string `toml:"mounts"`
}

type ScenesSection struct {
	// Directory is mounted as //Scenes.
	Directory string `toml:"directory"`
	// Startup is the scene switched to on the first frame.
	Startup string `toml:"startup"`
	// Watch publishes scene files written while running to the scene manager.
	Watch bool `toml:"watch"`
}

type PhysicsSection struct {
	Physics3D systems.PhysicsConfig `toml:"3d"`
	Physics2D systems.PhysicsConfig `toml:"2d"`
}

type ApplicationConfig struct {
	Application ApplicationSection `toml:"application"`
	Window      WindowSection      `toml:"window"`
	VFS         VFSSection         `toml:"vfs"`
	Scenes      ScenesSection      `toml:"scenes"`
	Physics     PhysicsSection     `toml:"physics"`
}

func DefaultConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Application: ApplicationSection{
			Name:        "Tessera",
			LogLevel:    "info",
			EditorState: "paused",
			JobWorkers:  2,
		},
		Window: WindowSection{
			Title:     "Tessera",
			Width:     1280,
			Height:    720,
			VSync:     true,
			RenderAPI: "opengl",
		},
		VFS: VFSSection{
			Mounts: map[string]string{
				"Assets": "assets",
			},
		},
		Scenes: ScenesSection{
			Directory: "assets/scenes",
			Watch:     true,
		},
		Physics: PhysicsSection{
			Physics3D: systems.DefaultPhysics3DConfig(),
			Physics2D: systems.DefaultPhysics2DConfig(),
		},
	}
}

// LoadConfig reads the TOML file at path over the defaults. A missing file is
// not an error.
func LoadConfig(path string) (*ApplicationConfig, error) {
	cfg := DefaultConfig()

	buf, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		core.LogInfo("config %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := platform.ParseRenderAPI(c.Window.RenderAPI); err != nil {
		return err
	}
	if _, err := core.ParseEditorState(c.Application.EditorState); err != nil {
		return err
	}
	if c.Scenes.Directory == "" {
		return errors.New("scenes directory is required")
	}
	return nil
}

// WindowConfig converts the window section for the platform layer.
func (c *ApplicationConfig) WindowConfig() platform.WindowConfig {
	api, err := platform.ParseRenderAPI(c.Window.RenderAPI)
	if err != nil {
		core.LogError("%s, falling back to %s", err, api)
	}
	title := c.Window.Title
	if title == "" {
		title = c.Application.Name
	}
	return platform.WindowConfig{
		Title:         title,
		Width:         c.Window.Width,
		Height:        c.Window.Height,
		Fullscreen:    c.Window.Fullscreen,
		Borderless:    c.Window.Borderless,
		VSync:         c.Window.VSync,
		RenderAPI:     api,
		IconPath:      c.Window.Icon,
		SmallIconPath: c.Window.SmallIcon,
	}
}

func (c *ApplicationConfig) SystemsConfig() systems.SystemManagerConfig {
	return systems.SystemManagerConfig{
		JobWorkers:   c.Application.JobWorkers,
		JobQueueSize: 16,
		Physics3D:    c.Physics.Physics3D,
		Physics2D:    c.Physics.Physics2D,
	}
}
