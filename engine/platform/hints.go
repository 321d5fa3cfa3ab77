package platform

// Hints are applied to the native library right before the window is created.
type Hints struct {
	NoClientAPI         bool
	ContextVersionMajor int
	ContextVersionMinor int
	CoreProfile         bool
	ForwardCompat       bool
	Decorated           bool
	Resizable           bool
	Visible             bool
	Samples             int
	StencilBits         int
	SRGBCapable         bool
	ScaleToMonitor      bool
	RetinaFramebuffer   bool
	GraphicsSwitching   bool
}

// presentationHints derives the window hints for the config on the given OS.
func presentationHints(cfg WindowConfig, dpiScale float32, goos string) Hints {
	h := Hints{
		Decorated: !cfg.Borderless,
		Resizable: true,
		Visible:   true,
	}

	if goos == "darwin" {
		h.ScaleToMonitor = dpiScale > 1.0
		h.RetinaFramebuffer = dpiScale > 1.0
	}

	switch cfg.RenderAPI {
	case RenderAPIOpenGL:
		h.ContextVersionMajor = 4
		h.ContextVersionMinor = 1
		h.CoreProfile = true
		if goos == "darwin" {
			h.Samples = 1
			h.ForwardCompat = true
			h.GraphicsSwitching = true
			// 16 bit stencil otherwise
			h.StencilBits = 8
			h.SRGBCapable = true
		}
	case RenderAPIVulkan:
		h.NoClientAPI = true
	}
	return h
}
