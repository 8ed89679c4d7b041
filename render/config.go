package render

import (
	"flag"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
)

// SwapchainExtension is the device extension every presenting stage needs.
const SwapchainExtension = "VK_KHR_swapchain"

// Config is fixed before setup starts and passed down by value.
type Config struct {
	AppName string

	WindowWidth  int
	WindowHeight int

	EnableValidation bool
	ValidationLayers []string

	DeviceExtensions []string
	RequiredQueues   QueueFlags

	MaxFramesInFlight int

	VertexShaderPath   string
	FragmentShaderPath string

	ClearColor mgl32.Vec4
}

func DefaultConfig() Config {
	return Config{
		AppName:      "Hello Triangle",
		WindowWidth:  800,
		WindowHeight: 600,

		EnableValidation: validationByDefault,
		ValidationLayers: []string{"VK_LAYER_KHRONOS_validation"},

		DeviceExtensions: []string{SwapchainExtension},
		RequiredQueues:   QueueGraphics,

		MaxFramesInFlight: 2,

		VertexShaderPath:   "shaders/vert.spv",
		FragmentShaderPath: "shaders/frag.spv",

		ClearColor: mgl32.Vec4{0, 0, 0, 1},
	}
}

// WindowExtent is the size requested when the surface lets the application
// choose the swapchain extent.
func (c Config) WindowExtent() Extent {
	return Extent{Width: uint32(c.WindowWidth), Height: uint32(c.WindowHeight)}
}

// BindFlags registers command line overrides for c on fs.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.WindowWidth, "width", c.WindowWidth, "window width")
	fs.IntVar(&c.WindowHeight, "height", c.WindowHeight, "window height")
	fs.BoolVar(&c.EnableValidation, "validation", c.EnableValidation, "enable Vulkan validation layers")
	fs.Func("layers", "comma separated validation layers", func(value string) error {
		c.ValidationLayers = splitList(value)
		return nil
	})
	fs.IntVar(&c.MaxFramesInFlight, "frames-in-flight", c.MaxFramesInFlight, "frames the CPU may run ahead of the GPU")
	fs.StringVar(&c.VertexShaderPath, "vert", c.VertexShaderPath, "compiled vertex shader")
	fs.StringVar(&c.FragmentShaderPath, "frag", c.FragmentShaderPath, "compiled fragment shader")
}

func splitList(value string) []string {
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func (c Config) Validate() error {
	var problems []string

	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		problems = append(problems, "window size must be positive")
	}
	if c.MaxFramesInFlight < 1 {
		problems = append(problems, "frames in flight must be at least 1")
	}
	if c.RequiredQueues == 0 {
		problems = append(problems, "no queue capabilities required")
	}
	if c.EnableValidation && len(c.ValidationLayers) == 0 {
		problems = append(problems, "validation enabled without layers")
	}
	for i, color := range c.ClearColor {
		if color < 0 || color > 1 {
			problems = append(problems, "clear color component "+"rgba"[i:i+1]+" out of [0,1]")
		}
	}

	if len(problems) > 0 {
		return errors.Mark(errors.Newf("%s", strings.Join(problems, "; ")), ErrInvalidConfig)
	}
	return nil
}
