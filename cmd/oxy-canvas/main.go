// Command oxy-canvas opens a GLFW window with a managed WebGPU canvas whose clear color follows
// the cursor, wheel and keyboard.
package main

import (
	"flag"

	"github.com/Carmen-Shannon/oxy-canvas/engine"
	"github.com/Carmen-Shannon/oxy-canvas/engine/canvas"
	"github.com/Carmen-Shannon/oxy-canvas/engine/profiler"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
	"github.com/Carmen-Shannon/oxy-canvas/engine/window"
	"github.com/kataras/golog"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (default "+defaultConfigPath+" if present)")
	flag.Parse()

	config, err := LoadConfig(*configPath)
	if err != nil {
		golog.Fatalf("load config: %v", err)
	}
	golog.SetLevel(config.Log.Level)

	if err := run(config); err != nil {
		golog.Fatal(err)
	}
}

func run(config Config) error {
	win, err := window.NewWindow(
		window.WithTitle(config.Window.Title),
		window.WithSize(config.Window.Width, config.Window.Height),
		window.WithMinSize(config.Window.MinWidth, config.Window.MinHeight),
		window.WithMaxSize(config.Window.MaxWidth, config.Window.MaxHeight),
	)
	if err != nil {
		return err
	}

	mode, _ := renderer.ParsePresentMode(config.Renderer.PresentMode)
	color := config.Renderer.ClearColor
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		renderer.WithPresentMode(mode),
		renderer.WithClearColor(color[0], color[1], color[2], color[3]),
		renderer.WithForceSoftwareRenderer(config.Renderer.Software),
	)

	d := newDemo(color)
	options := []canvas.CanvasBuilderOption{
		canvas.WithLocksCursor(config.Canvas.LocksCursor),
		canvas.WithEdgeSuppression(func() bool { return !win.Focused() }),
		canvas.WithOnResize(func(_ renderer.Renderer, width, height int) {
			golog.Debugf("canvas resized to %dx%d", width, height)
		}),
		canvas.WithOnDraw(d.draw),
	}
	if config.Canvas.Profiling {
		options = append(options, canvas.WithProfiler(profiler.NewProfiler()))
	}

	e := engine.NewEngine(
		engine.WithHost(win),
		engine.WithCanvas(0, canvas.New(win, win, r, options...)),
		engine.WithFrameLimit(config.Canvas.FrameLimit),
	)
	return e.Run()
}
