package engine

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-canvas/engine/canvas"
	"github.com/Carmen-Shannon/oxy-canvas/engine/host"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/hashicorp/go-multierror"
	"github.com/kataras/golog"
)

var logger = golog.Child("[engine]")

// ErrNoHost is returned by Run when the engine was built without a host.
var ErrNoHost = errors.New("engine has no host")

// Host is a host that also owns the UI thread message loop. window.Window satisfies it.
type Host interface {
	host.Host

	// Pump processes pending host messages and runs due frame callbacks.
	//
	// Returns:
	//   - bool: false once the host has shut down
	Pump() bool

	// Close releases the host.
	//
	// Returns:
	//   - error: error if the host could not be closed
	Close() error
}

// engine implements the Engine interface.
type engine struct {
	host Host

	canvases map[int]*canvas.Canvas

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	frameLimit time.Duration // minimum pump duration; 0 = uncapped
}

// Engine is the main entry point. It mounts canvases on a host and pumps the host message loop
// on the calling thread until the host shuts down or Quit is called.
type Engine interface {
	// Host returns the underlying host.
	//
	// Returns:
	//   - Host: the host instance
	Host() Host

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// AddCanvas registers a canvas at the given key. Canvases are mounted in ascending key order
	// when Run starts and unmounted in descending order when it returns.
	//
	// Parameters:
	//   - key: the ordering key
	//   - c: the canvas to register
	AddCanvas(key int, c *canvas.Canvas)

	// RemoveCanvas unmounts and removes the canvas at the given key.
	//
	// Parameters:
	//   - key: the key of the canvas to remove
	//
	// Returns:
	//   - error: error from unmounting the canvas
	RemoveCanvas(key int) error

	// Canvas retrieves the canvas registered at the given key.
	// Returns nil if no canvas exists at that key.
	//
	// Parameters:
	//   - key: the key of the canvas to retrieve
	//
	// Returns:
	//   - *canvas.Canvas: the canvas at the key, or nil if not found
	Canvas(key int) *canvas.Canvas

	// Run mounts every canvas and pumps the host until it shuts down or Quit is called, then
	// unmounts every canvas and closes the host. It must be called from the thread that created
	// the host.
	//
	// Returns:
	//   - error: a *surface.InvariantError if a canvas lost its surface mid-lifecycle, plus any
	//     teardown errors
	Run() error

	// Quit stops Run after the current pump. Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		canvases:    make(map[int]*canvas.Canvas),
		quitChannel: make(chan struct{}),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Host() Host {
	return e.host
}

func (e *engine) SetFrameLimit(fps float64) {
	e.frameLimit = frameDuration(fps)
}

func (e *engine) AddCanvas(key int, c *canvas.Canvas) {
	e.canvases[key] = c
}

func (e *engine) RemoveCanvas(key int) error {
	c, ok := e.canvases[key]
	if !ok {
		return nil
	}
	delete(e.canvases, key)
	return c.Unmount()
}

func (e *engine) Canvas(key int) *canvas.Canvas {
	return e.canvases[key]
}

func (e *engine) Run() error {
	if e.host == nil {
		return ErrNoHost
	}

	var result *multierror.Error
	if err := e.loop(); err != nil {
		result = multierror.Append(result, err)
	}

	keys := e.keys()
	slices.Reverse(keys)
	for _, k := range keys {
		if err := e.canvases[k].Unmount(); err != nil {
			result = multierror.Append(result, fmt.Errorf("unmount canvas %d: %w", k, err))
		}
	}
	if err := e.host.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close host: %w", err))
	}
	logger.Info("engine stopped")
	return result.ErrorOrNil()
}

// Quit signals Run to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// loop mounts the canvases and pumps the host. A panic raised by a frame or observer callback
// ends the loop and is returned as an error.
func (e *engine) loop() (err error) {
	defer func() {
		if r := recover(); r != nil {
			var ie *surface.InvariantError
			if recovered, ok := r.(error); ok && errors.As(recovered, &ie) {
				err = ie
			} else {
				err = fmt.Errorf("frame loop panic: %v", r)
			}
			logger.Errorf("frame loop stopped: %v", err)
		}
	}()

	for _, k := range e.keys() {
		e.canvases[k].Mount()
	}
	logger.Infof("engine running with %d canvas(es)", len(e.canvases))

	for {
		select {
		case <-e.quitChannel:
			return nil
		default:
		}

		start := time.Now()
		if !e.host.Pump() {
			return nil
		}

		if e.frameLimit > 0 {
			if remaining := e.frameLimit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
		runtime.Gosched()
	}
}

// keys returns the canvas keys in ascending order.
func (e *engine) keys() []int {
	keys := make([]int, 0, len(e.canvases))
	for k := range e.canvases {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
