package engine

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/camera"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/profiler"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/window"
	"go.uber.org/zap"
)

// targetImporter imports a frame's render targets into a graph.
type targetImporter interface {
	ImportTargets(g *graph.Graph, intermediate bool) renderer.Targets
}

// engine implements the Engine interface.
// Coordinates the tick, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer
	logger   *zap.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	// mu guards the camera and feature lists, which the tick goroutine may change.
	mu          *sync.Mutex
	cameras     []camera.Camera
	features    []scheduler.RendererFeature
	scenePass   *hostPass
	postProcess *hostPass

	// graph and queue are reused by the render goroutine every camera frame.
	graph      *graph.Graph
	queue      *scheduler.Queue
	frameIndex uint64
	start      time.Time
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, the render loop, and window management. Every render
// frame it runs each camera through the registered renderer features, records the
// resulting passes into a frame graph and executes the graph on the renderer.
type Engine interface {
	// Window returns the underlying window.
	Window() window.Window

	// Renderer returns the renderer frames are executed on.
	Renderer() renderer.Renderer

	// AddCamera registers a camera. Cameras render in registration order.
	//
	// Parameters:
	//   - c: the camera to add
	AddCamera(c camera.Camera)

	// RemoveCamera unregisters a camera.
	//
	// Parameters:
	//   - c: the camera to remove
	RemoveCamera(c camera.Camera)

	// Cameras returns a copy of the registered cameras.
	Cameras() []camera.Camera

	// AddFeature registers a renderer feature. Features are asked for passes in registration order.
	//
	// Parameters:
	//   - f: the feature to add
	AddFeature(f scheduler.RendererFeature)

	// SetSceneMaterial sets the material drawn as the scene before any feature pass.
	//
	// Parameters:
	//   - mat: the scene material, nil to draw nothing
	SetSceneMaterial(mat material.Material)

	// SetPostProcessMaterial sets the material of the post-processing stack, which runs between
	// BeforeRenderingPostProcessing and AfterRenderingPostProcessing on cameras with
	// post-processing enabled. It samples the active color target.
	//
	// Parameters:
	//   - mat: the post-process material, nil to disable
	SetPostProcessMaterial(mat material.Material)

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each render frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the engine loops and blocks until the window closes.
	//
	// Returns:
	//   - error: an error if the engine has no window or renderer
	Run() error

	// Quit signals all engine goroutines to stop and disposes every feature.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		logger:          zap.NewNop(),
		engineTickRate:  time.Second / 60,
		mu:              &sync.Mutex{},
		graph:           graph.NewGraph(),
		queue:           scheduler.NewQueue(),
		start:           time.Now(),
	}

	for _, opt := range options {
		opt(e)
	}
	e.profiler = profiler.NewProfiler(e.logger)

	if e.window != nil && e.renderer != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.renderer.Resize(width, height)
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) AddCamera(c camera.Camera) {
	if c == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cameras = append(e.cameras, c)
}

func (e *engine) RemoveCamera(c camera.Camera) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cameras = slices.DeleteFunc(e.cameras, func(x camera.Camera) bool { return x == c })
}

func (e *engine) Cameras() []camera.Camera {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.cameras)
}

func (e *engine) AddFeature(f scheduler.RendererFeature) {
	if f == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.features = append(e.features, f)
}

func (e *engine) SetSceneMaterial(mat material.Material) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenePass = nil
	if mat != nil {
		e.scenePass = newHostPass(scenePassName, scheduler.AfterRenderingTransparents, mat, false)
	}
}

func (e *engine) SetPostProcessMaterial(mat material.Material) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.postProcess = nil
	if mat != nil {
		e.postProcess = newHostPass(postProcessPassName, scheduler.RenderingPostProcessing, mat, true)
	}
}

func (e *engine) Run() error {
	if e.window == nil || e.renderer == nil {
		return errors.New("engine requires a window and a renderer")
	}
	e.running = true
	e.handle()
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
	return nil
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handle launches the tick, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleEngine()
	go e.handleRender()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("render goroutine recovered from panic", zap.Any("panic", r))
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			e.renderFrame()

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// renderFrame renders every camera into one command submission and presents it.
func (e *engine) renderFrame() {
	e.mu.Lock()
	cameras := slices.Clone(e.cameras)
	e.mu.Unlock()

	elapsed := float32(time.Since(e.start).Seconds())
	if err := e.renderer.BeginFrame(elapsed); err != nil {
		e.logger.Warn("skipping frame", zap.Uint64("frame", e.frameIndex), zap.Error(err))
		return
	}

	for _, c := range cameras {
		data := &frame.Data{Camera: c, Index: e.frameIndex, Time: elapsed}
		e.recordCamera(e.renderer, data)
		if err := e.graph.Execute(e.renderer); err != nil {
			e.logger.Error("frame graph execution failed",
				zap.String("camera", c.Name()),
				zap.Uint64("frame", e.frameIndex),
				zap.Error(err),
			)
		}
	}

	if err := e.renderer.EndFrame(); err != nil {
		e.logger.Error("failed to submit frame", zap.Uint64("frame", e.frameIndex), zap.Error(err))
	}
	e.renderer.Present()
	e.frameIndex++

	if e.profilingEnabled {
		stats := e.renderer.Stats()
		e.profiler.Tick(profiler.FrameStats{Passes: stats.Passes, Draws: stats.Draws, Blits: stats.Blits})
	}
}

// recordCamera builds the frame graph for one camera: it collects the passes of the scene,
// the post-processing stack and every feature, imports the targets they need, records them,
// and resolves an intermediate color target to the backbuffer.
func (e *engine) recordCamera(targets targetImporter, data *frame.Data) {
	e.mu.Lock()
	features := slices.Clone(e.features)
	scenePass, postProcess := e.scenePass, e.postProcess
	e.mu.Unlock()

	e.queue.Reset()
	if scenePass != nil {
		e.queue.EnqueuePass(scenePass)
	}
	if postProcess != nil && data.PostProcessEnabled() {
		e.queue.EnqueuePass(postProcess)
	}
	for _, f := range features {
		f.AddRenderPasses(e.queue, data)
	}

	e.graph.Reset()
	t := targets.ImportTargets(e.graph, e.queue.RequiresIntermediateTexture())
	data.Resources = t.Resources

	e.queue.Record(e.graph, data)

	if data.Resources.ActiveColor == t.CameraColor && t.BackBuffer.IsValid() {
		addBlitPass(e.graph, finalBlitPassName, t.CameraColor, t.BackBuffer)
	}
}

// handleQuit blocks until the quit channel is closed, then disposes every feature.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, f := range e.features {
		f.Dispose()
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if !e.running {
		e.engineTickRate = newRate
		return
	}
	// Non-blocking send; a pending update is replaced by the new value.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}
