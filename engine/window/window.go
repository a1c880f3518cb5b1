package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and keyboard input for a presenting surface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key
	SetKeyDownCallback(callback func(key Key))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key
	SetKeyUpCallback(callback func(key Key))

	// KeyPressed reports whether key is currently held. Safe to call from any goroutine.
	KeyPressed(key Key) bool

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	// minWidth and minHeight bound interactive resizing.
	minWidth, minHeight int

	width, height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	keysMu *sync.Mutex
	held   map[Key]struct{}

	onUpdate  func()
	onResize  func(width, height int)
	onKeyDown func(key Key)
	onKeyUp   func(key Key)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "Volume Pass",
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
		keysMu:    &sync.Mutex{},
		held:      make(map[Key]struct{}),
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(key Key)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(key Key)) {
	w.onKeyUp = callback
}

func (w *engineWindow) KeyPressed(key Key) bool {
	w.keysMu.Lock()
	defer w.keysMu.Unlock()
	_, ok := w.held[key]
	return ok
}

// keyDown records key as held and fires the key down callback.
func (w *engineWindow) keyDown(key Key) {
	w.keysMu.Lock()
	w.held[key] = struct{}{}
	w.keysMu.Unlock()
	if w.onKeyDown != nil {
		w.onKeyDown(key)
	}
}

func (w *engineWindow) keyUp(key Key) {
	w.keysMu.Lock()
	delete(w.held, key)
	w.keysMu.Unlock()
	if w.onKeyUp != nil {
		w.onKeyUp(key)
	}
}

// releaseKeys clears every held key, firing the key up callback for each.
func (w *engineWindow) releaseKeys() {
	w.keysMu.Lock()
	keys := make([]Key, 0, len(w.held))
	for k := range w.held {
		keys = append(keys, k)
	}
	clear(w.held)
	w.keysMu.Unlock()

	if w.onKeyUp == nil {
		return
	}
	for _, k := range keys {
		w.onKeyUp(k)
	}
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
