package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// ErrWindowNotInitialized is returned when closing a window whose GLFW handle was never created.
var ErrWindowNotInitialized = errors.New("window is not initialized")

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	handle  *glfw.Window
	running bool
}

// newPlatformWindow opens a client-API-less GLFW window, so WebGPU owns the surface, and
// routes its key, focus and framebuffer events into w.
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}

	gw := &glfwWindow{parent: w, handle: handle, running: true}
	w.internalWindow = gw

	handle.SetSizeLimits(w.minWidth, w.minHeight, glfw.DontCare, glfw.DontCare)
	handle.SetKeyCallback(gw.onKey)
	handle.SetFocusCallback(gw.onFocus)
	handle.SetFramebufferSizeCallback(gw.onFramebufferSize)

	// The surface is configured in pixels, which differ from screen coordinates on high-DPI displays.
	w.width, w.height = handle.GetFramebufferSize()
	return nil
}

// onKey quits on Escape and otherwise forwards press, repeat and release as held-key changes.
func (gw *glfwWindow) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		gw.stop()
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		gw.parent.keyDown(Key(key))
	case glfw.Release:
		gw.parent.keyUp(Key(key))
	}
}

// onFocus drops held keys when focus is lost; GLFW never delivers their releases.
func (gw *glfwWindow) onFocus(_ *glfw.Window, focused bool) {
	if !focused {
		gw.parent.releaseKeys()
	}
}

func (gw *glfwWindow) onFramebufferSize(_ *glfw.Window, width, height int) {
	w := gw.parent
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (gw *glfwWindow) stop() {
	gw.running = false
	gw.handle.SetShouldClose(true)
}

func (gw *glfwWindow) alive() bool {
	return gw.running && !gw.handle.ShouldClose()
}

// platformWindow returns the GLFW state of w, or false before newPlatformWindow succeeded.
func platformWindow(w *engineWindow) (*glfwWindow, bool) {
	gw, ok := w.internalWindow.(*glfwWindow)
	return gw, ok && gw != nil
}

// platformGetSurfaceDescriptor returns the WebGPU surface descriptor for the window's native handle.
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := platformWindow(w)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.handle)
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := platformWindow(w)
	return ok && gw.alive()
}

// platformCloseWindow destroys the window and terminates GLFW.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: ErrWindowNotInitialized if the window was never created
func platformCloseWindow(w *engineWindow) error {
	gw, ok := platformWindow(w)
	if !ok {
		return ErrWindowNotInitialized
	}
	gw.stop()
	gw.handle.Destroy()
	w.internalWindow = nil
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls pending events without blocking and reports whether the window is still open.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
