package window

import "github.com/go-gl/glfw/v3.3/glfw"

// Key is a keyboard key. Values match GLFW key codes.
type Key int

// Keys used by the camera controls and effect toggles.
const (
	KeyW      = Key(glfw.KeyW)
	KeyA      = Key(glfw.KeyA)
	KeyS      = Key(glfw.KeyS)
	KeyD      = Key(glfw.KeyD)
	KeyQ      = Key(glfw.KeyQ)
	KeyE      = Key(glfw.KeyE)
	KeyP      = Key(glfw.KeyP)
	KeyR      = Key(glfw.KeyR)
	KeySpace  = Key(glfw.KeySpace)
	KeyEscape = Key(glfw.KeyEscape)

	Key1 = Key(glfw.Key1)
	Key2 = Key(glfw.Key2)
	Key3 = Key(glfw.Key3)
)
