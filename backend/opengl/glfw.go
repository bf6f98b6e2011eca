package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a live-editing command triggered from the keyboard.
type Action int

const (
	ActionNone Action = iota
	ActionReload
	ActionToggle
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionReload:
		return "reload"
	case ActionToggle:
		return "toggle"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// GLFWKeyAdapter turns GLFW key presses into Actions.
//
// Key callbacks run inside glfw.PollEvents on the main thread, so queued
// actions can be drained right after polling without synchronization.
type GLFWKeyAdapter struct {
	window  *glfw.Window
	pending []Action
}

// NewGLFWKeyAdapter installs a key callback on window.
func NewGLFWKeyAdapter(window *glfw.Window) *GLFWKeyAdapter {
	adapter := &GLFWKeyAdapter{window: window}
	window.SetKeyCallback(adapter.keyCallback)
	return adapter
}

// Actions returns the actions queued since the last call.
// Call this once per frame after glfw.PollEvents.
func (a *GLFWKeyAdapter) Actions() []Action {
	out := a.pending
	a.pending = nil
	return out
}

func (a *GLFWKeyAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	act := glfwKeyToAction(key, mods)
	if act == ActionNone {
		return
	}
	a.pending = append(a.pending, act)
}

// glfwKeyToAction maps GLFW keys to live-editing actions.
// F5 and Ctrl+R reload, F6 toggles the program, Escape quits.
func glfwKeyToAction(key glfw.Key, mods glfw.ModifierKey) Action {
	switch key {
	case glfw.KeyF5:
		return ActionReload
	case glfw.KeyR:
		if mods&glfw.ModControl != 0 {
			return ActionReload
		}
	case glfw.KeyF6:
		return ActionToggle
	case glfw.KeyEscape:
		return ActionQuit
	}
	return ActionNone
}
