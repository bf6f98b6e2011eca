package opengl

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestGLFWKeyToAction(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		mods glfw.ModifierKey
		want Action
	}{
		{glfw.KeyF5, 0, ActionReload},
		{glfw.KeyR, glfw.ModControl, ActionReload},
		{glfw.KeyR, 0, ActionNone},
		{glfw.KeyF6, 0, ActionToggle},
		{glfw.KeyEscape, glfw.ModShift, ActionQuit},
		{glfw.KeyA, 0, ActionNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, glfwKeyToAction(tt.key, tt.mods), "key %v mods %v", tt.key, tt.mods)
	}
}

func TestKeyAdapterQueuesPresses(t *testing.T) {
	a := &GLFWKeyAdapter{}
	a.keyCallback(nil, glfw.KeyF5, 0, glfw.Press, 0)
	a.keyCallback(nil, glfw.KeyF5, 0, glfw.Release, 0)
	a.keyCallback(nil, glfw.KeyF6, 0, glfw.Repeat, 0)
	a.keyCallback(nil, glfw.KeyEscape, 0, glfw.Press, 0)

	assert.Equal(t, []Action{ActionReload, ActionQuit}, a.Actions())
	assert.Empty(t, a.Actions())
}

func TestUniformsCachePerProgram(t *testing.T) {
	lookups := 0
	u := &Uniforms{
		cache: make(map[string]int32),
		locate: func(program uint32, name string) int32 {
			lookups++
			if name == "missing" {
				return -1
			}
			return int32(program)*10 + int32(len(name))
		},
	}

	assert.Equal(t, int32(15), u.Location(1, "iTime"))
	assert.Equal(t, int32(15), u.Location(1, "iTime"))
	assert.Equal(t, int32(-1), u.Location(1, "missing"))
	assert.Equal(t, 2, lookups)

	// A reloaded program gets a new handle; cached locations are stale.
	assert.Equal(t, int32(25), u.Location(2, "iTime"))
	assert.Equal(t, 3, lookups)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "reload", ActionReload.String())
	assert.Equal(t, "none", Action(42).String())
}
