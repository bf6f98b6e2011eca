package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Uniforms caches uniform locations for one program handle. When the handle
// changes, e.g. after shader.Program.Reload, the cache is dropped and
// locations are looked up again.
type Uniforms struct {
	program uint32
	cache   map[string]int32
	locate  func(program uint32, name string) int32
}

// NewUniforms returns a cache that looks locations up with OpenGL.
func NewUniforms() *Uniforms {
	return &Uniforms{
		cache: make(map[string]int32),
		locate: func(program uint32, name string) int32 {
			return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		},
	}
}

// Location returns the location of name in program, or -1 if the program
// has no active uniform by that name.
func (u *Uniforms) Location(program uint32, name string) int32 {
	if program != u.program {
		u.program = program
		clear(u.cache)
	}
	loc, ok := u.cache[name]
	if !ok {
		loc = u.locate(program, name)
		u.cache[name] = loc
	}
	return loc
}

// Float sets a float uniform on the currently bound program.
// Inactive uniforms are skipped.
func (u *Uniforms) Float(program uint32, name string, v float32) {
	if loc := u.Location(program, name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

// Vec2 sets a vec2 uniform on the currently bound program.
func (u *Uniforms) Vec2(program uint32, name string, x, y float32) {
	if loc := u.Location(program, name); loc >= 0 {
		gl.Uniform2f(loc, x, y)
	}
}
