// Package opengl provides the OpenGL 4.1 backend for the shader package:
// a shader.Driver over go-gl, a fullscreen quad to draw with a program,
// a uniform location cache and a GLFW key adapter for live editing.
package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/shader"
)

// Driver implements shader.Driver with the current OpenGL context.
// gl.Init must have been called on the thread that owns the context.
type Driver struct{}

var _ shader.Driver = Driver{}

// NewDriver returns a Driver for the current context.
func NewDriver() Driver { return Driver{} }

func stageType(kind shader.StageKind) uint32 {
	if kind == shader.Fragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// CreateShader creates a shader object of the given stage.
func (Driver) CreateShader(kind shader.StageKind) uint32 {
	return gl.CreateShader(stageType(kind))
}

// ShaderSource replaces the source of shader s.
func (Driver) ShaderSource(s uint32, source string) {
	// gl.Strs needs NUL-terminated strings.
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s, 1, csource, nil)
	free()
}

// CompileShader compiles shader s.
func (Driver) CompileShader(s uint32) { gl.CompileShader(s) }

// ShaderCompileStatus returns COMPILE_STATUS of shader s.
func (Driver) ShaderCompileStatus(s uint32) int32 {
	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	return status
}

// ShaderInfoLog copies the compile log of s into buf.
func (Driver) ShaderInfoLog(s uint32, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	var n int32
	gl.GetShaderInfoLog(s, int32(len(buf)), &n, &buf[0])
	return int(n)
}

// DeleteShader flags shader s for deletion.
func (Driver) DeleteShader(s uint32) { gl.DeleteShader(s) }

// CreateProgram creates an empty program object.
func (Driver) CreateProgram() uint32 { return gl.CreateProgram() }

// AttachShader attaches shader s to program.
func (Driver) AttachShader(program, s uint32) { gl.AttachShader(program, s) }

// DetachShader detaches shader s from program.
func (Driver) DetachShader(program, s uint32) { gl.DetachShader(program, s) }

// LinkProgram links program.
func (Driver) LinkProgram(program uint32) { gl.LinkProgram(program) }

// ProgramLinkStatus returns LINK_STATUS of program.
func (Driver) ProgramLinkStatus(program uint32) int32 {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status
}

// ProgramInfoLog copies the link log of program into buf.
func (Driver) ProgramInfoLog(program uint32, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	var n int32
	gl.GetProgramInfoLog(program, int32(len(buf)), &n, &buf[0])
	return int(n)
}

// DeleteProgram deletes program.
func (Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

// UseProgram binds program as current; 0 unbinds.
func (Driver) UseProgram(program uint32) { gl.UseProgram(program) }
