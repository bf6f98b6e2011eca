package shader

// StageKind identifies a shader pipeline stage.
type StageKind int

const (
	Vertex StageKind = iota
	Fragment
)

// String returns the tag used in diagnostics.
func (k StageKind) String() string {
	switch k {
	case Vertex:
		return "VERTEX"
	case Fragment:
		return "FRAGMENT"
	default:
		return "UNKNOWN"
	}
}

// Status values reported by a Driver for compile and link queries.
// Only True counts as success.
const (
	False int32 = 0
	True  int32 = 1
)

// Driver is the GPU context the engine and Program talk to.
// The context must already exist and be current on the calling thread;
// implementations are not expected to be safe for concurrent use.
//
// backend/opengl provides the OpenGL implementation.
type Driver interface {
	CreateShader(kind StageKind) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompileStatus(shader uint32) int32
	// ShaderInfoLog copies at most len(buf)-1 bytes of the compile log into
	// buf followed by a NUL and returns the number of bytes copied.
	ShaderInfoLog(shader uint32, buf []byte) int
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinkStatus(program uint32) int32
	// ProgramInfoLog behaves like ShaderInfoLog for the link log.
	ProgramInfoLog(program uint32, buf []byte) int
	DeleteProgram(program uint32)

	// UseProgram binds program as current; 0 unbinds.
	UseProgram(program uint32)
}
