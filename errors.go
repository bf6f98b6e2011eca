package shader

import (
	"errors"
	"fmt"
)

// ErrProgramDeleted is returned by Reload after Delete.
var ErrProgramDeleted = errors.New("shader program deleted")

// SourceError reports a shader source file that could not be read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("read shader source %q: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// CompileError reports a stage that failed to compile. Log holds the
// driver's diagnostic text verbatim.
type CompileError struct {
	Stage StageKind
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader %s compilation failed:\n%s", e.Stage, e.Log)
}

// LinkError reports a program that failed to link after both stages compiled.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader PROGRAM linking failed:\n%s", e.Log)
}

// DecodeError reports a diagnostic log that is not valid UTF-8 text.
// Tag is the stage or PROGRAM whose log was being read.
type DecodeError struct {
	Tag string
	Raw []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("shader %s diagnostic log is not valid UTF-8 (%d bytes)", e.Tag, len(e.Raw))
}
