package shader

import (
	"bytes"
	"errors"
	"unicode/utf8"
)

// LogCapacity is the size of the buffer handed to the driver for a
// diagnostic log. One byte is reserved for the terminating NUL, so at most
// LogCapacity-1 bytes of text are kept.
const LogCapacity = 512

// Engine compiles shader stages and links them into programs.
//
// Stages are owned by the engine for the duration of a build and are
// released on every exit path once linking has been attempted, unless
// WithLegacyStageLeaks is set.
type Engine struct {
	driver Driver
	set    settings
}

// NewEngine returns an Engine that issues calls to d.
func NewEngine(d Driver, opts ...Option) *Engine {
	return &Engine{driver: d, set: newSettings(opts)}
}

// CompileStage compiles src as a stage of the given kind and returns the
// unlinked stage handle. The caller owns the stage.
func (e *Engine) CompileStage(src string, kind StageKind) (uint32, error) {
	stage, err := e.compileStage(src, kind)
	return stage, e.decodeFatal(err)
}

// Build compiles both stages and links them into a new program.
// A vertex error is reported before a fragment error, and both before a
// link error.
func (e *Engine) Build(vertexSrc, fragmentSrc string) (uint32, error) {
	program, err := e.build(vertexSrc, fragmentSrc)
	return program, e.decodeFatal(err)
}

// Rebuild compiles both stages, attaches them to the existing program and
// relinks it in place. It returns program on success.
func (e *Engine) Rebuild(program uint32, vertexSrc, fragmentSrc string) (uint32, error) {
	program, err := e.rebuild(program, vertexSrc, fragmentSrc)
	return program, e.decodeFatal(err)
}

func (e *Engine) compileStage(src string, kind StageKind) (uint32, error) {
	d := e.driver
	stage := d.CreateShader(kind)
	d.ShaderSource(stage, src)
	d.CompileShader(stage)

	if d.ShaderCompileStatus(stage) == True {
		return stage, nil
	}

	text, err := e.readLog(kind.String(), func(buf []byte) int {
		return d.ShaderInfoLog(stage, buf)
	})
	if !e.set.legacyLeak {
		d.DeleteShader(stage)
	}
	if err != nil {
		return 0, err
	}
	e.set.logger.Debug("shader stage failed to compile", "stage", kind, "handle", stage)
	return 0, &CompileError{Stage: kind, Log: text}
}

func (e *Engine) compilePair(vertexSrc, fragmentSrc string) (vs, fs uint32, err error) {
	vs, err = e.compileStage(vertexSrc, Vertex)
	if err != nil {
		return 0, 0, err
	}
	fs, err = e.compileStage(fragmentSrc, Fragment)
	if err != nil {
		if !e.set.legacyLeak {
			e.driver.DeleteShader(vs)
		}
		return 0, 0, err
	}
	return vs, fs, nil
}

func (e *Engine) build(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, fs, err := e.compilePair(vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}

	program := e.driver.CreateProgram()
	if err := e.link(program, vs, fs); err != nil {
		if !e.set.legacyLeak {
			e.driver.DeleteProgram(program)
		}
		return 0, err
	}
	e.set.logger.Debug("shader program linked", "handle", program)
	return program, nil
}

func (e *Engine) rebuild(program uint32, vertexSrc, fragmentSrc string) (uint32, error) {
	vs, fs, err := e.compilePair(vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}
	if err := e.link(program, vs, fs); err != nil {
		return 0, err
	}
	e.set.logger.Debug("shader program relinked", "handle", program)
	return program, nil
}

// link attaches vs and fs to program and links it. The stages are always
// detached afterwards, so a later relink sees one stage of each kind. They
// are deleted too, except after a failed link with legacy leaks enabled.
func (e *Engine) link(program, vs, fs uint32) error {
	d := e.driver
	d.AttachShader(program, vs)
	d.AttachShader(program, fs)
	d.LinkProgram(program)

	var err error
	if d.ProgramLinkStatus(program) != True {
		text, lerr := e.readLog("PROGRAM", func(buf []byte) int {
			return d.ProgramInfoLog(program, buf)
		})
		if lerr != nil {
			err = lerr
		} else {
			err = &LinkError{Log: text}
		}
		e.set.logger.Debug("shader program failed to link", "handle", program)
	}

	d.DetachShader(program, vs)
	d.DetachShader(program, fs)
	if err != nil && e.set.legacyLeak {
		return err
	}
	d.DeleteShader(vs)
	d.DeleteShader(fs)
	return err
}

// readLog reads a diagnostic log through fill into a LogCapacity buffer.
// The text ends at the reported length or the first NUL, whichever is first.
func (e *Engine) readLog(tag string, fill func(buf []byte) int) (string, error) {
	buf := make([]byte, LogCapacity)
	n := fill(buf)
	n = max(0, min(n, LogCapacity-1))
	raw := buf[:n]
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	if !utf8.Valid(raw) {
		return "", &DecodeError{Tag: tag, Raw: bytes.Clone(raw)}
	}
	return string(raw), nil
}

// decodeFatal applies the failure policy to undecodable diagnostics.
// Compile and link errors pass through untouched.
func (e *Engine) decodeFatal(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return e.set.fail(err)
	}
	return err
}
