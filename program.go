package shader

import (
	"errors"
	"fmt"
)

// Program owns one linked GPU program built from a vertex and a fragment
// source file. The handle is replaced on Reload while the Program value
// stays the same, so callers can keep a *Program across reloads.
//
// A Program must only be used from the thread that owns the driver's
// context.
type Program struct {
	driver Driver
	engine *Engine
	set    settings

	handle       uint32
	vertexPath   string
	fragmentPath string

	// Sources of the last successful link, used to restore the program
	// object after a failed in-place relink.
	linkedVertex, linkedFragment string

	active     bool
	deleted    bool
	generation int
}

// New reads both source files, builds a program from them and returns it.
// Nothing is bound as the current program.
//
// Compile and link failures are returned as *CompileError or *LinkError.
// Unreadable sources and undecodable diagnostics are fatal under FailFast
// and returned under ReturnErrors.
func New(d Driver, vertexPath, fragmentPath string, opts ...Option) (*Program, error) {
	set := newSettings(opts)
	p := &Program{
		driver:       d,
		engine:       &Engine{driver: d, set: set},
		set:          set,
		vertexPath:   vertexPath,
		fragmentPath: fragmentPath,
	}

	vertexSrc, fragmentSrc, err := p.readSources()
	if err != nil {
		return nil, p.set.fail(err)
	}

	handle, err := p.engine.build(vertexSrc, fragmentSrc)
	if err != nil {
		err = fmt.Errorf("build shader program (%s + %s): %w", vertexPath, fragmentPath, err)
		var de *DecodeError
		if errors.As(err, &de) {
			return nil, p.set.fail(err)
		}
		return nil, err
	}
	p.handle = handle
	p.linkedVertex, p.linkedFragment = vertexSrc, fragmentSrc
	return p, nil
}

// Handle returns the current driver program handle.
func (p *Program) Handle() uint32 { return p.handle }

// VertexPath returns the vertex source path given to New.
func (p *Program) VertexPath() string { return p.vertexPath }

// FragmentPath returns the fragment source path given to New.
func (p *Program) FragmentPath() string { return p.fragmentPath }

// Generation returns the number of successful reloads.
func (p *Program) Generation() int { return p.generation }

// Active reports whether the program was last bound by Activate.
func (p *Program) Active() bool { return p.active }

// Activate binds the program as the current rendering program.
func (p *Program) Activate() {
	if p.deleted {
		return
	}
	p.driver.UseProgram(p.handle)
	p.active = true
}

// Deactivate unbinds any current program.
func (p *Program) Deactivate() {
	p.driver.UseProgram(0)
	p.active = false
}

// Reload re-reads both source files and builds a new program from them.
// On success the new handle replaces the old one, the old program is
// deleted and, if the program was active, the new one is bound.
//
// On failure the previous handle stays in place. Under FailFast the failure
// terminates the process through the FatalFunc; under ReturnErrors it is
// returned.
func (p *Program) Reload() error {
	if p.deleted {
		return ErrProgramDeleted
	}
	p.set.logger.Info("reloading shader", "vertex", p.vertexPath, "fragment", p.fragmentPath)

	vertexSrc, fragmentSrc, err := p.readSources()
	if err != nil {
		return p.set.fail(fmt.Errorf("reload shader program: %w", err))
	}

	var handle uint32
	if p.set.inPlace {
		handle, err = p.engine.rebuild(p.handle, vertexSrc, fragmentSrc)
	} else {
		handle, err = p.engine.build(vertexSrc, fragmentSrc)
	}
	if err != nil {
		if p.set.inPlace {
			p.restoreLinked()
		}
		return p.set.fail(fmt.Errorf("reload shader program (%s + %s): %w", p.vertexPath, p.fragmentPath, err))
	}

	old := p.handle
	p.handle = handle
	p.linkedVertex, p.linkedFragment = vertexSrc, fragmentSrc
	p.generation++
	if p.active {
		p.driver.UseProgram(handle)
	}
	if old != handle {
		p.driver.DeleteProgram(old)
	}
	p.set.logger.Debug("shader reloaded", "handle", handle, "generation", p.generation)
	return nil
}

// Delete releases the program. It is safe to call more than once; after
// Delete, Activate is a no-op and Reload returns ErrProgramDeleted.
func (p *Program) Delete() {
	if p.deleted {
		return
	}
	if p.active {
		p.driver.UseProgram(0)
		p.active = false
	}
	p.driver.DeleteProgram(p.handle)
	p.handle = 0
	p.deleted = true
}

// restoreLinked relinks the last good sources into the current program
// object if a failed in-place relink left it unlinked. A compile failure
// never reaches the program object, so nothing is done then.
func (p *Program) restoreLinked() {
	if p.driver.ProgramLinkStatus(p.handle) == True {
		return
	}
	if _, err := p.engine.rebuild(p.handle, p.linkedVertex, p.linkedFragment); err != nil {
		p.set.logger.Error("restore shader program after failed relink", "handle", p.handle, "err", err)
		return
	}
	if p.active {
		p.driver.UseProgram(p.handle)
	}
}

func (p *Program) readSources() (vertexSrc, fragmentSrc string, err error) {
	vertexSrc, err = ReadSource(p.vertexPath)
	if err != nil {
		return "", "", err
	}
	fragmentSrc, err = ReadSource(p.fragmentPath)
	if err != nil {
		return "", "", err
	}
	return vertexSrc, fragmentSrc, nil
}
