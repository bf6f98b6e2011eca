// Package fakegl provides an in-memory shader.Driver for tests.
//
// Compilation fails when a source contains a "#error" directive, the same way
// a GLSL compiler rejects it. Linking fails unless exactly one vertex and one
// fragment stage are attached and every "in" variable the fragment stage
// declares has a matching "out" in the vertex stage. Object lifetimes follow
// OpenGL: a stage deleted while attached is freed once it is detached or its
// program is deleted.
package fakegl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-theft-auto/shader"
)

// Stage is a shader object.
type Stage struct {
	Kind     shader.StageKind
	Source   string
	Status   int32
	Log      string
	Attached int
	Deleted  bool
}

// Program is a program object.
type Program struct {
	Stages []uint32
	Status int32
	Log    string
	// Vertex and Fragment hold the sources of the last successful link.
	Vertex, Fragment string
}

// Driver is an in-memory shader.Driver. The zero value is not usable; use New.
type Driver struct {
	next     uint32
	stages   map[uint32]*Stage
	programs map[uint32]*Program

	// Current is the program last bound with UseProgram.
	Current uint32
	// UseCalls counts UseProgram calls.
	UseCalls int
	// Errors records invalid calls, e.g. binding an unknown program.
	Errors []string

	// LogOverride, when non-nil, is written instead of any diagnostic log.
	LogOverride []byte
}

var _ shader.Driver = (*Driver)(nil)

// New returns an empty driver.
func New() *Driver {
	return &Driver{
		stages:   make(map[uint32]*Stage),
		programs: make(map[uint32]*Program),
	}
}

func (d *Driver) id() uint32 {
	d.next++
	return d.next
}

func (d *Driver) errorf(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

func (d *Driver) CreateShader(kind shader.StageKind) uint32 {
	id := d.id()
	d.stages[id] = &Stage{Kind: kind, Status: shader.False}
	return id
}

func (d *Driver) ShaderSource(id uint32, source string) {
	s, ok := d.stages[id]
	if !ok {
		d.errorf("ShaderSource: unknown shader %d", id)
		return
	}
	s.Source = source
}

func (d *Driver) CompileShader(id uint32) {
	s, ok := d.stages[id]
	if !ok {
		d.errorf("CompileShader: unknown shader %d", id)
		return
	}
	for n, line := range strings.Split(s.Source, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#error") {
			s.Status = shader.False
			s.Log = fmt.Sprintf("0:%d(1): error: %s\n", n+1, line)
			return
		}
	}
	s.Status = shader.True
	s.Log = ""
}

func (d *Driver) ShaderCompileStatus(id uint32) int32 {
	s, ok := d.stages[id]
	if !ok {
		d.errorf("ShaderCompileStatus: unknown shader %d", id)
		return shader.False
	}
	return s.Status
}

func (d *Driver) ShaderInfoLog(id uint32, buf []byte) int {
	s, ok := d.stages[id]
	if !ok {
		d.errorf("ShaderInfoLog: unknown shader %d", id)
		return 0
	}
	return d.writeLog(s.Log, buf)
}

func (d *Driver) DeleteShader(id uint32) {
	s, ok := d.stages[id]
	if !ok {
		d.errorf("DeleteShader: unknown shader %d", id)
		return
	}
	s.Deleted = true
	d.collect(id)
}

func (d *Driver) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &Program{Status: shader.False}
	return id
}

func (d *Driver) AttachShader(program, id uint32) {
	p, ok := d.programs[program]
	if !ok {
		d.errorf("AttachShader: unknown program %d", program)
		return
	}
	s, ok := d.stages[id]
	if !ok {
		d.errorf("AttachShader: unknown shader %d", id)
		return
	}
	p.Stages = append(p.Stages, id)
	s.Attached++
}

func (d *Driver) DetachShader(program, id uint32) {
	p, ok := d.programs[program]
	if !ok {
		d.errorf("DetachShader: unknown program %d", program)
		return
	}
	for i, sid := range p.Stages {
		if sid == id {
			p.Stages = append(p.Stages[:i], p.Stages[i+1:]...)
			d.stages[id].Attached--
			d.collect(id)
			return
		}
	}
	d.errorf("DetachShader: shader %d not attached to program %d", id, program)
}

func (d *Driver) LinkProgram(program uint32) {
	p, ok := d.programs[program]
	if !ok {
		d.errorf("LinkProgram: unknown program %d", program)
		return
	}
	var vertex, fragment []*Stage
	for _, id := range p.Stages {
		s := d.stages[id]
		if s.Status != shader.True {
			p.fail("error: shader %d is not compiled\n", id)
			return
		}
		if s.Kind == shader.Vertex {
			vertex = append(vertex, s)
		} else {
			fragment = append(fragment, s)
		}
	}
	if len(vertex) != 1 || len(fragment) != 1 {
		p.fail("error: program needs one vertex and one fragment shader, has %d and %d\n", len(vertex), len(fragment))
		return
	}
	outs := make(map[string]bool)
	for _, name := range interfaceVars(vertex[0].Source, "out") {
		outs[name] = true
	}
	for _, name := range interfaceVars(fragment[0].Source, "in") {
		if !outs[name] {
			p.fail("error: fragment shader input `%s' has no matching output in the previous stage\n", name)
			return
		}
	}
	p.Status = shader.True
	p.Log = ""
	p.Vertex = vertex[0].Source
	p.Fragment = fragment[0].Source
}

func (p *Program) fail(format string, args ...any) {
	p.Status = shader.False
	p.Log = fmt.Sprintf(format, args...)
}

func (d *Driver) ProgramLinkStatus(program uint32) int32 {
	p, ok := d.programs[program]
	if !ok {
		d.errorf("ProgramLinkStatus: unknown program %d", program)
		return shader.False
	}
	return p.Status
}

func (d *Driver) ProgramInfoLog(program uint32, buf []byte) int {
	p, ok := d.programs[program]
	if !ok {
		d.errorf("ProgramInfoLog: unknown program %d", program)
		return 0
	}
	return d.writeLog(p.Log, buf)
}

func (d *Driver) DeleteProgram(program uint32) {
	if program == 0 {
		return
	}
	p, ok := d.programs[program]
	if !ok {
		d.errorf("DeleteProgram: unknown program %d", program)
		return
	}
	delete(d.programs, program)
	for _, id := range p.Stages {
		d.stages[id].Attached--
		d.collect(id)
	}
}

func (d *Driver) UseProgram(program uint32) {
	d.UseCalls++
	if program != 0 {
		p, ok := d.programs[program]
		if !ok {
			d.errorf("UseProgram: unknown program %d", program)
			return
		}
		if p.Status != shader.True {
			d.errorf("UseProgram: program %d is not linked", program)
			return
		}
	}
	d.Current = program
}

func (d *Driver) writeLog(text string, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	src := []byte(text)
	if d.LogOverride != nil {
		src = d.LogOverride
	}
	n := copy(buf[:len(buf)-1], src)
	buf[n] = 0
	return n
}

func (d *Driver) collect(id uint32) {
	if s := d.stages[id]; s != nil && s.Deleted && s.Attached <= 0 {
		delete(d.stages, id)
	}
}

// Stage returns the live shader object id, or nil.
func (d *Driver) Stage(id uint32) *Stage { return d.stages[id] }

// Program returns the live program object id, or nil.
func (d *Driver) Program(id uint32) *Program { return d.programs[id] }

// LiveStages returns the ids of shader objects not yet freed, sorted.
func (d *Driver) LiveStages() []uint32 { return keys(d.stages) }

// LivePrograms returns the ids of program objects not yet deleted, sorted.
func (d *Driver) LivePrograms() []uint32 { return keys(d.programs) }

func keys[V any](m map[uint32]V) []uint32 {
	out := make([]uint32, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// interfaceVars returns the names of top-level variables declared with the
// given storage qualifier in declaration order, e.g. "out vec4 vColor;"
// for qualifier "out".
func interfaceVars(src, qualifier string) []string {
	var vars []string
	for _, line := range strings.Split(src, "\n") {
		fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		if len(fields) == 3 && fields[0] == qualifier {
			vars = append(vars, fields[2])
		}
	}
	return vars
}
