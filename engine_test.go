package shader_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/internal/fakegl"
)

func TestStageKindString(t *testing.T) {
	assert.Equal(t, "VERTEX", shader.Vertex.String())
	assert.Equal(t, "FRAGMENT", shader.Fragment.String())
	assert.Equal(t, "UNKNOWN", shader.StageKind(7).String())
}

func TestCompileStage(t *testing.T) {
	d := fakegl.New()
	e := shader.NewEngine(d, shader.WithLogger(quietLogger()))

	stage, err := e.CompileStage(validVertex, shader.Vertex)
	require.NoError(t, err)
	require.NotNil(t, d.Stage(stage), "a compiled stage stays allocated until linked")
	assert.Equal(t, shader.Vertex, d.Stage(stage).Kind)

	_, err = e.CompileStage(brokenFragment, shader.Fragment)
	var ce *shader.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, shader.Fragment, ce.Stage)
	assert.Contains(t, ce.Log, "undeclared identifier")
	assert.Equal(t, []uint32{stage}, d.LiveStages(), "failed stage is released")
}

func TestBuildReleasesStages(t *testing.T) {
	d := fakegl.New()
	e := shader.NewEngine(d, shader.WithLogger(quietLogger()))

	program, err := e.Build(validVertex, validFragment)
	require.NoError(t, err)
	assert.NotZero(t, program)
	assert.Empty(t, d.LiveStages())
	assert.Equal(t, []uint32{program}, d.LivePrograms())
	assert.Empty(t, d.Errors)
}

func TestBuildErrorPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		vertex   string
		fragment string
		wantTag  string
		link     bool
	}{
		{"vertex", brokenVertex, validFragment, "VERTEX", false},
		{"vertex before fragment", brokenVertex, brokenFragment, "VERTEX", false},
		{"fragment", validVertex, brokenFragment, "FRAGMENT", false},
		{"fragment before link", validVertex, "#error x\nin vec3 vNormal;", "FRAGMENT", false},
		{"link", validVertex, mismatchedFragment, "PROGRAM", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := fakegl.New()
			e := shader.NewEngine(d, shader.WithLogger(quietLogger()))

			program, err := e.Build(tt.vertex, tt.fragment)
			require.Error(t, err)
			assert.Zero(t, program)
			assert.Contains(t, err.Error(), tt.wantTag)

			if tt.link {
				var le *shader.LinkError
				require.ErrorAs(t, err, &le)
				assert.Contains(t, le.Log, "vNormal")
			} else {
				var ce *shader.CompileError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, tt.wantTag, ce.Stage.String())
			}
			assert.Empty(t, d.LiveStages(), "stages are released on every failure path")
			assert.Empty(t, d.LivePrograms())
		})
	}
}

func TestLegacyStageLeaksOnLinkFailure(t *testing.T) {
	d := fakegl.New()
	e := shader.NewEngine(d, shader.WithLogger(quietLogger()), shader.WithLegacyStageLeaks())

	_, err := e.Build(validVertex, mismatchedFragment)
	var le *shader.LinkError
	require.ErrorAs(t, err, &le)

	// Both stages and the unlinked program stay allocated. The stages are
	// detached but never deleted.
	assert.Len(t, d.LiveStages(), 2)
	assert.Len(t, d.LivePrograms(), 1)
	for _, id := range d.LiveStages() {
		assert.Zero(t, d.Stage(id).Attached)
		assert.False(t, d.Stage(id).Deleted)
	}
	assert.Empty(t, d.Program(d.LivePrograms()[0]).Stages)
}

func TestDiagnosticLogIsCapped(t *testing.T) {
	d := fakegl.New()
	d.LogOverride = bytes.Repeat([]byte("e"), 2000)
	e := shader.NewEngine(d, shader.WithLogger(quietLogger()))

	_, err := e.Build(brokenVertex, validFragment)
	var ce *shader.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Len(t, ce.Log, shader.LogCapacity-1)
	assert.Equal(t, strings.Repeat("e", 511), ce.Log)
}

func TestDiagnosticLogStopsAtNUL(t *testing.T) {
	d := fakegl.New()
	d.LogOverride = []byte("link failed\x00garbage")
	e := shader.NewEngine(d, shader.WithLogger(quietLogger()))

	_, err := e.Build(validVertex, mismatchedFragment)
	var le *shader.LinkError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "link failed", le.Log)
}

func TestUndecodableLogReturnErrors(t *testing.T) {
	d := fakegl.New()
	d.LogOverride = []byte{'o', 'k', 0xff, 0xfe}
	e := shader.NewEngine(d, shader.WithLogger(quietLogger()), shader.WithPolicy(shader.ReturnErrors))

	_, err := e.Build(brokenVertex, validFragment)
	var de *shader.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "VERTEX", de.Tag)
	assert.Equal(t, []byte{'o', 'k', 0xff, 0xfe}, de.Raw)
	assert.Empty(t, d.LiveStages())
}

func TestUndecodableLogIsFatal(t *testing.T) {
	d := fakegl.New()
	d.LogOverride = []byte{0xc3, 0x28}
	rec := &fatalRecorder{}
	e := shader.NewEngine(d, shader.WithLogger(quietLogger()), shader.WithFatal(rec.fatal))

	_, err := e.Build(validVertex, mismatchedFragment)
	require.Error(t, err)
	require.Len(t, rec.errs, 1)
	var de *shader.DecodeError
	assert.ErrorAs(t, rec.errs[0], &de)
	assert.Equal(t, "PROGRAM", de.Tag)
}

func TestCompileErrorIsNotFatal(t *testing.T) {
	d := fakegl.New()
	rec := &fatalRecorder{}
	e := shader.NewEngine(d, shader.WithLogger(quietLogger()), shader.WithFatal(rec.fatal))

	_, err := e.Build(brokenVertex, validFragment)
	require.Error(t, err)
	assert.Empty(t, rec.errs)
}

func TestRebuildRelinksInPlace(t *testing.T) {
	d := fakegl.New()
	e := shader.NewEngine(d, shader.WithLogger(quietLogger()))

	program, err := e.Build(validVertex, validFragment)
	require.NoError(t, err)

	got, err := e.Rebuild(program, validVertex, tintedFragment)
	require.NoError(t, err)
	assert.Equal(t, program, got)
	assert.Equal(t, tintedFragment, d.Program(program).Fragment)
	assert.Empty(t, d.Program(program).Stages, "stages are detached after linking")
	assert.Empty(t, d.LiveStages())

	// A second rebuild still sees exactly one stage of each kind.
	_, err = e.Rebuild(program, validVertex, validFragment)
	require.NoError(t, err)
	assert.Equal(t, validFragment, d.Program(program).Fragment)
}

func TestRebuildLinkFailure(t *testing.T) {
	d := fakegl.New()
	e := shader.NewEngine(d, shader.WithLogger(quietLogger()))

	program, err := e.Build(validVertex, validFragment)
	require.NoError(t, err)

	_, err = e.Rebuild(program, validVertex, mismatchedFragment)
	var le *shader.LinkError
	require.ErrorAs(t, err, &le)
	assert.NotNil(t, d.Program(program), "rebuild never deletes the program it was given")
	assert.Empty(t, d.LiveStages())
}
