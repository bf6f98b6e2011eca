package shader_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validVertex = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
out vec2 vUV;

void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
    vUV = aTexCoord;
}
`

const validFragment = `#version 410 core
in vec2 vUV;
out vec4 FragColor;

void main() {
    FragColor = vec4(vUV, 0.5, 1.0);
}
`

const tintedFragment = `#version 410 core
in vec2 vUV;
out vec4 FragColor;
uniform float iTime;

void main() {
    FragColor = vec4(vUV * abs(sin(iTime)), 0.5, 1.0);
}
`

const brokenVertex = `#version 410 core
#error missing semicolon after declaration
void main() {}
`

const brokenFragment = `#version 410 core
out vec4 FragColor;
#error undeclared identifier 'colr'
void main() {}
`

// mismatchedFragment compiles but reads a varying the vertex stage never
// writes, so linking fails.
const mismatchedFragment = `#version 410 core
in vec3 vNormal;
out vec4 FragColor;

void main() {
    FragColor = vec4(vNormal, 1.0);
}
`

// writeSources writes a vertex and fragment source into dir and returns
// their paths.
func writeSources(t *testing.T, dir, vertex, fragment string) (string, string) {
	t.Helper()
	vp := filepath.Join(dir, "scene.vert")
	fp := filepath.Join(dir, "scene.frag")
	require.NoError(t, os.WriteFile(vp, []byte(vertex), 0o644))
	require.NoError(t, os.WriteFile(fp, []byte(fragment), 0o644))
	return vp, fp
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fatalRecorder stands in for process termination.
type fatalRecorder struct {
	errs []error
}

func (r *fatalRecorder) fatal(err error) {
	r.errs = append(r.errs, err)
}
