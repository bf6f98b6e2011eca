package shader

import "os"

// ReadSource returns the full contents of the shader source file at path.
// The text is not inspected or modified.
//
// ReadSource itself never terminates the process; New and Reload treat its
// errors as fatal under FailFast.
func ReadSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &SourceError{Path: path, Err: err}
	}
	return string(b), nil
}
