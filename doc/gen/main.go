// Command gen builds every sample shader program in example/shaders, draws
// it on a fullscreen quad, captures framebuffer pixels and saves JPEG
// screenshots to doc/imgs/.
//
// A sample that fails to compile or link aborts the run with the driver's
// diagnostic, which makes this a cheap check that the samples still build.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single program screenshot to capture.
type screenshot struct {
	name     string  // filename without extension
	vertex   string  // vertex source file
	fragment string  // fragment source file
	width    int     // viewport width
	height   int     // viewport height
	time     float32 // value of the iTime uniform
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	quad := opengl.NewQuad()
	defer quad.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()

	for _, s := range shots {
		if err := capture(quad, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(quad *opengl.Quad, s screenshot, outDir string) error {
	// Fresh program per screenshot; build errors are returned, not fatal.
	prog, err := shader.New(opengl.NewDriver(), s.vertex, s.fragment,
		shader.WithPolicy(shader.ReturnErrors))
	if err != nil {
		return err
	}
	defer prog.Delete()

	// The hidden window stays at 800×600 (larger than every screenshot).
	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	uniforms := opengl.NewUniforms()
	prog.Activate()
	uniforms.Float(prog.Handle(), "iTime", s.time)
	uniforms.Vec2(prog.Handle(), "iResolution", float32(s.width), float32(s.height))
	quad.Draw()
	prog.Deactivate()

	// Read pixels
	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	// Create image
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	// Encode JPEG
	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns the list of all sample screenshots to generate.
func buildScreenshots() []screenshot {
	dir := filepath.Join("example", "shaders")
	vertex := filepath.Join(dir, "basic.vert")

	return []screenshot{
		{name: "basic", vertex: vertex, fragment: filepath.Join(dir, "basic.frag"), width: 400, height: 300, time: 1.5},
		{name: "rings", vertex: vertex, fragment: filepath.Join(dir, "rings.frag"), width: 400, height: 300, time: 0.25},
	}
}
