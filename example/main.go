// Example is a live shader viewer: it draws a fullscreen quad with a
// vertex/fragment program and rebuilds the program when a source file is
// saved or F5 is pressed.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run with the bundled shaders
//	go run ./example/ -policy return-errors example/shaders/basic.vert example/shaders/rings.frag
//
// Keys: F5 or Ctrl+R reload, F6 toggles the program, Escape quits.
// With the default fail-fast policy a broken shader stops the viewer;
// -policy return-errors keeps the last good program on screen instead.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
	"github.com/go-theft-auto/shader/internal/config"
	"github.com/go-theft-auto/shader/watch"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		return err
	}
	shader.SetVerbose(cfg.Verbose)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	prog, err := shader.New(opengl.NewDriver(), cfg.Vertex, cfg.Fragment,
		shader.WithPolicy(cfg.FailurePolicy()))
	if err != nil {
		return err
	}
	defer prog.Delete()

	var watcher *watch.Watcher
	if cfg.Watch {
		watcher, err = watch.New([]string{cfg.Vertex, cfg.Fragment},
			watch.WithDebounce(time.Duration(cfg.Debounce)), watch.WithLogger(logger))
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	keys := opengl.NewGLFWKeyAdapter(window)
	quad := opengl.NewQuad()
	defer quad.Delete()
	uniforms := opengl.NewUniforms()

	reload := func(reason string) {
		if err := prog.Reload(); err != nil {
			// Only reached under return-errors; the last good program stays bound.
			logger.Error("shader reload failed", "reason", reason, "err", err)
			return
		}
		logger.Info("shader reloaded", "reason", reason, "generation", prog.Generation())
	}

	prog.Activate()
	start := time.Now()

	// Main loop.
	for !window.ShouldClose() {
		glfw.PollEvents()

		for _, act := range keys.Actions() {
			switch act {
			case opengl.ActionReload:
				reload("key")
			case opengl.ActionToggle:
				if prog.Active() {
					prog.Deactivate()
				} else {
					prog.Activate()
				}
			case opengl.ActionQuit:
				window.SetShouldClose(true)
			}
		}
		if watcher != nil {
			if path, ok := watcher.Pending(); ok {
				reload(path)
			}
		}

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if prog.Active() {
			uniforms.Float(prog.Handle(), "iTime", float32(time.Since(start).Seconds()))
			uniforms.Vec2(prog.Handle(), "iResolution", float32(w), float32(h))
			quad.Draw()
		}

		window.SwapBuffers()
	}

	return nil
}
