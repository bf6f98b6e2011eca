/*
Package shader manages the lifecycle of one GPU shader program: reading the
vertex and fragment sources from files, compiling and linking them, binding
the result, and rebuilding it while the application runs.

# Overview

A Program remembers the two source paths it was built from. Reload reads them
again and swaps in a freshly linked program, so a live-editing tool can keep
one *Program for the whole session while the GPU handle behind it changes.

All calls go through a Driver, an explicit handle to the graphics context.
backend/opengl implements it with go-gl; tests use an in-memory driver.

# Quick Start

	// Setup, after the GL context is current and gl.Init succeeded
	prog, err := shader.New(opengl.NewDriver(), "scene.vert", "scene.frag")
	if err != nil {
	    return err // *shader.CompileError or *shader.LinkError
	}
	defer prog.Delete()

	// Render loop
	for !window.ShouldClose() {
	    if reloadRequested {
	        prog.Reload()
	    }
	    prog.Activate()
	    quad.Draw()
	    prog.Deactivate()
	    window.SwapBuffers()
	}

# Building

Build compiles the vertex stage, then the fragment stage, then links. The
first failure wins: a vertex error hides a fragment error, and a fragment
error hides a link error. Compile failures are reported as *CompileError
tagged VERTEX or FRAGMENT, link failures as *LinkError tagged PROGRAM, each
carrying the driver's diagnostic text. At most LogCapacity-1 bytes of a
diagnostic are kept.

Stages are always released once linking was attempted, including on failure.
This differs from the legacy accounting, where a failed link left both stages
allocated; WithLegacyStageLeaks keeps that accounting.

# Failure Policy

Construction errors from compiling or linking are always returned. The rest
depends on the FailurePolicy:

	FailFast       unreadable sources, undecodable diagnostics and every
	               Reload failure terminate the process (the default)
	ReturnErrors   the same failures are returned; a failed Reload keeps the
	               previous program bound and usable

Termination goes through a FatalFunc, which WithFatal replaces.

# Threading

Program and Engine are not safe for concurrent use. Call them from the
thread that owns the graphics context. The watch package can run on another
goroutine because it only signals that a reload is due.
*/
package shader
