// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glos

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// InitWindow initializes glfw, creates a window with a 4.6 core profile
// GL context, makes it current, and loads the GL function pointers.
// Pass visible=false for a hidden window usable as an offscreen
// context. The caller must run on a locked OS thread
// (runtime.LockOSThread) and call [Terminate] when done.
func InitWindow(width, height int, title string, visible bool) (*glfw.Window, *Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("glos: glfw init failed: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("glos: window creation failed: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, nil, fmt.Errorf("glos: GL init failed: %w", err)
	}
	return win, NewContext(), nil
}

// Terminate destroys the window and shuts glfw down.
func Terminate(win *glfw.Window) {
	if win != nil {
		win.Destroy()
	}
	glfw.Terminate()
}
