// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import "fmt"

// Framebuffer wraps one native GL framebuffer object owned by a caller
// (as opposed to the descriptor-keyed objects cached on [Device]).
// Used for long-lived single-attachment targets that get re-attached
// when their texture is recreated.
type Framebuffer struct {
	// Name for error and debug messages.
	Name string

	dv     *Device
	handle uint32

	// colorTex is the native id of the currently attached color
	// texture, so AttachColor can skip redundant re-attachment.
	colorTex uint32
}

// NewFramebuffer returns a new empty Framebuffer on the given device.
func NewFramebuffer(dv *Device, name string) *Framebuffer {
	return &Framebuffer{Name: name, dv: dv}
}

// Handle returns the native GL framebuffer id, 0 if not yet created.
func (fb *Framebuffer) Handle() uint32 {
	return fb.handle
}

// IsValid returns whether a native framebuffer currently exists.
func (fb *Framebuffer) IsValid() bool {
	return fb.handle != 0
}

// Ensure creates the native framebuffer if it does not exist yet.
func (fb *Framebuffer) Ensure() {
	if fb.handle != 0 {
		return
	}
	fb.handle = fb.dv.ctx.CreateFramebuffer()
	fb.colorTex = 0
}

// AttachColor attaches the given texture as color attachment 0,
// creating the framebuffer first if needed. Re-attaching the same
// native texture is a no-op.
func (fb *Framebuffer) AttachColor(tex *Texture) error {
	fb.Ensure()
	if fb.colorTex == tex.handle {
		return nil
	}
	ctx := fb.dv.ctx
	ctx.NamedFramebufferTexture(fb.handle, COLOR_ATTACHMENT0, tex.handle, 0)
	fb.colorTex = tex.handle
	if st := ctx.CheckNamedFramebufferStatus(fb.handle, FRAMEBUFFER); st != FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("glgpu: framebuffer %s incomplete: %#x", fb.Name, uint32(st))
	}
	return nil
}

// ColorTexture returns the native id of the attached color texture,
// 0 if none.
func (fb *Framebuffer) ColorTexture() uint32 {
	return fb.colorTex
}

// Bind binds the framebuffer to the given target (READ_FRAMEBUFFER,
// DRAW_FRAMEBUFFER, or FRAMEBUFFER).
func (fb *Framebuffer) Bind(target Enum) {
	fb.dv.ctx.BindFramebuffer(target, fb.handle)
}

// Release destroys the native framebuffer if one exists.
func (fb *Framebuffer) Release() {
	if fb.handle == 0 {
		return
	}
	fb.dv.ctx.DeleteFramebuffer(fb.handle)
	fb.handle = 0
	fb.colorTex = 0
}
