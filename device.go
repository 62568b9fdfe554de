// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"
	"log/slog"
)

// Device owns a [Context] and the device-level resource caches.
// All resources created through a Device must be released before the
// Device itself via [Device.Release].
type Device struct {
	ctx Context

	// framebuffers caches framebuffer objects keyed by the identity of
	// their attachments, so binding the same render pass descriptor
	// frame after frame reuses one native object.
	framebuffers map[string]uint32
}

// NewDevice returns a Device running on the given context.
func NewDevice(ctx Context) *Device {
	return &Device{
		ctx:          ctx,
		framebuffers: make(map[string]uint32),
	}
}

// Context returns the underlying GL context.
func (dv *Device) Context() Context {
	return dv.ctx
}

// Run executes the given operations in order on this device.
// Descriptors are values; nothing they reference is mutated.
func (dv *Device) Run(ops ...Op) {
	for _, op := range ops {
		op.Execute(dv)
	}
}

// PostErrors drains the GL error queue, logging each error with the
// given label. Device errors are diagnostics, never control flow:
// callers invoke this after a group of operations and carry on
// regardless.
func (dv *Device) PostErrors(label string) {
	for {
		err := dv.ctx.GetError()
		if err == NO_ERROR {
			return
		}
		slog.Error("glgpu: device error", "op", label, "error", ErrorName(err))
	}
}

// AcquireFramebuffer returns a framebuffer object whose attachments
// match the given render pass descriptor, creating and configuring one
// on first use and reusing it on subsequent calls with the same
// attachment identities. The returned object is owned by the Device.
func (dv *Device) AcquireFramebuffer(desc *RenderPassDescriptor) uint32 {
	key := desc.attachmentKey()
	if fb, ok := dv.framebuffers[key]; ok {
		return fb
	}
	fb := dv.ctx.CreateFramebuffer()
	dv.ctx.BindFramebuffer(FRAMEBUFFER, fb)
	bufs := make([]Enum, len(desc.ColorAttachments))
	for i, at := range desc.ColorAttachments {
		ap := COLOR_ATTACHMENT0 + Enum(i)
		dv.ctx.FramebufferTexture2D(FRAMEBUFFER, ap, at.Texture.glTarget(), at.Texture.handle, 0)
		bufs[i] = ap
	}
	if len(bufs) == 0 {
		bufs = []Enum{NONE}
	}
	dv.ctx.NamedFramebufferDrawBuffers(fb, bufs)
	if desc.DepthAttachment != nil {
		da := desc.DepthAttachment
		dv.ctx.FramebufferTexture2D(FRAMEBUFFER, DEPTH_ATTACHMENT, da.Texture.glTarget(), da.Texture.handle, 0)
	}
	if st := dv.ctx.CheckNamedFramebufferStatus(fb, FRAMEBUFFER); st != FRAMEBUFFER_COMPLETE {
		slog.Error("glgpu: framebuffer incomplete", "status", fmt.Sprintf("%#x", uint32(st)))
	}
	dv.framebuffers[key] = fb
	return fb
}

// Release destroys all cached device-level resources. Resources owned
// by callers (textures, buffers, programs) must already be released.
func (dv *Device) Release() {
	for _, fb := range dv.framebuffers {
		dv.ctx.DeleteFramebuffer(fb)
	}
	dv.framebuffers = make(map[string]uint32)
}
