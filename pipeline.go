// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

// GraphicsPipeline bundles the program and fixed-function settings a
// draw needs. Binding a pipeline makes its program current and applies
// its depth settings; everything not named here is left as-is.
type GraphicsPipeline struct {
	// Name for error and debug messages.
	Name string

	// Program is the linked shader program.
	Program *Program

	// DepthWrite enables depth buffer writes.
	DepthWrite bool

	// DepthFn is the depth comparison function.
	DepthFn Enum

	// StencilWriteMask is applied via glStencilMask.
	StencilWriteMask uint32
}

// Bind makes this pipeline current on the device.
func (pl *GraphicsPipeline) Bind(dv *Device) {
	ctx := dv.ctx
	pl.Program.Use()
	ctx.DepthMask(pl.DepthWrite)
	ctx.DepthFunc(pl.DepthFn)
	ctx.StencilMask(pl.StencilWriteMask)
}

// TextureBinding binds one texture to one texture unit.
type TextureBinding struct {
	// Unit is the texture unit index (0 for TEXTURE0).
	Unit int

	// Target is the texture target (TEXTURE_2D or TEXTURE_3D).
	Target Enum

	// Texture is the texture to bind.
	Texture *Texture
}

// ResourceBindings is the set of shader resources a draw samples from.
type ResourceBindings struct {
	Textures []TextureBinding
}

// Bind applies all bindings on the device.
func (rb *ResourceBindings) Bind(dv *Device) {
	ctx := dv.ctx
	for _, tb := range rb.Textures {
		ctx.ActiveTexture(TEXTURE0 + Enum(tb.Unit))
		ctx.BindTexture(tb.Target, tb.Texture.handle)
	}
}
