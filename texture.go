// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import "log/slog"

// Texture wraps one native GL texture together with the descriptor that
// created it. It is created lazily by [Texture.Ensure], rebuilt by
// destroy-then-recreate whenever the descriptor changes, and destroyed
// by its owner via [Texture.Release].
type Texture struct {
	// Name for error and debug messages.
	Name string

	// Format is the descriptor the current native texture was built
	// from. Comparing against it is what makes Ensure idempotent.
	Format TextureFormat

	dv     *Device
	handle uint32

	// lutEdge is the edge length when this texture is a 3D LUT,
	// 0 otherwise.
	lutEdge int
}

// NewTexture returns a new empty Texture on the given device.
// No native resource is created until [Texture.Ensure].
func NewTexture(dv *Device, name string) *Texture {
	return &Texture{Name: name, dv: dv}
}

// Handle returns the native GL texture id, 0 if not yet created.
func (tx *Texture) Handle() uint32 {
	return tx.handle
}

// IsValid returns whether a native texture currently exists.
func (tx *Texture) IsValid() bool {
	return tx.handle != 0
}

// glTarget returns the GL texture target for this texture.
func (tx *Texture) glTarget() Enum {
	if tx.lutEdge > 0 {
		return TEXTURE_3D
	}
	if tx.Format.IsMultisample() {
		return TEXTURE_2D_MULTISAMPLE
	}
	return TEXTURE_2D
}

// Ensure makes the native texture match the given descriptor. If the
// current texture was created from an equal descriptor, it does nothing
// and the native id is unchanged. Otherwise any existing texture is
// destroyed and a new one is created and allocated.
func (tx *Texture) Ensure(f TextureFormat) {
	if tx.handle != 0 && tx.lutEdge == 0 && tx.Format == f {
		return
	}
	tx.Release()
	ctx := tx.dv.ctx
	tx.handle = ctx.CreateTexture()
	tx.Format = f
	tx.lutEdge = 0
	target := tx.glTarget()
	ctx.BindTexture(target, tx.handle)
	if f.IsMultisample() {
		ctx.TexImage2DMultisample(target, f.Samples, mustInternal(f.Format), f.Size.X, f.Size.Y, true)
	} else {
		ctx.TexParameteri(target, TEXTURE_MIN_FILTER, NEAREST)
		ctx.TexParameteri(target, TEXTURE_MAG_FILTER, NEAREST)
		ctx.TexParameteri(target, TEXTURE_WRAP_S, CLAMP_TO_EDGE)
		ctx.TexParameteri(target, TEXTURE_WRAP_T, CLAMP_TO_EDGE)
		internal, format, typ := f.Format.Triple()
		ctx.TexImage2D(target, 0, internal, f.Size.X, f.Size.Y, format, typ, nil)
	}
	ctx.BindTexture(target, 0)
}

// EnsureLUT makes the native texture a 3D lookup table with the given
// edge length, uploading data (len must be 3*edge^3 float32 RGB
// triples). If the current texture is already a LUT of this edge
// length, the existing texture is kept and only the data is uploaded.
func (tx *Texture) EnsureLUT(edge int, data []float32) {
	if len(data) != 3*edge*edge*edge {
		slog.Error("glgpu: LUT data size mismatch", "texture", tx.Name,
			"edge", edge, "len", len(data))
		return
	}
	ctx := tx.dv.ctx
	if tx.handle == 0 || tx.lutEdge != edge {
		tx.Release()
		tx.handle = ctx.CreateTexture()
		tx.lutEdge = edge
		tx.Format = TextureFormat{Format: RGB32Float, Samples: 1, Layers: 1, Usage: Sampled}
		ctx.BindTexture(TEXTURE_3D, tx.handle)
		ctx.TexParameteri(TEXTURE_3D, TEXTURE_MIN_FILTER, LINEAR)
		ctx.TexParameteri(TEXTURE_3D, TEXTURE_MAG_FILTER, LINEAR)
		ctx.TexParameteri(TEXTURE_3D, TEXTURE_WRAP_S, CLAMP_TO_EDGE)
		ctx.TexParameteri(TEXTURE_3D, TEXTURE_WRAP_T, CLAMP_TO_EDGE)
		ctx.TexParameteri(TEXTURE_3D, TEXTURE_WRAP_R, CLAMP_TO_EDGE)
	} else {
		ctx.BindTexture(TEXTURE_3D, tx.handle)
	}
	ctx.TexImage3D(TEXTURE_3D, 0, RGB32F, edge, edge, edge, RGB, FLOAT, data)
	ctx.BindTexture(TEXTURE_3D, 0)
}

// LUTEdge returns the edge length when this texture holds a 3D LUT,
// 0 otherwise.
func (tx *Texture) LUTEdge() int {
	return tx.lutEdge
}

// Release destroys the native texture if one exists. The Texture can be
// reused afterwards via Ensure.
func (tx *Texture) Release() {
	if tx.handle == 0 {
		return
	}
	tx.dv.ctx.DeleteTexture(tx.handle)
	tx.handle = 0
	tx.lutEdge = 0
}

// mustInternal returns the internal format for tp, for paths where the
// full triple is not needed.
func mustInternal(tp Types) Enum {
	internal, _, _ := tp.Triple()
	return internal
}
