// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import "image"

// Types is the list of logical texture formats supported by this
// package, which map onto concrete GL internal formats.
type Types int32 //enums:enum

const (
	UndefinedType Types = iota

	// RGBA8Unorm is the standard 8 bit per component color format.
	RGBA8Unorm

	// RGBA16Float is the half-float color format used for intermediate
	// render targets that must hold values outside [0,1].
	RGBA16Float

	// RGB32Float is the full-float three-component format used for
	// 3D lookup table textures.
	RGB32Float

	// Depth32 is the standard float32 depth buffer format.
	Depth32
)

// Triple returns the GL (internalFormat, pixelFormat, componentType)
// for this logical format.
func (tp Types) Triple() (internal, format, typ Enum) {
	switch tp {
	case RGBA8Unorm:
		return RGBA8, RGBA, UNSIGNED_BYTE
	case RGBA16Float:
		return RGBA16F, RGBA, HALF_FLOAT
	case RGB32Float:
		return RGB32F, RGB, FLOAT
	case Depth32:
		return DEPTH_COMPONENT32F, DEPTH_COMPONENT, FLOAT
	}
	return 0, 0, 0
}

// Bytes returns the number of bytes per pixel for this format.
func (tp Types) Bytes() int {
	switch tp {
	case RGBA8Unorm:
		return 4
	case RGBA16Float:
		return 8
	case RGB32Float:
		return 12
	case Depth32:
		return 4
	}
	return 0
}

// TextureUsages are bit flags recording what a texture is for.
// Operations verify these before acting on a texture, so a texture
// bound for a purpose it was not created for fails loudly instead of
// producing driver-dependent garbage.
type TextureUsages int32 //enums:bitflag

const (
	// ColorTarget: texture can be rendered to as a color attachment.
	ColorTarget TextureUsages = 1 << iota

	// DepthTarget: texture can be attached as a depth buffer.
	// Host readback of a DepthTarget texture transfers raw float32
	// depth components.
	DepthTarget

	// Sampled: texture can be bound to a texture unit and sampled
	// in shaders.
	Sampled
)

// HasFlag returns whether the given flag is set.
func (us TextureUsages) HasFlag(f TextureUsages) bool {
	return us&f != 0
}

// BufferUsages are bit flags recording what a buffer is for.
// Binding operations verify them, per the same rationale as
// [TextureUsages].
type BufferUsages int32 //enums:bitflag

const (
	// VertexBuffer: buffer holds vertex attribute data.
	VertexBuffer BufferUsages = 1 << iota

	// Index32Buffer: buffer holds 32 bit triangle indices.
	Index32Buffer
)

// HasFlag returns whether the given flag is set.
func (us BufferUsages) HasFlag(f BufferUsages) bool {
	return us&f != 0
}

// TextureFormat is the full descriptor for a [Texture]. Two textures
// with equal TextureFormats are interchangeable, which is what lets
// [Texture.Ensure] skip recreation when nothing changed.
type TextureFormat struct {
	// Size of the texture in pixels.
	Size image.Point

	// Format is the logical pixel format.
	Format Types

	// Samples per pixel: 1 for a regular texture, >1 for multisample.
	Samples int

	// Layers in a texture array (1 for a plain 2D texture).
	Layers int

	// Usage records what this texture may be used for.
	Usage TextureUsages
}

// NewTextureFormat returns a single-sample, single-layer TextureFormat
// of the given size, format, and usage.
func NewTextureFormat(size image.Point, format Types, usage TextureUsages) TextureFormat {
	return TextureFormat{Size: size, Format: format, Samples: 1, Layers: 1, Usage: usage}
}

// IsMultisample returns whether this format has more than one sample
// per pixel.
func (tf *TextureFormat) IsMultisample() bool {
	return tf.Samples > 1
}

// SizeBytes returns the total byte size of one layer at mip level 0.
func (tf *TextureFormat) SizeBytes() int {
	return tf.Size.X * tf.Size.Y * tf.Format.Bytes()
}
