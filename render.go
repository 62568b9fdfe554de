// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"
	"strings"
)

// LoadOps determines what happens to an attachment's prior contents at
// the start of a render pass.
type LoadOps int32 //enums:enum

const (
	// LoadOpDontCare leaves the prior contents undefined.
	LoadOpDontCare LoadOps = iota

	// LoadOpClear clears the attachment to its ClearValue.
	LoadOpClear

	// LoadOpLoad preserves the prior contents.
	LoadOpLoad
)

// BlendFactors are the blending factors usable in a [BlendState].
type BlendFactors int32 //enums:enum

const (
	BlendZero BlendFactors = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendDstColor
	BlendOneMinusDstColor
	BlendConstantColor
	BlendOneMinusConstantColor
	BlendConstantAlpha
	BlendOneMinusConstantAlpha
)

var blendFactorToGL = map[BlendFactors]Enum{
	BlendZero:                  ZERO,
	BlendOne:                   ONE,
	BlendSrcColor:              SRC_COLOR,
	BlendOneMinusSrcColor:      ONE_MINUS_SRC_COLOR,
	BlendSrcAlpha:              SRC_ALPHA,
	BlendOneMinusSrcAlpha:      ONE_MINUS_SRC_ALPHA,
	BlendDstAlpha:              DST_ALPHA,
	BlendOneMinusDstAlpha:      ONE_MINUS_DST_ALPHA,
	BlendDstColor:              DST_COLOR,
	BlendOneMinusDstColor:      ONE_MINUS_DST_COLOR,
	BlendConstantColor:         CONSTANT_COLOR,
	BlendOneMinusConstantColor: ONE_MINUS_CONSTANT_COLOR,
	BlendConstantAlpha:         CONSTANT_ALPHA,
	BlendOneMinusConstantAlpha: ONE_MINUS_CONSTANT_ALPHA,
}

// GL returns the GL enumerant for this blend factor.
func (bf BlendFactors) GL() Enum {
	return blendFactorToGL[bf]
}

// BlendOps are the blending equations usable in a [BlendState].
type BlendOps int32 //enums:enum

const (
	BlendAdd BlendOps = iota
	BlendSubtract
	BlendReverseSubtract
	BlendMin
	BlendMax
)

var blendOpToGL = map[BlendOps]Enum{
	BlendAdd:             FUNC_ADD,
	BlendSubtract:        FUNC_SUBTRACT,
	BlendReverseSubtract: FUNC_REVERSE_SUBTRACT,
	BlendMin:             MIN,
	BlendMax:             MAX,
}

// GL returns the GL enumerant for this blend equation.
func (bo BlendOps) GL() Enum {
	return blendOpToGL[bo]
}

// BlendState is the per-attachment blending configuration.
type BlendState struct {
	// Enabled turns blending on for this attachment.
	Enabled bool

	SrcColor BlendFactors
	DstColor BlendFactors
	SrcAlpha BlendFactors
	DstAlpha BlendFactors

	ColorOp BlendOps
	AlphaOp BlendOps
}

// AttachmentDescriptor describes one color or depth attachment of a
// render pass.
type AttachmentDescriptor struct {
	// Texture is the target of this attachment.
	Texture *Texture

	// LoadOp determines the fate of prior contents.
	LoadOp LoadOps

	// ClearValue is the clear color (or depth in [0]) used when LoadOp
	// is LoadOpClear.
	ClearValue [4]float32

	// Blend is the blending configuration for this attachment.
	Blend BlendState
}

// RenderPassDescriptor describes the attachment set of a render pass.
// Framebuffer objects are cached per attachment identity: binding the
// same descriptor (same native textures) twice reuses one native
// framebuffer.
type RenderPassDescriptor struct {
	ColorAttachments []AttachmentDescriptor
	DepthAttachment  *AttachmentDescriptor
}

// HasAttachments returns whether the descriptor names at least one
// color or depth attachment.
func (rp *RenderPassDescriptor) HasAttachments() bool {
	return len(rp.ColorAttachments) > 0 || rp.DepthAttachment != nil
}

// attachmentKey returns the cache key identifying this descriptor's
// attachment set: the native texture ids in attachment order.
func (rp *RenderPassDescriptor) attachmentKey() string {
	var b strings.Builder
	for _, at := range rp.ColorAttachments {
		fmt.Fprintf(&b, "c%d:", at.Texture.handle)
	}
	if rp.DepthAttachment != nil {
		fmt.Fprintf(&b, "d%d", rp.DepthAttachment.Texture.handle)
	}
	return b.String()
}
