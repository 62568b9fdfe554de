// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

// StateMask selects which slices of ambient GL state a [StateSnapshot]
// captures. Operations that mutate only a little state (a blit) use a
// narrow mask; the full-screen draw uses [StateDraw].
type StateMask int32 //enums:bitflag

const (
	// StateFramebuffers: read and draw framebuffer bindings.
	StateFramebuffers StateMask = 1 << iota

	// StateViewport: the viewport rectangle.
	StateViewport

	// StateDepth: depth write mask and depth comparison function.
	StateDepth

	// StateStencilMask: stencil write mask.
	StateStencilMask

	// StateBlendToggle: whether blending is enabled. Blend functions and
	// equations are not captured; callers that change them must set them
	// explicitly every frame.
	StateBlendToggle

	// StateAlphaToCoverage: whether sample-alpha-to-coverage is enabled.
	StateAlphaToCoverage

	// StateTextureUnits: the active texture unit and the 2D and 3D
	// texture bindings of units 0 and 1.
	StateTextureUnits
)

// StateBlit covers the state a framebuffer blit disturbs.
const StateBlit = StateFramebuffers

// StateDraw covers everything the full-screen post-process draw touches.
const StateDraw = StateFramebuffers | StateViewport | StateDepth |
	StateStencilMask | StateBlendToggle | StateAlphaToCoverage |
	StateTextureUnits

// StateSnapshot holds an explicit copy of a selected portion of the
// ambient GL state. Capture it before mutating, mutate freely, then
// call [StateSnapshot.Restore] on every exit path. Restore puts back
// exactly the captured fields and nothing else.
type StateSnapshot struct {
	// Mask records which fields below are valid.
	Mask StateMask

	ReadFramebuffer uint32
	DrawFramebuffer uint32

	Viewport [4]int

	DepthWriteMask bool
	DepthFn        Enum

	StencilWriteMask uint32

	BlendEnabled bool

	AlphaToCoverage bool

	ActiveUnit  Enum
	Unit0Tex2D  uint32
	Unit1Tex2D  uint32
	Unit1Tex3D  uint32
}

// Capture reads the state selected by mask from the context and returns
// a snapshot of it. Only the fields named by mask are read; nothing else
// is queried.
func Capture(ctx Context, mask StateMask) *StateSnapshot {
	ss := &StateSnapshot{Mask: mask}
	if mask&StateFramebuffers != 0 {
		ss.ReadFramebuffer = uint32(ctx.GetInteger(READ_FRAMEBUFFER_BINDING))
		ss.DrawFramebuffer = uint32(ctx.GetInteger(DRAW_FRAMEBUFFER_BINDING))
	}
	if mask&StateViewport != 0 {
		ss.Viewport = ctx.GetInteger4(VIEWPORT)
	}
	if mask&StateDepth != 0 {
		ss.DepthWriteMask = ctx.GetBoolean(DEPTH_WRITEMASK)
		ss.DepthFn = Enum(ctx.GetInteger(DEPTH_FUNC))
	}
	if mask&StateStencilMask != 0 {
		ss.StencilWriteMask = uint32(ctx.GetInteger(STENCIL_WRITEMASK))
	}
	if mask&StateBlendToggle != 0 {
		ss.BlendEnabled = ctx.IsEnabled(BLEND)
	}
	if mask&StateAlphaToCoverage != 0 {
		ss.AlphaToCoverage = ctx.IsEnabled(SAMPLE_ALPHA_TO_COVERAGE)
	}
	if mask&StateTextureUnits != 0 {
		ss.ActiveUnit = Enum(ctx.GetInteger(ACTIVE_TEXTURE))
		ctx.ActiveTexture(TEXTURE0)
		ss.Unit0Tex2D = uint32(ctx.GetInteger(TEXTURE_BINDING_2D))
		ctx.ActiveTexture(TEXTURE0 + 1)
		ss.Unit1Tex2D = uint32(ctx.GetInteger(TEXTURE_BINDING_2D))
		ss.Unit1Tex3D = uint32(ctx.GetInteger(TEXTURE_BINDING_3D))
		ctx.ActiveTexture(ss.ActiveUnit)
	}
	return ss
}

// Restore writes the captured fields back to the context. It is safe to
// call more than once, and must be called on every exit path of the code
// that captured the snapshot.
func (ss *StateSnapshot) Restore(ctx Context) {
	if ss.Mask&StateFramebuffers != 0 {
		ctx.BindFramebuffer(READ_FRAMEBUFFER, ss.ReadFramebuffer)
		ctx.BindFramebuffer(DRAW_FRAMEBUFFER, ss.DrawFramebuffer)
	}
	if ss.Mask&StateViewport != 0 {
		ctx.Viewport(ss.Viewport[0], ss.Viewport[1], ss.Viewport[2], ss.Viewport[3])
	}
	if ss.Mask&StateDepth != 0 {
		ctx.DepthMask(ss.DepthWriteMask)
		ctx.DepthFunc(ss.DepthFn)
	}
	if ss.Mask&StateStencilMask != 0 {
		ctx.StencilMask(ss.StencilWriteMask)
	}
	if ss.Mask&StateBlendToggle != 0 {
		if ss.BlendEnabled {
			ctx.Enable(BLEND)
		} else {
			ctx.Disable(BLEND)
		}
	}
	if ss.Mask&StateAlphaToCoverage != 0 {
		if ss.AlphaToCoverage {
			ctx.Enable(SAMPLE_ALPHA_TO_COVERAGE)
		} else {
			ctx.Disable(SAMPLE_ALPHA_TO_COVERAGE)
		}
	}
	if ss.Mask&StateTextureUnits != 0 {
		ctx.ActiveTexture(TEXTURE0)
		ctx.BindTexture(TEXTURE_2D, ss.Unit0Tex2D)
		ctx.ActiveTexture(TEXTURE0 + 1)
		ctx.BindTexture(TEXTURE_2D, ss.Unit1Tex2D)
		ctx.BindTexture(TEXTURE_3D, ss.Unit1Tex3D)
		ctx.ActiveTexture(ss.ActiveUnit)
	}
}
