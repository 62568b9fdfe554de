// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import (
	"fmt"
	"log/slog"
)

// Op is one deferred GPU operation. Constructing a descriptor performs
// no GL work; Execute performs all of it against the given device's
// context. Descriptors hold everything Execute needs, so an Op value
// can be built on one line and run much later without capturing any
// ambient state.
type Op interface {
	Execute(dv *Device)
}

// TextureToHostCopy reads texture contents back into host memory.
type TextureToHostCopy struct {
	// Texture to read from.
	Texture *Texture

	// MipLevel to read.
	MipLevel int

	// StartLayer and NumLayers select the layer range.
	StartLayer int
	NumLayers  int

	// Offset is the (x, y, z) texel origin of the region.
	Offset [3]int

	// Dest receives the pixel data; its length bounds the transfer.
	Dest []byte
}

// Execute performs the readback. A nil texture or empty destination is
// skipped with a warning; a layer range outside the texture aborts with
// an error. All pending GPU writes are made visible first.
func (op TextureToHostCopy) Execute(dv *Device) {
	if op.Texture == nil || !op.Texture.IsValid() {
		slog.Warn("glgpu: texture-to-host copy with no texture, skipping")
		return
	}
	if len(op.Dest) == 0 {
		slog.Warn("glgpu: texture-to-host copy with empty destination, skipping",
			"texture", op.Texture.Name)
		return
	}
	tf := &op.Texture.Format
	if op.StartLayer < 0 || op.NumLayers < 1 || op.StartLayer+op.NumLayers > tf.Layers {
		slog.Error("glgpu: texture-to-host copy layer range out of bounds",
			"texture", op.Texture.Name, "start", op.StartLayer,
			"num", op.NumLayers, "layers", tf.Layers)
		return
	}
	ctx := dv.ctx

	// make any in-flight GPU writes to the texture visible to the read
	ctx.MemoryBarrier(ALL_BARRIER_BITS)

	_, format, typ := tf.Format.Triple()
	if tf.Usage.HasFlag(DepthTarget) {
		format = DEPTH_COMPONENT
		typ = FLOAT
	}
	ctx.GetTextureSubImage(op.Texture.handle, op.MipLevel,
		op.Offset[0], op.Offset[1], op.Offset[2]+op.StartLayer,
		tf.Size.X, tf.Size.Y, op.NumLayers, format, typ, op.Dest)
	dv.PostErrors("TextureToHostCopy")
}

// HostToBufferCopy uploads host memory into a buffer.
type HostToBufferCopy struct {
	// Src is the host data; SrcOffset and Size select the region.
	Src       []byte
	SrcOffset int

	// Buffer is the destination.
	Buffer *Buffer

	// DstOffset is the byte offset into the buffer.
	DstOffset int

	// Size is the number of bytes to copy.
	Size int
}

// Execute performs the upload. A zero-size copy or missing endpoint
// does nothing at all. A barrier afterwards makes the new contents
// visible to subsequent draws.
func (op HostToBufferCopy) Execute(dv *Device) {
	if op.Size == 0 || len(op.Src) == 0 || op.Buffer == nil || !op.Buffer.IsValid() {
		return
	}
	if op.SrcOffset < 0 || op.SrcOffset+op.Size > len(op.Src) {
		slog.Error("glgpu: host-to-buffer copy source region out of bounds",
			"buffer", op.Buffer.Name, "offset", op.SrcOffset,
			"size", op.Size, "len", len(op.Src))
		return
	}
	ctx := dv.ctx
	ctx.NamedBufferSubData(op.Buffer.handle, op.DstOffset,
		op.Src[op.SrcOffset:op.SrcOffset+op.Size])
	ctx.MemoryBarrier(BUFFER_UPDATE_BARRIER_BIT)
	dv.PostErrors("HostToBufferCopy")
}

// ResolveTexture resolves a multisample source texture into a
// single-sample destination via a framebuffer blit.
type ResolveTexture struct {
	// Source is the multisample texture.
	Source *Texture

	// Dest is the single-sample destination.
	Dest *Texture

	// SourceRegion and DestRegion are the blit rectangles as
	// (x0, y0, x1, y1).
	SourceRegion [4]int
	DestRegion   [4]int

	// Usage selects color or depth resolve.
	Usage TextureUsages
}

// Execute performs the resolve using two transient framebuffers, which
// are deleted on every path out. Prior framebuffer bindings are
// restored exactly.
func (op ResolveTexture) Execute(dv *Device) {
	if op.Source == nil || !op.Source.IsValid() || op.Dest == nil || !op.Dest.IsValid() {
		slog.Error("glgpu: resolve with missing source or destination texture")
		return
	}
	ctx := dv.ctx

	attachment := COLOR_ATTACHMENT0
	clearSlot := DEPTH_ATTACHMENT
	mask := COLOR_BUFFER_BIT
	if op.Usage.HasFlag(DepthTarget) {
		attachment = DEPTH_ATTACHMENT
		clearSlot = COLOR_ATTACHMENT0
		mask = DEPTH_BUFFER_BIT
	}

	readFB := ctx.CreateFramebuffer()
	drawFB := ctx.CreateFramebuffer()

	for _, fb := range []uint32{readFB, drawFB} {
		tex := op.Source
		if fb == drawFB {
			tex = op.Dest
		}
		ctx.NamedFramebufferTexture(fb, attachment, tex.handle, 0)
		// clear the unused slot so stale attachments from a recycled id
		// cannot affect completeness
		ctx.NamedFramebufferTexture(fb, clearSlot, 0, 0)
		if attachment == DEPTH_ATTACHMENT {
			ctx.NamedFramebufferDrawBuffers(fb, []Enum{NONE})
		} else {
			ctx.NamedFramebufferDrawBuffers(fb, []Enum{COLOR_ATTACHMENT0})
		}
	}

	complete := true
	for _, fb := range []uint32{readFB, drawFB} {
		if st := ctx.CheckNamedFramebufferStatus(fb, FRAMEBUFFER); st != FRAMEBUFFER_COMPLETE {
			slog.Error("glgpu: resolve framebuffer incomplete",
				"status", fmt.Sprintf("%#x", uint32(st)), "framebuffer", fb)
			complete = false
		}
	}
	if !complete {
		ctx.DeleteFramebuffer(readFB)
		ctx.DeleteFramebuffer(drawFB)
		return
	}

	ss := Capture(ctx, StateBlit)
	ctx.BindFramebuffer(READ_FRAMEBUFFER, readFB)
	ctx.BindFramebuffer(DRAW_FRAMEBUFFER, drawFB)
	ctx.BlitFramebuffer(
		op.SourceRegion[0], op.SourceRegion[1], op.SourceRegion[2], op.SourceRegion[3],
		op.DestRegion[0], op.DestRegion[1], op.DestRegion[2], op.DestRegion[3],
		mask, NEAREST)
	ss.Restore(ctx)

	ctx.DeleteFramebuffer(readFB)
	ctx.DeleteFramebuffer(drawFB)
	dv.PostErrors("ResolveTexture")
}

// ViewportOp sets the viewport rectangle (x, y, width, height).
type ViewportOp struct {
	Rect [4]int
}

func (op ViewportOp) Execute(dv *Device) {
	dv.ctx.Viewport(op.Rect[0], op.Rect[1], op.Rect[2], op.Rect[3])
}

// ScissorOp sets the scissor rectangle (x, y, width, height).
type ScissorOp struct {
	Rect [4]int
}

func (op ScissorOp) Execute(dv *Device) {
	dv.ctx.Scissor(op.Rect[0], op.Rect[1], op.Rect[2], op.Rect[3])
}

// PipelineBind makes a graphics pipeline current.
type PipelineBind struct {
	Pipeline *GraphicsPipeline
}

func (op PipelineBind) Execute(dv *Device) {
	if op.Pipeline == nil {
		return
	}
	op.Pipeline.Bind(dv)
	dv.PostErrors("PipelineBind")
}

// ResourceBind applies a set of shader resource bindings.
type ResourceBind struct {
	Bindings *ResourceBindings
}

func (op ResourceBind) Execute(dv *Device) {
	if op.Bindings == nil {
		return
	}
	op.Bindings.Bind(dv)
	dv.PostErrors("ResourceBind")
}

// VertexBuffersBind binds a run of vertex buffers to sequential binding
// slots starting at FirstBinding.
type VertexBuffersBind struct {
	FirstBinding int
	Buffers      []*Buffer
	ByteOffsets  []int
}

// Execute validates the whole set before binding anything: a length
// mismatch or a buffer without vertex usage aborts the operation with
// nothing bound.
func (op VertexBuffersBind) Execute(dv *Device) {
	if len(op.Buffers) != len(op.ByteOffsets) {
		slog.Error("glgpu: vertex buffer bind length mismatch",
			"buffers", len(op.Buffers), "offsets", len(op.ByteOffsets))
		return
	}
	for _, bf := range op.Buffers {
		if bf == nil {
			slog.Error("glgpu: vertex buffer bind with nil buffer")
			return
		}
		if !bf.Usage.HasFlag(VertexBuffer) {
			slog.Error("glgpu: binding non-vertex buffer as vertex input",
				"buffer", bf.Name)
			return
		}
	}
	ctx := dv.ctx
	for i, bf := range op.Buffers {
		ctx.BindVertexBuffer(op.FirstBinding+i, bf.handle, op.ByteOffsets[i], bf.Stride)
	}
	dv.PostErrors("VertexBuffersBind")
}

// IndexedDraw draws indexed triangles, possibly instanced.
type IndexedDraw struct {
	// IndexBuffer holds 32 bit indices.
	IndexBuffer *Buffer

	// IndexCount is the number of indices to draw.
	IndexCount int

	// IndexByteOffset is the byte offset of the first index.
	IndexByteOffset int

	// VertexOffset is added to each index before vertex fetch.
	VertexOffset int

	// InstanceCount must be at least 1.
	InstanceCount int
}

func (op IndexedDraw) Execute(dv *Device) {
	if op.InstanceCount < 1 {
		slog.Error("glgpu: indexed draw with zero instance count")
		return
	}
	if op.IndexBuffer == nil || !op.IndexBuffer.Usage.HasFlag(Index32Buffer) {
		name := "<nil>"
		if op.IndexBuffer != nil {
			name = op.IndexBuffer.Name
		}
		slog.Error("glgpu: indexed draw without a 32 bit index buffer", "buffer", name)
		return
	}
	ctx := dv.ctx
	ctx.BindBuffer(ELEMENT_ARRAY_BUFFER, op.IndexBuffer.handle)
	ctx.DrawElementsInstancedBaseVertex(TRIANGLES, op.IndexCount, UNSIGNED_INT,
		op.IndexByteOffset, op.InstanceCount, op.VertexOffset)
	dv.PostErrors("IndexedDraw")
}

// FramebufferBind binds the framebuffer for a render pass descriptor,
// applying per-attachment load operations and blend state.
type FramebufferBind struct {
	Desc RenderPassDescriptor
}

// Execute acquires (or reuses) the cached framebuffer for the
// descriptor's attachments, binds it, clears attachments whose load op
// says so, and configures per-attachment blending. Blending is enabled
// globally iff any attachment enables it.
func (op FramebufferBind) Execute(dv *Device) {
	if !op.Desc.HasAttachments() {
		slog.Error("glgpu: framebuffer bind with no attachments")
		return
	}
	ctx := dv.ctx
	fb := dv.AcquireFramebuffer(&op.Desc)
	ctx.BindFramebuffer(FRAMEBUFFER, fb)

	anyBlend := false
	for i, at := range op.Desc.ColorAttachments {
		if at.LoadOp == LoadOpClear {
			ctx.ClearBufferfv(COLOR, i, at.ClearValue)
		}
		bl := at.Blend
		if bl.Enabled {
			anyBlend = true
			ctx.BlendFuncSeparatei(i, bl.SrcColor.GL(), bl.DstColor.GL(),
				bl.SrcAlpha.GL(), bl.DstAlpha.GL())
			ctx.BlendEquationSeparatei(i, bl.ColorOp.GL(), bl.AlphaOp.GL())
		}
	}
	if da := op.Desc.DepthAttachment; da != nil && da.LoadOp == LoadOpClear {
		ctx.ClearBufferfv(DEPTH, 0, da.ClearValue)
	}
	if anyBlend {
		ctx.Enable(BLEND)
	} else {
		ctx.Disable(BLEND)
	}
	dv.PostErrors("FramebufferBind")
}
