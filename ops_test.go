// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu_test

import (
	"image"
	"testing"

	"cogentcore.org/glgpu"
	"cogentcore.org/glgpu/offscreen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTexture(dv *glgpu.Device, name string, w, h int, usage glgpu.TextureUsages) *glgpu.Texture {
	tx := glgpu.NewTexture(dv, name)
	tx.Ensure(glgpu.NewTextureFormat(image.Pt(w, h), glgpu.RGBA16Float, usage))
	return tx
}

func TestHostToBufferCopyZeroBytes(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	bf := glgpu.NewBuffer(dv, "dst", glgpu.VertexBuffer, 0)
	bf.Ensure(make([]byte, 16))

	cx.ResetCalls()
	dv.Run(glgpu.HostToBufferCopy{Src: nil, Buffer: bf, Size: 0})
	assert.Empty(t, cx.Calls, "zero-byte copy must perform zero device calls")
}

func TestHostToBufferCopyMissingSource(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	bf := glgpu.NewBuffer(dv, "dst", glgpu.VertexBuffer, 0)
	bf.Ensure(make([]byte, 16))

	cx.ResetCalls()
	dv.Run(glgpu.HostToBufferCopy{Src: nil, Buffer: bf, Size: 8})
	assert.Empty(t, cx.Calls, "copy without source data must perform zero device calls")

	// a source region past the end of the data aborts without touching
	// the buffer
	dv.Run(glgpu.HostToBufferCopy{Src: make([]byte, 4), SrcOffset: 2, Buffer: bf, Size: 8})
	assert.Equal(t, 0, cx.CallCount("NamedBufferSubData"))
	assert.Empty(t, cx.Barriers)
}

func TestHostToBufferCopy(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	bf := glgpu.NewBuffer(dv, "dst", glgpu.VertexBuffer, 0)
	bf.Ensure(make([]byte, 8))

	src := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	dv.Run(glgpu.HostToBufferCopy{Src: src, SrcOffset: 2, Buffer: bf, DstOffset: 1, Size: 4})

	assert.Equal(t, []byte{0, 2, 3, 4, 5, 0, 0, 0}, cx.Buffers[bf.Handle()].Data)
	require.Len(t, cx.Barriers, 1)
	assert.Equal(t, glgpu.BUFFER_UPDATE_BARRIER_BIT, cx.Barriers[0])
}

func TestTextureToHostCopy(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	tx := newTestTexture(dv, "src", 4, 4, glgpu.ColorTarget|glgpu.Sampled)
	dst := make([]byte, 4*4*8)

	dv.Run(glgpu.TextureToHostCopy{Texture: tx, NumLayers: 1, Dest: dst})
	assert.Equal(t, 1, cx.CallCount("GetTextureSubImage"))
	require.Len(t, cx.Barriers, 1)
	assert.Equal(t, glgpu.ALL_BARRIER_BITS, cx.Barriers[0])
}

func TestTextureToHostCopyGuards(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	tx := newTestTexture(dv, "src", 4, 4, glgpu.ColorTarget)
	cx.ResetCalls()

	// nil texture and empty destination skip quietly
	dv.Run(glgpu.TextureToHostCopy{Texture: nil, NumLayers: 1, Dest: make([]byte, 4)})
	dv.Run(glgpu.TextureToHostCopy{Texture: tx, NumLayers: 1, Dest: nil})
	// layer range beyond the texture aborts
	dv.Run(glgpu.TextureToHostCopy{Texture: tx, StartLayer: 1, NumLayers: 1, Dest: make([]byte, 4)})

	assert.Equal(t, 0, cx.CallCount("GetTextureSubImage"))
	assert.Empty(t, cx.Barriers)
}

func TestResolveTexture(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	src := glgpu.NewTexture(dv, "msaa")
	src.Ensure(glgpu.TextureFormat{Size: image.Pt(64, 64), Format: glgpu.RGBA16Float, Samples: 4, Layers: 1, Usage: glgpu.ColorTarget})
	dst := newTestTexture(dv, "resolved", 64, 64, glgpu.ColorTarget|glgpu.Sampled)

	cx.BindFramebuffer(glgpu.READ_FRAMEBUFFER, 5)
	cx.BindFramebuffer(glgpu.DRAW_FRAMEBUFFER, 6)
	nFBs := len(cx.Framebuffers)

	dv.Run(glgpu.ResolveTexture{
		Source:       src,
		Dest:         dst,
		SourceRegion: [4]int{0, 0, 64, 64},
		DestRegion:   [4]int{0, 0, 64, 64},
		Usage:        glgpu.ColorTarget,
	})

	require.Len(t, cx.Blits, 1)
	bl := cx.Blits[0]
	assert.Equal(t, glgpu.COLOR_BUFFER_BIT, bl.Mask)
	assert.Equal(t, glgpu.NEAREST, bl.Filter)
	assert.Equal(t, 64, bl.SrcX1)

	// transient framebuffers are gone, prior bindings are back
	assert.Len(t, cx.Framebuffers, nFBs)
	assert.Equal(t, uint32(5), cx.ReadFB)
	assert.Equal(t, uint32(6), cx.DrawFB)
}

func TestResolveTextureMissingDest(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	src := newTestTexture(dv, "msaa", 8, 8, glgpu.ColorTarget)
	cx.ResetCalls()

	dv.Run(glgpu.ResolveTexture{Source: src, Dest: glgpu.NewTexture(dv, "empty"), Usage: glgpu.ColorTarget})
	assert.Empty(t, cx.Blits)
	assert.Equal(t, 0, cx.CallCount("CreateFramebuffer"))
}

func TestVertexBuffersBind(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	a := glgpu.NewBuffer(dv, "a", glgpu.VertexBuffer, 12)
	a.Ensure(make([]byte, 36))
	b := glgpu.NewBuffer(dv, "b", glgpu.VertexBuffer, 8)
	b.Ensure(make([]byte, 24))

	dv.Run(glgpu.VertexBuffersBind{
		FirstBinding: 2,
		Buffers:      []*glgpu.Buffer{a, b},
		ByteOffsets:  []int{0, 8},
	})

	assert.Equal(t, offscreen.VertexBinding{Buffer: a.Handle(), Offset: 0, Stride: 12}, cx.VertexBindings[2])
	assert.Equal(t, offscreen.VertexBinding{Buffer: b.Handle(), Offset: 8, Stride: 8}, cx.VertexBindings[3])
}

func TestVertexBuffersBindRejects(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	vb := glgpu.NewBuffer(dv, "v", glgpu.VertexBuffer, 4)
	vb.Ensure(make([]byte, 4))
	ib := glgpu.NewBuffer(dv, "i", glgpu.Index32Buffer, 0)
	ib.Ensure(make([]byte, 4))
	cx.ResetCalls()

	// length mismatch binds nothing
	dv.Run(glgpu.VertexBuffersBind{Buffers: []*glgpu.Buffer{vb}, ByteOffsets: []int{0, 0}})
	assert.Empty(t, cx.VertexBindings)

	// wrong usage anywhere in the set binds nothing, even for the
	// valid buffers before it
	dv.Run(glgpu.VertexBuffersBind{Buffers: []*glgpu.Buffer{vb, ib}, ByteOffsets: []int{0, 0}})
	assert.Empty(t, cx.VertexBindings)

	// a nil buffer entry likewise binds nothing
	dv.Run(glgpu.VertexBuffersBind{Buffers: []*glgpu.Buffer{vb, nil}, ByteOffsets: []int{0, 0}})
	assert.Empty(t, cx.VertexBindings)
	assert.Equal(t, 0, cx.CallCount("BindVertexBuffer"))
}

func TestIndexedDraw(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	ib := glgpu.NewBuffer(dv, "indexes", glgpu.Index32Buffer, 0)
	ib.Ensure(make([]byte, 24))

	dv.Run(glgpu.IndexedDraw{IndexBuffer: ib, IndexCount: 6, InstanceCount: 1, VertexOffset: 4})
	require.Len(t, cx.DrawCalls, 1)
	dc := cx.DrawCalls[0]
	assert.Equal(t, glgpu.TRIANGLES, dc.Mode)
	assert.Equal(t, 6, dc.Count)
	assert.Equal(t, 1, dc.InstanceCount)
	assert.Equal(t, 4, dc.BaseVertex)
}

func TestIndexedDrawRejects(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	ib := glgpu.NewBuffer(dv, "indexes", glgpu.Index32Buffer, 0)
	ib.Ensure(make([]byte, 24))
	vb := glgpu.NewBuffer(dv, "verts", glgpu.VertexBuffer, 4)
	vb.Ensure(make([]byte, 24))

	dv.Run(glgpu.IndexedDraw{IndexBuffer: ib, IndexCount: 6, InstanceCount: 0})
	dv.Run(glgpu.IndexedDraw{IndexBuffer: vb, IndexCount: 6, InstanceCount: 1})
	dv.Run(glgpu.IndexedDraw{IndexBuffer: nil, IndexCount: 6, InstanceCount: 1})
	assert.Empty(t, cx.DrawCalls)
}

func TestFramebufferBind(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	color := newTestTexture(dv, "color", 32, 32, glgpu.ColorTarget)
	desc := glgpu.RenderPassDescriptor{
		ColorAttachments: []glgpu.AttachmentDescriptor{{
			Texture:    color,
			LoadOp:     glgpu.LoadOpClear,
			ClearValue: [4]float32{0, 0, 0, 1},
		}},
	}

	dv.Run(glgpu.FramebufferBind{Desc: desc})
	fb := cx.DrawFB
	require.NotZero(t, fb)
	assert.Equal(t, color.Handle(), cx.Framebuffers[fb].Color[glgpu.COLOR_ATTACHMENT0])
	assert.Equal(t, 1, cx.CallCount("ClearBufferfv"))
	assert.False(t, cx.IsEnabled(glgpu.BLEND))

	// same attachments reuse the cached framebuffer object
	cx.ResetCalls()
	dv.Run(glgpu.FramebufferBind{Desc: desc})
	assert.Equal(t, fb, cx.DrawFB)
	assert.Equal(t, 0, cx.CallCount("CreateFramebuffer"))
}

func TestFramebufferBindBlend(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	color := newTestTexture(dv, "color", 32, 32, glgpu.ColorTarget)
	dv.Run(glgpu.FramebufferBind{Desc: glgpu.RenderPassDescriptor{
		ColorAttachments: []glgpu.AttachmentDescriptor{{
			Texture: color,
			Blend: glgpu.BlendState{
				Enabled:  true,
				SrcColor: glgpu.BlendSrcAlpha,
				DstColor: glgpu.BlendOneMinusSrcAlpha,
				SrcAlpha: glgpu.BlendOne,
				DstAlpha: glgpu.BlendZero,
			},
		}},
	}})
	assert.True(t, cx.IsEnabled(glgpu.BLEND))
	assert.Equal(t, 1, cx.CallCount("BlendFuncSeparatei"))
	assert.Equal(t, 1, cx.CallCount("BlendEquationSeparatei"))
}

func TestFramebufferBindNoAttachments(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)
	cx.ResetCalls()

	dv.Run(glgpu.FramebufferBind{Desc: glgpu.RenderPassDescriptor{}})
	assert.Empty(t, cx.Calls)
}

func TestViewportScissorOps(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	dv.Run(
		glgpu.ViewportOp{Rect: [4]int{0, 0, 800, 600}},
		glgpu.ScissorOp{Rect: [4]int{10, 10, 100, 100}},
	)
	assert.Equal(t, [4]int{0, 0, 800, 600}, cx.ViewportRect)
	assert.Equal(t, [4]int{10, 10, 100, 100}, cx.ScissorRect)
}

func TestPipelineAndResourceBind(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	pr := glgpu.NewProgram(dv, "p")
	require.NoError(t, pr.Compile(testVtx, testFrag))
	tx := newTestTexture(dv, "t", 8, 8, glgpu.Sampled)

	dv.Run(
		glgpu.PipelineBind{Pipeline: &glgpu.GraphicsPipeline{
			Name: "pl", Program: pr, DepthWrite: false, DepthFn: glgpu.ALWAYS,
		}},
		glgpu.ResourceBind{Bindings: &glgpu.ResourceBindings{
			Textures: []glgpu.TextureBinding{{Unit: 0, Target: glgpu.TEXTURE_2D, Texture: tx}},
		}},
	)
	assert.Equal(t, pr.Handle(), cx.CurProgram)
	assert.False(t, cx.DepthWrite)
	assert.Equal(t, glgpu.ALWAYS, cx.DepthFn)
	assert.Equal(t, tx.Handle(), cx.BoundTexture(0, glgpu.TEXTURE_2D))

	// nil descriptors are no-ops
	cx.ResetCalls()
	dv.Run(glgpu.PipelineBind{}, glgpu.ResourceBind{})
	assert.Empty(t, cx.Calls)
}
