// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

// Buffer wraps one native GL buffer object. It is created on first
// [Buffer.Ensure] and destroyed via [Buffer.Release]. Unlike textures,
// buffers are create-once: a size change recreates, but equal-size
// uploads reuse the existing object.
type Buffer struct {
	// Name for error and debug messages.
	Name string

	// Usage records what this buffer is for; binding operations
	// verify it.
	Usage BufferUsages

	// Stride is the byte stride between consecutive vertices, used
	// when the buffer is bound as a vertex buffer.
	Stride int

	dv     *Device
	handle uint32
	size   int
}

// NewBuffer returns a new empty Buffer on the given device.
func NewBuffer(dv *Device, name string, usage BufferUsages, stride int) *Buffer {
	return &Buffer{Name: name, Usage: usage, Stride: stride, dv: dv}
}

// Handle returns the native GL buffer id, 0 if not yet created.
func (bf *Buffer) Handle() uint32 {
	return bf.handle
}

// IsValid returns whether a native buffer currently exists.
func (bf *Buffer) IsValid() bool {
	return bf.handle != 0
}

// Size returns the current byte size of the native buffer.
func (bf *Buffer) Size() int {
	return bf.size
}

// glTarget returns the GL binding target matching this buffer's usage.
func (bf *Buffer) glTarget() Enum {
	if bf.Usage.HasFlag(Index32Buffer) {
		return ELEMENT_ARRAY_BUFFER
	}
	return ARRAY_BUFFER
}

// Ensure makes the native buffer exist with the given contents.
// If a buffer of the same size already exists, the data is uploaded
// in place and the native id is unchanged.
func (bf *Buffer) Ensure(data []byte) {
	ctx := bf.dv.ctx
	if bf.handle != 0 && bf.size == len(data) {
		ctx.NamedBufferSubData(bf.handle, 0, data)
		return
	}
	bf.Release()
	bf.handle = ctx.CreateBuffer()
	bf.size = len(data)
	target := bf.glTarget()
	ctx.BindBuffer(target, bf.handle)
	ctx.BufferData(target, data, STATIC_DRAW)
	ctx.BindBuffer(target, 0)
}

// Release destroys the native buffer if one exists.
func (bf *Buffer) Release() {
	if bf.handle == 0 {
		return
	}
	bf.dv.ctx.DeleteBuffer(bf.handle)
	bf.handle = 0
	bf.size = 0
}
