// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

// Context is the set of GL functions this package uses, expressed as an
// interface so the library can run against the real driver (glos) or a
// pure-Go emulation (offscreen). Method names and argument orders follow
// the GL functions they wrap, with Go types substituted for pointers:
// pixel uploads take slices, info logs return strings.
//
// A Context is only valid on the thread where the underlying GL context
// is current.
type Context interface {
	// queries
	GetError() Enum
	GetInteger(pname Enum) int
	GetInteger4(pname Enum) [4]int
	GetBoolean(pname Enum) bool
	IsEnabled(cap Enum) bool

	// capabilities and fixed-function state
	Enable(cap Enum)
	Disable(cap Enum)
	Viewport(x, y, width, height int)
	Scissor(x, y, width, height int)
	DepthMask(mask bool)
	StencilMask(mask uint32)
	DepthFunc(fn Enum)
	BlendFuncSeparatei(buf int, srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	BlendEquationSeparatei(buf int, modeRGB, modeAlpha Enum)

	// textures
	CreateTexture() uint32
	DeleteTexture(tex uint32)
	IsTexture(tex uint32) bool
	ActiveTexture(unit Enum)
	BindTexture(target Enum, tex uint32)
	TexParameteri(target, pname Enum, param Enum)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, typ Enum, pix []byte)
	TexImage2DMultisample(target Enum, samples int, internalFormat Enum, width, height int, fixedSampleLocations bool)
	TexImage3D(target Enum, level int, internalFormat Enum, width, height, depth int, format, typ Enum, pix []float32)
	GetTextureSubImage(tex uint32, level, x, y, z, width, height, depth int, format, typ Enum, dst []byte)

	// buffers
	CreateBuffer() uint32
	DeleteBuffer(buf uint32)
	BindBuffer(target Enum, buf uint32)
	BufferData(target Enum, data []byte, usage Enum)
	NamedBufferSubData(buf uint32, offset int, data []byte)
	BindVertexBuffer(bindingIndex int, buf uint32, offset, stride int)
	VertexAttribPointer(index int, size int, typ Enum, normalized bool, stride, offset int)
	EnableVertexAttribArray(index int)
	DisableVertexAttribArray(index int)

	// framebuffers
	CreateFramebuffer() uint32
	DeleteFramebuffer(fb uint32)
	BindFramebuffer(target Enum, fb uint32)
	FramebufferTexture2D(target, attachment, texTarget Enum, tex uint32, level int)
	NamedFramebufferTexture(fb uint32, attachment Enum, tex uint32, level int)
	NamedFramebufferDrawBuffers(fb uint32, bufs []Enum)
	CheckNamedFramebufferStatus(fb uint32, target Enum) Enum
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int, mask Enum, filter Enum)
	ClearBufferfv(buffer Enum, drawBuffer int, value [4]float32)

	// shaders and programs
	CreateProgram() uint32
	DeleteProgram(prog uint32)
	CreateShader(typ Enum) uint32
	DeleteShader(shader uint32)
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderi(shader uint32, pname Enum) int
	ShaderInfoLog(shader uint32) string
	AttachShader(prog, shader uint32)
	LinkProgram(prog uint32)
	GetProgrami(prog uint32, pname Enum) int
	ProgramInfoLog(prog uint32) string
	UseProgram(prog uint32)
	GetUniformLocation(prog uint32, name string) int32
	GetAttribLocation(prog uint32, name string) int32
	Uniform1i(location int32, v int32)

	// drawing and synchronization
	DrawArrays(mode Enum, first, count int)
	DrawElementsInstancedBaseVertex(mode Enum, count int, typ Enum, byteOffset int, instanceCount, baseVertex int)
	MemoryBarrier(barriers Enum)
}
