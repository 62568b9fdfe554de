// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glos implements [glgpu.Context] over the real OpenGL driver
// using github.com/go-gl/gl (v4.6 core profile). All methods must be
// called on the thread where the GL context is current; see
// [InitWindow] for a glfw-based setup helper.
package glos

import (
	"strings"
	"unsafe"

	"cogentcore.org/glgpu"
	gl "github.com/go-gl/gl/v4.6-core/gl"
)

// Context is the driver-backed implementation of [glgpu.Context].
type Context struct{}

var _ glgpu.Context = (*Context)(nil)

// NewContext returns a Context. The GL function pointers must already
// be loaded (gl.Init, done by [InitWindow]).
func NewContext() *Context {
	return &Context{}
}

func bytePtr(pix []byte) unsafe.Pointer {
	if len(pix) == 0 {
		return nil
	}
	return gl.Ptr(pix)
}

func floatPtr(pix []float32) unsafe.Pointer {
	if len(pix) == 0 {
		return nil
	}
	return gl.Ptr(pix)
}

// queries

func (cx *Context) GetError() glgpu.Enum {
	return glgpu.Enum(gl.GetError())
}

func (cx *Context) GetInteger(pname glgpu.Enum) int {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (cx *Context) GetInteger4(pname glgpu.Enum) [4]int {
	var v [4]int32
	gl.GetIntegerv(uint32(pname), &v[0])
	return [4]int{int(v[0]), int(v[1]), int(v[2]), int(v[3])}
}

func (cx *Context) GetBoolean(pname glgpu.Enum) bool {
	var v bool
	gl.GetBooleanv(uint32(pname), &v)
	return v
}

func (cx *Context) IsEnabled(cap glgpu.Enum) bool {
	return gl.IsEnabled(uint32(cap))
}

// capabilities and fixed-function state

func (cx *Context) Enable(cap glgpu.Enum)  { gl.Enable(uint32(cap)) }
func (cx *Context) Disable(cap glgpu.Enum) { gl.Disable(uint32(cap)) }

func (cx *Context) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (cx *Context) Scissor(x, y, width, height int) {
	gl.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (cx *Context) DepthMask(mask bool)       { gl.DepthMask(mask) }
func (cx *Context) StencilMask(mask uint32)   { gl.StencilMask(mask) }
func (cx *Context) DepthFunc(fn glgpu.Enum)   { gl.DepthFunc(uint32(fn)) }

func (cx *Context) BlendFuncSeparatei(buf int, srcRGB, dstRGB, srcAlpha, dstAlpha glgpu.Enum) {
	gl.BlendFuncSeparatei(uint32(buf), uint32(srcRGB), uint32(dstRGB), uint32(srcAlpha), uint32(dstAlpha))
}

func (cx *Context) BlendEquationSeparatei(buf int, modeRGB, modeAlpha glgpu.Enum) {
	gl.BlendEquationSeparatei(uint32(buf), uint32(modeRGB), uint32(modeAlpha))
}

// textures

func (cx *Context) CreateTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (cx *Context) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (cx *Context) IsTexture(tex uint32) bool {
	return gl.IsTexture(tex)
}

func (cx *Context) ActiveTexture(unit glgpu.Enum) {
	gl.ActiveTexture(uint32(unit))
}

func (cx *Context) BindTexture(target glgpu.Enum, tex uint32) {
	gl.BindTexture(uint32(target), tex)
}

func (cx *Context) TexParameteri(target, pname glgpu.Enum, param glgpu.Enum) {
	gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (cx *Context) TexImage2D(target glgpu.Enum, level int, internalFormat glgpu.Enum, width, height int, format, typ glgpu.Enum, pix []byte) {
	gl.TexImage2D(uint32(target), int32(level), int32(internalFormat),
		int32(width), int32(height), 0, uint32(format), uint32(typ), bytePtr(pix))
}

func (cx *Context) TexImage2DMultisample(target glgpu.Enum, samples int, internalFormat glgpu.Enum, width, height int, fixedSampleLocations bool) {
	gl.TexImage2DMultisample(uint32(target), int32(samples), uint32(internalFormat),
		int32(width), int32(height), fixedSampleLocations)
}

func (cx *Context) TexImage3D(target glgpu.Enum, level int, internalFormat glgpu.Enum, width, height, depth int, format, typ glgpu.Enum, pix []float32) {
	gl.TexImage3D(uint32(target), int32(level), int32(internalFormat),
		int32(width), int32(height), int32(depth), 0, uint32(format), uint32(typ), floatPtr(pix))
}

func (cx *Context) GetTextureSubImage(tex uint32, level, x, y, z, width, height, depth int, format, typ glgpu.Enum, dst []byte) {
	gl.GetTextureSubImage(tex, int32(level), int32(x), int32(y), int32(z),
		int32(width), int32(height), int32(depth), uint32(format), uint32(typ),
		int32(len(dst)), bytePtr(dst))
}

// buffers

func (cx *Context) CreateBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (cx *Context) DeleteBuffer(buf uint32) {
	gl.DeleteBuffers(1, &buf)
}

func (cx *Context) BindBuffer(target glgpu.Enum, buf uint32) {
	gl.BindBuffer(uint32(target), buf)
}

func (cx *Context) BufferData(target glgpu.Enum, data []byte, usage glgpu.Enum) {
	gl.BufferData(uint32(target), len(data), bytePtr(data), uint32(usage))
}

func (cx *Context) NamedBufferSubData(buf uint32, offset int, data []byte) {
	gl.NamedBufferSubData(buf, offset, len(data), bytePtr(data))
}

func (cx *Context) BindVertexBuffer(bindingIndex int, buf uint32, offset, stride int) {
	gl.BindVertexBuffer(uint32(bindingIndex), buf, offset, int32(stride))
}

func (cx *Context) VertexAttribPointer(index int, size int, typ glgpu.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(index), int32(size), uint32(typ), normalized, int32(stride), gl.PtrOffset(offset))
}

func (cx *Context) EnableVertexAttribArray(index int) {
	gl.EnableVertexAttribArray(uint32(index))
}

func (cx *Context) DisableVertexAttribArray(index int) {
	gl.DisableVertexAttribArray(uint32(index))
}

// framebuffers

func (cx *Context) CreateFramebuffer() uint32 {
	var f uint32
	gl.GenFramebuffers(1, &f)
	return f
}

func (cx *Context) DeleteFramebuffer(fb uint32) {
	gl.DeleteFramebuffers(1, &fb)
}

func (cx *Context) BindFramebuffer(target glgpu.Enum, fb uint32) {
	gl.BindFramebuffer(uint32(target), fb)
}

func (cx *Context) FramebufferTexture2D(target, attachment, texTarget glgpu.Enum, tex uint32, level int) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), tex, int32(level))
}

func (cx *Context) NamedFramebufferTexture(fb uint32, attachment glgpu.Enum, tex uint32, level int) {
	gl.NamedFramebufferTexture(fb, uint32(attachment), tex, int32(level))
}

func (cx *Context) NamedFramebufferDrawBuffers(fb uint32, bufs []glgpu.Enum) {
	gbufs := make([]uint32, len(bufs))
	for i, b := range bufs {
		gbufs[i] = uint32(b)
	}
	gl.NamedFramebufferDrawBuffers(fb, int32(len(gbufs)), &gbufs[0])
}

func (cx *Context) CheckNamedFramebufferStatus(fb uint32, target glgpu.Enum) glgpu.Enum {
	return glgpu.Enum(gl.CheckNamedFramebufferStatus(fb, uint32(target)))
}

func (cx *Context) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int, mask glgpu.Enum, filter glgpu.Enum) {
	gl.BlitFramebuffer(int32(srcX0), int32(srcY0), int32(srcX1), int32(srcY1),
		int32(dstX0), int32(dstY0), int32(dstX1), int32(dstY1),
		uint32(mask), uint32(filter))
}

func (cx *Context) ClearBufferfv(buffer glgpu.Enum, drawBuffer int, value [4]float32) {
	gl.ClearBufferfv(uint32(buffer), int32(drawBuffer), &value[0])
}

// shaders and programs

func (cx *Context) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (cx *Context) DeleteProgram(prog uint32) {
	gl.DeleteProgram(prog)
}

func (cx *Context) CreateShader(typ glgpu.Enum) uint32 {
	return gl.CreateShader(uint32(typ))
}

func (cx *Context) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (cx *Context) ShaderSource(shader uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
}

func (cx *Context) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (cx *Context) GetShaderi(shader uint32, pname glgpu.Enum) int {
	var v int32
	gl.GetShaderiv(shader, uint32(pname), &v)
	return int(v)
}

func (cx *Context) ShaderInfoLog(shader uint32) string {
	var length int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (cx *Context) AttachShader(prog, shader uint32) {
	gl.AttachShader(prog, shader)
}

func (cx *Context) LinkProgram(prog uint32) {
	gl.LinkProgram(prog)
}

func (cx *Context) GetProgrami(prog uint32, pname glgpu.Enum) int {
	var v int32
	gl.GetProgramiv(prog, uint32(pname), &v)
	return int(v)
}

func (cx *Context) ProgramInfoLog(prog uint32) string {
	var length int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	gl.GetProgramInfoLog(prog, length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (cx *Context) UseProgram(prog uint32) {
	gl.UseProgram(prog)
}

func (cx *Context) GetUniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func (cx *Context) GetAttribLocation(prog uint32, name string) int32 {
	return gl.GetAttribLocation(prog, gl.Str(name+"\x00"))
}

func (cx *Context) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

// drawing and synchronization

func (cx *Context) DrawArrays(mode glgpu.Enum, first, count int) {
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (cx *Context) DrawElementsInstancedBaseVertex(mode glgpu.Enum, count int, typ glgpu.Enum, byteOffset int, instanceCount, baseVertex int) {
	gl.DrawElementsInstancedBaseVertex(uint32(mode), int32(count), uint32(typ),
		gl.PtrOffset(byteOffset), int32(instanceCount), int32(baseVertex))
}

func (cx *Context) MemoryBarrier(barriers glgpu.Enum) {
	gl.MemoryBarrier(uint32(barriers))
}
