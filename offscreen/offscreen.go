// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package offscreen provides a pure-Go [glgpu.Context] that emulates
// the GL state machine in memory, with no GPU or window system.
// It exists for tests and headless rendering logic: object lifetimes,
// bindings, ambient state, and call sequences all behave like a real
// context and can be inspected directly.
package offscreen

import (
	"strings"

	"cogentcore.org/glgpu"
)

// TextureState is the emulated state of one texture object.
type TextureState struct {
	Target         glgpu.Enum
	InternalFormat glgpu.Enum
	Width          int
	Height         int
	Depth          int
	Samples        int
	Params         map[glgpu.Enum]glgpu.Enum
	Pix3D          []float32
}

// BufferState is the emulated state of one buffer object.
type BufferState struct {
	Data  []byte
	Usage glgpu.Enum
}

// FramebufferState is the emulated state of one framebuffer object.
type FramebufferState struct {
	Color    map[glgpu.Enum]uint32
	Depth    uint32
	DrawBufs []glgpu.Enum
}

// ShaderState is the emulated state of one shader object.
type ShaderState struct {
	Type     glgpu.Enum
	Source   string
	Compiled bool
}

// ProgramState is the emulated state of one program object.
type ProgramState struct {
	Shaders []uint32
	Sources []string
	Linked  bool
}

// VertexBinding records one glBindVertexBuffer call's arguments.
type VertexBinding struct {
	Buffer uint32
	Offset int
	Stride int
}

// DrawCall records one draw.
type DrawCall struct {
	Mode          glgpu.Enum
	Count         int
	InstanceCount int
	BaseVertex    int
	Program       uint32
}

// Blit records one framebuffer blit.
type Blit struct {
	ReadFB, DrawFB                 uint32
	SrcX0, SrcY0, SrcX1, SrcY1     int
	DstX0, DstY0, DstX1, DstY1     int
	Mask, Filter                   glgpu.Enum
}

// Context emulates the GL state machine. The zero value is not usable;
// call [NewContext]. All exported fields may be inspected by tests.
type Context struct {
	// Calls logs the name of every method invoked, in order.
	Calls []string

	// FailCompile forces the next CompileShader calls to fail.
	FailCompile bool

	// FailLink forces LinkProgram calls to fail.
	FailLink bool

	// object tables; ids are allocated sequentially from 1
	Textures     map[uint32]*TextureState
	Buffers      map[uint32]*BufferState
	Framebuffers map[uint32]*FramebufferState
	Shaders      map[uint32]*ShaderState
	Programs     map[uint32]*ProgramState

	// ambient state
	ReadFB          uint32
	DrawFB          uint32
	ViewportRect    [4]int
	ScissorRect     [4]int
	DepthWrite      bool
	StencilWrite    uint32
	DepthFn         glgpu.Enum
	Enabled         map[glgpu.Enum]bool
	ActiveUnit      glgpu.Enum
	UnitBindings    map[glgpu.Enum]map[glgpu.Enum]uint32 // unit -> target -> texture
	BoundBuffers    map[glgpu.Enum]uint32                // target -> buffer
	CurProgram      uint32
	VertexBindings  map[int]VertexBinding
	AttribArrays    map[int]bool

	// activity records
	Barriers  []glgpu.Enum
	DrawCalls []DrawCall
	Blits     []Blit
	Uniform1s map[int32]int32

	// Errors is a FIFO of error codes GetError will return.
	Errors []glgpu.Enum

	nextID uint32
}

var _ glgpu.Context = (*Context)(nil)

// NewContext returns an emulated context with GL's initial state:
// depth writes on, full stencil mask, LESS depth function, unit 0
// active, nothing bound.
func NewContext() *Context {
	return &Context{
		Textures:     make(map[uint32]*TextureState),
		Buffers:      make(map[uint32]*BufferState),
		Framebuffers: make(map[uint32]*FramebufferState),
		Shaders:      make(map[uint32]*ShaderState),
		Programs:     make(map[uint32]*ProgramState),
		DepthWrite:   true,
		StencilWrite: 0xFFFFFFFF,
		DepthFn:      glgpu.LESS,
		Enabled:      make(map[glgpu.Enum]bool),
		ActiveUnit:   glgpu.TEXTURE0,
		UnitBindings: make(map[glgpu.Enum]map[glgpu.Enum]uint32),
		BoundBuffers: make(map[glgpu.Enum]uint32),
		VertexBindings: make(map[int]VertexBinding),
		AttribArrays:   make(map[int]bool),
		Uniform1s:      make(map[int32]int32),
		nextID:         1,
	}
}

// ResetCalls clears the call log and activity records, keeping all
// object and ambient state.
func (cx *Context) ResetCalls() {
	cx.Calls = nil
	cx.Barriers = nil
	cx.DrawCalls = nil
	cx.Blits = nil
}

// CallCount returns how many times the named method was invoked since
// the last ResetCalls.
func (cx *Context) CallCount(name string) int {
	n := 0
	for _, c := range cx.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (cx *Context) log(name string) {
	cx.Calls = append(cx.Calls, name)
}

func (cx *Context) newID() uint32 {
	id := cx.nextID
	cx.nextID++
	return id
}

func (cx *Context) unit(u glgpu.Enum) map[glgpu.Enum]uint32 {
	m := cx.UnitBindings[u]
	if m == nil {
		m = make(map[glgpu.Enum]uint32)
		cx.UnitBindings[u] = m
	}
	return m
}

// BoundTexture returns the texture bound to the given unit and target.
func (cx *Context) BoundTexture(unit int, target glgpu.Enum) uint32 {
	return cx.unit(glgpu.TEXTURE0 + glgpu.Enum(unit))[target]
}

// queries

func (cx *Context) GetError() glgpu.Enum {
	if len(cx.Errors) == 0 {
		return glgpu.NO_ERROR
	}
	err := cx.Errors[0]
	cx.Errors = cx.Errors[1:]
	return err
}

func (cx *Context) GetInteger(pname glgpu.Enum) int {
	switch pname {
	case glgpu.READ_FRAMEBUFFER_BINDING:
		return int(cx.ReadFB)
	case glgpu.DRAW_FRAMEBUFFER_BINDING:
		return int(cx.DrawFB)
	case glgpu.DEPTH_FUNC:
		return int(cx.DepthFn)
	case glgpu.STENCIL_WRITEMASK:
		return int(cx.StencilWrite)
	case glgpu.ACTIVE_TEXTURE:
		return int(cx.ActiveUnit)
	case glgpu.TEXTURE_BINDING_2D:
		return int(cx.unit(cx.ActiveUnit)[glgpu.TEXTURE_2D])
	case glgpu.TEXTURE_BINDING_3D:
		return int(cx.unit(cx.ActiveUnit)[glgpu.TEXTURE_3D])
	}
	return 0
}

func (cx *Context) GetInteger4(pname glgpu.Enum) [4]int {
	switch pname {
	case glgpu.VIEWPORT:
		return cx.ViewportRect
	case glgpu.SCISSOR_BOX:
		return cx.ScissorRect
	}
	return [4]int{}
}

func (cx *Context) GetBoolean(pname glgpu.Enum) bool {
	if pname == glgpu.DEPTH_WRITEMASK {
		return cx.DepthWrite
	}
	return false
}

func (cx *Context) IsEnabled(cap glgpu.Enum) bool {
	return cx.Enabled[cap]
}

// capabilities and fixed-function state

func (cx *Context) Enable(cap glgpu.Enum) {
	cx.log("Enable")
	cx.Enabled[cap] = true
}

func (cx *Context) Disable(cap glgpu.Enum) {
	cx.log("Disable")
	cx.Enabled[cap] = false
}

func (cx *Context) Viewport(x, y, width, height int) {
	cx.log("Viewport")
	cx.ViewportRect = [4]int{x, y, width, height}
}

func (cx *Context) Scissor(x, y, width, height int) {
	cx.log("Scissor")
	cx.ScissorRect = [4]int{x, y, width, height}
}

func (cx *Context) DepthMask(mask bool) {
	cx.log("DepthMask")
	cx.DepthWrite = mask
}

func (cx *Context) StencilMask(mask uint32) {
	cx.log("StencilMask")
	cx.StencilWrite = mask
}

func (cx *Context) DepthFunc(fn glgpu.Enum) {
	cx.log("DepthFunc")
	cx.DepthFn = fn
}

func (cx *Context) BlendFuncSeparatei(buf int, srcRGB, dstRGB, srcAlpha, dstAlpha glgpu.Enum) {
	cx.log("BlendFuncSeparatei")
}

func (cx *Context) BlendEquationSeparatei(buf int, modeRGB, modeAlpha glgpu.Enum) {
	cx.log("BlendEquationSeparatei")
}

// textures

func (cx *Context) CreateTexture() uint32 {
	cx.log("CreateTexture")
	id := cx.newID()
	cx.Textures[id] = &TextureState{Params: make(map[glgpu.Enum]glgpu.Enum)}
	return id
}

func (cx *Context) DeleteTexture(tex uint32) {
	cx.log("DeleteTexture")
	delete(cx.Textures, tex)
}

func (cx *Context) IsTexture(tex uint32) bool {
	_, ok := cx.Textures[tex]
	return ok
}

func (cx *Context) ActiveTexture(unit glgpu.Enum) {
	cx.log("ActiveTexture")
	cx.ActiveUnit = unit
}

func (cx *Context) BindTexture(target glgpu.Enum, tex uint32) {
	cx.log("BindTexture")
	cx.unit(cx.ActiveUnit)[target] = tex
	if ts := cx.Textures[tex]; ts != nil {
		ts.Target = target
	}
}

func (cx *Context) active(target glgpu.Enum) *TextureState {
	return cx.Textures[cx.unit(cx.ActiveUnit)[target]]
}

func (cx *Context) TexParameteri(target, pname glgpu.Enum, param glgpu.Enum) {
	cx.log("TexParameteri")
	if ts := cx.active(target); ts != nil {
		ts.Params[pname] = param
	}
}

func (cx *Context) TexImage2D(target glgpu.Enum, level int, internalFormat glgpu.Enum, width, height int, format, typ glgpu.Enum, pix []byte) {
	cx.log("TexImage2D")
	if ts := cx.active(target); ts != nil {
		ts.InternalFormat = internalFormat
		ts.Width, ts.Height, ts.Depth = width, height, 1
		ts.Samples = 1
	}
}

func (cx *Context) TexImage2DMultisample(target glgpu.Enum, samples int, internalFormat glgpu.Enum, width, height int, fixedSampleLocations bool) {
	cx.log("TexImage2DMultisample")
	if ts := cx.active(target); ts != nil {
		ts.InternalFormat = internalFormat
		ts.Width, ts.Height, ts.Depth = width, height, 1
		ts.Samples = samples
	}
}

func (cx *Context) TexImage3D(target glgpu.Enum, level int, internalFormat glgpu.Enum, width, height, depth int, format, typ glgpu.Enum, pix []float32) {
	cx.log("TexImage3D")
	if ts := cx.active(target); ts != nil {
		ts.InternalFormat = internalFormat
		ts.Width, ts.Height, ts.Depth = width, height, depth
		ts.Samples = 1
		ts.Pix3D = append([]float32(nil), pix...)
	}
}

func (cx *Context) GetTextureSubImage(tex uint32, level, x, y, z, width, height, depth int, format, typ glgpu.Enum, dst []byte) {
	cx.log("GetTextureSubImage")
}

// buffers

func (cx *Context) CreateBuffer() uint32 {
	cx.log("CreateBuffer")
	id := cx.newID()
	cx.Buffers[id] = &BufferState{}
	return id
}

func (cx *Context) DeleteBuffer(buf uint32) {
	cx.log("DeleteBuffer")
	delete(cx.Buffers, buf)
}

func (cx *Context) BindBuffer(target glgpu.Enum, buf uint32) {
	cx.log("BindBuffer")
	cx.BoundBuffers[target] = buf
}

func (cx *Context) BufferData(target glgpu.Enum, data []byte, usage glgpu.Enum) {
	cx.log("BufferData")
	if bs := cx.Buffers[cx.BoundBuffers[target]]; bs != nil {
		bs.Data = append([]byte(nil), data...)
		bs.Usage = usage
	}
}

func (cx *Context) NamedBufferSubData(buf uint32, offset int, data []byte) {
	cx.log("NamedBufferSubData")
	if bs := cx.Buffers[buf]; bs != nil && offset+len(data) <= len(bs.Data) {
		copy(bs.Data[offset:], data)
	}
}

func (cx *Context) BindVertexBuffer(bindingIndex int, buf uint32, offset, stride int) {
	cx.log("BindVertexBuffer")
	cx.VertexBindings[bindingIndex] = VertexBinding{Buffer: buf, Offset: offset, Stride: stride}
}

func (cx *Context) VertexAttribPointer(index int, size int, typ glgpu.Enum, normalized bool, stride, offset int) {
	cx.log("VertexAttribPointer")
}

func (cx *Context) EnableVertexAttribArray(index int) {
	cx.log("EnableVertexAttribArray")
	cx.AttribArrays[index] = true
}

func (cx *Context) DisableVertexAttribArray(index int) {
	cx.log("DisableVertexAttribArray")
	cx.AttribArrays[index] = false
}

// framebuffers

func (cx *Context) CreateFramebuffer() uint32 {
	cx.log("CreateFramebuffer")
	id := cx.newID()
	cx.Framebuffers[id] = &FramebufferState{Color: make(map[glgpu.Enum]uint32)}
	return id
}

func (cx *Context) DeleteFramebuffer(fb uint32) {
	cx.log("DeleteFramebuffer")
	delete(cx.Framebuffers, fb)
	if cx.ReadFB == fb {
		cx.ReadFB = 0
	}
	if cx.DrawFB == fb {
		cx.DrawFB = 0
	}
}

func (cx *Context) BindFramebuffer(target glgpu.Enum, fb uint32) {
	cx.log("BindFramebuffer")
	switch target {
	case glgpu.READ_FRAMEBUFFER:
		cx.ReadFB = fb
	case glgpu.DRAW_FRAMEBUFFER:
		cx.DrawFB = fb
	case glgpu.FRAMEBUFFER:
		cx.ReadFB = fb
		cx.DrawFB = fb
	}
}

func (cx *Context) fbState(fb uint32) *FramebufferState {
	return cx.Framebuffers[fb]
}

func (cx *Context) attach(fs *FramebufferState, attachment glgpu.Enum, tex uint32) {
	if fs == nil {
		return
	}
	if attachment == glgpu.DEPTH_ATTACHMENT {
		fs.Depth = tex
	} else {
		fs.Color[attachment] = tex
	}
}

func (cx *Context) FramebufferTexture2D(target, attachment, texTarget glgpu.Enum, tex uint32, level int) {
	cx.log("FramebufferTexture2D")
	fb := cx.DrawFB
	if target == glgpu.READ_FRAMEBUFFER {
		fb = cx.ReadFB
	}
	cx.attach(cx.fbState(fb), attachment, tex)
}

func (cx *Context) NamedFramebufferTexture(fb uint32, attachment glgpu.Enum, tex uint32, level int) {
	cx.log("NamedFramebufferTexture")
	cx.attach(cx.fbState(fb), attachment, tex)
}

func (cx *Context) NamedFramebufferDrawBuffers(fb uint32, bufs []glgpu.Enum) {
	cx.log("NamedFramebufferDrawBuffers")
	if fs := cx.fbState(fb); fs != nil {
		fs.DrawBufs = append([]glgpu.Enum(nil), bufs...)
	}
}

func (cx *Context) CheckNamedFramebufferStatus(fb uint32, target glgpu.Enum) glgpu.Enum {
	fs := cx.fbState(fb)
	if fs == nil {
		return 0
	}
	// complete iff every attached texture id refers to a live texture
	for _, tex := range fs.Color {
		if tex != 0 && !cx.IsTexture(tex) {
			return 0x8CD7 // FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}
	}
	if fs.Depth != 0 && !cx.IsTexture(fs.Depth) {
		return 0x8CD7
	}
	return glgpu.FRAMEBUFFER_COMPLETE
}

func (cx *Context) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int, mask glgpu.Enum, filter glgpu.Enum) {
	cx.log("BlitFramebuffer")
	cx.Blits = append(cx.Blits, Blit{
		ReadFB: cx.ReadFB, DrawFB: cx.DrawFB,
		SrcX0: srcX0, SrcY0: srcY0, SrcX1: srcX1, SrcY1: srcY1,
		DstX0: dstX0, DstY0: dstY0, DstX1: dstX1, DstY1: dstY1,
		Mask: mask, Filter: filter,
	})
}

func (cx *Context) ClearBufferfv(buffer glgpu.Enum, drawBuffer int, value [4]float32) {
	cx.log("ClearBufferfv")
}

// shaders and programs

func (cx *Context) CreateProgram() uint32 {
	cx.log("CreateProgram")
	id := cx.newID()
	cx.Programs[id] = &ProgramState{}
	return id
}

func (cx *Context) DeleteProgram(prog uint32) {
	cx.log("DeleteProgram")
	delete(cx.Programs, prog)
}

func (cx *Context) CreateShader(typ glgpu.Enum) uint32 {
	cx.log("CreateShader")
	id := cx.newID()
	cx.Shaders[id] = &ShaderState{Type: typ}
	return id
}

func (cx *Context) DeleteShader(shader uint32) {
	cx.log("DeleteShader")
	delete(cx.Shaders, shader)
}

func (cx *Context) ShaderSource(shader uint32, src string) {
	cx.log("ShaderSource")
	if ss := cx.Shaders[shader]; ss != nil {
		ss.Source = src
	}
}

func (cx *Context) CompileShader(shader uint32) {
	cx.log("CompileShader")
	if ss := cx.Shaders[shader]; ss != nil {
		ss.Compiled = !cx.FailCompile
	}
}

func (cx *Context) GetShaderi(shader uint32, pname glgpu.Enum) int {
	if ss := cx.Shaders[shader]; ss != nil && pname == glgpu.COMPILE_STATUS && ss.Compiled {
		return 1
	}
	return 0
}

func (cx *Context) ShaderInfoLog(shader uint32) string {
	return "forced compile failure"
}

func (cx *Context) AttachShader(prog, shader uint32) {
	cx.log("AttachShader")
	ps := cx.Programs[prog]
	ss := cx.Shaders[shader]
	if ps == nil || ss == nil {
		return
	}
	ps.Shaders = append(ps.Shaders, shader)
	ps.Sources = append(ps.Sources, ss.Source)
}

func (cx *Context) LinkProgram(prog uint32) {
	cx.log("LinkProgram")
	if ps := cx.Programs[prog]; ps != nil {
		ps.Linked = !cx.FailLink
	}
}

func (cx *Context) GetProgrami(prog uint32, pname glgpu.Enum) int {
	if ps := cx.Programs[prog]; ps != nil && pname == glgpu.LINK_STATUS && ps.Linked {
		return 1
	}
	return 0
}

func (cx *Context) ProgramInfoLog(prog uint32) string {
	return "forced link failure"
}

func (cx *Context) UseProgram(prog uint32) {
	cx.log("UseProgram")
	cx.CurProgram = prog
}

// GetUniformLocation reports a valid location iff the name occurs in
// one of the attached shader sources, which is how managed-vs-simple
// shader variants are distinguished in tests. Locations are stable per
// name within a program.
func (cx *Context) GetUniformLocation(prog uint32, name string) int32 {
	ps := cx.Programs[prog]
	if ps == nil {
		return -1
	}
	for _, src := range ps.Sources {
		if strings.Contains(src, name) {
			return cx.nameLocation(name)
		}
	}
	return -1
}

func (cx *Context) GetAttribLocation(prog uint32, name string) int32 {
	return cx.GetUniformLocation(prog, name)
}

func (cx *Context) nameLocation(name string) int32 {
	loc := int32(0)
	for _, r := range name {
		loc = (loc*31 + int32(r)) & 0x7F
	}
	return loc
}

func (cx *Context) Uniform1i(location int32, v int32) {
	cx.log("Uniform1i")
	cx.Uniform1s[location] = v
}

// drawing and synchronization

func (cx *Context) DrawArrays(mode glgpu.Enum, first, count int) {
	cx.log("DrawArrays")
	cx.DrawCalls = append(cx.DrawCalls, DrawCall{Mode: mode, Count: count, InstanceCount: 1, Program: cx.CurProgram})
}

func (cx *Context) DrawElementsInstancedBaseVertex(mode glgpu.Enum, count int, typ glgpu.Enum, byteOffset int, instanceCount, baseVertex int) {
	cx.log("DrawElementsInstancedBaseVertex")
	cx.DrawCalls = append(cx.DrawCalls, DrawCall{
		Mode: mode, Count: count, InstanceCount: instanceCount,
		BaseVertex: baseVertex, Program: cx.CurProgram,
	})
}

func (cx *Context) MemoryBarrier(barriers glgpu.Enum) {
	cx.log("MemoryBarrier")
	cx.Barriers = append(cx.Barriers, barriers)
}
