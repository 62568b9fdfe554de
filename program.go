// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

import "fmt"

// Program wraps one linked GL shader program and caches uniform and
// attribute locations. There is no descriptor comparison: a Program is
// rebuilt when its owner explicitly releases it, typically because the
// parameters its source was generated from changed.
type Program struct {
	// Name for error and debug messages.
	Name string

	dv     *Device
	handle uint32

	uniforms map[string]int32
	attribs  map[string]int32
}

// NewProgram returns a new empty Program on the given device.
func NewProgram(dv *Device, name string) *Program {
	return &Program{Name: name, dv: dv}
}

// Handle returns the native GL program id, 0 if not linked.
func (pr *Program) Handle() uint32 {
	return pr.handle
}

// IsValid returns whether a linked program currently exists.
func (pr *Program) IsValid() bool {
	return pr.handle != 0
}

// Compile compiles the vertex source, then the fragment source, then
// links them. On any failure it returns an error carrying the info log
// and leaves the Program invalid, with all partial objects deleted.
// The caller decides what a failed compile means; here it means only
// that this Program cannot be used.
func (pr *Program) Compile(vtxSrc, fragSrc string) error {
	ctx := pr.dv.ctx
	vtx, err := pr.compileShader(VERTEX_SHADER, "vertex", vtxSrc)
	if err != nil {
		return err
	}
	frag, err := pr.compileShader(FRAGMENT_SHADER, "fragment", fragSrc)
	if err != nil {
		ctx.DeleteShader(vtx)
		return err
	}
	prog := ctx.CreateProgram()
	ctx.AttachShader(prog, vtx)
	ctx.AttachShader(prog, frag)
	ctx.LinkProgram(prog)
	ctx.DeleteShader(vtx)
	ctx.DeleteShader(frag)
	if ctx.GetProgrami(prog, LINK_STATUS) == 0 {
		log := ctx.ProgramInfoLog(prog)
		ctx.DeleteProgram(prog)
		return fmt.Errorf("glgpu: program %s link failed: %s", pr.Name, log)
	}
	pr.handle = prog
	pr.uniforms = make(map[string]int32)
	pr.attribs = make(map[string]int32)
	return nil
}

func (pr *Program) compileShader(typ Enum, kind, src string) (uint32, error) {
	ctx := pr.dv.ctx
	sh := ctx.CreateShader(typ)
	ctx.ShaderSource(sh, src)
	ctx.CompileShader(sh)
	if ctx.GetShaderi(sh, COMPILE_STATUS) == 0 {
		log := ctx.ShaderInfoLog(sh)
		ctx.DeleteShader(sh)
		return 0, fmt.Errorf("glgpu: program %s: %s shader compile failed: %s", pr.Name, kind, log)
	}
	return sh, nil
}

// UniformLocation returns the location of the named uniform, caching
// the lookup. Returns -1 if the uniform does not exist in the program
// or the program is not linked.
func (pr *Program) UniformLocation(name string) int32 {
	if !pr.IsValid() {
		return -1
	}
	if loc, ok := pr.uniforms[name]; ok {
		return loc
	}
	loc := pr.dv.ctx.GetUniformLocation(pr.handle, name)
	pr.uniforms[name] = loc
	return loc
}

// AttribLocation returns the location of the named vertex attribute,
// caching the lookup. Returns -1 if the attribute does not exist or
// the program is not linked.
func (pr *Program) AttribLocation(name string) int32 {
	if !pr.IsValid() {
		return -1
	}
	if loc, ok := pr.attribs[name]; ok {
		return loc
	}
	loc := pr.dv.ctx.GetAttribLocation(pr.handle, name)
	pr.attribs[name] = loc
	return loc
}

// Use makes this the current program.
func (pr *Program) Use() {
	pr.dv.ctx.UseProgram(pr.handle)
}

// Release deletes the linked program, invalidating all cached
// locations. The Program can be compiled again afterwards.
func (pr *Program) Release() {
	if pr.handle == 0 {
		return
	}
	pr.dv.ctx.DeleteProgram(pr.handle)
	pr.handle = 0
	pr.uniforms = nil
	pr.attribs = nil
}
