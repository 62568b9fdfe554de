// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colorcorrect implements a full-screen color-correction
// post-process stage over glgpu: either a plain sRGB transfer curve, or
// a managed display transform produced by a color-management [Engine]
// as generated shader code plus a 3D lookup table.
//
// The stage is driven once per frame: [Corrector.SetParams] when the
// configuration changes, then [Corrector.Prepare] and
// [Corrector.Apply]. All GPU resources are cached between frames and
// rebuilt only when the parameters that shaped them change.
package colorcorrect

import (
	"encoding/binary"
	"image"
	"log/slog"
	"math"
	"os"
	"strconv"

	"cogentcore.org/glgpu"
)

// DefaultLUTSize is the lookup table edge length used when Params does
// not specify one.
const DefaultLUTSize = 65

// lutSizeEnv overrides the lookup table edge length when set to a
// positive integer.
const lutSizeEnv = "GLGPU_LUT3D_EDGE_SIZE"

// The full-screen draw uses one oversized triangle covering the
// viewport: three vertices of position (vec4) and uv (vec2).
var fullscreenTriangle = []float32{
	-1, 3, -1, 1, 0, 2,
	-1, -1, -1, 1, 0, 0,
	3, -1, -1, 1, 2, 0,
}

const vertexStride = 6 * 4 // pos4 + uv2, float32
const uvByteOffset = 4 * 4

// Corrector is the color-correction stage. Create one with
// [NewCorrector], feed it params and frames, and [Corrector.Release]
// it when done. Not safe for concurrent use; all methods must run on
// the GL thread.
type Corrector struct {
	dv     *glgpu.Device
	engine Engine
	params Params

	program *glgpu.Program
	texture *glgpu.Texture // scratch copy of the frame being corrected
	lut     *glgpu.Texture
	vtx     *glgpu.Buffer
	copyFB  *glgpu.Framebuffer
	aovFB   *glgpu.Framebuffer

	// aov is the texture set by Prepare for this frame, nil when the
	// stage reads from the currently bound framebuffer instead.
	aov *glgpu.Texture

	// managed records whether the current program was built with the
	// engine's display transform.
	managed bool
}

// NewCorrector returns a Corrector on the given device using the given
// color-management engine. A nil engine means managed mode can never
// activate.
func NewCorrector(dv *glgpu.Device, engine Engine) *Corrector {
	return &Corrector{
		dv:      dv,
		engine:  engine,
		program: glgpu.NewProgram(dv, "colorcorrect"),
		texture: glgpu.NewTexture(dv, "colorcorrect-scratch"),
		lut:     glgpu.NewTexture(dv, "colorcorrect-lut"),
		vtx:     glgpu.NewBuffer(dv, "colorcorrect-triangle", glgpu.VertexBuffer, vertexStride),
		copyFB:  glgpu.NewFramebuffer(dv, "colorcorrect-copy"),
		aovFB:   glgpu.NewFramebuffer(dv, "colorcorrect-aov"),
	}
}

// Params returns the current parameters.
func (cc *Corrector) Params() Params {
	return cc.params
}

// SetParams replaces the parameters wholesale. Any change beyond the
// framebuffer size invalidates the shader program and lookup table;
// resources shaped by the size alone are reconciled lazily on the next
// frame.
func (cc *Corrector) SetParams(p Params) {
	if cc.params == p {
		return
	}
	old := cc.params
	cc.params = p
	old.FramebufferSize = p.FramebufferSize
	if old != p {
		cc.program.Release()
		cc.lut.Release()
	}
}

// useManaged reports whether this frame runs the managed path: managed
// mode requested and an engine configuration actually present.
func (cc *Corrector) useManaged() bool {
	return cc.params.Mode == ModeManaged && cc.engine != nil && cc.engine.Available()
}

// lutEdge resolves the lookup table edge length: Params.LUTSize,
// defaulted, then overridden by the environment.
func (cc *Corrector) lutEdge() int {
	edge := cc.params.LUTSize
	if edge <= 0 {
		edge = DefaultLUTSize
	}
	if ev := os.Getenv(lutSizeEnv); ev != "" {
		if n, err := strconv.Atoi(ev); err == nil && n > 0 {
			edge = n
		} else {
			slog.Warn("colorcorrect: ignoring invalid LUT size override",
				"env", lutSizeEnv, "value", ev)
		}
	}
	return edge
}

// ensureProgram builds the shader program if it is not currently valid,
// including the engine transform and lookup table in managed mode.
// Returns an error when compilation or the engine fails; the frame is
// then skipped and the next SetParams or frame retries.
func (cc *Corrector) ensureProgram() error {
	if cc.program.IsValid() {
		return nil
	}
	managed := cc.useManaged()
	engineText := ""
	if managed {
		edge := cc.lutEdge()
		res, err := cc.engine.Transform(TransformRequest{
			Display:    cc.params.Display,
			View:       cc.params.View,
			ColorSpace: cc.params.ColorSpace,
			Look:       cc.params.Look,
			EdgeLen:    edge,
		})
		if err != nil {
			return err
		}
		engineText = res.ShaderText
		cc.lut.EnsureLUT(res.EdgeLen, res.LUT)
	}
	vtxSrc, err := composeVertex()
	if err != nil {
		return err
	}
	fragSrc, err := composeFragment(engineText)
	if err != nil {
		return err
	}
	if err := cc.program.Compile(vtxSrc, fragSrc); err != nil {
		return err
	}
	cc.managed = managed

	// sampler units are fixed: frame color on 0, LUT on 1
	cc.program.Use()
	cc.dv.Context().Uniform1i(cc.program.UniformLocation("colorIn"), 0)
	if managed {
		cc.dv.Context().Uniform1i(cc.program.UniformLocation("LUT3dIn"), 1)
	}
	cc.dv.Context().UseProgram(0)
	return nil
}

// frameSize returns the effective output size: the configured
// framebuffer size, or the ambient viewport when none is set.
func (cc *Corrector) frameSize() image.Point {
	sz := cc.params.FramebufferSize
	if sz.X <= 0 || sz.Y <= 0 {
		vp := cc.dv.Context().GetInteger4(glgpu.VIEWPORT)
		sz = image.Pt(vp[2], vp[3])
	}
	return sz
}

// ensureResources reconciles the scratch texture, vertex buffer, and
// copy framebuffer with the current framebuffer size.
func (cc *Corrector) ensureResources() error {
	sz := cc.frameSize()
	cc.texture.Ensure(glgpu.NewTextureFormat(sz, glgpu.RGBA16Float, glgpu.ColorTarget|glgpu.Sampled))
	if !cc.vtx.IsValid() {
		cc.vtx.Ensure(floatBytes(fullscreenTriangle))
	}
	return cc.copyFB.AttachColor(cc.texture)
}

// Prepare sets the frame's input: the given texture when the output
// variable is rendered to its own target, or nil to correct whatever
// is bound as the draw framebuffer at Apply time.
func (cc *Corrector) Prepare(aov *glgpu.Texture) error {
	cc.aov = aov
	if aov != nil {
		return cc.aovFB.AttachColor(aov)
	}
	return nil
}

// Apply runs the color-correction pass for this frame. On any failure
// it logs, restores all touched GL state, and returns; the frame is
// simply not corrected. Between frames with unchanged params it
// performs no resource creation or destruction.
func (cc *Corrector) Apply() error {
	// only color data is corrected; any other named output variable
	// passes through untouched
	if cc.params.AOVName != "" && cc.params.AOVName != "color" {
		return nil
	}
	if err := cc.ensureProgram(); err != nil {
		slog.Error("colorcorrect: shader build failed, skipping frame", "err", err)
		cc.program.Release()
		return err
	}
	if err := cc.ensureResources(); err != nil {
		slog.Error("colorcorrect: resource setup failed, skipping frame", "err", err)
		return err
	}
	ctx := cc.dv.Context()
	sz := cc.frameSize()

	ss := glgpu.Capture(ctx, glgpu.StateDraw)
	defer ss.Restore(ctx)

	// copy the frame to the scratch texture, reading from either the
	// prepared target or whatever draw framebuffer is currently bound
	if cc.aov != nil {
		cc.aovFB.Bind(glgpu.READ_FRAMEBUFFER)
	} else {
		ctx.BindFramebuffer(glgpu.READ_FRAMEBUFFER, uint32(ctx.GetInteger(glgpu.DRAW_FRAMEBUFFER_BINDING)))
	}
	cc.copyFB.Bind(glgpu.DRAW_FRAMEBUFFER)
	ctx.BlitFramebuffer(0, 0, sz.X, sz.Y, 0, 0, sz.X, sz.Y,
		glgpu.COLOR_BUFFER_BIT, glgpu.NEAREST)

	// draw the corrected image back to the output
	if cc.aov != nil {
		cc.aovFB.Bind(glgpu.DRAW_FRAMEBUFFER)
	} else {
		ctx.BindFramebuffer(glgpu.DRAW_FRAMEBUFFER, ss.DrawFramebuffer)
	}
	ctx.Viewport(0, 0, sz.X, sz.Y)

	cc.program.Use()
	ctx.ActiveTexture(glgpu.TEXTURE0)
	ctx.BindTexture(glgpu.TEXTURE_2D, cc.texture.Handle())
	if cc.managed {
		ctx.ActiveTexture(glgpu.TEXTURE0 + 1)
		ctx.BindTexture(glgpu.TEXTURE_3D, cc.lut.Handle())
	}

	posLoc := cc.program.AttribLocation("position")
	uvLoc := cc.program.AttribLocation("uvIn")
	ctx.BindBuffer(glgpu.ARRAY_BUFFER, cc.vtx.Handle())
	ctx.VertexAttribPointer(int(posLoc), 4, glgpu.FLOAT, false, vertexStride, 0)
	ctx.EnableVertexAttribArray(int(posLoc))
	ctx.VertexAttribPointer(int(uvLoc), 2, glgpu.FLOAT, false, vertexStride, uvByteOffset)
	ctx.EnableVertexAttribArray(int(uvLoc))

	// the pass writes every pixel and owns none of the depth or
	// stencil state it runs under
	ctx.DepthFunc(glgpu.ALWAYS)
	ctx.DepthMask(false)
	ctx.StencilMask(0)
	ctx.Disable(glgpu.BLEND)
	ctx.Disable(glgpu.SAMPLE_ALPHA_TO_COVERAGE)

	ctx.DrawArrays(glgpu.TRIANGLES, 0, 3)

	ctx.DisableVertexAttribArray(int(posLoc))
	ctx.DisableVertexAttribArray(int(uvLoc))
	ctx.BindBuffer(glgpu.ARRAY_BUFFER, 0)
	ctx.UseProgram(0)

	cc.dv.PostErrors("colorcorrect.Apply")
	return nil
}

// Release destroys all GPU resources owned by the corrector.
func (cc *Corrector) Release() {
	cc.program.Release()
	cc.texture.Release()
	cc.lut.Release()
	cc.vtx.Release()
	cc.copyFB.Release()
	cc.aovFB.Release()
	cc.aov = nil
}

// floatBytes returns the little-endian byte representation of a
// float32 slice, for buffer uploads.
func floatBytes(fs []float32) []byte {
	b := make([]byte, 4*len(fs))
	for i, f := range fs {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(f))
	}
	return b
}
