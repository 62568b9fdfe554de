// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu_test

import (
	"testing"

	"cogentcore.org/glgpu"
	"cogentcore.org/glgpu/offscreen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVtx = `
in vec4 position;
void main(void) { gl_Position = position; }
`

const testFrag = `
out vec4 colorOut;
uniform sampler2D colorIn;
void main(void) { colorOut = vec4(1.0); }
`

func TestProgramCompile(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	pr := glgpu.NewProgram(dv, "test")
	require.NoError(t, pr.Compile(testVtx, testFrag))
	require.True(t, pr.IsValid())

	loc := pr.UniformLocation("colorIn")
	assert.GreaterOrEqual(t, loc, int32(0))
	// cached: second lookup performs no device query
	assert.Equal(t, loc, pr.UniformLocation("colorIn"))

	assert.Equal(t, int32(-1), pr.UniformLocation("noSuchUniform"))

	pr.Release()
	assert.False(t, pr.IsValid())
	assert.Empty(t, cx.Programs)
}

func TestProgramLocationsInvalid(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	// never compiled
	pr := glgpu.NewProgram(dv, "empty")
	assert.Equal(t, int32(-1), pr.UniformLocation("colorIn"))
	assert.Equal(t, int32(-1), pr.AttribLocation("position"))

	// released
	require.NoError(t, pr.Compile(testVtx, testFrag))
	pr.Release()
	assert.Equal(t, int32(-1), pr.UniformLocation("colorIn"))
	assert.Equal(t, int32(-1), pr.AttribLocation("position"))
}

func TestProgramCompileFailure(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	cx.FailCompile = true
	pr := glgpu.NewProgram(dv, "bad")
	err := pr.Compile(testVtx, testFrag)
	require.Error(t, err)
	assert.False(t, pr.IsValid())
	// no partial objects left behind
	assert.Empty(t, cx.Shaders)
	assert.Empty(t, cx.Programs)
}

func TestProgramLinkFailure(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	cx.FailLink = true
	pr := glgpu.NewProgram(dv, "bad")
	err := pr.Compile(testVtx, testFrag)
	require.Error(t, err)
	assert.False(t, pr.IsValid())
	assert.Empty(t, cx.Shaders)
	assert.Empty(t, cx.Programs)
}
