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

func TestTextureEnsureIdempotent(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	tx := glgpu.NewTexture(dv, "scratch")
	f := glgpu.NewTextureFormat(image.Pt(640, 480), glgpu.RGBA16Float, glgpu.ColorTarget|glgpu.Sampled)

	tx.Ensure(f)
	require.True(t, tx.IsValid())
	id := tx.Handle()

	cx.ResetCalls()
	tx.Ensure(f)
	assert.Equal(t, id, tx.Handle())
	assert.Empty(t, cx.Calls, "unchanged descriptor must touch no device state")

	ts := cx.Textures[id]
	require.NotNil(t, ts)
	assert.Equal(t, 640, ts.Width)
	assert.Equal(t, 480, ts.Height)
	assert.Equal(t, glgpu.RGBA16F, ts.InternalFormat)

	tx.Release()
	assert.False(t, cx.IsTexture(id))
}

func TestTextureEnsureRecreatesOnResize(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	tx := glgpu.NewTexture(dv, "scratch")
	tx.Ensure(glgpu.NewTextureFormat(image.Pt(100, 100), glgpu.RGBA16Float, glgpu.ColorTarget))
	old := tx.Handle()

	tx.Ensure(glgpu.NewTextureFormat(image.Pt(200, 150), glgpu.RGBA16Float, glgpu.ColorTarget))
	assert.NotEqual(t, old, tx.Handle())
	assert.False(t, cx.IsTexture(old), "old texture must be destroyed, not leaked")
	assert.Equal(t, 200, cx.Textures[tx.Handle()].Width)

	tx.Release()
}

func TestTextureEnsureLUT(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	tx := glgpu.NewTexture(dv, "lut")
	edge := 4
	data := make([]float32, 3*edge*edge*edge)
	tx.EnsureLUT(edge, data)
	require.True(t, tx.IsValid())
	id := tx.Handle()
	assert.Equal(t, edge, tx.LUTEdge())

	ts := cx.Textures[id]
	require.NotNil(t, ts)
	assert.Equal(t, glgpu.TEXTURE_3D, ts.Target)
	assert.Equal(t, glgpu.RGB32F, ts.InternalFormat)
	assert.Equal(t, edge, ts.Depth)
	assert.Len(t, ts.Pix3D, 3*edge*edge*edge)
	assert.Equal(t, glgpu.LINEAR, ts.Params[glgpu.TEXTURE_MIN_FILTER])

	// same edge keeps the texture, just re-uploads
	tx.EnsureLUT(edge, data)
	assert.Equal(t, id, tx.Handle())

	// new edge recreates
	edge = 8
	tx.EnsureLUT(edge, make([]float32, 3*edge*edge*edge))
	assert.NotEqual(t, id, tx.Handle())
	assert.False(t, cx.IsTexture(id))

	tx.Release()
}

func TestTextureEnsureLUTBadSize(t *testing.T) {
	cx := offscreen.NewContext()
	dv := glgpu.NewDevice(cx)

	tx := glgpu.NewTexture(dv, "lut")
	tx.EnsureLUT(4, make([]float32, 7))
	assert.False(t, tx.IsValid())
	assert.Empty(t, cx.Textures)
}
