// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu_test

import (
	"testing"

	"cogentcore.org/glgpu"
	"cogentcore.org/glgpu/offscreen"
	"github.com/stretchr/testify/assert"
)

func TestStateRoundTrip(t *testing.T) {
	cx := offscreen.NewContext()

	cx.BindFramebuffer(glgpu.READ_FRAMEBUFFER, 7)
	cx.BindFramebuffer(glgpu.DRAW_FRAMEBUFFER, 9)
	cx.Viewport(10, 20, 300, 400)
	cx.DepthMask(true)
	cx.DepthFunc(glgpu.LEQUAL)
	cx.StencilMask(0xF0)
	cx.Enable(glgpu.BLEND)
	cx.Disable(glgpu.SAMPLE_ALPHA_TO_COVERAGE)
	cx.ActiveTexture(glgpu.TEXTURE0)
	cx.BindTexture(glgpu.TEXTURE_2D, 42)
	cx.ActiveTexture(glgpu.TEXTURE0 + 1)
	cx.BindTexture(glgpu.TEXTURE_2D, 43)
	cx.BindTexture(glgpu.TEXTURE_3D, 44)
	cx.ActiveTexture(glgpu.TEXTURE0)

	ss := glgpu.Capture(cx, glgpu.StateDraw)

	// clobber everything the draw pass touches
	cx.BindFramebuffer(glgpu.READ_FRAMEBUFFER, 0)
	cx.BindFramebuffer(glgpu.DRAW_FRAMEBUFFER, 0)
	cx.Viewport(0, 0, 1, 1)
	cx.DepthMask(false)
	cx.DepthFunc(glgpu.ALWAYS)
	cx.StencilMask(0)
	cx.Disable(glgpu.BLEND)
	cx.Enable(glgpu.SAMPLE_ALPHA_TO_COVERAGE)
	cx.ActiveTexture(glgpu.TEXTURE0 + 1)
	cx.BindTexture(glgpu.TEXTURE_2D, 0)
	cx.BindTexture(glgpu.TEXTURE_3D, 0)
	cx.ActiveTexture(glgpu.TEXTURE0)
	cx.BindTexture(glgpu.TEXTURE_2D, 0)

	ss.Restore(cx)

	assert.Equal(t, uint32(7), cx.ReadFB)
	assert.Equal(t, uint32(9), cx.DrawFB)
	assert.Equal(t, [4]int{10, 20, 300, 400}, cx.ViewportRect)
	assert.True(t, cx.DepthWrite)
	assert.Equal(t, glgpu.LEQUAL, cx.DepthFn)
	assert.Equal(t, uint32(0xF0), cx.StencilWrite)
	assert.True(t, cx.IsEnabled(glgpu.BLEND))
	assert.False(t, cx.IsEnabled(glgpu.SAMPLE_ALPHA_TO_COVERAGE))
	assert.Equal(t, glgpu.TEXTURE0, cx.ActiveUnit)
	assert.Equal(t, uint32(42), cx.BoundTexture(0, glgpu.TEXTURE_2D))
	assert.Equal(t, uint32(43), cx.BoundTexture(1, glgpu.TEXTURE_2D))
	assert.Equal(t, uint32(44), cx.BoundTexture(1, glgpu.TEXTURE_3D))
}

func TestStateNarrowMask(t *testing.T) {
	cx := offscreen.NewContext()
	cx.BindFramebuffer(glgpu.READ_FRAMEBUFFER, 3)
	cx.BindFramebuffer(glgpu.DRAW_FRAMEBUFFER, 4)
	cx.Viewport(1, 2, 3, 4)

	ss := glgpu.Capture(cx, glgpu.StateBlit)

	cx.BindFramebuffer(glgpu.FRAMEBUFFER, 99)
	cx.Viewport(5, 6, 7, 8)

	ss.Restore(cx)

	assert.Equal(t, uint32(3), cx.ReadFB)
	assert.Equal(t, uint32(4), cx.DrawFB)
	// viewport was outside the mask and must stay clobbered
	assert.Equal(t, [4]int{5, 6, 7, 8}, cx.ViewportRect)
}

func TestStateRestoreIdempotent(t *testing.T) {
	cx := offscreen.NewContext()
	cx.Viewport(1, 1, 100, 100)
	ss := glgpu.Capture(cx, glgpu.StateViewport)
	cx.Viewport(0, 0, 2, 2)
	ss.Restore(cx)
	ss.Restore(cx)
	assert.Equal(t, [4]int{1, 1, 100, 100}, cx.ViewportRect)
}
