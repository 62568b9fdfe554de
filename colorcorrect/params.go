// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorcorrect

import "image"

// Modes selects the color correction algorithm.
type Modes int32 //enums:enum

const (
	// ModeSRGB applies the standard sRGB transfer curve in the shader,
	// with no external color management.
	ModeSRGB Modes = iota

	// ModeManaged applies a display transform supplied by the
	// color-management engine: generated shader code plus a 3D lookup
	// table. Falls back to ModeSRGB when no engine configuration is
	// available.
	ModeManaged
)

// Params is the full configuration of a [Corrector]. It is a plain
// comparable value: the corrector detects change by ==, and any change
// invalidates the shader program and lookup table. Set it wholesale via
// [Corrector.SetParams].
type Params struct {
	// FramebufferSize is the size of the output framebuffer in pixels.
	FramebufferSize image.Point

	// Mode selects sRGB or managed correction.
	Mode Modes

	// Display is the managed-mode display name ("" = engine default).
	Display string

	// View is the managed-mode view transform name ("" = engine default).
	View string

	// ColorSpace is the input color space name ("" = engine default).
	ColorSpace string

	// Look is an optional look modification ("" = none).
	Look string

	// LUTSize is the 3D lookup table edge length (0 = default 65).
	LUTSize int

	// AOVName names the output variable being corrected, informational.
	AOVName string

	// AOVPath is the scene path of that output, informational.
	AOVPath string
}
