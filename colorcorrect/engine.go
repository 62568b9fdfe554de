// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorcorrect

// Engine is the color-management collaborator for managed mode.
// Given display, view, color space, and look names it produces shader
// source text defining the DisplayTransform function, together with the
// 3D lookup table that function samples. The display package provides
// the built-in implementation.
type Engine interface {
	// Available reports whether a color-management configuration is
	// present. When false, managed mode silently degrades to sRGB.
	Available() bool

	// Transform resolves the request against the active configuration.
	// Empty names in the request resolve to configuration defaults.
	Transform(req TransformRequest) (TransformResult, error)
}

// TransformRequest names the display transform to generate.
type TransformRequest struct {
	Display    string
	View       string
	ColorSpace string
	Look       string

	// EdgeLen is the requested lookup table edge length.
	EdgeLen int
}

// TransformResult is the generated transform.
type TransformResult struct {
	// ShaderText is GLSL source defining
	// vec3 DisplayTransform(vec3 color, sampler3D lut).
	ShaderText string

	// LUT is the flattened RGB lookup table, length 3*EdgeLen^3,
	// red index fastest.
	LUT []float32

	// EdgeLen is the effective edge length, which the engine may have
	// clamped from the requested one.
	EdgeLen int
}
