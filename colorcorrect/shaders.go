// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colorcorrect

import (
	"embed"
	"fmt"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFS embed.FS

// shaderFiles maps logical shader names to embedded files. The sources
// carry no #version line; composition prepends one.
var shaderFiles = map[string]string{
	"ColorCorrectionVertex":   "shaders/colorcorrect.vert",
	"ColorCorrectionFragment": "shaders/colorcorrect.frag",
}

// shaderSource returns the embedded shader source for a logical name.
func shaderSource(name string) (string, error) {
	fn, ok := shaderFiles[name]
	if !ok {
		return "", fmt.Errorf("colorcorrect: no shader source named %q", name)
	}
	b, err := shaderFS.ReadFile(fn)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

const shaderVersion = "#version 330 core\n"

// displayXformDefine enables the managed code path in the fragment
// shader; the matching DisplayTransform definition comes from the
// engine and is appended after the base source.
const displayXformDefine = "#define GLGPU_USE_DISPLAY_XFORM\n"

// composeVertex returns the complete vertex shader source.
func composeVertex() (string, error) {
	src, err := shaderSource("ColorCorrectionVertex")
	if err != nil {
		return "", err
	}
	return shaderVersion + src, nil
}

// composeFragment returns the complete fragment shader source:
// version header, the managed-mode define when engineText is non-empty,
// the base source, and the engine-generated transform definition.
func composeFragment(engineText string) (string, error) {
	src, err := shaderSource("ColorCorrectionFragment")
	if err != nil {
		return "", err
	}
	if engineText == "" {
		return shaderVersion + src, nil
	}
	return shaderVersion + displayXformDefine + src + engineText, nil
}
