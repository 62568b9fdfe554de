// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package display is the built-in color-management engine for
// colorcorrect managed mode. It resolves display, view, color space,
// and look names to transfer curves and exposure offsets, and bakes
// them into a 3D lookup table plus the GLSL DisplayTransform function
// that samples it.
//
// Availability follows the OCIO environment variable: when it is unset
// the engine reports no configuration and managed mode degrades to
// plain sRGB.
package display

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"cogentcore.org/glgpu/colorcorrect"
	"github.com/chewxy/math32"
)

// configEnv is the environment variable whose presence marks a
// color-management configuration as available.
const configEnv = "OCIO"

// MaxEdgeLen caps the lookup table edge length; larger requests are
// clamped.
const MaxEdgeLen = 129

// transfer is a per-channel transfer curve.
type transfer func(c float32) float32

func srgbCurve(c float32) float32 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math32.Pow(c, 1/2.4) - 0.055
}

func rec709Curve(c float32) float32 {
	if c < 0.018 {
		return 4.5 * c
	}
	return 1.099*math32.Pow(c, 0.45) - 0.099
}

func gamma22Curve(c float32) float32 {
	return math32.Pow(c, 1/2.2)
}

func rawCurve(c float32) float32 {
	return c
}

// displays maps display/view names to transfer curves. Lookup is by
// display first, then view, case-insensitive.
var displays = map[string]transfer{
	"srgb":      srgbCurve,
	"rec709":    rec709Curve,
	"rec.709":   rec709Curve,
	"gamma 2.2": gamma22Curve,
	"gamma2.2":  gamma22Curve,
	"raw":       rawCurve,
}

// DefaultDisplay is used when a request names no display.
const DefaultDisplay = "sRGB"

// DefaultView is used when a request names no view.
const DefaultView = "Standard"

// Engine implements [colorcorrect.Engine] with built-in display
// transforms.
type Engine struct{}

var _ colorcorrect.Engine = (*Engine)(nil)

// New returns the built-in engine.
func New() *Engine {
	return &Engine{}
}

// Available reports whether a color-management configuration is
// present, per the OCIO environment variable.
func (en *Engine) Available() bool {
	return os.Getenv(configEnv) != ""
}

// curveFor resolves the transfer curve for a display and view pair.
// The view wins when it names a known curve, then the display; an
// unknown pair is an error rather than a silent identity.
func curveFor(display, view string) (transfer, error) {
	if view != "" {
		if tf, ok := displays[strings.ToLower(view)]; ok {
			return tf, nil
		}
	}
	if tf, ok := displays[strings.ToLower(display)]; ok {
		return tf, nil
	}
	return nil, fmt.Errorf("display: no transform for display %q view %q", display, view)
}

// lookStops parses a look name as an exposure offset in f-stops,
// e.g. "+1.5" or "-2". An empty look is zero.
func lookStops(look string) (float32, error) {
	if look == "" {
		return 0, nil
	}
	st, err := strconv.ParseFloat(look, 32)
	if err != nil {
		return 0, fmt.Errorf("display: look %q is not an exposure offset: %w", look, err)
	}
	return float32(st), nil
}

// Transform bakes the resolved display transform into a lookup table
// and returns it with the GLSL sampling function.
func (en *Engine) Transform(req colorcorrect.TransformRequest) (colorcorrect.TransformResult, error) {
	display := req.Display
	if display == "" {
		display = DefaultDisplay
	}
	view := req.View
	if view == "" {
		view = DefaultView
	}
	tf, err := curveFor(display, view)
	if err != nil {
		return colorcorrect.TransformResult{}, err
	}
	stops, err := lookStops(req.Look)
	if err != nil {
		return colorcorrect.TransformResult{}, err
	}
	gain := math32.Exp2(stops)

	edge := req.EdgeLen
	if edge < 2 {
		edge = 2
	}
	if edge > MaxEdgeLen {
		edge = MaxEdgeLen
	}

	lut := make([]float32, 3*edge*edge*edge)
	// red index varies fastest, matching the GL 3D texture layout where
	// the sample coordinate maps (r,g,b) to (x,y,z)
	i := 0
	for b := 0; b < edge; b++ {
		for g := 0; g < edge; g++ {
			for r := 0; r < edge; r++ {
				grid := [3]int{r, g, b}
				for ch := 0; ch < 3; ch++ {
					c := gain * float32(grid[ch]) / float32(edge-1)
					lut[i] = tf(math32.Max(0, math32.Min(1, c)))
					i++
				}
			}
		}
	}

	return colorcorrect.TransformResult{
		ShaderText: shaderText(edge),
		LUT:        lut,
		EdgeLen:    edge,
	}, nil
}

// shaderText returns the GLSL definition of DisplayTransform for a
// lookup table of the given edge length. Sample coordinates are scaled
// and offset so the unit cube maps onto texel centers.
func shaderText(edge int) string {
	scale := float32(edge-1) / float32(edge)
	offset := 0.5 / float32(edge)
	return fmt.Sprintf(`
vec3 DisplayTransform(vec3 color, sampler3D lut)
{
    vec3 uvw = clamp(color, 0.0, 1.0) * %g + %g;
    return texture(lut, uvw).rgb;
}
`, scale, offset)
}
