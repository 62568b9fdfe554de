// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glgpu

// Enum is a GL enumerant value, used for all symbolic constants passed
// through [Context].
type Enum uint32

// GL constants used by this package. Values are the standard OpenGL
// enumerants, so a [Context] implementation backed by a real driver can
// pass them through unchanged.
const (
	// framebuffer targets and bindings
	FRAMEBUFFER              Enum = 0x8D40
	READ_FRAMEBUFFER         Enum = 0x8CA8
	DRAW_FRAMEBUFFER         Enum = 0x8CA9
	READ_FRAMEBUFFER_BINDING Enum = 0x8CAA
	DRAW_FRAMEBUFFER_BINDING Enum = 0x8CA6
	FRAMEBUFFER_COMPLETE     Enum = 0x8CD5
	COLOR_ATTACHMENT0        Enum = 0x8CE0
	DEPTH_ATTACHMENT         Enum = 0x8D00
	COLOR                    Enum = 0x1800
	DEPTH                    Enum = 0x1801
	NONE                     Enum = 0

	// buffer-bit masks for blits
	COLOR_BUFFER_BIT   Enum = 0x4000
	DEPTH_BUFFER_BIT   Enum = 0x0100
	STENCIL_BUFFER_BIT Enum = 0x0400

	// texture targets and bindings
	TEXTURE_2D             Enum = 0x0DE1
	TEXTURE_3D             Enum = 0x806F
	TEXTURE_2D_MULTISAMPLE Enum = 0x9100
	TEXTURE_BINDING_2D     Enum = 0x8069
	TEXTURE_BINDING_3D     Enum = 0x806A
	TEXTURE0               Enum = 0x84C0
	ACTIVE_TEXTURE         Enum = 0x84E0

	// texture parameters
	TEXTURE_MIN_FILTER Enum = 0x2801
	TEXTURE_MAG_FILTER Enum = 0x2800
	TEXTURE_WRAP_S     Enum = 0x2802
	TEXTURE_WRAP_T     Enum = 0x2803
	TEXTURE_WRAP_R     Enum = 0x8072
	NEAREST            Enum = 0x2600
	LINEAR             Enum = 0x2601
	CLAMP_TO_EDGE      Enum = 0x812F

	// internal formats, pixel formats, and component types
	RGBA8             Enum = 0x8058
	RGBA16F           Enum = 0x881A
	RGB32F            Enum = 0x8815
	DEPTH_COMPONENT32F Enum = 0x8CAC
	RGBA              Enum = 0x1908
	RGB               Enum = 0x1907
	DEPTH_COMPONENT   Enum = 0x1902
	UNSIGNED_BYTE     Enum = 0x1401
	UNSIGNED_INT      Enum = 0x1405
	FLOAT             Enum = 0x1406
	HALF_FLOAT        Enum = 0x140B

	// buffers
	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STATIC_DRAW          Enum = 0x88E4

	// ambient state queries
	VIEWPORT                 Enum = 0x0BA2
	SCISSOR_BOX              Enum = 0x0C10
	DEPTH_WRITEMASK          Enum = 0x0B72
	STENCIL_WRITEMASK        Enum = 0x0B98
	DEPTH_FUNC               Enum = 0x0B74
	BLEND                    Enum = 0x0BE2
	SCISSOR_TEST             Enum = 0x0C11
	DEPTH_TEST               Enum = 0x0B71
	SAMPLE_ALPHA_TO_COVERAGE Enum = 0x809E

	// depth functions
	NEVER    Enum = 0x0200
	LESS     Enum = 0x0201
	EQUAL    Enum = 0x0202
	LEQUAL   Enum = 0x0203
	GREATER  Enum = 0x0204
	NOTEQUAL Enum = 0x0205
	GEQUAL   Enum = 0x0206
	ALWAYS   Enum = 0x0207

	// blend factors
	ZERO                     Enum = 0
	ONE                      Enum = 1
	SRC_COLOR                Enum = 0x0300
	ONE_MINUS_SRC_COLOR      Enum = 0x0301
	SRC_ALPHA                Enum = 0x0302
	ONE_MINUS_SRC_ALPHA      Enum = 0x0303
	DST_ALPHA                Enum = 0x0304
	ONE_MINUS_DST_ALPHA      Enum = 0x0305
	DST_COLOR                Enum = 0x0306
	ONE_MINUS_DST_COLOR      Enum = 0x0307
	CONSTANT_COLOR           Enum = 0x8001
	ONE_MINUS_CONSTANT_COLOR Enum = 0x8002
	CONSTANT_ALPHA           Enum = 0x8003
	ONE_MINUS_CONSTANT_ALPHA Enum = 0x8004

	// blend equations
	FUNC_ADD              Enum = 0x8006
	FUNC_SUBTRACT         Enum = 0x800A
	FUNC_REVERSE_SUBTRACT Enum = 0x800B
	MIN                   Enum = 0x8007
	MAX                   Enum = 0x8008

	// shaders and programs
	VERTEX_SHADER   Enum = 0x8B31
	FRAGMENT_SHADER Enum = 0x8B30
	COMPILE_STATUS  Enum = 0x8B81
	LINK_STATUS     Enum = 0x8B82

	// draw primitives
	TRIANGLES Enum = 0x0004

	// memory barrier bits
	BUFFER_UPDATE_BARRIER_BIT Enum = 0x0200
	ALL_BARRIER_BITS          Enum = 0xFFFFFFFF

	// errors
	NO_ERROR                      Enum = 0
	INVALID_ENUM                  Enum = 0x0500
	INVALID_VALUE                 Enum = 0x0501
	INVALID_OPERATION             Enum = 0x0502
	OUT_OF_MEMORY                 Enum = 0x0505
	INVALID_FRAMEBUFFER_OPERATION Enum = 0x0506
)

// ErrorName returns the symbolic name for a GL error code,
// for diagnostic logging.
func ErrorName(err Enum) string {
	switch err {
	case NO_ERROR:
		return "NO_ERROR"
	case INVALID_ENUM:
		return "INVALID_ENUM"
	case INVALID_VALUE:
		return "INVALID_VALUE"
	case INVALID_OPERATION:
		return "INVALID_OPERATION"
	case OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	}
	return "UNKNOWN_ERROR"
}
