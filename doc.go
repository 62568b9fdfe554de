// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glgpu provides a deferred-operation abstraction over the
// OpenGL API, managing the enormous implicit global state of GL behind
// explicit, testable value types.
//
// The central ideas are:
//
//   - All GL calls go through the [Context] interface, so the entire
//     library runs against the real driver (glos) or a pure-Go state
//     emulation (offscreen) for tests and headless use.
//
//   - GPU work is described by immutable operation descriptors
//     (e.g. [TextureToHostCopy], [IndexedDraw], [FramebufferBind]) that
//     implement [Op]. Building a descriptor touches no GL state;
//     execution happens later, in whatever order the caller decides,
//     via [Device.Run].
//
//   - Resources ([Texture], [Buffer], [Framebuffer], [Program]) wrap one
//     native GL object plus the descriptor that created it. They are
//     created lazily on first need, rebuilt by destroy-then-recreate
//     whenever their descriptor changes, and destroyed explicitly by
//     their owner at teardown.
//
//   - Ambient state mutated by a draw is captured into a [StateSnapshot]
//     before, and restored exactly after, so nothing leaks to the caller.
//
// The colorcorrect subpackage builds a full-screen color-correction
// post-process stage on top of this layer.
//
// Everything here assumes a single GL thread: descriptors are plain
// values and may be built anywhere, but execution must happen on the
// thread where the Context is current.
package glgpu
