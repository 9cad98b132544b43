// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader gives shader programs a stable identity for batching.
//
// A [Module] is compiled once from WGSL source (via gogpu/naga) and then
// referred to by pointer. Two renderables share a shader exactly when they
// hold the same *Module; equal source text compiled twice yields two
// distinct identities. A nil *Module is a valid identity meaning "no shader".
//
// # Usage
//
//	vs, err := shader.Compile("sprite_vs", shader.StageVertex, src)
//	if err != nil {
//	    return err
//	}
//
//	// Optional: create the HAL module on a device when building pipelines.
//	mod, err := vs.Create(device)
//
// The built-in sprite pair ([SpriteVertexSource], [SpriteFragmentSource])
// samples a single atlas page on texture unit 0.
package shader
