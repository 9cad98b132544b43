// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package batch groups renderable draw objects into compatible batches so a
// renderer can minimize shader binds, texture binds and draw calls.
//
// # Overview
//
// A [Catalogue] is one compatibility class: renderables that share a vertex
// [Format], static flag, shader pair and index usage. Within a catalogue,
// renderables are distinguished by their primary texture (texture unit 0).
// Texture space is owned by [AtlasProvider] implementations bound per
// texture unit; the catalogue asks unit 0 whether a new primary texture
// fits and registers every flagged unit's texture on admission.
//
// # Quick Start
//
//	c := batch.NewCatalogue(format, false, vs, fs, true,
//	    batch.WithAtlas(0, page))
//
//	// Dry run: compatible at all? Nothing is mutated.
//	if c.IsMatch(obj, true) {
//	    // Commit: checks atlas capacity and admits the textures.
//	    ok := c.IsMatch(obj, false)
//	}
//
// For the common frame-building loop, [Pool] probes every open catalogue,
// commits to the first with room, and opens new catalogues on demand:
//
//	pool := batch.NewPool(batch.WithAtlasFactory(newPage))
//	for _, obj := range frame {
//	    c, err := pool.Place(obj)
//	    ...
//	}
//	pool.Reset()
//
// # Texture Rules
//
// Only the primary texture decides admission. Once a primary texture is in a
// catalogue, later renderables with the same primary texture match without
// any atlas call, even if their auxiliary textures (units 1-3) differ.
//
// # Concurrency
//
// Catalogue and Pool are meant for a single frame-building goroutine.
// Atlases shared between catalogues see WillFit and Admit as separate calls;
// callers running catalogues in parallel must serialize that pair.
//
// # Sub-packages
//
//   - shader: compiled WGSL modules whose pointers serve as shader identity
//   - atlas: a uniform grid AtlasProvider and its GPU uploader
package batch
