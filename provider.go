// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

// AtlasProvider is the capacity contract of a shared texture atlas bound
// to one texture unit. The reference implementation is atlas.Grid.
//
// Several catalogues may share one provider. WillFit followed by Admit is
// not atomic; callers that share a provider across goroutines must
// serialize the pair.
type AtlasProvider interface {
	// WillFit reports whether id is present or could be added.
	// It must not change the atlas.
	WillFit(id TextureID) bool

	// Admit adds id to the atlas. Admitting an id that is already
	// present must be harmless.
	Admit(id TextureID)
}
