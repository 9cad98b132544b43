// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import "github.com/gogpu/batch/shader"

// TextureID identifies a texture to the atlas providers.
type TextureID uint32

// Renderable is the read-only view of a draw object the catalogue
// classifies. Implementations must return stable values for the duration
// of a single query.
type Renderable interface {
	// DataFormat returns the vertex layout and texture unit flags.
	DataFormat() Format

	// IsStatic reports whether the geometry is static (not rebuilt per frame).
	IsStatic() bool

	// VertexShader returns the vertex stage. Compared by identity; nil is valid.
	VertexShader() *shader.Module

	// FragmentShader returns the fragment stage. Compared by identity; nil is valid.
	FragmentShader() *shader.Module

	// UsesIndices reports whether the geometry is drawn with an index buffer.
	UsesIndices() bool

	// TextureID returns the texture bound to unit (0..MaxTextureUnits-1).
	TextureID(unit int) TextureID
}

// PrimaryTexture returns the texture on unit 0, the texture that
// distinguishes renderables within a catalogue.
func PrimaryTexture(r Renderable) TextureID {
	return r.TextureID(0)
}

// Object is a plain Renderable for callers without a renderable type of
// their own.
type Object struct {
	Format   Format
	Static   bool
	Vertex   *shader.Module
	Fragment *shader.Module
	Indexed  bool
	Textures [MaxTextureUnits]TextureID
}

// DataFormat implements Renderable.
func (o *Object) DataFormat() Format { return o.Format }

// IsStatic implements Renderable.
func (o *Object) IsStatic() bool { return o.Static }

// VertexShader implements Renderable.
func (o *Object) VertexShader() *shader.Module { return o.Vertex }

// FragmentShader implements Renderable.
func (o *Object) FragmentShader() *shader.Module { return o.Fragment }

// UsesIndices implements Renderable.
func (o *Object) UsesIndices() bool { return o.Indexed }

// TextureID implements Renderable. Out-of-range units report texture 0.
func (o *Object) TextureID(unit int) TextureID {
	if unit < 0 || unit >= MaxTextureUnits {
		return 0
	}
	return o.Textures[unit]
}

var _ Renderable = (*Object)(nil)
