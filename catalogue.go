// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"fmt"
	"slices"

	"github.com/gogpu/batch/shader"
)

// Catalogue is one compatibility class of renderables: every renderable it
// admits shares the same format, static flag, shader pair and index usage,
// so they can be drawn together without state changes.
//
// The identity attributes never change after construction. The set of
// admitted primary textures only grows.
//
// Catalogue is not safe for concurrent use.
type Catalogue struct {
	format         Format
	isStatic       bool
	vertexShader   *shader.Module
	fragmentShader *shader.Module
	usesIndices    bool

	admitted map[TextureID]struct{}
	atlases  [MaxTextureUnits]AtlasProvider
}

// NewCatalogue creates an empty catalogue for the given identity attributes.
func NewCatalogue(format Format, isStatic bool, vs, fs *shader.Module, usesIndices bool, opts ...CatalogueOption) *Catalogue {
	c := &Catalogue{
		format:         format,
		isStatic:       isStatic,
		vertexShader:   vs,
		fragmentShader: fs,
		usesIndices:    usesIndices,
		admitted:       make(map[TextureID]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsMatch reports whether r belongs in this catalogue.
//
// With checkOnly set, only the identity attributes are compared and
// nothing is mutated; use it to probe several catalogues. Otherwise the
// primary texture's atlas capacity is checked and, if it fits, r is
// admitted. A nil renderable never matches.
func (c *Catalogue) IsMatch(r Renderable, checkOnly bool) bool {
	if r == nil || !c.IsEligible(r) {
		return false
	}
	if checkOnly {
		return true
	}
	if !c.WillFit(r) {
		return false
	}
	c.Admit(r)
	return true
}

// IsEligible reports whether r's identity attributes equal the catalogue's.
// Shaders are compared by identity. Textures and atlases are not consulted.
func (c *Catalogue) IsEligible(r Renderable) bool {
	if r == nil {
		return false
	}
	return c.format == r.DataFormat() &&
		c.isStatic == r.IsStatic() &&
		c.vertexShader == r.VertexShader() &&
		c.fragmentShader == r.FragmentShader() &&
		c.usesIndices == r.UsesIndices()
}

// WillFit reports whether r's primary texture is already admitted or fits
// the unit 0 atlas. Only unit 0 gates admission. Without a unit 0 atlas
// there is no capacity limit. WillFit never mutates the catalogue or the
// atlas.
//
// The result is unspecified for a renderable that is not eligible.
func (c *Catalogue) WillFit(r Renderable) bool {
	p := PrimaryTexture(r)
	if c.HasTexture(p) {
		return true
	}
	if a := c.atlases[0]; a != nil {
		if !a.WillFit(p) {
			Logger().Debug("batch: atlas refused texture",
				"texture", p, "format", c.format)
			return false
		}
	}
	return true
}

// Admit registers r's textures with the bound atlases (units 0..3 in
// order, only those the format flags) and then records its primary
// texture. Admitting a known primary texture is a no-op.
//
// The caller must have established IsEligible and WillFit; the catalogue
// does not re-check capacity.
func (c *Catalogue) Admit(r Renderable) {
	p := PrimaryTexture(r)
	if c.HasTexture(p) {
		return
	}
	for u, a := range c.atlases {
		if a == nil || !c.format.UsesTextureUnit(u) {
			continue
		}
		a.Admit(r.TextureID(u))
	}
	c.admitted[p] = struct{}{}
}

// BindAtlas binds p to unit, or unbinds it when p is nil.
func (c *Catalogue) BindAtlas(unit int, p AtlasProvider) error {
	if unit < 0 || unit >= MaxTextureUnits {
		return fmt.Errorf("%w: %d", ErrInvalidTextureUnit, unit)
	}
	c.atlases[unit] = p
	return nil
}

// Atlas returns the provider bound to unit, or nil.
func (c *Catalogue) Atlas(unit int) AtlasProvider {
	if unit < 0 || unit >= MaxTextureUnits {
		return nil
	}
	return c.atlases[unit]
}

// HasTexture reports whether id has been admitted as a primary texture.
func (c *Catalogue) HasTexture(id TextureID) bool {
	_, ok := c.admitted[id]
	return ok
}

// TextureCount returns the number of admitted primary textures.
func (c *Catalogue) TextureCount() int {
	return len(c.admitted)
}

// Textures returns the admitted primary textures in ascending order.
func (c *Catalogue) Textures() []TextureID {
	ids := make([]TextureID, 0, len(c.admitted))
	for id := range c.admitted {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Format returns the catalogue's format.
func (c *Catalogue) Format() Format { return c.format }

// IsStatic reports whether the catalogue holds static geometry.
func (c *Catalogue) IsStatic() bool { return c.isStatic }

// VertexShader returns the catalogue's vertex stage.
func (c *Catalogue) VertexShader() *shader.Module { return c.vertexShader }

// FragmentShader returns the catalogue's fragment stage.
func (c *Catalogue) FragmentShader() *shader.Module { return c.fragmentShader }

// UsesIndices reports whether the catalogue's geometry is indexed.
func (c *Catalogue) UsesIndices() bool { return c.usesIndices }

// String returns a short description for diagnostics.
func (c *Catalogue) String() string {
	return fmt.Sprintf("Catalogue(format=%s static=%t vs=%s fs=%s indices=%t textures=%d)",
		c.format, c.isStatic, c.vertexShader, c.fragmentShader, c.usesIndices, len(c.admitted))
}
