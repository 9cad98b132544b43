// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

// CatalogueOption configures a Catalogue during creation.
//
// Example:
//
//	c := batch.NewCatalogue(format, false, vs, fs, true,
//	    batch.WithAtlas(0, page))
type CatalogueOption func(*Catalogue)

// WithAtlas binds an atlas provider to a texture unit.
// Out-of-range units are ignored.
func WithAtlas(unit int, p AtlasProvider) CatalogueOption {
	return func(c *Catalogue) {
		if unit < 0 || unit >= MaxTextureUnits {
			return
		}
		c.atlases[unit] = p
	}
}

// AtlasFactory supplies the atlas provider for one texture unit of a newly
// opened catalogue. Returning nil leaves the unit unbound.
type AtlasFactory func(format Format, unit int) AtlasProvider

// PoolOption configures a Pool during creation.
//
// Example:
//
//	pool := batch.NewPool(
//	    batch.WithAtlasFactory(newPage),
//	    batch.WithMaxCatalogues(64),
//	)
type PoolOption func(*poolOptions)

// poolOptions holds optional configuration for Pool creation.
type poolOptions struct {
	factory       AtlasFactory
	maxCatalogues int
}

// defaultPoolOptions returns the default pool options.
func defaultPoolOptions() poolOptions {
	return poolOptions{
		factory:       nil, // catalogues open without atlases
		maxCatalogues: 0,   // unlimited
	}
}

// WithAtlasFactory sets the factory that binds atlas providers to each
// catalogue the pool opens. Only units the renderable's format uses are
// requested.
func WithAtlasFactory(f AtlasFactory) PoolOption {
	return func(o *poolOptions) {
		o.factory = f
	}
}

// WithMaxCatalogues caps the number of open catalogues. Zero or a negative
// value means unlimited.
func WithMaxCatalogues(n int) PoolOption {
	return func(o *poolOptions) {
		if n < 0 {
			n = 0
		}
		o.maxCatalogues = n
	}
}
