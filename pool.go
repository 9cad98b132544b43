// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import "fmt"

// PoolStats reports counters accumulated since the pool was created or
// last reset.
type PoolStats struct {
	// Placements is the number of successful Place calls.
	Placements int
	// Probes is the number of dry-run IsMatch calls.
	Probes int
	// Opened is the number of catalogues opened.
	Opened int
	// Refusals is the number of commits refused for capacity.
	Refusals int
}

// Pool is the set of catalogues open during one frame-building pass.
// Place assigns each renderable to the first catalogue that accepts it,
// opening a new catalogue when none does.
//
// Pool is not safe for concurrent use.
type Pool struct {
	opts       poolOptions
	catalogues []*Catalogue
	stats      PoolStats
}

// NewPool creates an empty pool.
func NewPool(opts ...PoolOption) *Pool {
	o := defaultPoolOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool{opts: o}
}

// Place assigns r to a catalogue and returns it.
//
// Open catalogues are first probed without side effects; eligible ones
// are then committed in opening order until one has room. If none does,
// a new catalogue is opened with atlases from the pool's factory.
func (p *Pool) Place(r Renderable) (*Catalogue, error) {
	if r == nil {
		return nil, ErrNilRenderable
	}

	var candidates []*Catalogue
	for _, c := range p.catalogues {
		p.stats.Probes++
		if c.IsMatch(r, true) {
			candidates = append(candidates, c)
		}
	}
	for _, c := range candidates {
		if c.IsMatch(r, false) {
			p.stats.Placements++
			return c, nil
		}
		p.stats.Refusals++
	}

	if p.opts.maxCatalogues > 0 && len(p.catalogues) >= p.opts.maxCatalogues {
		return nil, fmt.Errorf("%w: %d catalogues", ErrPoolFull, len(p.catalogues))
	}

	c := p.open(r)
	if !c.IsMatch(r, false) {
		p.stats.Refusals++
		return nil, fmt.Errorf("%w: texture %d", ErrTextureTooLarge, PrimaryTexture(r))
	}
	p.catalogues = append(p.catalogues, c)
	p.stats.Opened++
	p.stats.Placements++

	Logger().Debug("batch: catalogue opened",
		"format", c.format,
		"static", c.isStatic,
		"indices", c.usesIndices,
		"open", len(p.catalogues))
	return c, nil
}

// open creates a catalogue for r's identity attributes.
func (p *Pool) open(r Renderable) *Catalogue {
	format := r.DataFormat()
	var opts []CatalogueOption
	if p.opts.factory != nil {
		for u := range MaxTextureUnits {
			if !format.UsesTextureUnit(u) {
				continue
			}
			if a := p.opts.factory(format, u); a != nil {
				opts = append(opts, WithAtlas(u, a))
			}
		}
	}
	return NewCatalogue(format, r.IsStatic(), r.VertexShader(), r.FragmentShader(), r.UsesIndices(), opts...)
}

// Catalogues returns the open catalogues in opening order.
func (p *Pool) Catalogues() []*Catalogue {
	out := make([]*Catalogue, len(p.catalogues))
	copy(out, p.catalogues)
	return out
}

// Len returns the number of open catalogues.
func (p *Pool) Len() int {
	return len(p.catalogues)
}

// Stats returns the pool counters.
func (p *Pool) Stats() PoolStats {
	return p.stats
}

// Reset drops every catalogue and zeroes the counters, typically between
// frames. Atlases handed out by the factory are not touched.
func (p *Pool) Reset() {
	clear(p.catalogues)
	p.catalogues = p.catalogues[:0]
	p.stats = PoolStats{}
}
