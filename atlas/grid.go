// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"image"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/batch"
)

// Source resolves texture identifiers to images for compositing into a page.
type Source interface {
	// Texture returns the image for id, or false if it is unknown.
	Texture(id batch.TextureID) (image.Image, bool)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(id batch.TextureID) (image.Image, bool)

// Texture implements Source.
func (f SourceFunc) Texture(id batch.TextureID) (image.Image, bool) { return f(id) }

// Region describes a texture's cell in the page.
type Region struct {
	// Cell is the cell index, row-major.
	Cell int

	// Pixel coordinates in the page.
	X, Y, Width, Height int

	// UV coordinates [0, 1] for texture sampling.
	U0, V0, U1, V1 float32
}

// Option configures a Grid or Manager.
type Option func(*gridOptions)

type gridOptions struct {
	source Source
	label  string
}

// WithSource composites admitted textures from src into the page.
// Without a source, Admit only reserves cells.
func WithSource(src Source) Option {
	return func(o *gridOptions) {
		o.source = src
	}
}

// WithLabel sets a debug label used in logs and GPU resource names.
func WithLabel(label string) Option {
	return func(o *gridOptions) {
		o.label = label
	}
}

// Grid is a texture page of uniform cells implementing batch.AtlasProvider.
//
// Grid is safe for concurrent use.
type Grid struct {
	mu      sync.RWMutex
	config  Config
	opts    gridOptions
	cols    int
	rows    int
	next    int
	regions map[batch.TextureID]Region
	page    *image.RGBA
	dirty   bool
}

var _ batch.AtlasProvider = (*Grid)(nil)

// NewGrid creates an empty page.
func NewGrid(config Config, opts ...Option) (*Grid, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	o := gridOptions{label: "atlas"}
	for _, opt := range opts {
		opt(&o)
	}
	return newGrid(config, o), nil
}

// newGrid creates a page from a validated configuration.
func newGrid(config Config, o gridOptions) *Grid {
	cols, rows := config.grid()
	return &Grid{
		config:  config,
		opts:    o,
		cols:    cols,
		rows:    rows,
		regions: make(map[batch.TextureID]Region),
		page:    image.NewRGBA(image.Rect(0, 0, config.Size, config.Size)),
	}
}

// WillFit reports whether id is already in the page or a cell is free.
func (g *Grid) WillFit(id batch.TextureID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.regions[id]; ok {
		return true
	}
	return g.next < g.cols*g.rows
}

// Admit reserves a cell for id and composites its image when a source is
// configured. Admitting a present id is a no-op. Admitting into a full
// page is a caller error: it is logged and the page is left unchanged.
func (g *Grid) Admit(id batch.TextureID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.regions[id]; ok {
		return
	}
	if g.next >= g.cols*g.rows {
		batch.Logger().Warn("atlas: admit into full page",
			"label", g.opts.label, "texture", id, "cells", g.cols*g.rows)
		return
	}

	region := g.allocate()
	g.regions[id] = region

	if g.opts.source != nil {
		if img, ok := g.opts.source.Texture(id); ok {
			g.composite(img, region)
		} else {
			batch.Logger().Debug("atlas: texture has no source image",
				"label", g.opts.label, "texture", id)
		}
	}
	g.dirty = true
}

// allocate takes the next free cell. Must be called with the write lock held.
func (g *Grid) allocate() Region {
	cell := g.next
	g.next++

	step := g.config.CellSize + g.config.Padding
	x := (cell % g.cols) * step
	y := (cell / g.cols) * step
	size := g.config.CellSize
	pageSize := float32(g.config.Size)

	return Region{
		Cell:   cell,
		X:      x,
		Y:      y,
		Width:  size,
		Height: size,
		U0:     float32(x) / pageSize,
		V0:     float32(y) / pageSize,
		U1:     float32(x+size) / pageSize,
		V1:     float32(y+size) / pageSize,
	}
}

// composite scales img into the region's cell.
func (g *Grid) composite(img image.Image, r Region) {
	dst := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
	src := img.Bounds()
	if src.Dx() == r.Width && src.Dy() == r.Height {
		draw.Draw(g.page, dst, img, src.Min, draw.Src)
		return
	}
	draw.ApproxBiLinear.Scale(g.page, dst, img, src, draw.Src, nil)
}

// Region returns the cell of id.
func (g *Grid) Region(id batch.TextureID) (Region, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.regions[id]
	return r, ok
}

// Has reports whether id has been admitted.
func (g *Grid) Has(id batch.TextureID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.regions[id]
	return ok
}

// Len returns the number of admitted textures.
func (g *Grid) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.regions)
}

// Capacity returns the total number of cells.
func (g *Grid) Capacity() int {
	return g.cols * g.rows
}

// Remaining returns the number of free cells.
func (g *Grid) Remaining() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cols*g.rows - g.next
}

// Utilization returns the fraction of cells used (0.0 to 1.0).
func (g *Grid) Utilization() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return float64(g.next) / float64(g.cols*g.rows)
}

// GridDimensions returns the number of columns and rows.
func (g *Grid) GridDimensions() (cols, rows int) {
	return g.cols, g.rows
}

// Config returns the page configuration.
func (g *Grid) Config() Config {
	return g.config
}

// Label returns the debug label.
func (g *Grid) Label() string {
	return g.opts.label
}

// IsDirty reports whether the page changed since the last MarkClean.
func (g *Grid) IsDirty() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.dirty
}

// MarkClean marks the page as uploaded.
func (g *Grid) MarkClean() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dirty = false
}

// Pixels returns a copy of the page in RGBA order.
func (g *Grid) Pixels() []byte {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]byte, len(g.page.Pix))
	copy(out, g.page.Pix)
	return out
}

// Image returns a copy of the page image.
func (g *Grid) Image() *image.RGBA {
	g.mu.RLock()
	defer g.mu.RUnlock()
	img := image.NewRGBA(g.page.Rect)
	copy(img.Pix, g.page.Pix)
	return img
}

// Reset frees every cell and clears the page. Catalogues bound to the
// page must be discarded with it.
func (g *Grid) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next = 0
	clear(g.regions)
	clear(g.page.Pix)
	g.dirty = true
}
