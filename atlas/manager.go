// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"fmt"
	"sync"

	"github.com/gogpu/batch"
)

// Manager hands out grid pages to a batch.Pool and tracks them for upload.
//
// Manager is safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	config Config
	opts   gridOptions
	pages  []*Grid
}

// NewManager creates a page manager. Options apply to every page; the
// label is used as a prefix.
func NewManager(config Config, opts ...Option) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	o := gridOptions{label: "atlas"}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{config: config, opts: o}, nil
}

// NewPage creates a page for one texture unit of a new catalogue.
// It has the batch.AtlasFactory signature:
//
//	pool := batch.NewPool(batch.WithAtlasFactory(m.NewPage))
func (m *Manager) NewPage(format batch.Format, unit int) batch.AtlasProvider {
	m.mu.Lock()
	defer m.mu.Unlock()

	o := m.opts
	o.label = fmt.Sprintf("%s_%d_unit%d", m.opts.label, len(m.pages), unit)
	g := newGrid(m.config, o)
	m.pages = append(m.pages, g)

	batch.Logger().Debug("atlas: page created",
		"label", o.label, "format", format, "cells", g.Capacity())
	return g
}

// Pages returns every page in creation order.
func (m *Manager) Pages() []*Grid {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Grid, len(m.pages))
	copy(out, m.pages)
	return out
}

// DirtyPages returns the pages needing upload.
func (m *Manager) DirtyPages() []*Grid {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var dirty []*Grid
	for _, g := range m.pages {
		if g.IsDirty() {
			dirty = append(dirty, g)
		}
	}
	return dirty
}

// PageCount returns the number of pages.
func (m *Manager) PageCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pages)
}

// Config returns the page configuration.
func (m *Manager) Config() Config {
	return m.config
}

// Reset forgets every page, typically together with batch.Pool.Reset.
// GPU textures held by an Uploader must be released separately.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.pages)
	m.pages = m.pages[:0]
}
