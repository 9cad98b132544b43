// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/batch"
)

func TestNewManagerInvalidConfig(t *testing.T) {
	_, err := NewManager(Config{Size: 100})
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("NewManager() = %v, want *ConfigError", err)
	}
}

func TestManagerWithPool(t *testing.T) {
	m, err := NewManager(smallConfig(), WithLabel("sprites"))
	if err != nil {
		t.Fatalf("NewManager() = %v", err)
	}
	pool := batch.NewPool(batch.WithAtlasFactory(m.NewPage))

	format := batch.FormatPosition2D | batch.FormatTexCoord | batch.FormatUsesTextureUnit0
	for id := batch.TextureID(1); id <= 6; id++ {
		obj := &batch.Object{Format: format, Textures: [batch.MaxTextureUnits]batch.TextureID{id}}
		if _, err := pool.Place(obj); err != nil {
			t.Fatalf("Place(%d) = %v", id, err)
		}
	}

	// Four cells per page: textures 1-4 on page 0, 5-6 on page 1.
	if pool.Len() != 2 {
		t.Errorf("pool.Len() = %d, want 2", pool.Len())
	}
	pages := m.Pages()
	if len(pages) != 2 || m.PageCount() != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].Len() != 4 || pages[1].Len() != 2 {
		t.Errorf("page fill = %d/%d, want 4/2", pages[0].Len(), pages[1].Len())
	}
	if !strings.HasPrefix(pages[1].Label(), "sprites_1_unit0") {
		t.Errorf("page label = %q", pages[1].Label())
	}
	if got := len(m.DirtyPages()); got != 2 {
		t.Errorf("DirtyPages() = %d, want 2", got)
	}

	pages[0].MarkClean()
	if dirty := m.DirtyPages(); len(dirty) != 1 || dirty[0] != pages[1] {
		t.Error("DirtyPages() should only report page 1")
	}

	m.Reset()
	if m.PageCount() != 0 {
		t.Errorf("PageCount() after Reset = %d", m.PageCount())
	}
	if m.Config() != smallConfig() {
		t.Error("Config() does not match")
	}
}
