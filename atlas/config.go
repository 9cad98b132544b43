// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import "github.com/gogpu/gputypes"

// Config holds grid page configuration.
type Config struct {
	// Size is the page size in pixels (width = height).
	// Must be a power of 2. Default: 1024
	Size int

	// CellSize is the edge of each square cell in pixels.
	// Default: 64
	CellSize int

	// Padding between cells to prevent sampling bleed.
	// Default: 2
	Padding int

	// Format is the GPU texture format of the page.
	// RGBA8Unorm or BGRA8Unorm. Default: RGBA8Unorm
	Format gputypes.TextureFormat
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Size:     1024,
		CellSize: 64,
		Padding:  2,
		Format:   gputypes.TextureFormatRGBA8Unorm,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Size < 64 {
		return &ConfigError{Field: "Size", Reason: "must be at least 64"}
	}
	if c.Size > 8192 {
		return &ConfigError{Field: "Size", Reason: "must be at most 8192"}
	}
	if c.Size&(c.Size-1) != 0 {
		return &ConfigError{Field: "Size", Reason: "must be power of 2"}
	}
	if c.CellSize < 8 {
		return &ConfigError{Field: "CellSize", Reason: "must be at least 8"}
	}
	if c.CellSize > c.Size {
		return &ConfigError{Field: "CellSize", Reason: "must be at most Size"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if c.Padding >= c.CellSize/2 {
		return &ConfigError{Field: "Padding", Reason: "must be less than half CellSize"}
	}
	switch c.Format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
	default:
		return &ConfigError{Field: "Format", Reason: "must be RGBA8Unorm or BGRA8Unorm"}
	}
	return nil
}

// grid returns the number of columns and rows of cells.
func (c *Config) grid() (cols, rows int) {
	step := c.CellSize + c.Padding
	cols = c.Size / step
	rows = c.Size / step
	if cols <= 0 {
		cols = 1
	}
	if rows <= 0 {
		rows = 1
	}
	return cols, rows
}
