// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import "errors"

// Sentinel errors for the batch package.
var (
	// ErrNilRenderable is returned when placing a nil renderable.
	ErrNilRenderable = errors.New("batch: renderable is nil")

	// ErrPoolFull is returned when a renderable needs a new catalogue but
	// the pool already holds its maximum.
	ErrPoolFull = errors.New("batch: catalogue pool is full")

	// ErrTextureTooLarge is returned when even a newly opened catalogue
	// cannot admit the renderable's primary texture.
	ErrTextureTooLarge = errors.New("batch: texture does not fit a newly opened catalogue")

	// ErrInvalidTextureUnit is returned for a unit outside [0, MaxTextureUnits).
	ErrInvalidTextureUnit = errors.New("batch: invalid texture unit")

	// ErrUnknownFormatFlag is returned by ParseFormat for an unknown flag name.
	ErrUnknownFormatFlag = errors.New("batch: unknown format flag")
)
