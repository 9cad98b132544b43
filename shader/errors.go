// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "errors"

// Sentinel errors for the shader package.
var (
	// ErrEmptySource is returned when compiling an empty WGSL source.
	ErrEmptySource = errors.New("shader: source is empty")

	// ErrMissingEntryPoint is returned when the source has no entry point
	// for the requested stage.
	ErrMissingEntryPoint = errors.New("shader: missing entry point for stage")

	// ErrNoDevice is returned when creating a HAL module without a device.
	ErrNoDevice = errors.New("shader: device is nil")
)
