// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import "errors"

// Sentinel errors for the atlas package.
var (
	// ErrUploaderClosed is returned when syncing through a closed uploader.
	ErrUploaderClosed = errors.New("atlas: uploader is closed")

	// ErrNoDevice is returned when an uploader is created without a device or queue.
	ErrNoDevice = errors.New("atlas: device or queue is nil")

	// ErrNoHALProvider is returned when a device provider does not expose
	// HAL device and queue.
	ErrNoHALProvider = errors.New("atlas: provider does not expose HAL types")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}
