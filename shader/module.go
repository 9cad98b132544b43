// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Stage identifies the pipeline stage a module is written for.
type Stage uint8

const (
	// StageVertex is the vertex stage (@vertex entry point).
	StageVertex Stage = iota
	// StageFragment is the fragment stage (@fragment entry point).
	StageFragment
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// attribute returns the WGSL entry point attribute for the stage.
func (s Stage) attribute() string {
	switch s {
	case StageVertex:
		return "@vertex"
	case StageFragment:
		return "@fragment"
	default:
		return ""
	}
}

// Module is a compiled shader stage. Its pointer is its identity.
//
// Module is safe for concurrent use.
type Module struct {
	label  string
	stage  Stage
	source string
	spirv  []uint32

	mu     sync.Mutex
	device hal.Device
	hal    hal.ShaderModule
}

// Compile validates and compiles WGSL source to SPIR-V.
// Each call returns a new identity, even for identical sources.
func Compile(label string, stage Stage, source string) (*Module, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, label)
	}
	if attr := stage.attribute(); attr == "" || !strings.Contains(source, attr) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrMissingEntryPoint, label, stage)
	}

	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to compile %s: %w", label, err)
	}

	return &Module{
		label:  label,
		stage:  stage,
		source: source,
		spirv:  spirvWords(spirvBytes),
	}, nil
}

// MustCompile is like Compile but panics on error.
// Use only for sources embedded in the binary.
func MustCompile(label string, stage Stage, source string) *Module {
	m, err := Compile(label, stage, source)
	if err != nil {
		panic(err)
	}
	return m
}

// spirvWords converts little-endian SPIR-V bytes to 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}

// Label returns the debug label given at compile time.
func (m *Module) Label() string { return m.label }

// Stage returns the pipeline stage.
func (m *Module) Stage() Stage { return m.stage }

// Source returns the WGSL source.
func (m *Module) Source() string { return m.source }

// SPIRV returns the compiled SPIR-V words. The slice must not be modified.
func (m *Module) SPIRV() []uint32 { return m.spirv }

// Create returns the HAL shader module, creating it on device the first
// time. Later calls return the cached module regardless of device.
func (m *Module) Create(device hal.Device) (hal.ShaderModule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hal != nil {
		return m.hal, nil
	}
	if device == nil {
		return nil, ErrNoDevice
	}

	mod, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: m.label,
		Source: hal.ShaderSource{
			SPIRV: m.spirv,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("shader: failed to create module %s: %w", m.label, err)
	}
	m.device = device
	m.hal = mod
	return mod, nil
}

// Destroy releases the HAL module, if one was created.
// The compiled SPIR-V is kept so Create can be called again.
func (m *Module) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hal != nil && m.device != nil {
		m.device.DestroyShaderModule(m.hal)
	}
	m.hal = nil
	m.device = nil
}

// String returns a short description for diagnostics.
func (m *Module) String() string {
	if m == nil {
		return "<nil shader>"
	}
	return m.label + "(" + m.stage.String() + ")"
}
