// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop HAL device for testing.
func createNoopDevice(t *testing.T) hal.Device {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device
}

// compileOrSkip compiles source, skipping on known naga feature gaps.
func compileOrSkip(t *testing.T, label string, stage Stage, source string) *Module {
	t.Helper()
	m, err := Compile(label, stage, source)
	if err != nil {
		if strings.Contains(err.Error(), "not yet implemented") || strings.Contains(err.Error(), "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("Compile(%s) failed: %v", label, err)
	}
	return m
}

func TestCompileBuiltinSprite(t *testing.T) {
	tests := []struct {
		name   string
		stage  Stage
		source string
	}{
		{"sprite_vs", StageVertex, SpriteVertexSource},
		{"sprite_fs", StageFragment, SpriteFragmentSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := compileOrSkip(t, tt.name, tt.stage, tt.source)

			words := m.SPIRV()
			if len(words) == 0 {
				t.Fatal("SPIR-V output is empty")
			}
			if words[0] != 0x07230203 {
				t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x07230203", words[0])
			}
			if m.Label() != tt.name {
				t.Errorf("Label() = %q, want %q", m.Label(), tt.name)
			}
			if m.Stage() != tt.stage {
				t.Errorf("Stage() = %v, want %v", m.Stage(), tt.stage)
			}
			if m.Source() != tt.source {
				t.Error("Source() does not return the compiled source")
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		stage  Stage
		source string
		want   error
	}{
		{"empty", StageVertex, "", ErrEmptySource},
		{"whitespace", StageFragment, "  \n\t", ErrEmptySource},
		{"vertex source as fragment", StageFragment, SpriteVertexSource, ErrMissingEntryPoint},
		{"fragment source as vertex", StageVertex, SpriteFragmentSource, ErrMissingEntryPoint},
		{"unknown stage", Stage(9), SpriteVertexSource, ErrMissingEntryPoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.name, tt.stage, tt.source)
			if !errors.Is(err, tt.want) {
				t.Errorf("Compile() error = %v, want %v", err, tt.want)
			}
			if m != nil {
				t.Error("Compile() returned a module on error")
			}
		})
	}
}

func TestCompileInvalidWGSL(t *testing.T) {
	_, err := Compile("broken", StageVertex, "@vertex fn vs_main( -> {")
	if err == nil {
		t.Fatal("expected error for malformed WGSL")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error should name the module label, got: %v", err)
	}
}

func TestCompileDistinctIdentity(t *testing.T) {
	a := compileOrSkip(t, "a", StageVertex, SpriteVertexSource)
	b := compileOrSkip(t, "b", StageVertex, SpriteVertexSource)
	if a == b {
		t.Error("two compilations of the same source must be distinct identities")
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile should panic on empty source")
		}
	}()
	MustCompile("empty", StageVertex, "")
}

func TestModuleCreate(t *testing.T) {
	device := createNoopDevice(t)
	m := compileOrSkip(t, "sprite_fs", StageFragment, SpriteFragmentSource)

	mod, err := m.Create(device)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if mod == nil {
		t.Fatal("Create() returned nil module")
	}

	again, err := m.Create(device)
	if err != nil {
		t.Fatalf("second Create() failed: %v", err)
	}
	if again != mod {
		t.Error("Create() should return the cached module")
	}

	m.Destroy()
	m.Destroy() // idempotent

	recreated, err := m.Create(device)
	if err != nil {
		t.Fatalf("Create() after Destroy failed: %v", err)
	}
	if recreated == nil {
		t.Error("Create() after Destroy returned nil")
	}
	m.Destroy()
}

func TestModuleCreateNilDevice(t *testing.T) {
	m := compileOrSkip(t, "sprite_vs", StageVertex, SpriteVertexSource)
	if _, err := m.Create(nil); !errors.Is(err, ErrNoDevice) {
		t.Errorf("Create(nil) error = %v, want ErrNoDevice", err)
	}
}

func TestModuleString(t *testing.T) {
	var m *Module
	if got := m.String(); got != "<nil shader>" {
		t.Errorf("nil String() = %q", got)
	}
	if got := StageVertex.String(); got != "vertex" {
		t.Errorf("StageVertex.String() = %q", got)
	}
	if got := Stage(7).String(); got != "Stage(7)" {
		t.Errorf("Stage(7).String() = %q", got)
	}
}

func TestSpirvWords(t *testing.T) {
	got := spirvWords([]byte{0x03, 0x02, 0x23, 0x07, 0x01, 0x00, 0x00, 0x00, 0xFF})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (trailing partial word dropped)", len(got))
	}
	if got[0] != 0x07230203 || got[1] != 1 {
		t.Errorf("words = %#v", got)
	}
}
