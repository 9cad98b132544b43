// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
)

// MaxTextureUnits is the number of texture units a renderable may use.
const MaxTextureUnits = 4

// Format is a bitmask describing a renderable's vertex layout and the
// texture units it samples. Two renderables can only share a batch when
// their formats are equal.
type Format uint64

// Vertex layout flags.
const (
	// FormatPosition2D adds a float32x2 position attribute.
	FormatPosition2D Format = 1 << iota
	// FormatPosition3D adds a float32x3 position attribute.
	// Takes precedence over FormatPosition2D when both are set.
	FormatPosition3D
	// FormatNormal adds a float32x3 normal attribute.
	FormatNormal
	// FormatColor adds a float32x4 color attribute.
	FormatColor
	// FormatTexCoord adds one float32x2 texture coordinate per used texture unit.
	FormatTexCoord
)

// Texture unit usage flags.
const (
	FormatUsesTextureUnit0 Format = 1 << (12 + iota)
	FormatUsesTextureUnit1
	FormatUsesTextureUnit2
	FormatUsesTextureUnit3
)

// formatTextureUnits masks all texture unit flags.
const formatTextureUnits = FormatUsesTextureUnit0 | FormatUsesTextureUnit1 |
	FormatUsesTextureUnit2 | FormatUsesTextureUnit3

// TextureUnitFlag returns the "uses texture unit" flag for unit.
// Returns 0 when unit is outside [0, MaxTextureUnits).
func TextureUnitFlag(unit int) Format {
	if unit < 0 || unit >= MaxTextureUnits {
		return 0
	}
	return FormatUsesTextureUnit0 << unit
}

// UsesTextureUnit reports whether the format samples the given texture unit.
func (f Format) UsesTextureUnit(unit int) bool {
	flag := TextureUnitFlag(unit)
	return flag != 0 && f&flag != 0
}

// TextureUnitCount returns the number of texture units the format samples.
func (f Format) TextureUnitCount() int {
	return bits.OnesCount64(uint64(f & formatTextureUnits))
}

// Vertex attribute sizes in bytes.
const (
	sizeFloat32x2 = 8
	sizeFloat32x3 = 12
	sizeFloat32x4 = 16
)

// VertexLayout derives the interleaved vertex buffer layout for the format.
// Attributes appear in the order position, normal, color, texcoords (one
// per used texture unit, ascending), with consecutive shader locations.
func (f Format) VertexLayout() gputypes.VertexBufferLayout {
	var (
		attrs    []gputypes.VertexAttribute
		offset   uint64
		location uint32
	)
	add := func(format gputypes.VertexFormat, size uint64) {
		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         format,
			Offset:         offset,
			ShaderLocation: location,
		})
		offset += size
		location++
	}

	switch {
	case f&FormatPosition3D != 0:
		add(gputypes.VertexFormatFloat32x3, sizeFloat32x3)
	case f&FormatPosition2D != 0:
		add(gputypes.VertexFormatFloat32x2, sizeFloat32x2)
	}
	if f&FormatNormal != 0 {
		add(gputypes.VertexFormatFloat32x3, sizeFloat32x3)
	}
	if f&FormatColor != 0 {
		add(gputypes.VertexFormatFloat32x4, sizeFloat32x4)
	}
	if f&FormatTexCoord != 0 {
		for u := range MaxTextureUnits {
			if f.UsesTextureUnit(u) {
				add(gputypes.VertexFormatFloat32x2, sizeFloat32x2)
			}
		}
	}

	return gputypes.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// VertexStride returns the size in bytes of one interleaved vertex.
func (f Format) VertexStride() uint64 {
	return f.VertexLayout().ArrayStride
}

var formatNames = []struct {
	flag Format
	name string
}{
	{FormatPosition2D, "Position2D"},
	{FormatPosition3D, "Position3D"},
	{FormatNormal, "Normal"},
	{FormatColor, "Color"},
	{FormatTexCoord, "TexCoord"},
	{FormatUsesTextureUnit0, "TextureUnit0"},
	{FormatUsesTextureUnit1, "TextureUnit1"},
	{FormatUsesTextureUnit2, "TextureUnit2"},
	{FormatUsesTextureUnit3, "TextureUnit3"},
}

// String returns the set flags joined by "|", e.g. "Position2D|TextureUnit0".
// Unknown bits are rendered as a hex remainder.
func (f Format) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	rest := f
	for _, n := range formatNames {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}

// ParseFormat parses a "|"-separated list of flag names as produced by
// String. Names are case-insensitive and surrounding spaces are ignored.
// "0" and "" parse to the empty format.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	var f Format
	for part := range strings.SplitSeq(s, "|") {
		name := strings.TrimSpace(part)
		flag, ok := lookupFormatName(name)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownFormatFlag, name)
		}
		f |= flag
	}
	return f, nil
}

func lookupFormatName(name string) (Format, bool) {
	for _, n := range formatNames {
		if strings.EqualFold(n.name, name) {
			return n.flag, true
		}
	}
	return 0, false
}
