// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import _ "embed"

// SpriteVertexSource is the WGSL vertex stage for 2D sprites with one
// texture coordinate (Position2D|TexCoord|TextureUnit0 formats).
//
//go:embed shaders/sprite_vertex.wgsl
var SpriteVertexSource string

// SpriteFragmentSource is the WGSL fragment stage sampling the unit 0 atlas.
//
//go:embed shaders/sprite_fragment.wgsl
var SpriteFragmentSource string
