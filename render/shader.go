// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded sprite shader source.
//
//go:embed shaders/sprite.wgsl
var spriteShaderSource string

// Shader entry points.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// SpriteShaderSource returns the WGSL source of the sprite pipeline.
func SpriteShaderSource() string {
	return spriteShaderSource
}

// CompileSpriteShader compiles the sprite shader to SPIR-V words.
func CompileSpriteShader() ([]uint32, error) {
	spirv, err := naga.Compile(spriteShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile sprite shader: %w", err)
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("compile sprite shader: SPIR-V length %d is not word aligned", len(spirv))
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words, nil
}

// shaderSource returns the module source handed to the device. Backends
// that only consume SPIR-V get the naga output; everything else gets WGSL.
func shaderSource(spirv bool) (hal.ShaderSource, error) {
	if !spirv {
		return hal.ShaderSource{WGSL: spriteShaderSource}, nil
	}
	words, err := CompileSpriteShader()
	if err != nil {
		return hal.ShaderSource{}, err
	}
	return hal.ShaderSource{SPIRV: words}, nil
}
