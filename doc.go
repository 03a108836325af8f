// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sprite provides the data model of a batched 2D sprite renderer
// built on gogpu/wgpu.
//
// # Overview
//
// A [Texture] is a decoded RGBA8 image plus the quad geometry sized to
// it. A [Sprite] references a texture by [TextureID] and carries an
// [Instance] placement (position, rotation, scale, anchor). Every sprite
// mutator recomputes the column-major model matrix eagerly, so the
// renderer only ever reads [Sprite.RawInstance].
//
// # Quick Start
//
//	tex, err := sprite.DecodeTexture(1, "player.png", data)
//	if err != nil {
//	    return err
//	}
//	s := sprite.ForTexture(tex)
//	s.SetAnchor(0.5, 0.5)
//	s.SetPosition(120, -40)
//	s.SetRotation(math.Pi / 4)
//
// # Architecture
//
// The module is organized into:
//   - sprite: geometry, textures, transforms, sprites, stage, frame clock
//   - render: GPU device, surface, camera and the batching renderer
//   - loader: id allocation, image and font loading, default assets
//   - input: keyboard, mouse and focus state fed from window events
//   - ecs: Donburi world with sprite, text and time components
//   - app: gogpu window and frame loop tying everything together
//
// # Coordinates
//
// World units are pixels. The camera looks down -Z at the origin with +Y
// up, so a quad's top-left corner sits at its position and the quad
// extends toward +X and -Y.
//
// # Logging
//
// Logging is disabled by default. Call [SetLogger] with a *slog.Logger
// to enable it for this package and every sub-package.
package sprite
