// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package loader reads images and fonts into id-addressed resources.
//
// A Loader satisfies render.TextureSource: unknown ids resolve to a
// 100x100 white texture registered under id 0, so a sprite never lacks
// something to draw.
//
//	ld := loader.New()
//	if err := ld.LoadImages([]loader.ResourceData{{Name: "ship", Path: "assets/ship.png"}}); err != nil {
//		log.Print(err) // remaining images are still loaded
//	}
//	s := sprite.ForTexture(ld.TextureByID(ld.ResourceID("ship")))
package loader
