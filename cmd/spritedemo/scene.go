// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/ecs"
	"github.com/gogpu/sprite/loader"
	"github.com/yohamta/donburi"
)

// checker returns an n×n checkerboard with cell-sized squares.
func checker(n, cell int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := range n {
		for x := range n {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}

// ring returns an n×n disc with a transparent outside.
func ring(n int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	r := float64(n) / 2
	for y := range n {
		for x := range n {
			dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
			if d := math.Hypot(dx, dy); d <= r && d >= r*0.6 {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

// populate registers the demo textures and spawns a grid of sprites.
func populate(w donburi.World, ld *loader.Loader) {
	board := ld.AddImage("checker", checker(64, 8,
		color.RGBA{R: 240, G: 240, B: 240, A: 255}, color.RGBA{R: 40, G: 40, B: 60, A: 255}))
	disc := ld.AddImage("ring", ring(48, color.RGBA{R: 255, G: 160, B: 0, A: 255}))

	for row := -2; row <= 2; row++ {
		for col := -3; col <= 3; col++ {
			id := board
			if (row+col)%2 != 0 {
				id = disc
			}
			s := sprite.ForTexture(ld.TextureByID(id))
			s.SetAnchor(0.5, 0.5)
			s.SetPosition(float32(col)*100, float32(row)*100)
			ecs.SpawnSprite(w, s)
		}
	}

	// The default texture, scaled down, marks the origin.
	origin := sprite.ForTexture(ld.DefaultTexture())
	origin.SetAnchor(0.5, 0.5)
	origin.SetScale(0.1, 0.1)
	ecs.SpawnSprite(w, origin)
}

// spin rotates every sprite at a speed that depends on its position.
func spin(w donburi.World) {
	dt := float32(ecs.TimeOf(w).Delta.Seconds())
	for s := range ecs.Sprites(w) {
		p := s.Position()
		speed := 0.5 + float32(math.Abs(float64(p.X+p.Y)))/400
		s.SetRotation(s.Rotation() + speed*dt)
	}
}
