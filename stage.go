// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sprite

import (
	"iter"
	"slices"
)

// Stage is an ordered collection of sprites for programs that do not use
// the ECS world. Removing a sprite from the stage drops it from rendering.
type Stage struct {
	sprites []*Sprite
}

// NewStage creates an empty stage.
func NewStage() *Stage {
	return &Stage{}
}

// Add appends sprites in draw-submission order.
func (s *Stage) Add(sprites ...*Sprite) {
	s.sprites = append(s.sprites, sprites...)
}

// Remove drops sp from the stage. It reports whether sp was present.
func (s *Stage) Remove(sp *Sprite) bool {
	i := slices.Index(s.sprites, sp)
	if i < 0 {
		return false
	}
	s.sprites = slices.Delete(s.sprites, i, i+1)
	return true
}

// Clear removes every sprite.
func (s *Stage) Clear() {
	clear(s.sprites)
	s.sprites = s.sprites[:0]
}

// Len returns the number of sprites on the stage.
func (s *Stage) Len() int {
	return len(s.sprites)
}

// All iterates the sprites in insertion order.
func (s *Stage) All() iter.Seq[*Sprite] {
	return slices.Values(s.sprites)
}
