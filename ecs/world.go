// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ecs binds sprites, text and frame time to a Donburi world.
//
// The renderer never sees the world directly: Sprites adapts the world
// to the iter.Seq the renderer consumes.
package ecs

import (
	"iter"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/sprite"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// Components.
var (
	Sprite = donburi.NewComponentType[*sprite.Sprite]()
	Text   = donburi.NewComponentType[sprite.Text]()
	Time   = donburi.NewComponentType[sprite.Time]()
)

// KeyEvent is published for every key press or release.
type KeyEvent struct {
	Key       gpucontext.Key
	Modifiers gpucontext.Modifiers
	Pressed   bool
}

// KeyEvents carries KeyEvent values. Queued events are delivered to
// subscribers when a Schedule runs.
var KeyEvents = events.NewEventType[KeyEvent]()

var (
	spriteQuery = donburi.NewQuery(filter.Contains(Sprite))
	textQuery   = donburi.NewQuery(filter.Contains(Text))
)

// NewWorld creates a world holding the Time singleton.
func NewWorld() donburi.World {
	w := donburi.NewWorld()
	w.Create(Time)
	return w
}

// SpawnSprite adds an entity carrying s.
func SpawnSprite(w donburi.World, s *sprite.Sprite) donburi.Entity {
	e := w.Create(Sprite)
	Sprite.SetValue(w.Entry(e), s)
	return e
}

// SpawnText adds an entity carrying t.
func SpawnText(w donburi.World, t sprite.Text) donburi.Entity {
	e := w.Create(Text)
	Text.SetValue(w.Entry(e), t)
	return e
}

// Despawn removes e. Its sprite is no longer drawn from the next frame.
func Despawn(w donburi.World, e donburi.Entity) {
	if w.Valid(e) {
		w.Remove(e)
	}
}

// Sprites yields every sprite in the world.
func Sprites(w donburi.World) iter.Seq[*sprite.Sprite] {
	return func(yield func(*sprite.Sprite) bool) {
		var all []*sprite.Sprite
		spriteQuery.Each(w, func(e *donburi.Entry) {
			if s := Sprite.GetValue(e); s != nil {
				all = append(all, s)
			}
		})
		for _, s := range all {
			if !yield(s) {
				return
			}
		}
	}
}

// Texts returns every text entity's value.
func Texts(w donburi.World) []sprite.Text {
	var out []sprite.Text
	textQuery.Each(w, func(e *donburi.Entry) {
		out = append(out, Text.GetValue(e))
	})
	return out
}

// TimeOf returns the world's Time singleton, creating it if missing.
func TimeOf(w donburi.World) *sprite.Time {
	e, ok := Time.First(w)
	if !ok {
		e = w.Entry(w.Create(Time))
	}
	return Time.Get(e)
}

// SetTime stores t in the Time singleton.
func SetTime(w donburi.World, t sprite.Time) {
	*TimeOf(w) = t
}

// PublishKey queues a key event.
func PublishKey(w donburi.World, ev KeyEvent) {
	KeyEvents.Publish(w, ev)
}
