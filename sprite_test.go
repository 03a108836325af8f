// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sprite

import (
	"math"
	"testing"
)

func TestNewSpriteIdentity(t *testing.T) {
	s := NewWithSize(3, Extent2D(64, 64))
	if !s.RawInstance().IsIdentity() {
		t.Errorf("new sprite matrix = %v, want identity", s.RawInstance())
	}
	if s.Scale() != V3(1, 1, 1) || s.Anchor() != (Vec3{}) || s.Rotation() != 0 {
		t.Errorf("new sprite placement = %+v", s.Instance())
	}
	if s.TextureID() != 3 {
		t.Errorf("TextureID = %d, want 3", s.TextureID())
	}
}

func TestSpriteMutatorsRecomputeEagerly(t *testing.T) {
	size := Extent2D(64, 32)
	s := NewWithSize(1, size)

	steps := []struct {
		name string
		fn   func()
	}{
		{"position", func() { s.SetPosition(10, -4) }},
		{"rotation", func() { s.SetRotation(math.Pi / 3) }},
		{"scale", func() { s.SetScale(2, 0.5) }},
		{"anchor", func() { s.SetAnchor(0.5, 0.5) }},
		{"position again", func() { s.SetPosition(-7, 9) }},
	}
	for _, step := range steps {
		step.fn()
		want := s.Instance().Matrix(size)
		if got := s.RawInstance(); got != want {
			t.Errorf("after %s: RawInstance = %v, want %v", step.name, got, want)
		}
	}
}

func TestInstanceAnchor(t *testing.T) {
	size := Extent2D(64, 32)
	tests := []struct {
		name   string
		anchor Vec3
		// corner is a quad vertex, want is where it lands.
		corner, want Vec3
	}{
		{"top-left pinned", V3(0, 0, 0), V3(0, 0, 0), V3(100, 100, 0)},
		{"centered top-left", V3(0.5, 0.5, 0), V3(0, 0, 0), V3(68, 116, 0)},
		{"centered bottom-right", V3(0.5, 0.5, 0), V3(64, -32, 0), V3(132, 84, 0)},
		{"bottom-right pinned", V3(1, 1, 0), V3(64, -32, 0), V3(100, 100, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := DefaultInstance()
			inst.Position = V3(100, 100, 0)
			inst.Anchor = tt.anchor
			if got := inst.Matrix(size).TransformPoint(tt.corner); !nearVec(got, tt.want) {
				t.Errorf("corner %+v -> %+v, want %+v", tt.corner, got, tt.want)
			}
		})
	}
}

func TestInstanceScaleRotatesAboutAnchor(t *testing.T) {
	inst := DefaultInstance()
	inst.Anchor = V3(0.5, 0.5, 0)
	inst.Rotation = math.Pi / 2
	inst.Scale = V3(2, 2, 1)
	m := inst.Matrix(Extent2D(10, 10))

	// The quad centre (5,-5) is the pivot and must stay at the origin.
	if got := m.TransformPoint(V3(5, -5, 0)); !nearVec(got, Vec3{}) {
		t.Errorf("pivot -> %+v, want origin", got)
	}
	// Right edge midpoint is 5 units right of the pivot: scaled to 10, then rotated to +Y.
	if got := m.TransformPoint(V3(10, -5, 0)); !nearVec(got, V3(0, 10, 0)) {
		t.Errorf("right midpoint -> %+v, want (0,10,0)", got)
	}
}

func TestInstanceNaNPropagates(t *testing.T) {
	inst := DefaultInstance()
	inst.Position = V3(float32(math.NaN()), 0, 0)
	m := inst.Matrix(Extent2D(1, 1))
	if !math.IsNaN(float64(m[12])) {
		t.Errorf("m[12] = %v, want NaN", m[12])
	}
}

func TestSpriteTranslationOnly(t *testing.T) {
	a := NewWithSize(1, Extent2D(64, 64))
	b := NewWithSize(1, Extent2D(64, 64))
	b.SetPosition(10, 0)

	want := a.RawInstance()
	want[12] += 10
	if b.RawInstance() != want {
		t.Errorf("translated matrix = %v, want %v", b.RawInstance(), want)
	}
}

func TestSpriteInstanceFor(t *testing.T) {
	s := NewWithSize(1, Extent2D(64, 64))
	s.SetAnchor(1, 1)

	if got := s.InstanceFor(Extent2D(64, 64)); got != s.RawInstance() {
		t.Error("InstanceFor(own size) should equal RawInstance")
	}
	other := s.InstanceFor(Extent2D(100, 100))
	if got := other.TransformPoint(V3(100, -100, 0)); !nearVec(got, Vec3{}) {
		t.Errorf("fallback extent corner -> %+v, want origin", got)
	}
	if s.TextureSize() != Extent2D(64, 64) {
		t.Error("InstanceFor must not mutate the sprite")
	}
}

func TestSpriteSetTexture(t *testing.T) {
	s := New(0)
	s.SetAnchor(1, 0)
	s.SetTexture(5, Extent2D(20, 10))
	if s.TextureID() != 5 {
		t.Errorf("TextureID = %d, want 5", s.TextureID())
	}
	if got := s.RawInstance()[12]; got != -20 {
		t.Errorf("anchor offset x = %v, want -20", got)
	}
}
