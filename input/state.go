// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package input tracks keyboard and mouse state between frames.
//
// Cursor positions are reported in world units: the origin is the
// window centre and Y grows upward, matching the default camera.
package input

import (
	"slices"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/sprite"
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// State is the input snapshot for the current frame. Event callbacks
// write to it and frame code reads it; EndFrame clears per-frame data.
type State struct {
	mu sync.Mutex

	focused      bool
	cursorInside bool

	keysDown     []gpucontext.Key
	keysReleased []gpucontext.Key
	buttonsDown  []MouseButton
	buttonsUp    []MouseButton

	cursor    sprite.Vec2
	hasCursor bool
	delta     sprite.Vec2
	mods      gpucontext.Modifiers
}

// New returns an empty State.
func New() *State {
	return &State{}
}

// PressKey records key as held.
func (s *State) PressKey(key gpucontext.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.keysDown, key) {
		s.keysDown = append(s.keysDown, key)
	}
}

// ReleaseKey records key as released this frame.
func (s *State) ReleaseKey(key gpucontext.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keysDown = slices.DeleteFunc(s.keysDown, func(k gpucontext.Key) bool { return k == key })
	if !slices.Contains(s.keysReleased, key) {
		s.keysReleased = append(s.keysReleased, key)
	}
}

// PressButton records b as held.
func (s *State) PressButton(b MouseButton) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.buttonsDown, b) {
		s.buttonsDown = append(s.buttonsDown, b)
	}
}

// ReleaseButton records b as released this frame.
func (s *State) ReleaseButton(b MouseButton) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buttonsDown = slices.DeleteFunc(s.buttonsDown, func(x MouseButton) bool { return x == b })
	if !slices.Contains(s.buttonsUp, b) {
		s.buttonsUp = append(s.buttonsUp, b)
	}
}

// MoveCursor records a cursor position given in window pixels (origin
// top-left) for a window of the given size. The motion since the last
// position accumulates into MouseDelta.
func (s *State) MoveCursor(x, y float32, width, height uint32) {
	pos := sprite.V2(x-float32(width/2), -y+float32(height/2))
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasCursor {
		s.delta = s.delta.Add(pos.Sub(s.cursor))
	}
	s.cursor = pos
	s.hasCursor = true
}

// SetFocused records whether the window has keyboard focus. Losing
// focus releases every held key and button.
func (s *State) SetFocused(focused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = focused
	if !focused {
		s.keysReleased = append(s.keysReleased, s.keysDown...)
		s.keysDown = s.keysDown[:0]
		s.buttonsUp = append(s.buttonsUp, s.buttonsDown...)
		s.buttonsDown = s.buttonsDown[:0]
	}
}

// SetCursorInside records whether the cursor is over the window.
func (s *State) SetCursorInside(inside bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursorInside = inside
	if !inside {
		s.hasCursor = false
	}
}

// SetModifiers records the current modifier keys.
func (s *State) SetModifiers(m gpucontext.Modifiers) {
	s.mu.Lock()
	s.mods = m
	s.mu.Unlock()
}

// IsKeyDown reports whether key is held.
func (s *State) IsKeyDown(key gpucontext.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.keysDown, key)
}

// JustReleased reports whether key was released during this frame.
func (s *State) JustReleased(key gpucontext.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.keysReleased, key)
}

// IsButtonDown reports whether b is held.
func (s *State) IsButtonDown(b MouseButton) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.buttonsDown, b)
}

// ButtonReleased reports whether b was released during this frame.
func (s *State) ButtonReleased(b MouseButton) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.buttonsUp, b)
}

// Cursor returns the last cursor position in world units.
func (s *State) Cursor() sprite.Vec2 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// MouseDelta returns the cursor motion accumulated this frame.
func (s *State) MouseDelta() sprite.Vec2 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delta
}

// Modifiers returns the last reported modifier state.
func (s *State) Modifiers() gpucontext.Modifiers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mods
}

// Focused reports whether the window has focus.
func (s *State) Focused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// CursorInside reports whether the cursor is over the window.
func (s *State) CursorInside() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorInside
}

// EndFrame clears the mouse delta and the released lists.
func (s *State) EndFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delta = sprite.Vec2{}
	s.keysReleased = s.keysReleased[:0]
	s.buttonsUp = s.buttonsUp[:0]
}
