// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sprite

// DefaultFontSize is the size in pixels used by NewText.
const DefaultFontSize = 32

// Text is a string to be drawn with a loaded font.
// Fonts and textures share one loader id space, so FontID is a TextureID.
type Text struct {
	FontID   TextureID
	FontSize float32
	Text     string
	Position Vec2
}

// NewText creates a text block using the given font at DefaultFontSize.
func NewText(fontID TextureID, s string) Text {
	return Text{FontID: fontID, FontSize: DefaultFontSize, Text: s}
}
