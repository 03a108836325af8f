// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loader

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/sprite"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font is a loaded TrueType or OpenType font.
//
// The raw bytes are parsed twice: by go-text/typesetting for glyph
// coverage and shaping, and by x/image opentype for rasterization.
type Font struct {
	ID   sprite.TextureID
	Name string
	Data []byte

	shaping *gotext.Font
	raster  *opentype.Font
}

// ParseFont validates and parses font data.
func ParseFont(id sprite.TextureID, name string, data []byte) (*Font, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrFont, name, err)
	}
	raster, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrFont, name, err)
	}
	return &Font{
		ID:      id,
		Name:    name,
		Data:    data,
		shaping: face.Font,
		raster:  raster,
	}, nil
}

// OpenType returns the parsed font for use with x/image rasterizers.
func (f *Font) OpenType() *opentype.Font {
	return f.raster
}

// Face returns a rasterizing face at size pixels. The caller closes it.
func (f *Font) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(f.raster, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %q: %w", f.Name, err)
	}
	return face, nil
}

// Covers reports whether the font maps every rune of s to a glyph.
func (f *Font) Covers(s string) bool {
	for _, r := range s {
		if _, ok := f.shaping.NominalGlyph(r); !ok {
			return false
		}
	}
	return true
}

// Measure returns the shaped horizontal advance of s at size pixels.
func (f *Font) Measure(s string, size float32) float32 {
	if s == "" {
		return 0
	}
	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f.shaping),
		Size:      fixed.Int26_6(size * 64),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	}
	var shaper shaping.HarfbuzzShaper
	out := shaper.Shape(input)
	return float32(out.Advance) / 64
}
