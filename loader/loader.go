// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loader

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"iter"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/gogpu/sprite"
	"golang.org/x/image/font/gofont/gomono"
)

// ErrFont is returned when font data cannot be parsed.
var ErrFont = errors.New("loader: invalid font")

// DefaultTextureName names the fallback texture registered under id 0.
const DefaultTextureName = "white"

// DefaultTextureSize is the edge length of the fallback texture.
const DefaultTextureSize = 100

// Kind tags the payload of a Resource.
type Kind uint8

const (
	KindTexture Kind = iota + 1
	KindFont
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindFont:
		return "font"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Resource is a loaded asset. Exactly one of Texture or Font is set,
// according to Kind.
type Resource struct {
	Kind    Kind
	Texture *sprite.Texture
	Font    *Font
}

// ResourceData names an asset and the path it is read from.
type ResourceData struct {
	Name string
	Path string
}

// Option configures a Loader.
type Option func(*options)

type options struct {
	fsys fs.FS
}

// WithFS reads resource paths from fsys instead of the operating system.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// Loader owns decoded textures and fonts keyed by resource id.
//
// Ids are allocated from 1 upward in load order; id 0 is reserved for
// the default texture. Texture and font ids share one space. Loader is
// safe for concurrent use.
type Loader struct {
	mu        sync.RWMutex
	opts      options
	resources map[sprite.TextureID]Resource
	names     map[string]sprite.TextureID
	nextID    sprite.TextureID

	defaultTexture *sprite.Texture
	defaultFont    *Font
}

// New creates a Loader holding only the default texture and font.
func New(opts ...Option) *Loader {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	df, err := ParseFont(sprite.DefaultTextureID, "gomono", gomono.TTF)
	if err != nil {
		panic(fmt.Sprintf("loader: embedded font: %v", err))
	}
	return &Loader{
		opts:      o,
		resources: make(map[sprite.TextureID]Resource),
		names:     make(map[string]sprite.TextureID),
		nextID:    1,
		defaultTexture: sprite.NewSolidTexture(sprite.DefaultTextureID, DefaultTextureName,
			DefaultTextureSize, DefaultTextureSize, color.White),
		defaultFont: df,
	}
}

func (l *Loader) readFile(path string) ([]byte, error) {
	if l.opts.fsys != nil {
		return fs.ReadFile(l.opts.fsys, path)
	}
	return os.ReadFile(path)
}

// allocate maps name to a fresh id. Callers hold l.mu.
func (l *Loader) allocate(name string) sprite.TextureID {
	id := l.nextID
	l.names[name] = id
	l.nextID++
	return id
}

// LoadImages reads and decodes each image. A failed entry is logged and
// skipped; its id stays allocated so later ids do not shift. The
// returned error joins every failure.
func (l *Loader) LoadImages(data []ResourceData) error {
	var errs []error
	for _, d := range data {
		l.mu.Lock()
		id := l.allocate(d.Name)
		l.mu.Unlock()

		raw, err := l.readFile(d.Path)
		if err == nil {
			var tex *sprite.Texture
			if tex, err = sprite.DecodeTexture(id, d.Name, raw); err == nil {
				l.store(id, Resource{Kind: KindTexture, Texture: tex})
				continue
			}
		}
		sprite.Logger().Warn("loader: image skipped", "name", d.Name, "path", d.Path, "error", err)
		errs = append(errs, fmt.Errorf("load image %q: %w", d.Name, err))
	}
	return errors.Join(errs...)
}

// LoadFonts reads and parses each font with the same failure policy as
// LoadImages.
func (l *Loader) LoadFonts(data []ResourceData) error {
	var errs []error
	for _, d := range data {
		l.mu.Lock()
		id := l.allocate(d.Name)
		l.mu.Unlock()

		raw, err := l.readFile(d.Path)
		if err == nil {
			var f *Font
			if f, err = ParseFont(id, d.Name, raw); err == nil {
				l.store(id, Resource{Kind: KindFont, Font: f})
				continue
			}
		}
		sprite.Logger().Warn("loader: font skipped", "name", d.Name, "path", d.Path, "error", err)
		errs = append(errs, fmt.Errorf("load font %q: %w", d.Name, err))
	}
	return errors.Join(errs...)
}

// AddImage registers an in-memory image under name.
func (l *Loader) AddImage(name string, img image.Image) sprite.TextureID {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.allocate(name)
	l.resources[id] = Resource{Kind: KindTexture, Texture: sprite.NewTextureFromImage(id, name, img)}
	return id
}

// AddImageBytes decodes encoded image data and registers it under name.
// Nothing is registered when decoding fails.
func (l *Loader) AddImageBytes(name string, data []byte) (sprite.TextureID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tex, err := sprite.DecodeTexture(l.nextID, name, data)
	if err != nil {
		return sprite.DefaultTextureID, err
	}
	id := l.allocate(name)
	l.resources[id] = Resource{Kind: KindTexture, Texture: tex}
	return id, nil
}

// AddFont parses font data and registers it under name.
// Nothing is registered when parsing fails.
func (l *Loader) AddFont(name string, data []byte) (sprite.TextureID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := ParseFont(l.nextID, name, data)
	if err != nil {
		return sprite.DefaultTextureID, err
	}
	id := l.allocate(name)
	l.resources[id] = Resource{Kind: KindFont, Font: f}
	return id, nil
}

func (l *Loader) store(id sprite.TextureID, r Resource) {
	l.mu.Lock()
	l.resources[id] = r
	l.mu.Unlock()
}

// ResourceID returns the id most recently allocated for name, or 0.
func (l *Loader) ResourceID(name string) sprite.TextureID {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.names[name]
}

// TextureByID returns the texture for id, or the default texture when
// id is unknown or names a font.
func (l *Loader) TextureByID(id sprite.TextureID) *sprite.Texture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if r, ok := l.resources[id]; ok && r.Kind == KindTexture {
		return r.Texture
	}
	return l.defaultTexture
}

// FontByID returns the font for id, or the default font when id is
// unknown or names a texture.
func (l *Loader) FontByID(id sprite.TextureID) *Font {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if r, ok := l.resources[id]; ok && r.Kind == KindFont {
		return r.Font
	}
	return l.defaultFont
}

// DefaultTexture returns the 100x100 white fallback texture.
func (l *Loader) DefaultTexture() *sprite.Texture { return l.defaultTexture }

// DefaultFont returns the embedded Go Mono font.
func (l *Loader) DefaultFont() *Font { return l.defaultFont }

// Resource returns the resource stored under id.
func (l *Loader) Resource(id sprite.TextureID) (Resource, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	r, ok := l.resources[id]
	return r, ok
}

// Len returns the number of loaded resources, excluding defaults.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.resources)
}

// All yields loaded resources in id order.
func (l *Loader) All() iter.Seq2[sprite.TextureID, Resource] {
	l.mu.RLock()
	ids := slices.Sorted(maps.Keys(l.resources))
	snapshot := make([]Resource, len(ids))
	for i, id := range ids {
		snapshot[i] = l.resources[id]
	}
	l.mu.RUnlock()
	return func(yield func(sprite.TextureID, Resource) bool) {
		for i, id := range ids {
			if !yield(id, snapshot[i]) {
				return
			}
		}
	}
}
