// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// fakeSurface wraps an offscreen surface and can be told to fail.
type fakeSurface struct {
	*OffscreenSurface
	acquireErr error
	configures int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{OffscreenSurface: NewOffscreenSurface()}
}

func (s *fakeSurface) Configure(device hal.Device, config SurfaceConfig) error {
	s.configures++
	return s.OffscreenSurface.Configure(device, config)
}

func (s *fakeSurface) AcquireTexture() (*SurfaceTexture, error) {
	if s.acquireErr != nil {
		return nil, s.acquireErr
	}
	return s.OffscreenSurface.AcquireTexture()
}

// mapTextures is a TextureSource over a map with a white fallback.
type mapTextures struct {
	byID     map[sprite.TextureID]*sprite.Texture
	fallback *sprite.Texture
}

func newMapTextures(textures ...*sprite.Texture) *mapTextures {
	m := &mapTextures{
		byID:     make(map[sprite.TextureID]*sprite.Texture),
		fallback: sprite.NewSolidTexture(sprite.DefaultTextureID, "white", 100, 100, color.White),
	}
	for _, tex := range textures {
		m.byID[tex.ID] = tex
	}
	return m
}

func (m *mapTextures) TextureByID(id sprite.TextureID) *sprite.Texture {
	if tex, ok := m.byID[id]; ok {
		return tex
	}
	return m.fallback
}

// newTestRenderer builds a renderer, camera and binding on a noop device.
func newTestRenderer(t *testing.T, opts ...Option) (*Renderer, *fakeSurface, *CameraBinding) {
	t.Helper()
	device, queue := createNoopDevice(t)
	surface := newFakeSurface()
	r, err := New(device, queue, surface, 320, 240, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(r.Close)

	cam, err := NewCamera(r.Buffers(), 320, 240)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	t.Cleanup(cam.Release)
	binding, err := r.BindCamera(cam)
	if err != nil {
		t.Fatalf("BindCamera: %v", err)
	}
	t.Cleanup(binding.Release)
	return r, surface, binding
}

func solid(id sprite.TextureID, w, h int) *sprite.Texture {
	return sprite.NewSolidTexture(id, "solid", w, h, color.RGBA{R: 200, A: 255})
}
