// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite/render"
	"github.com/gogpu/wgpu/hal"
)

// windowSurface adapts the swapchain image gogpu hands to each draw
// callback. gogpu owns configuration and presentation of the real
// swapchain, so Configure only records the requested state and Present
// releases the frame reference.
type windowSurface struct {
	format gputypes.TextureFormat
	config render.SurfaceConfig

	view          hal.TextureView
	width, height uint32
}

func newWindowSurface(format gputypes.TextureFormat) *windowSurface {
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return &windowSurface{format: format}
}

// setFrame records the view for the current draw. A nil view leaves the
// frame empty and the next acquire reports the surface outdated.
func (s *windowSurface) setFrame(view hal.TextureView, width, height uint32) {
	s.view = view
	s.width, s.height = width, height
}

func (s *windowSurface) PreferredFormat() gputypes.TextureFormat {
	return s.format
}

func (s *windowSurface) Configure(_ hal.Device, config render.SurfaceConfig) error {
	s.config = config
	return nil
}

func (s *windowSurface) AcquireTexture() (*render.SurfaceTexture, error) {
	if s.view == nil || s.width == 0 || s.height == 0 {
		return nil, fmt.Errorf("%w: no swapchain image for this frame", render.ErrSurfaceOutdated)
	}
	return &render.SurfaceTexture{
		View:       s.view,
		Width:      s.width,
		Height:     s.height,
		Suboptimal: s.width != s.config.Width || s.height != s.config.Height,
	}, nil
}

func (s *windowSurface) Present(*render.SurfaceTexture) error {
	s.view = nil
	return nil
}
