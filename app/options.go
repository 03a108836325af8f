// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"os"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite/render"
)

// Option configures an App.
type Option func(*options)

type options struct {
	title       string
	width       int
	height      int
	presentMode render.PresentMode
	clearColor  gputypes.Color
	overlay     bool
	exit        func(code int)
}

func defaultOptions() options {
	return options{
		title:       "sprite",
		width:       800,
		height:      600,
		presentMode: render.PresentModeFifo,
		clearColor:  render.DefaultClearColor,
		exit:        os.Exit,
	}
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithSize sets the initial window size in pixels.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

// WithPresentMode selects the swapchain present mode. In a window
// PresentModeImmediate disables vsync; the other modes keep it on.
func WithPresentMode(m render.PresentMode) Option {
	return func(o *options) {
		o.presentMode = m
	}
}

// WithClearColor sets the background colour.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithDebugOverlay draws the frame-time overlay.
func WithDebugOverlay(enabled bool) Option {
	return func(o *options) {
		o.overlay = enabled
	}
}

// WithExit replaces os.Exit for fatal surface errors.
func WithExit(exit func(code int)) Option {
	return func(o *options) {
		if exit != nil {
			o.exit = exit
		}
	}
}

func (o *options) renderOptions() []render.Option {
	return []render.Option{
		render.WithPresentMode(o.presentMode),
		render.WithClearColor(o.clearColor),
		render.WithDebugOverlay(o.overlay),
	}
}

// gogpuConfig builds the window configuration. gogpu owns the swapchain,
// so the present mode reaches it as the vsync switch.
func (o *options) gogpuConfig() gogpu.Config {
	return gogpu.DefaultConfig().
		WithTitle(o.title).
		WithSize(o.width, o.height).
		WithVSync(o.presentMode != render.PresentModeImmediate).
		WithContinuousRender(true)
}
