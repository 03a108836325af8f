// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/gputypes"
	"golang.org/x/image/font/opentype"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := render.New(device, queue, surface, 800, 600,
//	    render.WithClearColor(gputypes.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}),
//	    render.WithPresentMode(render.PresentModeImmediate),
//	    render.WithDebugOverlay(true),
//	)
type Option func(*options)

type options struct {
	clearColor  gputypes.Color
	presentMode PresentMode
	overlay     bool
	overlayFont *opentype.Font
	spirv       bool
}

// DefaultClearColor is opaque blue.
var DefaultClearColor = gputypes.Color{R: 0, G: 0, B: 1, A: 1}

func defaultOptions() options {
	return options{
		clearColor:  DefaultClearColor,
		presentMode: PresentModeFifo,
	}
}

// WithClearColor sets the color the frame is cleared to before drawing.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithPresentMode sets the surface present mode.
func WithPresentMode(m PresentMode) Option {
	return func(o *options) {
		o.presentMode = m
	}
}

// WithDebugOverlay enables the frame-rate overlay. The overlay is drawn
// for every frame whose Time has a non-zero frame count.
func WithDebugOverlay(enabled bool) Option {
	return func(o *options) {
		o.overlay = enabled
	}
}

// WithOverlayFont sets the font used by the debug overlay. Go Mono is
// used when unset.
func WithOverlayFont(f *opentype.Font) Option {
	return func(o *options) {
		o.overlayFont = f
	}
}

// WithSPIRV makes the renderer compile its WGSL shader to SPIR-V with
// naga before handing it to the device.
func WithSPIRV(enabled bool) Option {
	return func(o *options) {
		o.spirv = enabled
	}
}
