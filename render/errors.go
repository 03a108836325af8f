// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "errors"

// Surface errors. Render returns these unwrapped or wrapped; callers
// classify them with errors.Is.
var (
	// ErrSurfaceLost means the surface must be reconfigured before the
	// next frame, typically by calling Renderer.Resize(nil).
	ErrSurfaceLost = errors.New("render: surface lost")

	// ErrSurfaceOutOfMemory means the GPU could not allocate the frame.
	// It is not recoverable.
	ErrSurfaceOutOfMemory = errors.New("render: surface out of memory")

	// ErrSurfaceOutdated means the surface no longer matches the window
	// and the frame was skipped.
	ErrSurfaceOutdated = errors.New("render: surface outdated")

	// ErrSurfaceTimeout means no surface texture became available in time.
	ErrSurfaceTimeout = errors.New("render: surface acquire timeout")
)

// Setup errors.
var (
	// ErrNoAdapter is returned by OpenDevice when no GPU adapter exists.
	ErrNoAdapter = errors.New("render: no suitable GPU adapter")

	// ErrNoDevice is returned by OpenDevice when the adapter refuses to open.
	ErrNoDevice = errors.New("render: cannot open GPU device")

	// ErrNilDevice is returned when a nil device or queue is supplied.
	ErrNilDevice = errors.New("render: device and queue are required")

	// ErrNilSurface is returned when New is called without a surface.
	ErrNilSurface = errors.New("render: surface is required")

	// ErrClosed is returned when using a renderer after Close.
	ErrClosed = errors.New("render: renderer closed")

	// ErrNotConfigured is returned when acquiring from an unconfigured surface.
	ErrNotConfigured = errors.New("render: surface not configured")
)

// ErrNoCamera is returned when Render is called without a camera binding.
var ErrNoCamera = errors.New("render: camera binding required")
