// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/sprite/input"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoHAL is returned when gogpu's device provider does not wrap a HAL
// device and queue.
var ErrNoHAL = errors.New("app: GPU provider exposes no HAL device")

// errNoSurfaceView is returned when a draw callback carries no usable
// swapchain view.
var errNoSurfaceView = errors.New("app: no surface view")

// halFromProvider unwraps the HAL device and queue behind provider.
// gogpu returns a *wgpu.Device from Device(); the HAL objects hang off it.
func halFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, fmt.Errorf("%w: nil provider", ErrNoHAL)
	}
	dev, ok := provider.Device().(*wgpu.Device)
	if !ok || dev == nil {
		return nil, nil, fmt.Errorf("%w: device is %T", ErrNoHAL, provider.Device())
	}
	device, queue := dev.HalDevice(), dev.HalQueue()
	if device == nil || queue == nil {
		return nil, nil, fmt.Errorf("%w: device released or not HAL-backed", ErrNoHAL)
	}
	return device, queue, nil
}

// halTextureView unwraps the swapchain view gogpu hands to OnDraw.
func halTextureView(view *wgpu.TextureView) (hal.TextureView, error) {
	if view == nil {
		return nil, errNoSurfaceView
	}
	hv := view.HalTextureView()
	if hv == nil {
		return nil, fmt.Errorf("%w: view released", errNoSurfaceView)
	}
	return hv, nil
}

// mouseButton maps a platform button onto input's buttons.
func mouseButton(b gpucontext.MouseButton) (input.MouseButton, bool) {
	switch b {
	case gpucontext.MouseButtonLeft:
		return input.MouseButtonLeft, true
	case gpucontext.MouseButtonRight:
		return input.MouseButtonRight, true
	case gpucontext.MouseButtonMiddle:
		return input.MouseButtonMiddle, true
	default:
		return 0, false
	}
}
