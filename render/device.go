// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan backend
)

// DeviceOptions controls adapter selection in OpenDevice.
type DeviceOptions struct {
	// Backends lists the backends to try, in order. Empty means Vulkan.
	Backends []gputypes.Backend
	// PreferIntegrated picks an integrated GPU over a discrete one.
	PreferIntegrated bool
}

// Device is a standalone GPU device for rendering without a window.
type Device struct {
	Device  hal.Device
	Queue   hal.Queue
	Adapter string

	instance hal.Instance
}

// OpenDevice negotiates an adapter and opens a logical device and queue.
// It blocks until the device is ready. ErrNoAdapter and ErrNoDevice are
// startup failures the caller is not expected to recover from.
func OpenDevice(opts DeviceOptions) (*Device, error) {
	backends := opts.Backends
	if len(backends) == 0 {
		backends = []gputypes.Backend{gputypes.BackendVulkan}
	}

	var lastErr error
	for _, b := range backends {
		dev, err := openOn(b, opts.PreferIntegrated)
		if err == nil {
			return dev, nil
		}
		sprite.Logger().Warn("render: backend unavailable", "backend", b, "error", err)
		lastErr = err
	}
	return nil, lastErr
}

func openOn(b gputypes.Backend, preferIntegrated bool) (*Device, error) {
	backend, ok := hal.GetBackend(b)
	if !ok {
		return nil, fmt.Errorf("%w: backend %v not registered", ErrNoAdapter, b)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", ErrNoAdapter, err)
	}

	adapters := instance.EnumerateAdapters(nil)
	selected := selectAdapter(adapters, preferIntegrated)
	if selected == nil {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: %w", ErrNoDevice, err)
	}
	sprite.Logger().Info("render: GPU device opened", "adapter", selected.Info.Name, "backend", b)
	return &Device{
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		Adapter:  selected.Info.Name,
		instance: instance,
	}, nil
}

// selectAdapter prefers a discrete GPU, then an integrated one, then
// anything. preferIntegrated swaps the first two.
func selectAdapter(adapters []hal.ExposedAdapter, preferIntegrated bool) *hal.ExposedAdapter {
	if len(adapters) == 0 {
		return nil
	}
	order := []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU}
	if preferIntegrated {
		order[0], order[1] = order[1], order[0]
	}
	for _, want := range order {
		for i := range adapters {
			if adapters[i].Info.DeviceType == want {
				return &adapters[i]
			}
		}
	}
	return &adapters[0]
}

// Close destroys the device and its instance.
func (d *Device) Close() {
	if d.Device != nil {
		d.Device.Destroy()
		d.Device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
