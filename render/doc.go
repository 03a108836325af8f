// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render draws sprites with gogpu/wgpu.
//
// A [Renderer] owns a HAL device, queue and [Surface]. Each frame it
// groups sprites by texture id, uploads one instance buffer per texture
// and issues one instanced, indexed draw per texture inside a single
// render pass. Per-texture GPU resources (texture, bind group, quad
// vertex and index buffers) are built the first time a texture is drawn
// and cached by id.
//
// # Frame errors
//
// Render reports surface failures with [ErrSurfaceLost] (call
// Resize(nil) and skip the frame), [ErrSurfaceOutOfMemory] (fatal) or
// another error (log and skip).
//
// # Headless use
//
//	dev, err := render.OpenDevice(render.DeviceOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	surface := render.NewOffscreenSurface()
//	r, err := render.New(dev.Device, dev.Queue, surface, 800, 600)
//	...
//	cam, _ := render.NewCamera(r.Buffers(), 800, 600)
//	binding, _ := r.BindCamera(cam)
//	err = r.Render(stage.All(), loader, binding, nil)
//	img, err := surface.Snapshot(dev.Queue)
package render
