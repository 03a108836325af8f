// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/wgpu/hal"
)

// Buffers is the narrow buffer capability a Renderer hands to
// collaborators such as Camera. It never exposes the device itself.
type Buffers interface {
	CreateBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error)
	WriteBuffer(buf hal.Buffer, offset uint64, data []byte) error
	DestroyBuffer(buf hal.Buffer)
}

// Camera projection constants.
const (
	cameraNear = -100
	cameraFar  = 100
)

var (
	cameraEye    = sprite.V3(0, 0, 1)
	cameraTarget = sprite.Vec3{}
	cameraUp     = sprite.V3(0, 1, 0)
)

// Camera is an orthographic camera centered on the world origin with one
// world unit per pixel. Its view-projection matrix lives in a uniform
// buffer bound at group 1.
type Camera struct {
	buffers       Buffers
	width, height float32
	uniform       hal.Buffer
}

// NewCamera allocates the camera uniform and writes the projection for a
// width×height viewport. The uniform starts as the identity and is only
// replaced when both dimensions are non-zero.
func NewCamera(buffers Buffers, width, height uint32) (*Camera, error) {
	identity := sprite.Identity4()
	buf, err := buffers.CreateBuffer("camera_uniform", identity.Bytes(),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create camera uniform: %w", err)
	}
	c := &Camera{buffers: buffers, uniform: buf}
	if err := c.Resize(width, height); err != nil {
		buffers.DestroyBuffer(buf)
		return nil, err
	}
	return c, nil
}

// Resize updates the viewport and writes the new matrix to the GPU at
// once. A zero width or height leaves the camera unchanged.
func (c *Camera) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	c.width = float32(width)
	c.height = float32(height)
	if err := c.buffers.WriteBuffer(c.uniform, 0, c.ViewProjection().Bytes()); err != nil {
		return fmt.Errorf("write camera uniform: %w", err)
	}
	return nil
}

// Size returns the viewport size in pixels.
func (c *Camera) Size() (width, height float32) {
	return c.width, c.height
}

// ViewProjection returns DepthRemap · Ortho · LookAt for the current
// viewport. It does not touch the GPU.
func (c *Camera) ViewProjection() sprite.Mat4 {
	if c.width == 0 || c.height == 0 {
		return sprite.Identity4()
	}
	view := sprite.LookAt(cameraEye, cameraTarget, cameraUp)
	hw, hh := c.width/2, c.height/2
	proj := sprite.Ortho(-hw, hw, -hh, hh, cameraNear, cameraFar)
	return sprite.DepthRemap.Mul(proj).Mul(view)
}

// Buffer returns the uniform buffer holding the view-projection matrix.
func (c *Camera) Buffer() hal.Buffer {
	return c.uniform
}

// Release destroys the uniform buffer.
func (c *Camera) Release() {
	if c.uniform != nil {
		c.buffers.DestroyBuffer(c.uniform)
		c.uniform = nil
	}
}

// CameraBinding is a camera's uniform bound to the sprite pipeline.
type CameraBinding struct {
	camera    *Camera
	bindGroup hal.BindGroup
	device    hal.Device
}

// Camera returns the bound camera.
func (b *CameraBinding) Camera() *Camera {
	return b.camera
}

// Release destroys the bind group. The camera stays usable.
func (b *CameraBinding) Release() {
	if b.bindGroup != nil {
		b.device.DestroyBindGroup(b.bindGroup)
		b.bindGroup = nil
	}
}
