// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/ecs"
	"github.com/gogpu/sprite/input"
	"github.com/gogpu/sprite/loader"
	"github.com/gogpu/sprite/render"
	"github.com/gogpu/wgpu/hal"
	"github.com/yohamta/donburi"
)

// frameAction is what the loop does after a Render result.
type frameAction uint8

const (
	actionContinue frameAction = iota
	actionReconfigure
	actionExit
	actionSkip
)

// classifyFrameError maps a Render error to the loop's response. A lost
// surface is reconfigured and the frame skipped; running out of memory
// is fatal; anything else skips the frame.
func classifyFrameError(err error) frameAction {
	switch {
	case err == nil:
		return actionContinue
	case errors.Is(err, render.ErrSurfaceLost):
		return actionReconfigure
	case errors.Is(err, render.ErrSurfaceOutOfMemory):
		return actionExit
	default:
		return actionSkip
	}
}

// runner owns the GPU state and advances one frame per step. It does
// not depend on the window system.
type runner struct {
	world    donburi.World
	schedule *ecs.Schedule
	loader   *loader.Loader
	input    *input.State
	clock    *sprite.Clock
	exit     func(int)

	renderer *render.Renderer
	camera   *render.Camera
	binding  *render.CameraBinding
	size     render.Size
	exited   bool
}

func newRunner(device hal.Device, queue hal.Queue, surface render.Surface, size render.Size,
	st *state, exit func(int), opts ...render.Option) (*runner, error) {
	r, err := render.New(device, queue, surface, size.Width, size.Height, opts...)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	cam, err := render.NewCamera(r.Buffers(), size.Width, size.Height)
	if err != nil {
		r.Close()
		return nil, err
	}
	binding, err := r.BindCamera(cam)
	if err != nil {
		cam.Release()
		r.Close()
		return nil, err
	}
	return &runner{
		world:    st.world,
		schedule: st.schedule,
		loader:   st.loader,
		input:    st.input,
		clock:    sprite.NewClock(time.Now()),
		exit:     exit,
		renderer: r,
		camera:   cam,
		binding:  binding,
		size:     size,
	}, nil
}

// step runs one frame for a surface of the given size.
func (r *runner) step(size render.Size, now time.Time) {
	if r.exited {
		return
	}
	r.resize(size)

	r.schedule.Run(r.world)

	err := r.renderer.Render(ecs.Sprites(r.world), r.loader, r.binding, ecs.TimeOf(r.world))
	switch classifyFrameError(err) {
	case actionReconfigure:
		sprite.Logger().Warn("app: surface lost, reconfiguring", "error", err)
		if rerr := r.renderer.Resize(nil); rerr != nil {
			sprite.Logger().Warn("app: reconfigure failed", "error", rerr)
		}
	case actionExit:
		sprite.Logger().Error("app: out of memory", "error", err)
		r.exited = true
		r.exit(1)
		return
	case actionSkip:
		sprite.Logger().Warn("app: frame skipped", "error", err)
	}

	ecs.SetTime(r.world, r.clock.Tick(now))
	r.input.EndFrame()
}

// resize reconfigures the camera and surface when size differs from the
// current one. Zero sizes are ignored.
func (r *runner) resize(size render.Size) {
	if size == r.size || size.Width == 0 || size.Height == 0 {
		return
	}
	r.size = size
	if err := r.camera.Resize(size.Width, size.Height); err != nil {
		sprite.Logger().Warn("app: camera resize failed", "error", err)
	}
	if err := r.renderer.Resize(&size); err != nil {
		sprite.Logger().Warn("app: resize failed", "error", err)
	}
}

func (r *runner) close() {
	r.binding.Release()
	r.camera.Release()
	r.renderer.Close()
}

// state is the CPU side shared by the window and the runner.
type state struct {
	world    donburi.World
	schedule *ecs.Schedule
	loader   *loader.Loader
	input    *input.State
}

func newState() *state {
	return &state{
		world:    ecs.NewWorld(),
		schedule: ecs.NewSchedule(),
		loader:   loader.New(),
		input:    input.New(),
	}
}
