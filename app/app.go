// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package app runs a sprite world in a gogpu window.
//
//	a := app.New(app.WithTitle("demo"), app.WithDebugOverlay(true))
//	id := a.Loader().AddImage("ship", img)
//	ecs.SpawnSprite(a.World(), sprite.ForTexture(a.Loader().TextureByID(id)))
//	a.Schedule().Add(func(w donburi.World) { ... })
//	if err := a.Run(); err != nil {
//		log.Fatal(err)
//	}
package app

import (
	"time"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/ecs"
	"github.com/gogpu/sprite/input"
	"github.com/gogpu/sprite/loader"
	"github.com/gogpu/sprite/render"
	"github.com/yohamta/donburi"
)

// App couples a gogpu window to the sprite renderer.
type App struct {
	opts  options
	state *state

	gp      *gogpu.App
	surface *windowSurface
	runner  *runner
	size    render.Size
}

// New creates an App. The window opens when Run is called.
func New(opts ...Option) *App {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &App{
		opts:  o,
		state: newState(),
		size:  render.Size{Width: uint32(o.width), Height: uint32(o.height)},
	}
}

// World returns the entity world drawn every frame.
func (a *App) World() donburi.World { return a.state.world }

// Schedule returns the systems run before every frame.
func (a *App) Schedule() *ecs.Schedule { return a.state.schedule }

// Loader returns the resource loader used to resolve sprite textures.
func (a *App) Loader() *loader.Loader { return a.state.loader }

// Input returns the keyboard and mouse state.
func (a *App) Input() *input.State { return a.state.input }

// Run opens the window and blocks until it closes.
func (a *App) Run() error {
	a.gp = gogpu.NewApp(a.opts.gogpuConfig())
	a.gp.OnDraw(a.draw)
	a.bindEvents(a.gp.EventSource())
	a.gp.OnClose(func() {
		if a.runner != nil {
			a.runner.close()
			a.runner = nil
		}
	})
	return a.gp.Run()
}

func (a *App) handleKey(key gpucontext.Key, mods gpucontext.Modifiers, pressed bool) {
	in := a.state.input
	in.SetModifiers(mods)
	if pressed {
		in.PressKey(key)
	} else {
		in.ReleaseKey(key)
	}
	ecs.PublishKey(a.state.world, ecs.KeyEvent{Key: key, Modifiers: mods, Pressed: pressed})
	if pressed && key == gpucontext.KeyEscape {
		a.Quit()
	}
}

func (a *App) handleButton(b gpucontext.MouseButton, x, y float64, pressed bool) {
	in := a.state.input
	in.MoveCursor(float32(x), float32(y), a.size.Width, a.size.Height)
	btn, ok := mouseButton(b)
	if !ok {
		return
	}
	if pressed {
		in.PressButton(btn)
	} else {
		in.ReleaseButton(btn)
	}
}

// handleResize records a new window size and reconfigures the renderer
// when it is running. Zero sizes (minimized windows) are ignored.
func (a *App) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.size = render.Size{Width: uint32(width), Height: uint32(height)}
	if a.runner != nil {
		a.runner.resize(a.size)
	}
}

// bindEvents routes window events into input, the ECS world and the
// renderer.
func (a *App) bindEvents(src gpucontext.EventSource) {
	in := a.state.input
	src.OnKeyPress(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		a.handleKey(key, mods, true)
	})
	src.OnKeyRelease(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		a.handleKey(key, mods, false)
	})
	src.OnMouseMove(func(x, y float64) {
		in.SetCursorInside(true)
		in.MoveCursor(float32(x), float32(y), a.size.Width, a.size.Height)
	})
	src.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		a.handleButton(b, x, y, true)
	})
	src.OnMouseRelease(func(b gpucontext.MouseButton, x, y float64) {
		a.handleButton(b, x, y, false)
	})
	src.OnResize(a.handleResize)
	src.OnFocus(in.SetFocused)
}

// Quit asks the window to close. Without a window it exits.
func (a *App) Quit() {
	if a.gp != nil {
		a.gp.Quit()
		return
	}
	a.opts.exit(0)
}

func (a *App) draw(dc *gogpu.Context) {
	w, h := dc.Width(), dc.Height()
	if w <= 0 || h <= 0 {
		return
	}
	size := render.Size{Width: uint32(w), Height: uint32(h)}
	a.size = size

	if a.runner == nil && !a.start(a.gp.GPUContextProvider(), size) {
		return
	}

	view, err := halTextureView(dc.SurfaceView())
	if err != nil {
		sprite.Logger().Warn("app: frame without surface view", "error", err)
	}
	sw, sh := dc.SurfaceSize()
	a.surface.setFrame(view, sw, sh)
	a.runner.step(size, time.Now())
}

// start builds the GPU side on the first frame. Without a HAL device
// nothing can be drawn, so that case exits.
func (a *App) start(provider gpucontext.DeviceProvider, size render.Size) bool {
	if provider == nil {
		return false
	}
	device, queue, err := halFromProvider(provider)
	if err != nil {
		sprite.Logger().Error("app: no GPU device", "error", err)
		a.opts.exit(1)
		return false
	}

	format := provider.SurfaceFormat()
	a.surface = newWindowSurface(format)

	r, err := newRunner(device, queue, a.surface, size, a.state, a.opts.exit, a.opts.renderOptions()...)
	if err != nil {
		sprite.Logger().Error("app: renderer setup failed", "error", err)
		a.opts.exit(1)
		return false
	}
	a.runner = r
	sprite.Logger().Info("app: started", "width", size.Width, "height", size.Height, "format", format)
	return true
}
