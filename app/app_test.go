// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"fmt"
	"image"
	"testing"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/ecs"
	"github.com/gogpu/sprite/input"
	"github.com/gogpu/sprite/render"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/yohamta/donburi"
)

func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

type flakySurface struct {
	*render.OffscreenSurface
	acquireErr error
	configures []render.SurfaceConfig
}

func (s *flakySurface) Configure(device hal.Device, cfg render.SurfaceConfig) error {
	s.configures = append(s.configures, cfg)
	return s.OffscreenSurface.Configure(device, cfg)
}

func (s *flakySurface) AcquireTexture() (*render.SurfaceTexture, error) {
	if s.acquireErr != nil {
		return nil, s.acquireErr
	}
	return s.OffscreenSurface.AcquireTexture()
}

func newTestRunner(t *testing.T) (*runner, *flakySurface, *[]int) {
	t.Helper()
	device, queue := createNoopDevice(t)
	surface := &flakySurface{OffscreenSurface: render.NewOffscreenSurface()}
	t.Cleanup(surface.Release)
	var codes []int
	r, err := newRunner(device, queue, surface, render.Size{Width: 320, Height: 240},
		newState(), func(code int) { codes = append(codes, code) })
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	t.Cleanup(r.close)
	return r, surface, &codes
}

func TestClassifyFrameError(t *testing.T) {
	tests := []struct {
		err  error
		want frameAction
	}{
		{nil, actionContinue},
		{render.ErrSurfaceLost, actionReconfigure},
		{fmt.Errorf("acquire: %w", render.ErrSurfaceLost), actionReconfigure},
		{render.ErrSurfaceOutOfMemory, actionExit},
		{render.ErrSurfaceOutdated, actionSkip},
		{render.ErrSurfaceTimeout, actionSkip},
		{errors.New("boom"), actionSkip},
	}
	for _, tt := range tests {
		if got := classifyFrameError(tt.err); got != tt.want {
			t.Errorf("classifyFrameError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRunnerDrawsWorld(t *testing.T) {
	r, surface, codes := newTestRunner(t)
	id := r.loader.AddImage("dot", image.NewRGBA(image.Rect(0, 0, 16, 16)))
	ecs.SpawnSprite(r.world, sprite.ForTexture(r.loader.TextureByID(id)))
	ecs.SpawnSprite(r.world, sprite.New(99))

	var ran int
	r.schedule.Add(func(donburi.World) { ran++ })

	start := time.Now()
	r.step(r.size, start.Add(16*time.Millisecond))

	if ran != 1 {
		t.Errorf("schedule ran %d times", ran)
	}
	if surface.Presented() != 1 {
		t.Errorf("presented = %d", surface.Presented())
	}
	stats := r.renderer.Stats()
	if stats.Sprites != 2 || stats.DrawCalls != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if !r.renderer.HasTexture(sprite.DefaultTextureID) {
		t.Error("unknown texture should render with the default")
	}
	if ecs.TimeOf(r.world).Frames != 1 {
		t.Errorf("frames = %d", ecs.TimeOf(r.world).Frames)
	}
	if len(*codes) != 0 {
		t.Errorf("unexpected exit %v", *codes)
	}
}

func TestRunnerResize(t *testing.T) {
	r, surface, _ := newTestRunner(t)
	before := len(surface.configures)

	r.step(render.Size{Width: 640, Height: 480}, time.Now())
	if len(surface.configures) != before+1 {
		t.Fatalf("configures = %d, want %d", len(surface.configures), before+1)
	}
	last := surface.configures[len(surface.configures)-1]
	if last.Width != 640 || last.Height != 480 {
		t.Errorf("config = %+v", last)
	}
	if w, h := r.camera.Size(); w != 640 || h != 480 {
		t.Errorf("camera = %vx%v", w, h)
	}

	r.step(render.Size{Width: 640, Height: 480}, time.Now())
	r.step(render.Size{}, time.Now())
	if len(surface.configures) != before+1 {
		t.Errorf("unchanged or zero size should not reconfigure")
	}
}

func TestRunnerSurfaceLost(t *testing.T) {
	r, surface, codes := newTestRunner(t)
	surface.acquireErr = render.ErrSurfaceLost
	before := len(surface.configures)

	r.step(r.size, time.Now())
	if len(surface.configures) != before+1 {
		t.Errorf("lost surface should be reconfigured once")
	}
	if surface.Presented() != 0 {
		t.Error("frame should be skipped")
	}
	if len(*codes) != 0 {
		t.Errorf("lost surface should not exit: %v", *codes)
	}

	surface.acquireErr = nil
	r.step(r.size, time.Now())
	if surface.Presented() != 1 {
		t.Error("next frame should render after recovery")
	}
}

func TestRunnerOutOfMemoryExits(t *testing.T) {
	r, surface, codes := newTestRunner(t)
	surface.acquireErr = render.ErrSurfaceOutOfMemory

	r.step(r.size, time.Now())
	r.step(r.size, time.Now())
	if len(*codes) != 1 || (*codes)[0] != 1 {
		t.Errorf("exit codes = %v, want [1]", *codes)
	}
}

func TestRunnerOtherErrorSkips(t *testing.T) {
	r, surface, codes := newTestRunner(t)
	surface.acquireErr = render.ErrSurfaceTimeout
	before := len(surface.configures)

	r.step(r.size, time.Now())
	if len(surface.configures) != before || len(*codes) != 0 {
		t.Error("timeout should only skip the frame")
	}
	if ecs.TimeOf(r.world).Frames != 1 {
		t.Error("clock should still advance on a skipped frame")
	}
}

func TestRunnerEndsInputFrame(t *testing.T) {
	r, _, _ := newTestRunner(t)
	r.input.PressKey(gpucontext.KeySpace)
	r.input.ReleaseKey(gpucontext.KeySpace)

	var seen bool
	r.schedule.Add(func(donburi.World) { seen = r.input.JustReleased(gpucontext.KeySpace) })
	r.step(r.size, time.Now())
	if !seen {
		t.Error("systems should observe this frame's releases")
	}
	if r.input.JustReleased(gpucontext.KeySpace) {
		t.Error("releases should clear after the frame")
	}
}

func TestWindowSurface(t *testing.T) {
	s := newWindowSurface(gputypes.TextureFormatUndefined)
	if s.PreferredFormat() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("format = %v", s.PreferredFormat())
	}
	if err := s.Configure(nil, render.SurfaceConfig{Width: 100, Height: 50}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	s.setFrame(nil, 100, 50)
	if _, err := s.AcquireTexture(); !errors.Is(err, render.ErrSurfaceOutdated) {
		t.Errorf("err = %v, want ErrSurfaceOutdated", err)
	}
	if classifyFrameError(render.ErrSurfaceOutdated) != actionSkip {
		t.Error("missing swapchain image should skip the frame")
	}
}

func TestOptions(t *testing.T) {
	var code = -1
	a := New(
		WithTitle("t"),
		WithSize(0, 10),
		WithPresentMode(render.PresentModeMailbox),
		WithDebugOverlay(true),
		WithExit(func(c int) { code = c }),
	)
	if a.opts.title != "t" || a.opts.width != 800 || a.opts.height != 600 {
		t.Errorf("opts = %+v", a.opts)
	}
	if a.opts.presentMode != render.PresentModeMailbox || !a.opts.overlay {
		t.Errorf("opts = %+v", a.opts)
	}
	if len(a.opts.renderOptions()) != 3 {
		t.Error("renderOptions should carry three options")
	}
	a.Quit()
	if code != 0 {
		t.Errorf("Quit without a window should exit 0, got %d", code)
	}
	if a.World() == nil || a.Loader() == nil || a.Input() == nil || a.Schedule() == nil {
		t.Error("accessors should be non-nil")
	}
}

func TestHandleKeyEscape(t *testing.T) {
	code := -1
	a := New(WithExit(func(c int) { code = c }))
	var got []ecs.KeyEvent
	ecs.KeyEvents.Subscribe(a.World(), func(_ donburi.World, ev ecs.KeyEvent) { got = append(got, ev) })

	a.handleKey(gpucontext.KeySpace, 0, true)
	if !a.Input().IsKeyDown(gpucontext.KeySpace) || code != -1 {
		t.Error("space should be held without quitting")
	}
	a.handleKey(gpucontext.KeyEscape, 0, true)
	if code != 0 {
		t.Errorf("escape should quit, code = %d", code)
	}
	a.Schedule().Run(a.World())
	if len(got) != 2 || got[1].Key != gpucontext.KeyEscape {
		t.Errorf("events = %+v", got)
	}
}

// deviceProvider mirrors gogpu's provider: Device returns a *wgpu.Device
// and Queue its *wgpu.Queue.
type deviceProvider struct {
	device gpucontext.Device
	queue  gpucontext.Queue
	format gputypes.TextureFormat
}

func (p deviceProvider) Device() gpucontext.Device { return p.device }
func (p deviceProvider) Queue() gpucontext.Queue { return p.queue }
func (p deviceProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p deviceProvider) Adapter() gpucontext.Adapter { return nil }
func (p deviceProvider) AdapterInfo() gpucontext.AdapterInfo { return gpucontext.AdapterInfo{} }

// newWGPUDevice wraps a noop HAL device the way gogpu's renderer does.
func newWGPUDevice(t *testing.T) (*wgpu.Device, hal.Device) {
	t.Helper()
	halDev, halQueue := createNoopDevice(t)
	dev, err := wgpu.NewDeviceFromHAL(halDev, halQueue, 0, wgpu.DefaultLimits(), "test")
	if err != nil {
		t.Fatalf("NewDeviceFromHAL: %v", err)
	}
	return dev, halDev
}

func newProvider(t *testing.T) (deviceProvider, *wgpu.Device, hal.Device) {
	t.Helper()
	dev, halDev := newWGPUDevice(t)
	return deviceProvider{device: dev, queue: dev.Queue(), format: gputypes.TextureFormatRGBA8Unorm}, dev, halDev
}

func TestHalFromProvider(t *testing.T) {
	p, _, halDev := newProvider(t)
	device, queue, err := halFromProvider(p)
	if err != nil {
		t.Fatalf("halFromProvider: %v", err)
	}
	if device != halDev || queue == nil {
		t.Errorf("device = %v queue = %v", device, queue)
	}

	for _, bad := range []gpucontext.DeviceProvider{
		nil,
		deviceProvider{},
		deviceProvider{device: "not a device"},
		deviceProvider{device: halDev},
	} {
		if _, _, err := halFromProvider(bad); !errors.Is(err, ErrNoHAL) {
			t.Errorf("halFromProvider(%#v) err = %v, want ErrNoHAL", bad, err)
		}
	}
}

func TestStartWithProvider(t *testing.T) {
	code := -1
	a := New(WithExit(func(c int) { code = c }))
	p, _, _ := newProvider(t)

	if !a.start(p, render.Size{Width: 320, Height: 240}) {
		t.Fatalf("start failed, exit code %d", code)
	}
	t.Cleanup(a.runner.close)
	if code != -1 {
		t.Errorf("unexpected exit %d", code)
	}
	if a.surface.PreferredFormat() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want the provider's", a.surface.PreferredFormat())
	}
}

func TestStartWithoutHALExits(t *testing.T) {
	code := -1
	a := New(WithExit(func(c int) { code = c }))
	if a.start(deviceProvider{device: struct{}{}}, render.Size{Width: 10, Height: 10}) {
		t.Fatal("start succeeded without a HAL device")
	}
	if code != 1 || a.runner != nil {
		t.Errorf("code = %d runner = %v, want exit 1 and no runner", code, a.runner)
	}
}

func TestHalTextureView(t *testing.T) {
	if _, err := halTextureView(nil); !errors.Is(err, errNoSurfaceView) {
		t.Errorf("nil view err = %v, want errNoSurfaceView", err)
	}

	dev, halDev := newWGPUDevice(t)
	tex, err := halDev.CreateTexture(&hal.TextureDescriptor{
		Label:         "swapchain",
		Size:          hal.Extent3D{Width: 320, Height: 240, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	hv, err := halDev.CreateTextureView(tex, &hal.TextureViewDescriptor{})
	if err != nil {
		t.Fatalf("CreateTextureView: %v", err)
	}

	got, err := halTextureView(wgpu.NewTextureViewFromHAL(hv, dev))
	if err != nil {
		t.Fatalf("halTextureView: %v", err)
	}
	if got != hv {
		t.Error("halTextureView should return the wrapped HAL view")
	}

	s := newWindowSurface(gputypes.TextureFormatBGRA8Unorm)
	s.setFrame(got, 320, 240)
	frame, err := s.AcquireTexture()
	if err != nil {
		t.Fatalf("AcquireTexture: %v", err)
	}
	if frame.View != hv {
		t.Error("acquired frame should carry the swapchain view")
	}
}

func TestDrawPathWithSwapchainView(t *testing.T) {
	code := -1
	a := New(WithExit(func(c int) { code = c }))
	p, dev, halDev := newProvider(t)
	size := render.Size{Width: 320, Height: 240}
	if !a.start(p, size) {
		t.Fatalf("start failed, exit code %d", code)
	}
	t.Cleanup(a.runner.close)
	ecs.SpawnSprite(a.World(), sprite.New(sprite.DefaultTextureID))

	tex, err := halDev.CreateTexture(&hal.TextureDescriptor{
		Size:          hal.Extent3D{Width: 320, Height: 240, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	hv, err := halDev.CreateTextureView(tex, &hal.TextureViewDescriptor{})
	if err != nil {
		t.Fatalf("CreateTextureView: %v", err)
	}
	view, err := halTextureView(wgpu.NewTextureViewFromHAL(hv, dev))
	if err != nil {
		t.Fatalf("halTextureView: %v", err)
	}

	a.surface.setFrame(view, 320, 240)
	a.runner.step(size, time.Now())
	if stats := a.runner.renderer.Stats(); stats.Sprites != 1 || stats.DrawCalls != 1 {
		t.Errorf("stats = %+v, want one sprite in one draw", stats)
	}
	if code != -1 {
		t.Errorf("unexpected exit %d", code)
	}
}

func TestGogpuConfig(t *testing.T) {
	tests := []struct {
		mode  render.PresentMode
		vsync bool
	}{
		{render.PresentModeFifo, true},
		{render.PresentModeMailbox, true},
		{render.PresentModeImmediate, false},
	}
	for _, tt := range tests {
		a := New(WithTitle("demo"), WithSize(640, 360), WithPresentMode(tt.mode))
		cfg := a.opts.gogpuConfig()
		if cfg.VSync != tt.vsync {
			t.Errorf("%v: VSync = %v, want %v", tt.mode, cfg.VSync, tt.vsync)
		}
		if cfg.Title != "demo" || cfg.Width != 640 || cfg.Height != 360 {
			t.Errorf("%v: config = %q %dx%d", tt.mode, cfg.Title, cfg.Width, cfg.Height)
		}
		if !cfg.ContinuousRender {
			t.Errorf("%v: ContinuousRender should be on", tt.mode)
		}
	}
}

func TestMouseButton(t *testing.T) {
	tests := []struct {
		in   gpucontext.MouseButton
		want input.MouseButton
		ok   bool
	}{
		{gpucontext.MouseButtonLeft, input.MouseButtonLeft, true},
		{gpucontext.MouseButtonRight, input.MouseButtonRight, true},
		{gpucontext.MouseButtonMiddle, input.MouseButtonMiddle, true},
		{gpucontext.MouseButton4, 0, false},
	}
	for _, tt := range tests {
		got, ok := mouseButton(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("mouseButton(%v) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// recordingEvents keeps the callbacks bindEvents registers.
type recordingEvents struct {
	gpucontext.NullEventSource
	keyPress     func(gpucontext.Key, gpucontext.Modifiers)
	mousePress   func(gpucontext.MouseButton, float64, float64)
	mouseRelease func(gpucontext.MouseButton, float64, float64)
	resize       func(int, int)
	focus        func(bool)
}

func (e *recordingEvents) OnKeyPress(fn func(gpucontext.Key, gpucontext.Modifiers)) { e.keyPress = fn }
func (e *recordingEvents) OnMousePress(fn func(gpucontext.MouseButton, float64, float64)) {
	e.mousePress = fn
}
func (e *recordingEvents) OnMouseRelease(fn func(gpucontext.MouseButton, float64, float64)) {
	e.mouseRelease = fn
}
func (e *recordingEvents) OnResize(fn func(int, int)) { e.resize = fn }
func (e *recordingEvents) OnFocus(fn func(bool)) { e.focus = fn }

func TestBindEvents(t *testing.T) {
	a := New(WithExit(func(int) {}))
	src := &recordingEvents{}
	a.bindEvents(src)
	if src.keyPress == nil || src.mousePress == nil || src.mouseRelease == nil || src.resize == nil || src.focus == nil {
		t.Fatal("bindEvents left a callback unregistered")
	}

	src.resize(200, 100)
	src.mousePress(gpucontext.MouseButtonRight, 150, 50)
	in := a.Input()
	if !in.IsButtonDown(input.MouseButtonRight) {
		t.Error("right button should be held")
	}
	if c := in.Cursor(); c.X != 50 || c.Y != 0 {
		t.Errorf("cursor = %+v, want (50, 0)", c)
	}

	src.mouseRelease(gpucontext.MouseButtonRight, 150, 50)
	if in.IsButtonDown(input.MouseButtonRight) || !in.ButtonReleased(input.MouseButtonRight) {
		t.Error("right button should be released this frame")
	}
	src.mousePress(gpucontext.MouseButton5, 0, 0)

	src.focus(true)
	if !in.Focused() {
		t.Error("focus event should reach input")
	}
}

func TestHandleResize(t *testing.T) {
	a := New(WithExit(func(int) {}))
	a.handleResize(300, 200)
	if a.size != (render.Size{Width: 300, Height: 200}) {
		t.Errorf("size = %+v before start", a.size)
	}

	p, _, _ := newProvider(t)
	if !a.start(p, a.size) {
		t.Fatal("start failed")
	}
	t.Cleanup(a.runner.close)

	a.handleResize(640, 480)
	if a.surface.config.Width != 640 || a.surface.config.Height != 480 {
		t.Errorf("surface config = %+v, want 640x480", a.surface.config)
	}
	if w, h := a.runner.camera.Size(); w != 640 || h != 480 {
		t.Errorf("camera = %vx%v, want 640x480", w, h)
	}

	a.handleResize(0, 0)
	a.handleResize(-1, 480)
	if a.size != (render.Size{Width: 640, Height: 480}) || a.surface.config.Width != 640 {
		t.Error("non-positive sizes should be ignored")
	}
}
