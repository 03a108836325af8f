// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command spritedemo draws a field of spinning sprites, either in a
// window or headless into a PNG file.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/app"
	"github.com/gogpu/sprite/ecs"
	"github.com/gogpu/sprite/loader"
	"github.com/gogpu/sprite/render"
)

func main() {
	var (
		width    = flag.Int("width", 800, "window width")
		height   = flag.Int("height", 600, "window height")
		present  = flag.String("present", "fifo", "present mode: fifo, immediate or mailbox")
		overlay  = flag.Bool("overlay", false, "draw the frame-time overlay")
		headless = flag.Bool("headless", false, "render offscreen and write a PNG")
		frames   = flag.Int("frames", 60, "frames to simulate in headless mode")
		output   = flag.String("out", "sprites.png", "headless output file")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		sprite.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		sprite.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	}

	mode, err := render.ParsePresentMode(*present)
	if err != nil {
		log.Fatal(err)
	}

	if *headless {
		if err := runHeadless(uint32(*width), uint32(*height), *frames, *output, *overlay); err != nil {
			log.Fatal(err)
		}
		return
	}

	a := app.New(
		app.WithTitle("spritedemo"),
		app.WithSize(*width, *height),
		app.WithPresentMode(mode),
		app.WithDebugOverlay(*overlay),
	)
	populate(a.World(), a.Loader())
	a.Schedule().Add(spin)
	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}

func runHeadless(width, height uint32, frames int, output string, overlay bool) error {
	dev, err := render.OpenDevice(render.DeviceOptions{})
	if err != nil {
		return err
	}
	defer dev.Close()
	log.Printf("Adapter: %s", dev.Adapter)

	surface := render.NewOffscreenSurface()
	defer surface.Release()

	r, err := render.New(dev.Device, dev.Queue, surface, width, height, render.WithDebugOverlay(overlay))
	if err != nil {
		return err
	}
	defer r.Close()

	cam, err := render.NewCamera(r.Buffers(), width, height)
	if err != nil {
		return err
	}
	defer cam.Release()
	binding, err := r.BindCamera(cam)
	if err != nil {
		return err
	}
	defer binding.Release()

	world := ecs.NewWorld()
	ld := loader.New()
	populate(world, ld)
	schedule := ecs.NewSchedule(spin)

	start := time.Now()
	clock := sprite.NewClock(start)
	for i := range frames {
		schedule.Run(world)
		if err := r.Render(ecs.Sprites(world), ld, binding, ecs.TimeOf(world)); err != nil {
			return err
		}
		ecs.SetTime(world, clock.Tick(start.Add(time.Duration(i+1)*16*time.Millisecond)))
	}

	img, err := surface.Snapshot(dev.Queue)
	if err != nil {
		return err
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Frame saved to %s (%dx%d, %d draws)", output, width, height, r.Stats().DrawCalls)
	return nil
}
