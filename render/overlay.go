// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Overlay layout, in overlay-canvas pixels.
const (
	overlayWidth    = 256
	overlayHeight   = 96
	overlayFontSize = 20
)

// overlayLine is one line of the debug overlay.
type overlayLine struct {
	x, y int
	text string
}

// overlayLines formats the frame statistics shown by the overlay.
func overlayLines(t sprite.Time) []overlayLine {
	return []overlayLine{
		{20, 10, fmt.Sprintf("%.0f avg fps", t.AverageFPS())},
		{20, 40, fmt.Sprintf("%.0f fps", t.FPS())},
		{20, 55, fmt.Sprintf("%.2f ms", t.FrameTimeMillis())},
	}
}

// debugOverlay rasterizes frame statistics on the CPU and draws them as
// one extra textured quad in the frame's render pass.
type debugOverlay struct {
	face   font.Face
	canvas *image.RGBA
	entry  *textureEntry
}

func newDebugOverlay(r *Renderer, f *opentype.Font) (*debugOverlay, error) {
	if f == nil {
		parsed, err := opentype.Parse(gomono.TTF)
		if err != nil {
			return nil, fmt.Errorf("parse overlay font: %w", err)
		}
		f = parsed
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    overlayFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create overlay face: %w", err)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, overlayWidth, overlayHeight))
	entry, err := r.uploadTexture(sprite.NewTextureFromImage(0, "debug_overlay", canvas))
	if err != nil {
		_ = face.Close()
		return nil, err
	}
	return &debugOverlay{face: face, canvas: canvas, entry: entry}, nil
}

// rasterize redraws the overlay canvas for t.
func (o *debugOverlay) rasterize(t sprite.Time) {
	clear(o.canvas.Pix)
	ascent := o.face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  o.canvas,
		Src:  image.NewUniform(color.White),
		Face: o.face,
	}
	for _, line := range overlayLines(t) {
		d.Dot = fixed.Point26_6{X: fixed.I(line.x), Y: fixed.I(line.y) + ascent}
		d.DrawString(line.text)
	}
}

// prepare rasterizes and uploads the overlay for this frame and returns
// its instance buffer, placing the canvas at the viewport's top-left.
func (o *debugOverlay) prepare(r *Renderer, t sprite.Time, camera *Camera) (hal.Buffer, error) {
	o.rasterize(t)
	extent := hal.Extent3D{Width: overlayWidth, Height: overlayHeight, DepthOrArrayLayers: 1}
	if err := r.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: o.entry.texture, MipLevel: 0},
		o.canvas.Pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(o.canvas.Stride), RowsPerImage: overlayHeight},
		&extent,
	); err != nil {
		return nil, fmt.Errorf("write debug overlay: %w", err)
	}

	w, h := camera.Size()
	m := sprite.Translate4(sprite.V3(-w/2, h/2, 0))
	return r.CreateBuffer("debug_overlay_instance", m.Bytes(),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
}

func (o *debugOverlay) draw(rp hal.RenderPassEncoder, instances hal.Buffer, camera hal.BindGroup) {
	recordBatch(rp, o.entry, instances, 1, camera)
}

func (o *debugOverlay) destroy(device hal.Device) {
	if o.entry != nil {
		o.entry.destroy(device)
		o.entry = nil
	}
	if o.face != nil {
		_ = o.face.Close()
		o.face = nil
	}
}
