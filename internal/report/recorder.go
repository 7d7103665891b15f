package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"immigration/internal/core"
	"immigration/internal/render"

	"github.com/icza/mjpeg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Recorder writes grid snapshots as frames of an MJPEG AVI file.
type Recorder struct {
	aw      mjpeg.AviWriter
	size    int
	scale   int
	palette []color.RGBA
	buf     bytes.Buffer
	frames  int
	closed  bool
}

// NewRecorder creates path and prepares it for size×size grids drawn at scale.
func NewRecorder(path string, size, scale, fps int, palette []color.RGBA) (*Recorder, error) {
	if scale <= 0 {
		scale = 1
	}
	if fps <= 0 {
		fps = 10
	}
	side := int32(size * scale)
	aw, err := mjpeg.New(path, side, side, int32(fps))
	if err != nil {
		return nil, fmt.Errorf("create recording %s: %w", path, err)
	}
	return &Recorder{aw: aw, size: size, scale: scale, palette: palette}, nil
}

// AddFrame encodes snap with a generation label and appends it.
func (r *Recorder) AddFrame(snap core.Snapshot, generation int) error {
	if r.closed {
		return fmt.Errorf("record frame: recording already closed")
	}
	if snap.Size != r.size {
		return fmt.Errorf("record frame: grid size %d, recording expects %d", snap.Size, r.size)
	}
	img := render.Image(snap, r.palette, r.scale)
	drawLabel(img, fmt.Sprintf("gen %d", generation))

	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("encode frame %d: %w", r.frames, err)
	}
	if err := r.aw.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("write frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() int { return r.frames }

// Close finalises the AVI index. Calls after the first are no-ops.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.aw.Close(); err != nil {
		return fmt.Errorf("close recording: %w", err)
	}
	return nil
}

func drawLabel(img *image.RGBA, label string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(4, face.Ascent+2),
	}
	d.DrawString(label)
}
