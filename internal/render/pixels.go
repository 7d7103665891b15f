package render

import (
	"image"
	"image/color"

	"immigration/internal/core"
)

// FillRGBA converts species ids into RGBA pixels using palette. Ids past
// the end of the palette use its last entry; an empty palette clears the
// buffer to transparent black.
func FillRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Image renders snap into a new RGBA image with each cell drawn as a
// scale×scale block.
func Image(snap core.Snapshot, palette []color.RGBA, scale int) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	side := snap.Size * scale
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	if scale == 1 {
		FillRGBA(img.Pix, snap.Cells, palette)
		return img
	}
	row := make([]byte, 4*snap.Size)
	for y := 0; y < snap.Size; y++ {
		FillRGBA(row, snap.Cells[y*snap.Size:(y+1)*snap.Size], palette)
		for x := 0; x < snap.Size; x++ {
			px := row[x*4 : x*4+4]
			for dy := 0; dy < scale; dy++ {
				off := img.PixOffset(x*scale, y*scale+dy)
				for dx := 0; dx < scale; dx++ {
					copy(img.Pix[off+dx*4:off+dx*4+4], px)
				}
			}
		}
	}
	return img
}
