//go:build ebiten

package render

import (
	"image/color"

	"immigration/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads species cells into a single RGBA image per frame.
type GridPainter struct {
	size int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a size×size grid.
func NewGridPainter(size int) *GridPainter {
	gp := &GridPainter{size: size, buf: make([]byte, 4*size*size)}
	gp.img = ebiten.NewImage(size, size)
	return gp
}

// Size returns the grid edge length the painter was built for.
func (gp *GridPainter) Size() int { return gp.size }

// Blit draws snap onto dst at the given scale. Snapshots of a different
// size are skipped; the caller rebuilds the painter after a resize.
func (gp *GridPainter) Blit(dst *ebiten.Image, snap core.Snapshot, palette []color.RGBA, scale int) {
	if snap.Size != gp.size || len(snap.Cells) != gp.size*gp.size {
		return
	}
	FillRGBA(gp.buf, snap.Cells, palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
