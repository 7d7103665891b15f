//go:build ebiten

package app

import (
	"image/color"

	"immigration/internal/render"
	"immigration/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUDWidth is the width of the panel drawn right of the grid.
const HUDWidth = 240

// gridLineMaxSize and gridLineMinScale gate drawing cell outlines.
const (
	gridLineMaxSize  = 70
	gridLineMinScale = 8
)

var gridLineColor = color.RGBA{R: 40, G: 40, B: 52, A: 255}

// Game adapts a Controller to the ebiten.Game interface. Each Update is one
// frame signal for the simulation.
type Game struct {
	ctrl     *Controller
	painter  *render.GridPainter
	hud      *ui.HUD
	viewport int
	scale    int
}

// New constructs a Game drawing the grid into a square viewport of the given
// edge in pixels.
func New(ctrl *Controller, viewport int) *Game {
	g := &Game{ctrl: ctrl, viewport: viewport, hud: ui.NewHUD(ctrl, HUDWidth)}
	g.rebuild()
	return g
}

func (g *Game) rebuild() {
	size := g.ctrl.Grid().Size()
	g.scale = FitScale(g.viewport, size)
	g.painter = render.NewGridPainter(size)
}

// Update handles input and pumps one frame into the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.ctrl.Destroy()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.TogglePlay()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ctrl.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Reseed()
	}
	for i, key := range []ebiten.Key{
		ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
		ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
		ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	} {
		if inpututil.IsKeyJustPressed(key) {
			g.ctrl.SelectSpecies(i + 1)
		}
	}

	g.handlePointer()
	g.hud.Update(g.viewport)

	if g.painter.Size() != g.ctrl.Grid().Size() {
		g.rebuild()
	}
	g.ctrl.Frames().Pump()
	return nil
}

func (g *Game) handlePointer() {
	size := g.ctrl.Grid().Size()
	paint, erase := PaintIntent(
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		ebiten.IsKeyPressed(ebiten.KeyShift),
	)
	if paint {
		mx, my := ebiten.CursorPosition()
		if x, y, ok := CellAt(mx, my, g.scale, size); ok {
			g.ctrl.Paint(x, y, erase)
		}
	}
	// Every held touch paints, so dragging a finger keeps drawing.
	for _, id := range ebiten.AppendTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		if x, y, ok := CellAt(tx, ty, g.scale, size); ok {
			g.ctrl.Paint(x, y, false)
		}
	}
}

// Draw renders the grid and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	g.painter.Blit(screen, g.ctrl.Grid().Snapshot(), g.ctrl.Palette(), g.scale)
	g.drawGridLines(screen)
	g.hud.Draw(screen, g.viewport, g.viewport)
}

func (g *Game) drawGridLines(screen *ebiten.Image) {
	size := g.ctrl.Grid().Size()
	if size > gridLineMaxSize || g.scale < gridLineMinScale {
		return
	}
	extent := float32(size * g.scale)
	for i := 0; i <= size; i++ {
		pos := float32(i * g.scale)
		vector.StrokeLine(screen, pos, 0, pos, extent, 1, gridLineColor, false)
		vector.StrokeLine(screen, 0, pos, extent, pos, 1, gridLineColor, false)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewport + HUDWidth, g.viewport
}
