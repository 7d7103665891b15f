//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"immigration/internal/app"
	"immigration/internal/logger"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	opts, err := cfg.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	opts.Logger = logger.New("immigration")

	ctrl := app.NewController(opts)
	game := app.New(ctrl, cfg.Viewport)

	ebiten.SetWindowTitle("Game of Immigration")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Viewport+app.HUDWidth, cfg.Viewport)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
