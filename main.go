package main

import (
	"flag"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/nocturne/logger"
)

func main() {
	debug := flag.Bool("debug", false, "draw the navigation grid, routes and physics shapes")
	levelName := flag.String("level", "town", "level name in levels/ (basename, .json optional)")
	seed := flag.Int64("seed", 0, "random seed for wandering and spawning (0 uses the clock)")
	rulesPath := flag.String("rules", "", "tengo kill-rule script (defaults to the embedded rule)")
	watch := flag.Bool("watch", false, "reload prefabs/tuning.yaml and the kill rule when they change on disk")
	flag.Parse()

	logger.Init()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	game, err := NewGame(Options{
		Level: *levelName,
		Debug: *debug,
		Seed:  *seed,
		Rules: *rulesPath,
		Watch: *watch,
	})
	if err != nil {
		logger.Log.WithError(err).Fatal("start game")
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("nocturne")
	ebiten.SetTPS(ticksPerSecond)

	if err := ebiten.RunGame(game); err != nil {
		logger.Log.WithError(err).Fatal("run game")
	}
}
