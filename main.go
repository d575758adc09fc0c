package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lockon/common"
)

func main() {
	preset := flag.String("preset", "", "lock-on preset from prefabs/lock_on.yaml (empty: the file's default)")
	arena := flag.String("arena", "arena.yaml", "arena spec in prefabs/")
	debug := flag.Bool("debug", false, "draw the lock-on debug overlay (toggle with F3)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	watch := flag.Bool("watch", false, "hot reload prefabs/ when files change")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatal("invalid -log-level", "value", *logLevel, "err", err)
	}
	logger.SetLevel(level)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("lockon")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Options{
		Preset: *preset,
		Arena:  *arena,
		Debug:  *debug,
		Watch:  *watch,
	}, logger)
	if err != nil {
		logger.Fatal("start sandbox", "err", err)
	}

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		logger.Fatal("run sandbox", "err", err)
	}
}
