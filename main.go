package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spritelayer/common"
	"github.com/milk9111/spritelayer/spritelayer"
)

func main() {
	debug := flag.Bool("debug", false, "log depth engine diagnostics and show frame stats")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	optionsFile := flag.String("options", "options.yaml", "depth options file in prefabs/")
	layersFile := flag.String("layers", "layers.yaml", "layer table file in prefabs/")
	sceneFile := flag.String("scene", "scene.yaml", "scene file in prefabs/")
	workers := flag.Int("workers", 0, "sort workers (0 = GOMAXPROCS)")
	watch := flag.Bool("watch", true, "reload prefabs/ files when they change")
	flag.Parse()

	if *debug {
		spritelayer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("spritelayer")

	game, err := NewGame(Config{
		OptionsFile: *optionsFile,
		LayersFile:  *layersFile,
		SceneFile:   *sceneFile,
		Workers:     *workers,
		Watch:       *watch,
		Debug:       *debug,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
