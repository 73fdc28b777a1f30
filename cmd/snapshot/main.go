package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/ecs/component"
	"github.com/milk9111/spritelayer/ecs/entity"
	"github.com/milk9111/spritelayer/ecs/system"
	"github.com/milk9111/spritelayer/prefabs"
	"github.com/milk9111/spritelayer/spritelayer"
)

func main() {
	out := flag.String("o", "snapshot.png", "output PNG path")
	frames := flag.Int("frames", 120, "frames to simulate before the snapshot")
	dir := flag.String("prefabs", "prefabs", "directory checked before the embedded prefabs")
	optionsFile := flag.String("options", "options.yaml", "depth options file")
	layersFile := flag.String("layers", "layers.yaml", "layer table file")
	sceneFile := flag.String("scene", "scene.yaml", "scene file")
	strip := flag.Bool("strip", false, "strip layers on the last frame")
	report := flag.Bool("report", false, "print the depth of every sprite in draw order")
	debug := flag.Bool("debug", false, "log depth engine diagnostics")
	flag.Parse()

	if *debug {
		spritelayer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	prefabs.Dir = *dir

	opts, err := prefabs.LoadOptions(*optionsFile)
	if err != nil {
		log.Fatal(err)
	}
	table, err := prefabs.LoadLayerTable(*layersFile)
	if err != nil {
		log.Fatal(err)
	}
	scene, err := prefabs.LoadScene(*sceneFile)
	if err != nil {
		log.Fatal(err)
	}

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(scene.Width, scene.Height))
	if _, err := entity.BuildScene(w, scene, table); err != nil {
		log.Fatal(err)
	}

	stripper := system.NewLayerStripSystem()
	layers := system.NewSpriteLayerSystem(component.RenderLayerComponent.Kind(), &opts)
	snap := system.NewSnapshotSystem(int(scene.Width), int(scene.Height), true)

	s := ecs.NewScheduler(stripper)
	s.AddToStage(ecs.StagePostUpdate, system.NewPhysicsSystem())
	s.AddToStage(ecs.StageTransformPropagate, system.NewTransformPropagateSystem())
	s.AddToStage(ecs.StageSpriteLayer, layers)
	s.AddToStage(ecs.StageExtract, snap)

	for f := 0; f < *frames; f++ {
		if f == *frames-1 {
			stripper.SetStripped(*strip)
		}
		s.Update(w)
	}

	file, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	if err := png.Encode(file, snap.Render()); err != nil {
		_ = file.Close()
		log.Fatal(err)
	}
	if err := file.Close(); err != nil {
		log.Fatal(err)
	}

	stats := layers.Stats()
	log.Printf("wrote %s: resolved %d written %d cleared %d", *out, stats.Resolved, stats.Written, stats.Cleared)
	if *report {
		fmt.Print(system.FormatDrawList(w, snap.Items()))
	}
}
