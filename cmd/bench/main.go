package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/milk9111/spritelayer/common"
	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/ecs/component"
	"github.com/milk9111/spritelayer/ecs/entity"
	"github.com/milk9111/spritelayer/ecs/system"
	"github.com/milk9111/spritelayer/internal/parallel"
	"github.com/milk9111/spritelayer/spritelayer"
)

func main() {
	countsFlag := flag.String("counts", "1000,2000,4000,8000,16000", "comma separated sprite counts")
	frames := flag.Int("frames", 200, "frames per run")
	moving := flag.Float64("moving", 0.1, "fraction of sprites moved each frame")
	poolKind := flag.String("pool", "worker", "sort pool: worker, group or none")
	workers := flag.Int("workers", 0, "pool size (0 = GOMAXPROCS)")
	threshold := flag.Int("threshold", spritelayer.DefaultParallelThreshold, "parallel sort threshold")
	debug := flag.Bool("debug", false, "log depth engine diagnostics")
	flag.Parse()

	if *debug {
		spritelayer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	counts, err := parseCounts(*countsFlag)
	if err != nil {
		log.Fatal(err)
	}

	var pool spritelayer.Pool
	switch *poolKind {
	case "worker":
		wp := parallel.NewWorkerPool(*workers)
		defer wp.Close()
		pool = wp
	case "group":
		pool = parallel.NewGroupPool(*workers)
	case "none":
	default:
		log.Fatalf("unknown pool %q", *poolKind)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "sprites\tmode\tms/frame\t")
	for _, n := range counts {
		for _, mode := range []struct {
			name string
			opts spritelayer.Options
		}{
			{"y-sorted", spritelayer.Options{YSort: true, ParallelThreshold: *threshold}},
			{"buckets", spritelayer.Options{YSort: true, Strategy: spritelayer.StrategyBuckets, ParallelThreshold: *threshold}},
			{"unsorted", spritelayer.Options{ParallelThreshold: *threshold}},
		} {
			per := run(n, *frames, *moving, mode.opts, pool)
			fmt.Fprintf(tw, "%d\t%s\t%.3f\t\n", n, mode.name, common.FrameMillis(per.Seconds()))
		}
	}
	_ = tw.Flush()
}

func parseCounts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("bad count %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// run times the propagate and sprite layer stages over a flat scene where a
// share of the sprites move every frame.
func run(n, frames int, moving float64, opts spritelayer.Options, pool spritelayer.Pool) time.Duration {
	rng := rand.New(rand.NewPCG(uint64(n), 7))
	w := ecs.NewWorld()
	layers := []component.RenderLayer{
		{Index: 0, Name: "bottom", Depth: 0},
		{Index: 1, Name: "middle", Depth: 1},
		{Index: 2, Name: "top", Depth: 2},
	}
	ents := make([]ecs.Entity, 0, n)
	for i := 0; i < n; i++ {
		layer := layers[i%len(layers)]
		e, err := entity.NewSquare(w, entity.SquareSpec{
			Layer: &layer,
			X:     rng.Float64() * common.BaseWidth,
			Y:     rng.Float64() * common.BaseHeight,
			Size:  8,
		})
		if err != nil {
			log.Fatal(err)
		}
		ents = append(ents, e)
	}

	layerSystem := system.NewSpriteLayerSystem(component.RenderLayerComponent.Kind(), &opts)
	if pool != nil {
		layerSystem.SetPool(pool)
	}
	s := ecs.NewScheduler()
	s.AddToStage(ecs.StageTransformPropagate, system.NewTransformPropagateSystem())
	s.AddToStage(ecs.StageSpriteLayer, layerSystem)
	s.Update(w)

	step := int(float64(n) * moving)
	start := time.Now()
	for f := 0; f < frames; f++ {
		for i := 0; i < step; i++ {
			e := ents[rng.IntN(n)]
			t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			t.Y = rng.Float64() * common.BaseHeight
			_ = ecs.Add(w, e, component.TransformComponent.Kind(), t)
		}
		s.Update(w)
	}
	return time.Since(start) / time.Duration(max(frames, 1))
}
