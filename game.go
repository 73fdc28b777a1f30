package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spritelayer/common"
	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/ecs/component"
	"github.com/milk9111/spritelayer/ecs/entity"
	"github.com/milk9111/spritelayer/ecs/system"
	"github.com/milk9111/spritelayer/internal/parallel"
	"github.com/milk9111/spritelayer/prefabs"
	"github.com/milk9111/spritelayer/spritelayer"
	"golang.design/x/clipboard"
)

type Config struct {
	OptionsFile string
	LayersFile  string
	SceneFile   string
	Workers     int
	Watch       bool
	Debug       bool
}

type Game struct {
	frames int
	debug  bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	options   spritelayer.Options

	input  *system.InputSystem
	layers *system.SpriteLayerSystem[component.RenderLayer]
	render *system.RenderSystem
	ui     *ebitenui.UI
	labels *optionLabels

	pool      *parallel.WorkerPool
	watcher   *prefabs.Watcher
	clipboard bool
	report    ecs.DepthReport
}

func NewGame(cfg Config) (*Game, error) {
	opts, err := prefabs.LoadOptions(cfg.OptionsFile)
	if err != nil {
		return nil, err
	}
	table, err := prefabs.LoadLayerTable(cfg.LayersFile)
	if err != nil {
		return nil, err
	}
	scene, err := prefabs.LoadScene(cfg.SceneFile)
	if err != nil {
		return nil, err
	}

	g := &Game{debug: cfg.Debug, options: opts, world: ecs.NewWorld()}
	g.world.SetPhysicsWorld(ecs.NewPhysicsWorld(scene.Width, scene.Height))
	if _, err := entity.BuildScene(g.world, scene, table); err != nil {
		return nil, err
	}

	g.pool = parallel.NewWorkerPool(cfg.Workers)
	strip := system.NewLayerStripSystem()
	g.input = system.NewInputSystem(&g.options, strip)
	g.layers = system.NewSpriteLayerSystem(component.RenderLayerComponent.Kind(), &g.options)
	g.layers.SetPool(g.pool)
	g.render = system.NewRenderSystem()

	g.scheduler = ecs.NewScheduler(g.input, strip)
	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
			g.scheduler.Add(system.NewReloadSystem(w.Events, &g.options, cfg.OptionsFile, cfg.LayersFile))
		}
	}
	g.scheduler.AddToStage(ecs.StagePostUpdate, system.NewPhysicsSystem())
	g.scheduler.AddToStage(ecs.StageTransformPropagate, system.NewTransformPropagateSystem())
	g.scheduler.AddToStage(ecs.StageSpriteLayer, g.layers)
	g.scheduler.AddToStage(ecs.StageExtract, g.render)
	g.scheduler.AddToStage(ecs.StageExtract, observer(g.observe))

	g.ui, g.labels = NewOptionsUI(g)

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboard = true
	}
	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	g.ui.Update()
	g.scheduler.Update(g.world)
	g.labels.refresh(g)

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}
	return nil
}

// observe runs in the extract stage, before the frame's events are flushed.
func (g *Game) observe(w *ecs.World) {
	for _, ev := range w.Events().Peek() {
		if r, ok := ev.Data.(ecs.DepthReport); ok && ev.Type == ecs.EventDepthReport {
			g.report = r
		}
	}
}

func (g *Game) copyReport() {
	if !g.clipboard {
		log.Printf("clipboard unavailable; depth report not copied")
		return
	}
	text := system.FormatDrawList(g.world, g.render.Items())
	clipboard.Write(clipboard.FmtText, []byte(text))
	log.Printf("copied depths of %d sprites", len(g.render.Items()))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)
	g.ui.Draw(screen)

	msg := fmt.Sprintf("FPS: %.1f  y-sort: %v  strategy: %s", ebiten.ActualFPS(), g.options.YSort, g.options.Strategy)
	if g.debug {
		msg += fmt.Sprintf("\nresolved %d  written %d  cleared %d  skipped %d  dangling %d  cycles %d",
			g.report.Resolved, g.report.Written, g.report.Cleared, g.report.Skipped, g.report.Dangling, g.report.Cycles)
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.pool.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

type observer func(w *ecs.World)

func (o observer) Update(w *ecs.World) { o(w) }
