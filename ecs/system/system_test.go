package system

import (
	"math"
	"testing"

	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/ecs/component"
	"github.com/milk9111/spritelayer/spritelayer"
)

var (
	layerBottom = component.RenderLayer{Index: 0, Name: "bottom", Depth: 0}
	layerMiddle = component.RenderLayer{Index: 1, Name: "middle", Depth: 1}
	layerTop    = component.RenderLayer{Index: 2, Name: "top", Depth: 2}
)

type harness struct {
	w         *ecs.World
	options   spritelayer.Options
	propagate *TransformPropagateSystem
	layers    *SpriteLayerSystem[component.RenderLayer]
	scheduler *ecs.Scheduler
}

func newHarness() *harness {
	h := &harness{w: ecs.NewWorld(), options: spritelayer.DefaultOptions()}
	h.propagate = NewTransformPropagateSystem()
	h.layers = NewSpriteLayerSystem(component.RenderLayerComponent.Kind(), &h.options)
	h.scheduler = ecs.NewScheduler()
	h.scheduler.AddToStage(ecs.StageTransformPropagate, h.propagate)
	h.scheduler.AddToStage(ecs.StageSpriteLayer, h.layers)
	return h
}

func (h *harness) spawn(t *testing.T, x, y float64, layer *component.RenderLayer) ecs.Entity {
	t.Helper()
	e := h.w.CreateEntity()
	if err := ecs.Add(h.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		t.Fatal(err)
	}
	if layer != nil {
		l := *layer
		if err := ecs.Add(h.w, e, component.RenderLayerComponent.Kind(), &l); err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func (h *harness) child(t *testing.T, parent ecs.Entity, x, y float64) ecs.Entity {
	t.Helper()
	e := h.spawn(t, x, y, nil)
	if err := h.w.SetParent(e, parent); err != nil {
		t.Fatal(err)
	}
	return e
}

func (h *harness) z(t *testing.T, e ecs.Entity) float32 {
	t.Helper()
	g, ok := ecs.Get(h.w, e, component.GlobalTransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no global transform", e)
	}
	return g.Z
}

func TestTransformPropagation(t *testing.T) {
	h := newHarness()
	root := h.spawn(t, 10, 20, nil)
	tr, _ := ecs.Get(h.w, root, component.TransformComponent.Kind())
	tr.ScaleX, tr.ScaleY, tr.Rotation = 2, 2, math.Pi/2
	_ = ecs.Add(h.w, root, component.TransformComponent.Kind(), tr)
	kid := h.child(t, root, 1, 0)

	h.scheduler.Update(h.w)

	g, ok := ecs.Get(h.w, kid, component.GlobalTransformComponent.Kind())
	if !ok {
		t.Fatalf("child should get a global transform")
	}
	if math.Abs(g.X-10) > 1e-9 || math.Abs(g.Y-22) > 1e-9 {
		t.Fatalf("expected child at (10, 22), got (%v, %v)", g.X, g.Y)
	}
	if g.ScaleX != 2 || g.Rotation != math.Pi/2 {
		t.Fatalf("scale and rotation should compose, got %+v", g)
	}
}

func TestTransformPropagationThroughBareNode(t *testing.T) {
	h := newHarness()
	root := h.spawn(t, 5, 5, nil)
	bare := h.w.CreateEntity()
	if err := h.w.SetParent(bare, root); err != nil {
		t.Fatal(err)
	}
	kid := h.child(t, bare, 1, 1)

	h.scheduler.Update(h.w)

	if ecs.Has(h.w, bare, component.GlobalTransformComponent.Kind()) {
		t.Fatalf("node without a local transform should not get a global one")
	}
	g, _ := ecs.Get(h.w, kid, component.GlobalTransformComponent.Kind())
	if g == nil || g.X != 6 || g.Y != 6 {
		t.Fatalf("expected grandchild at (6, 6), got %+v", g)
	}
}

func TestTransformPropagationOnlyTouchesChangedSubtrees(t *testing.T) {
	h := newHarness()
	a := h.spawn(t, 0, 0, nil)
	b := h.spawn(t, 0, 0, nil)
	h.scheduler.Update(h.w)

	// a depth written outside propagation survives until the entity moves
	h.w.WriteDepthDirect(a, 7)
	h.w.WriteDepthDirect(b, 7)
	tr, _ := ecs.Get(h.w, b, component.TransformComponent.Kind())
	tr.X = 3
	_ = ecs.Add(h.w, b, component.TransformComponent.Kind(), tr)
	h.propagate.Update(h.w)

	if h.z(t, a) != 7 {
		t.Fatalf("unchanged entity should keep its depth, got %v", h.z(t, a))
	}
	if h.z(t, b) != 0 {
		t.Fatalf("moved entity should be recomputed, got %v", h.z(t, b))
	}
}

func TestSpriteLayerInheritance(t *testing.T) {
	h := newHarness()
	root := h.spawn(t, 0, 0, &layerTop)
	kid := h.child(t, root, 0, 0)
	grandkid := h.child(t, kid, 0, 0)
	other := h.spawn(t, 0, 0, &layerBottom)

	h.scheduler.Update(h.w)

	for _, e := range []ecs.Entity{root, kid, grandkid} {
		z := h.z(t, e)
		if z < layerTop.Depth || z >= layerTop.Depth+1 {
			t.Fatalf("entity %v depth %v outside the top band", e, z)
		}
		if !ecs.Has(h.w, e, component.DepthManagedComponent.Kind()) {
			t.Fatalf("entity %v should be marked depth managed", e)
		}
	}
	if z := h.z(t, other); z >= layerBottom.Depth+1 {
		t.Fatalf("bottom entity depth %v outside its band", z)
	}
	if stats := h.layers.Stats(); stats.Resolved != 4 || stats.Written != 4 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestSpriteLayerScreenYOrdering(t *testing.T) {
	h := newHarness()
	high := h.spawn(t, 0, 10, &layerMiddle)
	low := h.spawn(t, 0, 300, &layerMiddle)

	h.scheduler.Update(h.w)

	// lower on screen is nearer the viewer
	if !(h.z(t, high) < h.z(t, low)) {
		t.Fatalf("entity higher on screen should be behind: %v vs %v", h.z(t, high), h.z(t, low))
	}

	h.options.YSort = false
	h.scheduler.Update(h.w)
	if h.z(t, high) != layerMiddle.Depth || h.z(t, low) != layerMiddle.Depth {
		t.Fatalf("without y-sort both should sit at the base depth")
	}
}

func TestSpriteLayerClearsStrippedLayers(t *testing.T) {
	h := newHarness()
	strip := NewLayerStripSystem()
	h.scheduler.Add(strip)

	root := h.spawn(t, 0, 50, &layerTop)
	kid := h.child(t, root, 0, 0)
	h.scheduler.Update(h.w)
	if h.z(t, kid) == 0 {
		t.Fatalf("child should have a depth before stripping")
	}

	strip.SetStripped(true)
	h.scheduler.Update(h.w)

	if ecs.Has(h.w, root, component.RenderLayerComponent.Kind()) {
		t.Fatalf("layer should be stashed")
	}
	if h.z(t, root) != 0 || h.z(t, kid) != 0 {
		t.Fatalf("stale depths should be reset, got %v and %v", h.z(t, root), h.z(t, kid))
	}
	if ecs.Has(h.w, kid, component.DepthManagedComponent.Kind()) {
		t.Fatalf("cleared entity should lose the depth managed marker")
	}
	if stats := h.layers.Stats(); stats.Cleared != 2 {
		t.Fatalf("expected 2 cleared, got %+v", stats)
	}

	strip.SetStripped(false)
	h.scheduler.Update(h.w)
	if z := h.z(t, kid); z < layerTop.Depth {
		t.Fatalf("restored layer should put the child back in the top band, got %v", z)
	}
}

func TestSpriteLayerIdempotentAcrossFrames(t *testing.T) {
	h := newHarness()
	var ents []ecs.Entity
	for i := 0; i < 50; i++ {
		ents = append(ents, h.spawn(t, float64(i%5), float64(i%7), &layerMiddle))
	}
	h.scheduler.Update(h.w)
	first := make([]float32, len(ents))
	for i, e := range ents {
		first[i] = h.z(t, e)
	}
	h.scheduler.Update(h.w)
	for i, e := range ents {
		if h.z(t, e) != first[i] {
			t.Fatalf("entity %v moved between identical frames", e)
		}
	}
}

func TestSpriteLayerDestroyedEntity(t *testing.T) {
	h := newHarness()
	e := h.spawn(t, 0, 0, &layerMiddle)
	keep := h.spawn(t, 0, 0, &layerMiddle)
	h.scheduler.Update(h.w)

	h.w.DestroyEntity(e)
	h.scheduler.Update(h.w)

	if stats := h.layers.Stats(); stats.Cleared != 0 || stats.Written != 1 {
		t.Fatalf("destroyed entity should drop silently, got %+v", stats)
	}
	if _, ok := h.layers.Depths()[keep]; !ok {
		t.Fatalf("surviving entity should still be resolved")
	}
}

func TestSpriteLayerReportsEvent(t *testing.T) {
	h := newHarness()
	h.spawn(t, 0, 0, &layerMiddle)

	var report ecs.DepthReport
	found := false
	h.scheduler.AddToStage(ecs.StageExtract, systemFunc(func(w *ecs.World) {
		for _, ev := range w.Events().Peek() {
			if ev.Type == ecs.EventDepthReport {
				report, found = ev.Data.(ecs.DepthReport)
			}
		}
	}))
	h.scheduler.Update(h.w)

	if !found || report.Written != 1 {
		t.Fatalf("expected a depth report with one write, got %+v found=%v", report, found)
	}
}

type systemFunc func(w *ecs.World)

func (f systemFunc) Update(w *ecs.World) { f(w) }
