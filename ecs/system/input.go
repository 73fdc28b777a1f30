package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/spritelayer"
)

// InputState is one frame of demo controls.
type InputState struct {
	ToggleYSort    bool
	ToggleStrategy bool
	StripLayers    bool
}

// InputSystem maps keys onto the depth options and the layer stripper.
// Y toggles y-sorting, B switches strategy and holding Space strips layers.
type InputSystem struct {
	options *spritelayer.Options
	strip   *LayerStripSystem
	poll    func() InputState
	latched bool
}

func NewInputSystem(options *spritelayer.Options, strip *LayerStripSystem) *InputSystem {
	return &InputSystem{options: options, strip: strip, poll: pollKeyboard}
}

func pollKeyboard() InputState {
	return InputState{
		ToggleYSort:    inpututil.IsKeyJustPressed(ebiten.KeyY),
		ToggleStrategy: inpututil.IsKeyJustPressed(ebiten.KeyB),
		StripLayers:    ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}
	in := i.poll()
	if i.options != nil && (in.ToggleYSort || in.ToggleStrategy) {
		if in.ToggleYSort {
			i.options.YSort = !i.options.YSort
		}
		if in.ToggleStrategy {
			i.options.Strategy = nextStrategy(i.options.Strategy)
		}
		w.Events().Push(ecs.Event{Type: ecs.EventOptionsChanged, Data: *i.options})
	}
	if i.strip != nil {
		i.strip.SetStripped(in.StripLayers || i.latched)
	}
}

// ToggleLatch keeps layers stripped without holding Space.
func (i *InputSystem) ToggleLatch() bool {
	i.latched = !i.latched
	return i.latched
}

func nextStrategy(s spritelayer.Strategy) spritelayer.Strategy {
	if s == spritelayer.StrategyGlobal {
		return spritelayer.StrategyBuckets
	}
	return spritelayer.StrategyGlobal
}
