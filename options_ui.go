package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/spritelayer/spritelayer"
	"golang.org/x/image/font/basicfont"
)

// optionLabels keeps the toggle buttons in step with the options, which may
// also change from the keyboard or a reload.
type optionLabels struct {
	ySort    *widget.Button
	strategy *widget.Button
	strip    *widget.Button
	stripped bool
}

func (l *optionLabels) refresh(g *Game) {
	if l == nil {
		return
	}
	setLabel(l.ySort, fmt.Sprintf("Y-sort: %s", onOff(g.options.YSort)))
	setLabel(l.strategy, fmt.Sprintf("Strategy: %s", g.options.Strategy))
	stripLabel := "Layers: placed"
	if l.stripped {
		stripLabel = "Layers: stripped"
	}
	setLabel(l.strip, stripLabel)
}

func setLabel(btn *widget.Button, label string) {
	if btn == nil {
		return
	}
	if text := btn.Text(); text != nil {
		text.Label = label
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// NewOptionsUI builds a small panel in the top right corner with one toggle
// per depth option.
func NewOptionsUI(g *Game) (*ebitenui.UI, *optionLabels) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	labels := &optionLabels{}
	newToggle := func(onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text("", &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(170, 24)),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick()
				labels.refresh(g)
			}),
		)
	}

	labels.ySort = newToggle(func() {
		g.options.YSort = !g.options.YSort
	})
	labels.strategy = newToggle(func() {
		if g.options.Strategy == spritelayer.StrategyGlobal {
			g.options.Strategy = spritelayer.StrategyBuckets
		} else {
			g.options.Strategy = spritelayer.StrategyGlobal
		}
	})
	labels.strip = newToggle(func() {
		labels.stripped = g.input.ToggleLatch()
	})
	labels.refresh(g)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(labels.ySort)
	panel.AddChild(labels.strategy)
	panel.AddChild(labels.strip)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}, labels
}
