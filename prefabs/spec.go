package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/spritelayer/spritelayer"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// OptionsSpec mirrors spritelayer.Options. Unset fields keep their defaults.
type OptionsSpec struct {
	YSort             *bool  `yaml:"y_sort"`
	Strategy          string `yaml:"strategy"`
	ParallelThreshold *int   `yaml:"parallel_threshold"`
}

// Options converts the spec, filling gaps from spritelayer.DefaultOptions.
func (s OptionsSpec) Options() (spritelayer.Options, error) {
	opts := spritelayer.DefaultOptions()
	if s.YSort != nil {
		opts.YSort = *s.YSort
	}
	strategy, err := spritelayer.ParseStrategy(s.Strategy)
	if err != nil {
		return opts, fmt.Errorf("prefabs: options: %w", err)
	}
	opts.Strategy = strategy
	if s.ParallelThreshold != nil {
		if *s.ParallelThreshold < 0 {
			return opts, fmt.Errorf("prefabs: options: parallel_threshold must not be negative, got %d", *s.ParallelThreshold)
		}
		opts.ParallelThreshold = *s.ParallelThreshold
	}
	return opts, nil
}

func LoadOptions(filename string) (spritelayer.Options, error) {
	spec, err := LoadSpec[OptionsSpec](filename)
	if err != nil {
		return spritelayer.DefaultOptions(), err
	}
	return spec.Options()
}

// LayerTableSpec lists layers from back to front.
type LayerTableSpec struct {
	// Script is an optional tengo file whose globals every depth_expr can use.
	Script string      `yaml:"script"`
	Layers []LayerSpec `yaml:"layers"`
}

type LayerSpec struct {
	Name      string   `yaml:"name"`
	Depth     *float64 `yaml:"depth"`
	DepthExpr string   `yaml:"depth_expr"`
}

// SceneSpec describes the demo scene.
type SceneSpec struct {
	Width   float64      `yaml:"width"`
	Height  float64      `yaml:"height"`
	Seed    uint64       `yaml:"seed"`
	Groups  []GroupSpec  `yaml:"groups"`
	Overlay *OverlaySpec `yaml:"overlay"`
}

// GroupSpec spawns Count squares on one layer.
type GroupSpec struct {
	Layer  string    `yaml:"layer"`
	Count  int       `yaml:"count"`
	Size   float64   `yaml:"size"`
	Speed  float64   `yaml:"speed"`
	Color  YAMLColor `yaml:"color"`
	Labels bool      `yaml:"labels"`
}

// OverlaySpec is a static banner on its own layer.
type OverlaySpec struct {
	Layer  string    `yaml:"layer"`
	Text   string    `yaml:"text"`
	X      float64   `yaml:"x"`
	Y      float64   `yaml:"y"`
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	Color  YAMLColor `yaml:"color"`
}

func LoadScene(filename string) (SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return spec, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return spec, fmt.Errorf("prefabs: scene %s: width and height must be positive", filename)
	}
	return spec, nil
}

type YAMLColor struct {
	color.Color
}

// RGBA8 returns the colour as color.RGBA, white when unset.
func (c YAMLColor) RGBA8() color.RGBA {
	if c.Color == nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
