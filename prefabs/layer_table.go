package prefabs

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ErrLayerSpacing is returned when base depths are not increasing by at
// least 1.0 from one layer to the next.
var ErrLayerSpacing = errors.New("prefabs: layer depths must increase by at least 1.0")

// Layer is one resolved row of the layer table.
type Layer struct {
	Index int
	Name  string
	Depth float32
}

// LayerTable is an ordered set of layers, back to front.
type LayerTable struct {
	Layers []Layer
	byName map[string]int
}

// Lookup returns the layer with the given name.
func (t *LayerTable) Lookup(name string) (Layer, bool) {
	if t == nil {
		return Layer{}, false
	}
	i, ok := t.byName[name]
	if !ok {
		return Layer{}, false
	}
	return t.Layers[i], true
}

func LoadLayerTable(filename string) (*LayerTable, error) {
	spec, err := LoadSpec[LayerTableSpec](filename)
	if err != nil {
		return nil, err
	}
	table, err := BuildLayerTable(spec)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return table, nil
}

// BuildLayerTable evaluates every depth and checks the spacing.
func BuildLayerTable(spec LayerTableSpec) (*LayerTable, error) {
	prelude := ""
	if spec.Script != "" {
		src, err := LoadScript(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("load script %s: %w", spec.Script, err)
		}
		prelude = string(src)
	}

	table := &LayerTable{byName: make(map[string]int, len(spec.Layers))}
	for i, ls := range spec.Layers {
		name := strings.TrimSpace(ls.Name)
		if name == "" {
			return nil, fmt.Errorf("layer %d: missing name", i)
		}
		if _, dup := table.byName[name]; dup {
			return nil, fmt.Errorf("layer %d: duplicate name %q", i, name)
		}

		var depth float64
		switch {
		case ls.Depth != nil && ls.DepthExpr != "":
			return nil, fmt.Errorf("layer %q: set depth or depth_expr, not both", name)
		case ls.Depth != nil:
			depth = *ls.Depth
		case ls.DepthExpr != "":
			v, err := evalDepth(prelude, ls.DepthExpr, i, name)
			if err != nil {
				return nil, fmt.Errorf("layer %q: %w", name, err)
			}
			depth = v
		default:
			depth = float64(i)
		}
		if math.IsNaN(depth) || math.IsInf(depth, 0) {
			return nil, fmt.Errorf("layer %q: depth %v is not finite", name, depth)
		}

		if i > 0 {
			prev := table.Layers[i-1]
			if float32(depth)-prev.Depth < 1 {
				return nil, fmt.Errorf("%w: %q at %v follows %q at %v", ErrLayerSpacing, name, depth, prev.Name, prev.Depth)
			}
		}
		table.byName[name] = i
		table.Layers = append(table.Layers, Layer{Index: i, Name: name, Depth: float32(depth)})
	}
	return table, nil
}

func evalDepth(prelude, expr string, index int, name string) (float64, error) {
	src := prelude + "\n__depth := " + expr
	script := tengo.NewScript([]byte(src))
	_ = script.Add("index", index)
	_ = script.Add("name", name)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Run()
	if err != nil {
		return 0, fmt.Errorf("depth_expr %q: %w", expr, err)
	}
	v := compiled.Get("__depth")
	switch v.ValueType() {
	case "int", "float":
		return v.Float(), nil
	}
	return 0, fmt.Errorf("depth_expr %q: expected a number, got %s", expr, v.ValueType())
}
