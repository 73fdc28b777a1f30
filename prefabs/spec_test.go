package prefabs

import (
	"errors"
	"image/color"
	"testing"

	"github.com/milk9111/spritelayer/spritelayer"
	"gopkg.in/yaml.v3"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestOptionsSpec(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		want    spritelayer.Options
		wantErr bool
	}{
		{
			name: "empty_uses_defaults",
			src:  "{}",
			want: spritelayer.DefaultOptions(),
		},
		{
			name: "buckets_no_ysort",
			src:  "y_sort: false\nstrategy: buckets\nparallel_threshold: 0\n",
			want: spritelayer.Options{YSort: false, Strategy: spritelayer.StrategyBuckets, ParallelThreshold: 0},
		},
		{
			name:    "unknown_strategy",
			src:     "strategy: radix\n",
			wantErr: true,
		},
		{
			name:    "negative_threshold",
			src:     "parallel_threshold: -1\n",
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var spec OptionsSpec
			if err := yaml.Unmarshal([]byte(c.src), &spec); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got, err := spec.Options()
			if (err != nil) != c.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if err == nil && got != c.want {
				t.Fatalf("expected %+v, got %+v", c.want, got)
			}
		})
	}
}

func TestEmbeddedPrefabsLoad(t *testing.T) {
	opts, err := LoadOptions("options.yaml")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if !opts.YSort || opts.Strategy != spritelayer.StrategyGlobal {
		t.Fatalf("unexpected embedded options %+v", opts)
	}

	table, err := LoadLayerTable("layers.yaml")
	if err != nil {
		t.Fatalf("layers: %v", err)
	}
	if len(table.Layers) != 12 {
		t.Fatalf("expected 12 layers, got %d", len(table.Layers))
	}
	if l, ok := table.Lookup("middle_9"); !ok || l.Depth != 10 {
		t.Fatalf("expected middle_9 at depth 10, got %+v ok=%v", l, ok)
	}
	if l, ok := table.Lookup("top"); !ok || l.Depth != 300 {
		t.Fatalf("expected top at depth 300, got %+v ok=%v", l, ok)
	}

	scene, err := LoadScene("scene.yaml")
	if err != nil {
		t.Fatalf("scene: %v", err)
	}
	for _, g := range scene.Groups {
		if _, ok := table.Lookup(g.Layer); !ok {
			t.Fatalf("scene group refers to unknown layer %q", g.Layer)
		}
	}
}

func TestBuildLayerTable(t *testing.T) {
	cases := []struct {
		name    string
		spec    LayerTableSpec
		want    []float32
		wantErr error
	}{
		{
			name: "index_default",
			spec: LayerTableSpec{Layers: []LayerSpec{{Name: "a"}, {Name: "b"}, {Name: "c"}}},
			want: []float32{0, 1, 2},
		},
		{
			name: "expressions",
			spec: LayerTableSpec{Layers: []LayerSpec{
				{Name: "a", Depth: floatPtr(-2)},
				{Name: "b", DepthExpr: "index * 4"},
				{Name: "c", DepthExpr: "len(name) + 10.5"},
			}},
			want: []float32{-2, 4, 11.5},
		},
		{
			name: "too_close",
			spec: LayerTableSpec{Layers: []LayerSpec{
				{Name: "a", Depth: floatPtr(1)},
				{Name: "b", Depth: floatPtr(1.5)},
			}},
			wantErr: ErrLayerSpacing,
		},
		{
			name: "decreasing",
			spec: LayerTableSpec{Layers: []LayerSpec{
				{Name: "a", Depth: floatPtr(3)},
				{Name: "b", Depth: floatPtr(1)},
			}},
			wantErr: ErrLayerSpacing,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			table, err := BuildLayerTable(c.spec)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			for i, want := range c.want {
				if table.Layers[i].Depth != want {
					t.Fatalf("layer %d: expected %v, got %v", i, want, table.Layers[i].Depth)
				}
			}
		})
	}
}

func TestBuildLayerTableRejectsBadRows(t *testing.T) {
	cases := []struct {
		name string
		spec LayerTableSpec
	}{
		{"missing_name", LayerTableSpec{Layers: []LayerSpec{{Name: " "}}}},
		{"duplicate", LayerTableSpec{Layers: []LayerSpec{{Name: "a"}, {Name: "a", Depth: floatPtr(5)}}}},
		{"both", LayerTableSpec{Layers: []LayerSpec{{Name: "a", Depth: floatPtr(1), DepthExpr: "2"}}}},
		{"not_a_number", LayerTableSpec{Layers: []LayerSpec{{Name: "a", DepthExpr: `"deep"`}}}},
		{"syntax", LayerTableSpec{Layers: []LayerSpec{{Name: "a", DepthExpr: "1 +"}}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := BuildLayerTable(c.spec); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		src     string
		want    color.RGBA
		wantErr bool
	}{
		{`"#ff8000"`, color.RGBA{R: 255, G: 128, A: 255}, false},
		{`"00000000"`, color.RGBA{}, false},
		{`"#fff"`, color.RGBA{}, true},
		{`[1, 2]`, color.RGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.src), &got)
			if (err != nil) != c.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if err == nil && got.RGBA8() != c.want {
				t.Fatalf("expected %v, got %v", c.want, got.RGBA8())
			}
		})
	}
	if (YAMLColor{}).RGBA8() != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("unset colour should be white")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path   string
		want   Change
		wantOK bool
	}{
		{"prefabs/options.yaml", Change{Name: "options.yaml"}, true},
		{"prefabs/scripts/depth.tengo", Change{Name: "depth.tengo", Script: true}, true},
		{"prefabs/notes.txt", Change{}, false},
	}
	for _, c := range cases {
		got, ok := classify(c.path)
		if ok != c.wantOK || got != c.want {
			t.Fatalf("classify(%q) = %+v, %v", c.path, got, ok)
		}
	}
}
