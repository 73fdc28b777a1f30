package system

import (
	"log"

	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/ecs/entity"
	"github.com/milk9111/spritelayer/prefabs"
	"github.com/milk9111/spritelayer/spritelayer"
)

// ReloadSystem applies edited option and layer files between frames.
type ReloadSystem struct {
	changes     <-chan prefabs.Change
	options     *spritelayer.Options
	optionsFile string
	layersFile  string

	loadOptions func(string) (spritelayer.Options, error)
	loadLayers  func(string) (*prefabs.LayerTable, error)
}

func NewReloadSystem(changes <-chan prefabs.Change, options *spritelayer.Options, optionsFile, layersFile string) *ReloadSystem {
	return &ReloadSystem{
		changes:     changes,
		options:     options,
		optionsFile: optionsFile,
		layersFile:  layersFile,
		loadOptions: prefabs.LoadOptions,
		loadLayers:  prefabs.LoadLayerTable,
	}
}

func (r *ReloadSystem) Update(w *ecs.World) {
	if r == nil || r.changes == nil || w == nil {
		return
	}
	reloadOptions, reloadLayers := false, false
	for drained := false; !drained; {
		select {
		case c, ok := <-r.changes:
			if !ok {
				r.changes = nil
				drained = true
				break
			}
			switch {
			case c.Script, c.Name == r.layersFile:
				reloadLayers = true
			case c.Name == r.optionsFile:
				reloadOptions = true
			}
		default:
			drained = true
		}
	}

	if reloadOptions && r.options != nil {
		opts, err := r.loadOptions(r.optionsFile)
		if err != nil {
			log.Printf("ReloadSystem: keeping current options: %v", err)
		} else {
			*r.options = opts
			w.Events().Push(ecs.Event{Type: ecs.EventOptionsChanged, Data: opts})
			log.Printf("ReloadSystem: options reloaded: y_sort=%v strategy=%s", opts.YSort, opts.Strategy)
		}
	}
	if reloadLayers {
		table, err := r.loadLayers(r.layersFile)
		if err != nil {
			log.Printf("ReloadSystem: keeping current layers: %v", err)
			return
		}
		n := entity.ApplyLayerTable(w, table)
		log.Printf("ReloadSystem: layers reloaded, %d entities updated", n)
	}
}
