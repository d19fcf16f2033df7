package portfolio

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Dataset file names within the data directory.
const (
	PortfolioFile    = "portfolio.geojson"
	ServiceAreasFile = "service_areas.geojson"
	ParcelsFile      = "parcels.geojson"
)

// Dataset holds the loaded GeoJSON collections. The portfolio collection is
// required; boundaries and parcels are optional map overlays. Loading is
// done once at startup so the engine always works on resolved collections.
type Dataset struct {
	mu        sync.RWMutex
	portfolio *geojson.FeatureCollection
	areas     *geojson.FeatureCollection
	parcels   *geojson.FeatureCollection
}

// LoadDataset reads the portfolio datasets from dataDir. A missing
// portfolio file is an error; missing overlays are logged and skipped.
func LoadDataset(dataDir string) (*Dataset, error) {
	ds := &Dataset{}

	portfolio, err := readCollection(filepath.Join(dataDir, PortfolioFile))
	if err != nil {
		return nil, err
	}
	ds.portfolio = portfolio
	slog.Info("loaded portfolio", "features", len(portfolio.Features), "dir", dataDir)

	for _, overlay := range []struct {
		file string
		dst  **geojson.FeatureCollection
	}{
		{ServiceAreasFile, &ds.areas},
		{ParcelsFile, &ds.parcels},
	} {
		fc, err := readCollection(filepath.Join(dataDir, overlay.file))
		if err != nil {
			if os.IsNotExist(err) {
				slog.Warn("overlay dataset missing, skipping", "file", overlay.file)
				continue
			}
			return nil, err
		}
		*overlay.dst = fc
	}

	return ds, nil
}

func readCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return fc, nil
}

// Portfolio returns the full portfolio collection.
func (d *Dataset) Portfolio() *geojson.FeatureCollection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.portfolio
}

// ServiceAreaBoundaries returns the boundary overlay, or nil if absent.
func (d *Dataset) ServiceAreaBoundaries() *geojson.FeatureCollection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.areas
}

// Parcels returns the parcel overlay, or nil if absent.
func (d *Dataset) Parcels() *geojson.FeatureCollection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.parcels
}

// Filtered materializes the filtered portfolio collection for the given
// predicate.
func (d *Dataset) Filtered(f *Filter) *geojson.FeatureCollection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return FilterCollection(d.portfolio, f)
}

// Bound returns the union bound of all portfolio features, used for the
// map's initial viewport.
func (d *Dataset) Bound() orb.Bound {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var bound orb.Bound
	first := true
	for _, f := range d.portfolio.Features {
		if f.Geometry == nil {
			continue
		}
		if first {
			bound = f.Geometry.Bound()
			first = false
			continue
		}
		bound = bound.Union(f.Geometry.Bound())
	}
	return bound
}
