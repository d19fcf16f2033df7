// Package db manages the embedded DuckDB store used for ad-hoc analytics
// over the portfolio attributes.
package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/paulmach/orb/geojson"

	"github.com/wright-research/nghs-portfolio/internal/portfolio"
)

var (
	instance *sql.DB
	once     sync.Once
	initErr  error
)

// Config holds database configuration.
type Config struct {
	DataDir string
	DBName  string
}

// Get returns the singleton DuckDB connection.
func Get(cfg Config) (*sql.DB, error) {
	once.Do(func() {
		duckdbDir := filepath.Join(cfg.DataDir, "duckdb")
		if err := os.MkdirAll(duckdbDir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create duckdb directory: %w", err)
			return
		}

		dbPath := filepath.Join(duckdbDir, cfg.DBName+".duckdb")
		instance, initErr = sql.Open("duckdb", dbPath)
		if initErr != nil {
			return
		}

		// Spatial is optional; queries over plain attributes work without it.
		if _, err := instance.Exec("INSTALL spatial; LOAD spatial;"); err != nil {
			slog.Debug("duckdb spatial extension unavailable", "err", err)
		}
	})
	return instance, initErr
}

// Close closes the database connection.
func Close() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// LoadPortfolio (re)creates the portfolio table from the loaded GeoJSON so
// the /api/v1/query endpoint can answer ad-hoc questions over the same
// attributes the filter engine sees. Point coordinates are flattened to
// lon/lat columns via the feature's bound center.
func LoadPortfolio(db *sql.DB, fc *geojson.FeatureCollection) error {
	if db == nil || fc == nil {
		return nil
	}

	const schema = `
CREATE OR REPLACE TABLE portfolio (
	parcel_id       VARCHAR,
	ownership_type  VARCHAR,
	building_type   VARCHAR,
	service_area    VARCHAR,
	longstreet      VARCHAR,
	square_footage  DOUBLE,
	land_size       DOUBLE,
	grouping        VARCHAR,
	lon             DOUBLE,
	lat             DOUBLE
)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating portfolio table: %w", err)
	}

	stmt, err := db.Prepare(`INSERT INTO portfolio VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing portfolio insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range fc.Features {
		var lon, lat any
		if f.Geometry != nil {
			center := f.Geometry.Bound().Center()
			lon, lat = center[0], center[1]
		}

		sf := nullableNumber(f.Properties, portfolio.PropSquareFootage)
		acres := nullableNumber(f.Properties, portfolio.PropLandSize)

		if _, err := stmt.Exec(
			f.Properties.MustString(portfolio.PropParcelID, ""),
			f.Properties.MustString(portfolio.PropOwnership, ""),
			f.Properties.MustString(portfolio.PropBuildingType, ""),
			f.Properties.MustString(portfolio.PropServiceArea, ""),
			f.Properties.MustString(portfolio.PropLongstreet, ""),
			sf, acres,
			f.Properties.MustString(portfolio.PropGrouping, ""),
			lon, lat,
		); err != nil {
			return fmt.Errorf("inserting portfolio row: %w", err)
		}
	}

	slog.Info("loaded portfolio into duckdb", "rows", len(fc.Features))
	return nil
}

// nullableNumber maps a missing or non-numeric attribute to SQL NULL, using
// the same coercion rules as the aggregation.
func nullableNumber(props geojson.Properties, key string) any {
	if f, ok := portfolio.NumericProp(props, key); ok {
		return f
	}
	return nil
}
