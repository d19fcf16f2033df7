// Package portfolio contains the filter-and-aggregation engine for the
// NGHS real-estate portfolio map: the feature predicate, the statistics
// aggregation, the shared filter selection, and the MapLibre filter
// expression builder consumed by the browser map.
package portfolio

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// Feature property keys as they appear in the portfolio GeoJSON.
const (
	PropOwnership     = "ownership_type"
	PropBuildingType  = "building_type"
	PropServiceArea   = "service_area"
	PropLongstreet    = "longstreet"
	PropSquareFootage = "square_footage"
	PropLandSize      = "land_size"
	PropGrouping      = "grouping"
	PropParcelID      = "parcel_id"
)

// Selection values with special meaning.
const (
	// OwnershipAll disables the ownership filter.
	OwnershipAll = "all"
	// TypeAll disables the property-type filter.
	TypeAll = "All"
	// TypeMedicalOffice matches any building type with this literal prefix.
	TypeMedicalOffice = "Medical Office"
	// TypeOther is the catch-all: everything not covered by the explicit
	// categories and not Medical-Office-prefixed.
	TypeOther = "Other"
	// TypeLand switches the stats headline from square footage to acreage.
	TypeLand = "Land"
	// GroupNone marks a standalone property; its acreage counts individually.
	GroupNone = "None"

	longstreetYes = "Yes"
)

// otherExcluded are the explicit categories the "Other" filter rejects.
var otherExcluded = []string{"Hospital", TypeLand, "Office", "Vacant Building"}

// PropertyTypes is the fixed list of property-type filter choices, in the
// order the dashboard presents them.
var PropertyTypes = []string{TypeAll, "Hospital", TypeMedicalOffice, "Office", TypeLand, "Vacant Building", TypeOther}

// Selection is the current filter state across all four dimensions. The
// zero value means "no filtering"; use DefaultSelection to get a selection
// pre-populated with the full service-area set.
type Selection struct {
	Ownership      string   `json:"ownership" doc:"Ownership filter ('all' or an exact ownership type)" example:"all"`
	PropertyType   string   `json:"propertyType" doc:"Property-type filter ('All', 'Medical Office', 'Other', or an exact building type)" example:"All"`
	ServiceAreas   []string `json:"serviceAreas" doc:"Selected service areas, in display order; empty means all"`
	ShowLongstreet bool     `json:"showLongstreet" doc:"When false, Longstreet-flagged properties are excluded"`
}

// DefaultSelection returns the startup "show everything" selection over the
// given service-area enumeration.
func DefaultSelection(areas []string) Selection {
	return Selection{
		Ownership:      OwnershipAll,
		PropertyType:   TypeAll,
		ServiceAreas:   append([]string(nil), areas...),
		ShowLongstreet: true,
	}
}

// AreaStats is one row of aggregate statistics for a single service area,
// or the synthesized Total row when more than one area is selected.
type AreaStats struct {
	ServiceArea          string   `json:"serviceArea" doc:"Service area name, or 'Total'"`
	Count                int      `json:"count" doc:"Number of matching properties"`
	TotalSquareFootage   float64  `json:"totalSquareFootage" doc:"Sum of known square footage"`
	AverageSquareFootage *float64 `json:"averageSquareFootage,omitempty" doc:"Average over properties with known square footage; absent when none"`
	TotalAcres           float64  `json:"totalAcres" doc:"Acreage with grouped parcels counted once"`
	Total                bool     `json:"total,omitempty" doc:"True on the synthesized Total row"`
}

// stringProp reads a string property, treating missing or non-string
// values as the empty string so equality filters degrade gracefully.
func stringProp(props geojson.Properties, key string) string {
	if v, ok := props[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// NumericProp reads a numeric property. GeoJSON attribute bags arrive with
// mixed types (float64 from JSON, strings from spreadsheet exports), so it
// accepts both. Missing, unparseable, NaN, and infinite values report false.
func NumericProp(props geojson.Properties, key string) (float64, bool) {
	v, ok := props[key]
	if !ok || v == nil {
		return 0, false
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
