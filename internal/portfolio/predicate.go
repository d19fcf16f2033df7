package portfolio

import (
	"strings"

	"github.com/paulmach/orb/geojson"
)

// Filter is a compiled feature predicate for one Selection. It is the single
// authority on inclusion: the stats aggregation, the materialized filtered
// collection, and the MapLibre expression builder all derive from the same
// rules.
type Filter struct {
	sel Selection
	// areas is nil when the selection covers the full enumeration (or is
	// empty), which disables the service-area check entirely.
	areas map[string]struct{}
}

// NewFilter compiles a selection against the full service-area enumeration.
func NewFilter(sel Selection, allAreas []string) *Filter {
	f := &Filter{sel: sel}
	if len(sel.ServiceAreas) > 0 && len(sel.ServiceAreas) < len(allAreas) {
		f.areas = make(map[string]struct{}, len(sel.ServiceAreas))
		for _, a := range sel.ServiceAreas {
			f.areas[a] = struct{}{}
		}
	}
	return f
}

// Selection returns the selection this filter was compiled from.
func (f *Filter) Selection() Selection {
	return f.sel
}

// AreaFilterActive reports whether the service-area membership check is in
// effect (a non-empty proper subset of the enumeration is selected).
func (f *Filter) AreaFilterActive() bool {
	return f.areas != nil
}

// Matches decides whether a feature's attributes pass the selection. All
// four dimensions must hold. Missing attributes compare as empty strings,
// so they fail any filter that requires a specific value.
func (f *Filter) Matches(props geojson.Properties) bool {
	if f.sel.Ownership != "" && f.sel.Ownership != OwnershipAll {
		if stringProp(props, PropOwnership) != f.sel.Ownership {
			return false
		}
	}

	if !matchesPropertyType(stringProp(props, PropBuildingType), f.sel.PropertyType) {
		return false
	}

	if f.areas != nil {
		if _, ok := f.areas[stringProp(props, PropServiceArea)]; !ok {
			return false
		}
	}

	if !f.sel.ShowLongstreet && stringProp(props, PropLongstreet) == longstreetYes {
		return false
	}

	return true
}

// matchesPropertyType applies the property-type rules: "All" passes
// everything, "Medical Office" is a literal prefix match, "Other" excludes
// the explicit categories plus anything Medical-Office-prefixed, and any
// other value is an exact match.
func matchesPropertyType(buildingType, selected string) bool {
	switch selected {
	case "", TypeAll:
		return true
	case TypeMedicalOffice:
		return strings.HasPrefix(buildingType, TypeMedicalOffice)
	case TypeOther:
		for _, excluded := range otherExcluded {
			if buildingType == excluded {
				return false
			}
		}
		return !strings.HasPrefix(buildingType, TypeMedicalOffice)
	default:
		return buildingType == selected
	}
}

// FilterCollection materializes a filtered copy of a feature collection for
// consumers that need real data rather than a declarative map filter, e.g.
// point clustering where cluster counts must reflect the filtered set.
func FilterCollection(fc *geojson.FeatureCollection, f *Filter) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	if fc == nil {
		return out
	}
	for _, feature := range fc.Features {
		if f.Matches(feature.Properties) {
			out.Append(feature)
		}
	}
	return out
}
