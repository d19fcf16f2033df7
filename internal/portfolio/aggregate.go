package portfolio

import (
	"github.com/paulmach/orb/geojson"
)

// TotalRowLabel is the service-area label used for the synthesized Total row.
const TotalRowLabel = "Total"

// Aggregate computes one AreaStats row per selected service area, in
// selection order, over an already-filtered feature set. When more than one
// area is selected, a Total row is appended that sums counts, square footage,
// and acreage across the per-area rows. Averages are never summed; the Total
// row carries none.
func Aggregate(filtered []*geojson.Feature, areasInOrder []string) []AreaStats {
	rows := make([]AreaStats, 0, len(areasInOrder)+1)

	for _, area := range areasInOrder {
		rows = append(rows, aggregateArea(filtered, area))
	}

	if len(areasInOrder) > 1 {
		total := AreaStats{ServiceArea: TotalRowLabel, Total: true}
		for _, row := range rows {
			total.Count += row.Count
			total.TotalSquareFootage += row.TotalSquareFootage
			total.TotalAcres += row.TotalAcres
		}
		rows = append(rows, total)
	}

	return rows
}

// aggregateArea computes the stats row for a single service area.
func aggregateArea(filtered []*geojson.Feature, area string) AreaStats {
	row := AreaStats{ServiceArea: area}

	var sfSum float64
	var sfCount int

	// Acreage dedup: standalone parcels sum directly; parcels sharing a
	// grouping key represent one logical property, so the group contributes
	// the maximum reported acreage once rather than a per-parcel sum.
	var standaloneAcres float64
	groupMax := make(map[string]float64)

	for _, f := range filtered {
		if stringProp(f.Properties, PropServiceArea) != area {
			continue
		}
		row.Count++

		if sf, ok := NumericProp(f.Properties, PropSquareFootage); ok {
			sfSum += sf
			sfCount++
		}

		acres, hasAcres := NumericProp(f.Properties, PropLandSize)
		if !hasAcres {
			continue
		}
		group := stringProp(f.Properties, PropGrouping)
		if group == "" || group == GroupNone {
			standaloneAcres += acres
		} else if prev, seen := groupMax[group]; !seen || acres > prev {
			groupMax[group] = acres
		}
	}

	row.TotalSquareFootage = sfSum
	if sfCount > 0 {
		avg := sfSum / float64(sfCount)
		row.AverageSquareFootage = &avg
	}

	row.TotalAcres = standaloneAcres
	for _, acres := range groupMax {
		row.TotalAcres += acres
	}

	return row
}

// Headline holds the two single-value figures shown above the stats panel:
// the property count and either total acreage (when the Land filter is
// active) or total square footage (otherwise), over the full filtered set.
type Headline struct {
	Count int     `json:"count" doc:"Number of properties in the filtered set"`
	Value float64 `json:"value" doc:"Total acreage when the Land filter is active, total square footage otherwise"`
	Acres bool    `json:"acres" doc:"True when Value is acreage"`
}

// HeadlineOver computes the headline figures over the full filtered set,
// not the per-area rows. When the area check is inactive the predicate
// passes features whose service_area is missing or unknown; those features
// are rendered on the map, so the headline must count them even though no
// per-area row does.
func HeadlineOver(filtered []*geojson.Feature, sel Selection) Headline {
	h := Headline{Acres: sel.PropertyType == TypeLand}

	var standaloneAcres float64
	groupMax := make(map[string]float64)

	for _, f := range filtered {
		h.Count++

		if !h.Acres {
			if sf, ok := NumericProp(f.Properties, PropSquareFootage); ok {
				h.Value += sf
			}
			continue
		}

		acres, ok := NumericProp(f.Properties, PropLandSize)
		if !ok {
			continue
		}
		group := stringProp(f.Properties, PropGrouping)
		if group == "" || group == GroupNone {
			standaloneAcres += acres
		} else if prev, seen := groupMax[group]; !seen || acres > prev {
			groupMax[group] = acres
		}
	}

	if h.Acres {
		h.Value = standaloneAcres
		for _, acres := range groupMax {
			h.Value += acres
		}
	}
	return h
}
