package portfolio

import (
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_HabershamScenario(t *testing.T) {
	features := []*geojson.Feature{
		feat(geojson.Properties{PropServiceArea: "Habersham", PropSquareFootage: 1000.0, PropLandSize: 5.0, PropGrouping: "None"}),
		feat(geojson.Properties{PropServiceArea: "Habersham", PropSquareFootage: 2000.0, PropLandSize: 5.0, PropGrouping: "GroupA"}),
		feat(geojson.Properties{PropServiceArea: "Habersham", PropLandSize: 5.0, PropGrouping: "GroupA"}),
	}

	rows := Aggregate(features, []string{"Habersham"})
	require.Len(t, rows, 1, "single selected area must not get a Total row")

	row := rows[0]
	assert.Equal(t, "Habersham", row.ServiceArea)
	assert.Equal(t, 3, row.Count)
	assert.Equal(t, 3000.0, row.TotalSquareFootage)
	require.NotNil(t, row.AverageSquareFootage, "two numeric values must yield an average")
	assert.Equal(t, 1500.0, *row.AverageSquareFootage)
	// 5 standalone + max(5, 5) for GroupA, counted once
	assert.Equal(t, 10.0, row.TotalAcres)
}

func TestAggregate_GroupedAcreageTakesMax(t *testing.T) {
	features := []*geojson.Feature{
		feat(geojson.Properties{PropServiceArea: "Barrow", PropLandSize: 10.0, PropGrouping: "Campus"}),
		feat(geojson.Properties{PropServiceArea: "Barrow", PropLandSize: 15.0, PropGrouping: "Campus"}),
	}

	rows := Aggregate(features, []string{"Barrow"})
	require.Len(t, rows, 1)
	assert.Equal(t, 15.0, rows[0].TotalAcres, "group contributes its max once, not the 25 sum")
}

func TestAggregate_NoNumericSquareFootage(t *testing.T) {
	features := []*geojson.Feature{
		feat(geojson.Properties{PropServiceArea: "Lumpkin"}),
		feat(geojson.Properties{PropServiceArea: "Lumpkin", PropSquareFootage: "n/a"}),
	}

	rows := Aggregate(features, []string{"Lumpkin"})
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Count, "non-numeric values still count the feature")
	assert.Nil(t, rows[0].AverageSquareFootage, "no numeric values means no average, never 0/0")
	assert.Equal(t, 0.0, rows[0].TotalSquareFootage)
}

func TestAggregate_StringNumbersParse(t *testing.T) {
	features := []*geojson.Feature{
		feat(geojson.Properties{PropServiceArea: "Gainesville", PropSquareFootage: "12,500"}),
	}

	rows := Aggregate(features, []string{"Gainesville"})
	require.Len(t, rows, 1)
	assert.Equal(t, 12500.0, rows[0].TotalSquareFootage, "spreadsheet-style strings parse as numbers")
}

func TestAggregate_TotalRow(t *testing.T) {
	features := []*geojson.Feature{
		feat(geojson.Properties{PropServiceArea: "Gainesville", PropSquareFootage: 100.0, PropLandSize: 1.0}),
		feat(geojson.Properties{PropServiceArea: "Braselton", PropSquareFootage: 300.0, PropLandSize: 2.0}),
	}

	rows := Aggregate(features, []string{"Gainesville", "Braselton"})
	require.Len(t, rows, 3, "two areas plus a Total row")

	total := rows[2]
	assert.True(t, total.Total)
	assert.Equal(t, TotalRowLabel, total.ServiceArea)
	assert.Equal(t, 2, total.Count)
	assert.Equal(t, 400.0, total.TotalSquareFootage)
	assert.Equal(t, 3.0, total.TotalAcres)
	assert.Nil(t, total.AverageSquareFootage, "averages are never summed across areas")
}

func TestAggregate_EmptySetYieldsZeroRows(t *testing.T) {
	rows := Aggregate(nil, []string{"Gainesville", "Braselton"})
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, 0, row.Count)
		assert.Equal(t, 0.0, row.TotalAcres)
		assert.Nil(t, row.AverageSquareFootage)
	}
}

func TestAggregate_AreasInSelectionOrder(t *testing.T) {
	features := []*geojson.Feature{
		feat(geojson.Properties{PropServiceArea: "Lumpkin"}),
		feat(geojson.Properties{PropServiceArea: "Habersham"}),
	}

	rows := Aggregate(features, []string{"Lumpkin", "Habersham"})
	require.Len(t, rows, 3)
	assert.Equal(t, "Lumpkin", rows[0].ServiceArea)
	assert.Equal(t, "Habersham", rows[1].ServiceArea)
	assert.True(t, rows[2].Total)
}

func TestAggregate_NegativeGroupedAcreage(t *testing.T) {
	features := []*geojson.Feature{
		feat(geojson.Properties{PropServiceArea: "Barrow", PropLandSize: -5.0, PropGrouping: "Adjustment"}),
		feat(geojson.Properties{PropServiceArea: "Barrow", PropLandSize: -3.0, PropGrouping: "Adjustment"}),
	}

	rows := Aggregate(features, []string{"Barrow"})
	require.Len(t, rows, 1)
	assert.Equal(t, -3.0, rows[0].TotalAcres, "the maximum seen wins even when all values are negative")
}

func TestHeadlineOver(t *testing.T) {
	features := []*geojson.Feature{
		feat(geojson.Properties{PropServiceArea: "Gainesville", PropSquareFootage: 300.0, PropLandSize: 4.0, PropGrouping: "None"}),
		feat(geojson.Properties{PropServiceArea: "Braselton", PropSquareFootage: 100.0, PropLandSize: 10.0, PropGrouping: "Campus"}),
		feat(geojson.Properties{PropServiceArea: "Braselton", PropLandSize: 6.0, PropGrouping: "Campus"}),
	}

	sf := HeadlineOver(features, Selection{PropertyType: TypeAll})
	assert.Equal(t, 3, sf.Count)
	assert.Equal(t, 400.0, sf.Value)
	assert.False(t, sf.Acres)

	land := HeadlineOver(features, Selection{PropertyType: TypeLand})
	assert.Equal(t, 14.0, land.Value, "grouped parcels contribute their max acreage once")
	assert.True(t, land.Acres)
}

func TestHeadlineOver_CountsFeaturesOutsideAreaRows(t *testing.T) {
	// With the full enumeration selected the area check is inactive, so a
	// feature with no service_area is rendered on the map. The headline must
	// agree with the rendered set even though no per-area row holds it.
	features := []*geojson.Feature{
		feat(geojson.Properties{PropServiceArea: "Gainesville", PropSquareFootage: 1000.0}),
		feat(geojson.Properties{PropSquareFootage: 500.0}),
	}
	sel := DefaultSelection(testAreas)

	filtered := make([]*geojson.Feature, 0, len(features))
	f := NewFilter(sel, testAreas)
	for _, feature := range features {
		if f.Matches(feature.Properties) {
			filtered = append(filtered, feature)
		}
	}
	require.Len(t, filtered, 2, "the stray feature passes the no-op filter")

	rows := Aggregate(filtered, sel.ServiceAreas)
	headline := HeadlineOver(filtered, sel)
	assert.Equal(t, 2, headline.Count, "headline counts every rendered feature")
	assert.Equal(t, 1500.0, headline.Value)

	var rowCount int
	for _, row := range rows {
		if !row.Total {
			rowCount += row.Count
		}
	}
	assert.Equal(t, 1, rowCount, "per-area rows only hold enumerated areas")
}
