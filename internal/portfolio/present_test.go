package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColors = map[string]string{
	"Gainesville": "#246e96",
	"Braselton":   "#77bc1f",
}

func sectionTitles(p Panel) []string {
	titles := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		titles[i] = s.Title
	}
	return titles
}

func findSection(t *testing.T, p Panel, title string) Section {
	t.Helper()
	for _, s := range p.Sections {
		if s.Title == title {
			return s
		}
	}
	t.Fatalf("panel has no %q section, got %v", title, sectionTitles(p))
	return Section{}
}

func TestPresent_AllSections(t *testing.T) {
	avg := 617283.5
	rows := []AreaStats{
		{ServiceArea: "Gainesville", Count: 2, TotalSquareFootage: 1234567, TotalAcres: 12.5, AverageSquareFootage: &avg},
		{ServiceArea: "Braselton", Count: 1, TotalSquareFootage: 1000, TotalAcres: 0.75},
		{ServiceArea: TotalRowLabel, Count: 3, TotalSquareFootage: 1235567, TotalAcres: 13.25, Total: true},
	}
	sel := DefaultSelection(testAreas)

	panel := Present(rows, Headline{Count: 3, Value: 1235567}, sel, testColors)
	require.False(t, panel.Empty)
	assert.Equal(t, []string{"Properties", "Square Footage", "Avg Square Footage", "Acreage"}, sectionTitles(panel))

	assert.Equal(t, "3", panel.HeadlineCount)
	assert.Equal(t, "1,235,567", panel.HeadlineValue)
	assert.Equal(t, "Total SF", panel.HeadlineLabel)

	sf := findSection(t, panel, "Square Footage")
	require.Len(t, sf.Rows, 3)
	assert.Equal(t, "1,234,567", sf.Rows[0].Value, "large figures use grouping separators")
	assert.Equal(t, "#246e96", sf.Rows[0].Color)
	assert.True(t, sf.Rows[1].Underline, "last data row is underlined before the Total row")
	assert.False(t, sf.Rows[0].Underline)
	assert.True(t, sf.Rows[2].IsTotal)
	assert.Empty(t, sf.Rows[2].Color, "the Total row carries no area color")

	acre := findSection(t, panel, "Acreage")
	assert.Equal(t, "12.50", acre.Rows[0].Value, "acreage always shows two decimals")
	assert.Equal(t, "0.75", acre.Rows[1].Value)

	avgSec := findSection(t, panel, "Avg Square Footage")
	require.Len(t, avgSec.Rows, 2, "averages are never totaled")
	assert.Equal(t, "617,284", avgSec.Rows[0].Value, "averages round to whole numbers")
	assert.Equal(t, NoValue, avgSec.Rows[1].Value)
}

func TestPresent_LandHidesSquareFootage(t *testing.T) {
	rows := []AreaStats{
		{ServiceArea: "Gainesville", Count: 1, TotalAcres: 3.2},
	}
	sel := DefaultSelection(testAreas)
	sel.PropertyType = TypeLand

	panel := Present(rows, Headline{Count: 1, Value: 3.2, Acres: true}, sel, testColors)
	assert.Equal(t, []string{"Properties", "Acreage"}, sectionTitles(panel))
	assert.Equal(t, "Total Acres", panel.HeadlineLabel)
	assert.Equal(t, "3.20", panel.HeadlineValue)
}

func TestPresent_SpecificTypeHidesAcreage(t *testing.T) {
	rows := []AreaStats{
		{ServiceArea: "Gainesville", Count: 1, TotalSquareFootage: 500},
	}
	sel := DefaultSelection(testAreas)
	sel.PropertyType = "Hospital"

	panel := Present(rows, Headline{Count: 1, Value: 500}, sel, testColors)
	assert.Equal(t, []string{"Properties", "Square Footage", "Avg Square Footage"}, sectionTitles(panel))
}

func TestPresent_EmptyResult(t *testing.T) {
	sel := DefaultSelection(testAreas)
	rows := Aggregate(nil, []string{"Gainesville"})

	panel := Present(rows, HeadlineOver(nil, sel), sel, testColors)
	assert.True(t, panel.Empty)
	assert.Equal(t, EmptyMessage, panel.Message)
	assert.Empty(t, panel.Sections)
	assert.Equal(t, "0", panel.HeadlineCount)
}

func TestPresent_SingleAreaHasNoUnderline(t *testing.T) {
	rows := []AreaStats{
		{ServiceArea: "Gainesville", Count: 1, TotalSquareFootage: 100},
	}

	panel := Present(rows, Headline{Count: 1, Value: 100}, DefaultSelection(testAreas), testColors)
	for _, sec := range panel.Sections {
		for _, row := range sec.Rows {
			assert.False(t, row.Underline, "no Total row means no underline in %q", sec.Title)
		}
	}
}

func TestHeadlineValueText(t *testing.T) {
	assert.Equal(t, "1,234,568", HeadlineValueText(Headline{Value: 1234567.6}))
	assert.Equal(t, "2.50", HeadlineValueText(Headline{Value: 2.5, Acres: true}))
}
