package portfolio

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// NoValue is shown where a figure is undefined, e.g. the average square
// footage of an area with no known square footage.
const NoValue = "–"

// EmptyMessage is the placeholder shown when nothing matches the filters.
const EmptyMessage = "No properties match the current filters"

// DisplayRow is one formatted line of the stats panel, ready for the view
// collaborator to render.
type DisplayRow struct {
	Label     string `json:"label" doc:"Row label (area name or 'Total')"`
	Color     string `json:"color" doc:"Area color token; empty on the Total row"`
	Value     string `json:"value" doc:"Formatted figure"`
	IsTotal   bool   `json:"isTotal" doc:"True on the synthesized Total row"`
	Underline bool   `json:"underline" doc:"True on the last data row when a Total row follows"`
}

// Section is a titled group of display rows (counts, square footage, ...).
type Section struct {
	Title string       `json:"title"`
	Rows  []DisplayRow `json:"rows"`
}

// Panel is the full display-ready stats panel.
type Panel struct {
	Headline      Headline  `json:"headline"`
	HeadlineCount string    `json:"headlineCount" doc:"Formatted property count"`
	HeadlineValue string    `json:"headlineValue" doc:"Formatted headline figure"`
	HeadlineLabel string    `json:"headlineLabel" doc:"'Total Acres' or 'Total SF'"`
	Sections      []Section `json:"sections"`
	Empty         bool      `json:"empty" doc:"True when the filtered set is empty"`
	Message       string    `json:"message,omitempty" doc:"Placeholder text when Empty"`
}

// Present formats aggregation rows into the stats panel structure. Counts
// and square footage use grouped integers, acreage two decimals. Section
// visibility follows the property-type selection: the square-footage
// sections are hidden for Land, and the acreage section is hidden unless
// the selection is Land or All. The headline comes from HeadlineOver so it
// reflects the full filtered set, not just the per-area rows.
func Present(rows []AreaStats, headline Headline, sel Selection, colors map[string]string) Panel {
	panel := Panel{
		Headline:      headline,
		HeadlineCount: humanize.Comma(int64(headline.Count)),
		HeadlineValue: HeadlineValueText(headline),
		HeadlineLabel: "Total SF",
	}
	if headline.Acres {
		panel.HeadlineLabel = "Total Acres"
	}

	if headline.Count == 0 {
		panel.Empty = true
		panel.Message = EmptyMessage
		return panel
	}

	showSF := sel.PropertyType != TypeLand
	showAcres := sel.PropertyType == TypeLand || sel.PropertyType == TypeAll || sel.PropertyType == ""

	panel.Sections = append(panel.Sections, Section{
		Title: "Properties",
		Rows:  formatRows(rows, colors, func(r AreaStats) string { return humanize.Comma(int64(r.Count)) }),
	})

	if showSF {
		panel.Sections = append(panel.Sections, Section{
			Title: "Square Footage",
			Rows:  formatRows(rows, colors, func(r AreaStats) string { return wholeNumber(r.TotalSquareFootage) }),
		})
		panel.Sections = append(panel.Sections, Section{
			Title: "Avg Square Footage",
			Rows: formatDataRows(rows, colors, func(r AreaStats) string {
				if r.AverageSquareFootage == nil {
					return NoValue
				}
				return wholeNumber(*r.AverageSquareFootage)
			}),
		})
	}

	if showAcres {
		panel.Sections = append(panel.Sections, Section{
			Title: "Acreage",
			Rows:  formatRows(rows, colors, func(r AreaStats) string { return fmt.Sprintf("%.2f", r.TotalAcres) }),
		})
	}

	return panel
}

// formatRows formats every aggregation row, including the Total row when
// present, marking the last data row for underlining.
func formatRows(rows []AreaStats, colors map[string]string, value func(AreaStats) string) []DisplayRow {
	out := make([]DisplayRow, 0, len(rows))
	hasTotal := false
	for _, r := range rows {
		if r.Total {
			hasTotal = true
		}
		out = append(out, DisplayRow{
			Label:   r.ServiceArea,
			Color:   colors[r.ServiceArea],
			Value:   value(r),
			IsTotal: r.Total,
		})
	}
	if hasTotal && len(out) >= 2 {
		out[len(out)-2].Underline = true
	}
	return out
}

// formatDataRows formats per-area rows only. Used for averages, which are
// never totaled across areas.
func formatDataRows(rows []AreaStats, colors map[string]string, value func(AreaStats) string) []DisplayRow {
	var out []DisplayRow
	for _, r := range rows {
		if r.Total {
			continue
		}
		out = append(out, DisplayRow{
			Label: r.ServiceArea,
			Color: colors[r.ServiceArea],
			Value: value(r),
		})
	}
	return out
}

// wholeNumber rounds to the nearest integer and adds grouping separators.
func wholeNumber(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// HeadlineValueText formats the headline figure: grouped square footage or
// two-decimal acreage.
func HeadlineValueText(h Headline) string {
	if h.Acres {
		return fmt.Sprintf("%.2f", h.Value)
	}
	return wholeNumber(h.Value)
}
