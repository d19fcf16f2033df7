// Package dashboard contains the Datastar SSE handlers for the map
// dashboard: the four filter controls, the stats panel, and the event
// stream that keeps every open page in sync with the shared filter state.
package dashboard

import (
	"log/slog"

	"github.com/wright-research/nghs-portfolio/internal/humastar"
	"github.com/wright-research/nghs-portfolio/internal/portfolio"
	"github.com/wright-research/nghs-portfolio/internal/templates"
)

// Handler serves all dashboard SSE routes.
type Handler struct {
	humastar.Handler
	state  *portfolio.FilterState
	data   *portfolio.Dataset
	colors map[string]string
	bus    *portfolio.EventBus
}

// NewHandler creates the dashboard handler.
func NewHandler(state *portfolio.FilterState, data *portfolio.Dataset, areas []portfolio.Area, bus *portfolio.EventBus, renderer *templates.Renderer) *Handler {
	return &Handler{
		Handler: humastar.Handler{Renderer: renderer},
		state:   state,
		data:    data,
		colors:  portfolio.AreaColors(areas),
		bus:     bus,
	}
}

// push sends everything a page needs after a filter change: the re-rendered
// stats panel and the MapLibre filter expressions plus the normalized
// selection as signals, so the map and the controls stay consistent with
// the stats.
func (h *Handler) push(sse humastar.SSE) {
	sel := h.state.Selection()

	sse.Patch(h.renderStatsPanel(sel), "#stats-panel")
	sse.Signals(map[string]any{
		"mapfilters":     portfolio.LayerFilters(sel, h.state.AllAreas()),
		"ownership":      sel.Ownership,
		"propertytype":   sel.PropertyType,
		"serviceareas":   sel.ServiceAreas,
		"showlongstreet": sel.ShowLongstreet,
	})
}

// renderStatsPanel runs the aggregation over the current filtered set and
// renders the stats-panel fragment.
func (h *Handler) renderStatsPanel(sel portfolio.Selection) string {
	filtered := h.data.Filtered(h.state.Filter())
	rows := portfolio.Aggregate(filtered.Features, sel.ServiceAreas)
	headline := portfolio.HeadlineOver(filtered.Features, sel)
	panel := portfolio.Present(rows, headline, sel, h.colors)

	html, err := h.Renderer.Render("stats-panel", panel)
	if err != nil {
		slog.Error("rendering stats panel", "err", err)
		return ""
	}
	return html
}
