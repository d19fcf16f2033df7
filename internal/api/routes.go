// Package api defines the Huma API routes and handlers.
package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wright-research/nghs-portfolio/internal/portfolio"
)

// Handler holds the REST API handlers for the filter engine.
type Handler struct {
	state  *portfolio.FilterState
	data   *portfolio.Dataset
	areas  []portfolio.Area
	colors map[string]string
}

// NewHandler creates the REST API handler.
func NewHandler(state *portfolio.FilterState, data *portfolio.Dataset, areas []portfolio.Area) *Handler {
	return &Handler{
		state:  state,
		data:   data,
		areas:  areas,
		colors: portfolio.AreaColors(areas),
	}
}

// RegisterRoutes registers all REST routes with Huma.
func (h *Handler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
	huma.Get(api, "/api/v1/areas", h.GetAreas, huma.OperationTags("filter"))
	huma.Get(api, "/api/v1/filter", h.GetFilter, huma.OperationTags("filter"))
	huma.Put(api, "/api/v1/filter", h.PutFilter, huma.OperationTags("filter"))
	huma.Get(api, "/api/v1/stats", h.GetStats, huma.OperationTags("stats"))
	huma.Get(api, "/api/v1/map/filters", h.GetMapFilters, huma.OperationTags("map"))
}

// Types

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
}

type SelectionOutput struct {
	Body portfolio.Selection
}

type AreasBody struct {
	Areas         []portfolio.Area `json:"areas" doc:"Service areas in display order, with color tokens"`
	PropertyTypes []string         `json:"propertyTypes" doc:"Property-type filter choices"`
	Ownerships    []string         `json:"ownerships" doc:"Ownership filter choices"`
}

type StatsBody struct {
	Rows     []portfolio.AreaStats `json:"rows" doc:"Per-area rows plus an optional Total row"`
	Headline portfolio.Headline    `json:"headline" doc:"Figures over the full filtered set"`
	Panel    portfolio.Panel       `json:"panel" doc:"Display-ready stats panel"`
}

type MapFiltersBody struct {
	Filters portfolio.MapFilters `json:"filters" doc:"MapLibre filter expressions per layer"`
	Bounds  []float64            `json:"bounds" doc:"Portfolio extent as [west, south, east, north]"`
}

// Handlers

func (h *Handler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: "1.0.0"}}, nil
}

func (h *Handler) GetAreas(ctx context.Context, input *struct{}) (*struct{ Body AreasBody }, error) {
	return &struct{ Body AreasBody }{Body: AreasBody{
		Areas:         h.areas,
		PropertyTypes: portfolio.PropertyTypes,
		Ownerships:    []string{portfolio.OwnershipAll, "Owned", "Leased"},
	}}, nil
}

func (h *Handler) GetFilter(ctx context.Context, input *struct{}) (*SelectionOutput, error) {
	return &SelectionOutput{Body: h.state.Selection()}, nil
}

func (h *Handler) PutFilter(ctx context.Context, input *struct{ Body portfolio.Selection }) (*SelectionOutput, error) {
	applied := h.state.Replace(input.Body)
	return &SelectionOutput{Body: applied}, nil
}

func (h *Handler) GetStats(ctx context.Context, input *struct{}) (*struct{ Body StatsBody }, error) {
	sel := h.state.Selection()
	filtered := h.data.Filtered(h.state.Filter())
	rows := portfolio.Aggregate(filtered.Features, sel.ServiceAreas)
	headline := portfolio.HeadlineOver(filtered.Features, sel)

	return &struct{ Body StatsBody }{Body: StatsBody{
		Rows:     rows,
		Headline: headline,
		Panel:    portfolio.Present(rows, headline, sel, h.colors),
	}}, nil
}

func (h *Handler) GetMapFilters(ctx context.Context, input *struct{}) (*struct{ Body MapFiltersBody }, error) {
	sel := h.state.Selection()
	bound := h.data.Bound()

	return &struct{ Body MapFiltersBody }{Body: MapFiltersBody{
		Filters: portfolio.LayerFilters(sel, h.state.AllAreas()),
		Bounds:  []float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]},
	}}, nil
}
