package dashboard

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wright-research/nghs-portfolio/internal/humastar"
)

// RegisterRoutes registers the dashboard SSE routes with Huma.
func (h *Handler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/dashboard/stats", h.Stats, huma.OperationTags("dashboard"))
	huma.Get(api, "/api/v1/dashboard/events", h.Events, huma.OperationTags("dashboard"))
	huma.Post(api, "/api/v1/dashboard/filter/ownership", h.SetOwnership, huma.OperationTags("dashboard"))
	huma.Post(api, "/api/v1/dashboard/filter/propertytype", h.SetPropertyType, huma.OperationTags("dashboard"))
	huma.Post(api, "/api/v1/dashboard/filter/serviceareas", h.SetServiceAreas, huma.OperationTags("dashboard"))
	huma.Post(api, "/api/v1/dashboard/filter/longstreet", h.SetLongstreet, huma.OperationTags("dashboard"))
}

// SetOwnership handles the ownership dropdown.
func (h *Handler) SetOwnership(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}

	return h.Stream(func(sse humastar.SSE) {
		h.state.SetOwnership(signals.String("ownership"))
		h.push(sse)
	}), nil
}

// SetPropertyType handles the property-type dropdown.
func (h *Handler) SetPropertyType(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}

	return h.Stream(func(sse humastar.SSE) {
		h.state.SetPropertyType(signals.String("propertytype"))
		h.push(sse)
	}), nil
}

// SetServiceAreas handles the multi-select service-area control. Clearing
// every checkbox selects all areas; the corrected set is pushed back so the
// controls reflect it.
func (h *Handler) SetServiceAreas(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}

	return h.Stream(func(sse humastar.SSE) {
		h.state.SetServiceAreas(signals.Strings("serviceareas"))
		h.push(sse)
	}), nil
}

// SetLongstreet handles the Longstreet toggle.
func (h *Handler) SetLongstreet(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}

	return h.Stream(func(sse humastar.SSE) {
		h.state.SetShowLongstreet(signals.Bool("showlongstreet"))
		h.push(sse)
	}), nil
}

// Stats renders the stats panel for the current selection, used on page load.
func (h *Handler) Stats(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		h.push(sse)
	}), nil
}
