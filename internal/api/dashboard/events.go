package dashboard

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wright-research/nghs-portfolio/internal/humastar"
)

// Events streams filter changes to the page. Any mutation of the shared
// filter state re-renders the stats panel and refreshes the map filter
// signals, whether it came from this page's controls or elsewhere.
func (h *Handler) Events(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		ch := h.bus.Subscribe()
		defer h.bus.Unsubscribe(ch)

		// Initial render so a freshly opened page shows current state.
		h.push(sse)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				h.push(sse)
			}
		}
	}), nil
}
