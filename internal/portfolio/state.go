package portfolio

import "sync"

// FilterState is the single source of truth for the current selection,
// consumed by both the render binding and the stats computation. Every
// setter publishes a change event synchronously; handlers re-read the
// state and recompute from scratch, so rapid toggling is last-write-wins.
type FilterState struct {
	mu       sync.RWMutex
	sel      Selection
	allAreas []string
	bus      *EventBus
}

// NewFilterState creates filter state initialized to the "show everything"
// defaults over the given service-area enumeration.
func NewFilterState(allAreas []string, bus *EventBus) *FilterState {
	return &FilterState{
		sel:      DefaultSelection(allAreas),
		allAreas: append([]string(nil), allAreas...),
		bus:      bus,
	}
}

// Selection returns a copy of the current selection.
func (s *FilterState) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copySelection()
}

// Filter compiles the current selection into a predicate.
func (s *FilterState) Filter() *Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NewFilter(s.copySelection(), s.allAreas)
}

// AllAreas returns the full service-area enumeration, in display order.
func (s *FilterState) AllAreas() []string {
	return append([]string(nil), s.allAreas...)
}

// SetOwnership updates the ownership dimension.
func (s *FilterState) SetOwnership(ownership string) {
	if ownership == "" {
		ownership = OwnershipAll
	}
	s.update("ownership", func(sel *Selection) { sel.Ownership = ownership })
}

// SetPropertyType updates the property-type dimension.
func (s *FilterState) SetPropertyType(propertyType string) {
	if propertyType == "" {
		propertyType = TypeAll
	}
	s.update("propertyType", func(sel *Selection) { sel.PropertyType = propertyType })
}

// SetServiceAreas updates the service-area set. An empty selection is
// corrected to the full enumeration here, at the setter boundary, so
// downstream consumers never see it. Unknown names are dropped; selection
// order follows the enumeration order.
func (s *FilterState) SetServiceAreas(areas []string) {
	ordered := s.normalizeAreas(areas)
	s.update("serviceAreas", func(sel *Selection) { sel.ServiceAreas = ordered })
}

// SetShowLongstreet updates the Longstreet toggle.
func (s *FilterState) SetShowLongstreet(show bool) {
	s.update("longstreet", func(sel *Selection) { sel.ShowLongstreet = show })
}

// Replace swaps in a whole selection at once, applying the same
// normalization as the individual setters.
func (s *FilterState) Replace(sel Selection) Selection {
	if sel.Ownership == "" {
		sel.Ownership = OwnershipAll
	}
	if sel.PropertyType == "" {
		sel.PropertyType = TypeAll
	}
	sel.ServiceAreas = s.normalizeAreas(sel.ServiceAreas)

	s.mu.Lock()
	s.sel = sel
	applied := s.copySelection()
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(Event{Dimension: "all", Selection: applied})
	}
	return applied
}

func (s *FilterState) update(dimension string, mutate func(*Selection)) {
	s.mu.Lock()
	mutate(&s.sel)
	applied := s.copySelection()
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(Event{Dimension: dimension, Selection: applied})
	}
}

// normalizeAreas drops unknown names, re-orders to the enumeration order,
// and treats an empty result as "select all".
func (s *FilterState) normalizeAreas(areas []string) []string {
	selected := make(map[string]bool, len(areas))
	for _, a := range areas {
		selected[a] = true
	}

	var ordered []string
	for _, a := range s.allAreas {
		if selected[a] {
			ordered = append(ordered, a)
		}
	}
	if len(ordered) == 0 {
		return append([]string(nil), s.allAreas...)
	}
	return ordered
}

// copySelection must be called with the lock held.
func (s *FilterState) copySelection() Selection {
	sel := s.sel
	sel.ServiceAreas = append([]string(nil), s.sel.ServiceAreas...)
	return sel
}
