package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterState_Defaults(t *testing.T) {
	state := NewFilterState(testAreas, nil)

	sel := state.Selection()
	assert.Equal(t, OwnershipAll, sel.Ownership)
	assert.Equal(t, TypeAll, sel.PropertyType)
	assert.Equal(t, testAreas, sel.ServiceAreas)
	assert.True(t, sel.ShowLongstreet)
}

func TestFilterState_EmptyAreasSelectsAll(t *testing.T) {
	state := NewFilterState(testAreas, nil)
	state.SetServiceAreas([]string{"Habersham"})
	state.SetServiceAreas(nil)

	assert.Equal(t, testAreas, state.Selection().ServiceAreas,
		"clearing every checkbox must fall back to the full set")
}

func TestFilterState_AreasNormalized(t *testing.T) {
	state := NewFilterState(testAreas, nil)
	state.SetServiceAreas([]string{"Lumpkin", "Atlantis", "Gainesville"})

	assert.Equal(t, []string{"Gainesville", "Lumpkin"}, state.Selection().ServiceAreas,
		"unknown names dropped, order follows the enumeration")
}

func TestFilterState_EmptyStringsResetToDefaults(t *testing.T) {
	state := NewFilterState(testAreas, nil)
	state.SetOwnership("Owned")
	state.SetPropertyType("Hospital")

	state.SetOwnership("")
	state.SetPropertyType("")

	sel := state.Selection()
	assert.Equal(t, OwnershipAll, sel.Ownership)
	assert.Equal(t, TypeAll, sel.PropertyType)
}

func TestFilterState_PublishesEvents(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe()
	defer bus.Unsubscribe(ch)

	state := NewFilterState(testAreas, bus)
	state.SetOwnership("Leased")

	select {
	case ev := <-ch:
		assert.Equal(t, "ownership", ev.Dimension)
		assert.Equal(t, "Leased", ev.Selection.Ownership)
	default:
		t.Fatal("setter did not publish a change event")
	}

	state.SetShowLongstreet(false)
	select {
	case ev := <-ch:
		assert.Equal(t, "longstreet", ev.Dimension)
		assert.False(t, ev.Selection.ShowLongstreet)
	default:
		t.Fatal("toggle did not publish a change event")
	}
}

func TestFilterState_ReplaceNormalizes(t *testing.T) {
	state := NewFilterState(testAreas, nil)

	applied := state.Replace(Selection{
		ServiceAreas:   []string{"Nowhere"},
		ShowLongstreet: false,
	})

	assert.Equal(t, OwnershipAll, applied.Ownership)
	assert.Equal(t, TypeAll, applied.PropertyType)
	assert.Equal(t, testAreas, applied.ServiceAreas, "all-unknown selection falls back to the full set")
	assert.False(t, applied.ShowLongstreet)
	assert.Equal(t, applied, state.Selection())
}

func TestFilterState_SelectionIsACopy(t *testing.T) {
	state := NewFilterState(testAreas, nil)

	sel := state.Selection()
	sel.ServiceAreas[0] = "Mutated"
	sel.Ownership = "Mutated"

	fresh := state.Selection()
	assert.Equal(t, "Gainesville", fresh.ServiceAreas[0], "callers must not share the internal slice")
	assert.Equal(t, OwnershipAll, fresh.Ownership)
}

func TestFilterState_FilterReflectsSelection(t *testing.T) {
	state := NewFilterState(testAreas, nil)
	state.SetServiceAreas([]string{"Habersham"})

	f := state.Filter()
	require.True(t, f.AreaFilterActive())
	assert.True(t, f.Matches(map[string]any{PropServiceArea: "Habersham"}))
	assert.False(t, f.Matches(map[string]any{PropServiceArea: "Barrow"}))
}

func TestEventBus_PublishNeverBlocks(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe()
	defer bus.Unsubscribe(ch)

	// Overfill the subscriber buffer; Publish must drop, not deadlock.
	for i := 0; i < 100; i++ {
		bus.Publish(Event{Dimension: "ownership"})
	}
	assert.NotEmpty(t, ch)
}
