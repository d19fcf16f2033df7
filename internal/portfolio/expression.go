package portfolio

// Expr is a MapLibre GL filter expression tree. It marshals to the JSON
// array form the browser map expects, e.g. ["==", ["get", "x"], "y"].
type Expr = []any

// MapFilters carries the per-layer filter expressions the render binding
// pushes to the browser map on every selection change. Building them from
// the same Selection the predicate uses keeps the visual filter and the
// stats in lockstep.
type MapFilters struct {
	Points      Expr `json:"points" doc:"Filter for the portfolio point layer(s)"`
	AreaFill    Expr `json:"areaFill" doc:"Filter for the service-area polygon layer"`
	AreaOutline Expr `json:"areaOutline" doc:"Filter for the service-area outline layer"`
	AreaLabels  Expr `json:"areaLabels" doc:"Filter for the service-area label layer"`
}

// LayerFilters translates a selection into MapLibre filter expressions.
// Pure and deterministic: reapplying the same selection yields the same
// expressions, so pushes to the map are idempotent.
func LayerFilters(sel Selection, allAreas []string) MapFilters {
	f := NewFilter(sel, allAreas)

	conds := Expr{"all"}

	if sel.Ownership != "" && sel.Ownership != OwnershipAll {
		conds = append(conds, eq(get(PropOwnership), sel.Ownership))
	}
	if typeExpr := propertyTypeExpr(sel.PropertyType); typeExpr != nil {
		conds = append(conds, typeExpr)
	}
	if f.AreaFilterActive() {
		conds = append(conds, inList(get(PropServiceArea), sel.ServiceAreas))
	}
	if !sel.ShowLongstreet {
		conds = append(conds, Expr{"!=", get(PropLongstreet), longstreetYes})
	}

	// Boundary, outline, and label layers filter on the area name only;
	// the other dimensions apply to portfolio points, not boundaries.
	areaExpr := Expr{"all"}
	if f.AreaFilterActive() {
		areaExpr = inList(get("name"), sel.ServiceAreas)
	}

	return MapFilters{
		Points:      conds,
		AreaFill:    areaExpr,
		AreaOutline: areaExpr,
		AreaLabels:  areaExpr,
	}
}

// propertyTypeExpr builds the tagged conditional for the property-type
// dimension: equality for explicit categories, a slice comparison for the
// Medical Office prefix, and set exclusion for "Other". Returns nil when
// the dimension is inactive.
func propertyTypeExpr(selected string) Expr {
	switch selected {
	case "", TypeAll:
		return nil
	case TypeMedicalOffice:
		return medicalOfficePrefix()
	case TypeOther:
		return Expr{"all",
			Expr{"!", inList(get(PropBuildingType), otherExcluded)},
			Expr{"!", medicalOfficePrefix()},
		}
	default:
		return eq(get(PropBuildingType), selected)
	}
}

// medicalOfficePrefix matches building types starting with the literal
// "Medical Office", mirroring strings.HasPrefix in the predicate.
func medicalOfficePrefix() Expr {
	return eq(Expr{"slice", get(PropBuildingType), 0, len(TypeMedicalOffice)}, TypeMedicalOffice)
}

func get(key string) Expr {
	return Expr{"get", key}
}

func eq(lhs any, rhs any) Expr {
	return Expr{"==", lhs, rhs}
}

func inList(needle any, values []string) Expr {
	literal := make([]any, len(values))
	for i, v := range values {
		literal[i] = v
	}
	return Expr{"in", needle, Expr{"literal", literal}}
}
