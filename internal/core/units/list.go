package units

// UnitCarrier is anything holding a unit field that can be rewritten in place.
type UnitCarrier interface {
	GetUnit() string
	SetUnit(unit string)
}

// NormalizeUnitsInList rewrites every item's unit to its canonical
// abbreviation. Items without a unit are left alone.
func NormalizeUnitsInList(items []UnitCarrier) {
	for _, item := range items {
		if item == nil {
			continue
		}
		if u := item.GetUnit(); u != "" {
			item.SetUnit(Normalize(u))
		}
	}
}
