// Package ingredient turns a single free-text ingredient line into a
// structured record: amount, unit, name, preparation and friends.
package ingredient

// ParsedIngredient is the structured form of one ingredient line. Optional
// fields are empty when absent.
type ParsedIngredient struct {
	Original            string `json:"original"`
	Name                string `json:"name"`
	Amount              string `json:"amount,omitempty"`
	Unit                string `json:"unit,omitempty"`
	Preparation         string `json:"preparation,omitempty"`
	BakerPercent        string `json:"baker_percent,omitempty"`
	Alternative         string `json:"alternative,omitempty"`
	SectionName         string `json:"section_name,omitempty"`
	IsSection           bool   `json:"is_section"`
	LooksLikeIngredient bool   `json:"looks_like_ingredient"`
}

// GetUnit and SetUnit let parsed lines go through units.NormalizeUnitsInList.
func (p *ParsedIngredient) GetUnit() string     { return p.Unit }
func (p *ParsedIngredient) SetUnit(unit string) { p.Unit = unit }
