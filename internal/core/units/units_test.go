package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"tablespoons", "Tbsp"},
		{"tbsp.", "Tbsp"},
		{"T", "Tbsp"},
		{"t", "tsp"},
		{"Teaspoon", "tsp"},
		{"cups", "C"},
		{"c.", "C"},
		{"grams", "g"},
		{"Pounds", "lb"},
		{"fl oz", "fl oz"},
		{"cloves", "clove"},
		{"smidgen", "smidgen"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		unit   string
		amount string
		want   string
	}{
		{"cups", "2", "cups"},
		{"cup", "1", "cup"},
		{"cups", "½", "cup"},
		{"cup", "1½", "cups"},
		{"cup", "1-2", "cups"},
		{"pound", "2", "lbs"},
		{"tablespoons", "3", "Tbsp"},
		{"clove", "4", "cloves"},
		{"pinch", "2", "pinches"},
		{"leaf", "6", "leaves"},
		{"smidgen", "2", "smidgen"},
	}
	for _, tt := range tests {
		t.Run(tt.unit+"/"+tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, Pluralize(tt.unit, tt.amount))
		})
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		amount string
		want   float64
		ok     bool
	}{
		{"2", 2, true},
		{"1½", 1.5, true},
		{"1 1/2", 1.5, true},
		{"3/4", 0.75, true},
		{"½", 0.5, true},
		{"1.25", 1.25, true},
		{"2-3", 3, true},
		{"1 to 2", 2, true},
		{"", 0, false},
		{"some", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got, ok := Value(tt.amount)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestIsUnit(t *testing.T) {
	assert.True(t, IsUnit("cups"))
	assert.True(t, IsUnit("Tbsp."))
	assert.True(t, IsUnit("T"))
	assert.False(t, IsUnit("eggs"))
	assert.False(t, IsUnit(""))
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 hour 30 minutes", "1h 30m"},
		{"45 mins", "45m"},
		{"2 hrs 15 min", "2h 15m"},
		{"4h30m", "4h 30m"},
		{"1.5 hours", "1h 30m"},
		{"1 day 2 hours", "1d 2h"},
		{"PT1H30M", "1h 30m"},
		{"PT45M", "45m"},
		{"P1DT2H", "1d 2h"},
		{"overnight", "overnight"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTime(tt.input))
		})
	}
}

func TestNormalizeServes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Serves 4", "4"},
		{"4-6 servings", "4-6"},
		{"Serves 4 to 6 people", "4-6"},
		{"Makes about 24 cookies", "24"},
		{" a crowd ", "a crowd"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeServes(tt.input))
		})
	}
}

type listItem struct {
	unit string
}

func (i *listItem) GetUnit() string     { return i.unit }
func (i *listItem) SetUnit(unit string) { i.unit = unit }

func TestNormalizeUnitsInList(t *testing.T) {
	a := &listItem{unit: "cups"}
	b := &listItem{unit: "Tablespoons"}
	c := &listItem{}
	d := &listItem{unit: "smidgen"}

	NormalizeUnitsInList([]UnitCarrier{a, b, c, nil, d})

	assert.Equal(t, "C", a.unit)
	assert.Equal(t, "Tbsp", b.unit)
	assert.Equal(t, "", c.unit)
	assert.Equal(t, "smidgen", d.unit)
}
