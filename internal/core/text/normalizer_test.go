package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lower", "all-purpose flour", "All-Purpose Flour"},
		{"upper", "EXTRA VIRGIN OLIVE OIL", "Extra Virgin Olive Oil"},
		{"connectors", "cream of mushroom soup", "Cream of Mushroom Soup"},
		{"leading connector", "the best salt", "The Best Salt"},
		{"trailing punctuation", "salt and pepper,", "Salt and Pepper"},
		{"whitespace", "  fresh \t basil   leaves ", "Fresh Basil Leaves"},
		{"apostrophe", "baker's yeast", "Baker's Yeast"},
		{"empty", "   ", ""},
		{"only punctuation", ",;", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanName(tt.input))
		})
	}
}

func TestCleanNameIdempotent(t *testing.T) {
	inputs := []string{
		"all-purpose flour",
		"CREAM OF TARTAR.",
		"salt and pepper, to taste",
		"a pinch of Salt",
		"  jalapeño   peppers ",
		"For the Sauce:",
	}
	for _, in := range inputs {
		once := CleanName(in)
		assert.Equal(t, once, CleanName(once), "input %q", in)
	}
}

func TestCleanNameConnectors(t *testing.T) {
	want := []string{"a", "an", "the", "and", "or", "of", "for", "to", "in", "on", "at", "by", "with"}
	assert.Len(t, connectors, len(want))
	for _, w := range want {
		assert.True(t, connectors[w], w)
		assert.Equal(t, "Salt "+w+" Pepper", CleanName("salt "+w+" pepper"))
	}

	assert.Equal(t, "Bread From Scratch", CleanName("bread from scratch"))
	assert.Equal(t, "Crème De Menthe", CleanName("crème de menthe"))
	assert.Equal(t, "Served As Is", CleanName("served as is"))
	assert.Equal(t, "Cut Into Cubes", CleanName("cut into cubes"))
}

func TestNormalizeFractions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1/2", "½"},
		{"0.5", "½"},
		{".5 cup", "½ cup"},
		{"1 1/2", "1½"},
		{"1-1/2 cups", "1½ cups"},
		{"2 3/4 cups flour", "2¾ cups flour"},
		{"1/3 cup", "⅓ cup"},
		{"0.333 cup", "⅓ cup"},
		{"0.66 cup", "⅔ cup"},
		{"0.666 cup", "⅔ cup"},
		{"0.166 cup", "⅙ cup"},
		{"0.833 cup", "⅚ cup"},
		{"0.25 tsp", "¼ tsp"},
		{"1.5 lbs", "1½ lbs"},
		{"1 ½ cups", "1½ cups"},
		{"0.55 oz", "0.55 oz"},
		{"5/16 inch", "5/16 inch"},
		{"1/2/2020", "1/2/2020"},
		{"1.0 cup", "1.0 cup"},
		{"no numbers here", "no numbers here"},
		{"v1.5", "v1.5"},
		{"ab1/2", "ab1/2"},
		{"2.5%", "2.5%"},
		{"0.5 % salt", "0.5 % salt"},
		{"1/2 %", "1/2 %"},
		{"2.5% - 12.5g", "2.5% - 12½g"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFractions(tt.input))
		})
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "1/2 cup baker's sugar", Clean("1⁄2 cup baker’s  sugar"))
	assert.Equal(t, `"fancy" salt`, Clean("“fancy” salt"))
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "jalapeno", FoldAccents("Jalapeño"))
	assert.Equal(t, "creme fraiche", FoldAccents("Crème Fraîche"))
}
