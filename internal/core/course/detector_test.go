package course

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectWithIngredients(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		wantCourse Course
		wantConf   float64
	}{
		{
			name: "known bbq site wins over title",
			input: Input{
				Title: "Perfect Chocolate Cake",
				URL:   "https://amazingribs.com/recipes/chocolate-cake",
			},
			wantCourse: Smoking,
			wantConf:   0.95,
		},
		{
			name:       "known cocktail site",
			input:      Input{Title: "Classic Salad", URL: "https://www.liquor.com/recipes/classic/"},
			wantCourse: Drinks,
			wantConf:   0.95,
		},
		{
			name: "spirits in ingredients beat unrelated title",
			input: Input{
				Title:       "Summer Punch",
				URL:         "https://example.com/summer",
				Ingredients: []string{"2 cups rum", "1 cup simple syrup", "Juice of 2 limes"},
			},
			wantCourse: Drinks,
			wantConf:   0.75,
		},
		{
			name: "salad title with rum is still a drink",
			input: Input{
				Title:       "Summer Salad",
				Ingredients: []string{"Rum", "Simple Syrup"},
			},
			wantCourse: Drinks,
			wantConf:   0.75,
		},
		{
			name: "wood in ingredients means smoking",
			input: Input{
				Title:       "Sunday Pork Shoulder",
				Ingredients: []string{"1 pork shoulder", "2 cups hickory chips"},
			},
			wantCourse: Smoking,
			wantConf:   0.8,
		},
		{
			name: "modernist technique in ingredients",
			input: Input{
				Title:       "Mango Pearls",
				Ingredients: []string{"2 g sodium alginate", "1 cup mango puree"},
			},
			wantCourse: Modernist,
			wantConf:   0.75,
		},
		{
			name: "flour and yeast mean bread",
			input: Input{
				Title:       "Grandma's Recipe",
				Ingredients: []string{"3 cups flour", "1 packet yeast", "1 cup water"},
			},
			wantCourse: Breads,
			wantConf:   0.75,
		},
		{
			name: "flour alone is not bread",
			input: Input{
				Title:       "Grandma's Recipe",
				Ingredients: []string{"3 cups flour", "1 cup water"},
			},
			wantCourse: Mains,
			wantConf:   0.5,
		},
		{
			name:       "url slug with hyphens",
			input:      Input{Title: "Sunday Dinner", URL: "https://example.com/pulled-pork/"},
			wantCourse: Smoking,
			wantConf:   0.8,
		},
		{
			name:       "plain table from title",
			input:      Input{Title: "Chocolate Chip Cookies"},
			wantCourse: Desserts,
			wantConf:   0.7,
		},
		{
			name:       "default mains",
			input:      Input{Title: "Weeknight Chicken Thighs"},
			wantCourse: Mains,
			wantConf:   0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectWithIngredients(tt.input)
			assert.Equal(t, tt.wantCourse, got.Course)
			assert.InDelta(t, tt.wantConf, got.Confidence, 0.001)
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		text       string
		wantCourse Course
		wantConf   float64
	}{
		{"Smoked Brisket", Smoking, 0.8},
		{"Classic Negroni", Drinks, 0.75},
		{"Rustic Sourdough Loaf", Breads, 0.75},
		{"Kimchi Fried Rice", Pickles, 0.75},
		{"Memphis Dry Rub", Rubs, 0.7},
		{"Basil Pesto", Sauces, 0.7},
		{"Chicken Noodle Soup", Soup, 0.75},
		{"Blueberry Pancakes", Brunch, 0.7},
		{"Spinach Artichoke Dip", Apps, 0.65},
		{"Garlic Mashed Potatoes", Sides, 0.6},
		{"Crème Brûlée Tarts", Desserts, 0.7},
		{"Apple Pie", Desserts, 0.7},
		{"Chicken Pot Pie", Mains, 0.5},
		{"Shepherd's Pie", Mains, 0.5},
		{"chicken-pot-pie", Mains, 0.5},
		{"2 oz rum", Mains, 0.5},
		{"", Mains, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := Detect(tt.text)
			assert.Equal(t, tt.wantCourse, got.Course)
			assert.InDelta(t, tt.wantConf, got.Confidence, 0.001)
		})
	}
}

func TestKeywordMatcher(t *testing.T) {
	re := keywordMatcher([]string{"pulled pork", "gin", "cookie"})
	require.NotNil(t, re)

	assert.True(t, re.MatchString("best pulled pork"))
	assert.True(t, re.MatchString("pulled_pork"))
	assert.True(t, re.MatchString("pulledpork"))
	assert.True(t, re.MatchString("gins of the world"))
	assert.True(t, re.MatchString("COOKIES"))
	assert.False(t, re.MatchString("ginger snaps"))
	assert.False(t, re.MatchString("cookiecutter"))

	assert.Nil(t, keywordMatcher(nil))
	assert.Nil(t, keywordMatcher([]string{" ", ""}))
}

func TestLoadTables(t *testing.T) {
	dir := t.TempDir()

	t.Run("extension appends to built-ins", func(t *testing.T) {
		path := filepath.Join(dir, "tables.yaml")
		data := []byte(`
bbq_sites:
  - smokehouse.example
keywords:
  Drinks:
    - switchel
`)
		require.NoError(t, os.WriteFile(path, data, 0o644))

		tables, err := LoadTables(path)
		require.NoError(t, err)
		assert.Contains(t, tables.BBQSites, "amazingribs.com")
		assert.Contains(t, tables.BBQSites, "smokehouse.example")
		assert.Contains(t, tables.Keywords[Drinks], "cocktail")
		assert.Contains(t, tables.Exclude[Desserts], "pot pie")

		d := NewDetector(tables)
		assert.Equal(t, Drinks, d.Detect("Maple Switchel").Course)

		got := d.DetectWithIngredients(Input{Title: "Cake", URL: "https://smokehouse.example/cake"})
		assert.Equal(t, Smoking, got.Course)
		assert.InDelta(t, 0.95, got.Confidence, 0.001)
	})

	t.Run("exclusions", func(t *testing.T) {
		path := filepath.Join(dir, "exclude.yaml")
		require.NoError(t, os.WriteFile(path, []byte("exclude:\n  Soup:\n    - stock pot\n"), 0o644))

		tables, err := LoadTables(path)
		require.NoError(t, err)
		d := NewDetector(tables)
		assert.Equal(t, Mains, d.Detect("Stock Pot Beans").Course)
		assert.Equal(t, Soup, d.Detect("Chicken Stock").Course)
	})

	t.Run("unknown course", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("keywords:\n  Snacks: [chips]\n"), 0o644))

		_, err := LoadTables(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTables(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestCourseValid(t *testing.T) {
	for _, c := range All() {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Course("Snacks").Valid())
	assert.Len(t, All(), 13)
}
