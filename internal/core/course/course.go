package course

// Course is a recipe-level category label.
type Course string

const (
	Mains     Course = "Mains"
	Apps      Course = "Apps"
	Sides     Course = "Sides"
	Soup      Course = "Soup"
	Sauces    Course = "Sauces"
	Desserts  Course = "Desserts"
	Drinks    Course = "Drinks"
	Breads    Course = "Breads"
	Brunch    Course = "Brunch"
	Pickles   Course = "Pickles"
	Rubs      Course = "Rubs"
	Smoking   Course = "Smoking"
	Modernist Course = "Modernist"
)

var all = []Course{Mains, Apps, Sides, Soup, Sauces, Desserts, Drinks, Breads, Brunch, Pickles, Rubs, Smoking, Modernist}

// All returns every course label.
func All() []Course {
	out := make([]Course, len(all))
	copy(out, all)
	return out
}

func (c Course) Valid() bool {
	for _, v := range all {
		if v == c {
			return true
		}
	}
	return false
}

func (c Course) String() string { return string(c) }

// Result is the outcome of classifying one recipe.
type Result struct {
	Course     Course  `json:"course"`
	Confidence float64 `json:"confidence"`
	Rule       string  `json:"rule,omitempty"`
}

// Input carries the signals used by DetectWithIngredients.
type Input struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Ingredients []string `json:"ingredients"`
}
