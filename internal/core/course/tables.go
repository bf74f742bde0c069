package course

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables holds the site lists and keyword tables the detector is built from.
// Exclude phrases are blanked out of the heading before that course's
// keywords are tried, so "pot pie" is not a dessert.
type Tables struct {
	CocktailSites []string            `yaml:"cocktail_sites"`
	BBQSites      []string            `yaml:"bbq_sites"`
	Spirits       []string            `yaml:"spirits"`
	Woods         []string            `yaml:"woods"`
	Keywords      map[Course][]string `yaml:"keywords"`
	Exclude       map[Course][]string `yaml:"exclude"`
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() *Tables {
	t := &Tables{
		CocktailSites: []string{
			"liquor.com", "diffordsguide.com", "punchdrink.com", "imbibemagazine.com",
			"kindredcocktails.com", "cocktailsdistilled.com", "seriouseats.com/cocktails",
			"thecocktailproject.com", "tuxedono2.com", "educatedbarfly.com",
		},
		BBQSites: []string{
			"amazingribs.com", "meatchurch.com", "heygrillhey.com", "smokingmeatforums.com",
			"virtualweberbullet.com", "howtobbqright.com", "smokedbbqsource.com",
			"traeger.com", "bbqpitboys.com", "thebarbecuelab.com",
		},
		Spirits: []string{
			"rum", "vodka", "gin", "tequila", "mezcal", "whiskey", "whisky", "bourbon",
			"rye whiskey", "scotch", "brandy", "cognac", "vermouth", "campari", "aperol",
			"triple sec", "cointreau", "grand marnier", "amaretto", "kahlua", "absinthe",
			"chartreuse", "pisco", "cachaca", "bitters", "simple syrup",
		},
		Woods: []string{
			"hickory", "mesquite", "applewood", "apple wood", "cherry wood", "cherrywood",
			"pecan wood", "oak wood", "alder", "maple wood", "wood chips", "wood chunks",
			"smoking chips", "pellets",
		},
		Keywords: map[Course][]string{
			Drinks: {
				"cocktail", "mocktail", "martini", "margarita", "mojito", "daiquiri", "negroni",
				"old fashioned", "manhattan", "sangria", "smoothie", "lemonade", "spritz",
				"whiskey sour", "pisco sour", "highball", "julep", "hot toddy", "eggnog",
				"milkshake", "punch", "drink", "shrub", "sazerac", "gimlet", "paloma",
			},
			Smoking: {
				"smoked", "smoker", "smoking", "brisket", "pulled pork", "burnt ends", "barbecue",
				"bbq", "cold smoke", "hot smoke", "pellet grill", "kamado", "low and slow",
				"pork butt", "spare ribs", "baby back ribs",
			},
			Modernist: {
				"sous vide", "spherification", "reverse spherification", "agar", "sodium alginate",
				"calcium chloride", "calcium lactate", "xanthan gum", "transglutaminase",
				"lecithin", "maltodextrin", "methylcellulose", "gellan", "liquid nitrogen",
				"modernist", "foam", "caviar pearls",
			},
			Breads: {
				"bread", "loaf", "baguette", "focaccia", "sourdough", "brioche", "ciabatta",
				"dinner rolls", "buns", "bagel", "pita", "naan", "challah", "flatbread",
				"pizza dough", "english muffin", "boule", "batard", "rye bread",
			},
			Pickles: {
				"pickle", "pickled", "ferment", "fermented", "kimchi", "sauerkraut",
				"giardiniera", "escabeche", "preserved lemons", "quick pickle", "brine",
			},
			Rubs: {
				"rub", "dry rub", "spice blend", "spice mix", "seasoning", "seasoning blend",
				"marinade", "brine mix",
			},
			Sauces: {
				"sauce", "gravy", "dressing", "vinaigrette", "aioli", "mayonnaise", "pesto",
				"salsa", "chutney", "glaze", "coulis", "ketchup", "hollandaise", "bechamel",
				"chimichurri", "condiment", "hot sauce", "jam",
			},
			Soup: {
				"soup", "stew", "chowder", "bisque", "chili", "gumbo", "broth", "ramen", "pho",
				"gazpacho", "minestrone", "consomme", "stock",
			},
			Desserts: {
				"cake", "cookie", "brownie", "pie", "tart", "pudding", "ice cream", "sorbet",
				"cheesecake", "cupcake", "fudge", "mousse", "custard", "dessert", "cobbler",
				"crumble", "macaron", "panna cotta", "tiramisu", "frosting", "candy", "truffle",
				"blondie", "meringue", "gelato", "souffle",
			},
			Brunch: {
				"pancake", "waffle", "french toast", "omelet", "omelette", "frittata", "quiche",
				"eggs benedict", "breakfast", "brunch", "granola", "hash brown", "scone",
				"muffin", "crepe", "shakshuka",
			},
			Apps: {
				"appetizer", "starter", "dip", "bruschetta", "crostini", "canape", "deviled eggs",
				"wings", "sliders", "nachos", "hummus", "tapenade", "spring rolls", "finger food",
				"snack", "antipasto", "crudite", "meatballs",
			},
			Sides: {
				"side", "side dish", "salad", "slaw", "coleslaw", "mashed potatoes",
				"roasted vegetables", "pilaf", "fries", "gratin", "succotash", "green beans",
				"roasted potatoes", "stuffing", "rice",
			},
		},
		Exclude: map[Course][]string{
			Desserts: {"pot pie", "shepherd's pie", "shepherds pie", "cottage pie", "pork pie", "meat pie"},
		},
	}
	return t
}

// Merge appends the entries of other onto t.
func (t *Tables) Merge(other *Tables) {
	if other == nil {
		return
	}
	t.CocktailSites = append(t.CocktailSites, other.CocktailSites...)
	t.BBQSites = append(t.BBQSites, other.BBQSites...)
	t.Spirits = append(t.Spirits, other.Spirits...)
	t.Woods = append(t.Woods, other.Woods...)
	if t.Keywords == nil {
		t.Keywords = make(map[Course][]string)
	}
	for c, words := range other.Keywords {
		t.Keywords[c] = append(t.Keywords[c], words...)
	}
	if t.Exclude == nil {
		t.Exclude = make(map[Course][]string)
	}
	for c, words := range other.Exclude {
		t.Exclude[c] = append(t.Exclude[c], words...)
	}
}

// LoadTables reads a YAML extension file and merges it onto the defaults.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read course tables: %w", err)
	}
	var ext Tables
	if err := yaml.Unmarshal(data, &ext); err != nil {
		return nil, fmt.Errorf("parse course tables: %w", err)
	}
	for _, m := range []map[Course][]string{ext.Keywords, ext.Exclude} {
		for c := range m {
			if !c.Valid() {
				return nil, fmt.Errorf("course tables: unknown course %q", c)
			}
		}
	}
	t := DefaultTables()
	t.Merge(&ext)
	return t, nil
}
