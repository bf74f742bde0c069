package ingredient

import (
	"regexp"
	"sort"
	"strings"
)

// compoundModifiers must be tried before the single words they contain.
var compoundModifiers = []string{
	"cooked and drained",
	"drained and rinsed",
	"rinsed and drained",
	"peeled and deveined",
	"peeled and diced",
	"peeled and chopped",
	"peeled and sliced",
	"peeled and grated",
	"peeled and minced",
	"seeded and diced",
	"seeded and chopped",
	"seeded and minced",
	"stemmed and chopped",
	"pitted and halved",
	"pitted and chopped",
	"halved and sliced",
	"cored and sliced",
	"cored and chopped",
	"trimmed and sliced",
	"trimmed and halved",
	"skin removed",
	"bones removed",
	"cut up",
}

var singleModifiers = []string{
	// knife work
	"chopped", "diced", "minced", "sliced", "grated", "shredded", "cubed", "julienned",
	"halved", "quartered", "crumbled", "mashed", "torn", "crushed", "zested", "juiced",
	"spiralized", "shaved", "ground",
	// prep
	"peeled", "seeded", "deseeded", "pitted", "cored", "stemmed", "trimmed", "rinsed",
	"drained", "washed", "scrubbed", "thawed", "defrosted", "sifted", "packed", "divided",
	"beaten", "whisked", "melted", "softened", "chilled", "cooled", "warmed", "toasted",
	"roasted", "cooked", "uncooked", "blanched", "squeezed", "separated", "patted dry",
	"at room temperature", "room temperature", "to taste", "for garnish", "for serving",
	"for dusting", "for frying", "for greasing", "as needed", "optional",
	// butchery
	"de-boned", "deboned", "boneless", "skinless", "skin-on", "bone-in", "butterflied",
	"frenched", "deveined", "shelled", "cleaned", "filleted", "tails removed",
}

var adverbs = []string{
	"finely", "coarsely", "roughly", "thinly", "thickly", "lightly", "freshly", "well",
	"very", "firmly", "loosely", "gently", "slightly", "fully", "just", "evenly",
}

// bareModifiers may end a line without a separating comma ("salt to taste").
var bareModifiers = []string{
	"to taste", "divided", "optional", "softened", "melted", "at room temperature",
	"room temperature", "for garnish", "for serving", "for dusting", "for frying",
	"for greasing", "as needed",
}

// leadingModifiers may open a name ("chopped onion"). Words that are also
// part of product names (ground, crushed, toasted) are left out.
var leadingModifiers = []string{
	"chopped", "diced", "minced", "sliced", "grated", "shredded", "cubed", "julienned",
	"halved", "quartered", "melted", "softened", "beaten", "peeled", "sifted", "packed",
	"boneless", "skinless", "bone-in", "skin-on", "trimmed", "rinsed", "drained",
	"deveined", "pitted", "seeded",
}

// instructionWords mark a line as a method step rather than an ingredient.
var instructionWords = []string{
	"preheat", "bake", "stir", "until", "degrees", "simmer", "whisk", "combine",
	"transfer", "meanwhile", "refrigerate", "oven", "set aside", "bring to a boil",
	"in a large", "in a medium", "in a small", "remove from",
}

// sectionDenylist holds words that make an ALL-CAPS line an ingredient, not a header.
var sectionDenylist = map[string]bool{
	"TSP": true, "TBSP": true, "CUP": true, "CUPS": true, "OZ": true, "LB": true, "LBS": true,
	"G": true, "KG": true, "ML": true, "L": true, "PINCH": true, "DASH": true,
	"SALT": true, "PEPPER": true, "TO": true, "TASTE": true, "OPTIONAL": true,
	"DIVIDED": true, "CHOPPED": true, "DICED": true, "MINCED": true, "SLICED": true,
	"MELTED": true, "SOFTENED": true, "WATER": true, "ICE": true,
}

// wordNumbers are spelled-out quantities accepted at the start of a line.
var wordNumbers = map[string]string{
	"a": "1", "an": "1", "one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10", "eleven": "11",
	"twelve": "12", "dozen": "12", "a dozen": "12", "half": "½", "a half": "½",
	"quarter": "¼", "a quarter": "¼", "one half": "½", "one quarter": "¼",
}

// partsOf are the "X" words in "X of Y" lines such as "Juice of 1 lemon".
var partsOf = []string{
	"juice and zest", "zest and juice", "finely grated zest", "grated zest",
	"juice", "zest", "rind", "peel", "seeds", "leaves", "florets", "whites", "white",
	"yolks", "yolk", "flesh", "pulp", "segments", "kernels",
}

// alternation joins phrases longest first as a regexp group. Spaces inside a
// phrase accept any whitespace run.
func alternation(phrases ...[]string) string {
	var all []string
	for _, list := range phrases {
		all = append(all, list...)
	}
	sort.SliceStable(all, func(i, j int) bool { return len(all[i]) > len(all[j]) })
	quoted := make([]string, len(all))
	for i, p := range all {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(p), " ", `\s+`)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

// modifierPattern keeps compound modifiers ahead of single ones regardless
// of length so "peeled and diced" is consumed whole.
func modifierPattern() string {
	return "(?:" + alternation(compoundModifiers) + "|" + alternation(singleModifiers) + ")"
}
