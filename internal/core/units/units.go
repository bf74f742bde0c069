// Package units maps the many spellings of cooking units onto canonical
// abbreviations and renders them back as singular or plural display forms.
package units

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"recipe-ingest/internal/core/text"
)

// Canonical abbreviations.
const (
	Teaspoon   = "tsp"
	Tablespoon = "Tbsp"
	Cup        = "C"
	FluidOunce = "fl oz"
	Ounce      = "oz"
	Pound      = "lb"
	Pint       = "pt"
	Quart      = "qt"
	Gallon     = "gal"
	Milliliter = "ml"
	Centiliter = "cl"
	Deciliter  = "dl"
	Liter      = "l"
	Milligram  = "mg"
	Gram       = "g"
	Kilogram   = "kg"
)

// synonyms maps lower-case spellings to the canonical unit.
var synonyms = map[string]string{
	"teaspoon": Teaspoon, "teaspoons": Teaspoon, "tsp": Teaspoon, "tsps": Teaspoon,
	"tspn": Teaspoon, "ts": Teaspoon, "t": Teaspoon,

	"tablespoon": Tablespoon, "tablespoons": Tablespoon, "tbsp": Tablespoon, "tbsps": Tablespoon,
	"tbs": Tablespoon, "tbl": Tablespoon, "tbls": Tablespoon, "tblsp": Tablespoon, "tb": Tablespoon,

	"cup": Cup, "cups": Cup, "c": Cup,

	"fluid ounce": FluidOunce, "fluid ounces": FluidOunce, "fl oz": FluidOunce,
	"fl. oz": FluidOunce, "fl.oz": FluidOunce, "floz": FluidOunce,

	"ounce": Ounce, "ounces": Ounce, "oz": Ounce,
	"pound": Pound, "pounds": Pound, "lb": Pound, "lbs": Pound,

	"pint": Pint, "pints": Pint, "pt": Pint, "pts": Pint,
	"quart": Quart, "quarts": Quart, "qt": Quart, "qts": Quart,
	"gallon": Gallon, "gallons": Gallon, "gal": Gallon, "gals": Gallon,

	"milliliter": Milliliter, "milliliters": Milliliter, "millilitre": Milliliter,
	"millilitres": Milliliter, "ml": Milliliter, "mls": Milliliter,
	"centiliter": Centiliter, "centiliters": Centiliter, "centilitre": Centiliter, "cl": Centiliter,
	"deciliter": Deciliter, "deciliters": Deciliter, "decilitre": Deciliter, "dl": Deciliter,
	"liter": Liter, "liters": Liter, "litre": Liter, "litres": Liter, "l": Liter, "lt": Liter,

	"milligram": Milligram, "milligrams": Milligram, "mg": Milligram,
	"gram": Gram, "grams": Gram, "gramme": Gram, "grammes": Gram, "g": Gram,
	"gr": Gram, "gm": Gram, "gms": Gram,
	"kilogram": Kilogram, "kilograms": Kilogram, "kilo": Kilogram, "kilos": Kilogram,
	"kg": Kilogram, "kgs": Kilogram,

	"clove": "clove", "cloves": "clove",
	"can": "can", "cans": "can", "tin": "can", "tins": "can",
	"package": "pkg", "packages": "pkg", "pkg": "pkg", "pkgs": "pkg",
	"packet": "packet", "packets": "packet",
	"stick": "stick", "sticks": "stick",
	"slice": "slice", "slices": "slice",
	"pinch": "pinch", "pinches": "pinch",
	"dash": "dash", "dashes": "dash",
	"bunch": "bunch", "bunches": "bunch",
	"sprig": "sprig", "sprigs": "sprig",
	"head": "head", "heads": "head",
	"piece": "piece", "pieces": "piece", "pc": "piece", "pcs": "piece",
	"handful": "handful", "handfuls": "handful",
	"jar": "jar", "jars": "jar",
	"bottle": "bottle", "bottles": "bottle",
	"box": "box", "boxes": "box",
	"bag": "bag", "bags": "bag",
	"envelope": "envelope", "envelopes": "envelope",
	"container": "container", "containers": "container",
	"drop": "drop", "drops": "drop",
	"leaf": "leaf", "leaves": "leaf",
	"stalk": "stalk", "stalks": "stalk",
	"sheet": "sheet", "sheets": "sheet",
	"scoop": "scoop", "scoops": "scoop",
	"fillet": "fillet", "fillets": "fillet",
	"inch": "inch", "inches": "inch",
}

// display holds the singular and plural rendering of each canonical unit.
var display = map[string][2]string{
	Teaspoon:   {"tsp", "tsp"},
	Tablespoon: {"Tbsp", "Tbsp"},
	Cup:        {"cup", "cups"},
	FluidOunce: {"fl oz", "fl oz"},
	Ounce:      {"oz", "oz"},
	Pound:      {"lb", "lbs"},
	Pint:       {"pt", "pt"},
	Quart:      {"qt", "qt"},
	Gallon:     {"gal", "gal"},
	Milliliter: {"ml", "ml"},
	Centiliter: {"cl", "cl"},
	Deciliter:  {"dl", "dl"},
	Liter:      {"l", "l"},
	Milligram:  {"mg", "mg"},
	Gram:       {"g", "g"},
	Kilogram:   {"kg", "kg"},

	"clove":     {"clove", "cloves"},
	"can":       {"can", "cans"},
	"pkg":       {"pkg", "pkgs"},
	"packet":    {"packet", "packets"},
	"stick":     {"stick", "sticks"},
	"slice":     {"slice", "slices"},
	"pinch":     {"pinch", "pinches"},
	"dash":      {"dash", "dashes"},
	"bunch":     {"bunch", "bunches"},
	"sprig":     {"sprig", "sprigs"},
	"head":      {"head", "heads"},
	"piece":     {"piece", "pieces"},
	"handful":   {"handful", "handfuls"},
	"jar":       {"jar", "jars"},
	"bottle":    {"bottle", "bottles"},
	"box":       {"box", "boxes"},
	"bag":       {"bag", "bags"},
	"envelope":  {"envelope", "envelopes"},
	"container": {"container", "containers"},
	"drop":      {"drop", "drops"},
	"leaf":      {"leaf", "leaves"},
	"stalk":     {"stalk", "stalks"},
	"sheet":     {"sheet", "sheets"},
	"scoop":     {"scoop", "scoops"},
	"fillet":    {"fillet", "fillets"},
	"inch":      {"inch", "inches"},
}

// Normalize returns the canonical abbreviation for unit. A single trailing
// period is ignored and a bare upper-case "T" means tablespoon. Unknown units
// are returned unchanged.
func Normalize(unit string) string {
	trimmed := strings.TrimSpace(unit)
	key := strings.TrimSuffix(trimmed, ".")
	if key == "T" || key == "Tb" || key == "TB" {
		return Tablespoon
	}
	if canon, ok := synonyms[strings.ToLower(key)]; ok {
		return canon
	}
	return unit
}

// IsUnit reports whether word is a recognised unit spelling.
func IsUnit(word string) bool {
	key := strings.TrimSuffix(strings.TrimSpace(word), ".")
	if key == "" {
		return false
	}
	if key == "T" {
		return true
	}
	_, ok := synonyms[strings.ToLower(key)]
	return ok
}

// Pluralize renders unit for the given amount: "cups" for "2", "cup" for "1".
// Units without a display form are returned as given.
func Pluralize(unit, amount string) string {
	canon := Normalize(unit)
	forms, ok := display[canon]
	if !ok {
		return unit
	}
	if IsPluralAmount(amount) {
		return forms[1]
	}
	return forms[0]
}

var (
	rangeSplitRe  = regexp.MustCompile(`\s*(?:-|–|—|\bto\b)\s*`)
	fractionRe    = regexp.MustCompile(`^(\d+)/(\d+)`)
	mixedSlashRe  = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)`)
	numberGlyphRe = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)?\s*(` + text.GlyphClass + `)?`)
)

// Value parses the leading quantity of amount: "2", "1½", "1 1/2", "3/4",
// "1.5" and "½" are all understood. Ranges yield their upper bound.
func Value(amount string) (float64, bool) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, false
	}
	parts := rangeSplitRe.Split(amount, -1)
	upper := strings.TrimSpace(parts[len(parts)-1])

	if m := mixedSlashRe.FindStringSubmatch(upper); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		return whole + ratio(m[2], m[3]), true
	}
	if m := fractionRe.FindStringSubmatch(upper); m != nil {
		return ratio(m[1], m[2]), true
	}
	m := numberGlyphRe.FindStringSubmatch(upper)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, false
	}
	var v float64
	if m[1] != "" {
		v, _ = strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	}
	if m[2] != "" {
		v += text.GlyphValues[[]rune(m[2])[0]]
	}
	return v, true
}

func ratio(num, den string) float64 {
	n, _ := strconv.ParseFloat(num, 64)
	d, _ := strconv.ParseFloat(den, 64)
	if d == 0 {
		return 0
	}
	return n / d
}

// IsPluralAmount reports whether amount is greater than one.
func IsPluralAmount(amount string) bool {
	v, ok := Value(amount)
	return ok && v > 1
}

// Pattern returns a regexp alternation of every unit spelling, longest first,
// for use in larger line patterns.
func Pattern() string {
	spellings := make([]string, 0, len(synonyms)+1)
	for s := range synonyms {
		spellings = append(spellings, regexp.QuoteMeta(s))
	}
	sort.Slice(spellings, func(i, j int) bool {
		if len(spellings[i]) != len(spellings[j]) {
			return len(spellings[i]) > len(spellings[j])
		}
		return spellings[i] < spellings[j]
	})
	return "(?:" + strings.Join(spellings, "|") + ")"
}
