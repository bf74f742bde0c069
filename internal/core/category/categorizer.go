package category

import (
	"regexp"
	"strings"
	"sync/atomic"

	"recipe-ingest/internal/core/text"
	"recipe-ingest/internal/core/units"
)

// Categorizer classifies ingredient text. Safe for concurrent use; the
// dictionary can be swapped with Replace while lookups are running.
type Categorizer struct {
	dict atomic.Pointer[Dictionary]
}

// NewCategorizer returns a categorizer over dict. A nil dict means the
// override table alone.
func NewCategorizer(dict *Dictionary) *Categorizer {
	if dict == nil {
		dict = OverridesOnly()
	}
	c := &Categorizer{}
	c.dict.Store(dict)
	return c
}

// Replace atomically installs a new dictionary.
func (c *Categorizer) Replace(dict *Dictionary) {
	if dict == nil {
		return
	}
	c.dict.Store(dict)
}

// Dictionary returns the dictionary currently in use.
func (c *Categorizer) Dictionary() *Dictionary {
	return c.dict.Load()
}

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	nonWordRe       = regexp.MustCompile(`[^a-z' -]+`)
)

// descriptors carry no category signal and are dropped before lookup.
var descriptors = map[string]bool{
	"fresh": true, "freshly": true, "large": true, "small": true, "medium": true,
	"chopped": true, "diced": true, "minced": true, "sliced": true, "grated": true,
	"shredded": true, "finely": true, "roughly": true, "coarsely": true, "thinly": true,
	"peeled": true, "softened": true, "melted": true, "cubed": true, "optional": true,
	"organic": true, "whole": true, "about": true, "heaping": true, "level": true, "packed": true,
	"divided": true,
}

// Classify returns the grocery category of an ingredient line or name.
// The normalised text is looked up exactly, then with a trailing plural "s"
// removed, then scanned for the longest dictionary key it contains.
func (c *Categorizer) Classify(line string) Category {
	d := c.dict.Load()
	key := lookupKey(line)
	if key == "" {
		return Unknown
	}
	singular := singularize(key)

	if cat, ok := d.Lookup(key); ok {
		return cat
	}
	if cat, ok := d.Lookup(singular); ok {
		return cat
	}
	if cat, _, ok := d.LongestMatch(key); ok {
		return cat
	}
	if cat, _, ok := d.LongestMatch(singular); ok {
		return cat
	}
	return Unknown
}

// lookupKey reduces free text to the bare ingredient words.
func lookupKey(s string) string {
	s = text.FoldAccents(s)
	s = parentheticalRe.ReplaceAllString(s, " ")
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	s = nonWordRe.ReplaceAllString(s, " ")

	var kept, unitWords []string
	for _, w := range strings.Fields(s) {
		w = strings.Trim(w, "-'")
		switch {
		case w == "" || descriptors[w]:
		case units.IsUnit(w):
			unitWords = append(unitWords, w)
		default:
			kept = append(kept, w)
		}
	}
	// "whole cloves" is an ingredient, not a unit
	if len(kept) == 0 {
		kept = unitWords
	}
	return strings.Join(kept, " ")
}

func singularize(s string) string {
	if strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") {
		return s[:len(s)-1]
	}
	return s
}
