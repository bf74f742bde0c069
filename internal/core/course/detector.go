package course

import (
	"regexp"
	"sort"
	"strings"

	"recipe-ingest/internal/core/text"
)

const (
	siteConfidence      = 0.95
	drinksConfidence    = 0.75
	smokingConfidence   = 0.8
	modernistConfidence = 0.75
	breadsConfidence    = 0.75
	defaultConfidence   = 0.5
	defaultRuleName     = "default"
)

// plainOrder lists the keyword-only tables evaluated after the signal rules.
var plainOrder = []struct {
	course     Course
	confidence float64
}{
	{Pickles, 0.75},
	{Rubs, 0.7},
	{Sauces, 0.7},
	{Soup, 0.75},
	{Desserts, 0.7},
	{Brunch, 0.7},
	{Apps, 0.65},
	{Sides, 0.6},
}

// signals is the pre-folded text a rule inspects.
type signals struct {
	heading     string // title + url
	ingredients string
}

func (s signals) all() string { return s.heading + " " + s.ingredients }

type rule struct {
	name       string
	course     Course
	confidence float64
	match      func(signals) bool
}

// Detector classifies recipes by walking an ordered rule list and returning
// the first rule that fires.
type Detector struct {
	full     []rule
	keywords []rule
}

// NewDetector compiles the given tables. A nil tables value uses DefaultTables.
func NewDetector(t *Tables) *Detector {
	if t == nil {
		t = DefaultTables()
	}

	kw := make(map[Course]*regexp.Regexp, len(t.Keywords))
	for c, words := range t.Keywords {
		kw[c] = keywordMatcher(words)
	}
	exclude := make(map[Course]*regexp.Regexp, len(t.Exclude))
	for c, words := range t.Exclude {
		exclude[c] = keywordMatcher(words)
	}
	spirits := keywordMatcher(t.Spirits)
	woods := keywordMatcher(t.Woods)
	cocktailSites := foldAll(t.CocktailSites)
	bbqSites := foldAll(t.BBQSites)

	heading := func(c Course) func(signals) bool {
		re, ex := kw[c], exclude[c]
		return func(s signals) bool {
			if re == nil {
				return false
			}
			h := s.heading
			if ex != nil {
				h = ex.ReplaceAllString(h, " ")
			}
			return re.MatchString(h)
		}
	}

	d := &Detector{}
	d.full = []rule{
		{"cocktail-site", Drinks, siteConfidence, func(s signals) bool { return containsAny(s.heading, cocktailSites) }},
		{"bbq-site", Smoking, siteConfidence, func(s signals) bool { return containsAny(s.heading, bbqSites) }},
		{"drinks", Drinks, drinksConfidence, func(s signals) bool {
			return heading(Drinks)(s) || (spirits != nil && spirits.MatchString(s.ingredients))
		}},
		{"smoking", Smoking, smokingConfidence, func(s signals) bool {
			return heading(Smoking)(s) || (woods != nil && woods.MatchString(s.ingredients))
		}},
		{"modernist", Modernist, modernistConfidence, func(s signals) bool {
			re := kw[Modernist]
			return re != nil && re.MatchString(s.all())
		}},
		{"breads", Breads, breadsConfidence, func(s signals) bool {
			return heading(Breads)(s) || (flourRe.MatchString(s.ingredients) && yeastRe.MatchString(s.ingredients))
		}},
	}
	d.keywords = []rule{
		{"drinks", Drinks, drinksConfidence, heading(Drinks)},
		{"smoking", Smoking, smokingConfidence, heading(Smoking)},
		{"modernist", Modernist, modernistConfidence, heading(Modernist)},
		{"breads", Breads, breadsConfidence, heading(Breads)},
	}
	for _, p := range plainOrder {
		r := rule{strings.ToLower(string(p.course)), p.course, p.confidence, heading(p.course)}
		d.full = append(d.full, r)
		d.keywords = append(d.keywords, r)
	}
	return d
}

var defaultDetector = NewDetector(nil)

// Detect classifies free text using keyword tables only.
func Detect(s string) Result { return defaultDetector.Detect(s) }

// DetectWithIngredients classifies with site, ingredient and keyword signals.
func DetectWithIngredients(in Input) Result { return defaultDetector.DetectWithIngredients(in) }

// Detect classifies free text using keyword tables only.
func (d *Detector) Detect(s string) Result {
	return run(d.keywords, signals{heading: text.FoldAccents(s)})
}

// DetectWithIngredients evaluates site membership first, then ingredient
// signals, then the keyword tables over title and URL.
func (d *Detector) DetectWithIngredients(in Input) Result {
	return run(d.full, signals{
		heading:     text.FoldAccents(in.Title + " " + in.URL),
		ingredients: text.FoldAccents(strings.Join(in.Ingredients, "\n")),
	})
}

func run(rules []rule, s signals) Result {
	for _, r := range rules {
		if r.match(s) {
			return Result{Course: r.course, Confidence: r.confidence, Rule: r.name}
		}
	}
	return Result{Course: Mains, Confidence: defaultConfidence, Rule: defaultRuleName}
}

// keywordMatcher builds a case-insensitive word-boundary alternation that
// tolerates a trailing "s" and spaces, underscores or hyphens inside phrases.
func keywordMatcher(words []string) *regexp.Regexp {
	seen := make(map[string]bool, len(words))
	var alts []string
	for _, w := range words {
		w = strings.TrimSpace(text.FoldAccents(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		parts := strings.Fields(w)
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		alts = append(alts, strings.Join(parts, `[\s_-]*`))
	}
	if len(alts) == 0 {
		return nil
	}
	sort.SliceStable(alts, func(i, j int) bool { return len(alts[i]) > len(alts[j]) })
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)s?\b`)
}

var (
	flourRe = regexp.MustCompile(`\bflours?\b`)
	yeastRe = regexp.MustCompile(`\byeasts?\b`)
)

func foldAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(text.FoldAccents(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
