package ingredient

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"recipe-ingest/internal/core/text"
	"recipe-ingest/internal/core/units"
)

// Parser turns ingredient lines into ParsedIngredient values. A Parser holds
// only compiled rule tables and is safe for concurrent use.
type Parser struct {
	sections   []sectionRule
	steps      []step
	structures []structureRule
}

// lineState is the working copy of one line as it moves through the rules.
type lineState struct {
	text   string
	result ParsedIngredient
	preps  []string
}

func (st *lineState) addPrep(p string) {
	p = strings.Trim(strings.TrimSpace(p), ",;.")
	if p != "" {
		st.preps = append(st.preps, p)
	}
}

func (st *lineState) prependPrep(p string) {
	p = strings.Trim(strings.TrimSpace(p), ",;.")
	if p != "" {
		st.preps = append([]string{p}, st.preps...)
	}
}

// sectionRule recognises a whole line as a section header and returns its name.
type sectionRule struct {
	name  string
	match func(line string) (string, bool)
}

// step rewrites the working text before structural matching.
type step struct {
	name  string
	apply func(st *lineState)
}

// structureRule is the final decomposition into amount, unit and name. The
// first rule whose regex matches wins.
type structureRule struct {
	name   string
	regex  *regexp.Regexp
	handle func(st *lineState, m []string)
}

// NewParser builds a parser with the default rule tables.
func NewParser() *Parser {
	p := &Parser{}
	p.sections = []sectionRule{
		{"bracket", matchBracketSection},
		{"for-the", matchForTheSection},
		{"colon", matchColonSection},
		{"all-caps", matchAllCapsSection},
	}
	p.steps = []step{
		{"inline-section", extractInlineSection},
		{"side-notes", extractSideNotes},
		{"page-refs", dropPageRefs},
		{"modifiers", extractTrailingModifiers},
		{"alternative", extractAlternative},
		{"footnotes", dropFootnotes},
		{"word-numbers", convertWordNumbers},
	}
	p.structures = []structureRule{
		{"bakers-percent", bakerRe, handleBakerPercent},
		{"amount-unit", standardRe, handleStandard},
		{"amount", amountOnlyRe, handleAmountOnly},
		{"part-of", partOfRe, handlePartOf},
		{"unit-of", unitOfRe, handleUnitOf},
	}
	return p
}

// Parse decomposes one ingredient line. It never fails: unrecognised text
// ends up as the name with LooksLikeIngredient reporting plausibility.
func (p *Parser) Parse(line string) ParsedIngredient {
	st := &lineState{result: ParsedIngredient{Original: line}}

	cleaned := text.Clean(line)
	cleaned = strings.TrimSpace(bulletRe.ReplaceAllString(cleaned, ""))
	if cleaned == "" {
		return st.result
	}

	for _, rule := range p.sections {
		if name, ok := rule.match(cleaned); ok {
			st.result.IsSection = true
			st.result.SectionName = name
			return st.result
		}
	}

	st.text = text.NormalizeFractions(cleaned)
	for _, s := range p.steps {
		s.apply(st)
		st.text = strings.TrimSpace(spaceRunRe.ReplaceAllString(st.text, " "))
	}

	matched := false
	for _, rule := range p.structures {
		if m := rule.regex.FindStringSubmatch(st.text); m != nil {
			rule.handle(st, m)
			matched = true
			break
		}
	}
	if !matched {
		st.result.Name = text.CleanName(st.text)
		st.result.LooksLikeIngredient = plausible(st.result.Name, line, false)
	}

	st.result.Preparation = strings.Join(st.preps, "; ")
	return st.result
}

// ParseLines parses a block of lines. Blank lines are skipped and the most
// recent section header's name is carried onto the lines that follow it.
func (p *Parser) ParseLines(lines []string) []ParsedIngredient {
	out := make([]ParsedIngredient, 0, len(lines))
	current := ""
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parsed := p.Parse(line)
		if parsed.IsSection {
			current = parsed.SectionName
		} else if parsed.SectionName == "" {
			parsed.SectionName = current
		}
		out = append(out, parsed)
	}
	return out
}

// ApplySections carries section headers onto following lines of an already
// parsed block, in place.
func ApplySections(parsed []ParsedIngredient) {
	current := ""
	for i := range parsed {
		switch {
		case parsed[i].IsSection:
			current = parsed[i].SectionName
		case parsed[i].SectionName == "":
			parsed[i].SectionName = current
		}
	}
}

var defaultParser = NewParser()

// Parse parses line with the default parser.
func Parse(line string) ParsedIngredient {
	return defaultParser.Parse(line)
}

// ParseLines parses lines with the default parser.
func ParseLines(lines []string) []ParsedIngredient {
	return defaultParser.ParseLines(lines)
}

// --- section headers ---

func matchBracketSection(line string) (string, bool) {
	m := bracketOnlyRe.FindStringSubmatch(line)
	if m == nil {
		m = parenOnlyRe.FindStringSubmatch(line)
		if m == nil || parenNoteRe.MatchString(m[1]) {
			return "", false
		}
	}
	return text.CleanName(m[1]), true
}

func matchForTheSection(line string) (string, bool) {
	if !forTheRe.MatchString(line) || len(strings.Fields(line)) > 6 {
		return "", false
	}
	return text.CleanName(strings.TrimSuffix(line, ":")), true
}

func matchColonSection(line string) (string, bool) {
	m := colonHeaderRe.FindStringSubmatch(line)
	if m == nil || len(strings.Fields(m[1])) > 4 {
		return "", false
	}
	return text.CleanName(m[1]), true
}

// matchAllCapsSection treats short upper-case lines as headers ("SAUCE").
// This misfires on shouted ingredient lines that dodge the denylist, e.g.
// "FRESH BASIL" parses as a section.
func matchAllCapsSection(line string) (string, bool) {
	trimmed := strings.TrimSuffix(line, ":")
	if digitRe.MatchString(trimmed) {
		return "", false
	}
	words := strings.Fields(trimmed)
	if len(words) == 0 || len(words) > 4 {
		return "", false
	}
	letters := 0
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return "", false
			}
			letters++
		}
	}
	if letters < 3 {
		return "", false
	}
	for _, w := range words {
		if sectionDenylist[strings.Trim(w, ",.;:&")] {
			return "", false
		}
	}
	return text.CleanName(trimmed), true
}

// --- preprocessing steps ---

func extractInlineSection(st *lineState) {
	m := inlineSectionRe.FindStringSubmatch(st.text)
	if m == nil {
		m = inlineParenRe.FindStringSubmatch(st.text)
		if m == nil || parenNoteRe.MatchString(m[1]) {
			return
		}
	}
	st.result.SectionName = text.CleanName(m[1])
	st.text = m[2]
}

func extractSideNotes(st *lineState) {
	for _, m := range sideNoteRe.FindAllStringSubmatch(st.text, -1) {
		st.addPrep(m[1])
	}
	st.text = sideNoteRe.ReplaceAllString(st.text, "")
}

func dropPageRefs(st *lineState) {
	st.text = pageRefRe.ReplaceAllString(st.text, "")
}

func extractTrailingModifiers(st *lineState) {
	for {
		loc := trailingModRe.FindStringSubmatchIndex(st.text)
		if loc == nil {
			break
		}
		st.prependPrep(st.text[loc[2]:loc[3]])
		st.text = strings.TrimSpace(st.text[:loc[0]])
	}
	for {
		loc := bareModRe.FindStringSubmatchIndex(st.text)
		if loc == nil || strings.TrimSpace(st.text[:loc[0]]) == "" {
			break
		}
		st.prependPrep(st.text[loc[2]:loc[3]])
		st.text = strings.TrimSpace(st.text[:loc[0]])
	}
}

func extractAlternative(st *lineState) {
	m := alternativeRe.FindStringSubmatch(st.text)
	if m == nil || endsInQtyRe.MatchString(m[1]) {
		return
	}
	st.result.Alternative = strings.Trim(strings.TrimSpace(m[2]), ",;.")
	st.text = m[1]
}

func dropFootnotes(st *lineState) {
	st.text = footnoteRe.ReplaceAllString(st.text, "")
}

func convertWordNumbers(st *lineState) {
	st.text = wordsToDigits(st.text)
}

// wordsToDigits rewrites a spelled-out leading quantity as digits. "a"/"an"
// count only before a unit and "half" only before "a"/"an" or a unit, so
// "half and half" and "a large egg" are left alone.
func wordsToDigits(s string) string {
	if m := andAHalfRe.FindStringSubmatch(s); m != nil {
		n := strings.ToLower(m[1])
		if d, ok := wordNumbers[n]; ok {
			n = d
		}
		return n + "½ " + s[len(m[0]):]
	}
	if loc := halfAnRe.FindStringIndex(s); loc != nil {
		return "½ " + s[loc[1]:]
	}

	m := wordNumberRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	word := strings.ToLower(strings.Join(strings.Fields(strings.ReplaceAll(m[1], "-", " ")), " "))
	rest := m[2]
	next, _, _ := strings.Cut(rest, " ")
	switch word {
	case "a", "an", "half", "quarter":
		if !units.IsUnit(strings.Trim(next, ",")) {
			return s
		}
	}
	return wordNumbers[word] + " " + rest
}

// --- structural handlers ---

func handleBakerPercent(st *lineState, m []string) {
	st.result.BakerPercent = strings.ReplaceAll(m[2], " ", "")
	st.result.Amount = m[3]
	if m[4] != "" {
		st.result.Unit = units.Pluralize(m[4], m[3])
	}
	st.result.Name = text.CleanName(m[1])
	st.result.LooksLikeIngredient = true
}

func handleStandard(st *lineState, m []string) {
	st.result.Amount = m[1]
	st.result.Unit = units.Pluralize(m[3], m[1])
	if m[2] != "" {
		st.prependPrep(m[2])
	}
	st.result.Name = finishName(st, m[4])
	st.result.LooksLikeIngredient = true
}

func handleAmountOnly(st *lineState, m []string) {
	st.result.Amount = m[1]
	rest := m[2]

	// a unit the standard pattern missed, e.g. "2 cups, sifted flour"
	first, remainder, _ := strings.Cut(rest, " ")
	if u := strings.TrimRight(first, ".,;:"); units.IsUnit(u) {
		st.result.Unit = units.Pluralize(u, m[1])
		rest = strings.TrimLeft(remainder, ",; ")
	}

	st.result.Name = finishName(st, rest)
	st.result.LooksLikeIngredient = plausible(st.result.Name, st.result.Original, st.result.Unit != "")
}

func handlePartOf(st *lineState, m []string) {
	part, article, amount, whole := m[1], m[2], m[3], m[4]
	if amount == "" {
		if converted := wordsToDigits(whole); converted != whole {
			if mm := amountOnlyRe.FindStringSubmatch(converted); mm != nil {
				amount, whole = mm[1], mm[2]
			}
		} else if article != "" && !strings.EqualFold(article, "the") {
			amount = "1"
		}
	}
	st.result.Amount = amount
	st.result.Name = text.CleanName(singularLastWord(whole) + " " + strings.ToLower(part))
	st.result.LooksLikeIngredient = true
}

func handleUnitOf(st *lineState, m []string) {
	st.result.Unit = units.Pluralize(m[1], "")
	st.result.Name = finishName(st, m[2])
	st.result.LooksLikeIngredient = true
}

// finishName moves leading prep words, leftover parentheticals and anything
// after a comma out of the name, then title-cases it.
func finishName(st *lineState, name string) string {
	if m := leadingModRe.FindStringSubmatch(name); m != nil {
		st.prependPrep(m[1])
		name = m[2]
	}
	var notes []string
	for _, pm := range parenRe.FindAllStringSubmatch(name, -1) {
		notes = append(notes, pm[1])
	}
	for i := len(notes) - 1; i >= 0; i-- {
		st.prependPrep(notes[i])
	}
	name = parenRe.ReplaceAllString(name, "")
	if before, after, ok := strings.Cut(name, ","); ok {
		st.addPrep(after)
		name = before
	}
	return text.CleanName(name)
}

func singularLastWord(s string) string {
	s = strings.TrimSpace(s)
	i := strings.LastIndexByte(s, ' ')
	last := s[i+1:]
	lower := strings.ToLower(last)
	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") && len(lower) > 3 {
		last = last[:len(last)-1]
	}
	return s[:i+1] + last
}

// plausible rejects names that read like method steps.
func plausible(name, original string, hasUnit bool) bool {
	if name == "" {
		return false
	}
	if instructionRe.MatchString(original) {
		return false
	}
	if !hasUnit && utf8.RuneCountInString(strings.TrimSpace(original)) > 60 {
		return false
	}
	return len(strings.Fields(original)) <= 12
}
