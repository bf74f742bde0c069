package recipe

import (
	"strings"

	"recipe-ingest/internal/core/category"
	"recipe-ingest/internal/core/ingredient"
	"recipe-ingest/internal/core/metrics"
	"recipe-ingest/internal/core/units"
)

// ShoppingService categorizes shopping-list lines.
type ShoppingService struct {
	categorizer *category.Categorizer
	parser      *ingredient.Parser
	metrics     *metrics.Collector
}

// NewShoppingService creates a ShoppingService. A nil categorizer uses the
// embedded dictionary.
func NewShoppingService(categorizer *category.Categorizer, parser *ingredient.Parser, collector *metrics.Collector) *ShoppingService {
	if categorizer == nil {
		categorizer = category.NewCategorizer(category.Default())
	}
	if parser == nil {
		parser = ingredient.NewParser()
	}
	return &ShoppingService{
		categorizer: categorizer,
		parser:      parser,
		metrics:     collector,
	}
}

// Categorize parses each line, assigns a category and rewrites units to
// their canonical abbreviations. Blank lines and section headers are dropped.
func (s *ShoppingService) Categorize(lines []string) []ShoppingItem {
	items := make([]ShoppingItem, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p := s.parser.Parse(line)
		if p.IsSection {
			continue
		}
		name := p.Name
		if name == "" {
			name = strings.TrimSpace(line)
		}
		cat := s.categorizer.Classify(name)
		s.metrics.ObserveCategory(cat.String())
		items = append(items, ShoppingItem{
			Text:     strings.TrimSpace(line),
			Name:     name,
			Amount:   p.Amount,
			Unit:     p.Unit,
			Category: cat,
		})
	}

	carriers := make([]units.UnitCarrier, len(items))
	for i := range items {
		carriers[i] = &items[i]
	}
	units.NormalizeUnitsInList(carriers)
	return items
}

// Group buckets items by category in category order, keeping item order
// within each bucket.
func (s *ShoppingService) Group(items []ShoppingItem) []ShoppingGroup {
	buckets := make(map[category.Category][]ShoppingItem)
	for _, item := range items {
		buckets[item.Category] = append(buckets[item.Category], item)
	}
	groups := make([]ShoppingGroup, 0, len(buckets))
	for _, c := range category.All() {
		if len(buckets[c]) > 0 {
			groups = append(groups, ShoppingGroup{Category: c, Items: buckets[c]})
		}
	}
	return groups
}
