package recipe

import (
	"recipe-ingest/internal/core/category"
	"recipe-ingest/internal/core/course"
	"recipe-ingest/internal/core/ingredient"
)

// Import sources.
const (
	SourceText = "text"
	SourceURL  = "url"
)

// ImportRequest is raw recipe text plus whatever metadata the caller has.
// Lines wins over Text when both are set.
type ImportRequest struct {
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	Text      string   `json:"text"`
	Lines     []string `json:"lines"`
	Servings  string   `json:"servings"`
	TotalTime string   `json:"total_time"`
}

// ImportResult is the structured form of one recipe.
type ImportResult struct {
	ID          string                        `json:"id"`
	Title       string                        `json:"title,omitempty"`
	URL         string                        `json:"url,omitempty"`
	Source      string                        `json:"source"`
	Ingredients []ingredient.ParsedIngredient `json:"ingredients"`
	Sections    []string                      `json:"sections,omitempty"`
	Course      course.Result                 `json:"course"`
	Servings    string                        `json:"servings,omitempty"`
	TotalTime   string                        `json:"total_time,omitempty"`
	Warnings    []string                      `json:"warnings,omitempty"`
	Cached      bool                          `json:"cached"`
}

// ShoppingItem is one categorized shopping-list line.
type ShoppingItem struct {
	Text     string            `json:"text"`
	Name     string            `json:"name"`
	Amount   string            `json:"amount,omitempty"`
	Unit     string            `json:"unit,omitempty"`
	Category category.Category `json:"category"`
}

func (i *ShoppingItem) GetUnit() string     { return i.Unit }
func (i *ShoppingItem) SetUnit(unit string) { i.Unit = unit }

// ShoppingGroup collects the items of one category.
type ShoppingGroup struct {
	Category category.Category `json:"category"`
	Items    []ShoppingItem    `json:"items"`
}
