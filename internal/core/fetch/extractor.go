package fetch

import (
	"bytes"
	"fmt"
	"strings"

	"recipe-ingest/internal/pkg/common"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Source names the strategy that produced a Page.
const (
	SourceJSONLD    = "json-ld"
	SourceMicrodata = "microdata"
	SourceList      = "list"
)

// Page is the recipe data found on a web page.
type Page struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Servings    string   `json:"servings,omitempty"`
	TotalTime   string   `json:"total_time,omitempty"`
	Category    string   `json:"category,omitempty"`
	Source      string   `json:"source"`
}

// listSelectors are tried in order when no structured data is present.
var listSelectors = []string{
	".wprm-recipe-ingredient",
	".tasty-recipes-ingredients li",
	".mv-create-ingredients li",
	".recipe-ingredients li",
	".ingredients-list li",
	".ingredient-list li",
	"ul.ingredients li",
	"#ingredients li",
	".ingredients li",
}

// Extract pulls the title and ingredient lines out of a recipe page. JSON-LD
// Recipe objects win over microdata, which wins over plain lists.
func Extract(pageURL string, html []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &Page{URL: pageURL}
	switch {
	case extractJSONLD(doc, page):
		page.Source = SourceJSONLD
	case extractMicrodata(doc, page):
		page.Source = SourceMicrodata
	case extractList(doc, page):
		page.Source = SourceList
	default:
		return nil, common.Wrap(common.ErrNoIngredients, fmt.Errorf("no recipe ingredients found at %s", pageURL))
	}

	if page.Title == "" {
		page.Title = pageTitle(doc)
	}
	common.LogDebug("Extracted recipe page",
		zap.String("source", page.Source),
		zap.Int("ingredients", len(page.Ingredients)),
	)
	return page, nil
}

func extractJSONLD(doc *goquery.Document, page *Page) bool {
	found := false
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data interface{}
		if err := common.ParseJSON(strings.TrimSpace(s.Text()), &data); err != nil {
			common.LogDebug("Skipping malformed JSON-LD block", zap.Error(err))
			return true
		}
		if recipe := findRecipe(data); recipe != nil {
			found = fillFromJSONLD(recipe, page)
		}
		return !found
	})
	return found
}

// findRecipe walks arrays and @graph containers for the first Recipe node.
func findRecipe(v interface{}) map[string]interface{} {
	switch node := v.(type) {
	case []interface{}:
		for _, item := range node {
			if r := findRecipe(item); r != nil {
				return r
			}
		}
	case map[string]interface{}:
		if isRecipeType(node["@type"]) {
			return node
		}
		if graph, ok := node["@graph"]; ok {
			return findRecipe(graph)
		}
		if main, ok := node["mainEntity"]; ok {
			return findRecipe(main)
		}
	}
	return nil
}

func isRecipeType(t interface{}) bool {
	for _, s := range stringList(t) {
		if strings.EqualFold(s, "Recipe") {
			return true
		}
	}
	return false
}

func fillFromJSONLD(recipe map[string]interface{}, page *Page) bool {
	ingredients := stringList(recipe["recipeIngredient"])
	if len(ingredients) == 0 {
		ingredients = stringList(recipe["ingredients"])
	}
	for _, line := range ingredients {
		if line = plainText(line); line != "" {
			page.Ingredients = append(page.Ingredients, line)
		}
	}
	if len(page.Ingredients) == 0 {
		return false
	}

	page.Title = plainText(firstString(recipe["name"]))
	page.Servings = firstString(recipe["recipeYield"])
	page.TotalTime = firstString(recipe["totalTime"])
	if page.TotalTime == "" {
		page.TotalTime = firstString(recipe["cookTime"])
	}
	page.Category = firstString(recipe["recipeCategory"])
	return true
}

func extractMicrodata(doc *goquery.Document, page *Page) bool {
	items := doc.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`)
	items.Each(func(_ int, s *goquery.Selection) {
		if line := cleanText(s.Text()); line != "" {
			page.Ingredients = append(page.Ingredients, line)
		}
	})
	if len(page.Ingredients) == 0 {
		return false
	}

	scope := doc.Find(`[itemtype*="schema.org/Recipe"]`).First()
	if scope.Length() > 0 {
		page.Title = cleanText(scope.Find(`[itemprop="name"]`).First().Text())
		page.Servings = itemValue(scope.Find(`[itemprop="recipeYield"]`).First())
		page.TotalTime = itemValue(scope.Find(`[itemprop="totalTime"]`).First())
	}
	return true
}

func extractList(doc *goquery.Document, page *Page) bool {
	for _, sel := range listSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if line := cleanText(s.Text()); line != "" {
				page.Ingredients = append(page.Ingredients, line)
			}
		})
		if len(page.Ingredients) > 0 {
			return true
		}
	}
	return false
}

// itemValue prefers the content/datetime attribute microdata uses for machine values.
func itemValue(s *goquery.Selection) string {
	for _, attr := range []string{"content", "datetime"} {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return cleanText(s.Text())
}

func pageTitle(doc *goquery.Document) string {
	if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(v) != "" {
		return cleanText(v)
	}
	return cleanText(doc.Find("title").First().Text())
}

// plainText strips markup and entities that sites leave inside JSON-LD strings.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return cleanText(s)
	}
	frag, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return cleanText(s)
	}
	return cleanText(frag.Text())
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stringList(v interface{}) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := firstString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// firstString renders a scalar, or the first scalar of a list.
func firstString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case fmt.Stringer: // json.Number
		return t.String()
	case float64:
		return fmt.Sprintf("%g", t)
	case []interface{}:
		for _, item := range t {
			if s := firstString(item); s != "" {
				return s
			}
		}
	case map[string]interface{}:
		if s, ok := t["@value"].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
