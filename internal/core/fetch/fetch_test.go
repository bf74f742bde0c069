package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonLDPage = `<!doctype html>
<html><head>
<title>Site Title | Example</title>
<script type="application/ld+json">{not json</script>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebPage", "name": "Page"},
    {
      "@type": ["Recipe"],
      "name": "Grandma&#39;s Pancakes",
      "recipeYield": ["4", "4 servings"],
      "totalTime": "PT25M",
      "recipeCategory": "Breakfast",
      "recipeIngredient": [
        "1 1/2 cups flour",
        "2 <b>large</b> eggs",
        "  1 cup   milk ",
        ""
      ]
    }
  ]
}
</script>
</head><body><ul class="ingredients"><li>ignored</li></ul></body></html>`

const microdataPage = `<html><head><title>Chili</title></head><body>
<div itemscope itemtype="https://schema.org/Recipe">
  <h1 itemprop="name">Texas Chili</h1>
  <meta itemprop="totalTime" content="PT2H">
  <span itemprop="recipeYield">6 servings</span>
  <ul>
    <li itemprop="recipeIngredient">2 lbs beef chuck</li>
    <li itemprop="recipeIngredient">3 Tbsp chili powder</li>
  </ul>
</div></body></html>`

const listPage = `<html><head>
<meta property="og:title" content="Quick Slaw">
<title>ignored</title></head><body>
<div class="recipe-ingredients"><ul>
  <li>1/2 head cabbage, shredded</li>
  <li>
     2 Tbsp mayonnaise
  </li>
</ul></div></body></html>`

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		html string
		want Page
	}{
		{
			name: "json-ld inside graph",
			html: jsonLDPage,
			want: Page{
				URL:         "https://example.com/r",
				Title:       "Grandma's Pancakes",
				Ingredients: []string{"1 1/2 cups flour", "2 large eggs", "1 cup milk"},
				Servings:    "4",
				TotalTime:   "PT25M",
				Category:    "Breakfast",
				Source:      SourceJSONLD,
			},
		},
		{
			name: "microdata",
			html: microdataPage,
			want: Page{
				URL:         "https://example.com/r",
				Title:       "Texas Chili",
				Ingredients: []string{"2 lbs beef chuck", "3 Tbsp chili powder"},
				Servings:    "6 servings",
				TotalTime:   "PT2H",
				Source:      SourceMicrodata,
			},
		},
		{
			name: "ingredient list",
			html: listPage,
			want: Page{
				URL:         "https://example.com/r",
				Title:       "Quick Slaw",
				Ingredients: []string{"1/2 head cabbage, shredded", "2 Tbsp mayonnaise"},
				Source:      SourceList,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract("https://example.com/r", []byte(tt.html))
			require.NoError(t, err)
			assert.Equal(t, &tt.want, got)
		})
	}
}

func TestExtractNoIngredients(t *testing.T) {
	_, err := Extract("https://example.com/blog", []byte(`<html><body><p>Hello</p></body></html>`))
	assert.ErrorIs(t, err, common.ErrNoIngredients)
}

func TestFindRecipe(t *testing.T) {
	var data interface{}
	require.NoError(t, common.ParseJSON(`[{"@type":"Person"},{"mainEntity":{"@type":"Recipe","name":"X"}}]`, &data))

	got := findRecipe(data)
	require.NotNil(t, got)
	assert.Equal(t, "X", got["name"])
	assert.Nil(t, findRecipe(map[string]interface{}{"@type": "Article"}))
}

func TestValidateURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com/x", "/relative/path", "https://"} {
		_, err := ValidateURL(raw)
		assert.True(t, common.IsValidationError(err), raw)
	}
	u, err := ValidateURL(" https://example.com/recipe ")
	require.NoError(t, err)
	assert.Equal(t, "example.com", u.Host)
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipe":
			assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(listPage))
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		case "/big":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(strings.Repeat("a", 2048)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(config.FetchConfig{Timeout: 2 * time.Second, UserAgent: "test-agent", MaxBodyBytes: 1024})
	ctx := context.Background()

	body, err := client.Fetch(ctx, srv.URL+"/recipe")
	require.NoError(t, err)
	assert.Contains(t, string(body), "cabbage")

	_, err = client.Fetch(ctx, srv.URL+"/missing")
	assert.ErrorIs(t, err, common.ErrFetchFailed)

	_, err = client.Fetch(ctx, srv.URL+"/json")
	assert.ErrorIs(t, err, common.ErrFetchFailed)

	_, err = client.Fetch(ctx, srv.URL+"/big")
	assert.ErrorIs(t, err, common.ErrFetchFailed)

	_, err = client.Fetch(ctx, "not a url")
	assert.True(t, common.IsValidationError(err))
}
