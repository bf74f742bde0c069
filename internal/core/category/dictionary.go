package category

import (
	"bufio"
	"bytes"
	"compress/gzip"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"recipe-ingest/internal/core/text"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

//go:embed data/ingredient_categories.json.gz
var embeddedDictionary []byte

// overrides correct entries the bundled data gets wrong or lacks. They are
// merged into every dictionary at construction and win over file entries.
var overrides = map[string]Category{
	"beef":          Meat,
	"ground beef":   Meat,
	"pork":          Meat,
	"lamb":          Meat,
	"bacon":         Meat,
	"chicken":       Poultry,
	"turkey":        Poultry,
	"egg":           Egg,
	"eggs":          Egg,
	"butter":        Dairy,
	"milk":          Dairy,
	"coconut milk":  Condiment,
	"almond milk":   Beverage,
	"peanut butter": Condiment,
	"eggplant":      Produce,
	"simple syrup":  Sugar,
	"club soda":     Pop,
	"ginger ale":    Pop,
	"ginger beer":   Pop,
	"baking soda":   Leavening,
	"baking powder": Leavening,
	"yeast":         Leavening,
	"water":         Beverage,
}

// Dictionary is an immutable ingredient-name to category table. Keys are
// kept sorted longest first so substring scans prefer the most specific name.
type Dictionary struct {
	entries map[string]Category
	keys    []string
}

// NewDictionary builds a dictionary from raw entries plus the override
// table. Keys are normalised with FoldAccents; invalid categories are dropped.
func NewDictionary(entries map[string]Category) *Dictionary {
	d := &Dictionary{entries: make(map[string]Category, len(entries)+len(overrides))}
	for name, c := range entries {
		key := strings.TrimSpace(text.FoldAccents(name))
		if key == "" || !c.Valid() || c == Unknown {
			continue
		}
		d.entries[key] = c
	}
	for name, c := range overrides {
		d.entries[name] = c
	}

	d.keys = make([]string, 0, len(d.entries))
	for k := range d.entries {
		d.keys = append(d.keys, k)
	}
	sort.Slice(d.keys, func(i, j int) bool {
		if len(d.keys[i]) != len(d.keys[j]) {
			return len(d.keys[i]) > len(d.keys[j])
		}
		return d.keys[i] < d.keys[j]
	})
	return d
}

// OverridesOnly is the dictionary used when no data file can be read.
func OverridesOnly() *Dictionary {
	return NewDictionary(nil)
}

// Len is the number of entries, overrides included.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Lookup returns the category for an exact key.
func (d *Dictionary) Lookup(key string) (Category, bool) {
	c, ok := d.entries[key]
	return c, ok
}

// LongestMatch returns the category of the longest key contained in s.
func (d *Dictionary) LongestMatch(s string) (Category, string, bool) {
	for _, k := range d.keys {
		if strings.Contains(s, k) {
			return d.entries[k], k, true
		}
	}
	return Unknown, "", false
}

// LoadDictionary reads a JSON object of name -> category index, gzip
// compressed or plain.
func LoadDictionary(r io.Reader) (*Dictionary, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip dictionary: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	var raw map[string]int
	if err := common.DecodeJSON(src, &raw); err != nil {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}

	entries := make(map[string]Category, len(raw))
	skipped := 0
	for name, idx := range raw {
		c := Category(idx)
		if !c.Valid() {
			skipped++
			continue
		}
		entries[name] = c
	}
	if skipped > 0 {
		common.LogWarn("dictionary entries with invalid category skipped", zap.Int("count", skipped))
	}
	return NewDictionary(entries), nil
}

// LoadDictionaryFile loads a dictionary from path.
func LoadDictionaryFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	return LoadDictionary(f)
}

// LoadOrFallback loads path (or the embedded dictionary when path is empty)
// and falls back to the override table when loading fails.
func LoadOrFallback(path string) *Dictionary {
	var (
		d   *Dictionary
		err error
	)
	source := path
	if path == "" {
		source = "embedded"
		d, err = LoadDictionary(bytes.NewReader(embeddedDictionary))
	} else {
		d, err = LoadDictionaryFile(path)
	}
	if err != nil {
		common.LogWarn("ingredient dictionary unavailable, using overrides only",
			zap.String("source", source),
			zap.Error(err),
		)
		return OverridesOnly()
	}
	common.LogInfo("ingredient dictionary loaded",
		zap.String("source", source),
		zap.Int("entries", d.Len()),
	)
	return d
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the embedded dictionary, loaded on first use.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		defaultDict = LoadOrFallback("")
	})
	return defaultDict
}
