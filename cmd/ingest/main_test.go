package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunText(t *testing.T) {
	stdin := strings.NewReader("For the Punch:\n2 cups rum\n1 cup simple syrup\nJuice of 2 limes\n")
	var out bytes.Buffer

	err := run(context.Background(), options{Title: "Summer Punch"}, stdin, &out)
	require.NoError(t, err)

	var got struct {
		Source      string `json:"source"`
		Ingredients []struct {
			Name string `json:"name"`
		} `json:"ingredients"`
		Course struct {
			Course string `json:"course"`
		} `json:"course"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "text", got.Source)
	assert.Equal(t, "Drinks", got.Course.Course)
	require.Len(t, got.Ingredients, 4)
	assert.Equal(t, "Rum", got.Ingredients[1].Name)
}

func TestRunFilesAndTables(t *testing.T) {
	dir := t.TempDir()
	recipe := filepath.Join(dir, "recipe.txt")
	require.NoError(t, os.WriteFile(recipe, []byte("1 quart cider vinegar\r\n2 tablespoons ginger\r\n"), 0o644))
	tables := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(tables, []byte("keywords:\n  Drinks:\n    - switchel\n"), 0o644))

	opts := options{Title: "Maple Switchel", Tables: tables, Pretty: true}
	opts.Args.Files = []string{recipe}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "\n  \"id\"")
	assert.Contains(t, out.String(), `"course": "Drinks"`)
}

func TestRunShopping(t *testing.T) {
	stdin := strings.NewReader("2 lbs ground beef\n1 cup milk\n")
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), options{Shopping: true}, stdin, &out))

	var groups []struct {
		Category string `json:"category"`
		Items    []struct {
			Unit string `json:"unit"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "meat", groups[0].Category)
	assert.Equal(t, "lb", groups[0].Items[0].Unit)
	assert.Equal(t, "dairy", groups[1].Category)
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer

	err := run(context.Background(), options{}, strings.NewReader("\n\n"), &out)
	assert.Error(t, err)

	opts := options{}
	opts.Args.Files = []string{filepath.Join(t.TempDir(), "missing.txt")}
	err = run(context.Background(), opts, strings.NewReader(""), &out)
	assert.Error(t, err)

	err = run(context.Background(), options{Tables: filepath.Join(t.TempDir(), "missing.yaml")}, strings.NewReader("1 egg"), &out)
	assert.Error(t, err)

	err = run(context.Background(), options{URL: "ftp://example.com/recipe"}, strings.NewReader(""), &out)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
