// Command ingest parses recipe text from files, stdin or a URL and prints the
// structured result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"recipe-ingest/internal/core/category"
	"recipe-ingest/internal/core/course"
	"recipe-ingest/internal/core/fetch"
	"recipe-ingest/internal/core/ingredient"
	"recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type options struct {
	Title      string        `long:"title" short:"t" description:"Recipe title, used for course detection"`
	URL        string        `long:"url" short:"u" description:"Recipe page to import; also used as a course hint for text input"`
	Dictionary string        `long:"dictionary" env:"DICTIONARY_PATH" description:"Ingredient dictionary (JSON, optionally gzipped) replacing the embedded one"`
	Tables     string        `long:"tables" env:"COURSE_TABLES_PATH" description:"YAML file extending the course keyword tables"`
	Shopping   bool          `long:"shopping" description:"Print a categorized shopping list instead of an import result"`
	Pretty     bool          `long:"pretty" description:"Indent JSON output"`
	Timeout    time.Duration `long:"timeout" default:"15s" description:"Timeout for URL imports"`
	LogLevel   string        `long:"log-level" env:"LOG_LEVEL" default:"warn" description:"Log level (debug, info, warn, error)"`

	Args struct {
		Files []string `positional-arg-name:"FILE" description:"Files with one ingredient per line; stdin when omitted"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	common.InitConsoleLogger(opts.LogLevel)
	defer common.Sync()

	if err := run(context.Background(), opts, os.Stdin, os.Stdout); err != nil {
		common.LogError("ingest failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer) error {
	tables := course.DefaultTables()
	if opts.Tables != "" {
		loaded, err := course.LoadTables(opts.Tables)
		if err != nil {
			return fmt.Errorf("failed to load course tables: %w", err)
		}
		tables = loaded
	}

	lineParser := ingredient.NewParser()
	var out interface{}

	switch {
	case opts.Shopping:
		lines, err := readLines(opts.Args.Files, stdin)
		if err != nil {
			return err
		}
		categorizer := category.NewCategorizer(category.LoadOrFallback(opts.Dictionary))
		svc := recipe.NewShoppingService(categorizer, lineParser, nil)
		out = svc.Group(svc.Categorize(lines))

	case opts.URL != "" && len(opts.Args.Files) == 0:
		importer := recipe.NewImportService(recipe.ImportOptions{
			Parser:   lineParser,
			Detector: course.NewDetector(tables),
			Fetcher: fetch.NewClient(config.FetchConfig{
				Timeout:      opts.Timeout,
				UserAgent:    "recipe-ingest/1.0",
				MaxBodyBytes: 5 * 1024 * 1024,
				RetryCount:   1,
			}),
		})
		ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
		result, err := importer.ImportURL(ctx, opts.URL)
		if err != nil {
			return err
		}
		out = result

	default:
		lines, err := readLines(opts.Args.Files, stdin)
		if err != nil {
			return err
		}
		importer := recipe.NewImportService(recipe.ImportOptions{
			Parser:   lineParser,
			Detector: course.NewDetector(tables),
		})
		result, err := importer.ImportText(ctx, recipe.ImportRequest{
			Title: opts.Title,
			URL:   opts.URL,
			Lines: lines,
		})
		if err != nil {
			return err
		}
		out = result
	}

	enc := json.NewEncoder(stdout)
	if opts.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

// readLines concatenates the given files, or reads stdin when there are none.
func readLines(files []string, stdin io.Reader) ([]string, error) {
	if len(files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return splitLines(string(data)), nil
	}

	var lines []string
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		lines = append(lines, splitLines(string(data))...)
	}
	return lines, nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
