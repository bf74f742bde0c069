package recipe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-ingest/internal/core/batch"
	"recipe-ingest/internal/core/cache"
	"recipe-ingest/internal/core/course"
	"recipe-ingest/internal/core/fetch"
	"recipe-ingest/internal/core/ingredient"
	"recipe-ingest/internal/core/metrics"
	"recipe-ingest/internal/core/units"
	"recipe-ingest/internal/pkg/common"
)

// PageFetcher downloads a recipe page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ImportOptions wires an ImportService. Nil fields get defaults, except
// Fetcher: without one ImportURL is unavailable.
type ImportOptions struct {
	Parser   *ingredient.Parser
	Pool     *batch.Pool
	MinLines int
	Detector *course.Detector
	Fetcher  PageFetcher
	Cache    cache.Store
	Metrics  *metrics.Collector
}

// ImportService turns recipe text or a recipe URL into an ImportResult.
type ImportService struct {
	*Service
	parser   *ingredient.Parser
	pool     *batch.Pool
	minLines int
	detector *course.Detector
	fetcher  PageFetcher
}

// NewImportService creates an ImportService.
func NewImportService(opts ImportOptions) *ImportService {
	if opts.Parser == nil {
		opts.Parser = ingredient.NewParser()
	}
	if opts.Detector == nil {
		opts.Detector = course.NewDetector(nil)
	}
	return &ImportService{
		Service:  NewService(opts.Cache, opts.Metrics),
		parser:   opts.Parser,
		pool:     opts.Pool,
		minLines: opts.MinLines,
		detector: opts.Detector,
		fetcher:  opts.Fetcher,
	}
}

// ImportText parses the request's ingredient lines, classifies the recipe and
// normalises its servings and time.
func (s *ImportService) ImportText(ctx context.Context, req ImportRequest) (result *ImportResult, err error) {
	start := time.Now()
	lines := requestLines(req)
	defer func() {
		s.observe(ctx, SourceText, len(lines), start, err)
	}()

	return s.importLines(ctx, req, lines, SourceText, "")
}

// ImportURL downloads a page, extracts its recipe and imports it.
func (s *ImportService) ImportURL(ctx context.Context, rawURL string) (result *ImportResult, err error) {
	start := time.Now()
	lines := 0
	defer func() {
		s.observe(ctx, SourceURL, lines, start, err)
	}()

	if s.fetcher == nil {
		return nil, common.Wrap(common.ErrServiceUnavailable, fmt.Errorf("url import is not configured"))
	}
	u, err := fetch.ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	key := cache.Key("url", u.String())
	if cached, ok := s.getFromCache(ctx, key); ok {
		cached.Cached = true
		lines = len(cached.Ingredients)
		return cached, nil
	}

	body, err := s.fetcher.Fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}
	page, err := fetch.Extract(u.String(), body)
	if err != nil {
		return nil, err
	}
	lines = len(page.Ingredients)

	req := ImportRequest{
		Title:     page.Title,
		URL:       u.String(),
		Lines:     page.Ingredients,
		Servings:  page.Servings,
		TotalTime: page.TotalTime,
	}
	result, err = s.importLines(ctx, req, page.Ingredients, page.Source, page.Category)
	if err != nil {
		return nil, err
	}
	s.setToCache(ctx, key, result)
	return result, nil
}

func (s *ImportService) observe(ctx context.Context, source string, lines int, start time.Time, err error) {
	d := time.Since(start)
	s.metrics.ObserveImport(source, err, d)
	common.LogImport(source, lines, d, err, common.RequestIDFromContext(ctx))
}

func (s *ImportService) importLines(ctx context.Context, req ImportRequest, lines []string, source, categoryHint string) (*ImportResult, error) {
	if !hasContent(lines) {
		return nil, common.ErrNoIngredients
	}

	key := cache.Key("import", source, req.Title, req.URL, req.Servings, req.TotalTime, strings.Join(lines, "\n"))
	if cached, ok := s.getFromCache(ctx, key); ok {
		cached.Cached = true
		return cached, nil
	}

	parsed, err := s.parse(ctx, lines)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		ID:          common.GenerateUUID(),
		Title:       strings.TrimSpace(req.Title),
		URL:         strings.TrimSpace(req.URL),
		Source:      source,
		Ingredients: parsed,
		Servings:    units.NormalizeServes(req.Servings),
		TotalTime:   units.NormalizeTime(req.TotalTime),
	}

	names := make([]string, 0, len(parsed))
	seen := make(map[string]bool)
	for i, p := range parsed {
		switch {
		case p.IsSection:
			s.metrics.ObserveLine(metrics.OutcomeSection)
			if !seen[p.SectionName] {
				seen[p.SectionName] = true
				result.Sections = append(result.Sections, p.SectionName)
			}
			continue
		case p.LooksLikeIngredient:
			s.metrics.ObserveLine(metrics.OutcomeIngredient)
		default:
			s.metrics.ObserveLine(metrics.OutcomeUnparsed)
			result.Warnings = append(result.Warnings, fmt.Sprintf("line %d does not look like an ingredient: %q", i+1, p.Original))
		}
		names = append(names, p.Name)
	}

	result.Course = s.detector.DetectWithIngredients(course.Input{
		Title:       result.Title,
		URL:         result.URL,
		Ingredients: names,
	})
	if result.Course.Rule == "default" && categoryHint != "" {
		if hinted := s.detector.Detect(categoryHint); hinted.Rule != "default" {
			result.Course = hinted
		}
	}
	s.metrics.ObserveCourse(string(result.Course.Course), result.Course.Rule)

	s.setToCache(ctx, key, result)
	return result, nil
}

// parse hands large blocks to the worker pool and parses small ones inline.
func (s *ImportService) parse(ctx context.Context, lines []string) ([]ingredient.ParsedIngredient, error) {
	if s.pool != nil && len(lines) >= s.minLines {
		return s.pool.ParseLines(ctx, lines)
	}
	return s.parser.ParseLines(lines), nil
}

func requestLines(req ImportRequest) []string {
	if len(req.Lines) > 0 {
		return req.Lines
	}
	if req.Text == "" {
		return nil
	}
	text := strings.ReplaceAll(req.Text, "\r\n", "\n")
	return strings.Split(strings.ReplaceAll(text, "\r", "\n"), "\n")
}

func hasContent(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}
