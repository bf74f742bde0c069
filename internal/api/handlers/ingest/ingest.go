package ingest

import (
	"net/http"
	"strings"

	"recipe-ingest/internal/core/course"
	"recipe-ingest/internal/core/ingredient"
	"recipe-ingest/internal/core/metrics"
	"recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/core/units"
	"recipe-ingest/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ParseRequest carries one line or a block of lines.
type ParseRequest struct {
	Line  string   `json:"line"`
	Lines []string `json:"lines"`
}

// ParseResponse holds Ingredient for single-line requests and Ingredients otherwise.
type ParseResponse struct {
	Ingredient  *ingredient.ParsedIngredient  `json:"ingredient,omitempty"`
	Ingredients []ingredient.ParsedIngredient `json:"ingredients,omitempty"`
}

type CategorizeRequest struct {
	Items []string `json:"items" binding:"required"`
	Group bool     `json:"group"`
}

type CategorizeResponse struct {
	Items  []recipe.ShoppingItem  `json:"items"`
	Groups []recipe.ShoppingGroup `json:"groups,omitempty"`
}

// DetectRequest is either free text or title/url/ingredients.
type DetectRequest struct {
	Text        string   `json:"text"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Ingredients []string `json:"ingredients"`
}

type UnitsRequest struct {
	Unit   string `json:"unit"`
	Amount string `json:"amount"`
	Time   string `json:"time"`
	Serves string `json:"serves"`
}

type UnitsResponse struct {
	Unit    string `json:"unit,omitempty"`
	Display string `json:"display,omitempty"`
	Known   bool   `json:"known"`
	Plural  bool   `json:"plural"`
	Time    string `json:"time,omitempty"`
	Serves  string `json:"serves,omitempty"`
}

type ImportURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// Handler serves the ingestion endpoints.
type Handler struct {
	parser   *ingredient.Parser
	detector *course.Detector
	importer *recipe.ImportService
	shopping *recipe.ShoppingService
	metrics  *metrics.Collector
	debug    bool
}

// NewHandler creates the ingestion handler.
func NewHandler(parser *ingredient.Parser, detector *course.Detector, importer *recipe.ImportService, shopping *recipe.ShoppingService, collector *metrics.Collector, debug bool) *Handler {
	return &Handler{
		parser:   parser,
		detector: detector,
		importer: importer,
		shopping: shopping,
		metrics:  collector,
		debug:    debug,
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	ce := common.AsCustomError(err)
	if common.IsValidationError(err) {
		ce = common.Wrap(common.ErrInvalidRequest, err)
		ce.Message = err.Error()
	}
	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", ce.Code),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
	}
	if ce.Status >= http.StatusInternalServerError {
		common.LogError("Request failed", fields...)
	} else {
		common.LogWarn("Request rejected", fields...)
	}
	common.WriteError(c, ce, h.debug)
}

func (h *Handler) bind(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		h.fail(c, common.Wrap(common.ErrInvalidRequest, err))
		return false
	}
	return true
}

// HandleParse parses one line or a block of lines.
func (h *Handler) HandleParse(c *gin.Context) {
	var req ParseRequest
	if !h.bind(c, &req) {
		return
	}

	switch {
	case len(req.Lines) > 0:
		parsed := h.parser.ParseLines(req.Lines)
		for _, p := range parsed {
			h.metrics.ObserveLine(outcome(p))
		}
		c.JSON(http.StatusOK, ParseResponse{Ingredients: parsed})
	case strings.TrimSpace(req.Line) != "":
		p := h.parser.Parse(req.Line)
		h.metrics.ObserveLine(outcome(p))
		c.JSON(http.StatusOK, ParseResponse{Ingredient: &p})
	default:
		h.fail(c, common.NewValidationError("line or lines is required"))
	}
}

func outcome(p ingredient.ParsedIngredient) string {
	switch {
	case p.IsSection:
		return metrics.OutcomeSection
	case p.LooksLikeIngredient:
		return metrics.OutcomeIngredient
	default:
		return metrics.OutcomeUnparsed
	}
}

// HandleCategorize assigns shopping categories and canonical units.
func (h *Handler) HandleCategorize(c *gin.Context) {
	var req CategorizeRequest
	if !h.bind(c, &req) {
		return
	}

	items := h.shopping.Categorize(req.Items)
	resp := CategorizeResponse{Items: items}
	if req.Group {
		resp.Groups = h.shopping.Group(items)
	}
	c.JSON(http.StatusOK, resp)
}

// HandleDetectCourse classifies a recipe.
func (h *Handler) HandleDetectCourse(c *gin.Context) {
	var req DetectRequest
	if !h.bind(c, &req) {
		return
	}

	var res course.Result
	switch {
	case req.Title != "" || req.URL != "" || len(req.Ingredients) > 0:
		res = h.detector.DetectWithIngredients(course.Input{
			Title:       req.Title,
			URL:         req.URL,
			Ingredients: req.Ingredients,
		})
	case req.Text != "":
		res = h.detector.Detect(req.Text)
	default:
		h.fail(c, common.NewValidationError("text or title/url/ingredients is required"))
		return
	}
	h.metrics.ObserveCourse(string(res.Course), res.Rule)
	c.JSON(http.StatusOK, res)
}

// HandleNormalizeUnits normalizes a unit and amount, a time and a servings string.
func (h *Handler) HandleNormalizeUnits(c *gin.Context) {
	var req UnitsRequest
	if !h.bind(c, &req) {
		return
	}
	if req.Unit == "" && req.Time == "" && req.Serves == "" {
		h.fail(c, common.NewValidationError("unit, time or serves is required"))
		return
	}

	resp := UnitsResponse{}
	if req.Unit != "" {
		resp.Unit = units.Normalize(req.Unit)
		resp.Display = units.Pluralize(req.Unit, req.Amount)
		resp.Known = units.IsUnit(req.Unit)
		resp.Plural = units.IsPluralAmount(req.Amount)
	}
	if req.Time != "" {
		resp.Time = units.NormalizeTime(req.Time)
	}
	if req.Serves != "" {
		resp.Serves = units.NormalizeServes(req.Serves)
	}
	c.JSON(http.StatusOK, resp)
}

// HandleImport imports pasted recipe text.
func (h *Handler) HandleImport(c *gin.Context) {
	var req recipe.ImportRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.importer.ImportText(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleImportURL imports a recipe page.
func (h *Handler) HandleImportURL(c *gin.Context) {
	var req ImportURLRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.importer.ImportURL(c.Request.Context(), req.URL)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
