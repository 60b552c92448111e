package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/insightdelivered/ministry-roster/internal/aggregate"
	"github.com/insightdelivered/ministry-roster/internal/extractor"
	"github.com/insightdelivered/ministry-roster/internal/filter"
	"github.com/insightdelivered/ministry-roster/internal/models"
	"github.com/insightdelivered/ministry-roster/internal/source"
	"github.com/insightdelivered/ministry-roster/internal/writer"
)

// Chart is one frequency table as parallel label/value series, largest first.
type Chart struct {
	Name   string   `json:"name"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// StatsResponse is the JSON response from /api/stats.
type StatsResponse struct {
	Success bool          `json:"success"`
	Source  source.Origin `json:"source"`
	aggregate.Report
	Charts []Chart `json:"charts"`
}

// RecordsResponse is the JSON response from /api/records.
type RecordsResponse struct {
	Success bool                   `json:"success"`
	Source  source.Origin          `json:"source"`
	Year    string                 `json:"year"`
	Cutoff  string                 `json:"cutoff,omitempty"`
	Count   int                    `json:"count"`
	Records []models.ServiceRecord `json:"records"`
}

// TrendResponse is the JSON response from /api/trend.
type TrendResponse struct {
	Success     bool                    `json:"success"`
	Year        string                  `json:"year"`
	Granularity aggregate.Granularity   `json:"granularity"`
	Person      string                  `json:"person,omitempty"`
	Periods     []aggregate.PeriodCount `json:"periods"`
	// Roles breaks Periods down by media role when a person is given.
	Roles      []aggregate.RolePeriodCount `json:"roles,omitempty"`
	Volunteers []string                    `json:"volunteers"`
}

// VolunteersResponse is the JSON response from /api/volunteers.
type VolunteersResponse struct {
	Success bool `json:"success"`
	aggregate.TeamReport
}

// ImportResponse is the JSON response from /api/import.
type ImportResponse struct {
	Success   bool     `json:"success"`
	Imported  int      `json:"imported"`
	Discarded int      `json:"discarded"`
	Unparsed  []string `json:"unparsed,omitempty"`
}

// RefreshResponse is the JSON response from /api/refresh.
type RefreshResponse struct {
	Success bool          `json:"success"`
	Source  source.Origin `json:"source"`
	Count   int           `json:"count"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Resolver    *source.Resolver
	DefaultYear string
	Version     string
	Now         func() time.Time
	Logger      *zap.Logger
}

// NewApp returns a fiber app with the API routes and the JSON error handler.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "ministry-roster",
		BodyLimit:             32 << 20,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", h.HandleHealth)
	api.Get("/stats", h.HandleStats)
	api.Get("/records", h.HandleRecords)
	api.Get("/trend", h.HandleTrend)
	api.Get("/volunteers", h.HandleVolunteers)
	api.Get("/export", h.HandleExport)
	api.Post("/import", h.HandleImport)
	api.Post("/refresh", h.HandleRefresh)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": h.Version,
	})
}

func (h *Handler) HandleStats(c *fiber.Ctx) error {
	year, err := h.year(c, "")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	view, err := aggregate.ParseView(c.Query("view"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	ds := h.Resolver.Resolve(c.UserContext())
	if year == "" {
		year = h.defaultYear(ds.Records)
	}
	rep := aggregate.BuildView(ds.Records, aggregate.Selection{Year: year, View: view, Now: h.now()})
	if rep.Empty {
		h.logger().Info("no data for year",
			zap.String("year", year), zap.Strings("available", rep.AvailableYears))
	}

	charts := make([]Chart, 0, 4)
	for _, t := range writer.Tables(rep) {
		labels, values := t.Counts.Series()
		charts = append(charts, Chart{Name: t.Name, Labels: labels, Values: values})
	}

	return c.JSON(StatsResponse{
		Success: true,
		Source:  ds.Origin,
		Report:  rep,
		Charts:  charts,
	})
}

func (h *Handler) HandleRecords(c *fiber.Ctx) error {
	year, err := h.year(c, "")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	ds := h.Resolver.Resolve(c.UserContext())
	if year == "" {
		year = h.defaultYear(ds.Records)
	}
	rep := aggregate.BuildView(ds.Records, aggregate.Selection{Year: year, Now: h.now()})

	// Ensure records is never nil (nil marshals to JSON null, not [])
	records := rep.Records
	if records == nil {
		records = []models.ServiceRecord{}
	}

	return c.JSON(RecordsResponse{
		Success: true,
		Source:  ds.Origin,
		Year:    year,
		Cutoff:  rep.Cutoff,
		Count:   len(records),
		Records: records,
	})
}

func (h *Handler) HandleTrend(c *fiber.Ctx) error {
	year, err := h.year(c, filter.AllYears)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	g, err := aggregate.ParseGranularity(c.Query("granularity"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	person := c.Query("person")

	ds := h.Resolver.Resolve(c.UserContext())
	rep := aggregate.BuildView(ds.Records, aggregate.Selection{Year: year, Now: h.now()})

	resp := TrendResponse{
		Success:     true,
		Year:        year,
		Granularity: g,
		Person:      person,
		Periods:     aggregate.PeriodCounts(rep.Records, g),
		Volunteers:  aggregate.Volunteers(rep.Records),
	}
	if person != "" {
		resp.Periods = aggregate.VolunteerTrend(rep.Records, person, g)
		resp.Roles = aggregate.VolunteerRoles(rep.Records, person, g)
	}
	return c.JSON(resp)
}

// HandleVolunteers reports team activity: who served in the last weeks and
// quarter up to today, and how many volunteers served, joined and left per
// period of the selected year.
func (h *Handler) HandleVolunteers(c *fiber.Ctx) error {
	year, err := h.year(c, filter.AllYears)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	g, err := aggregate.ParseGranularity(c.Query("granularity"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	weeks := defaultWeeks
	if q := c.Query("weeks"); q != "" {
		weeks, err = strconv.Atoi(q)
		if err != nil || weeks <= 0 {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("weeks must be a positive number, got %q", q))
		}
	}

	ds := h.Resolver.Resolve(c.UserContext())
	sel := aggregate.Selection{Year: year, Now: h.now()}

	return c.JSON(VolunteersResponse{
		Success:    true,
		TeamReport: aggregate.BuildTeam(ds.Records, sel, g, weeks),
	})
}

func (h *Handler) HandleExport(c *fiber.Ctx) error {
	year, err := h.year(c, "")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	now := h.now()
	ds := h.Resolver.Resolve(c.UserContext())
	if year == "" {
		year = h.defaultYear(ds.Records)
	}
	export := writer.BuildExport(ds.Records, year, string(ds.Origin), now)

	var buf bytes.Buffer
	if err := writer.WriteExport(&buf, export); err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Attachment(writer.ExportFileName(now))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (h *Handler) HandleImport(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}

	res, err := extractor.Extract(fh.Filename, data)
	if err != nil {
		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, extractor.ErrUnsupportedFormat) {
			status = fiber.StatusBadRequest
		}
		return writeError(c, status, err.Error())
	}

	if err := h.Resolver.Import(c.UserContext(), res.Records); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, source.ErrNoData) {
			status = fiber.StatusUnprocessableEntity
		}
		return writeError(c, status, err.Error())
	}

	h.logger().Info("roster imported",
		zap.String("file", fh.Filename),
		zap.Int("records", len(res.Records)),
		zap.Int("discarded", res.Discarded))

	return c.JSON(ImportResponse{
		Success:   true,
		Imported:  len(res.Records),
		Discarded: res.Discarded,
		Unparsed:  res.Unparsed,
	})
}

func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	if err := h.Resolver.Refresh(c.UserContext()); err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	ds := h.Resolver.Resolve(c.UserContext())
	return c.JSON(RefreshResponse{
		Success: true,
		Source:  ds.Origin,
		Count:   len(ds.Records),
	})
}

// defaultWeeks is the recent-activity window of /api/volunteers.
const defaultWeeks = 4

// year reads the year query parameter, falling back to def when absent.
func (h *Handler) year(c *fiber.Ctx, def string) (string, error) {
	year := c.Query("year")
	if year == "" {
		return def, nil
	}
	if !filter.ValidYear(year) {
		return "", fmt.Errorf("year must be YYYY or %q, got %q", filter.AllYears, year)
	}
	return year, nil
}

// defaultYear is the configured year, or the newest year with data when
// the configured one has none.
func (h *Handler) defaultYear(records []models.ServiceRecord) string {
	year := filter.YearOrLatest(records, h.DefaultYear)
	if year != h.DefaultYear {
		h.logger().Debug("default year has no data",
			zap.String("configured", h.DefaultYear), zap.String("using", year))
	}
	return year
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.NewNop()
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return writeError(c, code, err.Error())
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   msg,
	})
}
