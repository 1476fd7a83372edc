package api

import (
	"bikeshare/internal/engine"
	"bikeshare/internal/models"
	"bikeshare/internal/render"
	"bikeshare/internal/views"
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

type Config struct {
	Source   engine.Source
	Theme    views.Theme
	Format   render.Format
	Title    string
	LogoPath string
	Metrics  *Metrics
}

type Handler struct {
	source  engine.Source
	theme   views.Theme
	format  render.Format
	title   string
	logo    string
	metrics *Metrics
}

func NewHandler(cfg Config) *Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}
	if cfg.Format == "" {
		cfg.Format = render.SVG
	}
	return &Handler{
		source:  cfg.Source,
		theme:   cfg.Theme,
		format:  cfg.Format,
		title:   cfg.Title,
		logo:    cfg.LogoPath,
		metrics: cfg.Metrics,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.GetDashboard)
	e.GET("/logo", h.GetLogo)
	e.GET("/charts/:view", h.GetChart)
	e.GET("/healthz", h.GetHealth)
	e.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))

	api := e.Group("/api")
	api.GET("/summary", h.GetSummary)
	api.GET("/season", h.GetBySeason)
	api.GET("/year", h.GetByYear)
	api.GET("/month", h.GetByMonth)
	api.GET("/weekday", h.GetByWeekday)
	api.GET("/daily", h.GetDaily)
}

// --- PIPELINE ---

// run is one render cycle: load the base table, apply the requested range
// and aggregate.
func (h *Handler) run(c echo.Context) (*models.Dashboard, error) {
	start := time.Now()
	ctx := c.Request().Context()

	table, err := h.source.Load(ctx)
	if err != nil {
		return nil, httpError(err)
	}
	bounds, _ := table.Bounds()
	rng, err := engine.ParseDateRange(c.QueryParam("start"), c.QueryParam("end"), bounds)
	if err != nil {
		return nil, httpError(err)
	}
	data, err := engine.Run(ctx, table, rng)
	if err != nil {
		return nil, httpError(err)
	}
	h.metrics.pipeline.Observe(time.Since(start).Seconds())
	return data, nil
}

func (h *Handler) page(data *models.Dashboard) (*render.Page, error) {
	page := render.NewPage(h.theme, h.format)
	if err := views.Render(page, h.theme, data); err != nil {
		return nil, err
	}
	return page, nil
}

func httpError(err error) error {
	switch {
	case engine.ErrInvalidRange.Is(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	case engine.ErrDataUnavailable.Is(err), engine.ErrMalformedDate.Is(err):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error()).SetInternal(err)
	}
	return err
}

// --- HANDLERS ---

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) GetDashboard(c echo.Context) error {
	data, err := h.run(c)
	if err != nil {
		h.metrics.observe("page", err)
		return err
	}
	page, err := h.page(data)
	if err != nil {
		h.metrics.observe("page", err)
		return err
	}
	var buf bytes.Buffer
	err = page.HTML(&buf, render.Meta{
		Title:   h.title,
		Range:   data.Range,
		Bounds:  data.Bounds,
		Empty:   data.Empty,
		HasLogo: h.logo != "",
	})
	h.metrics.observe("page", err)
	if err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// GetChart serves a single chart image. Charts without data answer 204.
func (h *Handler) GetChart(c echo.Context) error {
	name := c.Param("view")
	data, err := h.run(c)
	if err != nil {
		h.metrics.observe(name, err)
		return err
	}
	page, err := h.page(data)
	h.metrics.observe(name, err)
	if err != nil {
		return err
	}
	a, ok := page.Chart(name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown chart "+strconv.Quote(name))
	}
	if a.Blank {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Blob(http.StatusOK, a.MIME, a.Image)
}

func (h *Handler) GetLogo(c echo.Context) error {
	if h.logo == "" {
		return echo.ErrNotFound
	}
	return c.File(h.logo)
}

func (h *Handler) GetHealth(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

type summary struct {
	Range       models.DateRange `json:"range"`
	Bounds      models.DateRange `json:"bounds"`
	Days        int              `json:"days"`
	TotalOrders int64            `json:"total_orders"`
	Formatted   string           `json:"total_orders_formatted"`
	Empty       bool             `json:"empty"`
}

func (h *Handler) GetSummary(c echo.Context) error {
	data, err := h.run(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary{
		Range:       data.Range,
		Bounds:      data.Bounds,
		Days:        len(data.Daily),
		TotalOrders: data.TotalOrders,
		Formatted:   views.FormatCount(data.TotalOrders),
		Empty:       data.Empty,
	})
}

func (h *Handler) GetBySeason(c echo.Context) error {
	return h.aggregate(c, func(d *models.Dashboard) []models.AggregateRow { return d.Season })
}

func (h *Handler) GetByYear(c echo.Context) error {
	return h.aggregate(c, func(d *models.Dashboard) []models.AggregateRow { return d.Year })
}

func (h *Handler) GetByMonth(c echo.Context) error {
	return h.aggregate(c, func(d *models.Dashboard) []models.AggregateRow { return d.Month })
}

func (h *Handler) GetByWeekday(c echo.Context) error {
	return h.aggregate(c, func(d *models.Dashboard) []models.AggregateRow { return d.Weekday })
}

func (h *Handler) aggregate(c echo.Context, pick func(*models.Dashboard) []models.AggregateRow) error {
	data, err := h.run(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pick(data))
}

// GetDaily returns the chronological series, paginated.
func (h *Handler) GetDaily(c echo.Context) error {
	data, err := h.run(c)
	if err != nil {
		return err
	}
	rows := data.Daily
	total := len(rows)
	limit, offset := getPaginationParams(c, total)

	if offset >= total {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"data":   []models.DailyRow{},
			"total":  total,
			"limit":  limit,
			"offset": offset,
		})
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   rows[offset:end],
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
