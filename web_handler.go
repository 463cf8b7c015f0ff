package main

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/registry_dashboard/config"
	"github.com/pivolan/registry_dashboard/domain/models"
	"github.com/pivolan/registry_dashboard/plot"
	"go.uber.org/zap"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

type cycleFunc func(ctx context.Context, sel models.Selection) (*models.Dashboard, error)

type webHandler struct {
	log   *zap.Logger
	cycle cycleFunc
}

func newRouter(cfg *config.Config, log *zap.Logger) http.Handler {
	h := &webHandler{
		log: log,
		cycle: func(ctx context.Context, sel models.Selection) (*models.Dashboard, error) {
			return runCycle(ctx, cfg, log, sel)
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/", h.handleDashboard)
	r.Get("/charts/{name}", h.handleChart)
	r.Get("/export/drilldown.csv", h.handleDrillDownCSV)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// parseSelection reads the widget state the page sends back on every interaction.
func parseSelection(r *http.Request) models.Selection {
	q := r.URL.Query()
	more := q.Get("more")
	return models.Selection{
		Months:   q["month"],
		Column:   q.Get("column"),
		Value:    q.Get("value"),
		ShowMore: more == "1" || more == "true" || more == "on",
		Reveal:   q.Get("reveal"),
	}
}

func (h *webHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.cycle(r.Context(), parseSelection(r))
	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := dashboardTemplate.Execute(w, dashboardView{d}); err != nil {
		h.log.Error("render dashboard", zap.Error(err))
	}
}

func (h *webHandler) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	png := strings.HasSuffix(name, ".png")
	name = strings.TrimSuffix(name, ".png")

	d, err := h.cycle(r.Context(), parseSelection(r))
	if err != nil {
		http.Error(w, d.Error, http.StatusInternalServerError)
		return
	}
	data, ok := chartData(d, name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if png {
		b, err := plot.DrawPlotBar(data)
		if errors.Is(err, plot.ErrNoData) {
			http.Error(w, "no data", http.StatusNotFound)
			return
		}
		if err != nil {
			h.log.Error("draw chart", zap.String("chart", name), zap.Error(err))
			http.Error(w, "Error rendering chart", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `inline; filename="`+name+`.png"`)
		w.Write(b)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := plot.RenderBarPage(w, data); err != nil {
		h.log.Error("render chart", zap.String("chart", name), zap.Error(err))
	}
}

func (h *webHandler) handleDrillDownCSV(w http.ResponseWriter, r *http.Request) {
	d, err := h.cycle(r.Context(), parseSelection(r))
	if err != nil {
		http.Error(w, d.Error, http.StatusInternalServerError)
		return
	}
	if d.DrillDown == nil {
		http.NotFound(w, r)
		return
	}
	fileName := "drilldown_" + slug(d.Selection.Column) + "_" + slug(d.Selection.Value) + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.Write([]byte(GenerateDrillDownCSV(d.DrillDown)))
}

// chartData maps a chart name to its series. ok is false for unknown names
// and for charts whose column is absent from the table.
func chartData(d *models.Dashboard, name string) (data plot.DataXStringsForGraph, ok bool) {
	switch name {
	case "unique":
		labels, values := make([]string, 0, len(d.UniqueCounts)), make([]float64, 0, len(d.UniqueCounts))
		for _, c := range d.UniqueCounts {
			labels = append(labels, c.Column)
			values = append(values, float64(c.Unique))
		}
		return plot.NewDataXStringsForGraph(labels, values, "Column", "Unique Values", "Unique Values per Column", "#4CAF50"), true
	case "source":
		if !d.HasSource {
			return data, false
		}
		labels, values := splitRanking(d.BySource)
		return plot.NewDataXStringsForGraph(labels, values, "Source", "Records", "Records by Source", "#008CBA"), true
	case "bank":
		if !d.HasBank {
			return data, false
		}
		labels, values := splitRanking(d.ByBank)
		return plot.NewDataXStringsForGraph(labels, values, "Bank", "Records", "Records by Bank", "#FF9800"), true
	case "top-banks":
		if !d.HasBank {
			return data, false
		}
		labels, values := splitRanking(d.ByBank)
		return plot.NewDataXStringsForGraph(labels, values, "Count", "Bank", "Top Contributing Banks", "#38bdf8").Horizontal(), true
	}
	return data, false
}

func splitRanking(ranking []models.ValueCount) ([]string, []float64) {
	labels := make([]string, 0, len(ranking))
	values := make([]float64, 0, len(ranking))
	for _, vc := range ranking {
		labels = append(labels, vc.Value)
		values = append(values, float64(vc.Count))
	}
	return labels, values
}

// slug turns a column name or value into an ASCII file name fragment.
func slug(s string) string {
	return replaceSpecialSymbols(unidecode.Unidecode(s))
}

type dashboardView struct {
	*models.Dashboard
}

func (v dashboardView) query() url.Values {
	q := url.Values{}
	for _, m := range v.Selection.Months {
		q.Add("month", m)
	}
	q.Set("column", v.Selection.Column)
	q.Set("value", v.Selection.Value)
	if v.Selection.ShowMore {
		q.Set("more", "1")
	}
	if v.Selection.Reveal != "" {
		q.Set("reveal", v.Selection.Reveal)
	}
	return q
}

// Link is the current page with one query parameter replaced; an empty value drops it.
func (v dashboardView) Link(key, value string) template.URL {
	q := v.query()
	if value == "" {
		q.Del(key)
	} else {
		q.Set(key, value)
	}
	return template.URL("/?" + q.Encode())
}

func (v dashboardView) ChartURL(name string) template.URL {
	return template.URL("/charts/" + url.PathEscape(name) + "?" + v.query().Encode())
}

func (v dashboardView) ExportURL() template.URL {
	return template.URL("/export/drilldown.csv?" + v.query().Encode())
}

func (v dashboardView) MonthSelected(month string) bool {
	for _, m := range v.Selection.Months {
		if m == month {
			return true
		}
	}
	return false
}

func (v dashboardView) DrillDownHTML() template.HTML {
	if v.DrillDown == nil {
		return ""
	}
	return template.HTML(GenerateDrillDownHTML(v.DrillDown))
}
