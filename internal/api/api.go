package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"UptrendScanner/internal/config"
	"UptrendScanner/internal/metrics"
	"UptrendScanner/internal/model"
	"UptrendScanner/internal/report"
	"UptrendScanner/internal/scanner"
)

// Scanner is the scan pipeline consumed by the HTTP handlers.
type Scanner interface {
	Run(ctx context.Context, trigger model.TriggerType, categories []string) (*model.ScanResult, error)
	Analyze(ctx context.Context, symbol string) (model.SignalRecord, error)
	Universe() model.Universe
}

// API serves scan results over HTTP.
type API struct {
	Scanner    Scanner
	Categories []string
	Filter     report.Filter
	Metrics    *metrics.Metrics
}

// NewRouter builds the chi router with all routes mounted.
func NewRouter(a *API) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", a.HandleHealth)
	r.Get("/api/categories", a.HandleCategories)
	r.With(middleware.Timeout(5*time.Minute)).Get("/api/scan", a.HandleScan)
	r.Get("/api/symbols/{symbol}", a.HandleSymbol)
	if a.Metrics != nil {
		r.Handle("/metrics", a.Metrics.Handler())
	}
	return r
}

func (a *API) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, "healthy")
}

type categoryInfo struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Symbols  []string `json:"symbols"`
	Selected bool     `json:"selected"`
}

func (a *API) HandleCategories(w http.ResponseWriter, r *http.Request) {
	selected := make(map[string]bool, len(a.Categories))
	for _, k := range a.Categories {
		selected[k] = true
	}
	u := a.Scanner.Universe()
	out := make([]categoryInfo, len(u))
	for i, c := range u {
		out[i] = categoryInfo{Key: c.Key, Label: c.Label, Symbols: c.Symbols, Selected: selected[c.Key]}
	}
	WriteJSON(w, http.StatusOK, out)
}

type scanResponse struct {
	ID         string               `json:"id"`
	Trigger    model.TriggerType    `json:"trigger"`
	Categories []string             `json:"categories"`
	StartedAt  time.Time            `json:"started_at"`
	FinishedAt time.Time            `json:"finished_at"`
	Attempted  int                  `json:"attempted"`
	Failed     int                  `json:"failed"`
	NoData     bool                 `json:"no_data"`
	Summary    report.Summary       `json:"summary"`
	Signals    []model.SignalRecord `json:"signals"`
}

// HandleScan runs a scan. Query: categories=a,b (present but empty selects
// nothing), min_score=0..100, all=true to include non-uptrend records.
func (a *API) HandleScan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	cats := a.Categories
	if _, ok := q["categories"]; ok {
		cats = config.SplitList(q.Get("categories"))
	}

	f := a.Filter
	if v := q.Get("min_score"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			WriteError(w, http.StatusBadRequest, "min_score must be an integer in [0,100]")
			return
		}
		f.MinScore = n
	}
	if v := q.Get("all"); v != "" {
		all, err := strconv.ParseBool(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "all must be a boolean")
			return
		}
		f.UptrendOnly = !all
	}

	res, err := a.Scanner.Run(r.Context(), model.TriggerAPI, cats)
	if errors.Is(err, scanner.ErrUnknownCategory) {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("[ERROR] api scan: %v", err)
		WriteError(w, http.StatusInternalServerError, "scan failed")
		return
	}

	view := report.Build(res, f)
	WriteJSON(w, http.StatusOK, scanResponse{
		ID:         res.ID,
		Trigger:    res.Trigger,
		Categories: res.Categories,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
		Attempted:  res.Attempted,
		Failed:     res.Failed,
		NoData:     res.NoData(),
		Summary:    view.Summary,
		Signals:    view.Rows,
	})
}

func (a *API) HandleSymbol(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "symbol")))
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	rec, err := a.Scanner.Analyze(r.Context(), symbol)
	if errors.Is(err, scanner.ErrDataUnavailable) {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("no data for %s", symbol))
		return
	}
	if err != nil {
		log.Printf("[ERROR] api analyze %s: %v", symbol, err)
		WriteError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	WriteJSON(w, http.StatusOK, rec)
}
