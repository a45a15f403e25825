// Package server exposes the tracker over a JSON REST API. Identity is the
// upstream identity layer's job: it arrives as the X-Owner-ID header, and its
// absence means an empty collection for reads and a 401 for writes.
package server

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vkotenko/fintrack/internal/charts"
	"github.com/vkotenko/fintrack/internal/export"
	"github.com/vkotenko/fintrack/internal/gateway"
	"github.com/vkotenko/fintrack/internal/model"
	"github.com/vkotenko/fintrack/internal/projection"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const ownerHeader = "X-Owner-ID"

type Server struct {
	*http.Server

	gw     *gateway.Gateway
	charts *charts.Generator
}

func New(addr string, gw *gateway.Gateway) *Server {
	s := &Server{
		Server: &http.Server{Addr: addr},
		gw:     gw,
		charts: charts.NewGenerator(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/transactions", s.handleList)
		r.Post("/transactions", s.handleAdd)
		r.Delete("/transactions/{id}", s.handleRemove)
		r.Get("/summary", s.handleSummary)
		r.Get("/export/csv", s.handleExportCSV)
		r.Get("/export/pdf", s.handleExportPDF)
		r.Get("/export/print", s.handleExportPrint)
		r.Get("/charts/balance", s.handleBalanceChart)
		r.Get("/charts/categories", s.handleCategoryChart)
	})

	s.Handler = r
	return s
}

func ownerID(r *http.Request) string {
	return r.Header.Get(ownerHeader)
}

// parseListQuery reads the filter/sort configuration from query parameters,
// falling back to the list view defaults (all types, date descending).
func parseListQuery(r *http.Request) (model.FilterOptions, model.SortOptions) {
	q := r.URL.Query()

	filter := model.FilterOptions{
		Type:     model.FilterAll,
		DateFrom: q.Get("from"),
		DateTo:   q.Get("to"),
	}
	switch q.Get("type") {
	case "income":
		filter.Type = model.FilterIncome
	case "expense":
		filter.Type = model.FilterExpense
	}

	order := model.SortOptions{Field: model.SortByDate, Order: model.Descending}
	switch q.Get("sort") {
	case "amount":
		order.Field = model.SortByAmount
	case "category":
		order.Field = model.SortByCategory
	}
	if q.Get("order") == "asc" {
		order.Order = model.Ascending
	}

	return filter, order
}

// listFor loads the owner's collection and applies filter-then-sort.
func (s *Server) listFor(r *http.Request) ([]model.Transaction, error) {
	transactions, err := s.gw.Load(r.Context(), ownerID(r))
	if err != nil {
		return nil, err
	}
	filter, order := parseListQuery(r)
	return projection.List(transactions, filter, order), nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.listFor(r)
	if err != nil {
		logger.Error().Err(err).Msg("list transactions")
		fail(w, err)
		return
	}
	success(w, http.StatusOK, list)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var draft model.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Error: "invalid request body"})
		return
	}

	created, err := s.gw.Add(r.Context(), ownerID(r), draft)
	if err != nil {
		logger.Error().Err(err).Msg("add transaction")
		fail(w, err)
		return
	}
	success(w, http.StatusCreated, created)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	if err := s.gw.Remove(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		logger.Error().Err(err).Msg("remove transaction")
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSummary always reports global totals over the unfiltered collection.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.gw.Load(r.Context(), ownerID(r))
	if err != nil {
		logger.Error().Err(err).Msg("load for summary")
		fail(w, err)
		return
	}
	success(w, http.StatusOK, projection.Summarize(transactions))
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	list, err := s.listFor(r)
	if err != nil {
		fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename("csv"))
	if err := export.WriteCSV(w, list); err != nil {
		logger.Error().Err(err).Msg("write csv export")
	}
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	list, err := s.listFor(r)
	if err != nil {
		fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename("pdf"))
	if err := export.WritePDF(w, list); err != nil {
		logger.Error().Err(err).Msg("write pdf export")
	}
}

func (s *Server) handleExportPrint(w http.ResponseWriter, r *http.Request) {
	list, err := s.listFor(r)
	if err != nil {
		fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.WritePrintDocument(w, list); err != nil {
		logger.Error().Err(err).Msg("write print document")
	}
}

func (s *Server) handleBalanceChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, s.charts.BalanceHistory)
}

func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, s.charts.ExpenseBreakdown)
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, render func([]model.Transaction) ([]byte, error)) {
	transactions, err := s.gw.Load(r.Context(), ownerID(r))
	if err != nil {
		fail(w, err)
		return
	}

	png, err := render(transactions)
	if err != nil {
		logger.Error().Err(err).Msg("render chart")
		fail(w, err)
		return
	}
	if png == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		logger.Error().Err(err).Msg("write chart")
	}
}
