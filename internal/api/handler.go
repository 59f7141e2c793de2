// Package api exposes static and modal analysis over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/alexiusacademia/gostiff/internal/analysis"
	"github.com/alexiusacademia/gostiff/internal/assembly"
	"github.com/alexiusacademia/gostiff/internal/material"
	"github.com/alexiusacademia/gostiff/internal/model"
	"github.com/alexiusacademia/gostiff/internal/nscp"
	"github.com/alexiusacademia/gostiff/internal/report"
	"github.com/alexiusacademia/gostiff/internal/solver"
	"github.com/alexiusacademia/gostiff/internal/version"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// MaxBodyBytes limits the size of a posted model
const MaxBodyBytes = 4 << 20

// Handler serves the analysis endpoints
type Handler struct {
	Library material.Library
	Points  int
	Cache   *assembly.Cache
}

// Config of the router
type Config struct {
	Rate  rate.Limit // requests per second per client
	Burst int
}

// NewRouter wires the endpoints under /api
func NewRouter(h *Handler, cfg Config) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	if cfg.Rate > 0 {
		limiter := NewIPRateLimiter(cfg.Rate, max(cfg.Burst, 1))
		api.Use(limiter.LimitMiddleware)
	}

	api.HandleFunc("/version", h.Version).Methods("GET")
	api.HandleFunc("/materials", h.Materials).Methods("GET")
	api.HandleFunc("/combinations", h.Combinations).Methods("GET")
	api.HandleFunc("/static", h.Static).Methods("POST")
	api.HandleFunc("/modal", h.Modal).Methods("POST")
	api.HandleFunc("/{analysis:static|modal}/report.{format:pdf|xlsx}", h.Report).Methods("POST")
	return r
}

func (h *Handler) options() analysis.Options {
	return analysis.Options{Library: h.Library, Points: h.Points, Cache: h.Cache}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// writeError maps analysis failures onto HTTP statuses: bad input is 400,
// a well-formed model that cannot be solved is 422
func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var ve *model.ValidationError
	var se *solver.StaticError
	var de *solver.DynamicError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.As(err, &se):
		status = http.StatusUnprocessableEntity
		resp.Reason = se.Reason.Error()
	case errors.As(err, &de):
		status = http.StatusUnprocessableEntity
		resp.Reason = de.Reason.Error()
	}
	writeJSON(w, status, resp)
}

func decodeModel(w http.ResponseWriter, r *http.Request) (*model.Model, bool) {
	m, err := model.Decode(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var ve *model.ValidationError
		if !errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request payload: " + err.Error()})
			return nil, false
		}
		writeError(w, err)
		return nil, false
	}
	return m, true
}

// Static runs a static analysis on the posted model
func (h *Handler) Static(w http.ResponseWriter, r *http.Request) {
	m, ok := decodeModel(w, r)
	if !ok {
		return
	}
	rep, err := analysis.Static(m, h.options())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep.Summary())
}

// Modal runs a modal analysis on the posted model
func (h *Handler) Modal(w http.ResponseWriter, r *http.Request) {
	m, ok := decodeModel(w, r)
	if !ok {
		return
	}
	rep, err := analysis.Modal(m, h.options())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep.Summary())
}

// Report returns the analysis as a PDF or Excel attachment
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	m, ok := decodeModel(w, r)
	if !ok {
		return
	}
	info := report.Info{Project: m.Name, Notes: m.Description}

	var write func(http.ResponseWriter) error
	switch vars["analysis"] {
	case "static":
		rep, err := analysis.Static(m, h.options())
		if err != nil {
			writeError(w, err)
			return
		}
		if vars["format"] == "pdf" {
			write = func(w http.ResponseWriter) error { return report.WriteStaticPDF(w, rep, info) }
		} else {
			write = func(w http.ResponseWriter) error { return report.WriteStaticWorkbook(w, rep) }
		}
	default:
		rep, err := analysis.Modal(m, h.options())
		if err != nil {
			writeError(w, err)
			return
		}
		if vars["format"] == "pdf" {
			write = func(w http.ResponseWriter) error { return report.WriteModalPDF(w, rep, info) }
		} else {
			write = func(w http.ResponseWriter) error { return report.WriteModalWorkbook(w, rep) }
		}
	}

	contentType := "application/pdf"
	if vars["format"] == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+vars["analysis"]+"."+vars["format"]+"\"")
	if err := write(w); err != nil {
		log.Printf("report generation: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
	}
}

// Materials lists the material library
func (h *Handler) Materials(w http.ResponseWriter, r *http.Request) {
	lib := h.Library
	if lib == nil {
		lib = material.Default()
	}
	out := make([]material.Material, 0, len(lib))
	for _, name := range lib.Names() {
		out = append(out, lib[name])
	}
	writeJSON(w, http.StatusOK, out)
}

// Combinations lists the NSCP load combinations
func (h *Handler) Combinations(w http.ResponseWriter, r *http.Request) {
	out := append([]nscp.LoadCombination{nscp.Unfactored}, nscp.LoadCombinations...)
	writeJSON(w, http.StatusOK, out)
}

// Version reports build metadata
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": version.Version,
		"commit":  version.GitCommit,
		"built":   version.BuildTime,
	})
}
