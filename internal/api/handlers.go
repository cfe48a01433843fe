// Package api exposes the matching pipeline over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ZaryabShah/matching-score/internal/models"
	"github.com/ZaryabShah/matching-score/internal/storage"
	"github.com/ZaryabShah/matching-score/internal/workflow"
)

type Handlers struct {
	workflow *workflow.Service
	store    *storage.ReportStore
	logger   *slog.Logger
}

func NewHandlers(wf *workflow.Service, store *storage.ReportStore, logger *slog.Logger) *Handlers {
	return &Handlers{
		workflow: wf,
		store:    store,
		logger:   logger.With("component", "api"),
	}
}

// Routes mounts the versioned API surface.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/match", h.MatchRecords)
		r.Post("/workflows", h.RunWorkflow)
		r.Get("/reports", h.ListReports)
		r.Get("/reports/{reportID}", h.GetReport)
	})
	return r
}

// MatchRequest carries pre-fetched record sets for direct scoring.
type MatchRequest struct {
	SearchTerm string          `json:"search_term"`
	Sources    []models.Record `json:"source_records"`
	Targets    []models.Record `json:"target_records"`
}

// MatchRecords scores caller-supplied records without touching the
// marketplaces.
func (h *Handlers) MatchRecords(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Sources) == 0 || len(req.Targets) == 0 {
		h.respondError(w, http.StatusBadRequest, "source_records and target_records are required")
		return
	}

	report, err := h.workflow.MatchRecords(r.Context(), req.SearchTerm, req.Sources, req.Targets)
	if err != nil {
		h.logger.Error("direct match failed", "error", err)
		h.respondError(w, http.StatusInternalServerError, "matching failed")
		return
	}

	h.respondJSON(w, http.StatusOK, report)
}

// WorkflowRequest starts a full search-and-match run. MaxResults optionally
// trims the ranked comparison list below the server-wide cap.
type WorkflowRequest struct {
	SearchTerm string `json:"search_term"`
	MaxResults int    `json:"max_results,omitempty"`
}

// RunWorkflow executes the pipeline synchronously and returns the finished
// report.
func (h *Handlers) RunWorkflow(w http.ResponseWriter, r *http.Request) {
	var req WorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.SearchTerm == "" {
		h.respondError(w, http.StatusBadRequest, "search_term is required")
		return
	}

	report, err := h.workflow.Run(r.Context(), req.SearchTerm)
	if err != nil {
		h.logger.Error("workflow failed", "search_term", req.SearchTerm, "error", err)
		if errors.Is(err, workflow.ErrNoSourceRecords) || errors.Is(err, workflow.ErrNoTargetRecords) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusBadGateway, "workflow failed")
		return
	}

	if req.MaxResults > 0 && req.MaxResults < len(report.Comparisons) {
		report.Comparisons = report.Comparisons[:req.MaxResults]
	}

	h.respondJSON(w, http.StatusOK, report)
}

func (h *Handlers) ListReports(w http.ResponseWriter, r *http.Request) {
	infos, err := h.store.List()
	if err != nil {
		h.logger.Error("failed to list reports", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	if infos == nil {
		infos = []storage.ReportInfo{}
	}
	h.respondJSON(w, http.StatusOK, infos)
}

func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	report, err := h.store.Load(reportID)
	if err != nil {
		if errors.Is(err, storage.ErrReportNotFound) {
			h.respondError(w, http.StatusNotFound, "report not found")
			return
		}
		h.logger.Error("failed to load report", "report_id", reportID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to load report")
		return
	}

	h.respondJSON(w, http.StatusOK, report)
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
