package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/finstmt/analyzer/internal/analysis"
	"github.com/finstmt/analyzer/internal/domain"
	"github.com/finstmt/analyzer/internal/snapshot"
)

// Handler provides HTTP endpoints for ratio reports and snapshots.
type Handler struct {
	snapshots *snapshot.Service
	analyzer  *analysis.Service
}

// NewHandler creates a new API handler.
func NewHandler(snapshots *snapshot.Service, analyzer *analysis.Service) *Handler {
	return &Handler{snapshots: snapshots, analyzer: analyzer}
}

// GetRatios handles GET /api/v1/ratios/{ticker} — the ratio report derived
// from the latest stored snapshot.
func (h *Handler) GetRatios(w http.ResponseWriter, r *http.Request) {
	ticker := r.PathValue("ticker")

	s, err := h.snapshots.GetLatest(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshots for ticker")
			return
		}
		slog.Error("failed to get latest snapshot", "ticker", ticker, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.writeReport(w, ticker, s)
}

// GetRatiosByDate handles GET /api/v1/ratios/{ticker}/{date}.
func (h *Handler) GetRatiosByDate(w http.ResponseWriter, r *http.Request) {
	ticker := r.PathValue("ticker")
	dateStr := r.PathValue("date")

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}

	s, err := h.snapshots.GetByDate(r.Context(), ticker, date)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "snapshot not found for date")
			return
		}
		slog.Error("failed to get snapshot by date", "ticker", ticker, "date", dateStr, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.writeReport(w, ticker, s)
}

// ListSnapshots handles GET /api/v1/snapshots/{ticker}.
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	const maxLimit = 365
	ticker := r.PathValue("ticker")

	limit := 30
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}

	snapshots, err := h.snapshots.List(r.Context(), ticker, limit)
	if err != nil {
		slog.Error("failed to list snapshots", "ticker", ticker, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// RefreshSnapshot handles POST /api/v1/snapshots/{ticker}/refresh — fetches
// fresh statements, stores them, and returns the derived report.
func (h *Handler) RefreshSnapshot(w http.ResponseWriter, r *http.Request) {
	ticker := r.PathValue("ticker")

	stmts, err := h.snapshots.Refresh(r.Context(), ticker, utcToday())
	if err != nil {
		slog.Error("failed to refresh snapshot", "ticker", ticker, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to refresh snapshot")
		return
	}

	report, err := h.analyzer.AnalyzeStatements(stmts)
	if err != nil {
		h.writeAnalysisError(w, ticker, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// writeReport decodes the snapshot payload, derives the ratio report, and
// writes it.
func (h *Handler) writeReport(w http.ResponseWriter, ticker string, s *snapshot.Snapshot) {
	stmts, err := snapshot.Statements(s)
	if err != nil {
		slog.Error("failed to parse snapshot data", "ticker", ticker, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to parse snapshot data")
		return
	}

	report, err := h.analyzer.AnalyzeStatements(stmts)
	if err != nil {
		h.writeAnalysisError(w, ticker, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// writeAnalysisError distinguishes caller data errors (ambiguous periods in
// the provider payload) from internal failures.
func (h *Handler) writeAnalysisError(w http.ResponseWriter, ticker string, err error) {
	var ambiguous *domain.AmbiguousPeriodError
	if errors.As(err, &ambiguous) {
		writeError(w, http.StatusUnprocessableEntity, ambiguous.Error())
		return
	}
	slog.Error("failed to compute ratios", "ticker", ticker, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func utcToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
