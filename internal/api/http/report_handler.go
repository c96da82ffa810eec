package http

import (
	"net/http"
	"strconv"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/service"
)

// ReportHandler serves the admin reporting projections
type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.OverdueRentals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *ReportHandler) History(w http.ResponseWriter, r *http.Request) {
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	switch status {
	case "", domain.RentalStatusActive, domain.RentalStatusCompleted:
	default:
		writeError(w, domain.InvalidRangef("invalid status %q", status))
		return
	}

	rows, err := h.reports.RentalHistory(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *ReportHandler) MonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := time.Now().UTC()

	month := int(now.Month())
	year := now.Year()
	if raw := q.Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			writeError(w, domain.InvalidRangef("invalid month %q", raw))
			return
		}
		month = m
	}
	if raw := q.Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 2000 || y > 2200 {
			writeError(w, domain.InvalidRangef("invalid year %q", raw))
			return
		}
		year = y
	}

	lines, total, err := h.reports.MonthlyRevenueReport(r.Context(), time.Month(month), year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month":       month,
		"year":        year,
		"lines":       lines,
		"total_cents": total,
	})
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.DashboardStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *ReportHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	stats, err := h.reports.CustomerStats(r.Context(), claims.SubjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
