package web

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/Seohyeoksu/lunchlens/internal/allergen"
	"github.com/Seohyeoksu/lunchlens/internal/analysis"
)

const recentReportLimit = 20

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	reports, err := s.service.ListReports(r.Context(), recentReportLimit)
	if err != nil {
		s.logger.Error("list reports failed", "error", err)
		// The dashboard is still usable without the archive panel.
		reports = nil
	}

	if err := s.renderPage(w,
		map[string]any{"Allergens": allergen.Catalog, "Reports": reports, "ActiveNav": "analyze"},
		"base.html", "pages/dashboard.html", "partials/report_list.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.service.ListReports(r.Context(), recentReportLimit)
	if err != nil {
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		s.logger.Error("list reports failed", "error", err)
		return
	}

	if err := s.renderPage(w,
		map[string]any{"Reports": reports, "ActiveNav": "reports"},
		"base.html", "pages/reports.html", "partials/report_list.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	report, err := s.service.GetReport(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to get report", http.StatusInternalServerError)
		s.logger.Error("get report failed", "id", id, "error", err)
		return
	}
	if report == nil {
		http.NotFound(w, r)
		return
	}

	if err := s.renderPage(w,
		map[string]any{"Report": report, "ActiveNav": "reports"},
		"base.html", "pages/report_detail.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	report, err := s.service.GetReport(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to get report", http.StatusInternalServerError)
		s.logger.Error("get report failed", "id", id, "error", err)
		return
	}
	if report == nil {
		http.NotFound(w, r)
		return
	}

	name := analysis.ReportFileName(report.CreatedAt)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))
	if _, err := w.Write([]byte(report.Body)); err != nil {
		s.logger.Error("write report failed", "id", id, "error", err)
	}
}
