package web

import (
	"net/http"
	"strings"

	"github.com/Seohyeoksu/lunchlens/internal/allergen"
)

func (s *Server) handleListAllergens(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w,
		map[string]any{"Allergens": allergen.Catalog, "ActiveNav": "allergens"},
		"base.html", "pages/allergens.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleMedicalInfo(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("allergen"))
	if name == "" || !allergen.Contains(name) {
		http.Error(w, "unknown allergen", http.StatusBadRequest)
		return
	}

	info, err := s.service.MedicalInfo(r.Context(), name)
	if err != nil {
		s.logger.Error("medical info failed", "allergen", name, "error", err)
		s.renderError(w, "의학 정보를 가져오지 못했습니다.", err)
		return
	}

	if err := s.renderPartial(w, "partials/medical_info.html", info); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}
