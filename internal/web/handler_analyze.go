package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Seohyeoksu/lunchlens/internal/analysis"
	"github.com/Seohyeoksu/lunchlens/internal/service"
)

const maxUploadSize = 50 * 1024 * 1024 // 50 MB

// allowedImageTypes is the set of MIME types accepted for menu photos.
// net/http.DetectContentType handles both via magic-byte sniffing.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

func (s *Server) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		http.Error(w, "image file required", http.StatusBadRequest)
		return
	}

	var uploads []service.ImageUpload
	for _, fh := range files {
		file, err := fh.Open()
		if err != nil {
			http.Error(w, "failed to read file", http.StatusBadRequest)
			return
		}
		imageData, err := io.ReadAll(file)
		closeWithLog(file, "upload file", s.logger)
		if err != nil {
			http.Error(w, "failed to read file", http.StatusInternalServerError)
			s.logger.Error("read upload failed", "name", fh.Filename, "error", err)
			return
		}
		mimeType, ok := allowedImageMIME(imageData)
		if !ok {
			http.Error(w, "unsupported image format", http.StatusBadRequest)
			return
		}
		uploads = append(uploads, service.ImageUpload{Name: fh.Filename, Data: imageData, MimeType: mimeType})
	}

	outcomes, report := s.service.AnalyzeImages(r.Context(), uploads)

	if err := s.renderPartial(w, "partials/image_results.html", map[string]any{
		"Outcomes": outcomes,
		"Report":   report,
	}); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	menuText := strings.TrimSpace(r.FormValue("menu_text"))
	if menuText == "" {
		http.Error(w, "menu text required", http.StatusBadRequest)
		return
	}

	result, report, err := s.service.AnalyzeText(r.Context(), menuText)
	if err != nil {
		s.logger.Error("text analysis failed", "error", err)
		s.renderError(w, "분석에 실패했습니다. 잠시 후 다시 시도해 주세요.", err)
		return
	}

	if err := s.renderPartial(w, "partials/analysis_result.html", map[string]any{
		"Result": result,
		"Report": report,
	}); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

func (s *Server) handleAnalyzeSpreadsheet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("workbook")
	if err != nil {
		http.Error(w, "workbook file required", http.StatusBadRequest)
		return
	}
	defer closeWithLog(file, "workbook file", s.logger)

	result, report, err := s.service.AnalyzeSpreadsheet(r.Context(), file)
	if err != nil {
		s.logger.Error("spreadsheet analysis failed", "error", err)
		s.renderError(w, "Excel 파일을 분석하지 못했습니다.", err)
		return
	}

	if err := s.renderPartial(w, "partials/analysis_result.html", map[string]any{
		"Result": result,
		"Report": report,
	}); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

func (s *Server) handleAnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("document")
	if err != nil {
		http.Error(w, "document file required", http.StatusBadRequest)
		return
	}
	defer closeWithLog(file, "document file", s.logger)

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		s.logger.Error("read upload failed", "error", err)
		return
	}

	text, result, report, err := s.service.AnalyzeDocument(r.Context(), data)
	if err != nil {
		s.logger.Error("document analysis failed", "error", err)
		s.renderError(w, "PDF 파일을 분석하지 못했습니다.", err)
		return
	}

	if err := s.renderPartial(w, "partials/analysis_result.html", map[string]any{
		"Result":        result,
		"Report":        report,
		"ExtractedText": text,
	}); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

// renderError shows a failure inline next to the form that triggered it.
// When the model replied but the reply held no decodable JSON, the raw reply
// is included so the user can see what came back.
func (s *Server) renderError(w http.ResponseWriter, message string, cause error) {
	detail := cause.Error()
	var pe *analysis.ParseError
	if errors.As(cause, &pe) && pe.Raw != "" {
		detail = pe.Reason + "\n\n" + pe.Raw
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := s.renderPartial(w, "partials/error_box.html", map[string]any{
		"Message": message,
		"Detail":  detail,
	}); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
