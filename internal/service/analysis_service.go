package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Seohyeoksu/lunchlens/internal/analysis"
	"github.com/Seohyeoksu/lunchlens/internal/domain"
	"github.com/Seohyeoksu/lunchlens/internal/extract"
)

// Source labels shown in reports and stored with the archive record.
const (
	SourceImage       = "이미지 파일"
	SourceText        = "텍스트 입력"
	SourceSpreadsheet = "Excel 파일"
	SourcePDF         = "PDF 파일"
)

// resultAnalyzer is the subset of analysis.Analyzer that AnalysisService requires.
type resultAnalyzer interface {
	AnalyzeImage(ctx context.Context, imageData []byte, mimeType string) (*analysis.Result, error)
	AnalyzeText(ctx context.Context, text string) (*analysis.Result, error)
	MedicalInfo(ctx context.Context, allergenName string) (*analysis.MedicalInfo, error)
}

// reportSynthesizer is the subset of analysis.Synthesizer that AnalysisService requires.
type reportSynthesizer interface {
	Synthesize(ctx context.Context, results []*analysis.Result, sourceLabel string) string
}

// reportRepository is the subset of store.ReportStore that AnalysisService requires.
type reportRepository interface {
	Create(ctx context.Context, sourceLabel, body string) (*domain.Report, error)
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Report, error)
}

type AnalysisService struct {
	analyzer resultAnalyzer
	synth    reportSynthesizer
	reports  reportRepository
	logger   *slog.Logger
}

func NewAnalysisService(
	analyzer resultAnalyzer,
	synth reportSynthesizer,
	reports reportRepository,
	logger *slog.Logger,
) *AnalysisService {
	return &AnalysisService{
		analyzer: analyzer,
		synth:    synth,
		reports:  reports,
		logger:   logger,
	}
}

// ImageUpload is one uploaded image, bytes untouched.
type ImageUpload struct {
	Name     string
	Data     []byte
	MimeType string
}

// ImageOutcome pairs an upload with its analysis or failure. Failures do not
// stop the batch; the caller renders them next to the successes.
type ImageOutcome struct {
	Name   string
	Result *analysis.Result
	Err    error
}

// AnalyzeImages processes uploads strictly sequentially, then synthesizes
// one report from whatever succeeded. The report is nil only when no image
// produced a result.
func (s *AnalysisService) AnalyzeImages(ctx context.Context, uploads []ImageUpload) ([]ImageOutcome, *domain.Report) {
	s.logger.Info("image batch started", "count", len(uploads))

	outcomes := make([]ImageOutcome, 0, len(uploads))
	var successes []*analysis.Result
	for _, up := range uploads {
		result, err := s.analyzer.AnalyzeImage(ctx, up.Data, up.MimeType)
		if err != nil {
			s.logger.Error("image analysis failed", "name", up.Name, "error", err)
			outcomes = append(outcomes, ImageOutcome{Name: up.Name, Err: err})
			continue
		}
		outcomes = append(outcomes, ImageOutcome{Name: up.Name, Result: result})
		successes = append(successes, result)
	}

	if len(successes) == 0 {
		s.logger.Warn("image batch produced no results", "count", len(uploads))
		return outcomes, nil
	}

	report := s.synthesizeAndArchive(ctx, successes, SourceImage)
	s.logger.Info("image batch complete", "analyzed", len(successes), "failed", len(uploads)-len(successes))
	return outcomes, report
}

// AnalyzeText runs the text pipeline and synthesizes a report from the
// single result.
func (s *AnalysisService) AnalyzeText(ctx context.Context, text string) (*analysis.Result, *domain.Report, error) {
	return s.analyzeTextAs(ctx, text, SourceText)
}

// AnalyzeSpreadsheet flattens the workbook into text and runs the text
// pipeline on the blob.
func (s *AnalysisService) AnalyzeSpreadsheet(ctx context.Context, r io.Reader) (*analysis.Result, *domain.Report, error) {
	text, err := extract.SpreadsheetText(r)
	if err != nil {
		return nil, nil, err
	}
	if text == "" {
		return nil, nil, fmt.Errorf("spreadsheet has no text content")
	}
	return s.analyzeTextAs(ctx, text, SourceSpreadsheet)
}

// AnalyzeDocument extracts the PDF's text and runs the text pipeline on it.
// The extracted text is also returned for preview rendering.
func (s *AnalysisService) AnalyzeDocument(ctx context.Context, data []byte) (string, *analysis.Result, *domain.Report, error) {
	text, err := extract.PDFText(data)
	if err != nil {
		return "", nil, nil, err
	}
	result, report, err := s.analyzeTextAs(ctx, text, SourcePDF)
	return text, result, report, err
}

func (s *AnalysisService) analyzeTextAs(ctx context.Context, text, sourceLabel string) (*analysis.Result, *domain.Report, error) {
	result, err := s.analyzer.AnalyzeText(ctx, text)
	if err != nil {
		return nil, nil, err
	}
	report := s.synthesizeAndArchive(ctx, []*analysis.Result{result}, sourceLabel)
	return result, report, nil
}

// synthesizeAndArchive never fails: when archiving breaks, the report is
// still returned, just without an ID to download by.
func (s *AnalysisService) synthesizeAndArchive(ctx context.Context, results []*analysis.Result, sourceLabel string) *domain.Report {
	body := s.synth.Synthesize(ctx, results, sourceLabel)

	report, err := s.reports.Create(ctx, sourceLabel, body)
	if err != nil {
		s.logger.Error("failed to archive report", "source", sourceLabel, "error", err)
		return &domain.Report{SourceLabel: sourceLabel, Body: body, CreatedAt: time.Now()}
	}
	return report
}

func (s *AnalysisService) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *AnalysisService) ListReports(ctx context.Context, limit int) ([]*domain.Report, error) {
	return s.reports.ListRecent(ctx, limit)
}

func (s *AnalysisService) MedicalInfo(ctx context.Context, allergenName string) (*analysis.MedicalInfo, error) {
	return s.analyzer.MedicalInfo(ctx, allergenName)
}
