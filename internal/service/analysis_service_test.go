package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Seohyeoksu/lunchlens/internal/analysis"
	"github.com/Seohyeoksu/lunchlens/internal/db"
	"github.com/Seohyeoksu/lunchlens/internal/llm"
	"github.com/Seohyeoksu/lunchlens/internal/store"
)

// fakeAnalyzer maps inputs to canned results. Image lookups are keyed by
// image length so tests can make individual uploads fail.
type fakeAnalyzer struct {
	textResult *analysis.Result
	textErr    error
	imageErrAt map[int]error
	imageCalls int
}

func (f *fakeAnalyzer) AnalyzeImage(_ context.Context, imageData []byte, _ string) (*analysis.Result, error) {
	f.imageCalls++
	if err, ok := f.imageErrAt[f.imageCalls]; ok {
		return nil, err
	}
	return &analysis.Result{
		MenuItems: []analysis.MenuItem{{Name: fmt.Sprintf("이미지 %d 메뉴", f.imageCalls)}},
	}, nil
}

func (f *fakeAnalyzer) AnalyzeText(_ context.Context, text string) (*analysis.Result, error) {
	if f.textErr != nil {
		return nil, f.textErr
	}
	return f.textResult, nil
}

func (f *fakeAnalyzer) MedicalInfo(_ context.Context, name string) (*analysis.MedicalInfo, error) {
	return &analysis.MedicalInfo{MedicalName: name}, nil
}

// fakeSynth records what it was asked to summarize.
type fakeSynth struct {
	calls   int
	results []*analysis.Result
	label   string
}

func (f *fakeSynth) Synthesize(_ context.Context, results []*analysis.Result, label string) string {
	f.calls++
	f.results = results
	f.label = label
	return "종합 보고서 본문"
}

func newTestService(t *testing.T, fa *fakeAnalyzer) (*AnalysisService, *fakeSynth) {
	t.Helper()
	database, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	synth := &fakeSynth{}
	svc := NewAnalysisService(fa, synth, store.NewReportStore(database), slog.Default())
	return svc, synth
}

func TestAnalyzeTextArchivesReport(t *testing.T) {
	fa := &fakeAnalyzer{textResult: &analysis.Result{
		IdentifiedMenus: []analysis.IdentifiedMenu{{
			MenuName:         "된장찌개(두부)",
			AllergenAnalysis: []analysis.AllergenFinding{{Allergen: "대두"}, {Allergen: "우유/유제품"}},
		}},
	}}
	svc, synth := newTestService(t, fa)

	result, report, err := svc.AnalyzeText(context.Background(), "쌀밥, 된장찌개(두부), 우유")
	require.NoError(t, err)

	assert.Equal(t, []string{"대두", "우유/유제품"}, result.AllergenNames())
	require.NotNil(t, report)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, SourceText, report.SourceLabel)
	assert.Equal(t, "종합 보고서 본문", report.Body)
	assert.Equal(t, SourceText, synth.label)

	// The archived copy is retrievable.
	stored, err := svc.GetReport(context.Background(), report.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, report.Body, stored.Body)
}

func TestAnalyzeTextFailurePropagates(t *testing.T) {
	fa := &fakeAnalyzer{textErr: &llm.TransientError{Err: io.ErrUnexpectedEOF}}
	svc, synth := newTestService(t, fa)

	_, _, err := svc.AnalyzeText(context.Background(), "김치")
	require.Error(t, err)
	assert.True(t, llm.IsTransient(err))
	// No report is synthesized for a failed analysis.
	assert.Zero(t, synth.calls)
}

func TestAnalyzeImagesPartialSuccess(t *testing.T) {
	fa := &fakeAnalyzer{imageErrAt: map[int]error{2: &analysis.ParseError{Reason: "응답 파싱 실패", Raw: "prose"}}}
	svc, synth := newTestService(t, fa)

	uploads := []ImageUpload{
		{Name: "mon.jpg", Data: []byte{0xFF, 0xD8}, MimeType: "image/jpeg"},
		{Name: "tue.jpg", Data: []byte{0xFF, 0xD8}, MimeType: "image/jpeg"},
		{Name: "wed.jpg", Data: []byte{0xFF, 0xD8}, MimeType: "image/jpeg"},
	}

	outcomes, report := svc.AnalyzeImages(context.Background(), uploads)
	require.Len(t, outcomes, 3)

	assert.NoError(t, outcomes[0].Err)
	assert.Error(t, outcomes[1].Err)
	assert.NoError(t, outcomes[2].Err)

	// A report is still generated from the two successes.
	require.NotNil(t, report)
	assert.Len(t, synth.results, 2)
	assert.Equal(t, SourceImage, synth.label)
}

func TestAnalyzeImagesAllFail(t *testing.T) {
	fa := &fakeAnalyzer{imageErrAt: map[int]error{1: io.ErrUnexpectedEOF, 2: io.ErrUnexpectedEOF}}
	svc, synth := newTestService(t, fa)

	outcomes, report := svc.AnalyzeImages(context.Background(), []ImageUpload{
		{Name: "a.jpg", Data: []byte{0xFF, 0xD8}},
		{Name: "b.jpg", Data: []byte{0xFF, 0xD8}},
	})

	require.Len(t, outcomes, 2)
	assert.Nil(t, report)
	assert.Zero(t, synth.calls)
}

func TestAnalyzeSpreadsheet(t *testing.T) {
	fa := &fakeAnalyzer{textResult: &analysis.Result{}}
	svc, synth := newTestService(t, fa)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"메뉴"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"쌀밥"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	_, report, err := svc.AnalyzeSpreadsheet(context.Background(), &buf)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, SourceSpreadsheet, synth.label)
}

func TestAnalyzeSpreadsheetUnreadable(t *testing.T) {
	fa := &fakeAnalyzer{}
	svc, synth := newTestService(t, fa)

	_, _, err := svc.AnalyzeSpreadsheet(context.Background(), bytes.NewReader([]byte("not a workbook")))
	require.Error(t, err)
	assert.Zero(t, synth.calls)
}

func TestAnalyzeDocumentUnreadable(t *testing.T) {
	fa := &fakeAnalyzer{}
	svc, synth := newTestService(t, fa)

	_, _, _, err := svc.AnalyzeDocument(context.Background(), []byte("not a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PDF 읽기 오류")
	assert.Zero(t, synth.calls)
}

func TestListReports(t *testing.T) {
	fa := &fakeAnalyzer{textResult: &analysis.Result{}}
	svc, _ := newTestService(t, fa)

	_, _, err := svc.AnalyzeText(context.Background(), "쌀밥")
	require.NoError(t, err)
	_, _, err = svc.AnalyzeText(context.Background(), "김치")
	require.NoError(t, err)

	reports, err := svc.ListReports(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}
