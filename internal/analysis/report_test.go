package analysis

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seohyeoksu/lunchlens/internal/llm"
)

func TestSynthesizeReturnsReportText(t *testing.T) {
	stub := &stubCompleter{replies: []string{"학교 급식 알레르기 종합 분석 보고서\n..."}}
	s := NewSynthesizer(stub, slog.Default())
	s.clock = func() time.Time { return time.Date(2025, 3, 17, 11, 40, 0, 0, time.UTC) }

	results := []*Result{{
		IdentifiedMenus: []IdentifiedMenu{{
			MenuName:         "된장찌개",
			AllergenAnalysis: []AllergenFinding{{Allergen: "대두"}},
		}},
	}}

	report := s.Synthesize(context.Background(), results, "텍스트 입력")
	assert.Contains(t, report, "종합 분석 보고서")

	require.Len(t, stub.requests, 1)
	prompt := stub.requests[0].Prompt
	// Results are serialized into the prompt, Korean intact.
	assert.Contains(t, prompt, "된장찌개")
	assert.Contains(t, prompt, "대두")
	assert.Contains(t, prompt, "분석 대상: 텍스트 입력")
	assert.Equal(t, reportTemperature, stub.requests[0].Temperature)
}

func TestSynthesizeNeverReturnsEmpty(t *testing.T) {
	tests := []struct {
		name string
		stub *stubCompleter
	}{
		{name: "transient failure", stub: &stubCompleter{err: &llm.TransientError{Err: io.ErrUnexpectedEOF}}},
		{name: "fatal failure", stub: &stubCompleter{err: &llm.FatalError{Status: 401, Body: "bad key"}}},
		{name: "empty model reply", stub: &stubCompleter{replies: []string{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSynthesizer(tt.stub, slog.Default())
			report := s.Synthesize(context.Background(), nil, "이미지 파일")

			assert.NotEmpty(t, report)
			assert.Contains(t, report, "보고서 생성 실패")
		})
	}
}

func TestReportFileName(t *testing.T) {
	now := time.Date(2025, 3, 17, 11, 40, 9, 0, time.UTC)
	assert.Equal(t, "AI_알레르기분석보고서_20250317_114009.txt", ReportFileName(now))
}
