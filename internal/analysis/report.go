package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Seohyeoksu/lunchlens/internal/llm"
)

const (
	reportMaxTokens = 3000
	// Reports read better with a little more variety than analyses.
	reportTemperature = 0.4
)

// Synthesizer turns a batch of analysis results into one long-form narrative
// report via a second model call.
type Synthesizer struct {
	client llm.Completer
	clock  func() time.Time
	logger *slog.Logger
}

func NewSynthesizer(client llm.Completer, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{client: client, clock: time.Now, logger: logger}
}

// Synthesize always returns text. When the model call fails the returned
// text states the failure, so the presentation layer never needs an error
// branch for this step.
func (s *Synthesizer) Synthesize(ctx context.Context, results []*Result, sourceLabel string) string {
	summary, err := marshalResults(results)
	if err != nil {
		return fmt.Sprintf("보고서 생성 실패: %v", err)
	}

	s.logger.Info("report synthesis started", "source", sourceLabel, "results", len(results))
	report, err := s.client.Complete(ctx, llm.Request{
		Prompt:      ReportPrompt(summary, sourceLabel, s.clock()),
		Temperature: reportTemperature,
		MaxTokens:   reportMaxTokens,
	})
	if err != nil {
		s.logger.Error("report synthesis failed", "source", sourceLabel, "error", err)
		return fmt.Sprintf("보고서 생성 실패: %v", err)
	}
	if report == "" {
		return "보고서 생성 실패: 모델이 빈 응답을 반환했습니다"
	}
	return report
}

// marshalResults serializes results for embedding in the report prompt,
// keeping Korean text readable (no HTML escaping).
func marshalResults(results []*Result) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ReportFileName names the downloadable report artifact after the moment of
// synthesis.
func ReportFileName(now time.Time) string {
	return fmt.Sprintf("AI_알레르기분석보고서_%s.txt", now.Format("20060102_150405"))
}
