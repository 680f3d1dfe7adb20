package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Seohyeoksu/lunchlens/internal/llm"
)

// Token budgets, sized for the response shapes the prompts request.
const (
	analysisMaxTokens = 2000
	medicalMaxTokens  = 1500
)

// Analyzer runs one analysis per call: build prompt, complete, extract JSON.
// It holds no state between calls.
type Analyzer struct {
	client      llm.Completer
	temperature float64
	logger      *slog.Logger
}

func NewAnalyzer(client llm.Completer, temperature float64, logger *slog.Logger) *Analyzer {
	return &Analyzer{client: client, temperature: temperature, logger: logger}
}

// AnalyzeImage sends the image with the image prompt and decodes the reply.
// The image bytes pass through unmodified; encoding happens in the transport.
func (a *Analyzer) AnalyzeImage(ctx context.Context, imageData []byte, mimeType string) (*Result, error) {
	a.logger.Info("image analysis started", "bytes", len(imageData), "mime_type", mimeType)

	reply, err := a.client.Complete(ctx, llm.Request{
		Prompt:      ImagePrompt(),
		ImageData:   imageData,
		ImageMIME:   mimeType,
		Temperature: a.temperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("image analysis call failed: %w", err)
	}

	result, err := ExtractResult(reply)
	if err != nil {
		a.logger.Warn("image analysis reply not parseable", "reply_len", len(reply))
		return nil, err
	}
	a.logger.Info("image analysis complete", "menu_items", len(result.MenuItems))
	return result, nil
}

// AnalyzeText sends a normalized text payload (free text, spreadsheet blob,
// or extracted PDF text) with the text prompt and decodes the reply.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*Result, error) {
	a.logger.Info("text analysis started", "input_len", len(text))

	reply, err := a.client.Complete(ctx, llm.Request{
		Prompt:      TextPrompt(text),
		Temperature: a.temperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("text analysis call failed: %w", err)
	}

	result, err := ExtractResult(reply)
	if err != nil {
		a.logger.Warn("text analysis reply not parseable", "reply_len", len(reply))
		return nil, err
	}
	a.logger.Info("text analysis complete", "menus", len(result.IdentifiedMenus))
	return result, nil
}

// MedicalInfo asks the model for structured medical guidance on one allergen.
func (a *Analyzer) MedicalInfo(ctx context.Context, allergenName string) (*MedicalInfo, error) {
	reply, err := a.client.Complete(ctx, llm.Request{
		Prompt:      MedicalPrompt(allergenName),
		Temperature: a.temperature,
		MaxTokens:   medicalMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("medical info call failed: %w", err)
	}

	info := &MedicalInfo{}
	if err := ExtractInto(reply, info); err != nil {
		return nil, err
	}
	return info, nil
}
