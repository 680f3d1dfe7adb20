package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Seohyeoksu/lunchlens/internal/allergen"
)

func TestImagePromptContainsCatalog(t *testing.T) {
	prompt := ImagePrompt()

	assert.Contains(t, prompt, allergen.PromptFragment())
	assert.Contains(t, prompt, `"menu_items"`)
	assert.Contains(t, prompt, `"overall_assessment"`)
}

func TestTextPromptContainsInputVerbatim(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "plain menu", input: "쌀밥, 된장찌개(두부), 우유"},
		{name: "multiline", input: "월요일: 김치볶음밥\n화요일: 잔치국수"},
		{name: "format-template lookalike", input: "메뉴 %s {항목} %%d"},
		{name: "very long input", input: strings.Repeat("제육볶음, ", 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := TextPrompt(tt.input)

			// No truncation, no mutation.
			assert.Contains(t, prompt, tt.input)
			assert.Contains(t, prompt, allergen.PromptFragment())
			assert.Contains(t, prompt, `"identified_menus"`)
		})
	}
}

func TestReportPromptEmbedsResultsAndLabel(t *testing.T) {
	now := time.Date(2025, 3, 17, 11, 40, 0, 0, time.UTC)
	prompt := ReportPrompt(`[{"summary": null}]`, "텍스트 입력", now)

	assert.Contains(t, prompt, `[{"summary": null}]`)
	assert.Contains(t, prompt, "분석 대상: 텍스트 입력")
	assert.Contains(t, prompt, "2025년 03월 17일 11시 40분")
	// The report is free text: the prompt must not demand JSON.
	assert.NotContains(t, prompt, "JSON 형식")
}

func TestMedicalPromptNamesAllergen(t *testing.T) {
	prompt := MedicalPrompt("땅콩")

	assert.Contains(t, prompt, "땅콩 알레르기")
	assert.Contains(t, prompt, `"medical_name"`)
	assert.Contains(t, prompt, `"school_management"`)
}
