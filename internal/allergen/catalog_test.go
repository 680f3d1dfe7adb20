package allergen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptFragmentContainsAllLabels(t *testing.T) {
	fragment := PromptFragment()
	for _, label := range Catalog {
		assert.Contains(t, fragment, label)
	}
}

func TestPromptFragmentOrder(t *testing.T) {
	fragment := PromptFragment()
	// The fragment must preserve catalog order.
	last := -1
	for _, label := range Catalog {
		idx := strings.Index(fragment, label)
		assert.Greater(t, idx, last, "label %q out of order", label)
		last = idx
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("대두/콩"))
	assert.True(t, Contains("우유/유제품"))
	assert.False(t, Contains("커피"))
	assert.False(t, Contains(""))
}
