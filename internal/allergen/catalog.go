// Package allergen holds the fixed reference list of allergen categories
// that steers every model prompt.
package allergen

import "strings"

// Catalog is the ordered list of allergen category labels checked on every
// analysis. The labels are the human-readable Korean names used in school
// food-service paperwork; order matters because prompts and the dashboard
// render the list as-is.
var Catalog = []string{
	"우유/유제품", "달걀/난류", "땅콩", "견과류", "밀/글루텐",
	"대두/콩", "생선/어류", "갑각류(새우,게,랍스터)", "조개류/패류",
	"참깨", "아황산염", "메밀", "돼지고기", "소고기", "닭고기",
	"복숭아", "토마토", "키위", "바나나", "아보카도",
}

// PromptFragment returns the catalog as the comma-joined fragment embedded
// in analysis prompts.
func PromptFragment() string {
	return strings.Join(Catalog, ", ")
}

// Contains reports whether name is one of the catalog labels.
func Contains(name string) bool {
	for _, a := range Catalog {
		if a == name {
			return true
		}
	}
	return false
}
