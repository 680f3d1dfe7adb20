// Package analysis turns normalized inputs into allergen findings by
// prompting the external model and decoding whatever it sends back.
package analysis

import "encoding/json"

// AllergenFinding is one allergen called out by the model. The image and
// text prompts ask for slightly different keys (source vs source_ingredient,
// hidden/cross_contamination vs confidence/notes); both sets live here and
// absent keys stay zero-valued.
type AllergenFinding struct {
	Allergen           string `json:"allergen"`
	Source             string `json:"source"`
	SourceIngredient   string `json:"source_ingredient"`
	Confidence         string `json:"confidence"`
	RiskLevel          string `json:"risk_level"`
	Hidden             bool   `json:"hidden"`
	CrossContamination bool   `json:"cross_contamination"`
	Notes              string `json:"notes"`
}

// MenuItem is the image-analysis shape.
type MenuItem struct {
	Name           string            `json:"name"`
	Ingredients    []string          `json:"ingredients"`
	CookingMethod  string            `json:"cooking_method"`
	Allergens      []AllergenFinding `json:"allergens"`
	NutritionNotes string            `json:"nutrition_notes"`
}

// IdentifiedMenu is the text-analysis shape.
type IdentifiedMenu struct {
	MenuName          string            `json:"menu_name"`
	LikelyIngredients []string          `json:"likely_ingredients"`
	AllergenAnalysis  []AllergenFinding `json:"allergen_analysis"`
}

type OverallAssessment struct {
	TotalAllergens  []string `json:"total_allergens"`
	HighRiskItems   []string `json:"high_risk_items"`
	HiddenAllergens []string `json:"hidden_allergens"`
	SafetyNotes     string   `json:"safety_notes"`
}

type Summary struct {
	TotalAllergensFound     []string `json:"total_allergens_found"`
	HighConfidenceAllergens []string `json:"high_confidence_allergens"`
	PossibleAllergens       []string `json:"possible_allergens"`
	MenuSafetyScore         string   `json:"menu_safety_score"`
	SpecialWarnings         []string `json:"special_warnings"`
}

type Recommendations struct {
	Substitutions     []string `json:"substitutions"`
	PreparationTips   []string `json:"preparation_tips"`
	ServingGuidelines []string `json:"serving_guidelines"`
}

type DetailedRecommendations struct {
	ForAllergicStudents []string `json:"for_allergic_students"`
	ForKitchenStaff     []string `json:"for_kitchen_staff"`
	AlternativeOptions  []string `json:"alternative_options"`
}

// Result is one decoded analysis. The model is asked for a specific shape
// but nothing is guaranteed; every field tolerates absence, and Fields keeps
// the loosely-typed mapping for keys the structs do not name.
type Result struct {
	MenuItems               []MenuItem               `json:"menu_items,omitempty"`
	OverallAssessment       *OverallAssessment       `json:"overall_assessment,omitempty"`
	Recommendations         *Recommendations         `json:"recommendations,omitempty"`
	IdentifiedMenus         []IdentifiedMenu         `json:"identified_menus,omitempty"`
	Summary                 *Summary                 `json:"summary,omitempty"`
	DetailedRecommendations *DetailedRecommendations `json:"detailed_recommendations,omitempty"`

	Fields map[string]any `json:"-"`
	Raw    string         `json:"-"`
}

// AllergenNames collects every allergen the model named, in reply order,
// without duplicates.
func (r *Result) AllergenNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, item := range r.MenuItems {
		for _, f := range item.Allergens {
			add(f.Allergen)
		}
	}
	for _, menu := range r.IdentifiedMenus {
		for _, f := range menu.AllergenAnalysis {
			add(f.Allergen)
		}
	}
	return names
}

// MedicalInfo is the shape requested by the per-allergen medical lookup.
type MedicalInfo struct {
	MedicalName      string                   `json:"medical_name"`
	Prevalence       string                   `json:"prevalence"`
	Mechanism        string                   `json:"mechanism"`
	OnsetTime        string                   `json:"onset_time"`
	CrossReactivity  []string                 `json:"cross_reactivity"`
	Diagnosis        string                   `json:"diagnosis"`
	Prognosis        string                   `json:"prognosis"`
	Symptoms         *MedicalSymptoms         `json:"symptoms,omitempty"`
	Treatment        *MedicalTreatment        `json:"treatment,omitempty"`
	SchoolManagement *MedicalSchoolManagement `json:"school_management,omitempty"`
}

type MedicalSymptoms struct {
	Immediate []string `json:"immediate"`
	Delayed   []string `json:"delayed"`
	Severe    []string `json:"severe"`
}

type MedicalTreatment struct {
	Emergency  string `json:"emergency"`
	Medication string `json:"medication"`
	LongTerm   string `json:"long_term"`
}

type MedicalSchoolManagement struct {
	Prevention    []string `json:"prevention"`
	Monitoring    []string `json:"monitoring"`
	Documentation []string `json:"documentation"`
}

// ParseError is the marker returned in place of a Result when the model
// reply holds no decodable JSON object. It carries the raw reply for
// operator diagnosis.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string { return e.Reason }

// MarshalJSON renders the marker as {"error": ..., "raw": ...} so the
// presentation layer can emit it directly.
func (e *ParseError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"error": e.Reason, "raw": e.Raw})
}
