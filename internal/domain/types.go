package domain

import "time"

// Report is one synthesized allergen report, archived so staff can
// re-download it after the analysis action that produced it.
type Report struct {
	ID          string
	SourceLabel string
	Body        string
	CreatedAt   time.Time
}
