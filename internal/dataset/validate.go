package dataset

import (
	"fmt"
	"strings"

	"github.com/vacantvectors/postcraft/internal/models"
)

// ValidatePost checks one uploaded post record. Text is required; the
// labeled fields, when present, must carry known values. Derived fields
// (line count, bucket) are filled later by Normalize.
func ValidatePost(p models.ExamplePost) error {
	if strings.TrimSpace(p.Text) == "" {
		return fmt.Errorf("field 'text' cannot be empty")
	}
	if p.Language != "" && !p.Language.Valid() {
		return fmt.Errorf("field 'language' must be %q or %q, got %q",
			models.LanguageEnglish, models.LanguageHinglish, p.Language)
	}
	if p.Length != "" && !p.Length.Valid() {
		return fmt.Errorf("field 'length' must be Short, Medium or Long, got %q", p.Length)
	}
	if p.Engagement < 0 {
		return fmt.Errorf("field 'engagement' cannot be negative")
	}
	if p.Tone != "" && !p.Tone.Valid() {
		return fmt.Errorf("field 'tone' has unknown value %q", p.Tone)
	}
	return nil
}

// ValidateUpload checks a whole uploaded dataset, reporting the index of
// the first invalid record.
func ValidateUpload(posts []models.ExamplePost) error {
	for i, p := range posts {
		if err := ValidatePost(p); err != nil {
			return fmt.Errorf("invalid post at index %d: %w", i, err)
		}
	}
	return nil
}
