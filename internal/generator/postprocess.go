package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vacantvectors/postcraft/internal/models"
)

// minPostLength is the fewest characters a usable post can have
const minPostLength = 10

// Validation failure kinds
const (
	KindEmptyOutput   = "empty_output"
	KindTooShort      = "output_too_short"
	KindLineCountHigh = "line_count_exceeded"
)

// ValidationError is a typed failure for generated output that falls
// outside the expected shape. It carries the violated constraint and the
// offending text so callers never lose the model's answer silently.
type ValidationError struct {
	Kind       string `json:"kind"`
	Constraint string `json:"constraint"`
	Output     string `json:"output,omitempty"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Kind, e.Constraint)
}

// ValidatedPost is the accepted output of one generation plus derived
// metadata and non-fatal warnings.
type ValidatedPost struct {
	Text         string   `json:"text"`
	LineCount    int      `json:"line_count"`
	WordCount    int      `json:"word_count"`
	HashtagCount int      `json:"hashtag_count"`
	Warnings     []string `json:"warnings,omitempty"`
}

var (
	hashtagPattern = regexp.MustCompile(`#\w+`)
	refusalPhrases = []string{"i cannot", "i can't", "sorry, i", "i apologize"}
)

// Validate checks raw model output against the request's expected shape.
// Empty or truncated output and a line count above the bucket band fail
// with a ValidationError; requested-but-missing hashtags and refusal
// phrasing only warn. Validate never calls the network.
func Validate(raw string, req models.GenerationRequest) (*ValidatedPost, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &ValidationError{
			Kind:       KindEmptyOutput,
			Constraint: "generated output must be non-empty",
		}
	}
	if len(text) < minPostLength {
		return nil, &ValidationError{
			Kind:       KindTooShort,
			Constraint: fmt.Sprintf("generated output must be at least %d characters", minPostLength),
			Output:     text,
		}
	}

	lines := strings.Split(text, "\n")
	maxLines := req.Length.MaxLines()
	if len(lines) > maxLines {
		return nil, &ValidationError{
			Kind:       KindLineCountHigh,
			Constraint: fmt.Sprintf("%s posts allow at most %d lines, got %d", req.Length, maxLines, len(lines)),
			Output:     text,
		}
	}

	post := &ValidatedPost{
		Text:         text,
		LineCount:    len(lines),
		WordCount:    len(strings.Fields(text)),
		HashtagCount: len(hashtagPattern.FindAllString(text, -1)),
	}

	if req.IncludeHashtags && post.HashtagCount == 0 {
		post.Warnings = append(post.Warnings, "hashtags were requested but none are present")
	}
	lower := strings.ToLower(text)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			post.Warnings = append(post.Warnings, "output contains refusal-like phrasing: "+phrase)
			break
		}
	}

	return post, nil
}
