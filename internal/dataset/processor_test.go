package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/config"
	"github.com/vacantvectors/postcraft/internal/generator"
	"github.com/vacantvectors/postcraft/internal/models"
)

func testProcessor(llm generator.LLMClient) *Processor {
	return NewProcessor(llm, config.LLMConfig{Model: "test-model"}, zap.NewNop())
}

func TestEnrichParsesModelMetadata(t *testing.T) {
	llm := &generator.MockLLM{Response: `Here you go:
{"line_count": 7, "language": "Hinglish", "tags": ["Internship", "Career"], "length_category": "Medium", "tone": "Inspirational", "target_audience": "Students"}`}

	post, err := testProcessor(llm).Enrich(context.Background(), models.ExamplePost{
		Text: "Aaj mera internship ka pehla din tha!\nLearned so much already.",
	})
	require.NoError(t, err)

	assert.Equal(t, models.LanguageHinglish, post.Language)
	assert.Equal(t, []string{"Internship", "Career"}, post.Tags)
	assert.Equal(t, models.LengthMedium, post.Length)
	assert.Equal(t, models.ToneInspirational, post.Tone)
	assert.Equal(t, "Students", post.Audience)
	assert.Equal(t, 7, post.LineCount)
}

func TestEnrichIgnoresUnknownEnumValues(t *testing.T) {
	llm := &generator.MockLLM{Response: `{"language": "Klingon", "length_category": "Gigantic", "tone": "Sarcastic", "tags": ["Tech"]}`}

	post, err := testProcessor(llm).Enrich(context.Background(), models.ExamplePost{
		Text: "One line post about tech.",
	})
	require.NoError(t, err)

	// Unknown values fall back to Normalize defaults.
	assert.Equal(t, []string{"Tech"}, post.Tags)
	assert.Equal(t, models.LengthShort, post.Length)
	assert.Empty(t, post.Tone)
}

func TestEnrichFallsBackToHeuristics(t *testing.T) {
	cases := map[string]generator.LLMClient{
		"llm error":     &generator.MockLLM{Err: errors.New("timeout")},
		"no json":       &generator.MockLLM{Response: "I cannot produce structured data."},
		"mangled reply": &generator.MockLLM{Response: "{{{"},
	}

	for name, llm := range cases {
		t.Run(name, func(t *testing.T) {
			post, err := testProcessor(llm).Enrich(context.Background(), models.ExamplePost{
				Text: "line one\nline two\nline three\nline four\nline five\nline six",
			})
			require.NoError(t, err)
			assert.Equal(t, 6, post.LineCount)
			assert.Equal(t, models.LengthMedium, post.Length)
			assert.Equal(t, models.LanguageEnglish, post.Language)
			assert.Equal(t, []string{"General"}, post.Tags)
		})
	}
}

func TestEnrichRejectsEmptyText(t *testing.T) {
	_, err := testProcessor(&generator.MockLLM{}).Enrich(context.Background(), models.ExamplePost{Text: "   "})
	assert.Error(t, err)
}

func TestProcessAllCountsSkipped(t *testing.T) {
	llm := &generator.MockLLM{Response: `{"tags": ["Tech"]}`}
	posts := []models.ExamplePost{
		{Text: "A real post with content."},
		{Text: ""},
		{Text: "Another real post."},
	}

	out, skipped := testProcessor(llm).ProcessAll(context.Background(), posts)
	assert.Len(t, out, 2)
	assert.Equal(t, 1, skipped)
}
