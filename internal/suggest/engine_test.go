package suggest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testEngine() *Engine {
	return NewEngine(zap.NewNop())
}

func findField(suggestions []Suggestion, field string) (Suggestion, bool) {
	for _, s := range suggestions {
		if s.Field == field {
			return s, true
		}
	}
	return Suggestion{}, false
}

func TestAnalyzeTopicCareer(t *testing.T) {
	suggestions := testEngine().AnalyzeTopic(context.Background(), "How I prepared for my FAANG interview")

	audience, ok := findField(suggestions, "audience")
	assert.True(t, ok)
	assert.Equal(t, "Job Seekers", audience.Value)
}

func TestAnalyzeTopicQuestion(t *testing.T) {
	suggestions := testEngine().AnalyzeTopic(context.Background(), "Should remote teams do daily standups?")

	purpose, ok := findField(suggestions, "purpose")
	assert.True(t, ok)
	assert.Equal(t, "Ask Question", purpose.Value)
}

func TestAnalyzeTopicMilestone(t *testing.T) {
	suggestions := testEngine().AnalyzeTopic(context.Background(), "We launched our SaaS product today")

	purpose, ok := findField(suggestions, "purpose")
	assert.True(t, ok)
	assert.Equal(t, "Celebrate Achievement", purpose.Value)

	audience, ok := findField(suggestions, "audience")
	assert.True(t, ok)
	assert.Equal(t, "Entrepreneurs", audience.Value)
}

func TestAnalyzeTopicNarrativeSuggestsLongStorytelling(t *testing.T) {
	suggestions := testEngine().AnalyzeTopic(context.Background(), "My journey from intern to tech lead")

	style, ok := findField(suggestions, "style")
	assert.True(t, ok)
	assert.Equal(t, "Storytelling", style.Value)

	length, ok := findField(suggestions, "length")
	assert.True(t, ok)
	assert.Equal(t, "Long", length.Value)
}

func TestAnalyzeTopicAlwaysSuggestsLength(t *testing.T) {
	suggestions := testEngine().AnalyzeTopic(context.Background(), "observability")

	length, ok := findField(suggestions, "length")
	assert.True(t, ok)
	assert.Equal(t, "Medium", length.Value)
}
