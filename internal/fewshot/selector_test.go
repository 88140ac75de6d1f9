package fewshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacantvectors/postcraft/internal/models"
)

func dataset() []models.ExamplePost {
	return []models.ExamplePost{
		{Text: "Post A", Tags: []string{"Internship"}, Language: models.LanguageEnglish, Length: models.LengthMedium, Engagement: 50},
		{Text: "Post B", Tags: []string{"Internship"}, Language: models.LanguageEnglish, Length: models.LengthMedium, Engagement: 90},
		{Text: "Post C", Tags: []string{"Career"}, Language: models.LanguageEnglish, Length: models.LengthShort, Engagement: 200},
		{Text: "Post D", Tags: []string{"Internship"}, Language: models.LanguageHinglish, Length: models.LengthMedium, Engagement: 120},
		{Text: "Post E", Tags: []string{"Internship", "Career"}, Language: models.LanguageEnglish, Length: models.LengthLong, Engagement: 70},
	}
}

func TestSelectExactMatchRankedByEngagement(t *testing.T) {
	got := Select(dataset(), Criteria{
		Tags:     []string{"Internship"},
		Length:   models.LengthMedium,
		Language: models.LanguageEnglish,
	})

	require.Len(t, got, 2)
	assert.Equal(t, "Post B", got[0].Text)
	assert.Equal(t, "Post A", got[1].Text)
	for _, p := range got {
		assert.Equal(t, models.LanguageEnglish, p.Language)
		assert.Equal(t, models.LengthMedium, p.Length)
	}
}

func TestSelectNeverExceedsMaxExamples(t *testing.T) {
	posts := dataset()
	posts = append(posts, models.ExamplePost{
		Text: "Post F", Tags: []string{"Internship"},
		Language: models.LanguageEnglish, Length: models.LengthMedium, Engagement: 10,
	})

	got := Select(posts, Criteria{
		Tags:     []string{"Internship"},
		Length:   models.LengthMedium,
		Language: models.LanguageEnglish,
	})
	assert.LessOrEqual(t, len(got), MaxExamples)
}

func TestSelectRelaxesLengthFirst(t *testing.T) {
	// No Short Internship post in English exists; the length constraint
	// drops first, so English Internship posts of any length win over
	// the Hinglish medium post.
	got := Select(dataset(), Criteria{
		Tags:     []string{"Internship"},
		Length:   models.LengthShort,
		Language: models.LanguageEnglish,
	})

	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Equal(t, models.LanguageEnglish, p.Language)
		assert.True(t, p.HasTag("Internship"))
	}
	assert.Equal(t, "Post B", got[0].Text)
}

func TestSelectRelaxesLanguageSecond(t *testing.T) {
	posts := []models.ExamplePost{
		{Text: "Hinglish only", Tags: []string{"Startups"}, Language: models.LanguageHinglish, Length: models.LengthShort, Engagement: 5},
	}

	got := Select(posts, Criteria{
		Tags:     []string{"Startups"},
		Length:   models.LengthLong,
		Language: models.LanguageEnglish,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Hinglish only", got[0].Text)
}

func TestSelectFallsBackToWholeDataset(t *testing.T) {
	got := Select(dataset(), Criteria{
		Tags:     []string{"Quantum Gardening"},
		Length:   models.LengthShort,
		Language: models.LanguageEnglish,
	})

	require.NotEmpty(t, got)
	// Fallback still ranks by engagement.
	assert.Equal(t, "Post C", got[0].Text)
}

func TestSelectEmptyDataset(t *testing.T) {
	got := Select(nil, Criteria{Tags: []string{"Internship"}})
	assert.Empty(t, got)

	got = Select([]models.ExamplePost{}, Criteria{})
	assert.Empty(t, got)
}

func TestSelectIsIdempotentAndNonMutating(t *testing.T) {
	posts := dataset()
	c := Criteria{Tags: []string{"Internship"}, Length: models.LengthMedium, Language: models.LanguageEnglish}

	first := Select(posts, c)
	second := Select(posts, c)
	assert.Equal(t, first, second)

	// Dataset order untouched.
	assert.Equal(t, "Post A", posts[0].Text)
	assert.Equal(t, "Post B", posts[1].Text)
}

func TestSelectEngagementOrderingProperty(t *testing.T) {
	got := Select(dataset(), Criteria{
		Tags:     []string{"Internship", "Career"},
		Length:   models.LengthMedium,
		Language: models.LanguageEnglish,
	})

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Engagement, got[i].Engagement)
	}
}

func TestSelectStableTieBreakOnDatasetOrder(t *testing.T) {
	posts := []models.ExamplePost{
		{Text: "First", Tags: []string{"Tech"}, Language: models.LanguageEnglish, Length: models.LengthShort, Engagement: 40},
		{Text: "Second", Tags: []string{"Tech"}, Language: models.LanguageEnglish, Length: models.LengthShort, Engagement: 40},
	}

	got := Select(posts, Criteria{Tags: []string{"Tech"}, Length: models.LengthShort, Language: models.LanguageEnglish})
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Text)
	assert.Equal(t, "Second", got[1].Text)
}
