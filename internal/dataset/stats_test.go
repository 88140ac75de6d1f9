package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacantvectors/postcraft/internal/models"
)

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Equal(t, 0, stats.TotalPosts)
	assert.Empty(t, stats.TopTags)
	assert.Zero(t, stats.AvgEngagement)
}

func TestComputeStats(t *testing.T) {
	posts := []models.ExamplePost{
		{Text: "a", Tags: []string{"Internship", "Career"}, Language: models.LanguageEnglish, Length: models.LengthMedium, Engagement: 100, Tone: models.ToneProfessional, Audience: "Students"},
		{Text: "b", Tags: []string{"Internship"}, Language: models.LanguageEnglish, Length: models.LengthShort, Engagement: 50},
		{Text: "c", Tags: []string{"Career"}, Language: models.LanguageHinglish, Length: models.LengthMedium, Engagement: 150, Tone: models.ToneCasual},
	}

	stats := ComputeStats(posts)

	assert.Equal(t, 3, stats.TotalPosts)
	assert.Equal(t, 2, stats.Languages[models.LanguageEnglish])
	assert.Equal(t, 1, stats.Languages[models.LanguageHinglish])
	assert.Equal(t, 2, stats.Lengths[models.LengthMedium])
	assert.InDelta(t, 100.0, stats.AvgEngagement, 0.001)
	assert.Equal(t, 2, stats.TotalTags)
	assert.Equal(t, 2, stats.TopTags["Internship"])
	assert.Equal(t, 2, stats.TopTags["Career"])
	assert.Equal(t, 1, stats.Tones[models.ToneProfessional])
	assert.Equal(t, 1, stats.Audiences["Students"])
}

func TestComputeStatsTopTagLimit(t *testing.T) {
	var posts []models.ExamplePost
	tags := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for _, tag := range tags {
		posts = append(posts, models.ExamplePost{Text: "x", Tags: []string{tag}, Language: models.LanguageEnglish, Length: models.LengthShort})
	}

	stats := ComputeStats(posts)
	assert.Equal(t, len(tags), stats.TotalTags)
	assert.Len(t, stats.TopTags, topTagLimit)
}

func TestValidatePost(t *testing.T) {
	valid := models.ExamplePost{Text: "hello", Language: models.LanguageEnglish, Length: models.LengthShort}
	require.NoError(t, ValidatePost(valid))

	cases := []models.ExamplePost{
		{Text: "  "},
		{Text: "x", Language: "French"},
		{Text: "x", Length: "Tiny"},
		{Text: "x", Engagement: -1},
		{Text: "x", Tone: "Grumpy"},
	}
	for i, p := range cases {
		assert.Error(t, ValidatePost(p), "case %d", i)
	}
}

func TestValidateUploadReportsIndex(t *testing.T) {
	posts := []models.ExamplePost{
		{Text: "fine"},
		{Text: ""},
	}
	err := ValidateUpload(posts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}
