package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacantvectors/postcraft/internal/models"
)

func TestComputeEngagement(t *testing.T) {
	posts := []models.ExamplePost{
		{Text: "low", Engagement: 10},
		{Text: "high", Engagement: 100},
		{Text: "mid", Engagement: 40},
	}

	report := ComputeEngagement(posts)

	assert.Equal(t, 150, report.TotalEngagement)
	assert.InDelta(t, 50.0, report.AvgEngagement, 0.001)
	assert.InDelta(t, 40.0, report.MedianEngagement, 0.001)
	assert.Equal(t, 100, report.MaxEngagement)
	assert.Equal(t, 10, report.MinEngagement)

	require.Len(t, report.TopPosts, 3)
	assert.Equal(t, "high", report.TopPosts[0].Text)
	assert.Equal(t, "mid", report.TopPosts[1].Text)
}

func TestComputeEngagementMedianEven(t *testing.T) {
	posts := []models.ExamplePost{
		{Engagement: 10}, {Engagement: 20}, {Engagement: 30}, {Engagement: 40},
	}
	report := ComputeEngagement(posts)
	assert.InDelta(t, 25.0, report.MedianEngagement, 0.001)
}

func TestComputeEngagementCapsTopPosts(t *testing.T) {
	var posts []models.ExamplePost
	for i := 0; i < 8; i++ {
		posts = append(posts, models.ExamplePost{Text: "p", Engagement: i})
	}
	report := ComputeEngagement(posts)
	assert.Len(t, report.TopPosts, topPostLimit)
}

func TestComputeEngagementEmpty(t *testing.T) {
	report := ComputeEngagement(nil)
	assert.Zero(t, report.TotalEngagement)
	assert.Empty(t, report.TopPosts)
}

func TestComputeContent(t *testing.T) {
	posts := []models.ExamplePost{
		{Text: "Loving my new role at @acme! #Career #Growth \U0001F680"},
		{Text: "Short one"},
	}

	report := ComputeContent(posts)

	assert.InDelta(t, 1.0, report.AvgHashtagCount, 0.001)
	assert.InDelta(t, 0.5, report.AvgMentionCount, 0.001)
	assert.InDelta(t, 0.5, report.AvgEmojiCount, 0.001)
	assert.Greater(t, report.AvgWordCount, 0.0)
	assert.Greater(t, report.AvgCharCount, 0.0)
}

func TestComputeContentEmpty(t *testing.T) {
	report := ComputeContent(nil)
	assert.Zero(t, report.AvgWordCount)
}
