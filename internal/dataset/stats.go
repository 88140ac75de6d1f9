package dataset

import (
	"sort"

	"github.com/vacantvectors/postcraft/internal/models"
)

// topTagLimit caps how many tags the stats endpoint reports
const topTagLimit = 10

// ComputeStats summarizes a snapshot: size, attribute distributions,
// average engagement and the most frequent tags.
func ComputeStats(posts []models.ExamplePost) *models.DatasetStats {
	stats := &models.DatasetStats{
		TotalPosts: len(posts),
		Languages:  map[models.Language]int{},
		Lengths:    map[models.LengthBucket]int{},
		TopTags:    map[string]int{},
	}
	if len(posts) == 0 {
		return stats
	}

	tagCounts := map[string]int{}
	var engagement int
	for _, p := range posts {
		stats.Languages[p.Language]++
		stats.Lengths[p.Length]++
		engagement += p.Engagement
		if p.Tone != "" {
			if stats.Tones == nil {
				stats.Tones = map[models.Tone]int{}
			}
			stats.Tones[p.Tone]++
		}
		if p.Audience != "" {
			if stats.Audiences == nil {
				stats.Audiences = map[string]int{}
			}
			stats.Audiences[p.Audience]++
		}
		for _, t := range p.Tags {
			tagCounts[t]++
		}
	}

	stats.AvgEngagement = float64(engagement) / float64(len(posts))
	stats.TotalTags = len(tagCounts)

	type tagCount struct {
		tag   string
		count int
	}
	ranked := make([]tagCount, 0, len(tagCounts))
	for t, c := range tagCounts {
		ranked = append(ranked, tagCount{t, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].tag < ranked[j].tag
	})
	for i, tc := range ranked {
		if i >= topTagLimit {
			break
		}
		stats.TopTags[tc.tag] = tc.count
	}
	return stats
}
