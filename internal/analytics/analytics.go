// Package analytics derives engagement and content insights from dataset
// snapshots. Reports are pure computations over immutable snapshots and
// are cached in Redis per dataset.
package analytics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vacantvectors/postcraft/internal/models"
)

// topPostLimit caps the "best performing" list in engagement reports
const topPostLimit = 5

var (
	hashtagPattern = regexp.MustCompile(`#\w+`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	emojiPattern   = regexp.MustCompile(`[\x{1F300}-\x{1F5FF}\x{1F600}-\x{1F64F}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}]`)
)

// TopPost is one entry in the best-performing list
type TopPost struct {
	Text       string `json:"text"`
	Engagement int    `json:"engagement"`
}

// EngagementReport summarizes the engagement distribution of a dataset
type EngagementReport struct {
	TotalEngagement  int       `json:"total_engagement"`
	AvgEngagement    float64   `json:"avg_engagement"`
	MedianEngagement float64   `json:"median_engagement"`
	MaxEngagement    int       `json:"max_engagement"`
	MinEngagement    int       `json:"min_engagement"`
	TopPosts         []TopPost `json:"top_posts"`
}

// ContentReport summarizes textual characteristics of a dataset
type ContentReport struct {
	AvgWordCount    float64 `json:"avg_word_count"`
	AvgCharCount    float64 `json:"avg_char_count"`
	AvgHashtagCount float64 `json:"avg_hashtags"`
	AvgEmojiCount   float64 `json:"avg_emojis"`
	AvgMentionCount float64 `json:"avg_mentions"`
}

// ComputeEngagement builds an engagement report from a snapshot
func ComputeEngagement(posts []models.ExamplePost) *EngagementReport {
	report := &EngagementReport{}
	if len(posts) == 0 {
		return report
	}

	engagements := make([]int, len(posts))
	report.MinEngagement = posts[0].Engagement
	for i, p := range posts {
		engagements[i] = p.Engagement
		report.TotalEngagement += p.Engagement
		if p.Engagement > report.MaxEngagement {
			report.MaxEngagement = p.Engagement
		}
		if p.Engagement < report.MinEngagement {
			report.MinEngagement = p.Engagement
		}
	}
	report.AvgEngagement = float64(report.TotalEngagement) / float64(len(posts))

	sort.Ints(engagements)
	mid := len(engagements) / 2
	if len(engagements)%2 == 0 {
		report.MedianEngagement = float64(engagements[mid-1]+engagements[mid]) / 2
	} else {
		report.MedianEngagement = float64(engagements[mid])
	}

	ranked := make([]models.ExamplePost, len(posts))
	copy(ranked, posts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Engagement > ranked[j].Engagement
	})
	for i, p := range ranked {
		if i >= topPostLimit {
			break
		}
		report.TopPosts = append(report.TopPosts, TopPost{Text: p.Text, Engagement: p.Engagement})
	}
	return report
}

// ComputeContent builds a content report from a snapshot
func ComputeContent(posts []models.ExamplePost) *ContentReport {
	report := &ContentReport{}
	if len(posts) == 0 {
		return report
	}

	var words, chars, hashtags, emojis, mentions int
	for _, p := range posts {
		words += len(strings.Fields(p.Text))
		chars += len(p.Text)
		hashtags += len(hashtagPattern.FindAllString(p.Text, -1))
		emojis += len(emojiPattern.FindAllString(p.Text, -1))
		mentions += len(mentionPattern.FindAllString(p.Text, -1))
	}

	n := float64(len(posts))
	report.AvgWordCount = float64(words) / n
	report.AvgCharCount = float64(chars) / n
	report.AvgHashtagCount = float64(hashtags) / n
	report.AvgEmojiCount = float64(emojis) / n
	report.AvgMentionCount = float64(mentions) / n
	return report
}
