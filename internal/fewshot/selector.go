// Package fewshot selects example posts to steer the style and format of
// generated output. Selection is a pure filter-and-rank over an immutable
// dataset snapshot; callers pass the snapshot explicitly on every call.
package fewshot

import (
	"sort"

	"github.com/vacantvectors/postcraft/internal/models"
)

// MaxExamples is the most examples ever included in one prompt
const MaxExamples = 2

// Criteria describes the desired attributes of example posts
type Criteria struct {
	Tags     []string
	Length   models.LengthBucket
	Language models.Language
}

// FromRequest derives selection criteria from a generation request.
// The request topic doubles as a tag when no explicit tags are given.
func FromRequest(req models.GenerationRequest) Criteria {
	return Criteria{
		Tags:     []string{req.Topic},
		Length:   req.Length,
		Language: req.Language,
	}
}

// Select returns the best-matching examples from the dataset, at most
// MaxExamples. Matching starts with the full criteria and progressively
// relaxes constraints when nothing matches: the length constraint is
// dropped first, then language, then tags. Among matches, posts rank by
// descending engagement with dataset order breaking ties. An empty
// dataset yields an empty result; Select never fails and never mutates
// its input.
func Select(posts []models.ExamplePost, c Criteria) []models.ExamplePost {
	if len(posts) == 0 {
		return nil
	}

	tagSet := make(map[string]struct{}, len(c.Tags))
	for _, t := range c.Tags {
		tagSet[t] = struct{}{}
	}

	matchTags := func(p models.ExamplePost) bool {
		if len(tagSet) == 0 {
			return true
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[t]; ok {
				return true
			}
		}
		return false
	}
	matchLanguage := func(p models.ExamplePost) bool { return p.Language == c.Language }
	matchLength := func(p models.ExamplePost) bool { return p.Length == c.Length }

	// Relaxation ladder: exact, then without length, then without
	// language, then the whole dataset as a last resort.
	ladder := []func(models.ExamplePost) bool{
		func(p models.ExamplePost) bool { return matchLanguage(p) && matchLength(p) && matchTags(p) },
		func(p models.ExamplePost) bool { return matchLanguage(p) && matchTags(p) },
		func(p models.ExamplePost) bool { return matchTags(p) },
		func(p models.ExamplePost) bool { return true },
	}

	var matched []models.ExamplePost
	for _, match := range ladder {
		matched = filter(posts, match)
		if len(matched) > 0 {
			break
		}
	}

	rankByEngagement(matched)
	if len(matched) > MaxExamples {
		matched = matched[:MaxExamples]
	}
	return matched
}

func filter(posts []models.ExamplePost, match func(models.ExamplePost) bool) []models.ExamplePost {
	var out []models.ExamplePost
	for _, p := range posts {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

// rankByEngagement orders posts by descending engagement, preserving
// dataset order for equal engagement.
func rankByEngagement(posts []models.ExamplePost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Engagement > posts[j].Engagement
	})
}
