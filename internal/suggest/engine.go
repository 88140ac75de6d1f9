package suggest

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/models"
)

// Engine proposes generation parameters for a raw topic so clients can
// pre-fill the request form with something sensible.
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		logger: logger,
	}
}

// Suggestion is one proposed parameter value with a confidence score
type Suggestion struct {
	Field      string  `json:"field"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	Reason     string  `json:"reason"`
}

// AnalyzeTopic returns parameter suggestions for a topic
func (e *Engine) AnalyzeTopic(ctx context.Context, topic string) []Suggestion {
	suggestions := []Suggestion{}
	topicLower := strings.ToLower(topic)

	// Career-adjacent topics read best aimed at job seekers
	if containsAny(topicLower, "job", "career", "interview", "resume", "hiring", "layoff") {
		suggestions = append(suggestions, Suggestion{
			Field:      "audience",
			Value:      "Job Seekers",
			Confidence: 0.8,
			Reason:     "Topic mentions job search or career terms",
		})
	}

	// How-to phrasing suggests an educational purpose
	if containsAny(topicLower, "how to", "learn", "guide", "tips", "lessons") {
		suggestions = append(suggestions, Suggestion{
			Field:      "purpose",
			Value:      "Give Advice",
			Confidence: 0.75,
			Reason:     "Topic is phrased as instruction or advice",
		})
		suggestions = append(suggestions, Suggestion{
			Field:      "tone",
			Value:      string(models.ToneEducational),
			Confidence: 0.7,
			Reason:     "Instructional topics land better in an educational tone",
		})
	}

	// Questions invite engagement-style posts
	if strings.Contains(topic, "?") || containsAny(topicLower, "should i", "what do you think") {
		suggestions = append(suggestions, Suggestion{
			Field:      "purpose",
			Value:      "Ask Question",
			Confidence: 0.85,
			Reason:     "Topic is already a question",
		})
	}

	// Milestones call for celebration
	if containsAny(topicLower, "promotion", "got promoted", "first client", "milestone", "anniversary", "launched", "graduated") {
		suggestions = append(suggestions, Suggestion{
			Field:      "purpose",
			Value:      "Celebrate Achievement",
			Confidence: 0.85,
			Reason:     "Topic describes a milestone",
		})
		suggestions = append(suggestions, Suggestion{
			Field:      "tone",
			Value:      string(models.ToneInspirational),
			Confidence: 0.6,
			Reason:     "Milestone posts usually carry an inspirational tone",
		})
	}

	// Founder topics skew toward the entrepreneur audience
	if containsAny(topicLower, "startup", "founder", "bootstrapp", "funding", "saas") {
		suggestions = append(suggestions, Suggestion{
			Field:      "audience",
			Value:      "Entrepreneurs",
			Confidence: 0.8,
			Reason:     "Topic mentions startup or founder terms",
		})
	}

	// Personal narratives suit storytelling
	if containsAny(topicLower, "my journey", "my story", "i failed", "i quit", "years ago") {
		suggestions = append(suggestions, Suggestion{
			Field:      "style",
			Value:      "Storytelling",
			Confidence: 0.75,
			Reason:     "Topic is a first-person narrative",
		})
		suggestions = append(suggestions, Suggestion{
			Field:      "length",
			Value:      string(models.LengthLong),
			Confidence: 0.6,
			Reason:     "Narratives need room to develop",
		})
	}

	// Default length when nothing else suggested one
	if !hasField(suggestions, "length") {
		suggestions = append(suggestions, Suggestion{
			Field:      "length",
			Value:      string(models.LengthMedium),
			Confidence: 0.5,
			Reason:     "Medium posts perform consistently across topics",
		})
	}

	e.logger.Debug("analyzed topic",
		zap.String("topic", topic),
		zap.Int("suggestions", len(suggestions)),
	)
	return suggestions
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasField(suggestions []Suggestion, field string) bool {
	for _, s := range suggestions {
		if s.Field == field {
			return true
		}
	}
	return false
}
