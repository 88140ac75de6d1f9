package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/config"
	"github.com/vacantvectors/postcraft/internal/generator"
	"github.com/vacantvectors/postcraft/internal/models"
)

const metadataPrompt = `You are an expert at analyzing LinkedIn posts. Extract the following metadata from the given post:

1. line_count: Count the number of lines in the post
2. language: Determine if the post is in "English" or "Hinglish" (mix of Hindi and English)
3. tags: Extract 2-4 relevant topic tags that describe the main themes of the post
4. length_category: Categorize as "Short" (1-5 lines), "Medium" (6-10 lines), or "Long" (11+ lines)
5. tone: Identify the tone as "Professional", "Casual", "Humorous", "Inspirational", or "Educational"
6. target_audience: Identify target audience as "Students", "Professionals", "Job Seekers", "Entrepreneurs", or "General"

Return ONLY a valid JSON object with these fields. No additional text.

Post to analyze:
%s`

// Processor enriches raw posts with labels extracted by the LLM. When
// the model reply is unusable the post falls back to heuristic labels so
// a bad reply never loses a record.
type Processor struct {
	llm    generator.LLMClient
	cfg    config.LLMConfig
	logger *zap.Logger
}

// NewProcessor creates a dataset processor
func NewProcessor(llm generator.LLMClient, cfg config.LLMConfig, logger *zap.Logger) *Processor {
	return &Processor{llm: llm, cfg: cfg, logger: logger}
}

// Enrich labels a single post. Posts without text are skipped with an error.
func (p *Processor) Enrich(ctx context.Context, post models.ExamplePost) (models.ExamplePost, error) {
	if strings.TrimSpace(post.Text) == "" {
		return post, fmt.Errorf("post has no text content")
	}

	raw, err := p.llm.Complete(ctx, fmt.Sprintf(metadataPrompt, post.Text), generator.CompletionOptions{
		Model:       p.cfg.Model,
		Temperature: 0.1,
		MaxTokens:   300,
	})
	if err != nil || !applyMetadata(raw, &post) {
		if err != nil {
			p.logger.Warn("metadata extraction call failed, using heuristics", zap.Error(err))
		} else {
			p.logger.Warn("metadata reply unparseable, using heuristics")
		}
		applyHeuristics(&post)
	}

	post.Normalize()
	return post, nil
}

// ProcessAll enriches every post, counting the ones that were skipped
func (p *Processor) ProcessAll(ctx context.Context, posts []models.ExamplePost) ([]models.ExamplePost, int) {
	out := make([]models.ExamplePost, 0, len(posts))
	skipped := 0
	for _, post := range posts {
		enriched, err := p.Enrich(ctx, post)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, enriched)
	}
	return out, skipped
}

// applyMetadata parses the model's JSON reply into the post. Replies are
// often wrapped in prose or code fences, so only the outermost object is
// considered. Returns false when no usable object was found.
func applyMetadata(raw string, post *models.ExamplePost) bool {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return false
	}
	doc := gjson.Parse(raw[start : end+1])
	if !doc.IsObject() {
		return false
	}

	if v := doc.Get("line_count"); v.Exists() {
		post.LineCount = int(v.Int())
	}
	if v := doc.Get("language"); v.Exists() {
		if lang := models.Language(v.String()); lang.Valid() {
			post.Language = lang
		}
	}
	if v := doc.Get("tags"); v.IsArray() {
		var tags []string
		for _, t := range v.Array() {
			if tag := strings.TrimSpace(t.String()); tag != "" {
				tags = append(tags, tag)
			}
		}
		if len(tags) > 0 {
			post.Tags = tags
		}
	}
	if v := doc.Get("length_category"); v.Exists() {
		if bucket := models.LengthBucket(v.String()); bucket.Valid() {
			post.Length = bucket
		}
	}
	if v := doc.Get("tone"); v.Exists() {
		if tone := models.Tone(v.String()); tone.Valid() {
			post.Tone = tone
		}
	}
	if v := doc.Get("target_audience"); v.Exists() {
		post.Audience = v.String()
	}
	return true
}

// applyHeuristics fills labels from the text alone
func applyHeuristics(post *models.ExamplePost) {
	post.LineCount = len(strings.Split(post.Text, "\n"))
	post.Length = models.BucketForLineCount(post.LineCount)
	if post.Language == "" {
		post.Language = models.LanguageEnglish
	}
	if len(post.Tags) == 0 {
		post.Tags = []string{"General"}
	}
}
