package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/config"
	"github.com/vacantvectors/postcraft/internal/models"
)

type recordingHistory struct {
	saved []*models.GeneratedPost
}

func (r *recordingHistory) SaveGenerated(_ context.Context, post *models.GeneratedPost) error {
	r.saved = append(r.saved, post)
	return nil
}

type recordingPublisher struct {
	subjects []string
}

func (r *recordingPublisher) Publish(subject string, _ interface{}) error {
	r.subjects = append(r.subjects, subject)
	return nil
}

func llmConfig() config.LLMConfig {
	return config.LLMConfig{Model: "test-model", Temperature: 0.7, MaxTokens: 500, MaxExamples: 2}
}

func snapshot() []models.ExamplePost {
	return []models.ExamplePost{
		{Text: "Post A", Tags: []string{"Internship"}, Language: models.LanguageEnglish, Length: models.LengthMedium, Engagement: 50},
		{Text: "Post B", Tags: []string{"Internship"}, Language: models.LanguageEnglish, Length: models.LengthMedium, Engagement: 90},
	}
}

func TestGenerateHappyPath(t *testing.T) {
	llm := &MockLLM{Response: "Thrilled to start my internship journey this summer!\n\n#Internship #Growth"}
	history := &recordingHistory{}
	events := &recordingPublisher{}
	svc := NewService(llm, llmConfig(), history, events, nil, zap.NewNop())

	req := models.GenerationRequest{
		Topic:           "Internship",
		Length:          models.LengthMedium,
		Language:        models.LanguageEnglish,
		Tone:            models.ToneProfessional,
		IncludeHashtags: true,
	}

	post, validated, err := svc.Generate(context.Background(), req, snapshot(), uuid.New())
	require.NoError(t, err)

	// Higher-engagement example leads the prompt.
	assert.Contains(t, llm.LastPrompt, "Post B")
	assert.Contains(t, llm.LastPrompt, "Post A")
	assert.Contains(t, llm.LastPrompt, "Topic: Internship")

	assert.Equal(t, "test-model", post.Model)
	assert.Equal(t, 2, validated.HashtagCount)
	require.Len(t, history.saved, 1)
	assert.Equal(t, post.ID, history.saved[0].ID)
	require.Len(t, events.subjects, 1)
	assert.Equal(t, "post.generated.custom", events.subjects[0])
}

func TestGenerateEmptySnapshotStillBuildsPrompt(t *testing.T) {
	llm := &MockLLM{Response: "A decent post with enough words to pass validation."}
	svc := NewService(llm, llmConfig(), nil, nil, nil, zap.NewNop())

	req := models.GenerationRequest{
		Topic:    "Internship",
		Length:   models.LengthMedium,
		Language: models.LanguageEnglish,
	}

	_, _, err := svc.Generate(context.Background(), req, nil, uuid.New())
	require.NoError(t, err)
	assert.NotContains(t, llm.LastPrompt, "Example 1:")
}

func TestGeneratePropagatesLLMError(t *testing.T) {
	wantErr := errors.New("rate limit exceeded")
	svc := NewService(&MockLLM{Err: wantErr}, llmConfig(), nil, nil, nil, zap.NewNop())

	_, _, err := svc.Generate(context.Background(), models.GenerationRequest{
		Topic: "X", Length: models.LengthShort, Language: models.LanguageEnglish,
	}, nil, uuid.New())

	// Transport failures pass through unmodified; no retry, no wrapping.
	assert.Same(t, wantErr, err)
}

func TestGenerateRejectsOverlongOutput(t *testing.T) {
	long := ""
	for i := 0; i < 10; i++ {
		long += "line\n"
	}
	svc := NewService(&MockLLM{Response: long}, llmConfig(), nil, nil, nil, zap.NewNop())

	_, _, err := svc.Generate(context.Background(), models.GenerationRequest{
		Topic: "X", Length: models.LengthShort, Language: models.LanguageEnglish,
	}, nil, uuid.New())

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, KindLineCountHigh, verr.Kind)
}

func TestGenerateCustom(t *testing.T) {
	llm := &MockLLM{Response: "Five tips for breaking into data engineering today. #Career"}
	history := &recordingHistory{}
	svc := NewService(llm, llmConfig(), history, nil, nil, zap.NewNop())

	req := models.CustomRequest{
		Topic:    "Breaking into data engineering",
		Audience: "Job Seekers",
		Purpose:  "Give Advice",
		Length:   models.LengthShort,
		Language: models.LanguageEnglish,
		Style:    "Tips & Tricks",
	}

	post, validated, err := svc.GenerateCustom(context.Background(), req, uuid.New())
	require.NoError(t, err)
	assert.Contains(t, llm.LastPrompt, "CONTENT SPECIFICATIONS:")
	assert.Equal(t, req.Topic, post.Topic)
	assert.Empty(t, validated.Warnings)
	require.Len(t, history.saved, 1)
}
