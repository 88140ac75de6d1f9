package generator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/config"
	"github.com/vacantvectors/postcraft/internal/eventbus"
	"github.com/vacantvectors/postcraft/internal/fewshot"
	"github.com/vacantvectors/postcraft/internal/metrics"
	"github.com/vacantvectors/postcraft/internal/models"
	"github.com/vacantvectors/postcraft/internal/prompt"
)

// HistoryStore records successful generations
type HistoryStore interface {
	SaveGenerated(ctx context.Context, post *models.GeneratedPost) error
}

// EventPublisher fans out generation events; eventbus.Bus implements it
type EventPublisher interface {
	Publish(subject string, event interface{}) error
}

// UsageRecorder accounts for tokens spent on a generation
type UsageRecorder interface {
	RecordGeneration(ctx context.Context, userID uuid.UUID, operation, model, prompt, output string)
}

// Service chains example selection, prompt construction, the LLM call and
// output validation into one generation flow. Each call is stateless and
// operates on the dataset snapshot it is handed; nothing here mutates
// shared state between concurrent requests.
type Service struct {
	llm     LLMClient
	cfg     config.LLMConfig
	history HistoryStore
	events  EventPublisher
	usage   UsageRecorder
	logger  *zap.Logger
}

// NewService creates a generation service. history, events and usage may be
// nil; generation then still works but nothing is recorded or published.
func NewService(llm LLMClient, cfg config.LLMConfig, history HistoryStore, events EventPublisher, usage UsageRecorder, logger *zap.Logger) *Service {
	return &Service{llm: llm, cfg: cfg, history: history, events: events, usage: usage, logger: logger}
}

// Generate runs the quick-generate flow against a dataset snapshot
func (s *Service) Generate(ctx context.Context, req models.GenerationRequest, snapshot []models.ExamplePost, userID uuid.UUID) (*models.GeneratedPost, *ValidatedPost, error) {
	start := time.Now()

	examples := fewshot.Select(snapshot, fewshot.FromRequest(req))
	metrics.ExamplesSelected.Observe(float64(len(examples)))

	promptText := prompt.Build(req, examples)

	raw, err := s.llm.Complete(ctx, promptText, s.completionOptions())
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("quick", "llm_error").Inc()
		return nil, nil, err
	}

	validated, err := Validate(raw, req)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("quick", "invalid").Inc()
		s.logger.Warn("generated output failed validation",
			zap.Error(err),
			zap.String("topic", req.Topic),
		)
		return nil, nil, err
	}

	post := &models.GeneratedPost{
		ID:        uuid.New(),
		UserID:    userID,
		DatasetID: req.DatasetID,
		Text:      validated.Text,
		Topic:     req.Topic,
		Length:    req.Length,
		Language:  req.Language,
		Tone:      req.Tone,
		Model:     s.cfg.Model,
		Warnings:  validated.Warnings,
		CreatedAt: time.Now().UTC(),
	}
	s.record(ctx, post, len(examples))
	if s.usage != nil {
		s.usage.RecordGeneration(ctx, userID, "quick", s.cfg.Model, promptText, validated.Text)
	}

	metrics.GenerationsTotal.WithLabelValues("quick", "success").Inc()
	metrics.GenerationDuration.WithLabelValues("quick").Observe(time.Since(start).Seconds())
	s.logger.Info("post generated",
		zap.String("post_id", post.ID.String()),
		zap.String("topic", req.Topic),
		zap.Int("examples", len(examples)),
		zap.Duration("latency", time.Since(start)),
	)
	return post, validated, nil
}

// GenerateCustom runs the fully parameterized flow. Custom prompts carry
// no few-shot examples; the instructions stand alone.
func (s *Service) GenerateCustom(ctx context.Context, req models.CustomRequest, userID uuid.UUID) (*models.GeneratedPost, *ValidatedPost, error) {
	start := time.Now()

	promptText := prompt.BuildCustom(req)

	raw, err := s.llm.Complete(ctx, promptText, s.completionOptions())
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("custom", "llm_error").Inc()
		return nil, nil, err
	}

	// Custom prompts always ask for hashtags, so the validator warns
	// when none come back.
	shape := models.GenerationRequest{
		Topic:           req.Topic,
		Length:          req.Length,
		Language:        req.Language,
		IncludeHashtags: true,
	}
	validated, err := Validate(raw, shape)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("custom", "invalid").Inc()
		return nil, nil, err
	}

	post := &models.GeneratedPost{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      validated.Text,
		Topic:     req.Topic,
		Length:    req.Length,
		Language:  req.Language,
		Model:     s.cfg.Model,
		Warnings:  validated.Warnings,
		CreatedAt: time.Now().UTC(),
	}
	s.record(ctx, post, 0)
	if s.usage != nil {
		s.usage.RecordGeneration(ctx, userID, "custom", s.cfg.Model, promptText, validated.Text)
	}

	metrics.GenerationsTotal.WithLabelValues("custom", "success").Inc()
	metrics.GenerationDuration.WithLabelValues("custom").Observe(time.Since(start).Seconds())
	return post, validated, nil
}

func (s *Service) completionOptions() CompletionOptions {
	return CompletionOptions{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	}
}

// record persists history and publishes the generation event. Failures
// here are logged, not returned; the generated post is already in hand.
func (s *Service) record(ctx context.Context, post *models.GeneratedPost, examples int) {
	if s.history != nil {
		if err := s.history.SaveGenerated(ctx, post); err != nil {
			s.logger.Error("failed to save generated post", zap.Error(err), zap.String("post_id", post.ID.String()))
		}
	}
	if s.events != nil {
		event := eventbus.GeneratedEvent{
			PostID:    post.ID,
			UserID:    post.UserID,
			DatasetID: post.DatasetID,
			Topic:     post.Topic,
			Length:    post.Length,
			Language:  post.Language,
			Model:     post.Model,
			Examples:  examples,
			Timestamp: post.CreatedAt,
		}
		if err := s.events.Publish(event.SubjectFor(), event); err != nil {
			s.logger.Warn("failed to publish generation event", zap.Error(err))
		}
	}
}
