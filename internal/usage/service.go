package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/database"
)

// Rough chars-per-token ratio for English text; good enough for quota
// accounting, not billing.
const charsPerToken = 4

// QuotaStatus is the result of a quota check
type QuotaStatus struct {
	Allowed         bool  `json:"allowed"`
	UsedTokens      int64 `json:"used_tokens"`
	RemainingTokens int64 `json:"remaining_tokens"`
}

// Summary aggregates a user's generation usage for the current month
type Summary struct {
	UserID          uuid.UUID `json:"user_id"`
	PeriodStart     time.Time `json:"period_start"`
	Generations     int64     `json:"generations"`
	PromptTokens    int64     `json:"prompt_tokens"`
	OutputTokens    int64     `json:"output_tokens"`
	RemainingTokens int64     `json:"remaining_tokens"`
}

// Service tracks LLM token usage per user and enforces a monthly cap
type Service struct {
	db           *database.Postgres
	monthlyLimit int64
	logger       *zap.Logger
}

func NewService(db *database.Postgres, monthlyLimit int64, logger *zap.Logger) *Service {
	return &Service{
		db:           db,
		monthlyLimit: monthlyLimit,
		logger:       logger,
	}
}

// EstimateTokens approximates the token count of a text
func EstimateTokens(text string) int {
	n := len(text) / charsPerToken
	if n == 0 && text != "" {
		n = 1
	}
	return n
}

// CheckQuota verifies the user is under their monthly token limit
func (s *Service) CheckQuota(ctx context.Context, userID uuid.UUID) (*QuotaStatus, error) {
	used, err := s.usedThisMonth(ctx, userID)
	if err != nil {
		// Fail open: quota is a guard rail, not a billing system
		s.logger.Warn("failed to read usage, allowing request", zap.Error(err))
		return &QuotaStatus{Allowed: true, RemainingTokens: s.monthlyLimit}, nil
	}

	remaining := s.monthlyLimit - used
	if remaining <= 0 {
		s.logger.Info("monthly token quota exceeded",
			zap.String("user_id", userID.String()),
			zap.Int64("used", used),
			zap.Int64("limit", s.monthlyLimit),
		)
		return &QuotaStatus{Allowed: false, UsedTokens: used}, nil
	}

	return &QuotaStatus{Allowed: true, UsedTokens: used, RemainingTokens: remaining}, nil
}

// RecordGeneration estimates token counts from the raw texts and records
// them. Satisfies the generation service's usage recorder.
func (s *Service) RecordGeneration(ctx context.Context, userID uuid.UUID, operation, model, prompt, output string) {
	s.Record(ctx, userID, operation, model, EstimateTokens(prompt), EstimateTokens(output))
}

// Record logs actual usage after a generation
func (s *Service) Record(ctx context.Context, userID uuid.UUID, operation, model string, promptTokens, outputTokens int) {
	query := `
		INSERT INTO usage_logs (user_id, operation, model, prompt_tokens, output_tokens)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.Pool().Exec(ctx, query, userID, operation, model, promptTokens, outputTokens)
	if err != nil {
		// Log but don't fail the operation; the post is already generated
		s.logger.Error("failed to record usage", zap.Error(err))
	}
}

// UserSummary returns the current month's usage for a user
func (s *Service) UserSummary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	periodStart := monthStart(time.Now().UTC())

	query := `
		SELECT COUNT(*), COALESCE(SUM(prompt_tokens), 0), COALESCE(SUM(output_tokens), 0)
		FROM usage_logs
		WHERE user_id = $1 AND created_at >= $2
	`

	sum := &Summary{UserID: userID, PeriodStart: periodStart}
	err := s.db.Pool().QueryRow(ctx, query, userID, periodStart).
		Scan(&sum.Generations, &sum.PromptTokens, &sum.OutputTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to read usage: %w", err)
	}

	sum.RemainingTokens = s.monthlyLimit - sum.PromptTokens - sum.OutputTokens
	if sum.RemainingTokens < 0 {
		sum.RemainingTokens = 0
	}
	return sum, nil
}

func (s *Service) usedThisMonth(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		SELECT COALESCE(SUM(prompt_tokens + output_tokens), 0)
		FROM usage_logs
		WHERE user_id = $1 AND created_at >= $2
	`
	var used int64
	err := s.db.Pool().QueryRow(ctx, query, userID, monthStart(time.Now().UTC())).Scan(&used)
	return used, err
}

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
