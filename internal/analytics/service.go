package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/database"
	"github.com/vacantvectors/postcraft/internal/dataset"
	"github.com/vacantvectors/postcraft/internal/models"
)

// cacheTTL bounds report staleness between dataset writes
const cacheTTL = 5 * time.Minute

// Service serves cached analytics reports per dataset. Redis is
// optional; without it every request recomputes from a fresh snapshot.
type Service struct {
	store  *dataset.Store
	redis  *database.Redis
	logger *zap.Logger
}

// NewService creates an analytics service
func NewService(store *dataset.Store, rdb *database.Redis, logger *zap.Logger) *Service {
	return &Service{store: store, redis: rdb, logger: logger}
}

// Engagement returns the engagement report for a dataset
func (s *Service) Engagement(ctx context.Context, datasetID uuid.UUID) (*EngagementReport, error) {
	var report EngagementReport
	err := s.cached(ctx, cacheKey(datasetID, "engagement"), &report, func() (interface{}, error) {
		posts, err := s.store.Snapshot(ctx, datasetID)
		if err != nil {
			return nil, err
		}
		return ComputeEngagement(posts), nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Content returns the content report for a dataset
func (s *Service) Content(ctx context.Context, datasetID uuid.UUID) (*ContentReport, error) {
	var report ContentReport
	err := s.cached(ctx, cacheKey(datasetID, "content"), &report, func() (interface{}, error) {
		posts, err := s.store.Snapshot(ctx, datasetID)
		if err != nil {
			return nil, err
		}
		return ComputeContent(posts), nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Distributions returns attribute distributions for a dataset
func (s *Service) Distributions(ctx context.Context, datasetID uuid.UUID) (*models.DatasetStats, error) {
	var stats models.DatasetStats
	err := s.cached(ctx, cacheKey(datasetID, "distributions"), &stats, func() (interface{}, error) {
		posts, err := s.store.Snapshot(ctx, datasetID)
		if err != nil {
			return nil, err
		}
		return dataset.ComputeStats(posts), nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Invalidate drops cached reports after a dataset write
func (s *Service) Invalidate(ctx context.Context, datasetID uuid.UUID) {
	if s.redis == nil {
		return
	}
	keys := []string{
		cacheKey(datasetID, "engagement"),
		cacheKey(datasetID, "content"),
		cacheKey(datasetID, "distributions"),
	}
	if err := s.redis.Client().Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("failed to invalidate analytics cache", zap.Error(err))
	}
}

// cached reads a report from Redis or computes and stores it. Cache
// failures degrade to recomputation, never to request failure.
func (s *Service) cached(ctx context.Context, key string, out interface{}, compute func() (interface{}, error)) error {
	if s.redis != nil {
		raw, err := s.redis.Client().Get(ctx, key).Bytes()
		if err == nil {
			if err := json.Unmarshal(raw, out); err == nil {
				return nil
			}
			s.logger.Warn("discarding corrupt analytics cache entry", zap.String("key", key))
		} else if err != redis.Nil {
			s.logger.Warn("analytics cache read failed", zap.Error(err))
		}
	}

	report, err := compute()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return err
	}

	if s.redis != nil {
		if err := s.redis.Client().Set(ctx, key, payload, cacheTTL).Err(); err != nil {
			s.logger.Warn("analytics cache write failed", zap.Error(err))
		}
	}
	return nil
}

func cacheKey(datasetID uuid.UUID, report string) string {
	return "analytics:" + datasetID.String() + ":" + report
}
