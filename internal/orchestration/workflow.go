package orchestration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/dataset"
	"github.com/vacantvectors/postcraft/internal/models"
)

const defaultBatchSize = 20

// EnrichBatchInput carries one slice of posts through the enrichment activity.
type EnrichBatchInput struct {
	DatasetID uuid.UUID            `json:"dataset_id"`
	Posts     []models.ExamplePost `json:"posts"`
}

// EnrichBatchResult is the enriched batch plus the count of posts dropped.
type EnrichBatchResult struct {
	Posts   []models.ExamplePost `json:"posts"`
	Skipped int                  `json:"skipped"`
}

// Activities bundles the dataset dependencies the workflow calls into.
type Activities struct {
	Store     *dataset.Store
	Processor *dataset.Processor
	Logger    *zap.Logger
}

func NewActivities(store *dataset.Store, processor *dataset.Processor, logger *zap.Logger) *Activities {
	return &Activities{Store: store, Processor: processor, Logger: logger}
}

func (a *Activities) SetDatasetStatus(ctx context.Context, datasetID uuid.UUID, status models.DatasetStatus) error {
	return a.Store.SetStatus(ctx, datasetID, status)
}

func (a *Activities) LoadSnapshot(ctx context.Context, datasetID uuid.UUID) ([]models.ExamplePost, error) {
	return a.Store.Snapshot(ctx, datasetID)
}

func (a *Activities) EnrichBatch(ctx context.Context, input EnrichBatchInput) (*EnrichBatchResult, error) {
	posts, skipped := a.Processor.ProcessAll(ctx, input.Posts)
	a.Logger.Info("enriched batch",
		zap.String("dataset_id", input.DatasetID.String()),
		zap.Int("enriched", len(posts)),
		zap.Int("skipped", skipped))
	return &EnrichBatchResult{Posts: posts, Skipped: skipped}, nil
}

func (a *Activities) StorePosts(ctx context.Context, datasetID uuid.UUID, posts []models.ExamplePost) error {
	return a.Store.ReplacePosts(ctx, datasetID, posts)
}

// ProcessDatasetWorkflow enriches every post in a dataset with inferred
// metadata, in batches, and flips the dataset status when done. The status
// is set to failed if any step gives up after retries.
func ProcessDatasetWorkflow(ctx workflow.Context, input models.ProcessDatasetInput) (*models.ProcessDatasetOutput, error) {
	opts := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, opts)
	logger := workflow.GetLogger(ctx)

	var a *Activities

	if err := workflow.ExecuteActivity(ctx, a.SetDatasetStatus, input.DatasetID, models.DatasetStatusProcessing).Get(ctx, nil); err != nil {
		return nil, err
	}

	var posts []models.ExamplePost
	if err := workflow.ExecuteActivity(ctx, a.LoadSnapshot, input.DatasetID).Get(ctx, &posts); err != nil {
		return nil, markFailed(ctx, a, input.DatasetID, err)
	}

	batchSize := input.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	enriched := make([]models.ExamplePost, 0, len(posts))
	skipped := 0
	for start := 0; start < len(posts); start += batchSize {
		end := start + batchSize
		if end > len(posts) {
			end = len(posts)
		}

		var result EnrichBatchResult
		batch := EnrichBatchInput{DatasetID: input.DatasetID, Posts: posts[start:end]}
		if err := workflow.ExecuteActivity(ctx, a.EnrichBatch, batch).Get(ctx, &result); err != nil {
			return nil, markFailed(ctx, a, input.DatasetID, err)
		}
		enriched = append(enriched, result.Posts...)
		skipped += result.Skipped
	}

	if err := workflow.ExecuteActivity(ctx, a.StorePosts, input.DatasetID, enriched).Get(ctx, nil); err != nil {
		return nil, markFailed(ctx, a, input.DatasetID, err)
	}

	if err := workflow.ExecuteActivity(ctx, a.SetDatasetStatus, input.DatasetID, models.DatasetStatusReady).Get(ctx, nil); err != nil {
		return nil, err
	}

	logger.Info("dataset processed", "dataset_id", input.DatasetID.String(), "processed", len(enriched), "skipped", skipped)
	return &models.ProcessDatasetOutput{
		DatasetID: input.DatasetID,
		Processed: len(enriched),
		Skipped:   skipped,
	}, nil
}

func markFailed(ctx workflow.Context, a *Activities, datasetID uuid.UUID, cause error) error {
	if err := workflow.ExecuteActivity(ctx, a.SetDatasetStatus, datasetID, models.DatasetStatusFailed).Get(ctx, nil); err != nil {
		workflow.GetLogger(ctx).Error("failed to mark dataset failed", "error", err)
	}
	return cause
}
