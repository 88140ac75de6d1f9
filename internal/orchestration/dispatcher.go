package orchestration

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"github.com/vacantvectors/postcraft/internal/models"
)

// RunWorker registers the dataset workflow and its activities and blocks
// until the interrupt channel fires.
func RunWorker(c client.Client, activities *Activities) error {
	w := worker.New(c, TaskQueue, worker.Options{})
	w.RegisterWorkflow(ProcessDatasetWorkflow)
	w.RegisterActivity(activities)
	return w.Run(worker.InterruptCh())
}

// Dispatcher starts dataset processing. It prefers Temporal for durability
// and falls back to an in-process run when no Temporal client is available.
type Dispatcher struct {
	temporal   client.Client
	activities *Activities
	logger     *zap.Logger
}

func NewDispatcher(temporal client.Client, activities *Activities, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{temporal: temporal, activities: activities, logger: logger}
}

// StartProcessing kicks off enrichment for a dataset and returns without
// waiting for it to finish.
func (d *Dispatcher) StartProcessing(ctx context.Context, datasetID uuid.UUID) error {
	input := models.ProcessDatasetInput{DatasetID: datasetID, BatchSize: defaultBatchSize}

	if d.temporal != nil {
		opts := client.StartWorkflowOptions{
			ID:        fmt.Sprintf("process-dataset-%s", datasetID),
			TaskQueue: TaskQueue,
		}
		_, err := d.temporal.ExecuteWorkflow(ctx, opts, ProcessDatasetWorkflow, input)
		if err != nil {
			return fmt.Errorf("failed to start workflow: %w", err)
		}
		return nil
	}

	d.logger.Warn("temporal unavailable, processing dataset in-process",
		zap.String("dataset_id", datasetID.String()))
	go d.processLocal(datasetID)
	return nil
}

func (d *Dispatcher) processLocal(datasetID uuid.UUID) {
	ctx := context.Background()
	a := d.activities

	if err := a.SetDatasetStatus(ctx, datasetID, models.DatasetStatusProcessing); err != nil {
		d.logger.Error("failed to mark dataset processing", zap.Error(err))
		return
	}

	fail := func(cause error) {
		d.logger.Error("local dataset processing failed",
			zap.String("dataset_id", datasetID.String()), zap.Error(cause))
		if err := a.SetDatasetStatus(ctx, datasetID, models.DatasetStatusFailed); err != nil {
			d.logger.Error("failed to mark dataset failed", zap.Error(err))
		}
	}

	posts, err := a.LoadSnapshot(ctx, datasetID)
	if err != nil {
		fail(err)
		return
	}

	result, err := a.EnrichBatch(ctx, EnrichBatchInput{DatasetID: datasetID, Posts: posts})
	if err != nil {
		fail(err)
		return
	}

	if err := a.StorePosts(ctx, datasetID, result.Posts); err != nil {
		fail(err)
		return
	}
	if err := a.SetDatasetStatus(ctx, datasetID, models.DatasetStatusReady); err != nil {
		d.logger.Error("failed to mark dataset ready", zap.Error(err))
	}
}
