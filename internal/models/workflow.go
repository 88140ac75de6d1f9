package models

import "github.com/google/uuid"

// ProcessDatasetInput is the input to the dataset processing workflow
type ProcessDatasetInput struct {
	DatasetID uuid.UUID `json:"dataset_id"`
	BatchSize int       `json:"batch_size"`
}

// ProcessDatasetOutput is the result of the dataset processing workflow
type ProcessDatasetOutput struct {
	DatasetID uuid.UUID `json:"dataset_id"`
	Processed int       `json:"processed"`
	Skipped   int       `json:"skipped"`
}
