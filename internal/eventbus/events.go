package eventbus

import (
	"time"

	"github.com/google/uuid"

	"github.com/vacantvectors/postcraft/internal/models"
)

// GeneratedEvent is published after every successful generation
type GeneratedEvent struct {
	PostID    uuid.UUID           `json:"post_id"`
	UserID    uuid.UUID           `json:"user_id"`
	DatasetID uuid.UUID           `json:"dataset_id,omitempty"`
	Topic     string              `json:"topic"`
	Length    models.LengthBucket `json:"length"`
	Language  models.Language     `json:"language"`
	Model     string              `json:"model"`
	Examples  int                 `json:"examples"`
	Timestamp time.Time           `json:"timestamp"`
}

// SubjectFor returns the stream subject for an event
func (e GeneratedEvent) SubjectFor() string {
	if e.DatasetID == uuid.Nil {
		return SubjectPrefix + ".custom"
	}
	return SubjectPrefix + "." + e.DatasetID.String()
}
