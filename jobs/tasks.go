package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCatalogBackup copies the product slot to a timestamped backup slot.
	TaskCatalogBackup = "catalog:backup"
)

// CatalogBackupPayload describes why a backup was requested.
type CatalogBackupPayload struct {
	Reason string `json:"reason"`
}

// NewCatalogBackupTask constructs an Asynq task.
func NewCatalogBackupTask(reason string) (*asynq.Task, error) {
	data, err := json.Marshal(CatalogBackupPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogBackup, data), nil
}
