package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/ramatoys/storefront/internal/jobs"
	"github.com/ramatoys/storefront/internal/store"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

const backupKeyLayout = "20060102T150405"

// BackupKey names the backup slot for a snapshot taken at t.
func BackupKey(t time.Time) string {
	return store.ProductsSlot + ":backup:" + t.UTC().Format(backupKeyLayout)
}

// CatalogBackupJob snapshots the product slot and prunes old snapshots.
type CatalogBackupJob struct {
	Store     store.Store
	Retention int
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewCatalogBackupJob wires dependencies for the backup handler.
func NewCatalogBackupJob(s store.Store, retention int, logger *slog.Logger, metrics *jobmetrics.Metrics) *CatalogBackupJob {
	return &CatalogBackupJob{
		Store:     s,
		Retention: retention,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes TaskCatalogBackup tasks.
func (j *CatalogBackupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("catalog backup: handler not configured")
	}
	var payload CatalogBackupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Reason == "" {
		payload.Reason = "scheduled"
	}
	_, err := j.Run(ctx, payload.Reason)
	return err
}

// Run takes one snapshot and returns its slot key. An empty key means the
// product slot has never been written and nothing was copied.
func (j *CatalogBackupJob) Run(ctx context.Context, reason string) (key string, resultErr error) {
	tracker := j.metrics().Track(TaskCatalogBackup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("reason", reason))

	raw, err := j.Store.Get(ctx, store.ProductsSlot)
	if errors.Is(err, store.ErrSlotNotFound) {
		logger.Info("catalog backup skipped, product slot empty")
		return "", nil
	}
	if err != nil {
		logger.Error("read product slot", slog.Any("error", err))
		return "", err
	}

	key = BackupKey(j.now())
	if err := j.Store.Set(ctx, key, raw); err != nil {
		logger.Error("write backup slot", slog.String("key", key), slog.Any("error", err))
		return "", err
	}

	index, err := j.loadIndex(ctx)
	if err != nil {
		logger.Error("load backup index", slog.Any("error", err))
		return "", err
	}
	index = appendUnique(index, key)
	keep, drop := retain(index, j.retention())
	if err := j.saveIndex(ctx, keep); err != nil {
		logger.Error("save backup index", slog.Any("error", err))
		return "", err
	}
	for _, old := range drop {
		if err := j.Store.Delete(ctx, old); err != nil {
			logger.Warn("delete expired backup", slog.String("key", old), slog.Any("error", err))
		}
	}
	j.metrics().AddPruned(len(drop))

	logger.Info("catalog backup written", slog.String("key", key), slog.Int("bytes", len(raw)), slog.Int("pruned", len(drop)))
	return key, nil
}

// Backups lists the retained backup slot keys, oldest first.
func (j *CatalogBackupJob) Backups(ctx context.Context) ([]string, error) {
	return j.loadIndex(ctx)
}

func (j *CatalogBackupJob) loadIndex(ctx context.Context) ([]string, error) {
	raw, err := j.Store.Get(ctx, store.BackupIndexSlot)
	if errors.Is(err, store.ErrSlotNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("catalog backup: decode index: %w", err)
	}
	return keys, nil
}

func (j *CatalogBackupJob) saveIndex(ctx context.Context, keys []string) error {
	raw, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	return j.Store.Set(ctx, store.BackupIndexSlot, raw)
}

func appendUnique(keys []string, key string) []string {
	for _, existing := range keys {
		if existing == key {
			return keys
		}
	}
	return append(keys, key)
}

// retain splits keys into the newest n and the rest.
func retain(keys []string, n int) (keep, drop []string) {
	if len(keys) <= n {
		return keys, nil
	}
	cut := len(keys) - n
	return keys[cut:], keys[:cut]
}

func (j *CatalogBackupJob) retention() int {
	if j.Retention < 1 {
		return 7
	}
	return j.Retention
}

func (j *CatalogBackupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

func (j *CatalogBackupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *CatalogBackupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
