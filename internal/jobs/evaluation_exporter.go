package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/models"
	"github.com/dhruvi159/Voxhire-Project/internal/storage"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

const exportFolder = "evaluation_exports"

// EvaluationSource is the read side of the evaluation store.
type EvaluationSource interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Evaluation, error)
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule      string        // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir     string        // Directory to store exported files
	ExportEnabled bool          // Whether to run exports
	Lookback      time.Duration // Window covered by the first run; defaults to 24h
	Timeout       time.Duration // Per-run deadline; defaults to 5m
	// Settle holds the window's end back from the run time so records whose
	// background write is still in flight land in the next run.
	Settle time.Duration
}

// EvaluationExporter periodically writes the evaluation records created
// since its previous run to a JSONL file, and copies the file to object
// storage when an uploader is configured.
type EvaluationExporter struct {
	source   EvaluationSource
	uploader storage.Uploader
	config   *ExporterConfig
	cron     *cron.Cron
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	lastRun time.Time
}

func NewEvaluationExporter(source EvaluationSource, uploader storage.Uploader, config *ExporterConfig, logger *zap.Logger) *EvaluationExporter {
	if config.Lookback <= 0 {
		config.Lookback = 24 * time.Hour
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Minute
	}
	return &EvaluationExporter{
		source:   source,
		uploader: uploader,
		config:   config,
		cron:     cron.New(),
		logger:   utils.OrDefault(logger),
		now:      time.Now,
	}
}

// Start begins the scheduled export job
func (e *EvaluationExporter) Start() error {
	if !e.config.ExportEnabled {
		e.logger.Info("Evaluation export is disabled, skipping scheduler")
		return nil
	}

	_, err := e.cron.AddFunc(e.config.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.config.Timeout)
		defer cancel()
		if _, err := e.RunExport(ctx); err != nil {
			e.logger.Error("Evaluation export failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	e.cron.Start()
	e.logger.Info("Evaluation exporter started", zap.String("schedule", e.config.Schedule))
	return nil
}

// Stop halts the scheduler and waits for a running export to finish.
func (e *EvaluationExporter) Stop() {
	if e.cron != nil {
		<-e.cron.Stop().Done()
		e.logger.Info("Evaluation exporter stopped")
	}
}

// RunExport writes one export and returns the file path, or "" when there
// was nothing new. The window only advances after a successful write.
func (e *EvaluationExporter) RunExport(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	runAt := e.now().UTC()
	to := runAt.Add(-e.config.Settle)
	from := e.lastRun
	if from.IsZero() {
		from = to.Add(-e.config.Lookback)
	}

	records, err := e.source.ListBetween(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("failed to list evaluations: %w", err)
	}
	if len(records) == 0 {
		e.logger.Info("No new evaluations to export", zap.Time("since", from))
		e.lastRun = to
		return "", nil
	}

	data, err := toJSONL(records)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.config.ExportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	filename := fmt.Sprintf("evaluations_%s.jsonl", runAt.Format("20060102_150405"))
	path := filepath.Join(e.config.ExportDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	e.lastRun = to
	e.logger.Info("Exported evaluations", zap.Int("records", len(records)), zap.String("path", path))

	if e.uploader != nil {
		url, err := e.uploader.Upload(ctx, exportFolder, filename, "application/x-ndjson", data)
		if err != nil {
			// the local file is still the export of record
			e.logger.Warn("Failed to upload evaluation export", zap.String("path", path), zap.Error(err))
		} else {
			e.logger.Info("Uploaded evaluation export", zap.String("url", url))
		}
	}
	return path, nil
}

func toJSONL(records []models.Evaluation) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return nil, fmt.Errorf("failed to encode evaluation %s: %w", records[i].ID, err)
		}
	}
	return buf.Bytes(), nil
}
