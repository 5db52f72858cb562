package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/xilonoide/xiloadventures-sub005/adapters/codec"
	"github.com/xilonoide/xiloadventures-sub005/domain"
	"github.com/xilonoide/xiloadventures-sub005/domain/entities"
	"github.com/xilonoide/xiloadventures-sub005/domain/repositories"
)

// IngestService validates candidate audio files and stores them in the world
// model's asset collection.
type IngestService struct {
	assets repositories.AssetRepository
	engine repositories.AudioEngine
	events repositories.EventPublisher
	logger *zap.Logger
}

// NewIngestService creates a new ingestion service
func NewIngestService(
	assets repositories.AssetRepository,
	engine repositories.AudioEngine,
	events repositories.EventPublisher,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		assets: assets,
		engine: engine,
		events: events,
		logger: logger,
	}
}

// IngestResult aggregates the outcome of one batch of candidates
type IngestResult struct {
	Added    []string
	Failures []domain.IngestFailure
}

// Ingest runs every candidate independently and reports an aggregate result.
// A failing candidate never blocks its siblings, so partial success is the
// norm for a multi-file import.
func (s *IngestService) Ingest(ctx context.Context, paths []string) IngestResult {
	var result IngestResult

	for _, path := range paths {
		name := filepath.Base(path)
		asset, err := s.ingestOne(ctx, path, name)
		if err != nil {
			s.logger.Warn("Asset ingestion failed",
				zap.String("file", name),
				zap.Error(err))
			result.Failures = append(result.Failures, domain.IngestFailure{File: name, Err: err})
			continue
		}

		s.logger.Info("Asset ingested",
			zap.String("asset", asset.ID),
			zap.Int64("size", asset.SizeBytes),
			zap.Float64("duration", asset.DurationSeconds))
		result.Added = append(result.Added, asset.ID)
	}

	if len(result.Added) > 0 && s.events != nil {
		s.events.Publish("assets_ingested", map[string]interface{}{
			"added": result.Added,
		})
	}

	return result
}

// ingestOne validates, probes, encodes and stores a single candidate
func (s *IngestService) ingestOne(ctx context.Context, path, name string) (*entities.AudioAsset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	if info.Size() > entities.MaxAssetSize {
		return nil, &domain.TooLargeError{Name: name, Size: info.Size(), Limit: entities.MaxAssetSize}
	}

	if _, exists := s.assets.Find(ctx, name); exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateName, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	duration, err := s.engine.ProbeDuration(ctx, path)
	if err != nil {
		// A broken duration header is cosmetic; the asset is still playable.
		s.logger.Debug("Duration probe failed",
			zap.String("file", name),
			zap.Error(err))
		duration = 0
	}

	asset := entities.NewAudioAsset(name, codec.Encode(data), info.Size(), duration)
	if err := s.assets.Add(ctx, asset); err != nil {
		return nil, err
	}

	return asset, nil
}
