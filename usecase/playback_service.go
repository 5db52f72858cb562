package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xilonoide/xiloadventures-sub005/adapters/codec"
	"github.com/xilonoide/xiloadventures-sub005/domain"
	"github.com/xilonoide/xiloadventures-sub005/domain/entities"
	"github.com/xilonoide/xiloadventures-sub005/domain/repositories"
)

// PlaybackService owns the single live playback session. At most one session
// is alive at any instant; starting a new one always tears down the previous
// one first.
type PlaybackService struct {
	assets repositories.AssetRepository
	engine repositories.AudioEngine
	events repositories.EventPublisher
	logger *zap.Logger

	mu      sync.Mutex
	current *playbackSession
}

// NewPlaybackService creates a new playback controller
func NewPlaybackService(
	assets repositories.AssetRepository,
	engine repositories.AudioEngine,
	events repositories.EventPublisher,
	logger *zap.Logger,
) *PlaybackService {
	return &PlaybackService{
		assets: assets,
		engine: engine,
		events: events,
		logger: logger,
	}
}

// playbackSession couples the decoded stream and the output device backing
// one playing asset. The pair is always released together, device first.
type playbackSession struct {
	id        string
	assetID   string
	stream    repositories.AudioStream
	device    repositories.OutputDevice
	startedAt time.Time

	teardownOnce sync.Once
}

// teardown releases the session's resources: device stopped and disposed,
// then the stream closed. Callable from both the control thread and the
// engine's completion callback; only the first caller does the work.
func (s *playbackSession) teardown() {
	s.teardownOnce.Do(func() {
		s.device.Stop()
		s.device.Dispose()
		_ = s.stream.Close()
	})
}

// Play starts exclusive playback of the named asset. Any session already
// running is fully torn down first; on failure the controller stays idle.
func (p *PlaybackService) Play(ctx context.Context, assetID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		p.current.teardown()
		p.current = nil
	}

	asset, ok := p.assets.Find(ctx, assetID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrAssetNotFound, assetID)
	}
	if asset.EncodedData == "" {
		return fmt.Errorf("%w: %s", domain.ErrAssetEmpty, assetID)
	}

	data, err := codec.Decode(asset.EncodedData)
	if err != nil {
		return &domain.PlaybackError{AssetID: asset.ID, Err: err}
	}

	stream, err := p.engine.OpenStream(asset.ID, data)
	if err != nil {
		return &domain.PlaybackError{AssetID: asset.ID, Err: err}
	}

	session := &playbackSession{
		id:        uuid.New().String(),
		assetID:   asset.ID,
		stream:    stream,
		startedAt: time.Now(),
	}

	device, err := p.engine.OpenDevice(stream, func() { p.finished(session) })
	if err != nil {
		_ = stream.Close()
		return &domain.PlaybackError{AssetID: asset.ID, Err: err}
	}
	session.device = device

	if err := device.Play(); err != nil {
		session.teardown()
		return &domain.PlaybackError{AssetID: asset.ID, Err: err}
	}

	p.current = session
	p.logger.Info("Playback started",
		zap.String("asset", session.assetID),
		zap.String("session", session.id))
	p.publish("playback_started", session)
	return nil
}

// Stop tears down the current session. Stopping while idle is a no-op.
func (p *PlaybackService) Stop(ctx context.Context) {
	p.mu.Lock()
	session := p.current
	p.current = nil
	p.mu.Unlock()

	if session == nil {
		return
	}

	session.teardown()
	p.logger.Info("Playback stopped",
		zap.String("asset", session.assetID),
		zap.String("session", session.id))
	p.publish("playback_stopped", session)
}

// finished handles natural end-of-stream from the engine's callback
// goroutine. The session may already have been replaced or stopped by the
// control thread; teardown is idempotent either way.
func (p *PlaybackService) finished(session *playbackSession) {
	p.mu.Lock()
	if p.current == session {
		p.current = nil
	}
	p.mu.Unlock()

	session.teardown()
	p.logger.Info("Playback finished",
		zap.String("asset", session.assetID),
		zap.String("session", session.id))
	p.publish("playback_finished", session)
}

// RemoveAsset deletes an asset from the world model. When the deleted asset
// is the one currently sounding, playback stops first: a deleted asset must
// never continue to play.
func (p *PlaybackService) RemoveAsset(ctx context.Context, id string) error {
	p.mu.Lock()
	var session *playbackSession
	if p.current != nil && strings.EqualFold(p.current.assetID, id) {
		session = p.current
		p.current = nil
	}
	p.mu.Unlock()

	if session != nil {
		session.teardown()
		p.logger.Info("Playback stopped for deleted asset",
			zap.String("asset", session.assetID))
	}

	if err := p.assets.Remove(ctx, id); err != nil {
		return err
	}

	if p.events != nil {
		p.events.Publish("asset_removed", map[string]interface{}{
			"asset_id": id,
		})
	}
	return nil
}

// Status reports a snapshot of the controller
func (p *PlaybackService) Status() entities.PlaybackStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return entities.PlaybackStatus{State: entities.PlaybackIdle}
	}

	startedAt := p.current.startedAt
	return entities.PlaybackStatus{
		State:     entities.PlaybackPlaying,
		SessionID: p.current.id,
		AssetID:   p.current.assetID,
		StartedAt: &startedAt,
	}
}

func (p *PlaybackService) publish(event string, session *playbackSession) {
	if p.events == nil {
		return
	}
	p.events.Publish(event, map[string]interface{}{
		"asset_id":   session.assetID,
		"session_id": session.id,
	})
}
