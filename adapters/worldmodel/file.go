package worldmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/xilonoide/xiloadventures-sub005/domain/entities"
)

// worldDocument mirrors the audio section of the editor's world file
type worldDocument struct {
	AudioAssets []*entities.AudioAsset `json:"audio_assets"`
}

// FileCollection is a Collection persisted to the editor's JSON world file.
// Every successful mutation is written through, so the world file on disk
// always matches what the editor shows.
type FileCollection struct {
	*Collection

	path   string
	logger *zap.Logger
	saveMu sync.Mutex
}

// OpenFileCollection loads the asset collection from the world file at path.
// A missing file yields an empty collection; the file appears on the first
// mutation.
func OpenFileCollection(path string, logger *zap.Logger) (*FileCollection, error) {
	f := &FileCollection{
		Collection: NewCollection(),
		path:       path,
		logger:     logger,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Info("World file not found, starting empty", zap.String("path", path))
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read world file: %w", err)
	}

	var doc worldDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse world file %s: %w", path, err)
	}

	f.Collection.replace(doc.AudioAssets)
	logger.Info("World file loaded",
		zap.String("path", path),
		zap.Int("assets", f.Collection.Len()))
	return f, nil
}

// Add implements AssetRepository interface
func (f *FileCollection) Add(ctx context.Context, asset *entities.AudioAsset) error {
	if err := f.Collection.Add(ctx, asset); err != nil {
		return err
	}
	return f.save()
}

// Remove implements AssetRepository interface
func (f *FileCollection) Remove(ctx context.Context, id string) error {
	f.Collection.mu.Lock()
	changed := f.Collection.removeLocked(id)
	f.Collection.mu.Unlock()

	if !changed {
		return nil
	}
	return f.save()
}

// save writes the collection to the world file. Writes go through a temp file
// and a rename so a crash never leaves a half-written world.
func (f *FileCollection) save() error {
	f.saveMu.Lock()
	defer f.saveMu.Unlock()

	doc := worldDocument{AudioAssets: f.Collection.snapshot()}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode world file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create world directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write world file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace world file: %w", err)
	}

	f.logger.Debug("World file saved",
		zap.String("path", f.path),
		zap.Int("assets", len(doc.AudioAssets)))
	return nil
}
