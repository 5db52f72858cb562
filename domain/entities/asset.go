package entities

import (
	"errors"
	"strings"
	"time"
)

// MaxAssetSize is the largest original audio file accepted into a world, in bytes.
const MaxAssetSize = 20 << 20 // 20 MiB

// AudioAsset represents one audio clip owned by the game world.
//
// The encoded data is the asset's sole durable representation; decoding it
// always yields exactly SizeBytes original bytes. Assets are immutable after
// creation: replacing a sound means removing the asset and ingesting a new
// file.
type AudioAsset struct {
	ID              string    `json:"id"`               // display/file name, unique case-insensitively
	EncodedData     string    `json:"encoded_data"`     // text-safe encoding of the original bytes
	SizeBytes       int64     `json:"size_bytes"`       // original byte length before encoding
	DurationSeconds float64   `json:"duration_seconds"` // 0 when the duration probe failed
	AddedAt         time.Time `json:"added_at"`
}

// NewAudioAsset creates an asset record from an ingested file
func NewAudioAsset(id, encodedData string, sizeBytes int64, duration time.Duration) *AudioAsset {
	return &AudioAsset{
		ID:              id,
		EncodedData:     encodedData,
		SizeBytes:       sizeBytes,
		DurationSeconds: duration.Seconds(),
		AddedAt:         time.Now(),
	}
}

// SameName reports whether the asset answers to the given name.
// Asset names are compared case-insensitively.
func (a *AudioAsset) SameName(name string) bool {
	return strings.EqualFold(a.ID, name)
}

// Validate validates the asset data
func (a *AudioAsset) Validate() error {
	if a.ID == "" {
		return errors.New("asset id is required")
	}
	if a.SizeBytes <= 0 {
		return errors.New("asset size must be positive")
	}
	if a.SizeBytes > MaxAssetSize {
		return errors.New("asset exceeds the size limit")
	}
	return nil
}
