package domain

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// Sentinel errors for asset store and playback operations
var (
	// ErrAssetNotFound is returned when an asset id does not exist in the world model
	ErrAssetNotFound = errors.New("asset not found")

	// ErrAssetEmpty is returned when a playback request targets an asset with no audio data
	ErrAssetEmpty = errors.New("asset has no audio data")

	// ErrDuplicateName is returned when an asset name is already in use.
	// Asset names are compared case-insensitively.
	ErrDuplicateName = errors.New("asset name already in use")

	// ErrCorruptAsset is returned when stored asset data cannot be decoded
	ErrCorruptAsset = errors.New("asset data is corrupt")
)

// TooLargeError is returned when a candidate file exceeds the asset size limit
type TooLargeError struct {
	Name  string // candidate file name
	Size  int64  // actual size in bytes
	Limit int64  // configured limit in bytes
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s is too large (%s, limit %s)",
		e.Name, humanize.IBytes(uint64(e.Size)), humanize.IBytes(uint64(e.Limit)))
}

// PlaybackError wraps a decode or output-device failure during playback.
// The controller is guaranteed to be idle when one of these is returned.
type PlaybackError struct {
	AssetID string
	Err     error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback of %s failed: %v", e.AssetID, e.Err)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// IngestFailure records why a single candidate file was rejected during a
// batch ingestion. Failures are collected per file and never abort the batch.
type IngestFailure struct {
	File string
	Err  error
}

func (f IngestFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.File, f.Err)
}

func (f IngestFailure) Unwrap() error {
	return f.Err
}
