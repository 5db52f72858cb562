package entities

import "time"

// PlaybackState represents the state of the playback controller
type PlaybackState string

const (
	PlaybackIdle    PlaybackState = "idle"
	PlaybackPlaying PlaybackState = "playing"
)

// PlaybackStatus is a point-in-time snapshot of the playback controller.
// SessionID, AssetID and StartedAt are only set while a session is playing.
type PlaybackStatus struct {
	State     PlaybackState `json:"state"`
	SessionID string        `json:"session_id,omitempty"`
	AssetID   string        `json:"asset_id,omitempty"`
	StartedAt *time.Time    `json:"started_at,omitempty"`
}
