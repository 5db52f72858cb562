package api

import "time"

// EditorAuthRequest represents the request payload for editor authentication
type EditorAuthRequest struct {
	EditorID string `json:"editor_id"`
	Secret   string `json:"secret"`
}

// EditorAuthResponse represents the response payload for editor authentication
type EditorAuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IngestRequest lists the candidate files selected by the user
type IngestRequest struct {
	Paths []string `json:"paths"`
}

// IngestFailureView itemizes one rejected candidate
type IngestFailureView struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

// IngestResponse aggregates a batch result: partial success is the norm
type IngestResponse struct {
	Added    int                 `json:"added"`
	AddedIDs []string            `json:"added_ids"`
	Failures []IngestFailureView `json:"failures"`
}

// AssetView is the display form of a stored asset
type AssetView struct {
	ID              string    `json:"id"`
	SizeBytes       int64     `json:"size_bytes"`
	Size            string    `json:"size"` // human-readable
	DurationSeconds float64   `json:"duration_seconds"`
	AddedAt         time.Time `json:"added_at"`
}

// PlayRequest identifies the asset to play
type PlayRequest struct {
	ID string `json:"id"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
