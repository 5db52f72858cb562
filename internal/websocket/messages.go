package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Supported message types
const (
	MessageTypePlaybackStarted  MessageType = "playback_started"
	MessageTypePlaybackStopped  MessageType = "playback_stopped"
	MessageTypePlaybackFinished MessageType = "playback_finished"
	MessageTypeAssetsIngested   MessageType = "assets_ingested"
	MessageTypeAssetRemoved     MessageType = "asset_removed"
	MessageTypePing             MessageType = "ping"
	MessageTypePong             MessageType = "pong"
	MessageTypeError            MessageType = "error"
)

// BaseMessage defines the common structure for all WebSocket messages
type BaseMessage struct {
	Type      MessageType `json:"type"`
	Timestamp string      `json:"timestamp"`
	MessageID string      `json:"message_id,omitempty"`
}

// EventMessage represents a store or playback event pushed to editor UIs
type EventMessage struct {
	BaseMessage
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

// NewEventMessage builds an event message with a fresh id and timestamp
func NewEventMessage(eventType MessageType, payload map[string]interface{}) *EventMessage {
	return &EventMessage{
		BaseMessage: BaseMessage{
			Type:      eventType,
			Timestamp: time.Now().Format(time.RFC3339),
			MessageID: uuid.New().String(),
		},
		Payload: payload,
	}
}

// ParseMessageType extracts the type field from a raw client message
func ParseMessageType(data []byte) (MessageType, error) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return "", fmt.Errorf("parse message: %w", err)
	}
	if base.Type == "" {
		return "", fmt.Errorf("message missing type field")
	}
	return base.Type, nil
}
