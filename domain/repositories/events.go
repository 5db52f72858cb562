package repositories

// EventPublisher delivers asset and playback events to connected editor UIs.
//
// Implementations must be safe for concurrent use: playback completion events
// originate on the audio engine's callback goroutine while ingestion events
// come from the control thread.
type EventPublisher interface {
	Publish(event string, payload map[string]interface{})
}
