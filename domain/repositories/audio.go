package repositories

import (
	"context"
	"time"
)

// AudioStream is a decoded audio stream ready to be bound to an output device.
type AudioStream interface {
	// Duration reports the playable length of the stream.
	Duration() time.Duration

	// Close releases decoder resources. Closing an already-closed stream is
	// a no-op.
	Close() error
}

// OutputDevice delivers a single stream to the host's audio output.
type OutputDevice interface {
	// Play starts delivering the stream to the output.
	Play() error

	// Stop halts delivery. The finished callback is disarmed before output
	// stops, so an explicit Stop never surfaces as a natural completion.
	Stop()

	// Dispose releases the device. Stop is implied; disposing twice is a
	// no-op.
	Dispose()
}

// AudioEngine is the host audio capability set: duration probing, decoding,
// and output devices. Implementations deliver the finished notification on
// their own callback goroutine, concurrently with control-thread calls.
type AudioEngine interface {
	// ProbeDuration determines the playable duration of the audio file at
	// path. Callers treat failure as cosmetic, not fatal.
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)

	// OpenStream decodes raw audio bytes into a stream. The name's extension
	// selects the decoder.
	OpenStream(name string, data []byte) (AudioStream, error)

	// OpenDevice binds a stream to the output. onFinished runs when the
	// stream ends naturally; it is never invoked for an explicit Stop or
	// Dispose.
	OpenDevice(stream AudioStream, onFinished func()) (OutputDevice, error)
}
