// Package beepengine implements the audio engine on top of gopxl/beep: format
// decoding, duration probing, and speaker output.
package beepengine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/xilonoide/xiloadventures-sub005/domain/repositories"
)

// deviceBuffer is the speaker buffer length; short enough that Stop feels
// immediate in the editor.
const deviceBuffer = 100 * time.Millisecond

// Engine decodes assets and drives the host speaker. The speaker is global to
// the process, so a single Engine is shared by all callers.
type Engine struct {
	mu sync.Mutex // serializes speaker Init/Play/Clear
}

// New creates a beep-backed audio engine
func New() *Engine {
	return &Engine{}
}

// byteStream adapts an in-memory buffer to the read/seek/close combinations
// the beep decoders expect.
type byteStream struct {
	*bytes.Reader
}

func (byteStream) Close() error { return nil }

// decode selects a decoder by file extension
func decode(name string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	r := byteStream{bytes.NewReader(data)}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3":
		return mp3.Decode(r)
	case ".wav":
		return wav.Decode(r)
	case ".flac":
		return flac.Decode(r)
	case ".ogg", ".oga":
		return vorbis.Decode(r)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format %q", filepath.Ext(name))
	}
}

// Stream is a decoded asset plus its PCM format
type Stream struct {
	streamer beep.StreamSeekCloser
	format   beep.Format

	mu     sync.Mutex
	closed bool
}

// Duration implements AudioStream interface
func (s *Stream) Duration() time.Duration {
	return s.format.SampleRate.D(s.streamer.Len())
}

// Close implements AudioStream interface
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.streamer.Close()
}

// OpenStream implements AudioEngine interface
func (e *Engine) OpenStream(name string, data []byte) (repositories.AudioStream, error) {
	streamer, format, err := decode(name, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &Stream{streamer: streamer, format: format}, nil
}

// ProbeDuration implements AudioEngine interface
func (e *Engine) ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	stream, err := e.OpenStream(filepath.Base(path), data)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	return stream.Duration(), nil
}

// Device couples one stream to the process speaker
type Device struct {
	engine     *Engine
	stream     *Stream
	onFinished func()

	mu       sync.Mutex
	detached bool // completion callback disarmed
	disposed bool
}

// OpenDevice implements AudioEngine interface
func (e *Engine) OpenDevice(stream repositories.AudioStream, onFinished func()) (repositories.OutputDevice, error) {
	s, ok := stream.(*Stream)
	if !ok {
		return nil, errors.New("stream was not opened by this engine")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Re-initializing adopts the new stream's sample rate.
	if err := speaker.Init(s.format.SampleRate, s.format.SampleRate.N(deviceBuffer)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	return &Device{engine: e, stream: s, onFinished: onFinished}, nil
}

// Play implements OutputDevice interface
func (d *Device) Play() error {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return errors.New("device already disposed")
	}
	d.mu.Unlock()

	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()
	speaker.Play(beep.Seq(d.stream.streamer, beep.Callback(d.finished)))
	return nil
}

// finished runs inside the speaker goroutine when the stream drains. The
// callback is handed off to a fresh goroutine because the speaker lock is
// held here and the controller's teardown will call back into the speaker.
func (d *Device) finished() {
	d.mu.Lock()
	if d.detached || d.disposed {
		d.mu.Unlock()
		return
	}
	d.detached = true
	cb := d.onFinished
	d.mu.Unlock()

	if cb != nil {
		go cb()
	}
}

// Stop implements OutputDevice interface. The callback is disarmed before the
// speaker is cleared so an explicit stop never reports a natural completion.
func (d *Device) Stop() {
	d.mu.Lock()
	d.detached = true
	d.mu.Unlock()

	d.engine.mu.Lock()
	speaker.Clear()
	d.engine.mu.Unlock()
}

// Dispose implements OutputDevice interface
func (d *Device) Dispose() {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return
	}
	d.disposed = true
	d.detached = true
	d.mu.Unlock()

	d.engine.mu.Lock()
	speaker.Clear()
	d.engine.mu.Unlock()
}
