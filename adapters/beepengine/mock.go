package beepengine

import (
	"context"
	"sync"
	"time"

	"github.com/xilonoide/xiloadventures-sub005/domain/repositories"
)

// MockEngine is an in-memory AudioEngine for tests and headless editors.
// It records every stream and device it hands out so tests can assert on
// resource lifecycles.
type MockEngine struct {
	mu sync.Mutex

	// Configurable behavior
	ProbeDurations map[string]time.Duration // keyed by path
	ProbeErr       error
	OpenStreamErr  error
	OpenDeviceErr  error
	PlayErr        error

	Streams []*MockStream
	Devices []*MockDevice
}

// NewMockEngine creates a mock engine with no configured failures
func NewMockEngine() *MockEngine {
	return &MockEngine{
		ProbeDurations: make(map[string]time.Duration),
	}
}

// ProbeDuration implements AudioEngine interface
func (e *MockEngine) ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ProbeErr != nil {
		return 0, e.ProbeErr
	}
	return e.ProbeDurations[path], nil
}

// OpenStream implements AudioEngine interface
func (e *MockEngine) OpenStream(name string, data []byte) (repositories.AudioStream, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.OpenStreamErr != nil {
		return nil, e.OpenStreamErr
	}
	s := &MockStream{Name: name, Data: data}
	e.Streams = append(e.Streams, s)
	return s, nil
}

// OpenDevice implements AudioEngine interface
func (e *MockEngine) OpenDevice(stream repositories.AudioStream, onFinished func()) (repositories.OutputDevice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.OpenDeviceErr != nil {
		return nil, e.OpenDeviceErr
	}
	d := &MockDevice{Stream: stream.(*MockStream), onFinished: onFinished, playErr: e.PlayErr}
	e.Devices = append(e.Devices, d)
	return d, nil
}

// MockStream records decoded-stream lifecycle for assertions
type MockStream struct {
	Name string
	Data []byte
	Dur  time.Duration

	mu         sync.Mutex
	CloseCount int
}

func (s *MockStream) Duration() time.Duration {
	return s.Dur
}

func (s *MockStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CloseCount++
	return nil
}

// Closed reports whether the stream has been released
func (s *MockStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.CloseCount > 0
}

// MockDevice records output-device lifecycle for assertions
type MockDevice struct {
	Stream     *MockStream
	onFinished func()
	playErr    error

	mu           sync.Mutex
	Playing      bool
	StopCount    int
	DisposeCount int
	finished     bool
}

func (d *MockDevice) Play() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.playErr != nil {
		return d.playErr
	}
	d.Playing = true
	return nil
}

func (d *MockDevice) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Playing = false
	d.StopCount++
}

func (d *MockDevice) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Playing = false
	d.DisposeCount++
}

// Disposed reports whether the device has been released
func (d *MockDevice) Disposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.DisposeCount > 0
}

// Finish simulates the device's natural end-of-stream notification. Like the
// real engine it fires at most once and never after a Stop or Dispose.
func (d *MockDevice) Finish() {
	d.mu.Lock()
	if d.finished || !d.Playing {
		d.mu.Unlock()
		return
	}
	d.finished = true
	d.Playing = false
	cb := d.onFinished
	d.mu.Unlock()

	if cb != nil {
		cb()
	}
}
