package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/xilonoide/xiloadventures-sub005/adapters/beepengine"
	"github.com/xilonoide/xiloadventures-sub005/adapters/codec"
	"github.com/xilonoide/xiloadventures-sub005/adapters/worldmodel"
	"github.com/xilonoide/xiloadventures-sub005/domain"
	"github.com/xilonoide/xiloadventures-sub005/domain/entities"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeSizedFile creates a file of exactly size bytes without materializing
// the content in the test.
func writeSizedFile(t *testing.T, dir, name string, size int64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Truncate(size); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func newIngestFixture() (*IngestService, *worldmodel.Collection, *beepengine.MockEngine) {
	assets := worldmodel.NewCollection()
	engine := beepengine.NewMockEngine()
	service := NewIngestService(assets, engine, nil, zap.NewNop())
	return service, assets, engine
}

func TestIngestSingleFile(t *testing.T) {
	service, assets, engine := newIngestFixture()
	dir := t.TempDir()

	content := []byte("fake mp3 bytes")
	path := writeFile(t, dir, "door.mp3", content)
	engine.ProbeDurations[path] = 3 * time.Second

	result := service.Ingest(context.Background(), []string{path})

	if len(result.Added) != 1 || result.Added[0] != "door.mp3" {
		t.Fatalf("Expected door.mp3 added, got %v", result.Added)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("Expected no failures, got %v", result.Failures)
	}

	asset, ok := assets.Find(context.Background(), "door.mp3")
	if !ok {
		t.Fatal("Asset not found after ingestion")
	}
	if asset.SizeBytes != int64(len(content)) {
		t.Errorf("Expected size %d, got %d", len(content), asset.SizeBytes)
	}
	if asset.DurationSeconds != 3 {
		t.Errorf("Expected duration 3s, got %f", asset.DurationSeconds)
	}

	decoded, err := codec.Decode(asset.EncodedData)
	if err != nil {
		t.Fatalf("Stored data not decodable: %v", err)
	}
	if string(decoded) != string(content) {
		t.Error("Stored data does not round-trip to the original bytes")
	}
}

func TestIngestSizeBoundary(t *testing.T) {
	service, assets, _ := newIngestFixture()
	dir := t.TempDir()

	atLimit := writeSizedFile(t, dir, "limit.wav", entities.MaxAssetSize)
	overLimit := writeSizedFile(t, dir, "over.wav", entities.MaxAssetSize+1)

	result := service.Ingest(context.Background(), []string{atLimit, overLimit})

	if len(result.Added) != 1 || result.Added[0] != "limit.wav" {
		t.Errorf("Expected exactly limit.wav accepted, got %v", result.Added)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("Expected 1 failure, got %d", len(result.Failures))
	}

	failure := result.Failures[0]
	if failure.File != "over.wav" {
		t.Errorf("Expected over.wav to fail, got %s", failure.File)
	}
	var tooLarge *domain.TooLargeError
	if !errors.As(failure.Err, &tooLarge) {
		t.Fatalf("Expected TooLargeError, got %v", failure.Err)
	}
	if tooLarge.Size != entities.MaxAssetSize+1 {
		t.Errorf("Expected reported size %d, got %d", entities.MaxAssetSize+1, tooLarge.Size)
	}

	if _, ok := assets.Find(context.Background(), "over.wav"); ok {
		t.Error("Oversized asset must not be stored")
	}
}

func TestIngestProbeFailureIsCosmetic(t *testing.T) {
	service, assets, engine := newIngestFixture()
	dir := t.TempDir()

	path := writeFile(t, dir, "noisy.ogg", []byte("not really ogg"))
	engine.ProbeErr = errors.New("bad duration header")

	result := service.Ingest(context.Background(), []string{path})

	if len(result.Added) != 1 {
		t.Fatalf("Probe failure must not reject the file, got failures %v", result.Failures)
	}

	asset, _ := assets.Find(context.Background(), "noisy.ogg")
	if asset.DurationSeconds != 0 {
		t.Errorf("Expected zero duration after probe failure, got %f", asset.DurationSeconds)
	}
}

func TestIngestBatchScenario(t *testing.T) {
	service, assets, _ := newIngestFixture()
	dir := t.TempDir()

	first := writeSizedFile(t, dir, "a.mp3", 5<<20)
	tooBig := writeSizedFile(t, dir, "b.mp3", 25<<20)

	dupDir := filepath.Join(dir, "other")
	if err := os.MkdirAll(dupDir, 0o755); err != nil {
		t.Fatal(err)
	}
	duplicate := writeSizedFile(t, dupDir, "a.mp3", 1<<20)

	result := service.Ingest(context.Background(), []string{first, tooBig, duplicate})

	if len(result.Added) != 1 {
		t.Errorf("Expected addedCount 1, got %d", len(result.Added))
	}
	if len(result.Failures) != 2 {
		t.Fatalf("Expected 2 failures, got %d", len(result.Failures))
	}

	var tooLarge *domain.TooLargeError
	if result.Failures[0].File != "b.mp3" || !errors.As(result.Failures[0].Err, &tooLarge) {
		t.Errorf("Expected b.mp3 TooLarge, got %v", result.Failures[0])
	}
	if result.Failures[1].File != "a.mp3" || !errors.Is(result.Failures[1].Err, domain.ErrDuplicateName) {
		t.Errorf("Expected a.mp3 DuplicateName, got %v", result.Failures[1])
	}

	if assets.Len() != 1 {
		t.Errorf("Expected 1 stored asset, got %d", assets.Len())
	}
}

func TestIngestDuplicateCaseVariant(t *testing.T) {
	service, _, _ := newIngestFixture()
	dir := t.TempDir()

	lower := writeFile(t, dir, "theme.mp3", []byte("x"))

	upperDir := filepath.Join(dir, "upper")
	if err := os.MkdirAll(upperDir, 0o755); err != nil {
		t.Fatal(err)
	}
	upper := writeFile(t, upperDir, "THEME.MP3", []byte("y"))

	result := service.Ingest(context.Background(), []string{lower, upper})

	if len(result.Added) != 1 {
		t.Errorf("Expected 1 added, got %v", result.Added)
	}
	if len(result.Failures) != 1 || !errors.Is(result.Failures[0].Err, domain.ErrDuplicateName) {
		t.Errorf("Expected case-variant duplicate to fail, got %v", result.Failures)
	}
}

func TestIngestMissingFile(t *testing.T) {
	service, _, _ := newIngestFixture()

	result := service.Ingest(context.Background(), []string{"/does/not/exist.mp3"})

	if len(result.Added) != 0 {
		t.Errorf("Expected nothing added, got %v", result.Added)
	}
	if len(result.Failures) != 1 || result.Failures[0].File != "exist.mp3" {
		t.Errorf("Expected failure for exist.mp3, got %v", result.Failures)
	}
}
