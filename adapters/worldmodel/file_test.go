package worldmodel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestOpenMissingWorldFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.json")

	f, err := OpenFileCollection(path, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenFileCollection failed: %v", err)
	}
	if f.Len() != 0 {
		t.Errorf("Expected empty collection, got %d assets", f.Len())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("World file should not be created before the first mutation")
	}
}

func TestMutationsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.json")
	ctx := context.Background()

	f, err := OpenFileCollection(path, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenFileCollection failed: %v", err)
	}

	if err := f.Add(ctx, testAsset("door.mp3")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := f.Add(ctx, testAsset("wind.ogg")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	reopened, err := OpenFileCollection(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	if reopened.Len() != 2 {
		t.Fatalf("Expected 2 assets after reopen, got %d", reopened.Len())
	}

	listed := reopened.List(ctx)
	if listed[0].ID != "door.mp3" || listed[1].ID != "wind.ogg" {
		t.Error("Insertion order was not preserved across reopen")
	}

	asset, ok := reopened.Find(ctx, "door.mp3")
	if !ok {
		t.Fatal("Expected door.mp3 after reopen")
	}
	if asset.EncodedData != "U09VTkQ=" {
		t.Errorf("Encoded data not preserved, got %q", asset.EncodedData)
	}

	if err := reopened.Remove(ctx, "door.mp3"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	final, err := OpenFileCollection(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Reopen after remove failed: %v", err)
	}
	if final.Len() != 1 {
		t.Errorf("Expected 1 asset after removal, got %d", final.Len())
	}
}

func TestCorruptWorldFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := OpenFileCollection(path, zap.NewNop()); err == nil {
		t.Error("Expected error for corrupt world file")
	}
}
