package repositories

import (
	"context"

	"github.com/xilonoide/xiloadventures-sub005/domain/entities"
)

// AssetRepository defines access to the world model's audio asset collection
type AssetRepository interface {
	// Add inserts a new asset. It fails with domain.ErrDuplicateName when an
	// asset with the same name (compared case-insensitively) already exists.
	Add(ctx context.Context, asset *entities.AudioAsset) error

	// Remove deletes the asset with the given id. Removing an absent asset is
	// a no-op, not an error; the UI and the collection can momentarily
	// disagree about what exists.
	Remove(ctx context.Context, id string) error

	// Find looks up an asset by id, case-insensitively. Absence is reported
	// through ok rather than an error.
	Find(ctx context.Context, id string) (asset *entities.AudioAsset, ok bool)

	// List enumerates all assets in insertion order for display.
	List(ctx context.Context) []*entities.AudioAsset
}
