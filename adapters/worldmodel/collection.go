// Package worldmodel implements the world model's audio asset collection and
// its persistence to the editor's world file.
package worldmodel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xilonoide/xiloadventures-sub005/domain"
	"github.com/xilonoide/xiloadventures-sub005/domain/entities"
)

// Collection is an in-memory implementation of AssetRepository.
//
// Assets are kept in insertion order for display and indexed by lower-cased
// name for case-insensitive uniqueness. All methods are safe for concurrent
// use.
type Collection struct {
	mu     sync.RWMutex
	assets []*entities.AudioAsset
	index  map[string]*entities.AudioAsset // lower-cased id -> asset
}

// NewCollection creates an empty asset collection
func NewCollection() *Collection {
	return &Collection{
		index: make(map[string]*entities.AudioAsset),
	}
}

// Add implements AssetRepository interface
func (c *Collection) Add(ctx context.Context, asset *entities.AudioAsset) error {
	if asset == nil {
		return errors.New("asset cannot be nil")
	}

	if err := asset.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := strings.ToLower(asset.ID)
	if _, exists := c.index[key]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateName, asset.ID)
	}

	// Store a copy to prevent external modifications
	assetCopy := *asset
	c.assets = append(c.assets, &assetCopy)
	c.index[key] = &assetCopy

	return nil
}

// Remove implements AssetRepository interface. Removing an absent asset is a
// deliberate no-op: the UI and the collection can momentarily disagree.
func (c *Collection) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(id)
	return nil
}

// removeLocked removes an asset while holding the write lock. Returns whether
// anything changed.
func (c *Collection) removeLocked(id string) bool {
	key := strings.ToLower(id)
	if _, exists := c.index[key]; !exists {
		return false
	}

	delete(c.index, key)
	for i, asset := range c.assets {
		if asset.SameName(id) {
			c.assets = append(c.assets[:i], c.assets[i+1:]...)
			break
		}
	}
	return true
}

// Find implements AssetRepository interface
func (c *Collection) Find(ctx context.Context, id string) (*entities.AudioAsset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	asset, exists := c.index[strings.ToLower(id)]
	if !exists {
		return nil, false
	}

	assetCopy := *asset
	return &assetCopy, true
}

// List implements AssetRepository interface
func (c *Collection) List(ctx context.Context) []*entities.AudioAsset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*entities.AudioAsset, len(c.assets))
	for i, asset := range c.assets {
		assetCopy := *asset
		result[i] = &assetCopy
	}
	return result
}

// Len returns the number of assets in the collection
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.assets)
}

// replace swaps the collection contents, used when loading a world file
func (c *Collection) replace(assets []*entities.AudioAsset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.assets = make([]*entities.AudioAsset, 0, len(assets))
	c.index = make(map[string]*entities.AudioAsset, len(assets))
	for _, asset := range assets {
		assetCopy := *asset
		c.assets = append(c.assets, &assetCopy)
		c.index[strings.ToLower(asset.ID)] = &assetCopy
	}
}

// snapshot copies the current contents for serialization
func (c *Collection) snapshot() []*entities.AudioAsset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*entities.AudioAsset, len(c.assets))
	for i, asset := range c.assets {
		assetCopy := *asset
		result[i] = &assetCopy
	}
	return result
}
