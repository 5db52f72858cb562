// Package codec converts raw audio bytes to and from the text-safe form
// stored inside the world file.
package codec

import (
	"encoding/base64"
	"fmt"

	"github.com/xilonoide/xiloadventures-sub005/domain"
)

// Encode returns the text-safe representation of raw audio bytes. The output
// contains no control characters or symbols that could break the world file's
// text format.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode restores the original bytes from their encoded form. Malformed input
// fails with domain.ErrCorruptAsset; callers skip the affected asset rather
// than aborting.
func Decode(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptAsset, err)
	}
	return data, nil
}
