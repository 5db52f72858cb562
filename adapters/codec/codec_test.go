package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xilonoide/xiloadventures-sub005/domain"
)

func TestRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		[]byte("RIFF....WAVEfmt "),
		{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x01, 0x02}, // mp3 frame-ish bytes
	}

	// All byte values must survive the trip
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	cases = append(cases, all)

	for _, original := range cases {
		decoded, err := Decode(Encode(original))
		if err != nil {
			t.Fatalf("Decode failed for %d bytes: %v", len(original), err)
		}
		if !bytes.Equal(decoded, original) {
			t.Errorf("Round trip mismatch for %d bytes", len(original))
		}
	}
}

func TestDecodeCorruptInput(t *testing.T) {
	_, err := Decode("this is %% not base64 !!")
	if err == nil {
		t.Fatal("Expected error for malformed input")
	}
	if !errors.Is(err, domain.ErrCorruptAsset) {
		t.Errorf("Expected ErrCorruptAsset, got %v", err)
	}
}

func TestEncodeIsTextSafe(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	encoded := Encode(data)
	for _, r := range encoded {
		if r < 0x20 || r > 0x7E {
			t.Fatalf("Encoded form contains unsafe character %q", r)
		}
		if r == '"' || r == '\\' {
			t.Fatalf("Encoded form contains format-breaking character %q", r)
		}
	}
}
