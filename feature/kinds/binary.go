package kinds

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// Binary is an opaque blob.
type Binary struct {
	Data   []byte `json:"-"`
	Size   int    `json:"size"`
	SHA256 string `json:"sha256"`
}

// BinaryExtensions are routed to the binary kind.
var BinaryExtensions = []string{".bin", ".dat", ".wav", ".ogg", ".ttf"}

// DecodeBinary reads the whole stream.
func DecodeBinary(ctx context.Context, key string, r io.Reader) (*Binary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	return &Binary{Data: data, Size: len(data), SHA256: hex.EncodeToString(sum[:])}, nil
}
