package pack

import (
	"fmt"
	"io"

	"asset-cache/core/assets"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the name of the database file at the root of each protocol.
const FileName = "assets.pack"

// FormatVersion is the version written by Encode.
const FormatVersion = 1

type document struct {
	Version int      `toml:"version"`
	Assets  []record `toml:"assets"`
}

type record struct {
	UID      string `toml:"uid"`
	Location string `toml:"location"`
	Type     string `toml:"type,omitempty"`
}

// Encode writes rows as a TOML document.
func Encode(w io.Writer, rows []assets.Row) error {
	doc := document{
		Version: FormatVersion,
		Assets:  make([]record, 0, len(rows)),
	}
	for _, r := range rows {
		doc.Assets = append(doc.Assets, record{
			UID:      r.UID.String(),
			Location: r.Location,
			Type:     r.Type,
		})
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode %s: %w", FileName, err)
	}
	return nil
}

// Decode reads the rows of a TOML document.
func Decode(r io.Reader) ([]assets.Row, error) {
	var doc document
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", FileName, err)
	}
	if doc.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported %s version %d", FileName, doc.Version)
	}

	rows := make([]assets.Row, 0, len(doc.Assets))
	for _, rec := range doc.Assets {
		uid, err := uuid.Parse(rec.UID)
		if err != nil {
			return nil, fmt.Errorf("invalid uid %q for %s: %w", rec.UID, rec.Location, err)
		}
		rows = append(rows, assets.Row{UID: uid, Location: rec.Location, Type: rec.Type})
	}
	return rows, nil
}
