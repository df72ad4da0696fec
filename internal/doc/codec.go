package doc

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MarshalJSON renders the document as indented JSON, the interchange form.
func MarshalJSON(d *Document) ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return b, nil
}

// UnmarshalJSON parses the interchange form.
func UnmarshalJSON(b []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &d, nil
}

// MarshalSnapshot renders the document as a compact msgpack snapshot.
func MarshalSnapshot(d *Document) ([]byte, error) {
	b, err := msgpack.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return b, nil
}

// UnmarshalSnapshot parses a msgpack snapshot.
func UnmarshalSnapshot(b []byte) (*Document, error) {
	var d Document
	if err := msgpack.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &d, nil
}
