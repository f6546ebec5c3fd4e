package ctgov

import (
	"encoding/base64"
	"encoding/json"
)

// CursorVersion is the current cursor schema version.
const CursorVersion = 1

// Cursor captures the state of a partially completed registry walk so it
// can be resumed with `export --cursor`. The registry's own pageToken is
// opaque; the cursor wraps it together with progress counters.
type Cursor struct {
	// Version is the schema version for future migrations.
	Version int `json:"v"`

	// PageToken is the registry continuation token to resume from.
	PageToken string `json:"token"`

	// PagesFetched is the number of pages already retrieved.
	PagesFetched int `json:"pages"`

	// StudiesFetched is the number of studies already retrieved.
	StudiesFetched int `json:"studies"`
}

// NewCursor creates a new empty cursor.
func NewCursor() *Cursor {
	return &Cursor{Version: CursorVersion}
}

// Encode serializes the cursor to a base64-encoded JSON string.
func (c *Cursor) Encode() string {
	if c == nil {
		return ""
	}
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeCursor deserializes a cursor from a base64-encoded JSON string.
// Returns a new empty cursor if the input is empty.
func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return NewCursor(), nil
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var cursor Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, ErrInvalidCursor
	}

	return &cursor, nil
}
