package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Raw is an opaque upstream record. Each adapter decodes its own shape.
type Raw = json.RawMessage

// ID is an upstream identifier that may arrive as a JSON string or number.
type ID string

// UnmarshalJSON accepts strings, integers and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier text.
func (id ID) String() string { return string(id) }
