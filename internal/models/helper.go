package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is the canonical identifier type. The backend sends identifiers as either
// JSON numbers or strings; both decode to the same decimal string.
type ID string

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return id == "" }

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid identifier %s: %w", data, err)
	}
	if i, err := n.Int64(); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ID(n.String())
	return nil
}

