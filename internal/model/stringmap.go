package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringMap is an open string-to-string mapping stored as a JSON text column.
// A NULL or empty column scans into an empty map.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *StringMap) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = StringMap{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported type for StringMap: %T", src)
	}

	out := StringMap{}
	if len(raw) > 0 {
		err := json.Unmarshal(raw, &out)
		if err != nil {
			return fmt.Errorf("failed to decode StringMap: %w", err)
		}
	}
	*m = out
	return nil
}

// Clone returns a non-nil copy.
func (m StringMap) Clone() StringMap {
	out := make(StringMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
