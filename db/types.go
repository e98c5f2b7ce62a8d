package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata is a free-form map stored as a JSON object column.
// It implements the sql.Scanner and driver.Valuer interfaces.
type Metadata map[string]any

// Scan implements the sql.Scanner interface. NULL and empty values scan to an empty map.
func (m *Metadata) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*m = make(Metadata)
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T", v)
	}

	out := make(Metadata)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("unmarshalling metadata: %w", err)
		}
	}
	*m = out
	return nil
}

// Value implements the driver.Valuer interface.
func (m Metadata) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshalling metadata: %w", err)
	}
	return string(b), nil
}
