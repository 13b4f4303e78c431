// AngelaMos | 2026
// types.go

package core

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList maps a []string onto a JSONB column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(src any) error {
	if src == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan StringList: unsupported type %T", src)
	}

	return json.Unmarshal(data, s)
}
