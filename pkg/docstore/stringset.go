package docstore

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSet is an ordered list of unique strings stored as a JSON array.
type StringSet []string

// Contains reports whether v is in the set.
func (s StringSet) Contains(v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// Union returns a new set with the values not yet present appended in order.
func (s StringSet) Union(values ...string) StringSet {
	out := make(StringSet, len(s), len(s)+len(values))
	copy(out, s)
	for _, v := range values {
		if !out.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

// GormDataType implements schema.GormDataTypeInterface.
func (StringSet) GormDataType() string {
	return "text"
}

// Value implements driver.Valuer.
func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *StringSet) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = StringSet{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into StringSet", src)
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return err
	}
	if values == nil {
		values = []string{}
	}
	*s = values
	return nil
}

// MarshalJSON encodes a nil set as an empty array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}
