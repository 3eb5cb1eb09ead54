package entity

import (
	"bytes"

	"github.com/tidwall/gjson"
)

// Record is a nested JSON object kept as raw bytes so the backend's key order
// survives edits and export.
type Record []byte

// NewRecord returns an empty object.
func NewRecord() Record {
	return Record("{}")
}

func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return Record(bytes.Clone(r))
}

// IsEmpty reports whether r is absent, not an object, or an object without keys.
func (r Record) IsEmpty() bool {
	if len(bytes.TrimSpace(r)) == 0 {
		return true
	}
	res := gjson.ParseBytes(r)
	if !res.IsObject() {
		return true
	}
	empty := true
	res.ForEach(func(_, _ gjson.Result) bool {
		empty = false
		return false
	})
	return empty
}

// Result parses the record for gjson traversal.
func (r Record) Result() gjson.Result {
	return gjson.ParseBytes(r)
}

func (r Record) String() string {
	return string(r)
}

func (r Record) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r.Clone(), nil
}

func (r *Record) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*r = nil
		return nil
	}
	*r = Record(bytes.Clone(b))
	return nil
}
