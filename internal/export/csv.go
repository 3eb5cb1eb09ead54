package export

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
)

// Column is one flattened field.
type Column struct {
	Key   string
	Value string
}

// Flatten walks rec depth-first with dot-joined keys. {value, valid}
// wrappers collapse to their value, lists are joined with ", " and nulls
// become empty strings.
func Flatten(rec entity.Record) []Column {
	var cols []Column
	flattenInto(&cols, "", rec.Result())
	return cols
}

func flattenInto(cols *[]Column, prefix string, res gjson.Result) {
	if res.IsObject() && res.Get("value").Exists() {
		res = res.Get("value")
	}
	switch {
	case res.IsObject():
		res.ForEach(func(k, v gjson.Result) bool {
			key := k.String()
			if prefix != "" {
				key = prefix + "." + key
			}
			flattenInto(cols, key, v)
			return true
		})
	case res.IsArray():
		items := res.Array()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.String()
		}
		*cols = append(*cols, Column{Key: prefix, Value: strings.Join(parts, ", ")})
	default:
		if prefix == "" {
			return
		}
		*cols = append(*cols, Column{Key: prefix, Value: res.String()})
	}
}

// CSV renders rec as a header line of keys and one line of double-quoted
// values. Embedded quotes are doubled.
func CSV(rec entity.Record) []byte {
	cols := Flatten(rec)
	keys := make([]string, len(cols))
	vals := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
		vals[i] = `"` + strings.ReplaceAll(c.Value, `"`, `""`) + `"`
	}
	return []byte(strings.Join(keys, ",") + "\n" + strings.Join(vals, ","))
}
