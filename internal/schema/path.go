package schema

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
)

// ErrEmptyPath is returned by SetField when no path is given.
var ErrEmptyPath = errors.New("empty field path")

// Value is a resolved field. Wrapped fields ({value, valid}) are unwrapped;
// raw scalars are taken as-is.
type Value struct {
	Text    string   // scalar text, or list items joined with ", "
	Items   []string // set when the value is a list
	IsList  bool
	Present bool  // the path resolved to a non-null value
	Wrapped bool  // the field carried the {value, valid} shape
	Valid   *bool // explicit validity flag, nil when absent or null
}

// Empty reports whether the value is absent or blank.
func (v Value) Empty() bool {
	return !v.Present || strings.TrimSpace(v.Text) == ""
}

// GetField resolves a dotted path inside rec. Any missing link yields the zero Value.
func GetField(rec entity.Record, path string) Value {
	if len(rec) == 0 || path == "" {
		return Value{}
	}
	res := gjson.GetBytes(rec, toGJSONPath(path))
	if !res.Exists() {
		return Value{}
	}

	var out Value
	if isWrapper(res) {
		out.Wrapped = true
		switch flag := res.Get("valid"); flag.Type {
		case gjson.True, gjson.False:
			b := flag.Bool()
			out.Valid = &b
		}
		res = res.Get("value")
	}

	switch {
	case !res.Exists() || res.Type == gjson.Null:
		return out
	case res.IsArray():
		out.IsList = true
		out.Present = true
		for _, item := range res.Array() {
			if item.Type == gjson.Null {
				continue
			}
			out.Items = append(out.Items, item.String())
		}
		out.Text = strings.Join(out.Items, ", ")
	case res.IsObject():
		out.Present = true
		out.Text = res.Raw
	default:
		out.Present = true
		out.Text = res.String()
	}
	return out
}

// SetField returns a copy of rec with text written at path. Missing
// intermediate objects are created. A wrapped field has its value replaced
// and keeps its valid flag as sent by the backend; local edits are not
// re-validated. A field that already holds a list is split on commas.
func SetField(rec entity.Record, path, text string) (entity.Record, error) {
	return setField(rec, path, text, false)
}

// SetListField is SetField for multi-value fields: text is always split on
// commas, whatever the field currently holds.
func SetListField(rec entity.Record, path, text string) (entity.Record, error) {
	return setField(rec, path, text, true)
}

func setField(rec entity.Record, path, text string, list bool) (entity.Record, error) {
	if strings.TrimSpace(path) == "" {
		return rec, ErrEmptyPath
	}
	out := rec.Clone()
	if len(out) == 0 || !gjson.ValidBytes(out) {
		out = entity.NewRecord()
	}

	target := toGJSONPath(path)
	current := gjson.GetBytes(out, target)
	if isWrapper(current) {
		target += ".value"
		current = current.Get("value")
	}

	var value any = text
	if list || current.IsArray() {
		value = SplitList(text)
	}

	b, err := sjson.SetBytes(out, target, value)
	if err != nil {
		return rec, err
	}
	return entity.Record(b), nil
}

// SplitList turns "A, B ,C" into ["A","B","C"]; blanks are dropped.
func SplitList(text string) []string {
	items := []string{}
	for _, p := range strings.Split(text, ",") {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

func isWrapper(res gjson.Result) bool {
	return res.IsObject() && res.Get("value").Exists()
}

// toGJSONPath escapes path syntax characters inside each dotted segment.
func toGJSONPath(path string) string {
	segs := strings.Split(path, ".")
	for i, s := range segs {
		segs[i] = EscapeKey(s)
	}
	return strings.Join(segs, ".")
}

// EscapeKey escapes a single object key for use in a gjson/sjson path.
func EscapeKey(key string) string {
	if !strings.ContainsAny(key, `\.*?|#@!:`) {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@', '!', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
