package export

import (
	"bytes"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
)

// validityKey is the flag attached to backend-validated fields.
const validityKey = "valid"

var prettyOptions = &pretty.Options{Indent: "  "}

// StripValidity returns a copy of rec without any "valid" key, at every level.
// Key order is kept.
func StripValidity(rec entity.Record) entity.Record {
	if len(bytes.TrimSpace(rec)) == 0 {
		return entity.NewRecord()
	}
	var buf bytes.Buffer
	writeStripped(&buf, gjson.ParseBytes(rec))
	return entity.Record(buf.Bytes())
}

func writeStripped(buf *bytes.Buffer, res gjson.Result) {
	switch {
	case res.IsObject():
		buf.WriteByte('{')
		first := true
		res.ForEach(func(k, v gjson.Result) bool {
			if k.String() == validityKey {
				return true
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			buf.WriteString(k.Raw)
			buf.WriteByte(':')
			writeStripped(buf, v)
			return true
		})
		buf.WriteByte('}')
	case res.IsArray():
		buf.WriteByte('[')
		for i, item := range res.Array() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeStripped(buf, item)
		}
		buf.WriteByte(']')
	case res.Raw == "":
		buf.WriteString("null")
	default:
		buf.WriteString(res.Raw)
	}
}

// JSON is the pretty-printed, validity-free serialization of rec.
func JSON(rec entity.Record) []byte {
	return pretty.PrettyOptions(StripValidity(rec), prettyOptions)
}
