package llm

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
)

type field struct {
	path  string
	multi bool
}

// documentFields is the wire order of each document's fields.
var documentFields = map[constants.DocumentType][]field{
	constants.DrivingLicense: {
		{path: "state"},
		{path: "dlNumber"},
		{path: "issueDate"},
		{path: "expiryDate"},
		{path: "name.firstName"},
		{path: "name.middleName"},
		{path: "name.lastName"},
		{path: "address.street"},
		{path: "address.city"},
		{path: "address.state"},
		{path: "address.zipCode"},
		{path: "sex"},
		{path: "height"},
		{path: "weight"},
		{path: "dateOfBirth"},
		{path: "restrictions", multi: true},
		{path: "hairColor"},
		{path: "eyeColor"},
		{path: "dd"},
		{path: "endorsements", multi: true},
	},
	constants.PANCard: {
		{path: "panNumber"},
		{path: "name.firstName"},
		{path: "name.middleName"},
		{path: "name.lastName"},
		{path: "fatherName"},
		{path: "dateOfBirth"},
		{path: "issueDate"},
	},
	constants.AadhaarCard: {
		{path: "aadhaarNumber"},
		{path: "name"},
		{path: "dateOfBirth"},
		{path: "gender"},
		{path: "address.house"},
		{path: "address.street"},
		{path: "address.landmark"},
		{path: "address.city"},
		{path: "address.state"},
		{path: "address.pinCode"},
	},
}

// CoerceFields shapes the model's JSON into the document's fields: every
// field is present in wire order, scalars are strings or null, lists are
// string arrays. Unknown keys are dropped. The returned notes name every
// value that had to be changed.
func CoerceFields(dt constants.DocumentType, doc []byte) (entity.Record, []string, error) {
	fields, ok := documentFields[dt]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported document type %q", dt)
	}
	root := gjson.ParseBytes(doc)
	src := root.Get(dt.ResponseKey())
	if !src.IsObject() {
		// some models skip the wrapper key
		src = root
	}

	out := []byte(entity.NewRecord())
	var notes []string
	for _, f := range fields {
		val, note := coerceValue(src.Get(f.path), f.multi)
		if note != "" {
			notes = append(notes, f.path+"("+note+")")
		}
		var err error
		if out, err = sjson.SetBytes(out, f.path, val); err != nil {
			return nil, notes, fmt.Errorf("set %s: %w", f.path, err)
		}
	}
	return entity.Record(out), notes, nil
}

func coerceValue(v gjson.Result, multi bool) (any, string) {
	if !v.Exists() {
		return nil, ""
	}
	if multi {
		if v.Type == gjson.Null {
			return []string{}, "null list"
		}
		if !v.IsArray() {
			return []string{}, "not a list"
		}
		items := []string{}
		for _, item := range v.Array() {
			if item.Type == gjson.Null {
				continue
			}
			if s := strings.TrimSpace(item.String()); s != "" {
				items = append(items, s)
			}
		}
		return items, ""
	}
	switch v.Type {
	case gjson.String:
		s := strings.TrimSpace(v.String())
		if strings.EqualFold(s, "null") || strings.EqualFold(s, constants.NotDetected) {
			return nil, "placeholder"
		}
		return s, ""
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw, "stringified"
	case gjson.Null:
		return nil, ""
	default:
		return nil, "dropped " + v.Type.String()
	}
}

// Wrap puts fields under the document's response key.
func Wrap(dt constants.DocumentType, fields entity.Record) (entity.Record, error) {
	b, err := sjson.SetRawBytes([]byte(entity.NewRecord()), dt.ResponseKey(), fields)
	if err != nil {
		return nil, err
	}
	return entity.Record(b), nil
}
