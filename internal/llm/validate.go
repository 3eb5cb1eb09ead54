package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
)

var (
	reDLNumber      = regexp.MustCompile(`^[A-Z]{2}[0-9]{2} ?[0-9]{11}$`)
	rePANNumber     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	reAadhaarNumber = regexp.MustCompile(`^[2-9][0-9]{3} ?[0-9]{4} ?[0-9]{4}$`)
)

// dateLayouts are tried in order; the first match wins.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2006-1-2",
	"1/2/2006",
	"2.1.2006",
}

const dateOutput = "02/01/2006"

// checker returns the (possibly normalized) value and whether it is valid.
type checker func(string) (string, bool)

func matches(re *regexp.Regexp) checker {
	return func(s string) (string, bool) { return s, re.MatchString(s) }
}

func oneOf(allowed ...string) checker {
	return func(s string) (string, bool) {
		for _, a := range allowed {
			if s == a {
				return s, true
			}
		}
		return s, false
	}
}

// NormalizeDate parses s in any accepted layout and renders it as DD/MM/YYYY.
// Unparseable input is returned unchanged and reported invalid.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateOutput), true
		}
	}
	return s, false
}

var checkers = map[constants.DocumentType]map[string]checker{
	constants.DrivingLicense: {
		"dlNumber":    matches(reDLNumber),
		"issueDate":   NormalizeDate,
		"expiryDate":  NormalizeDate,
		"dateOfBirth": NormalizeDate,
		"sex":         oneOf("M", "F"),
	},
	constants.PANCard: {
		"panNumber":   matches(rePANNumber),
		"dateOfBirth": NormalizeDate,
		"issueDate":   NormalizeDate,
	},
	constants.AadhaarCard: {
		"aadhaarNumber": matches(reAadhaarNumber),
		"dateOfBirth":   NormalizeDate,
		"gender":        oneOf("M", "F", "Other"),
	},
}

type wrapped struct {
	Value any   `json:"value"`
	Valid *bool `json:"valid"`
}

// ValidateFields wraps every field of fields as {value, valid}. Fields
// without a rule, and null or blank values, get valid:null.
func ValidateFields(dt constants.DocumentType, fields entity.Record) (entity.Record, error) {
	defs, ok := documentFields[dt]
	if !ok {
		return nil, fmt.Errorf("unsupported document type %q", dt)
	}
	src := fields.Result()
	rules := checkers[dt]

	out := []byte(entity.NewRecord())
	for _, f := range defs {
		w := wrapped{Value: leafValue(src.Get(f.path), f.multi)}
		if s, isStr := w.Value.(string); isStr {
			if check, ok := rules[f.path]; ok && strings.TrimSpace(s) != "" {
				norm, valid := check(s)
				w.Value, w.Valid = norm, &valid
			}
		}
		raw, err := json.Marshal(w)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, f.path, raw); err != nil {
			return nil, fmt.Errorf("set %s: %w", f.path, err)
		}
	}
	return entity.Record(out), nil
}

func leafValue(v gjson.Result, multi bool) any {
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return nil
	case multi && v.IsArray():
		items := []string{}
		for _, item := range v.Array() {
			items = append(items, item.String())
		}
		return items
	default:
		return v.String()
	}
}
