// Package schema is the static description of which fields each identity
// document carries, how they are labelled and grouped, and how a dotted field
// path resolves inside an extracted record.
package schema

import (
	"github.com/joseph-ayodele/idcard-extractor/constants"
)

// FieldDescriptor describes one extracted attribute.
type FieldDescriptor struct {
	Key        string // dotted path inside the document variant, e.g. "address.city"
	Label      string
	FormatHint string // empty when no expected format is declared
	Multi      bool   // value is a list (restrictions, endorsements)
}

func (f FieldDescriptor) HasHint() bool {
	return f.FormatHint != ""
}

// SectionDescriptor groups fields for display; order is significant.
type SectionDescriptor struct {
	Title  string
	Fields []FieldDescriptor
}

const (
	hintDate    = "DD/MM/YYYY"
	hintDL      = "AA00 00000000000 (state code, RTO code, 11 digits)"
	hintPAN     = "AAAAA0000A (5 letters, 4 digits, 1 letter)"
	hintAadhaar = "0000 0000 0000 (12 digits, first digit 2-9)"
	hintSex     = "M or F"
	hintGender  = "M, F or Other"
)

var registry = map[constants.DocumentType][]SectionDescriptor{
	constants.DrivingLicense: {
		{Title: "Document Details", Fields: []FieldDescriptor{
			{Key: "state", Label: "State"},
			{Key: "dlNumber", Label: "DL Number", FormatHint: hintDL},
			{Key: "issueDate", Label: "Issue Date", FormatHint: hintDate},
			{Key: "expiryDate", Label: "Expiry Date", FormatHint: hintDate},
			{Key: "dd", Label: "DD Number"},
		}},
		{Title: "Personal Information", Fields: []FieldDescriptor{
			{Key: "name.firstName", Label: "First Name"},
			{Key: "name.middleName", Label: "Middle Name"},
			{Key: "name.lastName", Label: "Last Name"},
			{Key: "dateOfBirth", Label: "Date of Birth", FormatHint: hintDate},
			{Key: "sex", Label: "Sex", FormatHint: hintSex},
			{Key: "height", Label: "Height"},
			{Key: "weight", Label: "Weight"},
			{Key: "eyeColor", Label: "Eye Color"},
			{Key: "hairColor", Label: "Hair Color"},
		}},
		{Title: "Address", Fields: []FieldDescriptor{
			{Key: "address.street", Label: "Street Address"},
			{Key: "address.city", Label: "City"},
			{Key: "address.state", Label: "State"},
			{Key: "address.zipCode", Label: "Zip Code"},
		}},
		{Title: "Restrictions & Endorsements", Fields: []FieldDescriptor{
			{Key: "restrictions", Label: "Restrictions", Multi: true},
			{Key: "endorsements", Label: "Endorsements", Multi: true},
		}},
	},
	constants.PANCard: {
		{Title: "Document Details", Fields: []FieldDescriptor{
			{Key: "panNumber", Label: "PAN Number", FormatHint: hintPAN},
			{Key: "issueDate", Label: "Issue Date", FormatHint: hintDate},
		}},
		{Title: "Personal Information", Fields: []FieldDescriptor{
			{Key: "name.firstName", Label: "First Name"},
			{Key: "name.middleName", Label: "Middle Name"},
			{Key: "name.lastName", Label: "Last Name"},
			{Key: "fatherName", Label: "Father's Name"},
			{Key: "dateOfBirth", Label: "Date of Birth", FormatHint: hintDate},
		}},
	},
	constants.AadhaarCard: {
		{Title: "Document Details", Fields: []FieldDescriptor{
			{Key: "aadhaarNumber", Label: "Aadhaar Number", FormatHint: hintAadhaar},
		}},
		{Title: "Personal Information", Fields: []FieldDescriptor{
			{Key: "name", Label: "Name"},
			{Key: "dateOfBirth", Label: "Date of Birth", FormatHint: hintDate},
			{Key: "gender", Label: "Gender", FormatHint: hintGender},
		}},
		{Title: "Address", Fields: []FieldDescriptor{
			{Key: "address.house", Label: "House"},
			{Key: "address.street", Label: "Street"},
			{Key: "address.landmark", Label: "Landmark"},
			{Key: "address.city", Label: "City"},
			{Key: "address.state", Label: "State"},
			{Key: "address.pinCode", Label: "PIN Code"},
		}},
	},
}

// SectionsFor returns the display sections for dt. Unsupported types yield nil.
// The returned slices are copies; callers may not mutate the registry.
func SectionsFor(dt constants.DocumentType) []SectionDescriptor {
	sections, ok := registry[dt]
	if !ok {
		return nil
	}
	out := make([]SectionDescriptor, len(sections))
	for i, s := range sections {
		fields := make([]FieldDescriptor, len(s.Fields))
		copy(fields, s.Fields)
		out[i] = SectionDescriptor{Title: s.Title, Fields: fields}
	}
	return out
}

// Fields returns every field of dt in display order.
func Fields(dt constants.DocumentType) []FieldDescriptor {
	var out []FieldDescriptor
	for _, s := range registry[dt] {
		out = append(out, s.Fields...)
	}
	return out
}

// Lookup finds the descriptor for key within dt.
func Lookup(dt constants.DocumentType, key string) (FieldDescriptor, bool) {
	for _, s := range registry[dt] {
		for _, f := range s.Fields {
			if f.Key == key {
				return f, true
			}
		}
	}
	return FieldDescriptor{}, false
}
