package constants

import (
	"strings"
)

// DocumentType is the card_type discriminator sent to the extraction backend.
type DocumentType string

const (
	DrivingLicense DocumentType = "driving_license"
	PANCard        DocumentType = "pan_card"
	AadhaarCard    DocumentType = "aadhaar_card"
)

// Response keys of each variant inside the extraction payload.
const (
	KeyDrivingLicense = "drivingLicense"
	KeyPANCard        = "panCard"
	KeyAadhaarCard    = "aadhaarCard"
)

// allDocumentTypes is ordered by variant precedence: when a payload carries more
// than one known key the first one wins.
var allDocumentTypes = []DocumentType{
	DrivingLicense,
	PANCard,
	AadhaarCard,
}

var responseKeys = map[DocumentType]string{
	DrivingLicense: KeyDrivingLicense,
	PANCard:        KeyPANCard,
	AadhaarCard:    KeyAadhaarCard,
}

var displayNames = map[DocumentType]string{
	DrivingLicense: "Driving License",
	PANCard:        "PAN Card",
	AadhaarCard:    "Aadhaar Card",
}

// DocumentTypes returns the supported types in variant precedence order.
func DocumentTypes() []DocumentType {
	out := make([]DocumentType, len(allDocumentTypes))
	copy(out, allDocumentTypes)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allDocumentTypes))
	for i, dt := range allDocumentTypes {
		result[i] = string(dt)
	}
	return result
}

// Valid reports whether dt is one of the supported document types.
func (dt DocumentType) Valid() bool {
	_, ok := responseKeys[dt]
	return ok
}

// ResponseKey is the key holding this type's fields in an extraction payload.
func (dt DocumentType) ResponseKey() string {
	return responseKeys[dt]
}

func (dt DocumentType) DisplayName() string {
	if n, ok := displayNames[dt]; ok {
		return n
	}
	return string(dt)
}

// Canonicalize accepts the wire value plus a few human spellings.
func Canonicalize(input string) (DocumentType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	synonyms := map[string]DocumentType{
		"dl":              DrivingLicense,
		"license":         DrivingLicense,
		"licence":         DrivingLicense,
		"driving-license": DrivingLicense,
		"drivinglicense":  DrivingLicense,
		"pan":             PANCard,
		"pan-card":        PANCard,
		"pancard":         PANCard,
		"aadhaar":         AadhaarCard,
		"aadhar":          AadhaarCard,
		"aadhaar-card":    AadhaarCard,
		"aadhaarcard":     AadhaarCard,
	}
	if dt, ok := synonyms[normalized]; ok {
		return dt, true
	}

	for _, dt := range allDocumentTypes {
		if normalized == string(dt) {
			return dt, true
		}
	}
	return "", false
}
