package llm

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/idcard-extractor/constants"
)

var documentNouns = map[constants.DocumentType]string{
	constants.DrivingLicense: "a driving license",
	constants.PANCard:        "a PAN card",
	constants.AadhaarCard:    "an Aadhaar card",
}

var documentTemplates = map[constants.DocumentType]string{
	constants.DrivingLicense: `{
    "drivingLicense": {
        "state": "string or null",
        "dlNumber": "string or null",
        "issueDate": "DD/MM/YYYY or null",
        "expiryDate": "DD/MM/YYYY or null",
        "name": {
            "firstName": "string or null",
            "middleName": "string or null",
            "lastName": "string or null"
        },
        "address": {
            "street": "string or null",
            "city": "string or null",
            "state": "string or null",
            "zipCode": "string or null"
        },
        "sex": "M/F or null",
        "height": "string or null",
        "weight": "string or null",
        "dateOfBirth": "DD/MM/YYYY or null",
        "restrictions": ["restriction1", "restriction2"] or [],
        "hairColor": "string or null",
        "eyeColor": "string or null",
        "dd": "string or null",
        "endorsements": ["endorsement1", "endorsement2"] or []
    }
}`,
	constants.PANCard: `{
    "panCard": {
        "panNumber": "string or null",
        "name": {
            "firstName": "string or null",
            "middleName": "string or null",
            "lastName": "string or null"
        },
        "fatherName": "string or null",
        "dateOfBirth": "DD/MM/YYYY or null",
        "issueDate": "DD/MM/YYYY or null"
    }
}`,
	constants.AadhaarCard: `{
    "aadhaarCard": {
        "aadhaarNumber": "string or null",
        "name": "string or null",
        "dateOfBirth": "DD/MM/YYYY or null",
        "gender": "M/F/Other or null",
        "address": {
            "house": "string or null",
            "street": "string or null",
            "landmark": "string or null",
            "city": "string or null",
            "state": "string or null",
            "pinCode": "string or null"
        }
    }
}`,
}

// BuildSystemPrompt describes the JSON shape expected for dt and the rules
// the model must follow.
func BuildSystemPrompt(dt constants.DocumentType) (string, error) {
	tmpl, ok := documentTemplates[dt]
	if !ok {
		return "", fmt.Errorf("no prompt for document type %q", dt)
	}
	rules := []string{
		"- Return ONLY a JSON object (no explanations, no markdown, no extra text).",
		`- If a field is missing, unreadable, or not applicable, return null (not "Not detected").`,
	}
	if dt == constants.DrivingLicense {
		rules = append(rules, "- For restrictions and endorsements, return an empty list [] if none are visible.")
	}
	rules = append(rules,
		"- Dates must be formatted consistently as DD/MM/YYYY.",
		"- Preserve leading zeros in numbers, zip codes and dates.",
		"- Do not hallucinate values. If unsure, use null.",
	)

	var b strings.Builder
	b.WriteString("You are an AI system specialized in document information extraction.\n")
	fmt.Fprintf(&b, "You will receive %s image as input. Detect and extract all visible fields and ", documentNouns[dt])
	b.WriteString("return them as a clean, strictly valid JSON object following this exact schema:\n")
	b.WriteString(tmpl)
	b.WriteString("\nStrict rules you must follow:\n")
	b.WriteString(strings.Join(rules, "\n"))
	return b.String(), nil
}

// BuildUserPrompt accompanies the attached image.
func BuildUserPrompt(req ExtractRequest) string {
	return fmt.Sprintf("Extract the %s fields from the attached image (mime_type=%s). Return only valid JSON.",
		req.DocumentType.DisplayName(), req.MimeType)
}

// BuildPrompt returns both prompt parts for req.
func BuildPrompt(req ExtractRequest) (Prompt, error) {
	sys, err := BuildSystemPrompt(req.DocumentType)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{System: sys, User: BuildUserPrompt(req)}, nil
}
