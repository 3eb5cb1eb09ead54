package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/results"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

var indicatorLabels = map[constants.Indicator]string{
	constants.IndicatorValid:   "✓ valid",
	constants.IndicatorInvalid: "✗ invalid",
	constants.IndicatorMissing: "missing",
	constants.IndicatorUnknown: "unverified",
}

const printStyle = `body{font-family:sans-serif;margin:2em}
table{border-collapse:collapse;width:100%;margin-bottom:1.5em}
th,td{border:1px solid #ccc;padding:.4em .6em;text-align:left}
th{background:#f3f3f3}
@media print{body{margin:0}}`

// Markdown renders the current fields of v as a Markdown report.
func Markdown(v results.View) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s Information\n\n", v.Type().DisplayName())
	for _, s := range v.Sections() {
		fmt.Fprintf(&b, "## %s\n\n", escapeMarkdown(s.Title))
		b.WriteString("| Field | Value | Status |\n|---|---|---|\n")
		for _, r := range s.Rows {
			status := indicatorLabels[r.Indicator]
			if r.Hint != "" {
				status += " (expected " + r.Hint + ")"
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeMarkdown(r.Label), escapeMarkdown(r.Text), escapeMarkdown(status))
		}
		b.WriteString("\n")
	}
	return b.Bytes()
}

// HTML renders v as a standalone printable page.
func HTML(v results.View) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert(Markdown(v), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(v.Type().DisplayName()+" Information"))
	fmt.Fprintf(&b, "<style>\n%s\n</style>\n</head>\n<body>\n", printStyle)
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.Bytes(), nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", `\<`,
	"[", `\[`,
	"#", `\#`,
	"\n", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
