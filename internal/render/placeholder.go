package render

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// Substitute replaces every {{key}} in text. Unknown keys render as [key].
// Values are made inert first so user input can never introduce a placeholder.
func Substitute(text string, data TemplateData) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(m string) string {
		key := placeholderPattern.FindStringSubmatch(m)[1]
		if v, ok := data[key]; ok {
			return inertBraces(v)
		}
		return "[" + key + "]"
	})
}

// inertBraces splits every brace pair with a space, including a brace at either
// end that could pair with template text next to the value
func inertBraces(v string) string {
	for strings.Contains(v, "{{") {
		v = strings.ReplaceAll(v, "{{", "{ {")
	}
	for strings.Contains(v, "}}") {
		v = strings.ReplaceAll(v, "}}", "} }")
	}
	if strings.HasPrefix(v, "}") {
		v = " " + v
	}
	if strings.HasSuffix(v, "{") {
		v += " "
	}
	return v
}

// SubstituteHTML is Substitute with values HTML-escaped
func SubstituteHTML(text string, data TemplateData) string {
	escaped := make(TemplateData, len(data))
	for k, v := range data {
		escaped[k] = htmlEscaper.Replace(v)
	}
	return Substitute(text, escaped)
}

// HasPlaceholders reports whether text still contains a {{key}} placeholder
func HasPlaceholders(text string) bool {
	return placeholderPattern.MatchString(text)
}

// Placeholders returns the distinct keys referenced by text in order of appearance
func Placeholders(text string) []string {
	var keys []string
	seen := map[string]bool{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}

var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&#34;",
	`'`, "&#39;",
)
