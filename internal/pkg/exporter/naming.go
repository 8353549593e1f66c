package exporter

import "strings"

// FileName renders an output file name from the naming pattern.
// Placeholder substitution is textual and order-independent; unknown
// placeholders are left as-is.
func (n NamingConfig) FileName(name, size, theme string) string {
	pattern := n.Pattern
	if pattern == "" {
		pattern = "{name}"
	}

	replacer := strings.NewReplacer(
		"{name}", name,
		"{size}", size,
		"{theme}", theme,
	)
	out := replacer.Replace(pattern)

	if n.Lowercase {
		out = strings.ToLower(out)
	}
	return out
}
