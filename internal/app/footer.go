package app

import (
	"strconv"
	"strings"
)

// appendReproFooter appends a deterministic footer recording where the
// verse text came from and how much of it resolved.
func appendReproFooter(markdown string, api string, references int, fallbacks int, httpCache bool, offline bool) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(markdown, "\n"))
	b.WriteString("\n\n---\n")
	b.WriteString("Reproducibility: api=")
	b.WriteString(strings.TrimSpace(api))
	b.WriteString("; references=")
	b.WriteString(strconv.Itoa(references))
	b.WriteString("; fallbacks=")
	b.WriteString(strconv.Itoa(fallbacks))
	b.WriteString("; http_cache=")
	b.WriteString(strconv.FormatBool(httpCache))
	b.WriteString("; offline=")
	b.WriteString(strconv.FormatBool(offline))
	b.WriteString("; version=")
	b.WriteString(BuildVersion)
	b.WriteString("\n")
	return b.String()
}
