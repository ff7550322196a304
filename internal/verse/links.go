package verse

import (
	"net/url"
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var interlinearRef = regexp.MustCompile(`^(.+?)[\s\v\p{Z}]+(\d+)(?::(\d+))?(?:-(\d+))?`)

// InterlinearURL derives the interlinear page for a reference. Ranges use
// their first verse. Anything without a book and chapter yields
// InterlinearBase.
func InterlinearURL(ref string) string {
	m := interlinearRef.FindStringSubmatch(ref)
	if m == nil || m[1] == "" || m[2] == "" {
		return InterlinearBase
	}
	slug := whitespace.ReplaceAllString(cases.Lower(language.Und).String(m[1]), "_")
	if m[3] != "" {
		return InterlinearBase + slug + "/" + m[2] + "-" + m[3] + ".htm"
	}
	return InterlinearBase + slug + "/" + m[2] + ".htm"
}

// GatewayURL links to the full passage on the external viewer. An empty
// version means DefaultContextVersion.
func GatewayURL(ref, version string) string {
	if version == "" {
		version = DefaultContextVersion
	}
	q := url.Values{}
	q.Set("search", ref)
	q.Set("version", version)
	return GatewayBase + "?" + q.Encode()
}
