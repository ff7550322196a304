package verse

import (
	"context"
	"strings"
)

// Card bundles everything a tooltip shows for one reference.
type Card struct {
	Reference      string `json:"reference"`
	Text           string `json:"text"`
	Translation    string `json:"translation,omitempty"`
	Fallback       bool   `json:"fallback"`
	InterlinearURL string `json:"interlinear_url"`
	ContextURL     string `json:"context_url"`
}

// NewCard combines a resolved result with the derived links. An empty
// contextVersion means DefaultContextVersion.
func NewCard(ref string, res Result, contextVersion string) Card {
	return Card{
		Reference:      ref,
		Text:           res.Text,
		Translation:    res.Translation,
		Fallback:       res.Fallback,
		InterlinearURL: InterlinearURL(ref),
		ContextURL:     GatewayURL(ref, contextVersion),
	}
}

// Card resolves ref and returns its tooltip card.
func (r *Resolver) Card(ctx context.Context, ref, contextVersion string) Card {
	return NewCard(ref, r.Resolve(ctx, ref), contextVersion)
}

// CardIn resolves ref in translation. A requested translation also becomes
// the full-context link version.
func (r *Resolver) CardIn(ctx context.Context, ref, translation, contextVersion string) Card {
	if t := strings.TrimSpace(translation); t != "" {
		contextVersion = strings.ToUpper(t)
	}
	return NewCard(ref, r.ResolveIn(ctx, ref, translation), contextVersion)
}
