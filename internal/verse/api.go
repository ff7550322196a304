package verse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hyperifyio/versetip/internal/fetch"
)

// Getter is the transport used by APIClient. *fetch.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

// APIClient looks references up on a bible-api.com compatible service.
type APIClient struct {
	// Base is the service root. Empty means DefaultAPIBase.
	Base string
	// Translation is appended as ?translation= when set.
	Translation string
	HTTP        Getter
}

// URL returns the request URL for ref.
func (c *APIClient) URL(ref string) string {
	base := c.Base
	if base == "" {
		base = DefaultAPIBase
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u := base + url.PathEscape(strings.TrimSpace(ref))
	if c.Translation != "" {
		u += "?translation=" + url.QueryEscape(strings.ToLower(c.Translation))
	}
	return u
}

// Lookup fetches and decodes the payload for ref.
func (c *APIClient) Lookup(ctx context.Context, ref string) (Payload, error) {
	if strings.TrimSpace(ref) == "" {
		return Payload{}, fmt.Errorf("lookup: %w", ErrNotFound)
	}
	if c.HTTP == nil {
		return Payload{}, errors.New("lookup: no http client configured")
	}
	body, _, err := c.HTTP.Get(ctx, c.URL(ref))
	if err != nil {
		var se *fetch.StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return Payload{}, fmt.Errorf("lookup %q: %w", ref, ErrNotFound)
		}
		return Payload{}, fmt.Errorf("lookup %q: %w", ref, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return Payload{}, fmt.Errorf("lookup %q: %w", ref, ErrEmptyPayload)
	}
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Payload{}, fmt.Errorf("decode %q: %w", ref, err)
	}
	return p, nil
}

// LookupIn fetches ref in translation, overriding c.Translation.
func (c *APIClient) LookupIn(ctx context.Context, ref, translation string) (Payload, error) {
	if strings.TrimSpace(translation) == "" {
		return c.Lookup(ctx, ref)
	}
	alt := *c
	alt.Translation = translation
	return alt.Lookup(ctx, ref)
}
