package store

import (
	"fmt"
	"net/url"
)

// DefaultAssetsBaseURL serves species artwork when no base URL is configured
const DefaultAssetsBaseURL = "https://cdn.poketwo.net"

// Assets builds URLs for static assets
type Assets struct {
	BaseURL string
}

// URL resolves path against the base URL. A base URL that does not parse
// is treated as the default.
func (a *Assets) URL(path string) string {
	baseURL := DefaultAssetsBaseURL
	if a != nil && a.BaseURL != "" {
		baseURL = a.BaseURL
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base, _ = url.Parse(DefaultAssetsBaseURL)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return baseURL + path
	}
	return base.ResolveReference(ref).String()
}

// SpeciesImage is the artwork URL for a species id
func (a *Assets) SpeciesImage(id int, shiny, female bool) string {
	dir := "images"
	if shiny {
		dir = "shiny"
	}
	suffix := ""
	if female {
		suffix = "F"
	}
	return a.URL(fmt.Sprintf("/%s/%d%s.png", dir, id, suffix))
}
