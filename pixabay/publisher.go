package pixabay

import (
	"net/url"
	"strings"
)

const resourceScheme = "resource://"

// StaticPublisher publishes resources below a fixed base URL. Package
// resource paths (resource://Vendor.Package/Public/...) are mapped to the
// part after Public/.
type StaticPublisher struct {
	BaseURL string
}

func (p StaticPublisher) PublicResourceURI(resourcePath string) (string, error) {
	rel := resourcePath
	if strings.HasPrefix(rel, resourceScheme) {
		rel = strings.TrimPrefix(rel, resourceScheme)
		if _, after, ok := strings.Cut(rel, "/Public/"); ok {
			rel = after
		}
	}
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return "", nil
	}
	return url.JoinPath(p.BaseURL, rel)
}
