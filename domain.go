package prodcrawl

import (
	"net/url"
	"strings"
)

// Domain is a crawl target identified by its scheme and host.
type Domain struct {
	base *url.URL
}

// ParseDomain parses a domain from a base URL or a bare host name.
// A bare host is assumed to be served over https. Any path, query or
// fragment is dropped.
func ParseDomain(raw string) (*Domain, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, Errorf(EINVALID, "domain required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid domain %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "unsupported scheme %q in domain %q", u.Scheme, raw)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "domain %q has no host", raw)
	}

	return &Domain{base: &url.URL{Scheme: u.Scheme, Host: u.Host}}, nil
}

// String returns the base URL, e.g. "https://shop.example".
func (d *Domain) String() string {
	return d.base.String()
}

// Host returns the host (with port, if any).
func (d *Domain) Host() string {
	return d.base.Host
}

// Namespace returns the output namespace for the domain's products.
func (d *Domain) Namespace() string {
	return strings.ToLower(d.base.Hostname())
}

// Resolve resolves ref against the domain's base URL. Absolute references
// are returned unchanged apart from normalization.
func (d *Domain) Resolve(ref string) (string, error) {
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", ref, err)
	}
	return d.base.ResolveReference(r).String(), nil
}

// Owns reports whether rawURL points at the domain's host.
func (d *Domain) Owns(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, d.base.Host)
}
