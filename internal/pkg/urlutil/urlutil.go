package urlutil

import (
	"net/url"
	"strings"
)

// IsInternal reports whether href is a same-origin absolute path. Protocol
// relative ("//host") and backslash tricks ("/\host") are rejected.
func IsInternal(href string) bool {
	if !strings.HasPrefix(href, "/") {
		return false
	}
	if strings.HasPrefix(href, "//") || strings.HasPrefix(href, "/\\") {
		return false
	}
	u, err := url.Parse(href)
	return err == nil && u.Scheme == "" && u.Host == ""
}

// SafeRedirect returns target when it is internal, otherwise fallback.
func SafeRedirect(target, fallback string) string {
	target = strings.TrimSpace(target)
	if target != "" && IsInternal(target) {
		return target
	}
	return fallback
}

// WithQuery appends params to path, skipping empty values.
func WithQuery(path string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
