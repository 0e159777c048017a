// Package urlutil normalizes, validates, and compares URLs for crawl scope
// decisions (§4.1).
package urlutil

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ksysoev/docindex/pkg/core"
	"golang.org/x/net/publicsuffix"
)

// directoryIndexFiles lists trailing path segments treated as implicit
// directory markers and stripped when requested.
var directoryIndexFiles = map[string]bool{
	"index.html": true,
	"index.htm":  true,
	"index.asp":  true,
	"index.php":  true,
	"index.jsp":  true,
}

// NormalizeOptions configures NormalizeURL (§4.1).
type NormalizeOptions struct {
	LowercasePath   bool
	StripIndexFiles bool
	KeepQuery       bool
}

// DefaultNormalizeOptions is the normalization policy the BFS crawler uses
// for its visited-set dedup (§4.4 "Base BFS crawler").
var DefaultNormalizeOptions = NormalizeOptions{StripIndexFiles: true}

// NormalizeURL returns a canonical form of raw: lowercase host (and path when
// requested), hash dropped, trailing slash dropped except for root, directory
// index filenames stripped when enabled, query preserved or stripped per
// opts.KeepQuery. Non-parseable input is returned unchanged (best-effort) —
// normalization never fails; use ValidateURL to reject malformed input.
//
// NormalizeURL is idempotent: NormalizeURL(NormalizeURL(u)) == NormalizeURL(u).
func NormalizeURL(raw string, opts NormalizeOptions) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)

	if opts.LowercasePath {
		u.Path = strings.ToLower(u.Path)
	}

	if opts.StripIndexFiles {
		u.Path = stripDirectoryIndex(u.Path)
	}

	u.Path = strings.TrimSuffix(u.Path, "/")
	if u.Path == "" {
		u.Path = "/"
	}

	if !opts.KeepQuery {
		u.RawQuery = ""
	}

	return u.String()
}

func stripDirectoryIndex(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}

	segment := path[idx+1:]
	if directoryIndexFiles[strings.ToLower(segment)] {
		if idx == 0 {
			return "/"
		}

		return path[:idx]
	}

	return path
}

// ValidateURL parses raw and reports core.ErrInvalidURL on parse failure or
// when the scheme is not one the system understands (§4.1, §7).
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrInvalidURL, raw, err)
	}

	switch u.Scheme {
	case "http", "https", "file":
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", core.ErrInvalidURL, u.Scheme)
	}

	if u.Scheme != "file" && u.Host == "" {
		return nil, fmt.Errorf("%w: missing host: %s", core.ErrInvalidURL, raw)
	}

	return u, nil
}

// HasSameHostname reports whether a and b share the same (lowercased) host,
// including port.
func HasSameHostname(a, b string) bool {
	ua, errA := url.Parse(a)
	ub, errB := url.Parse(b)

	if errA != nil || errB != nil {
		return false
	}

	return strings.EqualFold(ua.Host, ub.Host)
}

// HasSameDomain reports whether a and b share the same registrable domain,
// using the public suffix list so "docs.example.co.uk" and
// "api.example.co.uk" match, while "example.com" and "example.org" do not.
func HasSameDomain(a, b string) bool {
	ua, errA := url.Parse(a)
	ub, errB := url.Parse(b)

	if errA != nil || errB != nil {
		return false
	}

	da, errA := effectiveTLDPlusOne(ua.Hostname())
	db, errB := effectiveTLDPlusOne(ub.Hostname())

	if errA != nil || errB != nil {
		return strings.EqualFold(ua.Hostname(), ub.Hostname())
	}

	return strings.EqualFold(da, db)
}

func effectiveTLDPlusOne(host string) (string, error) {
	return publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
}

// IsSubpath reports whether targetPath starts with basePath at a segment
// boundary: "/docs" is a prefix of "/docs/sub" but not of "/docsite", and a
// path is always a subpath of itself (reflexive).
func IsSubpath(basePath, targetPath string) bool {
	base := normalizeForSubpath(basePath)
	target := normalizeForSubpath(targetPath)

	if base == "/" {
		return true
	}

	if base == target {
		return true
	}

	return strings.HasPrefix(target, base+"/")
}

func normalizeForSubpath(p string) string {
	if p == "" {
		return "/"
	}

	return strings.TrimSuffix(p, "/")
}

// HasScope reports whether target is in-scope of base according to scope.
func HasScope(scope core.Scope, base, target string) bool {
	switch scope {
	case core.ScopeSubpages:
		if !HasSameHostname(base, target) {
			return false
		}

		bu, err := url.Parse(base)
		if err != nil {
			return false
		}

		tu, err := url.Parse(target)
		if err != nil {
			return false
		}

		return IsSubpath(bu.Path, tu.Path)
	case core.ScopeHostname:
		return HasSameHostname(base, target)
	case core.ScopeDomain:
		return HasSameDomain(base, target)
	default:
		return HasSameHostname(base, target)
	}
}
