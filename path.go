package docgraph

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// helpSegment marks the root of the documentation tree within a URL path.
// Locale prefixes (/ru/help/, /en/help/) sit in front of it and are
// stripped during normalization so cross-locale links resolve to the same
// document.
const helpSegment = "/help/"

// NormalizePath maps any raw URL or relative link to its canonical path.
// The canonical path is scheme-, host-, query- and fragment-free, has the
// locale-prefixed help root removed, carries no surrounding slashes, and is
// lower-case. It is the unique navigation key across documents.
//
// NormalizePath is total: malformed input degrades to a best-effort
// lowercase trimmed string, and empty input returns "". It is idempotent:
// NormalizePath(NormalizePath(x)) == NormalizePath(x).
func NormalizePath(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	} else {
		// Keep only what looks like a path.
		if i := strings.IndexAny(p, "?#"); i != -1 {
			p = p[:i]
		}
	}

	// Lowercase before locating the help segment so case-varied help roots
	// (/RU/Help/) collapse in a single pass.
	p = strings.ToLower(p)

	// Strip everything up to and including the last help segment. Using the
	// last occurrence keeps the function idempotent even when the remainder
	// itself contains "/help/".
	if i := strings.LastIndex(p, helpSegment); i != -1 {
		p = p[i+len(helpSegment):]
	}

	return strings.Trim(p, "/")
}

// IsFetchable reports whether a discovered href should ever enter the
// crawl frontier. The href is resolved against base; it is fetchable when
// it stays on the base host, points under the help root, and addresses a
// concrete page rather than a bare directory listing. Non-HTTP schemes
// (mailto:, tel:, javascript:) and bare fragments fail the host and path
// checks.
func IsFetchable(raw string, base string) bool {
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return false
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return false
	}
	u := b.ResolveReference(ref)

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host != b.Host {
		return false
	}

	// Case-folded, matching NormalizePath: a link under /RU/Help/ is the
	// same scope as one under /ru/help/.
	path := strings.ToLower(u.Path)
	i := strings.LastIndex(path, helpSegment)
	if i == -1 {
		return false
	}
	rest := strings.Trim(path[i+len(helpSegment):], "/")
	if rest == "" {
		return false
	}

	if strings.HasSuffix(path, ".html") {
		return true
	}
	// Directory-style paths are fetchable; trailing-slash-only paths are not.
	return !strings.HasSuffix(path, "/")
}

// identRe matches URL segments usable as stable document identifiers.
var identRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// numericIDRe matches numeric page identifiers such as /360008121732.html.
var numericIDRe = regexp.MustCompile(`/(\d+)\.html`)

// DocID derives a stable document identifier from a URL. The last .html
// segment wins if it is a valid identifier, then a numeric page ID, then
// any valid trailing path segment. URLs yielding no identifier fall back
// to a generated UUID.
func DocID(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	p = strings.Trim(p, "/")

	if rest, ok := strings.CutSuffix(p, ".html"); ok {
		segments := strings.Split(rest, "/")
		if last := segments[len(segments)-1]; identRe.MatchString(last) {
			return last
		}
	}

	if m := numericIDRe.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}

	segments := strings.Split(p, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if s := strings.TrimSuffix(segments[i], ".html"); s != "" && identRe.MatchString(s) {
			return s
		}
	}

	return uuid.New().String()
}
