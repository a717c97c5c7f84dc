// Package fragment parses URL hash fragments into routable pieces.
//
// A fragment such as "#/projects/list/42" is split on "/" into segments.
// The base route is built from the first path segment, joined with the
// second one only when a sub-route segment follows:
//
//	#/            → base "/"
//	#/test        → base "/test"
//	#/parent/child → base "/parent"            (no sub-route present)
//	#/parent/child/extra → base "/parent/child", sub-route "extra"
//
// Segments after the sub-route are reported in Fragment.Extra. Callers decide
// whether to ignore them or reject the fragment with ErrTooManySegments.
package fragment

import (
	"errors"
	"net/url"
	"strings"
)

// Separator is the segment delimiter inside a fragment.
const Separator = "/"

// Root is the fragment used when no hash is present.
const Root = "/"

// Fragment parsing errors.
var (
	ErrTooManySegments      = errors.New("fragment has segments beyond the sub-route")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
)

// Fragment is a parsed hash fragment.
type Fragment struct {
	// Raw is the fragment without its leading "#", defaulted to "/".
	Raw string

	// Segments are the raw pieces of Raw split on "/".
	// The first segment is empty when Raw starts with "/".
	Segments []string

	// Base is the route path to look up (e.g. "/parent/child").
	// Empty when the fragment does not start with "/".
	Base string

	// SubRoute is the positional segment after a two-level base, or "".
	SubRoute string

	// Extra holds any segments after the sub-route.
	Extra []string
}

// Parse splits a location hash into its routable pieces.
// The leading "#" is optional. An empty hash parses like "#/".
func Parse(hash string) Fragment {
	raw := strings.TrimPrefix(hash, "#")
	if raw == "" {
		raw = Root
	}

	segments := strings.Split(raw, Separator)
	f := Fragment{
		Raw:      raw,
		Segments: segments,
	}

	switch {
	case len(segments) > 3:
		f.Base = Separator + segments[1] + Separator + segments[2]
	case len(segments) > 1:
		f.Base = Separator + segments[1]
	}

	if len(segments) > 3 {
		f.SubRoute = segments[3]
	}
	if len(segments) > 4 {
		f.Extra = append([]string(nil), segments[4:]...)
	}

	return f
}

// Strict returns ErrTooManySegments when the fragment carries segments
// beyond the sub-route.
func (f Fragment) Strict() error {
	if len(f.Extra) > 0 {
		return ErrTooManySegments
	}
	return nil
}

// HasSubRoute reports whether a sub-route segment was present.
func (f Fragment) HasSubRoute() bool {
	return len(f.Segments) > 3
}

// DecodedSubRoute returns the sub-route with percent-escapes decoded.
func (f Fragment) DecodedSubRoute() (string, error) {
	return DecodeSegment(f.SubRoute)
}

// String returns the fragment in "#/..." form.
func (f Fragment) String() string {
	return "#" + f.Raw
}

// DecodeSegment decodes a single fragment segment.
// Only validates escapes when the segment contains "%".
func DecodeSegment(segment string) (string, error) {
	if !strings.Contains(segment, "%") {
		return segment, nil
	}
	if err := validatePercentEscapes(segment); err != nil {
		return "", err
	}
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	return decoded, nil
}

// validatePercentEscapes checks that all percent-escapes are %XX hex pairs.
func validatePercentEscapes(s string) error {
	i := 0
	for i < len(s) {
		if s[i] == '%' {
			if i+2 >= len(s) {
				return ErrInvalidPercentEscape
			}
			if !isHexDigit(s[i+1]) || !isHexDigit(s[i+2]) {
				return ErrInvalidPercentEscape
			}
			i += 3
		} else {
			i++
		}
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
