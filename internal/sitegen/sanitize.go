// Package sitegen turns portfolio data and a template bundle into a static site.
package sitegen

import (
	"strings"
)

// MaxSegmentLen is the longest segment SafeSegment returns, in bytes.
const MaxSegmentLen = 32

// SafeSegment maps an arbitrary string to a filesystem path segment made only
// of [A-Za-z0-9_-]. Runs of other characters become a single '_', and the
// result never starts or ends with '_'. When nothing survives, fallback is
// returned unchanged.
func SafeSegment(value, fallback string) string {
	var b strings.Builder
	b.Grow(len(value))

	lastUnderscore := false
	for _, r := range value {
		if !isSafe(r) {
			r = '_'
		}
		if r == '_' {
			if lastUnderscore {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		b.WriteRune(r)
	}

	out := strings.Trim(b.String(), "_")
	if len(out) > MaxSegmentLen {
		out = strings.TrimRight(out[:MaxSegmentLen], "_")
	}

	if out == "" {
		return fallback
	}
	return out
}

func isSafe(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '_' || r == '-'
}
