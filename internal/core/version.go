package core

import (
	"strconv"
	"strings"
)

// versionSegment is one delimited part of a version string. Numeric
// segments compare by value, everything else by raw text.
type versionSegment struct {
	raw     string
	number  int
	numeric bool
}

// VersionTuple is an ordered sequence of comparable version segments.
// Apk version names are free-form ("6.0.1-arm64"), so no grammar is
// enforced: the tuple is whatever the string splits into.
type VersionTuple []versionSegment

// ParseVersionTuple splits a version string on dot, dash and underscore
// delimiters, coercing all-digit segments to numbers so that tuple
// comparison matches semantic version ordering. An empty or blank input
// yields an empty tuple, which callers treat as "never matches".
func ParseVersionTuple(value string) VersionTuple {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '.' || r == '-' || r == '_'
	})
	tuple := make(VersionTuple, 0, len(parts))
	for _, part := range parts {
		segment := versionSegment{raw: part}
		if number, err := strconv.Atoi(part); err == nil {
			segment.number = number
			segment.numeric = true
		}
		tuple = append(tuple, segment)
	}
	return tuple
}

// Compare returns -1, 0 or 1 for lexicographic tuple ordering. A shorter
// tuple that is a prefix of a longer one sorts first.
func (v VersionTuple) Compare(other VersionTuple) int {
	limit := len(v)
	if len(other) < limit {
		limit = len(other)
	}
	for i := 0; i < limit; i++ {
		if c := compareSegments(v[i], other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(v) < len(other):
		return -1
	case len(v) > len(other):
		return 1
	default:
		return 0
	}
}

func compareSegments(a versionSegment, b versionSegment) int {
	if a.numeric && b.numeric {
		switch {
		case a.number < b.number:
			return -1
		case a.number > b.number:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.raw, b.raw)
}

func segmentsEqual(a versionSegment, b versionSegment) bool {
	if a.numeric && b.numeric {
		return a.number == b.number
	}
	return a.raw == b.raw
}

// LooseVersionMatches reports whether the requested version is a
// segment-wise prefix of the candidate's version: "1.2" matches "1.2.7"
// but "1.2.7" does not match "1.2" (a more specific version was
// requested than is available).
func LooseVersionMatches(requested string, candidate string) bool {
	requestedTuple := ParseVersionTuple(requested)
	candidateTuple := ParseVersionTuple(candidate)
	if len(candidateTuple) < len(requestedTuple) {
		return false
	}
	for i := range requestedTuple {
		if !segmentsEqual(requestedTuple[i], candidateTuple[i]) {
			return false
		}
	}
	return true
}

// RangeVersionMatches reports whether a candidate version sits within
// the inclusive [minVersion, maxVersion] bounds; either bound may be
// empty. An empty candidate version never matches a bounded range.
func RangeVersionMatches(candidate string, minVersion string, maxVersion string) bool {
	if strings.TrimSpace(candidate) == "" {
		return false
	}
	candidateTuple := ParseVersionTuple(candidate)
	if maxVersion != "" {
		if candidateTuple.Compare(ParseVersionTuple(maxVersion)) > 0 {
			return false
		}
	}
	if minVersion != "" {
		if candidateTuple.Compare(ParseVersionTuple(minVersion)) < 0 {
			return false
		}
	}
	return true
}
