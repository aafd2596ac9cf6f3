// Package version normalizes and classifies condaprep version strings.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// IsDev reports whether raw denotes an unreleased development build.
func IsDev(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == "dev" || trimmed == "unknown"
}

// Normalize validates raw as a semantic version and strips any leading "v".
// Accepts vX.Y.Z or X.Y.Z and returns X.Y.Z.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "v")
	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("version %q must be in the form vX.Y.Z or X.Y.Z", raw)
	}
	for _, part := range parts {
		if part == "" {
			return "", fmt.Errorf("version %q must be in the form vX.Y.Z or X.Y.Z", raw)
		}
		if _, err := strconv.Atoi(part); err != nil {
			return "", fmt.Errorf("version %q must be in the form vX.Y.Z or X.Y.Z", raw)
		}
	}
	return trimmed, nil
}

// Compare orders two semantic versions. It returns -1 when a is older than
// b, 0 when they are equal, and 1 when a is newer.
func Compare(a string, b string) (int, error) {
	aParts, err := parse(a)
	if err != nil {
		return 0, err
	}
	bParts, err := parse(b)
	if err != nil {
		return 0, err
	}
	for i := range aParts {
		if aParts[i] != bParts[i] {
			if aParts[i] < bParts[i] {
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, nil
}

// parse converts a version into numeric components, normalizing first.
func parse(raw string) ([3]int, error) {
	normalized, err := Normalize(raw)
	if err != nil {
		return [3]int{}, err
	}
	var out [3]int
	for i, part := range strings.Split(normalized, ".") {
		value, err := strconv.Atoi(part)
		if err != nil {
			return [3]int{}, fmt.Errorf("version segment %q: %w", part, err)
		}
		out[i] = value
	}
	return out, nil
}
