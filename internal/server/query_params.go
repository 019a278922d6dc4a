package server

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errNotInteger = errors.New("not_integer")
	errNegative   = errors.New("negative")
	errTooLarge   = errors.New("too_large")
)

// parseNonNegativeInt reads an optional integer query value; empty means 0.
func parseNonNegativeInt(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(trimmed, "-") {
			return 0, errNegative
		}
		return 0, errTooLarge
	}
	if err != nil {
		return 0, errNotInteger
	}
	if parsed < 0 {
		return 0, errNegative
	}
	return parsed, nil
}
