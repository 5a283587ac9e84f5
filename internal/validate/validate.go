package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

const (
	MaxQueryLen    = 500
	MaxSearchLen   = 100
	MaxCategoryLen = 50
)

var reID = regexp.MustCompile(`^[0-9]{1,18}$`)

var (
	ErrQueryRequired = errors.New("query is required")
	ErrQueryTooLong  = errors.New("query is too long")
)

// Query validates a free-text recommendation query: trimmed, non-empty,
// at most MaxQueryLen bytes.
func Query(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "", ErrQueryRequired
	case len(s) > MaxQueryLen:
		return "", ErrQueryTooLong
	}
	return s, nil
}

// Q validates a catalog search term. Overlong terms are cut rather than
// rejected.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > MaxSearchLen {
		s = strings.TrimSpace(s[:MaxSearchLen])
	}
	return s, true
}

// ID parses a positive product id.
func ID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if !reID.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Category trims a category name. Categories are free-form; only the
// length is bounded. The empty string is valid and means no category.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) > MaxCategoryLen {
		return "", false
	}
	return s, true
}
