package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reCode     = regexp.MustCompile(`^[0-9]{4,32}$`)
	reUsername = regexp.MustCompile(`^[A-Za-z0-9._-]{1,50}$`)
)

// Name validates a displayable item name: trimmed, non-empty, bounded.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Qty parses a non-negative integer, falling back to def when the field
// is absent.
func Qty(s string, def int) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Date validates an optional YYYY-MM-DD expiry. Empty is fine (no expiry).
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", false
	}
	return s, true
}

// Username validates an account name. Case-sensitive; stored as typed.
func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUsername.MatchString(s)
}

// Password only requires presence; bcrypt caps input at 72 bytes.
func Password(s string) bool {
	return s != "" && len(s) <= 72
}

// Code validates an external barcode (EAN/UPC style digit string).
func Code(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reCode.MatchString(s)
}

// ItemID parses a positive row id from a route parameter.
func ItemID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
