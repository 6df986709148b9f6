package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var (
	indentAfterNewline = regexp.MustCompile(`\n +`)
	leadingIndent      = regexp.MustCompile(`^ +`)
)

// ParseInt reads the integer prefix of value the way a lenient number parser
// would: leading whitespace, an optional sign, then digits. Anything after the
// digit run is ignored, so "3.7" yields 3. Returns fallback when no digits are
// found or the number does not fit in an int.
func ParseInt(value string, fallback int) int {
	s := strings.TrimLeft(value, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return fallback
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return fallback
	}
	return n
}

// IsLink reports whether value starts with "http".
func IsLink(value string) bool {
	return strings.HasPrefix(value, "http")
}

// NiceDate formats t as "D MonthName YYYY" in local time.
func NiceDate(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// ParseDate accepts a bare "2006-01-02" date (local midnight) or an RFC 3339
// timestamp, with or without fractional seconds.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(time.DateOnly, value, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// RemoveIndentation strips the spaces that start each line.
func RemoveIndentation(value string) string {
	value = indentAfterNewline.ReplaceAllString(value, "\n")
	return leadingIndent.ReplaceAllString(value, "")
}

// ParseLimit reads a limit flag. "false" disables the limit.
func ParseLimit(value string) (int, bool) {
	if value == "false" {
		return 0, false
	}
	return ParseInt(value, 0), true
}
