package members

import (
	"strconv"
	"strings"
)

// IdentifierVisible reports whether the identifier field applies to a member
// of the given age. Only the leading integer of the input is considered.
func IdentifierVisible(age string) bool {
	n, ok := ParseAge(age)
	return ok && n >= AdultAge
}

// ParseAge reads the leading integer of s. It returns false when s does not
// start with a digit (after an optional sign).
func ParseAge(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
