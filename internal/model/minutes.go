package model

import "strings"

// ParseMinutes coerces free-text duration input the lenient way the manual
// entry form always has: an optional sign and leading digits are read,
// trailing garbage is ignored, anything unparsable is 0 and negative values
// clamp to 0.
func ParseMinutes(raw string) int {
	s := strings.TrimSpace(raw)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if n > (1<<31)/10 {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 || neg {
		return 0
	}
	return n
}

// ClampMinutes treats negative durations as zero.
func ClampMinutes(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
