package news

import (
	"strconv"
	"strings"

	"newsproxy/internal/domain/entity"
	pkgconfig "newsproxy/pkg/config"
)

// ParseMax parses a caller supplied result cap. Absent, non-numeric and
// non-positive values yield entity.DefaultMax; parse failures are not errors.
// A leading integer is honoured the way "12abc" reads as 12.
func ParseMax(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(raw[:end])
	if err != nil || n <= 0 {
		return entity.DefaultMax
	}
	return n
}

// SplitKeywords splits a comma separated keyword list, trimming each keyword and
// dropping empty ones.
func SplitKeywords(raw string) []string {
	return pkgconfig.SplitList(raw)
}
