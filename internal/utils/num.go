package utils

import (
	"regexp"
	"strconv"
)

var (
	rxKeepNums   = regexp.MustCompile(`[^\d.]`)
	rxLeadingNum = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
)

// ParseQuantity keeps only digits and dots and parses the rest: "3 pcs" -> 3, "1.5kg" -> 1.5.
// Leftovers that are not a single number ("1.2.3", "") report false.
func ParseQuantity(s string) (float64, bool) {
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseLeadingFloat is the forgiving variant: it takes the longest numeric prefix of the
// digits-and-dots residue ("1.2.3" -> 1.2) and returns 0 when there is none.
func ParseLeadingFloat(s string) float64 {
	s = rxKeepNums.ReplaceAllString(s, "")
	m := rxLeadingNum.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}
