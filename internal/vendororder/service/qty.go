package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// tried in order; the first capture is grams
	reGramsInName = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\(.*?\bper\s+(\d{1,4}(?:\.\d+)?)\s*g(?:rams|ms)?\b.*?\)`),
		regexp.MustCompile(`(?i)\(\s*(\d{1,4}(?:\.\d+)?)\s*g(?:rams|ms)?\s*\)`),
		regexp.MustCompile(`(?i)\b(\d{1,4}(?:\.\d+)?)\s*g(?:rams|ms)?\b`),
	}
	reKgInName = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*kg\b`)

	reUnitWord   = regexp.MustCompile(`(?i)(` + countUnitWord + `)`)
	reWeightWord = regexp.MustCompile(`(?i)(g\b|gms|gram|kg)`)
	reFirstNum   = regexp.MustCompile(`\d+(?:\.\d+)?`)

	reLeadingWordNum = regexp.MustCompile(`(?i)^(one|two|three|four|five|six|seven|eight|nine|ten)\b`)
	reQtyAndWord     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([A-Za-z].*)`)

	reWeightParen  = regexp.MustCompile(`(?i)\([^)]*(kg|gms?|grams?|\d\s*g)\)`)
	reKgSuffix     = regexp.MustCompile(`(?i)[-–]\s*\d+(?:\.\d+)?\s*kg`)
	reTrailingDash = regexp.MustCompile(`\s*-\s*$`)
)

var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var thousand = decimal.NewFromInt(1000)

// ParseGramsFromName looks for a per-unit weight written into a product name:
// "(per 250 gms)", "(500g)", "200 grams", "1 kg".
func ParseGramsFromName(name string) (float64, bool) {
	if name == "" {
		return 0, false
	}
	for _, rx := range reGramsInName {
		if m := rx.FindStringSubmatch(name); m != nil && m[1] != "" {
			if g, err := strconv.ParseFloat(m[1], 64); err == nil {
				return g, true
			}
		}
	}
	if m := reKgInName.FindStringSubmatch(name); m != nil && m[1] != "" {
		if kg, err := strconv.ParseFloat(m[1], 64); err == nil {
			return kg * 1000, true
		}
	}
	return 0, false
}

// ParseQtyCellToGrams reads the mapping table quantity cell. Unit-only cells
// ("6 pcs", "1 bunch") report false so the caller treats the product as unit-based.
func ParseQtyCellToGrams(cell string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(cell))
	if s == "" || s == "—" || s == "-" {
		return 0, false
	}
	if isUnitOnlyQty(s) {
		return 0, false
	}
	m := reFirstNum.FindString(s)
	if m == "" {
		return 0, false
	}
	first, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	switch {
	case strings.Contains(s, "kg"):
		return first * 1000, true
	case reWeightWord.MatchString(s):
		return first, true
	}
	return 0, false
}

func isUnitOnlyQty(s string) bool {
	return reUnitWord.MatchString(s) && !reWeightWord.MatchString(s)
}

// FmtWeight renders grams for people: "999 gms", "1 kg", "1.5 kg".
func FmtWeight(grams float64) string {
	return fmtWeightDecimal(decimal.NewFromFloat(grams))
}

func fmtWeightDecimal(g decimal.Decimal) string {
	if g.IsZero() {
		return "0 gms"
	}
	if g.LessThan(thousand) {
		return fmt.Sprintf("%d gms", g.Round(0).IntPart())
	}
	return g.Div(thousand).Round(2).String() + " kg"
}

// MakeSUnitString multiplies a per-unit pattern by the ordered count:
// 4 x "6 pcs" -> "24 pcs", 2 x "one bunch" -> "2 bunch".
func MakeSUnitString(units float64, pattern string) string {
	p := strings.TrimSpace(pattern)
	if p == "" {
		if units != 0 {
			return formatNumber(units)
		}
		return ""
	}
	p = reLeadingWordNum.ReplaceAllStringFunc(p, func(w string) string {
		return strconv.Itoa(wordNumbers[strings.ToLower(w)])
	})

	m := reQtyAndWord.FindStringSubmatch(p)
	if m == nil {
		return p
	}
	per, err := decimal.NewFromString(m[1])
	if err != nil || per.IsZero() || units == 0 {
		return p
	}
	total := per.Mul(decimal.NewFromFloat(units))
	return total.String() + " " + strings.TrimSpace(m[2])
}

// CleanDisplayName replaces whatever weight the canonical name carries with the
// per-unit weight actually used, e.g. "Spinach (250 gms) - 1kg" -> "Spinach (250 gms)".
func CleanDisplayName(name string, perUnitGrams *float64) string {
	if isMicrogreensSubscription(name) {
		return name
	}
	var g float64
	if perUnitGrams != nil {
		g = *perUnitGrams
	}
	if g <= 0 {
		if v, ok := ParseGramsFromName(name); ok {
			g = v
		}
	}
	if g <= 0 {
		return name
	}
	s := reWeightParen.ReplaceAllString(name, "")
	s = reKgSuffix.ReplaceAllString(s, "")
	s = collapseSpaces(s)
	s = strings.TrimSpace(reTrailingDash.ReplaceAllString(s, ""))
	return fmt.Sprintf("%s (%s)", s, FmtWeight(g))
}

// Microgreens subscriptions are sold per box no matter what weight the name mentions.
func isMicrogreensSubscription(name string) bool {
	n := Normalize(name)
	return strings.Contains(n, "microgreen") && strings.Contains(n, "subscription")
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
