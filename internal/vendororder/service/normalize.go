package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UnknownVendor is the vendor key used when a row names no vendor at all.
const UnknownVendor = "Unknown"

// Units recognised inside product names (used for both stripping and classification).
const (
	weightUnitWord = `g|gms?|grams?|gm|kg|kgs?|kilo|kilos?`
	countUnitWord  = `units?|unit|pcs?|pieces?|piece|bunch(?:es)?|head(?:s)?|pack|packs`
)

var (
	reParens   = regexp.MustCompile(`\(.*?\)`)
	reNonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

	// "per 500 gms", "2 kg", "6 pcs", "approx". Normalize has already turned "1.5" into
	// "1 5", so the fraction may follow a space.
	rePerWeight = regexp.MustCompile(`\bper\s+\d+(?:[.\s]\d+)?\s*(?:` + weightUnitWord + `)\b`)
	reWeight    = regexp.MustCompile(`\b\d+(?:[.\s]\d+)?\s*(?:` + weightUnitWord + `)\b`)
	reCount     = regexp.MustCompile(`\b\d+(?:[.\s]\d+)?\s*(?:` + countUnitWord + `)\b`)
	reApprox    = regexp.MustCompile(`\bapprox\b`)

	reHindiMarker = regexp.MustCompile(`(?i)\bhindi\b`)
)

// é -> e before the ASCII filter drops it
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, drops parenthesised segments and punctuation, and collapses spaces.
// "Tomato (Desi) - 500g" -> "tomato 500g".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	out = reParens.ReplaceAllString(out, "")
	out = reNonAlnum.ReplaceAllString(out, " ")
	return collapseSpaces(out)
}

// BaseNormalize is Normalize without packaging quantities, so "Tomato 500g" and
// "Tomato (per 1 kg)" compare equal.
func BaseNormalize(s string) string {
	n := Normalize(s)
	if n == "" {
		return ""
	}
	n = rePerWeight.ReplaceAllString(n, " ")
	n = reWeight.ReplaceAllString(n, " ")
	n = reCount.ReplaceAllString(n, " ")
	n = reApprox.ReplaceAllString(n, " ")
	return collapseSpaces(n)
}

// CanonicalizeVendor maps a vendor cell to its grouping key. The "hindi" marker some
// rows carry is dropped and the usual Andheri misspellings fold into one spelling.
func CanonicalizeVendor(v string) string {
	t := strings.TrimSpace(v)
	if t == "" {
		return UnknownVendor
	}
	t = collapseSpaces(reHindiMarker.ReplaceAllString(t, " "))

	lt := strings.ToLower(t)
	if lt == "anderi" || lt == "andheri" || strings.HasPrefix(lt, "ander") {
		return "Andheri"
	}
	if t == "" {
		return UnknownVendor
	}
	return t
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type tokenSet map[string]struct{}

// coreTokens splits a normalized name into its distinct tokens longer than two bytes.
func coreTokens(s string) tokenSet {
	set := make(tokenSet)
	for _, t := range strings.Split(s, " ") {
		if len(t) > 2 {
			set[t] = struct{}{}
		}
	}
	return set
}
