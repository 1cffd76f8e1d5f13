package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "drops parens and punctuation", in: "Tomato (Desi) - 500g", want: "tomato 500g"},
		{name: "empty input", in: "", want: ""},
		{name: "only parenthesised text", in: "(seasonal)", want: ""},
		{name: "parens removed without a gap", in: "Tomato(Desi)Red", want: "tomatored"},
		{name: "collapses whitespace", in: "  Red   Onion \t", want: "red onion"},
		{name: "strips accents", in: "Crème Fraîche", want: "creme fraiche"},
		{name: "decimal point becomes a space", in: "Potato 1.5kg", want: "potato 1 5kg"},
		{name: "non latin script vanishes", in: "टमाटर", want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestBaseNormalize(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare gram suffix", in: "Tomato (Desi) - 500g", want: "tomato"},
		{name: "per weight phrase and approx", in: "Onion per 500 gms approx", want: "onion"},
		{name: "unit count phrase", in: "Coriander 1 bunch", want: "coriander"},
		{name: "pieces", in: "Coconut 6 pcs", want: "coconut"},
		{name: "decimal kilograms", in: "Potato 1.5 kg", want: "potato"},
		{name: "kilo word", in: "Rice 2 kilos", want: "rice"},
		{name: "plain name unchanged", in: "Cherry Tomato Red", want: "cherry tomato red"},
		{name: "number without unit kept", in: "Seven 7 Up", want: "seven 7 up"},
		{name: "empty", in: "", want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BaseNormalize(tc.in))
		})
	}
}

func TestCanonicalizeVendor(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "Anderi", want: "Andheri"},
		{in: "andheri", want: "Andheri"},
		{in: "Andheri West", want: "Andheri West"},
		{in: "Anderi West", want: "Andheri"},
		{in: "Dadar hindi Hindi", want: "Dadar"},
		{in: "Anderi hindi", want: "Andheri"},
		{in: "", want: UnknownVendor},
		{in: "   ", want: UnknownVendor},
		{in: "hindi", want: UnknownVendor},
		{in: "Dadar Hindi", want: "Dadar"},
		{in: "  Vashi ", want: "Vashi"},
		{in: "Hindi  Market  Road", want: "Market Road"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, CanonicalizeVendor(tc.in))
		})
	}
}

func TestCoreTokens(t *testing.T) {
	got := coreTokens("red onion of 2 large red")
	assert.Equal(t, tokenSet{"red": {}, "onion": {}, "large": {}}, got)
	assert.Empty(t, coreTokens(""))
}
