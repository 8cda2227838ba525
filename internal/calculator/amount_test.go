package calculator

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "dot_separator", input: "12.50", want: "12.5", wantOK: true},
		{name: "comma_separator", input: "12,50", want: "12.5", wantOK: true},
		{name: "integer", input: "100", want: "100", wantOK: true},
		{name: "surrounding_space", input: "  7,25 ", want: "7.25", wantOK: true},
		{name: "leading_dot", input: ".5", want: "0.5", wantOK: true},
		{name: "negative", input: "-3", want: "-3", wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "blank", input: "   ", wantOK: false},
		{name: "letters", input: "abc", wantOK: false},
		{name: "trailing_garbage", input: "12abc", wantOK: false},
		{name: "two_commas", input: "1,2,3", wantOK: false},
		{name: "nan", input: "NaN", wantOK: false},
		{name: "infinity", input: "Infinity", wantOK: false},
		{name: "overflows_float", input: "1e400", wantOK: false},
		{name: "huge_exponent", input: "1e99999999", wantOK: false},
		{name: "huge_negative_exponent", input: "-2e99999999", wantOK: false},
		{name: "many_integer_digits", input: "1" + strings.Repeat("0", 400), wantOK: false},
		{name: "largest_finite", input: "1e308", want: "1e308", wantOK: true},
		{name: "underflows_to_zero", input: "1e-99999999", want: "0", wantOK: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parse(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.True(t, got.Equal(dec(tc.want)), "got %s", got)
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestParseOrZero(t *testing.T) {
	assert.True(t, ParseOrZero("oops").IsZero())
	assert.True(t, ParseOrZero("3,3").Equal(dec("3.3")))
}

func TestRound2(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"2.675", "2.68"},
		{"97.7915", "97.79"},
		{"51.129188", "51.13"},
		{"-1.005", "-1.01"},
		{"-0.004", "0"},
		{"0", "0"},
		{"10", "10"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.True(t, Round2(dec(tc.input)).Equal(dec(tc.want)), "got %s", Round2(dec(tc.input)))
		})
	}
}

func TestRound2_Idempotent(t *testing.T) {
	for _, s := range []string{"0.005", "1.23456", "-7.895", "195.583", "1e-9", "123456789.987654321"} {
		once := Round2(dec(s))
		assert.True(t, Round2(once).Equal(once), "value %s", s)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "97.79", Format(dec("97.79")))
	assert.Equal(t, "50.00", Format(dec("50")))
	assert.Equal(t, "-20.00", Format(dec("-20")))
	assert.Equal(t, "0.00", Format(decimal.Zero))
}
