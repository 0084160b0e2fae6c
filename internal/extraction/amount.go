package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is one of the currency codes the detector recognizes.
type Currency string

const (
	INR             Currency = "INR"
	USD             Currency = "USD"
	EUR             Currency = "EUR"
	GBP             Currency = "GBP"
	JPY             Currency = "JPY"
	UnknownCurrency Currency = "UNKNOWN"
)

var currencySymbols = map[Currency]string{
	INR: "₹",
	USD: "$",
	EUR: "€",
	GBP: "£",
	JPY: "¥",
}

// Symbol returns the display symbol for c, or "" for UNKNOWN.
func (c Currency) Symbol() string {
	return currencySymbols[c]
}

// MonetaryAmount is an exact count of currency minor units (cents, paise).
// Every currency is counted in hundredths, matching ParseMinorUnits.
type MonetaryAmount struct {
	MinorUnits int64    `json:"minorUnits"`
	Currency   Currency `json:"currency"`
}

// String renders the amount for display, e.g. "₹1,234.56" or "-$0.05".
// ParseMinorUnits(a.String()) == a.MinorUnits for every amount.
func (a MonetaryAmount) String() string {
	return FormatMinorUnits(a.MinorUnits, a.Currency)
}

// FormatMinorUnits renders minor units with the currency symbol, thousands
// commas and two decimals.
func FormatMinorUnits(minor int64, currency Currency) string {
	d := decimal.New(minor, -2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + currency.Symbol() + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

var (
	reNonNumeric    = regexp.MustCompile(`[^0-9,.\-]`)
	reSignedDecimal = regexp.MustCompile(`-?(?:\d+(?:\.\d+)?|\.\d+)`)
	reNumericToken  = regexp.MustCompile(`-?\d(?:[\d.,]*\d)?`)
)

// ParseMinorUnits converts a locale-ambiguous numeric token such as
// "₹1,234.56", "1.234,56" or "1234" into minor units. It reports false when
// the token holds no digits or the value does not fit in an int64.
//
// When both '.' and ',' occur, the one appearing last is the decimal point.
// When only one of them occurs it is a thousands separator, unless exactly
// two digits follow its last occurrence.
func ParseMinorUnits(token string) (int64, bool) {
	s := reNonNumeric.ReplaceAllString(token, "")
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		s = withDecimalPointAt(s, max(lastDot, lastComma))
	case lastDot >= 0:
		s = resolveSingleSeparator(s, lastDot)
	case lastComma >= 0:
		s = resolveSingleSeparator(s, lastComma)
	}

	m := reSignedDecimal.FindString(s)
	if m == "" {
		return 0, false
	}
	if strings.HasPrefix(strings.TrimPrefix(m, "-"), ".") {
		m = strings.Replace(m, ".", "0.", 1)
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return 0, false
	}
	minor := d.Shift(2).Round(0)
	if !minor.BigInt().IsInt64() {
		return 0, false
	}
	return minor.IntPart(), true
}

func resolveSingleSeparator(s string, last int) string {
	if digitsAfter(s, last) == 2 {
		return withDecimalPointAt(s, last)
	}
	return withDecimalPointAt(s, -1)
}

// withDecimalPointAt drops every separator except the one at index point,
// which becomes '.'. A negative point drops them all.
func withDecimalPointAt(s string, point int) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case i == point:
			b.WriteByte('.')
		case c == '.' || c == ',':
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func digitsAfter(s string, i int) int {
	n := 0
	for j := i + 1; j < len(s) && s[j] >= '0' && s[j] <= '9'; j++ {
		n++
	}
	return n
}

// numericTokens returns the numeric substrings of line. A leading '-' is
// kept only when it does not join two words, so "Item-2" yields "2".
func numericTokens(line string) []string {
	locs := reNumericToken.FindAllStringIndex(line, -1)
	tokens := make([]string, 0, len(locs))
	for _, loc := range locs {
		start := loc[0]
		if line[start] == '-' && start > 0 && isWordByte(line[start-1]) {
			start++
		}
		tokens = append(tokens, line[start:loc[1]])
	}
	return tokens
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
