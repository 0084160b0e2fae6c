package extraction

import "regexp"

type currencyRule struct {
	currency Currency
	pattern  *regexp.Regexp
}

// currencyRules is ordered; the first rule that matches anywhere in the text wins.
var currencyRules = []currencyRule{
	{INR, regexp.MustCompile(`₹|(?i:\bINR\b|\bRs\.?)`)},
	{USD, regexp.MustCompile(`\$|(?i:\bUSD\b)`)},
	{EUR, regexp.MustCompile(`€|(?i:\bEUR\b)`)},
	{GBP, regexp.MustCompile(`£|(?i:\bGBP\b)`)},
	{JPY, regexp.MustCompile(`¥|(?i:\bJPY\b)`)},
}

// reCurrencyMark matches a currency symbol as written next to an amount.
var reCurrencyMark = regexp.MustCompile(`[₹$€£¥]|\bRs\.?`)

// DetectCurrency scans text for currency symbols and codes. It returns
// UnknownCurrency when none are present.
func DetectCurrency(text string) Currency {
	for _, rule := range currencyRules {
		if rule.pattern.MatchString(text) {
			return rule.currency
		}
	}
	return UnknownCurrency
}

// ResolveCurrency is DetectCurrency with the document default applied:
// text that carries amounts but no currency marker is assumed to be INR.
func ResolveCurrency(text string, hasAmounts bool) Currency {
	if c := DetectCurrency(text); c != UnknownCurrency {
		return c
	}
	if hasAmounts {
		return INR
	}
	return UnknownCurrency
}
