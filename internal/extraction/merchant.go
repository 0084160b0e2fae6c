package extraction

import (
	"regexp"
	"strings"
)

// UnknownMerchant is reported when no line looks like a merchant name.
const UnknownMerchant = "UNKNOWN"

// merchantHeaderLines is how many leading lines may hold the merchant header.
const merchantHeaderLines = 5

var (
	reMerchantStructural = regexp.MustCompile(`(?i)invoice|bill|receipt|gst|tax|total|date|qty|amount|price|phone|address`)
	reMerchantDisallowed = regexp.MustCompile(`[^A-Za-z0-9 &.,'()/-]`)
	reAlphanumeric       = regexp.MustCompile(`[A-Za-z0-9]`)
	reLetter             = regexp.MustCompile(`[A-Za-z]`)
	reSpaces             = regexp.MustCompile(`\s+`)
)

var merchantStrategies = []strategy[string]{
	{name: "header_line", extract: headerLineMerchant},
	{name: "first_letter_line", extract: firstLetterLineMerchant},
}

// headerLineMerchant picks the first of the leading lines that is not a
// structural label and still reads as a name once stray symbols are removed.
func headerLineMerchant(doc *Document) (string, bool) {
	for _, line := range doc.Lines[:min(len(doc.Lines), merchantHeaderLines)] {
		if reMerchantStructural.MatchString(line) {
			continue
		}
		name := cleanMerchant(line)
		if reAlphanumeric.MatchString(name) && len(name) > 2 {
			return name, true
		}
	}
	return "", false
}

func firstLetterLineMerchant(doc *Document) (string, bool) {
	for _, line := range doc.Lines {
		if reLetter.MatchString(line) {
			return line, true
		}
	}
	return "", false
}

func cleanMerchant(line string) string {
	s := reMerchantDisallowed.ReplaceAllString(line, "")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
