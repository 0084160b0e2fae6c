package extraction

import "regexp"

// totalScanWindow is how many trailing lines may carry the grand total.
const totalScanWindow = 20

var (
	reTotalLabel = regexp.MustCompile(`(?i)total|amount\s+due|balance\s+due|net\s+amount|amount\s+payable`)
	// reIdentifierLine marks lines whose digits are identifiers, not money.
	reIdentifierLine = regexp.MustCompile(`(?i)\b(?:phone|tel|mobile|gstin|fax)\b|\b(?:invoice|order|bill|receipt)\s*(?:no\b|number|#)`)
)

// totalStrategies resolve the stated grand total. Both keep the maximum
// candidate, not the last one seen.
var totalStrategies = []strategy[int64]{
	{name: "labeled_lines", extract: labeledTotal},
	{name: "largest_amount", extract: largestAmount},
}

// labeledTotal scans the trailing lines bottom-up for total labels or
// currency symbols and keeps the largest amount on them.
func labeledTotal(doc *Document) (int64, bool) {
	var best int64
	found := false
	start := max(0, len(doc.Lines)-totalScanWindow)
	for i := len(doc.Lines) - 1; i >= start; i-- {
		line := doc.Lines[i]
		if !reTotalLabel.MatchString(line) && !reCurrencyMark.MatchString(line) {
			continue
		}
		for _, v := range lineAmounts(line) {
			if !found || v > best {
				best, found = v, true
			}
		}
	}
	return best, found
}

// largestAmount is the fallback: the largest amount anywhere in the document.
func largestAmount(doc *Document) (int64, bool) {
	var best int64
	found := false
	for _, line := range doc.Lines {
		for _, v := range lineAmounts(line) {
			if !found || v > best {
				best, found = v, true
			}
		}
	}
	return best, found
}

// lineAmounts parses every numeric token on line. Dates are masked first so
// day numbers and years never count as money; identifier lines yield nothing.
func lineAmounts(line string) []int64 {
	if reIdentifierLine.MatchString(line) {
		return nil
	}
	masked := reDate.ReplaceAllString(line, " ")
	var amounts []int64
	for _, tok := range numericTokens(masked) {
		if v, ok := ParseMinorUnits(tok); ok {
			amounts = append(amounts, v)
		}
	}
	return amounts
}
