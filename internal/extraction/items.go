package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxItemNameRunes = 120
	// dedupPrefixRunes is how much of a name two rows must share to be duplicates.
	dedupPrefixRunes = 16
)

// priceToken is one amount column of an item row.
const priceToken = `(?:[₹$€£¥]|Rs\.?)?\s?\d[\d.,]*`

var (
	reDigit        = regexp.MustCompile(`\d`)
	reHyphenWrap   = regexp.MustCompile(`\pL-$`)
	// reNonItemRow matches summary, payment and table-header rows.
	reNonItemRow   = regexp.MustCompile(`(?i)total|\b(?:tax|gst|vat|cgst|sgst|igst|cess|discount|balance|amount\s+due|change|cash|tender(?:ed)?|round(?:ing)?\s*off|paid|payable|qty|quantity)\b`)
	reNameCurrency = regexp.MustCompile(`[₹$€£¥]|\bRs\b\.?`)
	reDigitRun     = regexp.MustCompile(`\d+`)
)

type itemRow struct {
	name      string
	quantity  int
	unitPrice *int64
	lineTotal *int64
}

type rowPattern struct {
	name  string
	re    *regexp.Regexp
	build func(m []string) itemRow
}

// rowPatterns are tried most specific first.
var rowPatterns = []rowPattern{
	{
		name: "qty_price_total",
		re:   regexp.MustCompile(`^(.+?)\s+[xX]?(\d{1,4})[xX]?\s+(` + priceToken + `)\s+(` + priceToken + `)$`),
		build: func(m []string) itemRow {
			return itemRow{name: m[1], quantity: atoi(m[2]), unitPrice: parseAmountPtr(m[3]), lineTotal: parseAmountPtr(m[4])}
		},
	},
	{
		name: "price_total",
		re:   regexp.MustCompile(`^(.+?)\s+(` + priceToken + `)\s+(` + priceToken + `)$`),
		build: func(m []string) itemRow {
			return itemRow{name: m[1], quantity: 1, unitPrice: parseAmountPtr(m[2]), lineTotal: parseAmountPtr(m[3])}
		},
	},
	{
		name: "price_only",
		re:   regexp.MustCompile(`^(.+?)\s+(` + priceToken + `)$`),
		build: func(m []string) itemRow {
			price := parseAmountPtr(m[2])
			return itemRow{name: m[1], quantity: 1, unitPrice: price, lineTotal: price}
		},
	},
}

// extractItems detects tabular item rows. Rows that match no pattern, name
// nothing, or repeat an earlier row are dropped.
func extractItems(doc *Document) []itemRow {
	var rows []itemRow
	seen := make(map[string]bool)
	for _, line := range mergeWrappedLines(doc.Lines) {
		row, ok := matchItemRow(line)
		if !ok {
			continue
		}
		key := row.dedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, row)
	}
	return rows
}

func matchItemRow(line string) (itemRow, bool) {
	if reNonItemRow.MatchString(line) || reIdentifierLine.MatchString(line) || reDate.MatchString(line) {
		return itemRow{}, false
	}
	for _, p := range rowPatterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		row := p.build(m)
		row.name = cleanItemName(row.name)
		if !reLetter.MatchString(row.name) {
			return itemRow{}, false
		}
		if !row.normalize() || (row.unitPrice == nil && row.lineTotal == nil) {
			return itemRow{}, false
		}
		return row, true
	}
	return itemRow{}, false
}

// mergeWrappedLines rejoins rows that OCR wrapped: a word ending in a hyphen
// continues on the next line, and a line of words without digits is the name
// half of the row that follows it.
func mergeWrappedLines(lines []string) []string {
	merged := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		cur := lines[i]
		for reHyphenWrap.MatchString(cur) && i+1 < len(lines) {
			i++
			cur = strings.TrimSuffix(cur, "-") + lines[i]
		}
		if reLetter.MatchString(cur) && !reDigit.MatchString(cur) && !reNonItemRow.MatchString(cur) &&
			i+1 < len(lines) && reDigit.MatchString(lines[i+1]) {
			i++
			cur += " " + lines[i]
		}
		merged = append(merged, cur)
	}
	return merged
}

// normalize enforces quantity >= 1 and derives whichever of unit price and
// line total is missing from the other. It reports false when the derived
// line total does not fit in an int64.
func (r *itemRow) normalize() bool {
	if r.quantity < 1 {
		r.quantity = 1
	}
	qty := int64(r.quantity)
	switch {
	case r.unitPrice == nil && r.lineTotal != nil:
		v := floorDiv(*r.lineTotal, qty)
		r.unitPrice = &v
	case r.lineTotal == nil && r.unitPrice != nil:
		v, ok := mulChecked(*r.unitPrice, qty)
		if !ok {
			return false
		}
		r.lineTotal = &v
	}
	return true
}

func (r itemRow) dedupKey() string {
	prefix := strings.ToLower(r.name)
	if utf8.RuneCountInString(prefix) > dedupPrefixRunes {
		prefix = string([]rune(prefix)[:dedupPrefixRunes])
	}
	amount := r.lineTotal
	if amount == nil {
		amount = r.unitPrice
	}
	return prefix + "|" + strconv.FormatInt(*amount, 10)
}

func (r itemRow) lineItem(currency Currency) LineItem {
	return LineItem{
		Name:      r.name,
		Quantity:  r.quantity,
		UnitPrice: amountPtr(r.unitPrice, currency),
		LineTotal: amountPtr(r.lineTotal, currency),
	}
}

// cleanItemName strips currency symbols and digit runs, leaving the
// descriptive remainder of the row.
func cleanItemName(s string) string {
	s = reNameCurrency.ReplaceAllString(s, "")
	s = reDigitRun.ReplaceAllString(s, "")
	s = reSpaces.ReplaceAllString(s, " ")
	s = strings.Trim(s, " :-*@#.,|/")
	if utf8.RuneCountInString(s) > maxItemNameRunes {
		s = strings.TrimSpace(string([]rune(s)[:maxItemNameRunes]))
	}
	return s
}

func parseAmountPtr(tok string) *int64 {
	v, ok := ParseMinorUnits(tok)
	if !ok {
		return nil
	}
	return &v
}

func amountPtr(v *int64, currency Currency) *MonetaryAmount {
	if v == nil {
		return nil
	}
	return &MonetaryAmount{MinorUnits: *v, Currency: currency}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
