package extraction

import (
	"encoding/json"
	"math"
)

// Record statuses.
const (
	StatusValid       = "valid"
	StatusNeedsReview = "needs_review"
)

// LineItem is one purchased good or service.
type LineItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice *MonetaryAmount `json:"unitPrice"`
	LineTotal *MonetaryAmount `json:"lineTotal"`
}

// Amount is what the item contributes to the items sum: the line total when
// known, else unit price times quantity, saturated at the int64 bounds.
func (li LineItem) Amount() int64 {
	if li.LineTotal != nil {
		return li.LineTotal.MinorUnits
	}
	if li.UnitPrice != nil && li.Quantity > 0 {
		if v, ok := mulChecked(li.UnitPrice.MinorUnits, int64(li.Quantity)); ok {
			return v
		}
		if li.UnitPrice.MinorUnits < 0 {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return 0
}

// Provenance names the strategy that produced each field. Empty means the
// field was not found.
type Provenance struct {
	Merchant string `json:"merchant,omitempty"`
	Date     string `json:"date,omitempty"`
	Total    string `json:"total,omitempty"`
}

// ParsedInvoice is the structured record produced from one text input.
type ParsedInvoice struct {
	Merchant string `json:"merchant"`
	// Date is YYYY-MM-DD, or nil when no date validated.
	Date          *string         `json:"date"`
	DateAmbiguous bool            `json:"dateAmbiguous,omitempty"`
	Currency      Currency        `json:"currency"`
	Total         *MonetaryAmount `json:"total"`
	Items         []LineItem      `json:"items"`
	Issues        []Issue         `json:"issues"`
	Corrections   []Correction    `json:"corrections"`
	// CorrectedTotal is nil only when there is neither a stated total nor
	// any item to infer one from.
	CorrectedTotal *MonetaryAmount `json:"correctedTotal,omitempty"`
	Confidence     int             `json:"confidence"`
	Provenance     Provenance      `json:"provenance"`
	RawText        string          `json:"rawText"`
}

// Status is StatusValid when the record has no issues and no corrections.
func (p ParsedInvoice) Status() string {
	if len(p.Issues) == 0 && len(p.Corrections) == 0 {
		return StatusValid
	}
	return StatusNeedsReview
}

// MarshalJSON adds the derived status to the encoded record.
func (p ParsedInvoice) MarshalJSON() ([]byte, error) {
	type record ParsedInvoice
	return json.Marshal(struct {
		record
		Status string `json:"status"`
	}{record(p), p.Status()})
}
