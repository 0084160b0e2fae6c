package extraction

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidInput is returned for caller contract violations. Incomplete or
// noisy text is never an error; it shows up as issues on the record.
var ErrInvalidInput = errors.New("invalid input")

type parseOptions struct {
	ocrQuality *int
}

// Option configures a single Parse call.
type Option func(*parseOptions)

// WithOCRQuality supplies the recognizer's 0-100 quality estimate. A nil
// quality is the same as not passing the option.
func WithOCRQuality(quality *int) Option {
	return func(o *parseOptions) {
		o.ocrQuality = quality
	}
}

// Parse turns extracted document text into a ParsedInvoice. It is pure and
// safe for concurrent use.
func Parse(text string, opts ...Option) (*ParsedInvoice, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("parsing invoice text: %w: text is not valid UTF-8", ErrInvalidInput)
	}
	if q := o.ocrQuality; q != nil && (*q < 0 || *q > 100) {
		return nil, fmt.Errorf("parsing invoice text: %w: ocr quality %d outside 0-100", ErrInvalidInput, *q)
	}

	doc := NewDocument(text)
	report := newIssueReport()
	inv := &ParsedInvoice{RawText: text}

	merchant, how, ok := firstMatch(doc, merchantStrategies)
	if !ok {
		merchant = UnknownMerchant
		report.add(IssueMissingMerchant)
	}
	inv.Merchant, inv.Provenance.Merchant = merchant, how

	if date, how, ok := firstMatch(doc, dateStrategies); ok {
		inv.Date = &date.ISO
		inv.DateAmbiguous = date.Ambiguous
		inv.Provenance.Date = how
	} else {
		report.add(IssueMissingDate)
	}

	total, how, totalFound := firstMatch(doc, totalStrategies)
	if totalFound {
		inv.Provenance.Total = how
	} else {
		report.add(IssueMissingTotal)
	}

	rows := extractItems(doc)
	if len(rows) == 0 {
		report.add(IssueNoItems)
	}

	inv.Currency = ResolveCurrency(doc.Text, totalFound || len(rows) > 0)
	inv.Items = make([]LineItem, 0, len(rows))
	for _, row := range rows {
		inv.Items = append(inv.Items, row.lineItem(inv.Currency))
	}

	var stated *int64
	if totalFound {
		stated = &total
		inv.Total = &MonetaryAmount{MinorUnits: total, Currency: inv.Currency}
	}
	reconcileInto(inv, report, stated)

	inv.Issues = report.issues
	inv.Corrections = report.corrections
	inv.Confidence = Confidence(inv, o.ocrQuality)
	return inv, nil
}

// reconcileInto applies the reconciliation outcome to inv.
func reconcileInto(inv *ParsedInvoice, report *issueReport, stated *int64) {
	rec := Reconcile(stated, ItemsSum(inv.Items))
	if rec.CorrectedTotal != nil {
		inv.CorrectedTotal = &MonetaryAmount{MinorUnits: *rec.CorrectedTotal, Currency: inv.Currency}
	}
	if rec.Correction == nil {
		return
	}
	if rec.Correction.Reason == ReasonInferredFromItems {
		report.resolve(IssueMissingTotal)
	}
	report.correct(*rec.Correction)
}
