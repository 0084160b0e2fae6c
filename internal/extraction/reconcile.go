package extraction

import (
	"math"
	"strconv"
)

// CorrectionReason explains why reconciliation touched the total.
type CorrectionReason string

const (
	ReasonItemsSumMismatch        CorrectionReason = "items_sum_mismatch"
	ReasonMinorRoundingDifference CorrectionReason = "minor_rounding_difference"
	ReasonInferredFromItems       CorrectionReason = "inferred_from_items"
)

// Correction records a change (or, for minor rounding, an observation) made
// to a field. From and To are minor-unit amounts in decimal.
type Correction struct {
	Field  string           `json:"field"`
	From   *string          `json:"from"`
	To     string           `json:"to"`
	Reason CorrectionReason `json:"reason"`
}

// minTolerance is one major currency unit in minor units.
const minTolerance = 100

// Reconciliation is the outcome of comparing a stated total with the items.
type Reconciliation struct {
	ItemsSum       int64
	CorrectedTotal *int64
	Correction     *Correction
	Tolerance      int64
	Difference     int64
}

// ItemsSum adds up what every item contributes, in minor units. The sum
// saturates at the int64 bounds.
func ItemsSum(items []LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum = addClamped(sum, it.Amount())
	}
	return sum
}

// Tolerance is 1% of the total or one currency unit, whichever is larger.
func Tolerance(total int64) int64 {
	return max(abs(total)/100, minTolerance)
}

// Reconcile compares total, which may be nil, against itemsSum.
func Reconcile(total *int64, itemsSum int64) Reconciliation {
	r := Reconciliation{ItemsSum: itemsSum}
	if total == nil {
		if itemsSum > 0 {
			r.CorrectedTotal = &itemsSum
			r.Correction = &Correction{
				Field:  string(FieldTotal),
				To:     formatMinor(itemsSum),
				Reason: ReasonInferredFromItems,
			}
		}
		return r
	}

	stated := *total
	r.Tolerance = Tolerance(stated)
	r.Difference = addClamped(stated, negClamped(itemsSum))
	from := formatMinor(stated)
	switch d := abs(r.Difference); {
	case d > r.Tolerance:
		r.CorrectedTotal = &itemsSum
		r.Correction = &Correction{Field: string(FieldTotal), From: &from, To: formatMinor(itemsSum), Reason: ReasonItemsSumMismatch}
	case d > 0:
		r.CorrectedTotal = &stated
		r.Correction = &Correction{Field: string(FieldTotal), From: &from, To: from, Reason: ReasonMinorRoundingDifference}
	default:
		r.CorrectedTotal = &stated
	}
	return r
}

func formatMinor(v int64) string {
	return strconv.FormatInt(v, 10)
}

func abs(v int64) int64 {
	if v < 0 {
		return negClamped(v)
	}
	return v
}

func negClamped(v int64) int64 {
	if v == math.MinInt64 {
		return math.MaxInt64
	}
	return -v
}

func addClamped(a, b int64) int64 {
	s := a + b
	switch {
	case a > 0 && b > 0 && s < 0:
		return math.MaxInt64
	case a < 0 && b < 0 && s >= 0:
		return math.MinInt64
	}
	return s
}

// mulChecked multiplies a by a positive b, reporting false on overflow.
func mulChecked(a, b int64) (int64, bool) {
	if a > math.MaxInt64/b || a < math.MinInt64/b {
		return 0, false
	}
	return a * b, true
}
