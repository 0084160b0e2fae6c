package extraction

// Confidence weights.
const (
	weightMerchant = 20
	weightDate     = 15
	weightTotal    = 30
	weightPerItem  = 5
	maxItemsWeight = 25
	maxConfidence  = 100
	// ocrQualityDivisor turns a 0-100 OCR quality hint into a 0-5 bonus.
	ocrQualityDivisor = 20
)

// Confidence scores how completely inv was extracted, 0-100. It looks only
// at which fields were found; ocrQuality, when given, adds a small bonus.
func Confidence(inv *ParsedInvoice, ocrQuality *int) int {
	score := 0
	if inv.Merchant != UnknownMerchant {
		score += weightMerchant
	}
	if inv.Date != nil {
		score += weightDate
	}
	if inv.Total != nil {
		score += weightTotal
	}
	score += min(maxItemsWeight, weightPerItem*len(inv.Items))
	if ocrQuality != nil {
		score += *ocrQuality / ocrQualityDivisor
	}
	return min(score, maxConfidence)
}
