package services

import "github.com/diewo77/go-photodesk/internal/models"

// QuoteTotals sums quote prices by outcome for the list page footer.
type QuoteTotals struct {
	Open     float64 // draft and sent
	Accepted float64
	Rejected float64
}

// ComputeQuoteTotals calculates the totals of the given quotes.
func ComputeQuoteTotals(quotes []models.Quote) QuoteTotals {
	var t QuoteTotals
	for _, q := range quotes {
		switch q.Status {
		case models.QuoteDraft, models.QuoteSent:
			t.Open += q.Price
		case models.QuoteAccepted:
			t.Accepted += q.Price
		case models.QuoteRejected:
			t.Rejected += q.Price
		}
	}
	return t
}
