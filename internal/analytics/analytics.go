// Package analytics computes aggregate statistics over the full call log.
// Every computation is a fresh, stateless pass over a snapshot; there is no
// incremental or cached state.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/acmelogistics/inbound-api/internal/models"
)

// Fallback keys for records missing the corresponding field.
const (
	unknownOrigin    = "Unknown"
	unknownDate      = "Unknown"
	neutralSentiment = "Neutral"
	otherTag         = "Other"
)

// Breakdown is a total/closed pair for one grouping key.
type Breakdown struct {
	Total  int `json:"total"`
	Closed int `json:"closed"`
}

// Report is the aggregate view returned by GET /call_analytics.
// Map key order carries no meaning; consumers sort if they need order.
type Report struct {
	TotalCalls            int                  `json:"total_calls"`
	TotalClosed           int                  `json:"total_closed"`
	SuccessRate           float64              `json:"success_rate"`
	RateEfficiencyRatio   float64              `json:"rate_efficiency_ratio"`
	AvgNegotiationTurns   float64              `json:"avg_negotiation_turns"`
	OriginSuccess         map[string]Breakdown `json:"origin_success"`
	SentimentDistribution map[string]int       `json:"sentiment_distribution"`
	TagDistribution       map[string]int       `json:"tag_distribution"`
	Evolution             map[string]Breakdown `json:"evolution"`
}

var hundred = decimal.NewFromInt(100)

// Compute builds the report from a snapshot of the call log.
// ok is false when the log is empty and there is nothing to report.
func Compute(calls []models.CallLog) (report Report, ok bool) {
	if len(calls) == 0 {
		return Report{}, false
	}

	report = Report{
		TotalCalls:            len(calls),
		OriginSuccess:         make(map[string]Breakdown),
		SentimentDistribution: make(map[string]int),
		TagDistribution:       make(map[string]int),
		Evolution:             make(map[string]Breakdown),
	}

	var (
		sumOriginal decimal.Decimal
		sumFinal    decimal.Decimal
		sumTurns    int64
	)

	for _, c := range calls {
		closed := bool(c.FlagClosedDeal)
		if closed {
			report.TotalClosed++
		}

		if c.OriginalRate.Valid {
			sumOriginal = sumOriginal.Add(c.OriginalRate.Decimal)
		}
		if c.FinalRate.Valid {
			sumFinal = sumFinal.Add(c.FinalRate.Decimal)
		}
		if c.Turns != nil {
			sumTurns += int64(*c.Turns)
		}

		origin := c.Origin
		if origin == "" {
			origin = unknownOrigin
		}
		bump(report.OriginSuccess, origin, closed)

		sentiment := c.CarrierSentiment
		if sentiment == "" {
			sentiment = neutralSentiment
		}
		report.SentimentDistribution[sentiment]++

		tag := c.CallTag
		if tag == "" {
			tag = otherTag
		}
		report.TagDistribution[tag]++

		date := unknownDate
		if !c.DateTime.IsZero() {
			date = c.DateTime.UTC().Format("2006-01-02")
		}
		bump(report.Evolution, date, closed)
	}

	total := decimal.NewFromInt(int64(report.TotalCalls))

	report.SuccessRate = decimal.NewFromInt(int64(report.TotalClosed)).
		Mul(hundred).Div(total).Round(2).InexactFloat64()

	if !sumOriginal.IsZero() {
		report.RateEfficiencyRatio = sumFinal.Mul(hundred).Div(sumOriginal).
			Round(2).InexactFloat64()
	}

	report.AvgNegotiationTurns = decimal.NewFromInt(sumTurns).
		Div(total).Round(1).InexactFloat64()

	return report, true
}

func bump(m map[string]Breakdown, key string, closed bool) {
	b := m[key]
	b.Total++
	if closed {
		b.Closed++
	}
	m[key] = b
}
