package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/acmelogistics/inbound-api/internal/models"
)

func newAnalyticsRouter(t *testing.T) (*gin.Engine, *memCallStore) {
	t.Helper()
	m := newMemCallStore()
	r := gin.New()
	RegisterAnalyticsRoutes(r, m)
	return r, m
}

func getAnalytics(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "/call_analytics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCallAnalyticsNoData(t *testing.T) {
	r, _ := newAnalyticsRouter(t)

	w := getAnalytics(t, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp["message"] != "No data available" {
		t.Fatalf("message = %q, want %q", resp["message"], "No data available")
	}
}

func TestCallAnalyticsReport(t *testing.T) {
	r, m := newAnalyticsRouter(t)

	nd := func(v int64) decimal.NullDecimal {
		return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
	}
	m.calls = []models.CallLog{
		{RunID: "r1", Origin: "Chicago, IL", FlagClosedDeal: true,
			OriginalRate: nd(100), FinalRate: nd(90), CarrierSentiment: "positive", CallTag: "booked"},
		{RunID: "r2", Origin: "Chicago, IL",
			OriginalRate: nd(100), FinalRate: nd(0), CarrierSentiment: "negative", CallTag: "rate_too_low"},
		{RunID: "r3", Origin: "Denver, CO", FlagClosedDeal: true,
			OriginalRate: nd(100), FinalRate: nd(110), CarrierSentiment: "positive", CallTag: "booked"},
	}

	w := getAnalytics(t, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var report struct {
		TotalCalls          int     `json:"total_calls"`
		TotalClosed         int     `json:"total_closed"`
		SuccessRate         float64 `json:"success_rate"`
		RateEfficiencyRatio float64 `json:"rate_efficiency_ratio"`
		OriginSuccess       map[string]struct {
			Total  int `json:"total"`
			Closed int `json:"closed"`
		} `json:"origin_success"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("parse report: %v", err)
	}

	if report.TotalCalls != 3 || report.TotalClosed != 2 {
		t.Fatalf("totals = %d/%d, want 3/2", report.TotalCalls, report.TotalClosed)
	}
	if report.SuccessRate != 66.67 {
		t.Fatalf("success_rate = %v, want 66.67", report.SuccessRate)
	}
	if report.RateEfficiencyRatio != 66.67 {
		t.Fatalf("rate_efficiency_ratio = %v, want 66.67", report.RateEfficiencyRatio)
	}
	if b := report.OriginSuccess["Chicago, IL"]; b.Total != 2 || b.Closed != 1 {
		t.Fatalf("Chicago breakdown = %+v, want {2 1}", b)
	}
}
