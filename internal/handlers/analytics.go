package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acmelogistics/inbound-api/internal/analytics"
	"github.com/acmelogistics/inbound-api/internal/store"
)

// RegisterAnalyticsRoutes registers the reporting endpoint.
//
// GET /call_analytics recomputes the report from the full call log on every
// request; an empty log yields the no-data sentinel instead of a report.
func RegisterAnalyticsRoutes(r gin.IRoutes, calls store.CallLogStore) {
	r.GET("/call_analytics", func(c *gin.Context) {
		list, err := calls.ListCalls(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "call log read failed"})
			return
		}

		report, ok := analytics.Compute(list)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"message": "No data available"})
			return
		}
		c.JSON(http.StatusOK, report)
	})
}
