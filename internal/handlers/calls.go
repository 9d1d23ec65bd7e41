package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acmelogistics/inbound-api/internal/models"
	"github.com/acmelogistics/inbound-api/internal/store"
)

// RegisterCallRoutes registers the call-log ingestion endpoints.
//
// POST /bulk_log_call_extraction is idempotent: records whose run_id already
// exists are silently skipped. The reported processed_count is the number of
// records submitted, including skipped duplicates.
func RegisterCallRoutes(r gin.IRoutes, calls store.CallLogStore, log *zap.Logger) {
	r.POST("/log_call_extraction", func(c *gin.Context) {
		var call models.CallLog
		if err := c.ShouldBindJSON(&call); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}
		if err := call.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		call.Normalize()

		if err := calls.InsertCall(c.Request.Context(), &call); err != nil {
			// Persistence failures (duplicate run_id included) surface as a
			// client error rather than a raw store exception.
			log.Warn("call log insert rejected",
				zap.String("run_id", call.RunID),
				zap.Error(err),
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("could not save call log: %v", err)})
			return
		}

		c.JSON(http.StatusOK, models.LogCallResponse{Status: "saved", RunID: call.RunID})
	})

	r.POST("/bulk_log_call_extraction", func(c *gin.Context) {
		var batch []models.CallLog
		if err := c.ShouldBindJSON(&batch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}
		for i := range batch {
			if err := batch[i].Validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("record %d: %v", i, err),
				})
				return
			}
			batch[i].Normalize()
		}

		inserted, err := calls.BulkInsertCalls(c.Request.Context(), batch)
		if err != nil {
			log.Error("bulk call log insert failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save call logs"})
			return
		}
		log.Info("bulk call logs processed",
			zap.Int("submitted", len(batch)),
			zap.Int("inserted", inserted),
		)

		c.JSON(http.StatusCreated, models.BulkLogResponse{
			Message:        fmt.Sprintf("Processed %d call logs", len(batch)),
			ProcessedCount: len(batch),
		})
	})

	r.GET("/all_call_extractions", func(c *gin.Context) {
		list, err := calls.ListCalls(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "call log read failed"})
			return
		}
		if list == nil {
			list = []models.CallLog{}
		}
		c.JSON(http.StatusOK, list)
	})
}
