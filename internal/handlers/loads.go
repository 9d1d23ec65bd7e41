package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acmelogistics/inbound-api/internal/models"
	"github.com/acmelogistics/inbound-api/internal/store"
)

// RegisterLoadRoutes registers the load-registry endpoints.
//
// GET  /loads           — multi-field search (case-insensitive exact match, AND)
// GET  /loads/:load_id  — lookup by identifier
// POST /loads           — duplicate-safe creation, validated at the boundary
func RegisterLoadRoutes(r gin.IRoutes, loads store.LoadStore) {
	r.GET("/loads", func(c *gin.Context) {
		// Empty query values mean "no filter", not an empty-string match.
		f := store.LoadFilter{
			Origin:        c.Query("origin"),
			Destination:   c.Query("destination"),
			EquipmentType: c.Query("equipment_type"),
		}

		results, err := loads.Search(c.Request.Context(), f)
		if err != nil {
			if errors.Is(err, store.ErrNoMatchingLoads) {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "No matching loads found for the provided search criteria.",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load store read failed"})
			return
		}
		c.JSON(http.StatusOK, results)
	})

	r.GET("/loads/:load_id", func(c *gin.Context) {
		loadID := c.Param("load_id")

		load, err := loads.GetByID(c.Request.Context(), loadID)
		if err != nil {
			if errors.Is(err, store.ErrLoadNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"error": fmt.Sprintf("Load with load_id %s not found", loadID),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load store read failed"})
			return
		}
		c.JSON(http.StatusOK, load)
	})

	r.POST("/loads", func(c *gin.Context) {
		var load models.Load
		if err := c.ShouldBindJSON(&load); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid JSON payload"})
			return
		}

		// Reject before any state mutation; invalid loads are never stored.
		if err := load.Validate(); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		total, err := loads.Create(c.Request.Context(), load)
		if err != nil {
			if errors.Is(err, store.ErrDuplicateLoad) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("The load ID %s already exists in the system.", load.LoadID),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load store write failed"})
			return
		}

		c.JSON(http.StatusCreated, models.MessageResponse{
			Message: fmt.Sprintf("Load with load_id %s received successfully. Total loads: %d", load.LoadID, total),
		})
	})
}
