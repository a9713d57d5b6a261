package handlers

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"netwatch/internal/models"
)

// GenerateMockData fabricates the last 24 hours of metric history: one
// bandwidth sample per online/warning device and one system snapshot per
// hour. The per-row inserts are not wrapped in a transaction; a failure
// mid-loop returns 500 and leaves already-written rows in place.
func (h *Handler) GenerateMockData(c *gin.Context) {
	ctx := c.Request.Context()

	devices, err := h.store.Devices(ctx)
	if err != nil {
		log.Printf("generate mock data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate mock data"})
		return
	}

	now := time.Now()
	for i := 0; i < 24; i++ {
		ts := now.Add(-time.Duration(i) * time.Hour)

		for _, d := range devices {
			if d.Status != models.StatusOnline && d.Status != models.StatusWarning {
				continue
			}
			deviceID := d.ID
			_, err := h.store.CreateBandwidthMetric(ctx, models.BandwidthMetricInput{
				DeviceID:  &deviceID,
				Incoming:  rand.Float64() * 3,
				Outgoing:  rand.Float64() * 2.5,
				Timestamp: &ts,
			})
			if err != nil {
				log.Printf("generate mock data: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate mock data"})
				return
			}
		}

		_, err := h.store.CreateSystemMetric(ctx, models.SystemMetricInput{
			ActiveDevices:  120 + rand.Intn(10),
			TotalBandwidth: 2 + rand.Float64(),
			Warnings:       rand.Intn(5),
			Uptime:         99 + rand.Float64(),
			Timestamp:      &ts,
		})
		if err != nil {
			log.Printf("generate mock data: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate mock data"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mock data generated successfully"})
}
