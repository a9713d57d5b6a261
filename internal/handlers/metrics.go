package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"netwatch/internal/models"
)

func (h *Handler) ListBandwidthMetrics(c *gin.Context) {
	deviceID, ok := uintQuery(c, "deviceId")
	if !ok {
		return
	}
	limit, ok := limitQuery(c)
	if !ok {
		return
	}
	metrics, err := h.store.BandwidthMetrics(c.Request.Context(), deviceID, limit)
	if err != nil {
		log.Printf("list bandwidth metrics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch bandwidth metrics"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *Handler) CreateBandwidthMetric(c *gin.Context) {
	var in models.BandwidthMetricInput
	if !bindInput(c, &in, "metric") {
		return
	}
	metric, err := h.store.CreateBandwidthMetric(c.Request.Context(), in)
	if err != nil {
		log.Printf("create bandwidth metric: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create bandwidth metric"})
		return
	}
	c.JSON(http.StatusCreated, metric)
}

func (h *Handler) LatestSystemMetric(c *gin.Context) {
	metric, err := h.store.LatestSystemMetric(c.Request.Context())
	if err != nil {
		log.Printf("latest system metric: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch system metrics"})
		return
	}
	if metric == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No system metrics found"})
		return
	}
	c.JSON(http.StatusOK, metric)
}

func (h *Handler) SystemMetricHistory(c *gin.Context) {
	limit, ok := limitQuery(c)
	if !ok {
		return
	}
	metrics, err := h.store.SystemMetricHistory(c.Request.Context(), limit)
	if err != nil {
		log.Printf("system metric history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch system metrics history"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *Handler) CreateSystemMetric(c *gin.Context) {
	var in models.SystemMetricInput
	if !bindInput(c, &in, "metric") {
		return
	}
	metric, err := h.store.CreateSystemMetric(c.Request.Context(), in)
	if err != nil {
		log.Printf("create system metric: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create system metric"})
		return
	}
	c.JSON(http.StatusCreated, metric)
}
