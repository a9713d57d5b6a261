package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"netwatch/internal/models"
)

func (h *Handler) ListSecurityEvents(c *gin.Context) {
	limit, ok := limitQuery(c)
	if !ok {
		return
	}
	events, err := h.store.SecurityEvents(c.Request.Context(), c.Query("status"), limit)
	if err != nil {
		log.Printf("list security events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch security events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) GetSecurityEvent(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}
	event, err := h.store.SecurityEvent(c.Request.Context(), id)
	if err != nil {
		log.Printf("get security event %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch security event"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Security event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) CreateSecurityEvent(c *gin.Context) {
	var in models.SecurityEventInput
	if !bindInput(c, &in, "event") {
		return
	}
	event, err := h.store.CreateSecurityEvent(c.Request.Context(), in)
	if err != nil {
		log.Printf("create security event: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create security event"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *Handler) UpdateSecurityEvent(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}
	var in models.SecurityEventUpdate
	if !bindInput(c, &in, "event") {
		return
	}
	event, err := h.store.UpdateSecurityEvent(c.Request.Context(), id, in)
	if err != nil {
		log.Printf("update security event %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update security event"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Security event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) DeleteSecurityEvent(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}
	deleted, err := h.store.DeleteSecurityEvent(c.Request.Context(), id)
	if err != nil {
		log.Printf("delete security event %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete security event"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Security event not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
