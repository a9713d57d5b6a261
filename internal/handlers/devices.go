package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"netwatch/internal/models"
)

func (h *Handler) ListDevices(c *gin.Context) {
	devices, err := h.store.Devices(c.Request.Context())
	if err != nil {
		log.Printf("list devices: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch devices"})
		return
	}
	c.JSON(http.StatusOK, devices)
}

func (h *Handler) GetDevice(c *gin.Context) {
	id, ok := parseID(c, "device")
	if !ok {
		return
	}
	device, err := h.store.Device(c.Request.Context(), id)
	if err != nil {
		log.Printf("get device %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch device"})
		return
	}
	if device == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Device not found"})
		return
	}
	c.JSON(http.StatusOK, device)
}

func (h *Handler) CreateDevice(c *gin.Context) {
	var in models.DeviceInput
	if !bindInput(c, &in, "device") {
		return
	}
	device, err := h.store.CreateDevice(c.Request.Context(), in)
	if err != nil {
		log.Printf("create device: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create device"})
		return
	}
	c.JSON(http.StatusCreated, device)
}

func (h *Handler) UpdateDevice(c *gin.Context) {
	id, ok := parseID(c, "device")
	if !ok {
		return
	}
	var in models.DeviceUpdate
	if !bindInput(c, &in, "device") {
		return
	}
	device, err := h.store.UpdateDevice(c.Request.Context(), id, in)
	if err != nil {
		log.Printf("update device %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update device"})
		return
	}
	if device == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Device not found"})
		return
	}
	c.JSON(http.StatusOK, device)
}

func (h *Handler) DeleteDevice(c *gin.Context) {
	id, ok := parseID(c, "device")
	if !ok {
		return
	}
	deleted, err := h.store.DeleteDevice(c.Request.Context(), id)
	if err != nil {
		log.Printf("delete device %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete device"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Device not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
