package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"netwatch/internal/crypto"
	"netwatch/internal/handlers"
	"netwatch/internal/storage"
)

func NewRouter(store storage.Storage, cipher *crypto.VaultCipher) *gin.Engine {
	r := gin.Default()

	h := handlers.New(store, cipher)

	api := r.Group("/api")

	// DEVICES
	api.GET("/devices", h.ListDevices)
	api.GET("/devices/:id", h.GetDevice)
	api.POST("/devices", h.CreateDevice)
	api.PUT("/devices/:id", h.UpdateDevice)
	api.DELETE("/devices/:id", h.DeleteDevice)

	// METRICS (append-only: no update/delete)
	api.GET("/bandwidth-metrics", h.ListBandwidthMetrics)
	api.POST("/bandwidth-metrics", h.CreateBandwidthMetric)
	api.GET("/system-metrics/latest", h.LatestSystemMetric)
	api.GET("/system-metrics/history", h.SystemMetricHistory)
	api.POST("/system-metrics", h.CreateSystemMetric)
	api.POST("/generate-mock-data", h.GenerateMockData)

	// SECURITY EVENTS
	api.GET("/security-events", h.ListSecurityEvents)
	api.GET("/security-events/:id", h.GetSecurityEvent)
	api.POST("/security-events", h.CreateSecurityEvent)
	api.PUT("/security-events/:id", h.UpdateSecurityEvent)
	api.DELETE("/security-events/:id", h.DeleteSecurityEvent)

	// IDS RULES
	api.GET("/ids-rules", h.ListIdsRules)
	api.GET("/ids-rules/:id", h.GetIdsRule)
	api.POST("/ids-rules", h.CreateIdsRule)
	api.PUT("/ids-rules/:id", h.UpdateIdsRule)
	api.DELETE("/ids-rules/:id", h.DeleteIdsRule)

	// PASSWORD VAULTS
	api.GET("/password-vaults", h.ListPasswordVaults)
	api.GET("/password-vaults/:id", h.GetPasswordVault)
	api.POST("/password-vaults", h.CreatePasswordVault)
	api.PUT("/password-vaults/:id", h.UpdatePasswordVault)
	api.DELETE("/password-vaults/:id", h.DeletePasswordVault)

	// PASSWORD ENTRIES
	api.GET("/password-entries", h.ListPasswordEntries)
	api.GET("/password-entries/:id", h.GetPasswordEntry)
	api.POST("/password-entries", h.CreatePasswordEntry)
	api.PUT("/password-entries/:id", h.UpdatePasswordEntry)
	api.DELETE("/password-entries/:id", h.DeletePasswordEntry)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
