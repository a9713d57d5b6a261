package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"netwatch/internal/models"
)

func (h *Handler) ListIdsRules(c *gin.Context) {
	rules, err := h.store.IdsRules(c.Request.Context())
	if err != nil {
		log.Printf("list ids rules: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch IDS rules"})
		return
	}
	c.JSON(http.StatusOK, rules)
}

func (h *Handler) GetIdsRule(c *gin.Context) {
	id, ok := parseID(c, "rule")
	if !ok {
		return
	}
	rule, err := h.store.IdsRule(c.Request.Context(), id)
	if err != nil {
		log.Printf("get ids rule %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch IDS rule"})
		return
	}
	if rule == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "IDS rule not found"})
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *Handler) CreateIdsRule(c *gin.Context) {
	var in models.IdsRuleInput
	if !bindInput(c, &in, "rule") {
		return
	}
	rule, err := h.store.CreateIdsRule(c.Request.Context(), in)
	if err != nil {
		log.Printf("create ids rule: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create IDS rule"})
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (h *Handler) UpdateIdsRule(c *gin.Context) {
	id, ok := parseID(c, "rule")
	if !ok {
		return
	}
	var in models.IdsRuleUpdate
	if !bindInput(c, &in, "rule") {
		return
	}
	rule, err := h.store.UpdateIdsRule(c.Request.Context(), id, in)
	if err != nil {
		log.Printf("update ids rule %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update IDS rule"})
		return
	}
	if rule == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "IDS rule not found"})
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *Handler) DeleteIdsRule(c *gin.Context) {
	id, ok := parseID(c, "rule")
	if !ok {
		return
	}
	deleted, err := h.store.DeleteIdsRule(c.Request.Context(), id)
	if err != nil {
		log.Printf("delete ids rule %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete IDS rule"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "IDS rule not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
