package handler

import (
	"net/http"

	"github.com/osse101/FrizzlenShop_Go/internal/cache"
	"github.com/osse101/FrizzlenShop_Go/internal/logger"
)

// AdminCacheHandler handles admin cache operations
type AdminCacheHandler struct {
	cache cache.Cache
}

// NewAdminCacheHandler creates a new admin cache handler
func NewAdminCacheHandler(c cache.Cache) *AdminCacheHandler {
	return &AdminCacheHandler{cache: c}
}

// HandleGetCacheStats returns listing cache statistics
// @Summary Get listing cache stats
// @Description Returns cache hit/miss statistics for monitoring (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} cache.Stats
// @Router /api/v1/admin/cache/stats [get]
func (h *AdminCacheHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cache.Stats())
}

// HandleClearCache drops every cached listing
// @Summary Clear listing cache
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/cache [delete]
func (h *AdminCacheHandler) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	h.cache.Clear(r.Context())
	logger.FromContext(r.Context()).Info("Listing cache cleared")
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Cache cleared"})
}
