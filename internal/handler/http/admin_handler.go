package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/enrichx/directory-service/internal/domain/errors"
	"github.com/enrichx/directory-service/internal/domain/models"
	"github.com/enrichx/directory-service/internal/handler/http/middleware"
	"github.com/enrichx/directory-service/internal/service"
	"github.com/enrichx/directory-service/internal/utils/logger"
)

// DirectoryService lists and fetches merged directory entries.
type DirectoryService interface {
	ListUsers(ctx context.Context, params models.ListUsersParams) (*models.ListUsersResult, error)
	GetUser(ctx context.Context, id string) (*models.DirectoryEntry, error)
}

// StatsService computes the aggregate user statistics.
type StatsService interface {
	GetStats(ctx context.Context) (*models.UserStats, error)
}

// MutationService applies admin writes across the two stores.
type MutationService interface {
	UpdateUser(ctx context.Context, id string, patch models.ProfilePatch) error
	SetBan(ctx context.Context, id string, until *time.Time) error
}

// AdminHandler handles the admin user-directory API (`/admin/...`).
type AdminHandler struct {
	logger    *zap.Logger
	directory DirectoryService
	stats     StatsService
	mutations MutationService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	logger *zap.Logger,
	directory DirectoryService,
	stats StatsService,
	mutations MutationService,
) *AdminHandler {
	return &AdminHandler{
		logger:    logger.Named("admin_handler"),
		directory: directory,
		stats:     stats,
		mutations: mutations,
	}
}

// audit tags the handler logger with the acting admin's id, taken from the
// auth middleware's context entry. Writes go through it so every mutation
// names who made it.
func (h *AdminHandler) audit(c *gin.Context) *zap.Logger {
	if callerID := c.GetString(middleware.GinContextCallerIDKey); callerID != "" {
		return logger.WithUserID(h.logger, callerID)
	}
	return h.logger
}

// GetStats handles GET /admin/stats.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.GetStats(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, stats)
}

// ListUsers handles GET /admin/users with search, sort and pagination.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	params := models.ListUsersParams{
		Page:      page,
		PageSize:  pageSize,
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", service.DefaultSortField),
		SortOrder: c.DefaultQuery("sortOrder", service.SortDesc),
	}

	result, err := h.directory.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondWithServiceError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, result)
}

// GetUser handles GET /admin/users/:id.
func (h *AdminHandler) GetUser(c *gin.Context) {
	entry, err := h.directory.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, entry)
}

// UpdateUser handles PUT /admin/users/:id. The patch is applied to the
// identity metadata bag and the profile row; see MutationService for the
// partial-failure contract.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request body", errors.CodeInvalidArgument, h.logger)
		return
	}

	if err := h.mutations.UpdateUser(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondWithServiceError(c, err, h.audit(c))
		return
	}
	h.audit(c).Info("User updated", zap.String("target_id", c.Param("id")))
	RespondWithMessage(c, "user updated")
}

// BanRequest is the body of POST /admin/users/:id/ban. A null ban_until
// lifts the ban.
type BanRequest struct {
	BanUntil *time.Time `json:"ban_until"`
}

// BanUser handles POST /admin/users/:id/ban.
func (h *AdminHandler) BanUser(c *gin.Context) {
	var req BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request body", errors.CodeInvalidArgument, h.logger)
		return
	}

	if err := h.mutations.SetBan(c.Request.Context(), c.Param("id"), req.BanUntil); err != nil {
		respondWithServiceError(c, err, h.audit(c))
		return
	}

	if req.BanUntil == nil {
		h.audit(c).Info("User unbanned", zap.String("target_id", c.Param("id")))
		RespondWithMessage(c, "user unbanned")
		return
	}
	h.audit(c).Info("User banned",
		zap.String("target_id", c.Param("id")),
		zap.Time("banned_until", *req.BanUntil),
	)
	RespondWithMessage(c, "user banned")
}

// RegisterAdminRoutes registers the admin routes on an already-guarded
// router group.
func RegisterAdminRoutes(rg *gin.RouterGroup, h *AdminHandler) {
	rg.GET("/stats", h.GetStats)
	rg.GET("/users", h.ListUsers)
	rg.GET("/users/:id", h.GetUser)
	rg.PUT("/users/:id", h.UpdateUser)
	rg.POST("/users/:id/ban", h.BanUser)
}
