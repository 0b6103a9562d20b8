package handlers

import (
	"time"

	"github.com/daybook-app/daybook-server/internal/dto"
	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler serves operational statistics. Queries run against the
// database directly; the numbers are informational and need no
// transactional consistency.
type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	now := time.Now()
	dayAgo := now.Add(-24 * time.Hour)

	var stats dto.AdminStatsResponse
	stats.Timestamp = now.UTC().Format(time.RFC3339)

	if err := h.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return adminError(c, err)
	}
	if err := h.db.Model(&models.User{}).
		Where("created_at > ?", dayAgo).
		Count(&stats.RecentUsers).Error; err != nil {
		return adminError(c, err)
	}
	if err := h.db.Model(&models.Entry{}).
		Distinct("user_id").
		Count(&stats.UsersWithEntries).Error; err != nil {
		return adminError(c, err)
	}
	if err := h.db.Model(&models.Entry{}).Count(&stats.TotalEntries).Error; err != nil {
		return adminError(c, err)
	}

	if err := h.db.Model(&models.Entry{}).
		Select("users.username AS username, COUNT(entries.id) AS entry_count").
		Joins("JOIN users ON users.id = entries.user_id").
		Group("entries.user_id, users.username").
		Order("COUNT(entries.id) DESC").
		Limit(10).
		Scan(&stats.TopUsers).Error; err != nil {
		return adminError(c, err)
	}
	if stats.TopUsers == nil {
		stats.TopUsers = []dto.TopUserStat{}
	}

	if err := h.db.Model(&models.AiQueryUsage{}).Count(&stats.TotalAIQueries).Error; err != nil {
		return adminError(c, err)
	}
	if err := h.db.Model(&models.AiQueryUsage{}).
		Where("query_time > ?", dayAgo).
		Count(&stats.RecentAIQueries).Error; err != nil {
		return adminError(c, err)
	}

	return c.JSON(stats)
}

func adminError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Failed to gather stats",
	})
}
