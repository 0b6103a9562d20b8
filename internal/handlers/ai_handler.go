package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/daybook-app/daybook-server/internal/dates"
	"github.com/daybook-app/daybook-server/internal/dto"
	"github.com/daybook-app/daybook-server/internal/services"
	"github.com/daybook-app/daybook-server/internal/userctx"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func secondsUntil(t time.Time) int {
	secs := int(time.Until(t).Seconds())
	if secs < 1 {
		return 1
	}
	return secs
}

const (
	aiQueryType   = "query"
	aiEnhanceType = "enhance"
)

type AIHandler struct {
	aiService *services.AIService
	rateLimit *services.RateLimitService
}

func NewAIHandler(aiService *services.AIService, rateLimit *services.RateLimitService) *AIHandler {
	return &AIHandler{aiService: aiService, rateLimit: rateLimit}
}

// aiError maps provider failures onto gateway statuses. Overload and
// provider rate limits carry Retry-After so clients back off.
func aiError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrAIOverloaded):
		c.Set(fiber.HeaderRetryAfter, "30")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "AI service is overloaded, try again shortly",
		})
	case errors.Is(err, services.ErrAIRateLimited):
		c.Set(fiber.HeaderRetryAfter, "60")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "AI provider rate limit exceeded, try again shortly",
		})
	case errors.Is(err, services.ErrAIUnauthorized):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "AI service rejected the server's API key",
		})
	case errors.Is(err, services.ErrAIUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "AI service unavailable",
		})
	case errors.Is(err, services.ErrQuestionEmpty),
		errors.Is(err, services.ErrContentRequired),
		errors.Is(err, dates.ErrInvalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

// checkQuota rejects the request with 429 when the user's hourly AI
// quota is spent. Returns true when the request may proceed.
func (h *AIHandler) checkQuota(c *fiber.Ctx, userID uuid.UUID, queryType string) (bool, error) {
	status, err := h.rateLimit.Check(userID, queryType)
	if err != nil {
		return false, c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	if !status.Allowed {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secondsUntil(status.ResetTime)))
		return false, c.Status(fiber.StatusTooManyRequests).JSON(dto.AIUsageResponse{
			Remaining: status.Remaining,
			Limit:     status.Limit,
			ResetTime: status.ResetTime,
		})
	}
	return true, nil
}

func (h *AIHandler) Query(c *fiber.Ctx) error {
	userID, err := userctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	ok, resp := h.checkQuota(c, userID, aiQueryType)
	if !ok {
		return resp
	}

	var req dto.AIQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.aiService.Query(userID, &req)
	if err != nil {
		return aiError(c, err)
	}

	if err := h.rateLimit.Record(userID, aiQueryType); err != nil {
		return aiError(c, err)
	}

	return c.JSON(result)
}

func (h *AIHandler) Enhance(c *fiber.Ctx) error {
	userID, err := userctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	ok, resp := h.checkQuota(c, userID, aiEnhanceType)
	if !ok {
		return resp
	}

	var req dto.EnhanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.aiService.Enhance(userID, &req)
	if err != nil {
		return aiError(c, err)
	}

	if err := h.rateLimit.Record(userID, aiEnhanceType); err != nil {
		return aiError(c, err)
	}

	return c.JSON(result)
}

func (h *AIHandler) Usage(c *fiber.Ctx) error {
	userID, err := userctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	status, err := h.rateLimit.Check(userID, aiQueryType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.AIUsageResponse{
		Remaining: status.Remaining,
		Limit:     status.Limit,
		ResetTime: status.ResetTime,
	})
}

func (h *AIHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.aiService.TestConnection())
}
