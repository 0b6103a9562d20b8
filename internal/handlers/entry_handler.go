package handlers

import (
	"errors"
	"strconv"

	"github.com/daybook-app/daybook-server/internal/dates"
	"github.com/daybook-app/daybook-server/internal/dto"
	"github.com/daybook-app/daybook-server/internal/services"
	"github.com/daybook-app/daybook-server/internal/userctx"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EntryHandler struct {
	entryService *services.EntryService
}

func NewEntryHandler(entryService *services.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// entryError maps entry service errors onto HTTP statuses shared by the
// create/update/delete handlers.
func entryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEntryNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrEntryExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrEntryImmutable):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrInvalidMood),
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

func (h *EntryHandler) Create(c *fiber.Ctx) error {
	userID, err := userctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	entry, err := h.entryService.Create(userID, &req)
	if err != nil {
		return entryError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewEntryResponse(entry))
}

func (h *EntryHandler) Update(c *fiber.Ctx) error {
	userID, err := userctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid entry id",
		})
	}

	var req dto.UpdateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	entry, err := h.entryService.Update(userID, entryID, &req)
	if err != nil {
		return entryError(c, err)
	}

	return c.JSON(dto.NewEntryResponse(entry))
}

func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	userID, err := userctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid entry id",
		})
	}

	if err := h.entryService.Delete(userID, entryID); err != nil {
		return entryError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Entry deleted successfully"})
}

func (h *EntryHandler) Get(c *fiber.Ctx) error {
	userID, err := userctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid entry id",
		})
	}

	entry, err := h.entryService.Get(userID, entryID)
	if err != nil {
		return entryError(c, err)
	}

	return c.JSON(dto.NewEntryResponse(entry))
}

func (h *EntryHandler) GetByDate(c *fiber.Ctx) error {
	userID, err := userctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	entry, err := h.entryService.GetByDate(userID, c.Params("date"))
	if err != nil {
		return entryError(c, err)
	}

	return c.JSON(dto.NewEntryResponse(entry))
}

func (h *EntryHandler) List(c *fiber.Ctx) error {
	userID, err := userctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	entries, err := h.entryService.List(userID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return entryError(c, err)
	}

	return c.JSON(dto.NewEntryResponses(entries))
}

func (h *EntryHandler) Streak(c *fiber.Ctx) error {
	userID, err := userctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	streak, err := h.entryService.Streak(userID)
	if err != nil {
		return entryError(c, err)
	}

	return c.JSON(streak)
}

func (h *EntryHandler) HeatMap(c *fiber.Ctx) error {
	userID, err := userctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	days := services.DefaultHeatMapDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "days must be a positive integer",
			})
		}
		days = parsed
	}

	points, err := h.entryService.HeatMap(userID, days)
	if err != nil {
		return entryError(c, err)
	}

	return c.JSON(points)
}

func (h *EntryHandler) AverageMood(c *fiber.Ctx) error {
	userID, err := userctx.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	averages, err := h.entryService.AverageMood(userID)
	if err != nil {
		return entryError(c, err)
	}

	return c.JSON(averages)
}
