package handlers

import (
	"copymill/internal/dto"
	"copymill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContentHandler struct {
	genService *service.GenerationService
	logger     *zap.Logger
}

func NewContentHandler(genService *service.GenerationService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		genService: genService,
		logger:     logger,
	}
}

// History returns one page of the unified, time-ordered history across all
// nine content categories.
func (h *ContentHandler) History(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "company_id query parameter is required",
		})
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	items, total, err := h.genService.GetHistory(c.Context(), companyID, page, limit)
	if err != nil {
		h.logger.Error("Failed to load content history", zap.Error(err))
		return respondError(c, err)
	}

	responses := make([]dto.ContentResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, contentResponse(item))
	}

	return c.JSON(dto.HistoryResponse{
		Items: responses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *ContentHandler) GetByID(c *fiber.Ctx) error {
	contentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content ID",
		})
	}

	item, err := h.genService.GetByID(c.Context(), contentID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(contentResponse(item))
}
