package handlers

import (
	"copymill/internal/dto"
	"copymill/internal/models"
	"copymill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenerationHandler struct {
	genService   *service.GenerationService
	styleService *service.StyleService
	logger       *zap.Logger
}

func NewGenerationHandler(genService *service.GenerationService, styleService *service.StyleService, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{
		genService:   genService,
		styleService: styleService,
		logger:       logger,
	}
}

func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid company ID",
		})
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	item, err := h.genService.Generate(c.Context(), companyID, userID, models.ContentCategory(req.Category), req.Brief)
	if err != nil {
		h.logger.Error("Generation failed", zap.Error(err))
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(contentResponse(item))
}

func (h *GenerationHandler) Regenerate(c *fiber.Ctx) error {
	contentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content ID",
		})
	}

	var req dto.RegenerateRequest
	if err := c.BodyParser(&req); err != nil {
		req.Brief = nil
	}

	item, err := h.genService.Regenerate(c.Context(), contentID, req.Brief)
	if err != nil {
		h.logger.Error("Regeneration failed", zap.Error(err))
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(contentResponse(item))
}

func (h *GenerationHandler) Approve(c *fiber.Ctx) error {
	contentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content ID",
		})
	}

	item, err := h.genService.Approve(c.Context(), contentID)
	if err != nil {
		h.logger.Error("Approve failed", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(contentResponse(item))
}

func (h *GenerationHandler) Reject(c *fiber.Ctx) error {
	contentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content ID",
		})
	}

	var req dto.RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Feedback == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Feedback is required",
		})
	}

	item, err := h.genService.Reject(c.Context(), contentID, req.Feedback, models.LessonSeverity(req.Severity))
	if err != nil {
		h.logger.Error("Reject failed", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(contentResponse(item))
}

func (h *GenerationHandler) AnalyzeStyle(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid company ID",
		})
	}

	var req dto.AnalyzeStyleRequest
	_ = c.BodyParser(&req)
	var userID *uuid.UUID
	if req.UserID != "" {
		if parsed, err := uuid.Parse(req.UserID); err == nil {
			userID = &parsed
		}
	}

	profile, err := h.styleService.AnalyzeStyle(c.Context(), companyID, userID)
	if err != nil {
		h.logger.Error("Style analysis failed", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(dto.StyleProfileResponse{
		CompanyID:        profile.CompanyID.String(),
		Tone:             profile.Tone,
		AvgWordCount:     profile.AvgWordCount,
		Vocabulary:       profile.Vocabulary,
		CommonPhrases:    profile.CommonPhrases,
		PreferredFormats: profile.PreferredFormats,
		Summary:          profile.Summary,
	})
}
