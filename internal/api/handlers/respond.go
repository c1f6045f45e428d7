package handlers

import (
	"errors"

	"copymill/internal/dto"
	"copymill/internal/models"
	"copymill/internal/repository"
	"copymill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondError maps pipeline errors onto HTTP statuses. Malformed model
// output gets its own message: the user should retry generation, not read
// garbage.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrInvalidCategory):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content category",
		})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	case errors.Is(err, service.ErrMalformedResponse):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "The model returned unusable output, please retry generation",
		})
	}

	var providerErr *service.ProviderError
	if errors.As(err, &providerErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Generation service is unavailable, please retry",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal error",
	})
}

func contentResponse(item *models.ContentItem) dto.ContentResponse {
	resp := dto.ContentResponse{
		ID:             item.ID.String(),
		CompanyID:      item.CompanyID.String(),
		Category:       string(item.Category),
		Output:         item.Output,
		Status:         string(item.Status),
		Feedback:       item.Feedback,
		RevisionNumber: item.RevisionNumber,
		CreatedAt:      item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      item.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if item.RevisionOf != nil {
		revisionOf := item.RevisionOf.String()
		resp.RevisionOf = &revisionOf
	}
	return resp
}
