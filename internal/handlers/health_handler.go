package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type HealthHandler struct {
	geminiEnabled bool
}

func NewHealthHandler(geminiEnabled bool) *HealthHandler {
	return &HealthHandler{geminiEnabled: geminiEnabled}
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status: "healthy",
		Time:   time.Now().Format(time.RFC3339),
		Gemini: h.geminiEnabled,
	})
}
