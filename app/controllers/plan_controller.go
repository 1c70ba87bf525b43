package controllers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AldeiaHub/Aldeia/app/repository"
	"github.com/AldeiaHub/Aldeia/internal/pkg/cache"
)

const (
	planCacheKey = "plans:active"
	planCacheTTL = 60 * time.Second
)

// HandleListPlans returns the active plan catalog. The list is hot on the
// pricing page, so it is served from cache when possible.
func HandleListPlans(c *fiber.Ctx) error {
	if cached, err := cache.Get(planCacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	repo := repository.GetGlobalFactory().GetPlanRepository()
	plans, err := repo.ListActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load plans"})
	}

	body, err := json.Marshal(fiber.Map{"plans": plans})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to encode plans"})
	}

	if err := cache.Set(planCacheKey, string(body), planCacheTTL); err != nil {
		log.Printf("plan cache write failed: %v", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
