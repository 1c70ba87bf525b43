package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AldeiaHub/Aldeia/internal/pkg/asaas"
	"github.com/AldeiaHub/Aldeia/internal/pkg/checkout"
	"github.com/AldeiaHub/Aldeia/internal/pkg/database"
	"github.com/AldeiaHub/Aldeia/internal/pkg/usercontext"
)

const checkoutTimeout = 30 * time.Second

// checkoutLinkUnavailableMessage is the terminal user-facing message when no
// actionable checkout URL could be resolved. The payment may still exist on
// the provider side, so the user is sent to their email instead of a retry.
const checkoutLinkUnavailableMessage = "We could not generate your checkout link. Please check your email for the invoice or contact support."

// HandleCheckout runs the checkout pipeline for an authenticated user or a
// guest and returns the payable checkout URL.
func HandleCheckout(c *fiber.Ctx) error {
	var req checkout.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	userCtx := usercontext.GetUserContext(c)

	svc := checkout.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), checkoutTimeout)
	defer cancel()

	result, err := svc.Checkout(ctx, userCtx.UserID, &req)
	if err != nil {
		return writeCheckoutError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"checkout_url":      result.CheckoutURL,
		"payment_id":        result.PaymentID,
		"subscription_type": result.SubscriptionType,
		"environment":       result.Environment,
	})
}

// writeCheckoutError maps pipeline failures to the response contract:
// validation, missing data, provider rejections and unresolvable links are
// 400-class; connectivity and unexpected failures are 500-class.
func writeCheckoutError(c *fiber.Ctx, err error) error {
	var validationErr *checkout.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   validationErr.Error(),
		})
	}

	var missingErr *checkout.MissingDataError
	if errors.As(err, &missingErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   missingErr.Error(),
		})
	}

	var apiErr *asaas.APIError
	if errors.As(err, &apiErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":      false,
			"error":        apiErr.Error(),
			"asaas_errors": apiErr.Errors,
		})
	}

	if errors.Is(err, asaas.ErrCheckoutLinkUnavailable) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   checkoutLinkUnavailableMessage,
		})
	}

	log.Printf("checkout failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "checkout failed, please try again",
	})
}
