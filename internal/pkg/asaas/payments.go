package asaas

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AldeiaHub/Aldeia/app/models"
)

const dateLayout = "2006-01-02"

// PaymentIntent is the outcome of the subscription-first, payment-fallback
// creation flow. Exactly one of Subscription/Payment is set, matching
// IsRecurring.
type PaymentIntent struct {
	IsRecurring  bool
	Subscription *Subscription
	Payment      *Payment
	Environment  string
}

// ExternalID returns the provider id of the created object.
func (pi *PaymentIntent) ExternalID() string {
	if pi.IsRecurring && pi.Subscription != nil {
		return pi.Subscription.ID
	}
	if pi.Payment != nil {
		return pi.Payment.ID
	}
	return ""
}

// providerCycle maps a local billing cycle to the provider's cycle code.
// 6-monthly has no mapped provider cycle and bills as MONTHLY; the local
// expiry date still covers the full six months.
func providerCycle(cycle string) string {
	switch models.NormalizeBillingCycle(cycle) {
	case models.BillingCycleYearly:
		return "YEARLY"
	default:
		return "MONTHLY"
	}
}

// nextDueDate computes the first charge date for a billing cycle.
func nextDueDate(cycle string, now time.Time) time.Time {
	if models.NormalizeBillingCycle(cycle) == models.BillingCycleSemiannual {
		return now.Add(180 * 24 * time.Hour)
	}
	return now.Add(24 * time.Hour)
}

// CreateSubscription creates a recurring subscription with the provider.
func (c *Client) CreateSubscription(ctx context.Context, in *SubscriptionRequest) (*Subscription, string, error) {
	var created Subscription
	environment, err := c.do(ctx, http.MethodPost, "/subscriptions", nil, in, &created)
	if err != nil {
		return nil, environment, err
	}
	if strings.TrimSpace(created.ID) == "" {
		return nil, environment, errors.New("asaas: subscription create returned empty id")
	}
	return &created, environment, nil
}

// CreatePayment creates a one-time payment with the provider.
func (c *Client) CreatePayment(ctx context.Context, in *PaymentRequest) (*Payment, string, error) {
	var created Payment
	environment, err := c.do(ctx, http.MethodPost, "/payments", nil, in, &created)
	if err != nil {
		return nil, environment, err
	}
	if strings.TrimSpace(created.ID) == "" {
		return nil, environment, errors.New("asaas: payment create returned empty id")
	}
	return &created, environment, nil
}

// GetPayment fetches a payment by provider id.
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, string, error) {
	var payment Payment
	environment, err := c.do(ctx, http.MethodGet, "/payments/"+url.PathEscape(id), nil, nil, &payment)
	if err != nil {
		return nil, environment, err
	}
	return &payment, environment, nil
}

// ListSubscriptionPayments lists the payments of a subscription via the
// subscription-scoped endpoint.
func (c *Client) ListSubscriptionPayments(ctx context.Context, subscriptionID string) ([]Payment, string, error) {
	var list paymentListResponse
	environment, err := c.do(ctx, http.MethodGet, "/subscriptions/"+url.PathEscape(subscriptionID)+"/payments", nil, nil, &list)
	if err != nil {
		return nil, environment, err
	}
	return list.Data, environment, nil
}

// ListPaymentsBySubscription lists payments filtered by subscription id via
// the payments collection. Alternate endpoint shape for accounts where the
// subscription-scoped route yields nothing.
func (c *Client) ListPaymentsBySubscription(ctx context.Context, subscriptionID string) ([]Payment, string, error) {
	query := url.Values{}
	query.Set("subscription", subscriptionID)

	var list paymentListResponse
	environment, err := c.do(ctx, http.MethodGet, "/payments", query, nil, &list)
	if err != nil {
		return nil, environment, err
	}
	return list.Data, environment, nil
}

// CreatePaymentIntent attempts a recurring subscription and falls back to a
// one-time payment with equivalent terms on any subscription-creation
// failure. Getting the customer to a working checkout takes priority over
// insisting on a recurring artifact.
func (c *Client) CreatePaymentIntent(ctx context.Context, customerID string, plan *models.Plan, cycle, method, externalRef string) (*PaymentIntent, error) {
	value := plan.PriceFor(cycle)
	description := fmt.Sprintf("%s (%s)", plan.Name, models.NormalizeBillingCycle(cycle))
	now := time.Now()

	subscription, environment, err := c.CreateSubscription(ctx, &SubscriptionRequest{
		Customer:          customerID,
		BillingType:       method,
		Value:             value,
		NextDueDate:       nextDueDate(cycle, now).Format(dateLayout),
		Cycle:             providerCycle(cycle),
		Description:       description,
		ExternalReference: externalRef,
	})
	if err == nil {
		return &PaymentIntent{IsRecurring: true, Subscription: subscription, Environment: environment}, nil
	}
	log.Printf("asaas: subscription create failed, falling back to single payment: %v", err)

	payment, environment, err := c.CreatePayment(ctx, &PaymentRequest{
		Customer:          customerID,
		BillingType:       method,
		Value:             value,
		DueDate:           now.Add(24 * time.Hour).Format(dateLayout),
		Description:       description,
		ExternalReference: externalRef,
	})
	if err != nil {
		return nil, err
	}
	return &PaymentIntent{IsRecurring: false, Payment: payment, Environment: environment}, nil
}
