package asaas

import (
	"context"
	"errors"
	"log"
	"strings"
)

// ErrCheckoutLinkUnavailable means no actionable checkout URL could be found
// after all resolution attempts. Callers must fail closed and direct the
// user to their email instead of handing out a maybe-broken link.
var ErrCheckoutLinkUnavailable = errors.New("asaas: no actionable checkout link found")

// isActionableURL rejects URLs that address a subscription container rather
// than a payable invoice. Container links (path segment "/c/") render a dead
// end for the payer.
func isActionableURL(raw string) bool {
	u := strings.TrimSpace(raw)
	if u == "" {
		return false
	}
	return !strings.Contains(u, "/c/")
}

// checkoutURLOf picks the payer-facing URL of a payment: the invoice page
// when present, the bank slip otherwise. Non-actionable URLs are skipped.
func checkoutURLOf(p *Payment) string {
	if p == nil {
		return ""
	}
	if isActionableURL(p.InvoiceURL) {
		return strings.TrimSpace(p.InvoiceURL)
	}
	if isActionableURL(p.BankSlipURL) {
		return strings.TrimSpace(p.BankSlipURL)
	}
	return ""
}

func firstPendingCheckoutURL(payments []Payment) string {
	for i := range payments {
		if payments[i].Status != paymentStatusPending {
			continue
		}
		if u := checkoutURLOf(&payments[i]); u != "" {
			return u
		}
	}
	return ""
}

// ResolveCheckoutURL determines the payer-facing checkout URL for a payment
// intent. Recurring subscriptions rarely carry a URL directly, so their
// pending payments are queried, first via the subscription-scoped endpoint
// and then via the payments collection. Single payments are re-fetched when
// the create response carried no URL.
func (c *Client) ResolveCheckoutURL(ctx context.Context, intent *PaymentIntent) (string, error) {
	if intent == nil {
		return "", ErrCheckoutLinkUnavailable
	}

	if intent.IsRecurring && intent.Subscription != nil {
		if isActionableURL(intent.Subscription.InvoiceURL) {
			return strings.TrimSpace(intent.Subscription.InvoiceURL), nil
		}

		payments, _, err := c.ListSubscriptionPayments(ctx, intent.Subscription.ID)
		if err != nil {
			log.Printf("asaas: subscription payments lookup failed: %v", err)
		} else if u := firstPendingCheckoutURL(payments); u != "" {
			return u, nil
		}

		payments, _, err = c.ListPaymentsBySubscription(ctx, intent.Subscription.ID)
		if err != nil {
			log.Printf("asaas: payments-by-subscription lookup failed: %v", err)
		} else if u := firstPendingCheckoutURL(payments); u != "" {
			return u, nil
		}

		return "", ErrCheckoutLinkUnavailable
	}

	if intent.Payment != nil {
		if u := checkoutURLOf(intent.Payment); u != "" {
			return u, nil
		}

		fetched, _, err := c.GetPayment(ctx, intent.Payment.ID)
		if err != nil {
			log.Printf("asaas: payment refetch failed: %v", err)
		} else if u := checkoutURLOf(fetched); u != "" {
			return u, nil
		}
	}

	return "", ErrCheckoutLinkUnavailable
}
