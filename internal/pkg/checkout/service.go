package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/AldeiaHub/Aldeia/app/models"
	"github.com/AldeiaHub/Aldeia/internal/pkg/asaas"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Provider is the billing provider surface the pipeline depends on.
// *asaas.Client implements it.
type Provider interface {
	ResolveCustomer(ctx context.Context, in *asaas.Customer) (customerID string, environment string, err error)
	CreatePaymentIntent(ctx context.Context, customerID string, plan *models.Plan, cycle, method, externalRef string) (*asaas.PaymentIntent, error)
	ResolveCheckoutURL(ctx context.Context, intent *asaas.PaymentIntent) (string, error)
}

// Service runs the checkout pipeline: validate, resolve fields, resolve the
// provider customer, create a payment intent, resolve the checkout URL, then
// persist local state. Everything up to the URL is fail-fast; local
// persistence and audit logging are fail-soft because the provider-side
// payment already exists by then.
type Service struct {
	provider Provider
	store    Store
}

func NewService(provider Provider, store Store) *Service {
	return &Service{provider: provider, store: store}
}

func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(asaas.NewClientFromEnv(), NewStore(db))
}

// Checkout turns a (plan, billing cycle, customer) request into a payable
// checkout URL. userID is zero for guest checkouts, which skip local
// persistence until signup.
func (s *Service) Checkout(ctx context.Context, userID uint, req *CheckoutRequest) (*Result, error) {
	cycle := models.NormalizeBillingCycle(req.BillingCycle)
	method := models.NormalizePaymentMethod(req.PaymentMethod)

	requestErrors := map[string]string{}
	if cycle == "" {
		requestErrors["billing_cycle"] = "must be one of monthly, yearly, 6-monthly"
	}
	if method == "" {
		requestErrors["payment_method"] = "must be one of PIX, BOLETO, CREDIT_CARD"
	}
	if len(requestErrors) > 0 {
		return nil, &ValidationError{Fields: requestErrors}
	}

	plan, err := s.store.GetPlan(req.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Fields: map[string]string{"plan_id": "unknown or inactive plan"}}
		}
		return nil, fmt.Errorf("loading plan %d: %w", req.PlanID, err)
	}

	if err := ValidateCustomerInput(req.Customer); err != nil {
		return nil, err
	}

	var stored *StoredProfile
	if userID != 0 {
		stored, err = s.store.GetStoredProfile(userID)
		if err != nil {
			// Stored data is a fallback source, not a hard dependency.
			log.Printf("checkout: stored profile lookup failed for user %d: %v", userID, err)
			stored = nil
		}
	}

	resolved, err := ResolveFields(req.Customer, stored, method)
	if err != nil {
		return nil, err
	}

	customerID, customerEnv, err := s.provider.ResolveCustomer(ctx, resolved.AsProviderCustomer())
	if err != nil {
		return nil, err
	}

	intent, err := s.provider.CreatePaymentIntent(ctx, customerID, plan, cycle, method, uuid.NewString())
	if err != nil {
		return nil, err
	}

	checkoutURL, err := s.provider.ResolveCheckoutURL(ctx, intent)
	if err != nil {
		return nil, err
	}

	if userID != 0 {
		s.persistLocalState(userID, plan, cycle, intent, resolved)
	}

	subscriptionType := SubscriptionTypeSingle
	if intent.IsRecurring {
		subscriptionType = SubscriptionTypeRecurring
	}
	environment := intent.Environment
	if environment == "" {
		environment = customerEnv
	}

	return &Result{
		CheckoutURL:      checkoutURL,
		PaymentID:        intent.ExternalID(),
		SubscriptionType: subscriptionType,
		Environment:      environment,
	}, nil
}

// expiryFor computes the local record's expiry offset for a billing cycle.
func expiryFor(cycle string, now time.Time) time.Time {
	switch cycle {
	case models.BillingCycleYearly:
		return now.Add(365 * 24 * time.Hour)
	case models.BillingCycleSemiannual:
		return now.Add(180 * 24 * time.Hour)
	default:
		return now.Add(30 * 24 * time.Hour)
	}
}

// persistLocalState writes the pending subscription record and the
// best-effort side records. The provider-side payment is the source of
// truth at this point; every write here is attempt-and-log, never throw.
func (s *Service) persistLocalState(userID uint, plan *models.Plan, cycle string, intent *asaas.PaymentIntent, resolved *ResolvedCustomer) {
	expiresAt := expiryFor(cycle, time.Now())
	attempt := func(what string, fn func() error) bool {
		if err := fn(); err != nil {
			log.Printf("checkout: %s failed for user %d: %v", what, userID, err)
			return false
		}
		return true
	}
	logActivity := func(action, details string) {
		attempt("activity append", func() error {
			return s.store.AppendActivity(&models.ActivityLog{
				UserID:  userID,
				Action:  action,
				Details: details,
			})
		})
	}

	if attempt("subscription record write", func() error {
		return s.store.CreateSubscription(&models.Subscription{
			UserID:            userID,
			PlanID:            plan.ID,
			BillingCycle:      cycle,
			Status:            models.SubscriptionStatusPending,
			PaymentProvider:   models.PaymentProviderAsaas,
			ExternalPaymentID: intent.ExternalID(),
			IsRecurring:       intent.IsRecurring,
			ExpiresAt:         &expiresAt,
		})
	}) {
		logActivity(models.ActivitySubscriptionCreated, fmt.Sprintf("plan %d, external id %s", plan.ID, intent.ExternalID()))
	}

	if attempt("profile backfill", func() error {
		return s.store.BackfillProfile(userID, resolved)
	}) {
		logActivity(models.ActivityProfileUpdated, "checkout profile backfill")
	}

	if attempt("address write", func() error {
		return s.store.CreatePrimaryAddress(userID, resolved)
	}) {
		logActivity(models.ActivityAddressAdded, "primary billing address")
	}

	if attempt("contact write", func() error {
		return s.store.CreatePrimaryContact(userID, resolved)
	}) {
		logActivity(models.ActivityContactAdded, "primary phone contact")
	}
}
