package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AldeiaHub/Aldeia/app/models"
	"github.com/AldeiaHub/Aldeia/internal/pkg/asaas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProvider struct {
	customerID        string
	customerEnv       string
	customerErr       error
	resolvedCustomers []*asaas.Customer

	intent    *asaas.PaymentIntent
	intentErr error

	checkoutURL string
	urlErr      error
}

func (f *fakeProvider) ResolveCustomer(_ context.Context, in *asaas.Customer) (string, string, error) {
	f.resolvedCustomers = append(f.resolvedCustomers, in)
	return f.customerID, f.customerEnv, f.customerErr
}

func (f *fakeProvider) CreatePaymentIntent(_ context.Context, _ string, _ *models.Plan, _, _, _ string) (*asaas.PaymentIntent, error) {
	return f.intent, f.intentErr
}

func (f *fakeProvider) ResolveCheckoutURL(_ context.Context, _ *asaas.PaymentIntent) (string, error) {
	return f.checkoutURL, f.urlErr
}

type fakeStore struct {
	plan    *models.Plan
	planErr error

	stored    *StoredProfile
	storedErr error

	subscriptions   []*models.Subscription
	subscriptionErr error
	profiles        []*ResolvedCustomer
	addresses       []*ResolvedCustomer
	contacts        []*ResolvedCustomer
	activities      []*models.ActivityLog
}

func (f *fakeStore) GetPlan(uint) (*models.Plan, error) {
	if f.planErr != nil {
		return nil, f.planErr
	}
	return f.plan, nil
}

func (f *fakeStore) GetStoredProfile(uint) (*StoredProfile, error) {
	return f.stored, f.storedErr
}

func (f *fakeStore) CreateSubscription(sub *models.Subscription) error {
	if f.subscriptionErr != nil {
		return f.subscriptionErr
	}
	f.subscriptions = append(f.subscriptions, sub)
	return nil
}

func (f *fakeStore) BackfillProfile(_ uint, resolved *ResolvedCustomer) error {
	f.profiles = append(f.profiles, resolved)
	return nil
}

func (f *fakeStore) CreatePrimaryAddress(_ uint, resolved *ResolvedCustomer) error {
	f.addresses = append(f.addresses, resolved)
	return nil
}

func (f *fakeStore) CreatePrimaryContact(_ uint, resolved *ResolvedCustomer) error {
	f.contacts = append(f.contacts, resolved)
	return nil
}

func (f *fakeStore) AppendActivity(entry *models.ActivityLog) error {
	f.activities = append(f.activities, entry)
	return nil
}

func validRequest() *CheckoutRequest {
	return &CheckoutRequest{
		PlanID:        7,
		BillingCycle:  "monthly",
		PaymentMethod: "PIX",
		Customer: &CustomerInput{
			Name:          "Maria Silva",
			Email:         "maria@example.com",
			CpfCnpj:       "12345678901",
			Phone:         "11987654321",
			PostalCode:    "01310-100",
			Address:       "Avenida Paulista",
			AddressNumber: "1000",
			Province:      "Bela Vista",
			City:          "Sao Paulo",
			State:         "SP",
		},
	}
}

func recurringIntent() *asaas.PaymentIntent {
	return &asaas.PaymentIntent{
		IsRecurring:  true,
		Subscription: &asaas.Subscription{ID: "sub_1"},
		Environment:  "production",
	}
}

func newTestService() (*Service, *fakeProvider, *fakeStore) {
	provider := &fakeProvider{
		customerID:  "cus_1",
		customerEnv: "production",
		intent:      recurringIntent(),
		checkoutURL: "https://www.asaas.com/i/abc",
	}
	store := &fakeStore{
		plan: &models.Plan{ID: 7, Name: "Apoiador", PriceMonthly: 49.90, IsActive: true},
	}
	return NewService(provider, store), provider, store
}

func TestCheckoutHappyPathRecurring(t *testing.T) {
	service, _, store := newTestService()

	result, err := service.Checkout(context.Background(), 42, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://www.asaas.com/i/abc", result.CheckoutURL)
	assert.Equal(t, "sub_1", result.PaymentID)
	assert.Equal(t, SubscriptionTypeRecurring, result.SubscriptionType)
	assert.Equal(t, "production", result.Environment)

	require.Len(t, store.subscriptions, 1)
	sub := store.subscriptions[0]
	assert.Equal(t, uint(42), sub.UserID)
	assert.Equal(t, models.SubscriptionStatusPending, sub.Status)
	assert.Equal(t, "sub_1", sub.ExternalPaymentID)
	assert.True(t, sub.IsRecurring)
	require.NotNil(t, sub.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *sub.ExpiresAt, time.Minute)

	assert.Len(t, store.profiles, 1)
	assert.Len(t, store.addresses, 1)
	assert.Len(t, store.contacts, 1)
	assert.Len(t, store.activities, 4)
}

func TestCheckoutSinglePaymentResult(t *testing.T) {
	service, provider, store := newTestService()
	provider.intent = &asaas.PaymentIntent{
		Payment:     &asaas.Payment{ID: "pay_1"},
		Environment: "sandbox",
	}

	result, err := service.Checkout(context.Background(), 42, validRequest())
	require.NoError(t, err)
	assert.Equal(t, SubscriptionTypeSingle, result.SubscriptionType)
	assert.Equal(t, "pay_1", result.PaymentID)
	assert.Equal(t, "sandbox", result.Environment)

	require.Len(t, store.subscriptions, 1)
	assert.False(t, store.subscriptions[0].IsRecurring)
}

func TestCheckoutRejectsUnknownCycleAndMethod(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Checkout(context.Background(), 42, &CheckoutRequest{
		PlanID:        7,
		BillingCycle:  "weekly",
		PaymentMethod: "CASH",
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "billing_cycle")
	assert.Contains(t, vErr.Fields, "payment_method")
}

func TestCheckoutRejectsUnknownPlan(t *testing.T) {
	service, provider, store := newTestService()
	store.planErr = gorm.ErrRecordNotFound

	_, err := service.Checkout(context.Background(), 42, validRequest())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "plan_id")
	assert.Empty(t, provider.resolvedCustomers, "the provider must not be contacted for an unknown plan")
}

func TestCheckoutMissingFieldsShortCircuitBeforeProvider(t *testing.T) {
	service, provider, _ := newTestService()

	req := validRequest()
	req.Customer = &CustomerInput{Name: "Maria Silva"}

	_, err := service.Checkout(context.Background(), 0, req)

	var missing *MissingDataError
	require.ErrorAs(t, err, &missing)
	assert.Empty(t, provider.resolvedCustomers)
}

func TestCheckoutStoredProfileFillsGuestlessGaps(t *testing.T) {
	service, provider, store := newTestService()
	store.stored = &StoredProfile{
		Name:          "Maria Silva",
		Email:         "maria@example.com",
		CpfCnpj:       "12345678901",
		Phone:         "11987654321",
		PostalCode:    "01310-100",
		Address:       "Avenida Paulista",
		AddressNumber: "1000",
		Province:      "Bela Vista",
		City:          "Sao Paulo",
		State:         "SP",
	}

	req := validRequest()
	req.Customer = nil

	_, err := service.Checkout(context.Background(), 42, req)
	require.NoError(t, err)
	require.Len(t, provider.resolvedCustomers, 1)
	assert.Equal(t, "maria@example.com", provider.resolvedCustomers[0].Email)
}

func TestCheckoutStoredProfileLookupFailureIsTolerated(t *testing.T) {
	service, _, store := newTestService()
	store.storedErr = errors.New("db down")

	// The payload is complete, so the stored profile is not needed.
	_, err := service.Checkout(context.Background(), 42, validRequest())
	assert.NoError(t, err)
}

func TestCheckoutGuestSkipsPersistence(t *testing.T) {
	service, _, store := newTestService()

	result, err := service.Checkout(context.Background(), 0, validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.CheckoutURL)
	assert.Empty(t, store.subscriptions)
	assert.Empty(t, store.activities)
}

func TestCheckoutPersistenceFailureDoesNotFailRequest(t *testing.T) {
	service, _, store := newTestService()
	store.subscriptionErr = errors.New("db down")

	result, err := service.Checkout(context.Background(), 42, validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.CheckoutURL)

	// The side records are still attempted, each with its own activity entry.
	assert.Len(t, store.profiles, 1)
	assert.Len(t, store.activities, 3)
}

func TestCheckoutProviderErrorsPropagate(t *testing.T) {
	service, provider, store := newTestService()
	provider.intentErr = &asaas.APIError{
		StatusCode:  400,
		Environment: "production",
		Errors:      []asaas.ProviderError{{Code: "invalid_value", Description: "value too low"}},
	}

	_, err := service.Checkout(context.Background(), 42, validRequest())

	var apiErr *asaas.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, store.subscriptions, "nothing is persisted when no payment exists")
}

func TestCheckoutUnresolvableURLFailsClosed(t *testing.T) {
	service, provider, store := newTestService()
	provider.checkoutURL = ""
	provider.urlErr = asaas.ErrCheckoutLinkUnavailable

	_, err := service.Checkout(context.Background(), 42, validRequest())
	assert.ErrorIs(t, err, asaas.ErrCheckoutLinkUnavailable)
	assert.Empty(t, store.subscriptions, "persistence happens only after a usable URL exists")
}

func TestExpiryForCycles(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(30*24*time.Hour), expiryFor(models.BillingCycleMonthly, now))
	assert.Equal(t, now.Add(365*24*time.Hour), expiryFor(models.BillingCycleYearly, now))
	assert.Equal(t, now.Add(180*24*time.Hour), expiryFor(models.BillingCycleSemiannual, now))
}
