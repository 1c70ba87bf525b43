package checkout

import (
	"fmt"
	"sort"
	"strings"
)

const (
	SubscriptionTypeRecurring = "recurring"
	SubscriptionTypeSingle    = "single"
)

// CheckoutRequest is the inbound checkout payload.
type CheckoutRequest struct {
	PlanID        uint           `json:"plan_id"`
	BillingCycle  string         `json:"billing_cycle"`
	PaymentMethod string         `json:"payment_method"`
	Customer      *CustomerInput `json:"customer,omitempty"`
}

// CustomerInput is the caller-supplied customer payload. All fields are
// optional at this level; required-ness is decided after merging with the
// stored profile. Format rules apply whenever a field is present.
type CustomerInput struct {
	Name          string `json:"name" validate:"omitempty,min=2,max=100"`
	Email         string `json:"email" validate:"omitempty,email,max=255"`
	CpfCnpj       string `json:"cpf_cnpj" validate:"omitempty,cpf_cnpj"`
	Phone         string `json:"phone" validate:"omitempty,br_phone"`
	PostalCode    string `json:"postal_code" validate:"omitempty,br_cep"`
	Address       string `json:"address" validate:"omitempty,min=2,max=150"`
	AddressNumber string `json:"address_number" validate:"omitempty,max=20"`
	Complement    string `json:"complement" validate:"omitempty,max=100"`
	Province      string `json:"province" validate:"omitempty,min=2,max=100"`
	City          string `json:"city" validate:"omitempty,min=2,max=100"`
	State         string `json:"state" validate:"omitempty,len=2"`
}

// Result is the successful outcome of a checkout: a payable URL plus the
// identifiers the caller needs to track the purchase.
type Result struct {
	CheckoutURL      string `json:"checkout_url"`
	PaymentID        string `json:"payment_id"`
	SubscriptionType string `json:"subscription_type"`
	Environment      string `json:"environment"`
}

// ValidationError enumerates every field of the raw payload that failed its
// format rule.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}

// MissingDataError lists every mandatory field that neither the payload nor
// the stored profile supplied.
type MissingDataError struct {
	Fields []string
}

func (e *MissingDataError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
