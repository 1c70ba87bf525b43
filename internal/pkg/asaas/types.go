package asaas

import (
	"fmt"
	"strings"
)

// Customer mirrors the provider's customer resource.
type Customer struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	CpfCnpj       string `json:"cpfCnpj,omitempty"`
	MobilePhone   string `json:"mobilePhone,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Address       string `json:"address,omitempty"`
	AddressNumber string `json:"addressNumber,omitempty"`
	Complement    string `json:"complement,omitempty"`
	Province      string `json:"province,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
}

type customerListResponse struct {
	Data       []Customer `json:"data"`
	TotalCount int        `json:"totalCount"`
}

// SubscriptionRequest is the payload for creating a recurring subscription.
type SubscriptionRequest struct {
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	NextDueDate       string  `json:"nextDueDate"`
	Cycle             string  `json:"cycle"`
	Description       string  `json:"description,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`
}

// Subscription is the provider's recurring subscription resource.
type Subscription struct {
	ID                string  `json:"id"`
	Customer          string  `json:"customer"`
	Status            string  `json:"status"`
	Value             float64 `json:"value"`
	Cycle             string  `json:"cycle"`
	NextDueDate       string  `json:"nextDueDate"`
	InvoiceURL        string  `json:"invoiceUrl,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`
}

// PaymentRequest is the payload for creating a one-time payment.
type PaymentRequest struct {
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	DueDate           string  `json:"dueDate"`
	Description       string  `json:"description,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`
}

// Payment is the provider's payment resource (one-time or a cycle charge
// belonging to a subscription).
type Payment struct {
	ID                string  `json:"id"`
	Customer          string  `json:"customer"`
	Subscription      string  `json:"subscription,omitempty"`
	Status            string  `json:"status"`
	Value             float64 `json:"value"`
	DueDate           string  `json:"dueDate"`
	InvoiceURL        string  `json:"invoiceUrl,omitempty"`
	BankSlipURL       string  `json:"bankSlipUrl,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`
}

type paymentListResponse struct {
	Data       []Payment `json:"data"`
	TotalCount int       `json:"totalCount"`
}

const paymentStatusPending = "PENDING"

// ProviderError is one structured error entry from the provider's error body.
type ProviderError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// APIError carries the provider's structured errors verbatim, plus the
// HTTP status and environment that produced them.
type APIError struct {
	StatusCode  int             `json:"-"`
	Environment string          `json:"-"`
	Errors      []ProviderError `json:"errors"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("asaas: request failed with status %d", e.StatusCode)
	}
	descriptions := make([]string, 0, len(e.Errors))
	for _, pe := range e.Errors {
		if d := strings.TrimSpace(pe.Description); d != "" {
			descriptions = append(descriptions, d)
		}
	}
	return "asaas: " + strings.Join(descriptions, "; ")
}
