package checkout

import (
	"strings"

	"github.com/AldeiaHub/Aldeia/app/models"
	"github.com/AldeiaHub/Aldeia/internal/pkg/asaas"
)

// StoredProfile is the previously persisted customer data used to fill gaps
// in the caller payload. It spans the user record, the billing profile and
// the primary address.
type StoredProfile struct {
	Name          string
	Email         string
	CpfCnpj       string
	Phone         string
	PostalCode    string
	Address       string
	AddressNumber string
	Complement    string
	Province      string
	City          string
	State         string
}

// ResolvedCustomer is the merged, immutable customer record the rest of the
// pipeline works with. Caller-provided structures are never mutated.
type ResolvedCustomer struct {
	Name          string
	Email         string
	CpfCnpj       string
	Phone         string
	PostalCode    string
	Address       string
	AddressNumber string
	Complement    string
	Province      string
	City          string
	State         string
}

// AsProviderCustomer converts the resolved record into the provider's
// customer creation payload.
func (r *ResolvedCustomer) AsProviderCustomer() *asaas.Customer {
	return &asaas.Customer{
		Name:          r.Name,
		Email:         r.Email,
		CpfCnpj:       r.CpfCnpj,
		MobilePhone:   r.Phone,
		PostalCode:    r.PostalCode,
		Address:       r.Address,
		AddressNumber: r.AddressNumber,
		Complement:    r.Complement,
		Province:      r.Province,
		City:          r.City,
		State:         r.State,
	}
}

// requiresPayerTaxID reports whether the payment method needs a
// payer-identifiable instrument. Card payments identify the payer through
// the card itself.
func requiresPayerTaxID(method string) bool {
	switch models.NormalizePaymentMethod(method) {
	case models.PaymentMethodPix, models.PaymentMethodBoleto:
		return true
	default:
		return false
	}
}

func pick(raw, stored string) string {
	if v := strings.TrimSpace(raw); v != "" {
		return v
	}
	return strings.TrimSpace(stored)
}

// ResolveFields merges the caller payload with the stored profile field by
// field: the payload wins, the profile fills the gaps. If any mandatory
// field remains unresolved the whole list of missing names is returned in a
// single MissingDataError so the user fixes everything in one round-trip.
func ResolveFields(in *CustomerInput, stored *StoredProfile, paymentMethod string) (*ResolvedCustomer, error) {
	if in == nil {
		in = &CustomerInput{}
	}
	if stored == nil {
		stored = &StoredProfile{}
	}

	resolved := &ResolvedCustomer{
		Name:          pick(in.Name, stored.Name),
		Email:         pick(in.Email, stored.Email),
		CpfCnpj:       pick(in.CpfCnpj, stored.CpfCnpj),
		Phone:         pick(in.Phone, stored.Phone),
		PostalCode:    pick(in.PostalCode, stored.PostalCode),
		Address:       pick(in.Address, stored.Address),
		AddressNumber: pick(in.AddressNumber, stored.AddressNumber),
		Complement:    pick(in.Complement, stored.Complement),
		Province:      pick(in.Province, stored.Province),
		City:          pick(in.City, stored.City),
		State:         pick(in.State, stored.State),
	}

	mandatory := []struct {
		name  string
		value string
	}{
		{"name", resolved.Name},
		{"email", resolved.Email},
		{"phone", resolved.Phone},
		{"city", resolved.City},
		{"state", resolved.State},
		{"postal_code", resolved.PostalCode},
		{"address", resolved.Address},
		{"address_number", resolved.AddressNumber},
		{"province", resolved.Province},
	}

	var missing []string
	for _, field := range mandatory {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if requiresPayerTaxID(paymentMethod) && resolved.CpfCnpj == "" {
		missing = append(missing, "cpf_cnpj")
	}

	if len(missing) > 0 {
		return nil, &MissingDataError{Fields: missing}
	}
	return resolved, nil
}
