package checkout

import (
	"testing"

	"github.com/AldeiaHub/Aldeia/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeStoredProfile() *StoredProfile {
	return &StoredProfile{
		Name:          "Maria Silva",
		Email:         "maria@example.com",
		CpfCnpj:       "12345678901",
		Phone:         "11987654321",
		PostalCode:    "01310-100",
		Address:       "Avenida Paulista",
		AddressNumber: "1000",
		Complement:    "Apto 12",
		Province:      "Bela Vista",
		City:          "Sao Paulo",
		State:         "SP",
	}
}

func TestResolveFieldsPayloadWinsOverStored(t *testing.T) {
	in := &CustomerInput{
		Name:  "Maria S. Oliveira",
		Email: "  maria.nova@example.com  ",
	}

	resolved, err := ResolveFields(in, completeStoredProfile(), models.PaymentMethodPix)
	require.NoError(t, err)
	assert.Equal(t, "Maria S. Oliveira", resolved.Name)
	assert.Equal(t, "maria.nova@example.com", resolved.Email)
	assert.Equal(t, "11987654321", resolved.Phone, "gaps come from the stored profile")
}

func TestResolveFieldsStoredFillsAllGaps(t *testing.T) {
	resolved, err := ResolveFields(nil, completeStoredProfile(), models.PaymentMethodBoleto)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", resolved.Name)
	assert.Equal(t, "12345678901", resolved.CpfCnpj)
}

func TestResolveFieldsReportsEveryMissingField(t *testing.T) {
	_, err := ResolveFields(&CustomerInput{Name: "Maria"}, nil, models.PaymentMethodPix)

	var missing *MissingDataError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{
		"email", "phone", "city", "state", "postal_code",
		"address", "address_number", "province", "cpf_cnpj",
	}, missing.Fields)
}

func TestResolveFieldsTaxIDOnlyForPixAndBoleto(t *testing.T) {
	stored := completeStoredProfile()
	stored.CpfCnpj = ""

	_, err := ResolveFields(nil, stored, models.PaymentMethodPix)
	var missing *MissingDataError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"cpf_cnpj"}, missing.Fields)

	_, err = ResolveFields(nil, stored, models.PaymentMethodBoleto)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"cpf_cnpj"}, missing.Fields)

	_, err = ResolveFields(nil, stored, models.PaymentMethodCreditCard)
	assert.NoError(t, err, "card payments identify the payer through the card")
}

func TestResolveFieldsComplementIsOptional(t *testing.T) {
	stored := completeStoredProfile()
	stored.Complement = ""

	resolved, err := ResolveFields(nil, stored, models.PaymentMethodCreditCard)
	require.NoError(t, err)
	assert.Empty(t, resolved.Complement)
}

func TestResolveFieldsWhitespaceCountsAsEmpty(t *testing.T) {
	stored := completeStoredProfile()
	stored.Phone = "   "

	_, err := ResolveFields(&CustomerInput{Phone: " "}, stored, models.PaymentMethodCreditCard)
	var missing *MissingDataError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"phone"}, missing.Fields)
}

func TestAsProviderCustomerMapsEveryField(t *testing.T) {
	resolved, err := ResolveFields(nil, completeStoredProfile(), models.PaymentMethodPix)
	require.NoError(t, err)

	customer := resolved.AsProviderCustomer()
	assert.Equal(t, "Maria Silva", customer.Name)
	assert.Equal(t, "maria@example.com", customer.Email)
	assert.Equal(t, "12345678901", customer.CpfCnpj)
	assert.Equal(t, "11987654321", customer.MobilePhone)
	assert.Equal(t, "01310-100", customer.PostalCode)
	assert.Equal(t, "Avenida Paulista", customer.Address)
	assert.Equal(t, "1000", customer.AddressNumber)
	assert.Equal(t, "Apto 12", customer.Complement)
	assert.Equal(t, "Bela Vista", customer.Province)
	assert.Equal(t, "Sao Paulo", customer.City)
	assert.Equal(t, "SP", customer.State)
}
