package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCustomerInputNilIsValid(t *testing.T) {
	assert.NoError(t, ValidateCustomerInput(nil))
}

func TestValidateCustomerInputAcceptsValidPayload(t *testing.T) {
	assert.NoError(t, ValidateCustomerInput(&CustomerInput{
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
	}))
}

func TestValidateCustomerInputAcceptsEmptyFields(t *testing.T) {
	// Required-ness is decided after the stored profile is merged in.
	assert.NoError(t, ValidateCustomerInput(&CustomerInput{}))
}

func TestValidateCustomerInputEnumeratesAllViolations(t *testing.T) {
	err := ValidateCustomerInput(&CustomerInput{
		Name:       "X",
		Email:      "not-an-email",
		CpfCnpj:    "123",
		Phone:      "99",
		PostalCode: "abcde",
		State:      "SAO",
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	for _, field := range []string{"name", "email", "cpf_cnpj", "phone", "postal_code", "state"} {
		assert.Contains(t, vErr.Fields, field)
	}
	assert.Len(t, vErr.Fields, 6)
	assert.Equal(t, "must be 11 or 14 digits", vErr.Fields["cpf_cnpj"])
	assert.Equal(t, "must be exactly 2 characters", vErr.Fields["state"])
}

func TestValidateCustomerInputCpfCnpjLengths(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{value: "12345678901", ok: true},
		{value: "12345678901234", ok: true},
		{value: "123456789012", ok: false},
		{value: "123.456.789-01", ok: false},
	}

	for _, tt := range tests {
		err := ValidateCustomerInput(&CustomerInput{CpfCnpj: tt.value})
		if tt.ok {
			assert.NoError(t, err, "cpf_cnpj %q", tt.value)
		} else {
			assert.Error(t, err, "cpf_cnpj %q", tt.value)
		}
	}
}

func TestValidateCustomerInputPostalCodeFormats(t *testing.T) {
	assert.NoError(t, ValidateCustomerInput(&CustomerInput{PostalCode: "01310-100"}))
	assert.NoError(t, ValidateCustomerInput(&CustomerInput{PostalCode: "01310100"}))
	assert.Error(t, ValidateCustomerInput(&CustomerInput{PostalCode: "0131010"}))
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	vErr := &ValidationError{Fields: map[string]string{
		"phone": "must be 10 or 11 digits",
		"email": "must be a valid email address",
	}}
	assert.Equal(t, "invalid fields: email: must be a valid email address, phone: must be 10 or 11 digits", vErr.Error())
}

func TestMissingDataErrorMessage(t *testing.T) {
	err := &MissingDataError{Fields: []string{"name", "cpf_cnpj"}}
	assert.Equal(t, "missing required fields: name, cpf_cnpj", err.Error())
	var target *MissingDataError
	assert.True(t, errors.As(error(err), &target))
}
