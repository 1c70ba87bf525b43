package checkout

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	cpfCnpjPattern = regexp.MustCompile(`^(\d{11}|\d{14})$`)
	phonePattern   = regexp.MustCompile(`^\d{10,11}$`)
	cepPattern     = regexp.MustCompile(`^\d{5}-?\d{3}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Errors are ignored: registration only fails for empty tag names.
	_ = v.RegisterValidation("cpf_cnpj", func(fl validator.FieldLevel) bool {
		return cpfCnpjPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("br_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("br_cep", func(fl validator.FieldLevel) bool {
		return cepPattern.MatchString(fl.Field().String())
	})
	return v
}

// jsonFieldNames maps CustomerInput struct fields to their wire names so
// violations are reported in the caller's vocabulary.
var jsonFieldNames = map[string]string{
	"Name":          "name",
	"Email":         "email",
	"CpfCnpj":       "cpf_cnpj",
	"Phone":         "phone",
	"PostalCode":    "postal_code",
	"Address":       "address",
	"AddressNumber": "address_number",
	"Complement":    "complement",
	"Province":      "province",
	"City":          "city",
	"State":         "state",
}

// ValidateCustomerInput checks format rules on a caller-supplied payload and
// reports every failing field at once. A nil payload is fine: the stored
// profile alone may satisfy the pipeline, and stored data is trusted as
// pre-validated.
func ValidateCustomerInput(in *CustomerInput) error {
	if in == nil {
		return nil
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return err
	}

	fields := make(map[string]string, len(violations))
	for _, violation := range violations {
		name := jsonFieldNames[violation.StructField()]
		if name == "" {
			name = violation.StructField()
		}
		fields[name] = violationMessage(violation)
	}
	return &ValidationError{Fields: fields}
}

func violationMessage(violation validator.FieldError) string {
	switch violation.Tag() {
	case "email":
		return "must be a valid email address"
	case "cpf_cnpj":
		return "must be 11 or 14 digits"
	case "br_phone":
		return "must be 10 or 11 digits"
	case "br_cep":
		return "must match the 00000-000 format"
	case "len":
		return "must be exactly " + violation.Param() + " characters"
	case "min":
		return "must be at least " + violation.Param() + " characters"
	case "max":
		return "must be at most " + violation.Param() + " characters"
	default:
		return "is invalid"
	}
}
