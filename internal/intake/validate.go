package intake

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their json names so errors line up with the wire
	// payload the caller submitted.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type searchInput struct {
	IDCard string `json:"id_card" validate:"required,len=12,number"`
}

// validateNationalID checks the 12-digit national ID format locally. A
// failure here never reaches the network.
func validateNationalID(idCard string) *ValidationError {
	if err := validate.Struct(searchInput{IDCard: idCard}); err != nil {
		return fieldError("id_card", "national ID must be exactly 12 digits")
	}
	return nil
}

// validateDraft checks the new-registration fields.
func validateDraft(d DraftPatient) *ValidationError {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fieldError("draft", "invalid registration details")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = draftMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func draftMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "id_card":
		return "national ID must be exactly 12 digits"
	case "full_name":
		return "full name is required"
	case "date_of_birth":
		if fe.Tag() == "required" {
			return "date of birth is required"
		}
		return "date of birth must be YYYY-MM-DD"
	case "phone":
		return "phone must be exactly 10 digits"
	case "gender":
		return "gender must be male, female or other"
	case "email":
		return "email address is not valid"
	default:
		return "invalid value"
	}
}
