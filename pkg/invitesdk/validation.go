package invitesdk

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance returns the shared validator, reporting json field names.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks the create request. Returns a map of field names to error
// messages, or nil if all fields are valid.
func (r CreateInvitationRequest) Validate() map[string]string {
	return validateStruct(r)
}

// Validate checks the accept request.
func (r AcceptInvitationRequest) Validate() map[string]string {
	return validateStruct(r)
}

// ValidationError wraps a field map as an *APIError with no status code.
func ValidationError(fields map[string]string) *APIError {
	return &APIError{
		Code:        ErrorCodeValidation,
		Description: describeFields(fields),
		Fields:      fields,
	}
}

func validateStruct(v any) map[string]string {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// Strip the struct name so nested fields read "client_ids[0]".
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		errs[field] = fieldMessage(fe)
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("too short (min %s)", fe.Param())
	case "max":
		return fmt.Sprintf("too long (max %s)", fe.Param())
	default:
		return "invalid"
	}
}

func describeFields(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for field, msg := range fields {
		parts = append(parts, field+": "+msg)
	}
	slices.Sort(parts)
	return strings.Join(parts, "; ")
}
