package todo

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateCreate checks a create request; a nil result means valid.
func ValidateCreate(req *CreateTodoRequest) []FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

// ValidateUpdate checks an update request; a nil result means valid.
// Only fields present in the body are checked.
func ValidateUpdate(req *UpdateTodoRequest) []FieldError {
	var out []FieldError

	if req.TitleSet {
		switch {
		case req.Title == nil:
			out = append(out, FieldError{Field: "title", Message: "must not be null"})
		default:
			if err := validate.Var(*req.Title, "required,max=200"); err != nil {
				var verrs validator.ValidationErrors
				if errors.As(err, &verrs) && len(verrs) > 0 {
					out = append(out, FieldError{Field: "title", Message: messageFor(verrs[0])})
				}
			}
		}
	}
	if req.CompletedSet && req.Completed == nil {
		out = append(out, FieldError{Field: "completed", Message: "must not be null"})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
