package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/pkg/apperrors"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator checks request shapes before they reach the store
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with the catalog's custom rules
func NewValidator() *Validator {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return IsSlug(fl.Field().String())
	})
	v.RegisterValidation("petstatus", func(fl validator.FieldLevel) bool {
		return models.ValidPetStatuses[models.PetStatus(fl.Field().String())]
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

// Struct validates s and returns a VALIDATION_ERROR carrying every failed field
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Validation(err.Error(), nil)
	}

	list := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		list = append(list, toValidationError(fe))
	}
	return apperrors.Validation(summarize(list), list)
}

// ValidatePetInput validates a new pet body
func (v *Validator) ValidatePetInput(in *models.CreatePetInput) error {
	if in == nil {
		return apperrors.Validation("request body is required", nil)
	}
	return v.Struct(in)
}

// ValidatePetUpdate validates a partial update body. A commonName that is
// present must not be empty; omitempty alone would let "" through.
func (v *Validator) ValidatePetUpdate(in *models.UpdatePetInput) error {
	if in == nil {
		return apperrors.Validation("request body is required", nil)
	}
	if err := v.Struct(in); err != nil {
		return err
	}
	if in.CommonName != nil && strings.TrimSpace(*in.CommonName) == "" {
		list := []ValidationError{{Field: "commonName", Message: "commonName must not be blank", Value: *in.CommonName}}
		return apperrors.Validation(summarize(list), list)
	}
	return nil
}

// ValidateComment validates a new comment body
func (v *Validator) ValidateComment(in *models.CreateCommentInput) error {
	if in == nil {
		return apperrors.Validation("request body is required", nil)
	}
	return v.Struct(in)
}

// IsSlug reports whether s is kebab-case (lowercase letters, numbers, hyphens)
func IsSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// IsUUID checks if a string is a valid UUID
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func toValidationError(fe validator.FieldError) ValidationError {
	field := fieldPath(fe.Namespace())
	ve := ValidationError{Field: field}

	switch fe.Tag() {
	case "required":
		ve.Message = field + " is required"
		return ve
	case "notblank":
		ve.Message = field + " must not be blank"
		return ve
	case "slug":
		ve.Message = "slug must be kebab-case (lowercase letters, numbers, hyphens)"
	case "petstatus":
		ve.Message = "invalid status, must be one of: DRAFT, PUBLISHED, ARCHIVED"
	case "oneof":
		ve.Message = fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if isStringKind(fe.Kind()) {
			ve.Message = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		} else {
			ve.Message = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
	case "max":
		if isStringKind(fe.Kind()) {
			ve.Message = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		} else {
			ve.Message = fmt.Sprintf("%s must be at most %s", field, fe.Param())
		}
	default:
		ve.Message = fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}

	ve.Value = fe.Value()
	return ve
}

// fieldPath drops the root struct name: "CreatePetInput.tags[0]" -> "tags[0]"
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func isStringKind(k reflect.Kind) bool {
	return k == reflect.String
}

func summarize(list []ValidationError) string {
	if len(list) == 1 {
		return list[0].Message
	}
	return fmt.Sprintf("%s (and %d more)", list[0].Message, len(list)-1)
}
