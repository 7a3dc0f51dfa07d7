package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errcode"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// permissionPattern accepts any non-empty id without whitespace. Ids are
// usually "<resource>:<action>" but a bare resource such as "dashboard"
// is valid too.
var permissionPattern = regexp.MustCompile(`^\S+$`)

type ValidationError struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func (v *ValidationError) Error() string {
	return v.Message
}

type Validation struct {
	Validator *validator.Validate
}

func NewValidation() *Validation {
	v := validator.New()
	_ = v.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
		return permissionPattern.MatchString(fl.Field().String())
	})

	return &Validation{Validator: v}
}

// ParseAndValidate decodes the JSON body into data and validates it.
func (v *Validation) ParseAndValidate(ctx *fiber.Ctx, data interface{}) error {
	if err := ctx.BodyParser(data); err != nil {
		return errcode.ErrBadRequest
	}
	return v.Validate(data)
}

func (v *Validation) Validate(data interface{}) error {
	err := v.Validator.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("unexpected validation error: %w", err)
	}

	errs := make(map[string][]string)
	for _, fe := range validationErrors {
		jsonTag := jsonName(data, fe.StructField())

		message := ""
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", jsonTag)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", jsonTag)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters long", jsonTag, fe.Param())
			if fe.Kind() == reflect.Slice {
				message = fmt.Sprintf("%s must contain at least %s items", jsonTag, fe.Param())
			}
		case "max":
			message = fmt.Sprintf("%s must not exceed %s characters", jsonTag, fe.Param())
		case "alpha":
			message = fmt.Sprintf("%s must contain only alphabetic characters", jsonTag)
		case "permission":
			message = fmt.Sprintf("%s must be a permission id without whitespace", jsonTag)
		default:
			message = fmt.Sprintf("%s is invalid (%s)", jsonTag, fe.Tag())
		}

		// Append multiple messages for the same jsonTag
		errs[jsonTag] = append(errs[jsonTag], message)
	}

	return &ValidationError{
		Message: "Validation failed",
		Errors:  errs,
	}
}

// jsonName maps a struct field (possibly a slice element such as
// "Permissions[2]") to its JSON name, falling back to the lowercase field name.
func jsonName(data interface{}, structField string) string {
	name, index, _ := strings.Cut(structField, "[")

	typ := reflect.TypeOf(data)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	tag := ""
	if typ.Kind() == reflect.Struct {
		if field, ok := typ.FieldByName(name); ok {
			tag, _, _ = strings.Cut(field.Tag.Get("json"), ",")
		}
	}
	if tag == "" {
		tag = strings.ToLower(name)
	}
	if index != "" {
		tag += "[" + index
	}

	return tag
}
