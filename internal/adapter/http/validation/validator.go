package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"todolist/internal/core/domain"
	"todolist/internal/core/model/response"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}
}

// FormatValidationErrors flattens validator and domain field errors into
// the response shape. Returns nil for anything else.
func FormatValidationErrors(err error) []response.ValidationError {
	var out []response.ValidationError

	var validationErrors validator.ValidationErrors

	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			out = append(out, response.ValidationError{
				Field:   strings.ToLower(fieldError.Field()),
				Message: fieldError.Translate(Translator),
			})
		}

		return out
	}

	var fieldErrors domain.FieldErrors

	if errors.As(err, &fieldErrors) {
		for _, fe := range fieldErrors {
			out = append(out, response.ValidationError{
				Field:   fe.Field,
				Message: fe.Message,
			})
		}

		return out
	}

	var fieldError *domain.FieldError

	if errors.As(err, &fieldError) {
		return []response.ValidationError{
			{Field: fieldError.Field, Message: fieldError.Message},
		}
	}

	return nil
}
