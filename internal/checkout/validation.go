package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"tvojakarta/internal/catalog"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	cardPattern  = regexp.MustCompile(`^[0-9]{16}$`)
	cvvPattern   = regexp.MustCompile(`^[0-9]{3}$`)
)

// Checks run in this order and the first failure is reported.
var codePriority = []string{CodeRequired, CodeTerms, CodeEmail, CodeCardNumber, CodeCVV}

// FormValidator checks a PaymentForm with go-playground/validator and reduces
// the result to a single localized ValidationError.
type FormValidator struct {
	validate *validator.Validate
}

func NewFormValidator() *FormValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("card_number", func(fl validator.FieldLevel) bool {
		return cardPattern.MatchString(stripWhitespace(fl.Field().String()))
	})
	_ = v.RegisterValidation("cvv", func(fl validator.FieldLevel) bool {
		return cvvPattern.MatchString(fl.Field().String())
	})
	return &FormValidator{validate: v}
}

// Validate returns nil or a *ValidationError for the highest priority failure.
func (fv *FormValidator) Validate(form PaymentForm, lang catalog.Language) error {
	err := fv.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	best := -1
	var field string
	for _, fe := range verrs {
		rank := indexOf(codeFor(fe))
		if best < 0 || rank < best {
			best = rank
			field = fe.Field()
		}
	}
	code := codePriority[best]
	return &ValidationError{Field: field, Code: code, Message: Message(code, lang)}
}

func codeFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return CodeRequired
	case "eq":
		return CodeTerms
	case "basic_email":
		return CodeEmail
	case "card_number":
		return CodeCardNumber
	case "cvv":
		return CodeCVV
	default:
		return CodeRequired
	}
}

func indexOf(code string) int {
	for i, c := range codePriority {
		if c == code {
			return i
		}
	}
	return 0
}
