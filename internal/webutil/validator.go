package webutil

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"yanindayim/internal/model"

	"github.com/go-playground/locales/tr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	tr_translations "github.com/go-playground/validator/v10/translations/tr"
)

// Validator is the shared validator instance.
var Validator *validator.Validate

// Trans translates validation messages into Turkish.
var Trans ut.Translator

func init() {
	Validator = validator.New()

	// Report field names by their json tag.
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	turkish := tr.New()
	uni := ut.New(turkish, turkish)
	var found bool
	Trans, found = uni.GetTranslator("tr")
	if !found {
		log.Fatal("turkish translator not found")
	}

	if err := tr_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}
}

// ValidateStruct runs the shared validator and converts the first violation
// into an AppError with a translated message.
func ValidateStruct(s interface{}) *model.AppError {
	err := Validator.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		firstErr := validationErrors[0]
		return model.NewAppError(
			"VALIDATION_ERROR",
			firstErr.Translate(Trans),
			firstErr.Field(),
			model.ErrInvalidInput,
		)
	}

	return model.NewAppError("VALIDATION_ERROR", "İstek doğrulanamadı.", "", model.ErrInvalidInput)
}
