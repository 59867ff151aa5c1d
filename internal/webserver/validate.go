package webserver

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Charsets from the store's Spanish-language domain: letters including the
// extended Latin set, apostrophe, hyphen and space; latname also allows digits.
var (
	latinNameRegexp  = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚÜÑáéíóúüñ0-9' -]+$`)
	latinAlphaRegexp = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚÜÑáéíóúüñ' -]+$`)
)

// Validator adapts go-playground/validator to echo, with the custom rules
// the entity payloads rely on: latname, latalpha, price2dp and objectid.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// report violations under the json field name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must(v.RegisterValidation("latname", func(fl validator.FieldLevel) bool {
		return latinNameRegexp.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("latalpha", func(fl validator.FieldLevel) bool {
		return latinAlphaRegexp.MatchString(fl.Field().String())
	}))
	// price2dp rejects numeric values whose canonical decimal form carries
	// more than two fractional digits (19.999 fails, 19.99 passes)
	must(v.RegisterValidation("price2dp", func(fl validator.FieldLevel) bool {
		d := decimal.NewFromFloat(fl.Field().Float())
		return d.Equal(d.Round(2))
	}))
	must(v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		_, err := primitive.ObjectIDFromHex(fl.Field().String())
		return err == nil
	}))

	return &Validator{validate: v}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FieldError describes one violated constraint. It carries the value's
// kind, never the raw value, so sensitive inputs are not echoed back.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
	Kind  string `json:"kind"`
}

// TranslateValidationErrors flattens a validator error into one entry per
// violated field. All violations are reported at once.
func TranslateValidationErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
			Kind:  fe.Kind().String(),
		})
	}
	return out
}
