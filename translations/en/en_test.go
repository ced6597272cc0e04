package translations

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterActivityTranslations(t *testing.T) {
	validate := validator.New()
	_ = validate.RegisterValidation("stage_type", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "basic"
	})

	_en := en.New()
	trans, _ := ut.New(_en, _en).GetTranslator("en")
	require.NoError(t, RegisterActivityTranslations(validate, trans))

	type s struct {
		Type string `validate:"stage_type"`
	}
	err := validate.Struct(s{Type: "quiz"})
	require.Error(t, err)

	errs := err.(validator.ValidationErrors)
	assert.Contains(t, errs[0].Translate(trans), "Type must be one of basic")
}
