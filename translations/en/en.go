package translations

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// RegisterActivityTranslations adds messages for the manifest's custom tags.
func RegisterActivityTranslations(validate *validator.Validate, trans ut.Translator) error {
	err := validate.RegisterTranslation("stage_type", trans, func(ut ut.Translator) error {
		return ut.Add("stage_type", "{0} must be one of basic, submission, team_evaluation, peer_review, evaluation_display, grade_display", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("stage_type", fe.Field())
		return t
	})
	if err != nil {
		return err
	}

	return validate.RegisterTranslation("close_after_open", trans, func(ut ut.Translator) error {
		return ut.Add("close_after_open", "{0} must be after open_date", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("close_after_open", fe.Field())
		return t
	})
}
