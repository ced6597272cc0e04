package activity

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/jawad-khan/xblock-group-project-v2/stage"
	translations "github.com/jawad-khan/xblock-group-project-v2/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report TOML keys instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("stage_type", func(fl validator.FieldLevel) bool {
		return stage.Type(fl.Field().String()).Valid()
	})
	validate.RegisterStructValidation(stageDatesValidation, TomlStage{})

	_ = translations.RegisterActivityTranslations(validate, translator)
}

func stageDatesValidation(sl validator.StructLevel) {
	s, ok := sl.Current().Interface().(TomlStage)
	if !ok || s.OpenDate == nil || s.CloseDate == nil {
		return
	}
	if !s.CloseDate.After(*s.OpenDate) {
		sl.ReportError(s.CloseDate, "close_date", "CloseDate", "close_after_open", "")
	}
}

func validateManifest(m *ActivityTomlManifest) error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate manifest: %w", err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Translate(translator)))
	}
	return &ValidationError{Problems: problems}
}

// validateReferences checks what tags cannot: unique ids and displays
// pointing at an existing question.
func validateReferences(a *Activity) error {
	var problems []string

	stageIDs := map[string]bool{}
	questionIDs := map[string]bool{}
	for _, s := range a.Stages {
		if stageIDs[s.ID] {
			problems = append(problems, fmt.Sprintf("stage %s: Stage ID is not unique", s.ID))
		}
		stageIDs[s.ID] = true

		uploadIDs := map[string]bool{}
		for _, sub := range s.Submissions {
			if uploadIDs[sub.UploadID] {
				problems = append(problems, fmt.Sprintf("stage %s: Upload ID %s is not unique", s.ID, sub.UploadID))
			}
			uploadIDs[sub.UploadID] = true
		}

		for _, q := range s.Questions {
			if questionIDs[q.QuestionID] {
				problems = append(problems, fmt.Sprintf("stage %s: Question ID %s is not unique", s.ID, q.QuestionID))
			}
			questionIDs[q.QuestionID] = true
		}
	}

	for _, s := range a.Stages {
		for _, d := range s.FeedbackDisplays {
			_, err := a.DisplayQuestion(d)
			if err != nil {
				problems = append(problems, fmt.Sprintf("stage %s, display %s: %s", s.ID, d.ID, err.Error()))
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
