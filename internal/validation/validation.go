// Package validation checks student and course forms before they are sent.
// Errors are keyed by JSON field name so a form can show them inline.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"enrollment-console/internal/domain"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags & texts
	studentEmailTag   = "student_email"
	studentEmailText  = "Invalid email address"
	studentEmailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,4}$`)

	phoneTag   = "phone10"
	phoneText  = "Phone number must be 10 digits"
	phoneRegex = regexp.MustCompile(`^\d{10}$`)

	requiredTag  = "required"
	requiredText = "{0} is required"
	minTag       = "min"
	minText      = "{0} must be at least {1}"
)

// labels are the human names used in messages, keyed by JSON field name.
var labels = map[string]string{
	"studentId":   "Student ID",
	"firstName":   "First name",
	"lastName":    "Last name",
	"email":       "Email",
	"phoneNumber": "Phone number",
	"courseCode":  "Course code",
	"name":        "Course name",
	"description": "Description",
	"creditHours": "Credit hours",
	"maxCapacity": "Maximum capacity",
}

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(studentEmailTag, func(fl validator.FieldLevel) bool {
		return studentEmailRegex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation(phoneTag, func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})

	registerTranslation(studentEmailTag, studentEmailText, false)
	registerTranslation(phoneTag, phoneText, false)
	registerTranslation(requiredTag, requiredText, true)
	registerTranslation(minTag, minText, true)
}

func registerTranslation(tag, text string, override bool) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, label(fe.Field()), fe.Param())
			return s
		},
	)
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

// Errors maps a JSON field name to its message. Empty means valid.
type Errors map[string]string

// Clear drops one field's message, as when the user edits that field.
func (e Errors) Clear(field string) {
	delete(e, field)
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

func ValidateStudent(s domain.Student) Errors {
	return check(s)
}

func ValidateCourse(c domain.CourseInput) Errors {
	return check(c)
}

func check(v any) Errors {
	errs := Errors{}
	err := validate.Struct(v)
	if err == nil {
		return errs
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = fe.Translate(translator)
	}
	return errs
}
