// Package validation проверяет входные DTO по struct-тегам validate
// и возвращает apperr.VALIDATION с ошибками по полям (имена полей — из json-тегов).
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"StudyHub/internal/apperr"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	usernameTag  = "username"
	usernameText = "only letters, numbers and underscores are allowed"
	requiredText = "this field is required"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Validator — обёртка над validator.Validate с английскими переводами.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New создаёт валидатор и регистрирует пользовательские правила.
func New() *Validator {
	locale := en.New()
	uni := ut.New(locale, locale)
	translator, _ := uni.GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	// В ошибках используем имена из json-тегов, а не имена полей Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(usernameTag, func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	registerTranslation(v, translator, usernameTag, usernameText, false)
	registerTranslation(v, translator, "required", requiredText, true)

	return &Validator{validate: v, translator: translator}
}

func registerTranslation(v *validator.Validate, tr ut.Translator, tag, text string, override bool) {
	_ = v.RegisterTranslation(
		tag, tr,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct проверяет структуру; nil — если всё в порядке.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("invalid data", nil)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fe.Translate(v.translator)
	}
	return apperr.Validation("invalid data", fields)
}

// fieldPath строит путь вида cards[0].prompt без имени корневой структуры.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
