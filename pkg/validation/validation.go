package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrValidation возвращается, если структура не прошла валидацию
var ErrValidation = errors.New("validation failed")

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		// slug: строчные латинские буквы и цифры, разделенные одиночными дефисами
		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// FieldError нарушенное правило одного поля
type FieldError struct {
	Field string
	Tag   string
}

// Error ошибка валидации с перечнем нарушенных правил
// errors.Is(err, ErrValidation) == true
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s(%s)", fe.Field, fe.Tag))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, ", "))
}

func (e *Error) Unwrap() error {
	return ErrValidation
}

// HasTag сообщает, нарушено ли правило tag хотя бы одним полем
func (e *Error) HasTag(tag string) bool {
	for _, fe := range e.Fields {
		if fe.Tag == tag {
			return true
		}
	}
	return false
}

// Struct валидирует структуру по тегам `validate`
// Ошибка (*Error) содержит перечень полей и нарушенных правил, например
// "validation failed: InviteeEmail(email), Name(required)"
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := &Error{Fields: make([]FieldError, 0, len(fieldErrs))}
		for _, fe := range fieldErrs {
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Tag: fe.Tag()})
		}
		return out
	}

	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// IsSlug проверяет формат slug без структуры
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}
