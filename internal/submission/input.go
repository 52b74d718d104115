package submission

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/uam-aleman/wochenkontext/internal/curriculum"
	"github.com/uam-aleman/wochenkontext/internal/scope"
)

// Input is a student's written activity as posted by the exercise form.
type Input struct {
	FirstName string `json:"firstName" validate:"min=2"`
	LastName  string `json:"lastName" validate:"min=2"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Level     string `json:"level" validate:"required,course"`
	Week      string `json:"week" validate:"required,week_slug"`
	Content   string `json:"content" validate:"min=10"`
	SessionID string `json:"sessionId,omitempty"`
}

// StudentName joins the trimmed first and last name.
func (in Input) StudentName() string {
	return strings.TrimSpace(strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName))
}

// normalized trims the identity fields. Content is kept verbatim.
func (in Input) normalized() Input {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Level = strings.TrimSpace(in.Level)
	in.Week = strings.ToLower(strings.TrimSpace(in.Week))
	return in
}

// InputError lists every rejected field of an Input, keyed by its JSON name.
type InputError struct {
	Fields map[string]string
}

func (e *InputError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("course", func(fl validator.FieldLevel) bool {
		_, ok := curriculum.NormalizeCourse(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("week_slug", func(fl validator.FieldLevel) bool {
		return scope.WeekSlugPattern.MatchString(fl.Field().String())
	})
	return v
}

var fieldMessages = map[string]string{
	"firstName": "El nombre debe tener al menos 2 caracteres",
	"lastName":  "El apellido debe tener al menos 2 caracteres",
	"email":     "Email inválido",
	"level":     "Curso desconocido",
	"week":      "El formato de la semana debe ser 'w01', 'w02', etc.",
	"content":   "La respuesta es muy corta. ¡Intenta explayarte un poco más!",
}

// Validate checks in after trimming its identity fields and returns an
// *InputError naming every rejected field.
func (in Input) Validate() error {
	err := validate.Struct(in.normalized())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ie := &InputError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "failed " + fe.Tag()
		}
		ie.Fields[fe.Field()] = msg
	}
	return ie
}
