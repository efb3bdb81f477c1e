package validator

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	playground "github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Messages returns the human-readable messages in field order.
func (v ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Message)
	}
	return msgs
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email validation: local-part@domain where the domain holds at least one dot.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

const DateLayout = "2006-01-02"

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// Month validation (YYYY-MM)
func IsValidMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}

var (
	engine     *playground.Validate
	engineOnce sync.Once
)

func getEngine() *playground.Validate {
	engineOnce.Do(func() {
		v := playground.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl playground.FieldLevel) bool {
			return !IsEmpty(fl.Field().String())
		})
		_ = v.RegisterValidation("email_addr", func(fl playground.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("isodate", func(fl playground.FieldLevel) bool {
			_, ok := IsValidDate(fl.Field().String())
			return ok
		})
		engine = v
	})
	return engine
}

// Struct validates s against its `validate` tags and converts failures into
// ValidationErrors. A `label` tag names the field in messages.
func Struct(s interface{}) error {
	err := getEngine().Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(playground.ValidationErrors)
	if !ok {
		return err
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		label := fe.StructField()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if l := sf.Tag.Get("label"); l != "" {
				label = l
			}
		}
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: message(label, fe),
		})
	}
	return errs
}

func message(label string, fe playground.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "email_addr":
		return "Valid email required"
	case "isodate":
		return label + " must be a valid date (YYYY-MM-DD)"
	case "oneof":
		return label + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return label + " is invalid"
	}
}
