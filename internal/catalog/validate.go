package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/actuallystonmai/film-recommender/internal/domain"
)

var externalIDPattern = regexp.MustCompile(`^tt\d{7,}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("externalid", func(fl validator.FieldLevel) bool {
			return externalIDPattern.MatchString(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// ValidationError describes one rejected catalog record. Index is the
// record's position in the input it was validated from.
type ValidationError struct {
	Index      int
	ExternalID string
	Title      string
	Field      string
	Reason     string
}

func (e *ValidationError) Error() string {
	title := e.Title
	if title == "" {
		title = "Unknown"
	}
	return fmt.Sprintf("record %d (%q): %s: %s", e.Index, title, e.Field, e.Reason)
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// Validate splits records into the ones satisfying FilmRecord's invariants
// and a report for the rest. A repeated external_id is rejected in favour of
// its first occurrence.
func Validate(records []domain.FilmRecord) ([]domain.FilmRecord, []ValidationError) {
	v := getValidator()
	valid := make([]domain.FilmRecord, 0, len(records))
	var rejected []ValidationError
	seen := make(map[string]struct{}, len(records))

	for i, rec := range records {
		if err := v.Struct(rec); err != nil {
			rejected = append(rejected, toValidationError(i, rec, err))
			continue
		}
		if _, dup := seen[rec.ExternalID]; dup {
			rejected = append(rejected, ValidationError{
				Index:      i,
				ExternalID: rec.ExternalID,
				Title:      rec.Title,
				Field:      "external_id",
				Reason:     "duplicate external_id",
			})
			continue
		}
		seen[rec.ExternalID] = struct{}{}

		if rec.Cast == nil {
			rec.Cast = []string{}
		}
		valid = append(valid, rec)
	}
	return valid, rejected
}

func toValidationError(i int, rec domain.FilmRecord, err error) ValidationError {
	ve := ValidationError{Index: i, ExternalID: rec.ExternalID, Title: rec.Title, Field: "record", Reason: err.Error()}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		ve.Field = fe.Field()
		ve.Reason = describe(fe)
	}
	return ve
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s, got %v", fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("must be <= %s, got %v", fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("must be > %s, got %v", fe.Param(), fe.Value())
	case "externalid":
		return fmt.Sprintf("invalid external id format: %v", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
