// Package validation checks JSON request bodies before they reach a handler.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "quiz-service/pkg/errors"
	"quiz-service/pkg/logger"
)

const payloadKey = "validation.payload"

// Defaulter is implemented by payloads that fill in absent optional fields.
type Defaulter interface {
	ApplyDefaults()
}

// ErrorResponse is written for rejected bodies.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}

// Validator runs struct-tag validation and reports fields by their JSON names.
type Validator struct {
	validate *validator.Validate
	log      *zap.Logger
}

// New creates a Validator.
func New(log *zap.Logger) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v, log: log}
}

// Struct validates s and returns a *apperrors.ValidationError listing every
// invalid field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError("", err.Error())
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, apperrors.FieldError{Field: e.Field(), Message: fieldMessage(e)})
	}
	return apperrors.NewFieldsValidationError(fields)
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

// Decode reads a JSON object from r into dst. Unknown fields and values of
// the wrong JSON type are rejected. An empty body decodes as {}.
func Decode(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		if dec.More() {
			return apperrors.NewValidationError("", "request body must contain a single JSON object")
		}
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field == "":
		return apperrors.NewValidationError("", "request body must be a JSON object")
	case errors.As(err, &typeErr):
		return apperrors.NewFieldsValidationError([]apperrors.FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.Kind()),
		}})
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperrors.NewValidationError("", "malformed JSON body")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return apperrors.NewFieldsValidationError([]apperrors.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("%s is not allowed", field),
		}})
	default:
		return apperrors.NewValidationError("", err.Error())
	}
}

// Body returns middleware that decodes the request body into a T, applies
// its defaults and validates it. Invalid bodies are answered with 400 and the
// handler never runs. Handlers read the payload with Payload.
func Body[T any](v *Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := new(T)

		err := Decode(c.Request.Body, payload)
		if err == nil {
			if d, ok := any(payload).(Defaulter); ok {
				d.ApplyDefaults()
			}
			err = v.Struct(payload)
		}
		if err != nil {
			logger.WithContext(c.Request.Context(), v.log).Info("request body rejected",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusBadRequest, newErrorResponse(err))
			return
		}

		c.Set(payloadKey, payload)
		c.Next()
	}
}

// Payload returns the validated body stored by Body.
func Payload[T any](c *gin.Context) (*T, bool) {
	v, ok := c.Get(payloadKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*T)
	return p, ok
}

func newErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: "validation_error", Message: err.Error()}
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		resp.Details = verr.Fields
	}
	return resp
}
