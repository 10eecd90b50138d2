// Package bind decodes and validates JSON request bodies
package bind

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "leadhopper/internal/platform/errors"
	"leadhopper/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type ctxKey uint8

const payloadKey ctxKey = iota

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// UT aliases ut.Translator
type UT = ut.Translator

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// ValidatorSvc bundles the process-wide validator with its translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	initOnce sync.Once
	shared   *ValidatorSvc

	// seam so tests can force the trailing-data branch
	decoderMore = func(dec *json.Decoder) bool { return dec.More() }
)

// Init builds the singleton validator: english messages, json tag names
// in errors, and the project's custom tags
func Init() *ValidatorSvc {
	initOnce.Do(func() {
		locale := en.New()
		trans, _ := ut.New(locale, locale).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// error messages should name the wire field, not the Go field
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerBound(v, trans, "min", "{0} must be at least {1}")
		registerBound(v, trans, "max", "{0} must be at most {1}")
		registerMarketingKey(v, trans)

		shared = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return shared
}

// Get returns the singleton, initializing it on first use
func Get() *ValidatorSvc {
	if shared == nil {
		return Init()
	}
	return shared
}

// RegisterValidation adds a custom tag to the singleton validator
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// JSONOptions controls parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 1MB
	DisallowUnknown bool  // default true
	AllowEmptyBody  bool  // default false
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{
		MaxBytes:        1 << 20,
		DisallowUnknown: true,
		AllowEmptyBody:  false,
	}
}

func capReader(r io.Reader, max int64) io.Reader {
	if max > 0 {
		return io.LimitReader(r, max)
	}
	return r
}

// ParseJSON decodes the request body into T, validates it, and maps
// failures onto project error codes
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close request body")
		}
	}()

	var reader io.Reader
	if o.AllowEmptyBody {
		reader = capReader(r.Body, o.MaxBytes)
	} else {
		// peek one byte so a truly empty body can be told apart from `{}`
		peek := make([]byte, 1)
		n, _ := r.Body.Read(peek)
		if n == 0 {
			// bodyless requests are normal for these verbs
			switch r.Method {
			case http.MethodGet, http.MethodDelete, http.MethodHead, http.MethodOptions:
				return zero, nil
			}
			return zero, perr.JSONErrf("empty body")
		}
		reader = capReader(io.MultiReader(bytes.NewReader(peek[:n]), r.Body), o.MaxBytes)
	}

	dec := json.NewDecoder(reader)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		if o.AllowEmptyBody && errors.Is(err, io.EOF) {
			return dst, nil
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}

	if decoderMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Get().Validator.Struct(dst); err != nil {
		if inv, ok := err.(*validator.InvalidValidationError); ok {
			logger.Get().Error().Err(inv).Msg("validator internal error")
			return zero, perr.JSONErrf("validation error")
		}
		_, msg := ValidationFieldAndMessage(err)
		return zero, perr.Newf(perr.ErrorCodeValidation, "%s", msg)
	}

	return dst, nil
}

// JSON is middleware that parses the body into T and stashes a pointer
// on the request context for the handler
func JSON[T any](opts ...JSONOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			val, err := ParseJSON[T](r, opts...)
			if err != nil {
				// plain 400 here; envelope shaping belongs to the transport layer
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			ctx := context.WithValue(r.Context(), payloadKey, &val)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext retrieves the payload bound by the JSON middleware, or nil
func FromContext[T any](r *http.Request) *T {
	v, _ := r.Context().Value(payloadKey).(*T)
	return v
}

// ValidationFieldAndMessage extracts the first failing field and its
// translated message from a validator error
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		return "", inv.Error()
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

// As re-exports errors.As so call sites don't need a second errors import
func As(err error, target any) bool { return errors.As(err, target) }

// registerBound replaces the stock min/max messages with shorter ones
func registerBound(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// registerMarketingKey wires the mc_api_key tag: a marketing API key
// carries its datacenter after the last dash, like xxxx-us7
func registerMarketingKey(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("mc_api_key", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		i := strings.LastIndex(s, "-")
		if i <= 0 || i == len(s)-1 {
			return false
		}
		for _, c := range s[i+1:] {
			if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
				return false
			}
		}
		return true
	})
	_ = v.RegisterTranslation("mc_api_key", trans,
		func(ut ut.Translator) error {
			return ut.Add("mc_api_key", "{0} must end in a datacenter suffix like -us7", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("mc_api_key", fe.Field())
			return msg
		},
	)
}
