package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupOnce sync.Once

// setup makes validator report json field names instead of Go field names.
func setup() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
}

// Bind decodes the JSON body into req, trims its strings and applies its
// binding tags. Rule failures come back as Errors; a non-nil error means the
// body was not a JSON object.
func Bind(c *gin.Context, req any) (Errors, error) {
	setupOnce.Do(setup)
	errs := Errors{}

	err := io.EOF
	if c.Request.Body != nil {
		err = json.NewDecoder(c.Request.Body).Decode(req)
	}
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		// empty body: report missing fields like an empty object would
	case errors.As(err, &typeErr) && typeErr.Field != "":
		errs.Add(typeErr.Field, fmt.Sprintf("The %s field must be of type %s.", label(typeErr.Field), typeName(typeErr.Type)))
	default:
		return nil, err
	}

	TrimStrings(req)

	var verrs validator.ValidationErrors
	if err := binding.Validator.ValidateStruct(req); err != nil && errors.As(err, &verrs) {
		addValidationErrors(errs, verrs)
	}
	return errs, nil
}

// untrimmed lists json fields kept verbatim.
var untrimmed = map[string]bool{"password": true}

// TrimStrings strips surrounding whitespace from the string fields of the
// struct v points to. Optional string pointers left blank become nil.
func TrimStrings(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	trimStruct(rv.Elem())
}

func trimStruct(rv reflect.Value) {
	if rv.Kind() != reflect.Struct {
		return
	}
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() || untrimmed[strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]] {
			continue
		}
		f := rv.Field(i)
		switch {
		case f.Kind() == reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case f.Kind() == reflect.Ptr && !f.IsNil() && f.Elem().Kind() == reflect.String:
			if trimmed := strings.TrimSpace(f.Elem().String()); trimmed == "" {
				f.Set(reflect.Zero(f.Type()))
			} else {
				f.Elem().SetString(trimmed)
			}
		case f.Kind() == reflect.Struct:
			trimStruct(f)
		}
	}
}

// BindQuery applies form tags to the query string.
func BindQuery(c *gin.Context, req any) Errors {
	setupOnce.Do(setup)
	errs := Errors{}
	err := c.ShouldBindQuery(req)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		addValidationErrors(errs, verrs)
		return errs
	}
	errs.Add("query", "The query string is invalid.")
	return errs
}

func addValidationErrors(errs Errors, verrs validator.ValidationErrors) {
	for _, fe := range verrs {
		field := fe.Field()
		if errs.Has(field) {
			continue
		}
		errs.Add(field, message(fe))
	}
}

func message(fe validator.FieldError) string {
	name := label(fe.Field())
	characters := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "number":
		return fmt.Sprintf("The %s field must contain only digits.", name)
	case "ip":
		return fmt.Sprintf("The %s field must be a valid IP address.", name)
	case "min":
		if characters {
			return fmt.Sprintf("The %s field must be at least %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "max":
		if characters {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}

func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.String:
		return "string"
	case reflect.Ptr:
		return typeName(t.Elem())
	default:
		return t.Kind().String()
	}
}
