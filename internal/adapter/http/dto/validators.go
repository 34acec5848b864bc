package dto

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// safeIDPattern covers request ids and game types: letters, digits, '_', '-', '.'.
var safeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

func init() {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	for tag, fn := range map[string]validator.Func{
		"safe_id":   func(fl validator.FieldLevel) bool { return safeIDPattern.MatchString(fl.Field().String()) },
		"owner_ref": func(fl validator.FieldLevel) bool { return isOwnerRef(fl.Field().String()) },
	} {
		_ = engine.RegisterValidation(tag, fn)
	}
}

// isOwnerRef accepts printable text with no leading or trailing space.
// Owner refs are otherwise opaque.
func isOwnerRef(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsPrint(r) }) < 0
}

// SanitizeStruct cleans the string fields of the struct v points to,
// following pointers and nested structs. Byte slices such as bet data are
// left untouched. Non-pointer arguments are ignored.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	if elem := rv.Elem(); elem.Kind() == reflect.Struct {
		cleanValue(elem)
	}
}

func cleanValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(cleanString(v.String()))
		}
	case reflect.Ptr:
		if !v.IsNil() {
			cleanValue(v.Elem())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				cleanValue(v.Field(i))
			}
		}
	}
}

// cleanString trims surrounding space and removes control characters.
func cleanString(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
