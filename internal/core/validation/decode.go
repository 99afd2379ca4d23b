package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/bizsites/website-builder/internal/core/domain"
)

// Decode unmarshals a JSON object into dst, a pointer to a struct, one field
// at a time. Every wrongly typed field is reported in the returned
// ValidationError while the well typed ones are still assigned, so the caller
// can validate them too and Merge both lists.
func Decode(data []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return DecodeError(json.Unmarshal(data, dst))
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return DecodeError(err)
	}

	elem := rv.Elem()
	var fields []domain.FieldError
	for i := 0; i < elem.NumField(); i++ {
		sf := elem.Type().Field(i)
		name := jsonName(sf)
		if name == "" || !sf.IsExported() {
			continue
		}
		value, ok := lookup(raw, name)
		if !ok {
			continue
		}
		ptr := reflect.New(sf.Type)
		if err := json.Unmarshal(value, ptr.Interface()); err != nil {
			fe := fieldDecodeError(err)
			fe.Path = name
			fields = append(fields, fe)
			continue
		}
		elem.Field(i).Set(ptr.Elem())
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// DecodeError converts a JSON decoding failure into a ValidationError so a
// wrongly typed field is reported like any other rejected field. Errors that
// are not decoding failures are returned unchanged.
func DecodeError(err error) error {
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	if errors.As(err, &typeErr) || errors.As(err, &syntaxErr) {
		return &domain.ValidationError{Fields: []domain.FieldError{fieldDecodeError(err)}}
	}
	return err
}

// Merge combines the decoding errors of dst with the validation errors of the
// fields that did decode. Fields rejected while decoding are reported once,
// and the result follows the struct field order. validateErr values that are
// not ValidationErrors leave decodeErr as the result.
func Merge(dst any, decodeErr, validateErr error) error {
	var decoded, validated *domain.ValidationError
	if !errors.As(decodeErr, &decoded) {
		return decodeErr
	}
	if !errors.As(validateErr, &validated) {
		return decodeErr
	}

	rejected := make(map[string]bool, len(decoded.Fields))
	merged := append([]domain.FieldError(nil), decoded.Fields...)
	for _, fe := range decoded.Fields {
		rejected[fe.Path] = true
	}
	for _, fe := range validated.Fields {
		if !rejected[topLevel(fe.Path)] {
			merged = append(merged, fe)
		}
	}

	order := fieldOrder(dst)
	sort.SliceStable(merged, func(i, j int) bool {
		return order[topLevel(merged[i].Path)] < order[topLevel(merged[j].Path)]
	})
	return &domain.ValidationError{Fields: merged}
}

func fieldDecodeError(err error) domain.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return domain.FieldError{
			Path:    typeErr.Field,
			Message: fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr.Type), typeErr.Value),
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return domain.FieldError{Message: fmt.Sprintf("Malformed JSON at offset %d", syntaxErr.Offset)}
	}
	return domain.FieldError{Message: err.Error()}
}

// lookup matches keys the way encoding/json does: exact first, then case
// insensitive.
func lookup(raw map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if v, ok := raw[name]; ok {
		return v, true
	}
	for k, v := range raw {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func jsonName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return sf.Name
	}
	return name
}

func fieldOrder(dst any) map[string]int {
	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	order := map[string]int{}
	if t == nil || t.Kind() != reflect.Struct {
		return order
	}
	for i := 0; i < t.NumField(); i++ {
		order[jsonName(t.Field(i))] = i
	}
	return order
}

// topLevel trims "images[1]" to "images".
func topLevel(path string) string {
	if i := strings.IndexAny(path, "[."); i >= 0 {
		return path[:i]
	}
	return path
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return "number"
	}
}
