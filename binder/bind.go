package binder

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Values binds already-parsed values to a struct using the given tag name.
// Fields without a matching value keep their zero value; a tag of "-" skips
// the field. This is the entry point for callers that hold url.Values
// directly (e.g. pagination params extracted from a request context).
func Values(v any, tagName string, values url.Values, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: %v", bindErr, ErrInvalidTarget)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %v", bindErr, ErrInvalidTarget)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		name, skip := tagName2param(rt.Field(i), tagName)
		if skip {
			continue
		}

		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}

		if err := assign(field, raw); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, rt.Field(i).Name, err)
		}
	}

	return nil
}

// tagName2param resolves the parameter name for a struct field. Untagged
// fields bind by their lowercased name; comma options ("name,omitempty")
// are ignored beyond the name itself.
func tagName2param(field reflect.StructField, tagName string) (string, bool) {
	tag := field.Tag.Get(tagName)
	switch tag {
	case "":
		return strings.ToLower(field.Name), false
	case "-":
		return "", true
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	return tag, false
}

// taggedParams lists the parameter names a target struct binds for the given
// tag. Non-struct targets yield nothing; Values reports the proper error.
func taggedParams(v any, tagName string) []string {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil
	}

	rt := rv.Elem().Type()
	names := make([]string, 0, rt.NumField())
	for i := range rt.NumField() {
		name, skip := tagName2param(rt.Field(i), tagName)
		if !skip {
			names = append(names, name)
		}
	}
	return names
}

func assign(field reflect.Value, raw []string) error {
	t := field.Type()

	if t.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(t.Elem()))
		}
		return assign(field.Elem(), raw)
	}

	if t.Kind() == reflect.Slice {
		return assignSlice(field, raw)
	}

	if len(raw) == 0 {
		return nil
	}
	return assignScalar(field, raw[0])
}

func assignScalar(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type %s", field.Kind())
	}
	return nil
}

// parseBool accepts strconv forms plus the usual HTML form values.
func parseBool(value string) (bool, error) {
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", value)
}

func assignSlice(field reflect.Value, raw []string) error {
	// Repeated keys and comma-separated values are both accepted.
	var parts []string
	for _, v := range raw {
		for _, p := range strings.Split(v, ",") {
			parts = append(parts, strings.TrimSpace(p))
		}
	}

	slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
	for i, p := range parts {
		if err := assignScalar(slice.Index(i), p); err != nil {
			return err
		}
	}

	field.Set(slice)
	return nil
}
