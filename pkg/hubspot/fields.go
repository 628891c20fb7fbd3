package hubspot

import (
	"reflect"
	"strings"
)

// PropertyNamer lets a shape declare its field names explicitly instead of
// having them read from its json tags. Shapes backed by maps, or shapes whose
// wire names differ from their tags, implement it.
type PropertyNamer interface {
	PropertyNames() []string
}

// FieldNames returns the wire field names declared on T, in declaration
// order. Names come from json tags when present, fields tagged "-" and
// unexported fields are skipped, and untagged embedded structs are
// flattened. Non-struct shapes yield no names unless they implement
// PropertyNamer.
func FieldNames[T any]() []string {
	var zero T

	if namer, ok := any(zero).(PropertyNamer); ok {
		return namer.PropertyNames()
	}

	if namer, ok := any(&zero).(PropertyNamer); ok {
		return namer.PropertyNames()
	}

	return structFieldNames(reflect.TypeFor[T]())
}

func structFieldNames(typ reflect.Type) []string {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ.Kind() != reflect.Struct {
		return nil
	}

	var names []string

	for i := range typ.NumField() {
		field := typ.Field(i)

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")

		if field.Anonymous && name == "" {
			embedded := field.Type
			if embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}

			if embedded.Kind() == reflect.Struct {
				names = append(names, structFieldNames(embedded)...)

				continue
			}
		}

		if !field.IsExported() {
			continue
		}

		if name == "" {
			name = field.Name
		}

		names = append(names, name)
	}

	return names
}
