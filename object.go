package dialectcsv

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// =============================================================================
// Object Mapper - projects rows onto named struct fields
// =============================================================================

// ObjectParser parses rows into values of a struct type T, assigning each
// field value to the struct field whose name matches the corresponding
// property name. Property names are matched against a `csv` struct tag
// first, then case-insensitively against the field name; unmatched
// columns are dropped.
type ObjectParser[T any] struct {
	// Parser performs the underlying row parsing. Exposed so callers can
	// adjust MaxFieldLen before use.
	Parser *Parser

	// PropertyNames maps column index to struct field name. When nil,
	// the names are discovered from the first row's string values and
	// that row is not delivered as an object.
	PropertyNames []string
}

// NewObjectParser returns an ObjectParser for dialect d (nil means
// [Excel]). propertyNames may be nil to discover names from the first row.
func NewObjectParser[T any](d *Dialect, propertyNames []string) *ObjectParser[T] {
	return &ObjectParser[T]{
		Parser:        NewParser(d),
		PropertyNames: propertyNames,
	}
}

// ParseObjects parses data and delivers one freshly constructed *T per
// row to fn. Returning true from fn stops the parse; an early stop is a
// successful termination.
func (op *ObjectParser[T]) ParseObjects(data []byte, fn func(obj *T) (stop bool)) error {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		return fmt.Errorf("dialectcsv: object type %s is not a struct", rt)
	}

	byName := fieldIndexByName(rt)
	var columns []int
	if op.PropertyNames != nil {
		columns = resolveColumns(op.PropertyNames, byName)
	}

	return op.Parser.ParseRows(data, func(row []Value) bool {
		if columns == nil {
			// Auto-discovery: the first row provides the property names.
			names := make([]string, len(row))
			for i, v := range row {
				names[i] = v.String()
			}
			columns = resolveColumns(names, byName)
			return false
		}

		obj := new(T)
		rv := reflect.ValueOf(obj).Elem()
		for i, v := range row {
			if i >= len(columns) || columns[i] < 0 {
				continue
			}
			assignValue(rv.Field(columns[i]), v)
		}
		return fn(obj)
	})
}

// Objects parses data and returns all constructed objects.
func (op *ObjectParser[T]) Objects(data []byte) ([]*T, error) {
	var objs []*T
	err := op.ParseObjects(data, func(obj *T) bool {
		objs = append(objs, obj)
		return false
	})
	if err != nil {
		return nil, err
	}
	return objs, nil
}

// fieldIndexByName indexes the settable fields of a struct type by their
// `csv` tag and lowercased name. Tags win over names.
func fieldIndexByName(rt reflect.Type) map[string]int {
	byName := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.ToLower(f.Name)
		if _, taken := byName[name]; !taken {
			byName[name] = i
		}
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag, ok := f.Tag.Lookup("csv"); ok && tag != "" && tag != "-" {
			byName[strings.ToLower(tag)] = i
		}
	}
	return byName
}

// resolveColumns maps each property name to a struct field index, or -1
// when no field matches.
func resolveColumns(names []string, byName map[string]int) []int {
	columns := make([]int, len(names))
	for i, name := range names {
		if idx, ok := byName[strings.ToLower(name)]; ok {
			columns[i] = idx
		} else {
			columns[i] = -1
		}
	}
	return columns
}

// assignValue stores a field value into a struct field, coercing between
// the string and numeric variants as the field's kind requires. Values
// that cannot be coerced leave the field at its zero value.
func assignValue(fv reflect.Value, v Value) {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(v.String())
	case reflect.Float32, reflect.Float64:
		fv.SetFloat(numeric(v))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fv.SetInt(int64(numeric(v)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n := numeric(v); n >= 0 {
			fv.SetUint(uint64(n))
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(v.String()); err == nil {
			fv.SetBool(b)
		}
	}
}

// numeric returns the value as a float64, parsing string payloads
// best-effort.
func numeric(v Value) float64 {
	if v.Type == FieldNumber {
		return v.Num
	}
	f, err := strconv.ParseFloat(v.Str, 64)
	if err != nil {
		return 0
	}
	return f
}
