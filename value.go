package dialectcsv

import "strconv"

// FieldType tags a parsed field as string or numeric data. The type is
// decided per field from the dialect's quoting style: under
// [QuoteNonNumeric], unquoted fields are numeric.
type FieldType uint8

const (
	// FieldString marks text data.
	FieldString FieldType = iota

	// FieldNumber marks numeric data.
	FieldNumber
)

// String returns the name of the field type.
func (t FieldType) String() string {
	switch t {
	case FieldString:
		return "string"
	case FieldNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value is one parsed field: either a string or a float64, tagged by
// Type. Only the variant selected by Type is meaningful.
//
// Field bytes are passed through verbatim when decoding string values;
// input that is not valid UTF-8 yields a Go string containing the same
// invalid byte sequence.
type Value struct {
	Type FieldType
	Str  string
	Num  float64
}

// StringValue returns a string-typed Value.
func StringValue(s string) Value {
	return Value{Type: FieldString, Str: s}
}

// NumberValue returns a number-typed Value.
func NumberValue(f float64) Value {
	return Value{Type: FieldNumber, Num: f}
}

// String returns the field as text: the string payload, or the shortest
// decimal representation of the number that round-trips.
func (v Value) String() string {
	if v.Type == FieldNumber {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
	return v.Str
}

// convertField materializes finished field bytes into a Value.
//
// A field marked numeric that strconv.ParseFloat rejects degrades to a
// string value carrying the original bytes. Decoding failures are not
// parse errors; one malformed field must not abort ingestion of the rest
// of a well-formed file.
func convertField(field []byte, kind FieldType) Value {
	if kind == FieldNumber {
		if f, err := strconv.ParseFloat(string(field), 64); err == nil {
			return Value{Type: FieldNumber, Num: f}
		}
	}
	return Value{Type: FieldString, Str: string(field)}
}
