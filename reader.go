// Package dialectcsv converts delimited-text byte streams into typed
// field values, rows, and struct objects under configurable formatting
// rules (dialects).
//
// The core is a byte-level streaming state machine driven by a [Dialect]:
// delimiter, quote character, escape character, doubled-quote escaping,
// strict or lenient processing, and a quoting style that also decides
// string-versus-numeric typing. [Parser.ParseRaw] exposes the raw field
// stream; [Parser.ParseRows], [Reader], [ObjectParser], and [Writer] are
// layered on top of it.
package dialectcsv

import "io"

// Reader reads rows of parsed values from an io.Reader.
//
// The exported fields can be changed to customize the details before the
// first call to Read or ReadAll.
type Reader struct {
	// Dialect is the formatting rule set. Nil means [Excel].
	Dialect *Dialect

	// FieldsPerRecord is the number of expected fields per record.
	// If FieldsPerRecord is positive, Read requires each record to
	// have the given number of fields. If FieldsPerRecord is 0, Read
	// sets it to the number of fields in the first record, so that
	// future records must have the same field count. If FieldsPerRecord
	// is negative, no check is made and records may have a variable
	// number of fields.
	FieldsPerRecord int

	// MaxFieldLen overrides the parser's maximum field length when
	// positive.
	MaxFieldLen int

	r io.Reader

	// Internal state
	initialized bool
	rows        [][]Value
	lines       []int
	next        int
	parseErr    error
}

// NewReader returns a new Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read returns the next record. If the record has an unexpected number
// of fields, Read returns the record along with ErrFieldCount wrapped in
// a *[ParseError]. Records parsed before an input error are delivered
// first; the error follows them. If there is no data left, Read returns
// nil, io.EOF.
func (r *Reader) Read() ([]Value, error) {
	if !r.initialized {
		if err := r.initialize(); err != nil {
			return nil, err
		}
	}

	if r.next >= len(r.rows) {
		if r.parseErr != nil {
			return nil, r.parseErr
		}
		return nil, io.EOF
	}

	row := r.rows[r.next]
	line := r.lines[r.next]
	r.next++

	if r.FieldsPerRecord == 0 {
		r.FieldsPerRecord = len(row)
	} else if r.FieldsPerRecord > 0 && len(row) != r.FieldsPerRecord {
		return row, &ParseError{Line: line, Err: ErrFieldCount}
	}
	return row, nil
}

// ReadAll reads all remaining records. A successful call returns
// err == nil, not err == io.EOF, because ReadAll is defined to read
// until EOF.
func (r *Reader) ReadAll() ([][]Value, error) {
	var out [][]Value
	for {
		row, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, row)
	}
}

// initialize reads all input and parses it on the first call to Read.
func (r *Reader) initialize() error {
	r.initialized = true

	data, err := io.ReadAll(r.r)
	if err != nil {
		return err
	}

	p := NewParser(r.Dialect)
	if r.MaxFieldLen > 0 {
		p.MaxFieldLen = r.MaxFieldLen
	}

	var acc rowAccumulator
	line := 0
	r.parseErr = p.ParseRaw(data, func(index int, field []byte, kind FieldType) bool {
		if index == EndOfRow {
			r.rows = append(r.rows, acc.take())
			r.lines = append(r.lines, line)
			return false
		}
		if index == 0 {
			line = p.Line()
		}
		acc.add(convertField(field, kind))
		return false
	})
	return nil
}
