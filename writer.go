package dialectcsv

import (
	"bufio"
	"io"
)

// Writer writes records using the formatting rules of a [Dialect].
//
// Fields are quoted according to the dialect's quoting style, so text
// produced by a Writer parses back to the same field values under the
// same dialect. The writes of individual records are buffered; after all
// data has been written, the client should call Flush to guarantee all
// data has been forwarded to the underlying io.Writer, and check Error
// for any error that occurred.
type Writer struct {
	// UseCRLF ends each output line with \r\n instead of \n.
	UseCRLF bool

	dialect *Dialect
	w       *bufio.Writer
	err     error
}

// NewWriter returns a new Writer that writes to w under dialect d.
// A nil dialect means [Excel].
func NewWriter(w io.Writer, d *Dialect) *Writer {
	if d == nil {
		d = &Excel
	}
	return &Writer{dialect: d, w: bufio.NewWriter(w)}
}

// Write writes a single record along with any necessary quoting.
// Writes are buffered, so Flush must eventually be called to ensure the
// record reaches the underlying io.Writer.
func (w *Writer) Write(record []Value) error {
	if w.err != nil {
		return w.err
	}
	for i, v := range record {
		if i > 0 {
			if w.err = w.w.WriteByte(w.dialect.Delimiter); w.err != nil {
				return w.err
			}
		}
		if w.err = w.writeField(v); w.err != nil {
			return w.err
		}
	}
	return w.writeLineEnding()
}

// WriteStrings writes a record of string fields.
func (w *Writer) WriteStrings(record []string) error {
	values := make([]Value, len(record))
	for i, s := range record {
		values[i] = StringValue(s)
	}
	return w.Write(values)
}

// WriteAll writes multiple records using Write and then calls Flush,
// returning any error from the Flush.
func (w *Writer) WriteAll(records [][]Value) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	w.err = w.w.Flush()
	return w.err
}

// Error reports any error that has occurred during a previous Write or
// Flush.
func (w *Writer) Error() error {
	return w.err
}

// writeField writes a single field, quoting per the dialect's style.
func (w *Writer) writeField(v Value) error {
	field := v.String()
	if w.quoteField(field, v.Type) {
		return w.writeQuotedField(field)
	}
	return w.writeBareField(field)
}

// quoteField reports whether the field must be quoted.
func (w *Writer) quoteField(field string, typ FieldType) bool {
	d := w.dialect
	if !d.quoting() {
		return false
	}
	switch d.Quoting {
	case QuoteAll:
		return true
	case QuoteNonNumeric:
		// Unquoted output reads back as numeric; only numbers may stay bare.
		return typ == FieldString
	}
	// Minimal quoting.
	if len(field) == 0 {
		return false
	}
	if field[0] == ' ' || field[0] == '\t' {
		return true
	}
	for i := 0; i < len(field); i++ {
		b := field[i]
		if b == d.Delimiter || b == d.Quote || b == '\n' || b == '\r' {
			return true
		}
		if d.Escape != 0 && b == d.Escape {
			return true
		}
	}
	return false
}

// writeQuotedField writes a quoted field, escaping embedded quote and
// escape characters.
func (w *Writer) writeQuotedField(field string) error {
	d := w.dialect
	if err := w.w.WriteByte(d.Quote); err != nil {
		return err
	}
	for i := 0; i < len(field); i++ {
		b := field[i]
		switch {
		case b == d.Quote && d.DoubleQuote:
			if _, err := w.w.Write([]byte{d.Quote, d.Quote}); err != nil {
				return err
			}
			continue
		case b == d.Quote && d.Escape != 0:
			if err := w.w.WriteByte(d.Escape); err != nil {
				return err
			}
		case d.Escape != 0 && b == d.Escape:
			if err := w.w.WriteByte(d.Escape); err != nil {
				return err
			}
		}
		if err := w.w.WriteByte(b); err != nil {
			return err
		}
	}
	return w.w.WriteByte(d.Quote)
}

// writeBareField writes a field without quotes. With quoting disabled,
// special characters are escaped via the dialect's escape character;
// with no escape character configured they are written through, which
// mirrors the parser's policy of leaving dialect collisions to the
// caller.
func (w *Writer) writeBareField(field string) error {
	d := w.dialect
	if d.Escape == 0 {
		_, err := w.w.WriteString(field)
		return err
	}
	for i := 0; i < len(field); i++ {
		b := field[i]
		if b == d.Delimiter || b == d.Escape || b == '\n' || b == '\r' {
			if err := w.w.WriteByte(d.Escape); err != nil {
				return err
			}
			if b == '\r' {
				// An escaped line break always reads back as \n.
				b = '\n'
			}
		}
		if err := w.w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// writeLineEnding writes the appropriate line ending.
func (w *Writer) writeLineEnding() error {
	if w.UseCRLF {
		_, w.err = w.w.WriteString("\r\n")
	} else {
		w.err = w.w.WriteByte('\n')
	}
	return w.err
}
