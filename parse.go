package dialectcsv

import "unsafe"

// =============================================================================
// Field State Machine - the core lexer
// =============================================================================

// parseState enumerates the states of the field state machine.
type parseState uint8

const (
	stateStartRecord parseState = iota
	stateStartField
	stateEscapedChar
	stateInField
	stateInQuotedField
	stateEscapeInQuotedField
	stateQuoteInQuotedField
	stateEatCRLF
)

// EndOfRow is the sentinel field index delivered after the last field of
// each row. It signals "row complete" to the layer above; no realizable
// field index can equal it.
const EndOfRow = int(^uint(0) >> 1)

// DefaultMaxFieldLen is the default maximum field length (128 KiB).
// Exceeding it is a terminal error, never a silent truncation.
const DefaultMaxFieldLen = 128 * 1024

// RawFieldFunc receives each completed field as raw bytes plus the
// inferred type, and the [EndOfRow] sentinel (with a nil field) after
// each row. The field slice aliases the parser's working buffer and is
// valid only for the duration of the call. Returning true stops the
// parse; an early stop is a successful termination.
type RawFieldFunc func(index int, field []byte, kind FieldType) (stop bool)

// FieldFunc receives each completed field as a materialized [Value], and
// the [EndOfRow] sentinel (with a zero Value) after each row. Returning
// true stops the parse.
type FieldFunc func(index int, v Value) (stop bool)

// Parser converts delimited-text bytes into fields under the rules of
// one [Dialect].
//
// A Parser owns mutable session state and is not safe for concurrent use;
// concurrent workloads should construct one Parser per goroutine, which
// is cheap. A Parser may be reused: every parse call fully resets the
// session first, so repeated calls behave identically to calls on fresh
// instances.
type Parser struct {
	// MaxFieldLen is the maximum permitted field length in bytes.
	// Zero means DefaultMaxFieldLen.
	MaxFieldLen int

	dialect *Dialect

	// Session state, reset at the start of every parse call.
	state      parseState
	buf        fieldBuffer
	fieldType  FieldType
	fieldIndex int
	lineNum    int
	pendingNL  bool
	stopped    bool
	err        *ParseError
	emit       RawFieldFunc
}

// NewParser returns a Parser for the given dialect. A nil dialect means
// [Excel]. The parser borrows the dialect and never mutates it.
func NewParser(d *Dialect) *Parser {
	if d == nil {
		d = &Excel
	}
	return &Parser{dialect: d, MaxFieldLen: DefaultMaxFieldLen}
}

// Dialect returns the dialect the parser was constructed with.
func (p *Parser) Dialect() *Dialect {
	return p.dialect
}

// Line returns the 1-based number of the line most recently fed to the
// state machine. It is meaningful inside parse callbacks.
func (p *Parser) Line() int {
	return p.lineNum
}

// Release returns the parser's heap-allocated field storage to the
// allocator. The parser remains usable; a later oversized field simply
// reallocates.
func (p *Parser) Release() {
	p.buf.release()
}

// ParseRaw tokenizes data and delivers every field to fn as raw bytes
// plus inferred type, followed by the [EndOfRow] sentinel after each row.
// This is the lowest-level entry point; it performs no per-field
// allocation for fields that fit the inline buffer.
//
// The first error encountered aborts the call and is returned as a
// *[ParseError]. Stopping via fn is a successful termination with
// whatever was already delivered.
func (p *Parser) ParseRaw(data []byte, fn RawFieldFunc) error {
	p.resetSession(fn)
	forEachLine(data, func(line []byte) bool {
		p.beginLine()
		for i := 0; i < len(line); i++ {
			if p.err != nil || p.stopped {
				break
			}
			p.stepData(line[i])
		}
		if p.err == nil && !p.stopped {
			p.stepTerminator()
		}
		return p.err == nil && !p.stopped
	})
	if p.err == nil && !p.stopped {
		p.finish()
	}
	p.emit = nil
	if p.err != nil {
		return p.err
	}
	return nil
}

// ParseFields is ParseRaw with each field materialized into a [Value].
func (p *Parser) ParseFields(data []byte, fn FieldFunc) error {
	return p.ParseRaw(data, func(index int, field []byte, kind FieldType) bool {
		if index == EndOfRow {
			return fn(EndOfRow, Value{})
		}
		return fn(index, convertField(field, kind))
	})
}

// resetSession restores the parser to its initial state for a new call.
func (p *Parser) resetSession(fn RawFieldFunc) {
	p.state = stateStartRecord
	p.buf.reset()
	p.fieldType = FieldString
	p.fieldIndex = 0
	p.lineNum = 0
	p.pendingNL = false
	p.stopped = false
	p.err = nil
	p.emit = fn
}

// beginLine prepares the state machine for the next logical line.
// A line boundary inside a quoted field or escape sequence is a
// continuation of the current record, so session state is preserved and
// the newline that split the field is restored; otherwise the machine
// restarts in StartRecord.
func (p *Parser) beginLine() {
	p.lineNum++
	switch p.state {
	case stateInQuotedField, stateEscapeInQuotedField:
		if p.pendingNL {
			p.appendByte('\n')
			p.pendingNL = false
		}
	case stateInField, stateEscapedChar:
		// Continuation after an escaped line break.
	default:
		p.state = stateStartRecord
		p.fieldIndex = 0
		p.fieldType = FieldString
		p.buf.reset()
	}
}

// stepData advances the state machine by one data byte.
func (p *Parser) stepData(b byte) {
	if b == 0 {
		// NUL is reserved as the internal line terminator marker.
		p.fail(ErrNulByte)
		return
	}
	d := p.dialect
	switch p.state {
	case stateStartRecord:
		p.state = stateStartField
		fallthrough

	case stateStartField:
		switch {
		case d.quoting() && b == d.Quote:
			p.state = stateInQuotedField
		case d.Escape != 0 && b == d.Escape:
			p.state = stateEscapedChar
		case b == d.Delimiter:
			p.emitField()
		case d.SkipInitialSpace && b == ' ':
			// Consumed silently.
		default:
			if d.Quoting == QuoteNonNumeric {
				p.fieldType = FieldNumber
			}
			p.appendByte(b)
			p.state = stateInField
		}

	case stateEscapedChar:
		p.appendByte(b)
		p.state = stateInField

	case stateInField:
		switch {
		case d.Escape != 0 && b == d.Escape:
			p.state = stateEscapedChar
		case b == d.Delimiter:
			p.emitField()
			p.state = stateStartField
		default:
			p.appendByte(b)
		}

	case stateInQuotedField:
		switch {
		case d.Escape != 0 && b == d.Escape:
			p.state = stateEscapeInQuotedField
		case b == d.Quote:
			if d.DoubleQuote {
				// Could be an escaped quote or the end of the field;
				// the next byte disambiguates.
				p.state = stateQuoteInQuotedField
			} else {
				p.state = stateInField
			}
		default:
			p.appendByte(b)
		}

	case stateEscapeInQuotedField:
		p.appendByte(b)
		p.state = stateInQuotedField

	case stateQuoteInQuotedField:
		switch {
		case b == d.Quote:
			// Doubled quote: one literal quote character.
			p.appendByte(b)
			p.state = stateInQuotedField
		case b == d.Delimiter:
			p.emitField()
			p.state = stateStartField
		default:
			if d.Strict {
				p.fail(ErrQuote)
				return
			}
			// Lenient: keep trailing content after the closing quote.
			p.appendByte(b)
			p.state = stateInField
		}

	case stateEatCRLF:
		// Unreachable with the line splitter stripping newlines; kept as
		// a defensive state for residual CR/LF bytes.
		if b == '\r' || b == '\n' {
			return
		}
		if d.Strict {
			p.fail(ErrEmbeddedNewline)
		}
	}
}

// stepTerminator advances the state machine past the synthetic line
// terminator that follows the last byte of each logical line.
func (p *Parser) stepTerminator() {
	switch p.state {
	case stateStartRecord:
		// Empty line: no row.
	case stateStartField, stateInField, stateQuoteInQuotedField:
		p.endOfLine()
	case stateEscapedChar:
		// Escaped line break: a literal newline joins the halves and the
		// field continues on the next line.
		p.appendByte('\n')
		p.state = stateInField
	case stateInQuotedField:
		// Raw newlines are legal inside quotes. Restore the newline only
		// if another line actually follows, so an unterminated quote at
		// end of input does not grow a trailing newline.
		p.pendingNL = true
	case stateEscapeInQuotedField:
		p.appendByte('\n')
		p.state = stateInQuotedField
	case stateEatCRLF:
		p.state = stateStartRecord
	}
}

// endOfLine emits the final field of the line and the end-of-row signal.
func (p *Parser) endOfLine() {
	p.emitField()
	if !p.stopped {
		p.emitEndOfRow()
	}
	p.state = stateEatCRLF
}

// finish flushes a record left open at end of input. A quoted field with
// no closing quote is an error under a strict dialect and is flushed
// as-is otherwise.
func (p *Parser) finish() {
	switch p.state {
	case stateStartRecord, stateEatCRLF:
		return
	case stateInQuotedField, stateEscapeInQuotedField:
		if p.dialect.Strict {
			p.fail(ErrQuote)
			return
		}
	}
	p.endOfLine()
}

// emitField delivers the accumulated field bytes and resets per-field
// state. The stop flag is consulted on return from the callback, never
// mid-append.
func (p *Parser) emitField() {
	if p.emit != nil && p.emit(p.fieldIndex, p.buf.bytes(), p.fieldType) {
		p.stopped = true
	}
	p.buf.reset()
	p.fieldType = FieldString
	p.fieldIndex++
}

// emitEndOfRow delivers the end-of-row sentinel.
func (p *Parser) emitEndOfRow() {
	if p.emit != nil && p.emit(EndOfRow, nil, FieldString) {
		p.stopped = true
	}
}

// appendByte adds one byte to the current field, enforcing the maximum
// field length independently of buffer capacity.
func (p *Parser) appendByte(b byte) {
	limit := p.MaxFieldLen
	if limit <= 0 {
		limit = DefaultMaxFieldLen
	}
	if p.buf.len() >= limit {
		p.fail(ErrFieldTooLong)
		return
	}
	if err := p.buf.appendByte(b); err != nil {
		p.fail(err)
	}
}

// fail latches the first error of the call with its coordinates.
func (p *Parser) fail(err error) {
	if p.err != nil {
		return
	}
	p.err = &ParseError{Line: p.lineNum, Field: p.fieldIndex, Err: err}
}

// =============================================================================
// Line Splitter
// =============================================================================

// forEachLine partitions data into logical lines in a single pass and
// hands each span to fn without copying. CR, LF, and CRLF are all one
// line boundary; the LF of a CRLF pair is swallowed, not a second
// boundary. A final newline-unterminated line is still delivered.
// fn returning false aborts the walk.
func forEachLine(data []byte, fn func(line []byte) bool) {
	start := 0
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '\r' && c != '\n' {
			continue
		}
		if !fn(data[start:i]) {
			return
		}
		if c == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			i++
		}
		start = i + 1
	}
	if start < len(data) {
		fn(data[start:])
	}
}

// =============================================================================
// Package-level convenience
// =============================================================================

// ParseBytes parses data under d (nil means [Excel]) and returns all rows.
func ParseBytes(data []byte, d *Dialect) ([][]Value, error) {
	return NewParser(d).Rows(data)
}

// ParseString is [ParseBytes] for string input. The bytes are viewed
// without copying; the parser never mutates its input.
func ParseString(s string, d *Dialect) ([][]Value, error) {
	return ParseBytes(stringBytes(s), d)
}

// stringBytes returns a zero-copy read-only byte view of s.
func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
