package dialectcsv

// QuoteStyle controls when fields are quoted on output and how
// string/numeric typing is inferred on input.
type QuoteStyle uint8

const (
	// QuoteNone disables quote processing entirely. The quote character
	// is treated as ordinary field data.
	QuoteNone QuoteStyle = iota

	// QuoteMinimal quotes only fields that contain the delimiter, the
	// quote character, or a line break.
	QuoteMinimal

	// QuoteAll quotes every field.
	QuoteAll

	// QuoteNonNumeric quotes string fields only; unquoted fields are
	// parsed as floating-point numbers.
	QuoteNonNumeric
)

// Dialect bundles the formatting rules for one CSV variant: the field
// delimiter, quoting, and escaping behavior.
//
// A Dialect is plain configuration with no behavior of its own. No
// validation is performed on construction; avoiding collisions between
// Delimiter, Quote, and Escape is the caller's responsibility. A parser
// borrows the Dialect for the duration of a session and never mutates it,
// so one Dialect value may back any number of parsers.
type Dialect struct {
	// Delimiter is the field separator.
	Delimiter byte

	// Quote is the quote character. Zero disables quoting, as does
	// Quoting == QuoteNone.
	Quote byte

	// Escape is the escape character. Zero disables escape processing.
	Escape byte

	// DoubleQuote controls whether a literal quote inside a quoted field
	// is represented as two consecutive quote characters.
	DoubleQuote bool

	// SkipInitialSpace causes spaces immediately following the delimiter
	// to be ignored.
	SkipInitialSpace bool

	// Strict makes malformed input a parse error instead of recovering
	// leniently.
	Strict bool

	// Quoting is the quoting style.
	Quoting QuoteStyle
}

// Excel describes comma-delimited data as generated by Excel:
// minimally quoted, doubled-quote escaping, non-strict.
var Excel = Dialect{
	Delimiter:   ',',
	Quote:       '"',
	DoubleQuote: true,
	Quoting:     QuoteMinimal,
}

// ExcelTab is [Excel] with a tab delimiter.
var ExcelTab = Dialect{
	Delimiter:   '\t',
	Quote:       '"',
	DoubleQuote: true,
	Quoting:     QuoteMinimal,
}

// quoting reports whether quote processing is enabled for d.
func (d *Dialect) quoting() bool {
	return d.Quote != 0 && d.Quoting != QuoteNone
}
