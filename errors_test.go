package dialectcsv

import (
	"errors"
	"testing"
)

// =============================================================================
// ParseError Tests
// =============================================================================

// TestParseError_Format tests the error message layout.
func TestParseError_Format(t *testing.T) {
	err := &ParseError{Line: 3, Field: 1, Err: ErrFieldTooLong}
	want := "parse error on line 3, field 1: field exceeds maximum length"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// TestParseError_Unwrap tests errors.Is/errors.As traversal.
func TestParseError_Unwrap(t *testing.T) {
	err := error(&ParseError{Line: 1, Field: 0, Err: ErrNulByte})
	if !errors.Is(err, ErrNulByte) {
		t.Error("errors.Is failed to reach the sentinel")
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Line != 1 {
		t.Error("errors.As failed to recover the ParseError")
	}
}

// TestParseError_Sentinels tests that the sentinel errors are distinct.
func TestParseError_Sentinels(t *testing.T) {
	sentinels := []error{
		ErrFieldTooLong,
		ErrBufferLimit,
		ErrQuote,
		ErrEmbeddedNewline,
		ErrNulByte,
		ErrFieldCount,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v matches %v", a, b)
			}
		}
	}
}

// TestParseError_FirstErrorWins tests that one call reports only the
// first failure.
func TestParseError_FirstErrorWins(t *testing.T) {
	strict := Excel
	strict.Strict = true

	// Line 1 has malformed quoting; line 2 contains a NUL. The parse
	// must stop at, and report, the line 1 failure.
	_, err := ParseString("\"a\"x\nb,\x00\n", &strict)
	if !errors.Is(err, ErrQuote) {
		t.Fatalf("err = %v, want ErrQuote", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatal("not a *ParseError")
	}
	if pe.Line != 1 {
		t.Errorf("reported line %d, want 1", pe.Line)
	}
}
