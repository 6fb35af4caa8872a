package dialectcsv

import (
	"bytes"
	"reflect"
	"testing"
)

// FuzzParseRows checks structural invariants on arbitrary input: the
// parser never panics, a reused parser agrees with a fresh one, and
// inputs containing NUL bytes always fail with ErrNulByte.
func FuzzParseRows(f *testing.F) {
	f.Add([]byte("a,b,c\n1,2,3\n"))
	f.Add([]byte("\"quoted,field\",\"with \"\"quotes\"\"\"\n"))
	f.Add([]byte("\"multi\nline\"\r\nnext,row"))
	f.Add([]byte("unterminated,\"quote"))
	f.Add([]byte("\r\n\r\n\r"))
	f.Add([]byte{0})

	f.Fuzz(func(t *testing.T, data []byte) {
		p := NewParser(nil)
		first, err1 := p.Rows(data)
		second, err2 := p.Rows(data)
		fresh, err3 := NewParser(nil).Rows(data)

		if (err1 == nil) != (err2 == nil) || (err1 == nil) != (err3 == nil) {
			t.Fatalf("inconsistent errors: %v %v %v", err1, err2, err3)
		}
		if !reflect.DeepEqual(first, second) || !reflect.DeepEqual(first, fresh) {
			t.Fatal("reused parser disagrees with fresh parser")
		}

		hasNul := bytes.IndexByte(data, 0) >= 0
		if hasNul && err1 == nil {
			t.Fatal("input with NUL byte parsed without error")
		}
		if err1 != nil {
			return
		}
		for _, row := range first {
			if row == nil {
				t.Fatal("delivered nil row")
			}
		}
	})
}
