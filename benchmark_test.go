package dialectcsv

import (
	"bytes"
	"encoding/csv"
	"testing"
)

// =============================================================================
// Parsing Benchmarks
// =============================================================================

func BenchmarkRows_Simple_1K(b *testing.B) {
	data := generateSimpleCSV(1000, 10)
	b.SetBytes(int64(len(data)))
	p := NewParser(nil)
	for i := 0; i < b.N; i++ {
		_, _ = p.Rows(data)
	}
}

func BenchmarkRows_Simple_1K_Stdlib(b *testing.B) {
	data := generateSimpleCSV(1000, 10)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.FieldsPerRecord = -1
		_, _ = reader.ReadAll()
	}
}

func BenchmarkRows_Quoted_1K(b *testing.B) {
	data := generateQuotedCSV(1000, 10)
	b.SetBytes(int64(len(data)))
	p := NewParser(nil)
	for i := 0; i < b.N; i++ {
		_, _ = p.Rows(data)
	}
}

func BenchmarkRows_Quoted_1K_Stdlib(b *testing.B) {
	data := generateQuotedCSV(1000, 10)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.FieldsPerRecord = -1
		_, _ = reader.ReadAll()
	}
}

// BenchmarkParseRaw measures the zero-allocation field stream path.
func BenchmarkParseRaw_Simple_1K(b *testing.B) {
	data := generateSimpleCSV(1000, 10)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	p := NewParser(nil)
	for i := 0; i < b.N; i++ {
		_ = p.ParseRaw(data, func(index int, field []byte, kind FieldType) bool {
			return false
		})
	}
}

// =============================================================================
// Writing Benchmarks
// =============================================================================

func BenchmarkWriteAll_1K(b *testing.B) {
	rows, err := ParseBytes(generateQuotedCSV(1000, 10), nil)
	if err != nil {
		b.Fatal(err)
	}
	var buf bytes.Buffer
	for i := 0; i < b.N; i++ {
		buf.Reset()
		w := NewWriter(&buf, nil)
		_ = w.WriteAll(rows)
	}
}
