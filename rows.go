package dialectcsv

// =============================================================================
// Row Accumulator - batches the field stream into row snapshots
// =============================================================================

// RowFunc receives one completed row per line. The row is a fresh copy
// owned by the consumer. Returning true stops the parse.
type RowFunc func(row []Value) (stop bool)

// rowAccumulator collects emitted fields in index order and snapshots
// them on the end-of-row signal. The working slice is reused across rows
// and never aliased into a delivered row.
type rowAccumulator struct {
	work []Value
}

func (a *rowAccumulator) add(v Value) {
	a.work = append(a.work, v)
}

// take copies the working sequence into an immutable row and clears it
// for the next line.
func (a *rowAccumulator) take() []Value {
	row := make([]Value, len(a.work))
	copy(row, a.work)
	a.work = a.work[:0]
	return row
}

// ParseRows parses data and delivers one row per line to fn. Rows are
// layered strictly on top of the field callback stream: fields accumulate
// in index order and the [EndOfRow] sentinel flushes them.
func (p *Parser) ParseRows(data []byte, fn RowFunc) error {
	var acc rowAccumulator
	return p.ParseRaw(data, func(index int, field []byte, kind FieldType) bool {
		if index == EndOfRow {
			return fn(acc.take())
		}
		acc.add(convertField(field, kind))
		return false
	})
}

// Rows parses data and returns all rows.
func (p *Parser) Rows(data []byte) ([][]Value, error) {
	var rows [][]Value
	err := p.ParseRows(data, func(row []Value) bool {
		rows = append(rows, row)
		return false
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
