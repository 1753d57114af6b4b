// Package frame implements an in-memory table of numbers and strings with
// CSV and JSON interchange, column access, filtering, sorting and
// fixed-width printing.
//
// # Cells
//
// Every value is a Cell holding either a float64 or a string. NaN is the
// missing-value marker; it is used to pad columns added with fewer values
// than the table has rows and is written to JSON as null.
//
// # CSV
//
// The CSV dialect is line oriented: lines end in CRLF, fields are split on
// a literal delimiter and there is no quoting. Fields are coerced with
// Coerce, which understands a configurable decimal mark:
//
//	t, err := frame.FromCSV("day;rain\r\n1;4,5\r\n", frame.CSVOptions{Delimiter: ";", Decimal: ","})
//
// ToCSV writes the same dialect back, with a delimiter after every cell.
//
// # Diagnostics
//
// Operations degrade instead of failing. An unknown column, a row of the
// wrong width or a sort over mixed kinds is logged as a warning and
// returned as an *errors.Error next to a usable result (an empty column,
// the unmodified table, and so on). Callers may act on the error or
// ignore it.
//
// # Persistence
//
// The table never touches storage directly. WriteCSV hands the serialized
// bytes to a Persister; see package persist for implementations.
//
// A Table is meant for a single goroutine.
package frame
