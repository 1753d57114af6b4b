// Package columnar converts tables to and from Apache Arrow.
//
// A column whose cells are all numbers becomes a float64 field, anything
// else becomes a utf8 field holding each cell's string form. Missing cells
// (NaN) are written as nulls and read back as missing numbers.
//
//	var buf bytes.Buffer
//	if err := columnar.WriteIPC(&buf, table); err != nil {
//		return err
//	}
//	back, err := columnar.ReadIPC(buf.Bytes())
package columnar
