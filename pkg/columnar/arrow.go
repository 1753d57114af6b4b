package columnar

import (
	"bytes"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/frame"
	"github.com/ajitpratap0/tabular/pkg/metrics"
)

// Schema infers the Arrow schema of a table. Cells past the last named
// column are not represented.
func Schema(t *frame.Table) *arrow.Schema {
	names := t.Names()
	fields := make([]arrow.Field, len(names))
	for j, name := range names {
		fields[j] = arrow.Field{Name: name, Type: columnType(t, j), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

func columnType(t *frame.Table, j int) arrow.DataType {
	for _, c := range t.ColumnByIndex(j) {
		if !c.IsNumber() {
			return arrow.BinaryTypes.String
		}
	}
	return arrow.PrimitiveTypes.Float64
}

// Record builds an Arrow record from the table. The caller must Release it.
func Record(t *frame.Table, mem memory.Allocator) arrow.Record {
	schema := Schema(t)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for j, field := range schema.Fields() {
		col := t.ColumnByIndex(j)
		switch fb := b.Field(j).(type) {
		case *array.Float64Builder:
			fb.Reserve(len(col))
			for _, c := range col {
				if c.IsMissing() {
					fb.AppendNull()
					continue
				}
				v, _ := c.AsNumber()
				fb.Append(v)
			}
		case *array.StringBuilder:
			fb.Reserve(len(col))
			for _, c := range col {
				if c.IsMissing() {
					fb.AppendNull()
					continue
				}
				fb.Append(c.String())
			}
		default:
			panic("columnar: unexpected builder for field " + field.Name)
		}
	}
	return b.NewRecord()
}

// WriteIPC writes the table to w in the Arrow IPC file format.
func WriteIPC(w io.Writer, t *frame.Table) error {
	mem := memory.NewGoAllocator()
	rec := Record(t, mem)
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to create arrow writer")
	}
	if err := fw.Write(rec); err != nil {
		_ = fw.Close()
		return errors.Wrap(err, errors.ErrorTypeData, "failed to write record batch")
	}
	if err := fw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to close arrow writer")
	}
	metrics.RecordOperation("write_arrow", nil)
	return nil
}

// ReadIPC reads an Arrow IPC file into a table. Float, integer and string
// columns are supported; record batches are concatenated.
func ReadIPC(data []byte, opts ...frame.Option) (*frame.Table, error) {
	fr, err := ipc.NewFileReader(bytes.NewReader(data), ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to open arrow file")
	}
	defer fr.Close()

	fields := fr.Schema().Fields()
	names := make([]string, len(fields))
	for j, f := range fields {
		names[j] = f.Name
	}

	var rows [][]frame.Cell
	for i := 0; i < fr.NumRecords(); i++ {
		rec, err := fr.Record(i)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read record batch").
				WithDetail("batch", i)
		}
		batch := make([][]frame.Cell, rec.NumRows())
		for r := range batch {
			batch[r] = make([]frame.Cell, len(fields))
		}
		for j := range fields {
			if err := readColumn(rec.Column(j), j, batch); err != nil {
				return nil, err.WithDetail("column", names[j])
			}
		}
		rows = append(rows, batch...)
	}
	return frame.New(rows, names, opts...)
}

func readColumn(col arrow.Array, j int, rows [][]frame.Cell) *errors.Error {
	for r := range rows {
		if col.IsNull(r) {
			rows[r][j] = frame.Missing()
			continue
		}
		switch a := col.(type) {
		case *array.Float64:
			rows[r][j] = frame.Number(a.Value(r))
		case *array.Float32:
			rows[r][j] = frame.Number(float64(a.Value(r)))
		case *array.Int64:
			rows[r][j] = frame.Number(float64(a.Value(r)))
		case *array.Int32:
			rows[r][j] = frame.Number(float64(a.Value(r)))
		case *array.String:
			rows[r][j] = frame.Text(a.Value(r))
		default:
			return errors.Newf(errors.ErrorTypeData, "unsupported arrow type %s", col.DataType())
		}
	}
	return nil
}
