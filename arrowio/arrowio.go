// Package arrowio exports budget and zone budget tables as Apache
// Arrow records and IPC streams, for handing results to dataframe
// libraries and columnar file writers without a copy through CSV.
package arrowio

import (
	"fmt"
	"io"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/SGMOModeling/gowfm/domain/entities"
)

// timeField is the name of the leading timestamp column.
const timeField = "Time"

// Schema returns the Arrow schema of a table: a second-resolution
// timestamp column named Time followed by one float64 field per value
// column.
func Schema(table entities.Table) *arrow.Schema {
	fields := make([]arrow.Field, 0, len(table.Columns)+1)
	fields = append(fields, arrow.Field{Name: timeField, Type: arrow.FixedWidthTypes.Timestamp_s})
	for _, name := range table.Columns {
		fields = append(fields, arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64})
	}
	return arrow.NewSchema(fields, nil)
}

// Record builds an Arrow record from a table. The caller owns the
// record and must Release it.
func Record(alloc memory.Allocator, table entities.Table) (arrow.Record, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if alloc == nil {
		alloc = memory.DefaultAllocator
	}

	builder := array.NewRecordBuilder(alloc, Schema(table))
	defer builder.Release()

	times := builder.Field(0).(*array.TimestampBuilder)
	for _, t := range table.Times {
		times.Append(arrow.Timestamp(t.Unix()))
	}
	for j := range table.Columns {
		values := builder.Field(j + 1).(*array.Float64Builder)
		for _, row := range table.Data {
			values.Append(row[j])
		}
	}
	return builder.NewRecord(), nil
}

// WriteTable writes a table to w as a single-record Arrow IPC stream.
func WriteTable(w io.Writer, table entities.Table) error {
	record, err := Record(nil, table)
	if err != nil {
		return err
	}
	defer record.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(record.Schema()))
	if err := writer.Write(record); err != nil {
		writer.Close()
		return fmt.Errorf("write record: %w", err)
	}
	return writer.Close()
}

// ReadTable reads an Arrow IPC stream produced by WriteTable (or any
// stream with the same shape) back into a table. Records are
// concatenated in stream order.
func ReadTable(r io.Reader) (entities.Table, error) {
	reader, err := ipc.NewReader(r)
	if err != nil {
		return entities.Table{}, fmt.Errorf("open stream: %w", err)
	}
	defer reader.Release()

	schema := reader.Schema()
	if schema.NumFields() == 0 || schema.Field(0).Name != timeField {
		return entities.Table{}, fmt.Errorf("stream does not lead with a %s column", timeField)
	}
	if _, ok := schema.Field(0).Type.(*arrow.TimestampType); !ok {
		return entities.Table{}, fmt.Errorf("column %s is %s, want timestamp", timeField, schema.Field(0).Type)
	}

	table := entities.Table{Columns: make([]string, schema.NumFields()-1)}
	for j := 1; j < schema.NumFields(); j++ {
		field := schema.Field(j)
		if field.Type.ID() != arrow.FLOAT64 {
			return entities.Table{}, fmt.Errorf("column %s is %s, want float64", field.Name, field.Type)
		}
		table.Columns[j-1] = field.Name
	}

	for reader.Next() {
		record := reader.Record()
		times := record.Column(0).(*array.Timestamp)
		columns := make([]*array.Float64, len(table.Columns))
		for j := range columns {
			columns[j] = record.Column(j + 1).(*array.Float64)
		}
		for i := 0; i < int(record.NumRows()); i++ {
			table.Times = append(table.Times, time.Unix(int64(times.Value(i)), 0).UTC())
			row := make([]float64, len(columns))
			for j, col := range columns {
				row[j] = col.Value(i)
			}
			table.Data = append(table.Data, row)
		}
	}
	if err := reader.Err(); err != nil && err != io.EOF {
		return entities.Table{}, fmt.Errorf("read stream: %w", err)
	}
	return table, nil
}
