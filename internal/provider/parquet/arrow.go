// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

package parquet

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/tomtom215/debiai-data-provider/internal/project"
)

// readTable reads a whole Parquet file into an Arrow table.
// The caller must release the table.
func readTable(ctx context.Context, path string) (arrow.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	mem := memory.NewGoAllocator()
	pf, err := file.NewParquetReader(f, file.WithReadProps(parquet.NewReaderProperties(mem)))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader for %s: %w", path, err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader for %s: %w", path, err)
	}

	table, err := reader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data from %s: %w", path, err)
	}
	return table, nil
}

// fieldNames returns the column names of schema.
func fieldNames(schema *arrow.Schema) []string {
	names := make([]string, schema.NumFields())
	for i, f := range schema.Fields() {
		names[i] = f.Name
	}
	return names
}

// columnValues flattens the chunks of column i into plain Go values.
func columnValues(table arrow.Table, i int) []any {
	values := make([]any, 0, table.NumRows())
	for _, chunk := range table.Column(i).Data().Chunks() {
		for pos := 0; pos < chunk.Len(); pos++ {
			values = append(values, valueAt(chunk, pos))
		}
	}
	return values
}

// readIDs converts the id column into sample ids. Only string and integer
// columns can hold sample ids.
func readIDs(table arrow.Table, i int) ([]project.ID, error) {
	field := table.Schema().Field(i)
	values := columnValues(table, i)
	ids := make([]project.ID, len(values))
	for row, v := range values {
		switch x := v.(type) {
		case nil:
			return nil, fmt.Errorf("sample id column %q is null at row %d", field.Name, row)
		case string:
			ids[row] = project.StringID(x)
		case int64:
			ids[row] = project.IntID(x)
		default:
			return nil, fmt.Errorf("sample id column %q has type %s, expected a string or integer column", field.Name, field.Type)
		}
	}
	return ids, nil
}

// inferType maps an Arrow type onto a column type. Types without a
// DebiAI counterpart stay unset.
func inferType(dt arrow.DataType) project.ColumnType {
	switch dt.ID() {
	case arrow.STRING, arrow.LARGE_STRING, arrow.STRING_VIEW:
		return project.TypeText
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64,
		arrow.DECIMAL128, arrow.DECIMAL256:
		return project.TypeNumber
	case arrow.BOOL:
		return project.TypeBool
	case arrow.LIST, arrow.LARGE_LIST, arrow.FIXED_SIZE_LIST:
		return project.TypeList
	case arrow.STRUCT, arrow.MAP:
		return project.TypeDict
	default:
		return project.TypeAuto
	}
}

// valueAt returns the value at pos as nil, bool, int64, float64, string,
// []any or map[string]any.
func valueAt(col arrow.Array, pos int) any {
	if col.IsNull(pos) {
		return nil
	}

	switch a := col.(type) {
	case *array.String:
		return a.Value(pos)
	case *array.LargeString:
		return a.Value(pos)
	case *array.Binary:
		return string(a.Value(pos))
	case *array.Boolean:
		return a.Value(pos)
	case *array.Int8:
		return int64(a.Value(pos))
	case *array.Int16:
		return int64(a.Value(pos))
	case *array.Int32:
		return int64(a.Value(pos))
	case *array.Int64:
		return a.Value(pos)
	case *array.Uint8:
		return int64(a.Value(pos))
	case *array.Uint16:
		return int64(a.Value(pos))
	case *array.Uint32:
		return int64(a.Value(pos))
	case *array.Uint64:
		v := a.Value(pos)
		if v > math.MaxInt64 {
			return strconv.FormatUint(v, 10)
		}
		return int64(v)
	case *array.Float16:
		return float64(a.Value(pos).Float32())
	case *array.Float32:
		return float64(a.Value(pos))
	case *array.Float64:
		return a.Value(pos)
	case *array.Date32:
		return a.Value(pos).ToTime().Format("2006-01-02")
	case *array.Date64:
		return a.Value(pos).ToTime().Format("2006-01-02")
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(pos).ToTime(unit).UTC().Format("2006-01-02T15:04:05.999999999Z")
	case *array.List:
		start, end := a.ValueOffsets(pos)
		return sliceValues(a.ListValues(), int(start), int(end))
	case *array.LargeList:
		start, end := a.ValueOffsets(pos)
		return sliceValues(a.ListValues(), int(start), int(end))
	case *array.Struct:
		st := a.DataType().(*arrow.StructType)
		m := make(map[string]any, a.NumField())
		for i := 0; i < a.NumField(); i++ {
			m[st.Field(i).Name] = valueAt(a.Field(i), pos)
		}
		return m
	default:
		return col.GetOneForMarshal(pos)
	}
}

func sliceValues(values arrow.Array, start, end int) []any {
	out := make([]any, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, valueAt(values, i))
	}
	return out
}
