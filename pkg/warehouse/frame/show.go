package frame

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/lensesio/tableprinter"
)

// Show : collects the frame and prints it as a table
func (df *DataFrame) Show(ctx context.Context, w io.Writer) error {
	rows, err := df.Collect(ctx)
	if err != nil {
		return err
	}
	Print(w, df.Schema(), rows)
	return nil
}

// Print : renders already collected rows under the schema's column names ,
// numeric kinds are right aligned
func Print(w io.Writer, schema Schema, rows []Row) {
	cells := make([][]string, len(rows))
	for ri, r := range rows {
		cells[ri] = make([]string, len(r))
		for ci, v := range r {
			cells[ri][ci] = FormatCell(v)
		}
	}

	printer := tableprinter.New(w)
	printer.AutoFormatHeaders = false
	printer.AutoWrapText = false
	printer.Render(schema.Names(), cells, numberColumns(schema), true)
}

func numberColumns(schema Schema) []int {
	var res []int
	for i, f := range schema {
		if isNumeric(f.Kind) {
			res = append(res, i)
		}
	}
	return res
}

// FormatCell : display form of a collected value
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return t.Format("2006-01-02 15:04:05.000 -0700")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case string:
		return t
	}
	return fmt.Sprint(v)
}
