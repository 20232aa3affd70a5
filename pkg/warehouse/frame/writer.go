package frame

import (
	"context"
	"fmt"
	"strings"
)

// SaveMode : what to do when the target table already exists
type SaveMode string

const (
	Overwrite     SaveMode = "overwrite"
	Append        SaveMode = "append"
	ErrorIfExists SaveMode = "errorifexists"
	Ignore        SaveMode = "ignore"
)

// ParseSaveMode : case insensitive
func ParseSaveMode(s string) (SaveMode, error) {
	m := SaveMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case Overwrite, Append, ErrorIfExists, Ignore:
		return m, nil
	}
	return "", fmt.Errorf("unknown save mode %q", s)
}

// Writer : persists a frame , defaults to ErrorIfExists
type Writer struct {
	df   *DataFrame
	mode SaveMode
}

func (df *DataFrame) Write() *Writer {
	return &Writer{df: df, mode: ErrorIfExists}
}

func (w *Writer) Mode(m SaveMode) *Writer {
	return &Writer{df: w.df, mode: m}
}

// Statement : the DML/DDL SaveAsTable would run
func (w *Writer) Statement(table string) (string, error) {
	target, err := QuoteTableName(table)
	if err != nil {
		return "", err
	}
	q, err := w.df.SQL()
	if err != nil {
		return "", err
	}
	switch w.mode {
	case Overwrite:
		return fmt.Sprintf("CREATE OR REPLACE TABLE %s AS %s", target, q), nil
	case ErrorIfExists:
		return fmt.Sprintf("CREATE TABLE %s AS %s", target, q), nil
	case Ignore:
		return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s AS %s", target, q), nil
	case Append:
		cols := w.df.Columns()
		for i, c := range cols {
			cols[i] = quoteIdent(c)
		}
		return fmt.Sprintf("INSERT INTO %s (%s) %s", target, strings.Join(cols, ", "), q), nil
	}
	return "", fmt.Errorf("unknown save mode %q", w.mode)
}

// SaveAsTable : writes the frame into table in one statement
func (w *Writer) SaveAsTable(ctx context.Context, table string) error {
	stmt, err := w.Statement(table)
	if err != nil {
		return err
	}
	if _, err := w.df.exec.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("save as table %s (%s) : %w", table, w.mode, err)
	}
	return nil
}
