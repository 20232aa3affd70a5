// package frame
//
// a small dataframe facade over a snowflake session. Operations are lazy ,
// nothing reaches the warehouse until the frame is collected or written.
package frame

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Executor : the part of a session a frame needs
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type projection struct {
	name string
	expr Expr
}

// DataFrame : immutable , every transformation returns a new frame layered on the previous one
type DataFrame struct {
	exec   Executor
	parent *DataFrame
	schema Schema
	rows   []Row
	cols   []projection
	err    error
}

// New : a frame over literal rows , column kinds are inferred from the values
func New(exec Executor, rows []Row, names []string) (*DataFrame, error) {
	schema, err := inferSchema(rows, names)
	if err != nil {
		return nil, err
	}
	df := &DataFrame{
		exec:   exec,
		schema: schema,
		rows:   rows,
	}
	for _, n := range names {
		df.cols = append(df.cols, projection{name: n, expr: Col(n)})
	}
	return df, nil
}

func inferSchema(rows []Row, names []string) (Schema, error) {
	var finalErr error
	if len(names) == 0 {
		return nil, errors.New("a frame needs at least one column")
	}
	if len(rows) == 0 {
		return nil, errors.New("a frame needs at least one row")
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if err := validIdent(n); err != nil {
			finalErr = multierror.Append(finalErr, err)
		}
		if seen[n] {
			finalErr = multierror.Append(finalErr, fmt.Errorf("duplicate column %q", n))
		}
		seen[n] = true
	}

	schema := make(Schema, len(names))
	for i, n := range names {
		schema[i] = Field{Name: n}
	}
	for ri, r := range rows {
		if len(r) != len(names) {
			finalErr = multierror.Append(finalErr, fmt.Errorf("row %d has %d values , expected %d", ri, len(r), len(names)))
			continue
		}
		for ci, v := range r {
			if v == nil {
				continue
			}
			k, ok := kindOf(v)
			if !ok {
				finalErr = multierror.Append(finalErr, fmt.Errorf("row %d column %s : unsupported value type %T", ri, names[ci], v))
				continue
			}
			switch {
			case schema[ci].Kind == "":
				schema[ci].Kind = k
			case isNumeric(schema[ci].Kind) && isNumeric(k):
				// integers and floats share a column as FLOAT
				if k == KindFloat {
					schema[ci].Kind = KindFloat
				}
			case schema[ci].Kind != k:
				finalErr = multierror.Append(finalErr, fmt.Errorf("row %d column %s : got %s , column is %s", ri, names[ci], k, schema[ci].Kind))
			}
		}
	}
	if finalErr != nil {
		return nil, finalErr
	}
	for i := range schema {
		if schema[i].Kind == "" {
			schema[i].Kind = KindString
		}
	}
	return schema, nil
}

// Columns : output column names in order
func (df *DataFrame) Columns() []string {
	names := make([]string, len(df.cols))
	for i, c := range df.cols {
		names[i] = c.name
	}
	return names
}

// Schema : output columns with the kind each one evaluates to
func (df *DataFrame) Schema() Schema {
	if df.parent == nil {
		res := make(Schema, len(df.schema))
		copy(res, df.schema)
		return res
	}
	in := df.parent.Schema()
	res := make(Schema, len(df.cols))
	for i, c := range df.cols {
		res[i] = Field{Name: c.name, Kind: exprKind(c.expr, in)}
	}
	return res
}

func exprKind(e Expr, in Schema) Kind {
	switch t := e.(type) {
	case Column:
		for _, f := range in {
			if f.Name == t.Name() {
				return f.Kind
			}
		}
	case literal:
		if k, ok := kindOf(t.v); ok {
			return k
		}
	case currentTimestamp:
		return KindTimestamp
	case compare:
		return KindBoolean
	case *CaseExpr:
		values := make([]Expr, 0, len(t.branches)+1)
		for _, b := range t.branches {
			values = append(values, b.value)
		}
		if t.otherwise != nil {
			values = append(values, t.otherwise)
		}
		for _, v := range values {
			if l, ok := v.(literal); ok && l.v == nil {
				continue
			}
			return exprKind(v, in)
		}
	}
	return KindString
}

// Err : first error recorded while building the frame
func (df *DataFrame) Err() error {
	return df.err
}

// WithColumn : adds name computed by e , or replaces the column already called name
func (df *DataFrame) WithColumn(name string, e Expr) *DataFrame {
	next := &DataFrame{exec: df.exec, parent: df, err: df.err}
	if next.err == nil {
		if err := validIdent(name); err != nil {
			next.err = fmt.Errorf("with column : %w", err)
		}
	}
	replaced := false
	for _, c := range df.cols {
		if c.name == name {
			next.cols = append(next.cols, projection{name: name, expr: e})
			replaced = true
			continue
		}
		next.cols = append(next.cols, projection{name: c.name, expr: Col(c.name)})
	}
	if !replaced {
		next.cols = append(next.cols, projection{name: name, expr: e})
	}
	return next
}

// SQL : the SELECT this frame evaluates to
func (df *DataFrame) SQL() (string, error) {
	if df.err != nil {
		return "", df.err
	}
	from, err := df.fromClause()
	if err != nil {
		return "", err
	}
	proj := make([]string, 0, len(df.cols))
	for _, c := range df.cols {
		if col, ok := c.expr.(Column); ok && col.Name() == c.name {
			proj = append(proj, quoteIdent(c.name))
			continue
		}
		s, err := c.expr.SQL()
		if err != nil {
			return "", fmt.Errorf("column %s : %w", c.name, err)
		}
		proj = append(proj, s+" AS "+quoteIdent(c.name))
	}
	return "SELECT " + strings.Join(proj, ", ") + " FROM " + from, nil
}

func (df *DataFrame) fromClause() (string, error) {
	if df.parent != nil {
		inner, err := df.parent.SQL()
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	}
	tuples := make([]string, len(df.rows))
	for ri, r := range df.rows {
		cells := make([]string, len(r))
		for ci, v := range r {
			cell, err := renderCell(v, df.schema[ci].Kind)
			if err != nil {
				return "", fmt.Errorf("row %d column %s : %w", ri, df.schema[ci].Name, err)
			}
			cells[ci] = cell
		}
		tuples[ri] = "(" + strings.Join(cells, ", ") + ")"
	}
	names := df.schema.Names()
	for i, n := range names {
		names[i] = quoteIdent(n)
	}
	return "(VALUES " + strings.Join(tuples, ", ") + ") AS T(" + strings.Join(names, ", ") + ")", nil
}

// Collect : runs the frame and materializes every row
func (df *DataFrame) Collect(ctx context.Context) ([]Row, error) {
	q, err := df.SQL()
	if err != nil {
		return nil, err
	}
	rows, err := df.exec.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("collect : %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("collect : %w", err)
	}
	var res []Row
	for rows.Next() {
		vals := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("collect : %w", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		res = append(res, Row(vals))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("collect : %w", err)
	}
	return res, nil
}
