package frame

import (
	"fmt"
	"strings"
	"time"
)

// Expr : a column expression , rendered to snowflake SQL or evaluated locally
// against a record. Local evaluation follows SQL NULL semantics.
type Expr interface {
	SQL() (string, error)
	Eval(r Record) (any, error)
}

// Column : reference to a column by name
type Column struct {
	name string
}

func Col(name string) Column {
	return Column{name: name}
}

func (c Column) Name() string {
	return c.name
}

func (c Column) SQL() (string, error) {
	if err := validIdent(c.name); err != nil {
		return "", err
	}
	return quoteIdent(c.name), nil
}

func (c Column) Eval(r Record) (any, error) {
	v, ok := r[c.name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", c.name)
	}
	return v, nil
}

func (c Column) Ge(v any) Expr { return compare{op: ">=", left: c, right: toExpr(v)} }
func (c Column) Gt(v any) Expr { return compare{op: ">", left: c, right: toExpr(v)} }
func (c Column) Le(v any) Expr { return compare{op: "<=", left: c, right: toExpr(v)} }
func (c Column) Lt(v any) Expr { return compare{op: "<", left: c, right: toExpr(v)} }
func (c Column) Eq(v any) Expr { return compare{op: "=", left: c, right: toExpr(v)} }

type literal struct {
	v any
}

// Lit : constant value
func Lit(v any) Expr {
	return literal{v: v}
}

func (l literal) SQL() (string, error) {
	return renderLiteral(l.v)
}

func (l literal) Eval(Record) (any, error) {
	return l.v, nil
}

func toExpr(v any) Expr {
	if e, ok := v.(Expr); ok {
		return e
	}
	return Lit(v)
}

// now is swapped in tests
var now = time.Now

type currentTimestamp struct{}

// CurrentTimestamp : warehouse time at evaluation
func CurrentTimestamp() Expr {
	return currentTimestamp{}
}

func (currentTimestamp) SQL() (string, error) {
	return "CURRENT_TIMESTAMP()", nil
}

func (currentTimestamp) Eval(Record) (any, error) {
	return now(), nil
}

type compare struct {
	op    string
	left  Expr
	right Expr
}

func (c compare) SQL() (string, error) {
	l, err := c.left.SQL()
	if err != nil {
		return "", err
	}
	r, err := c.right.SQL()
	if err != nil {
		return "", err
	}
	return "(" + l + " " + c.op + " " + r + ")", nil
}

func (c compare) Eval(rec Record) (any, error) {
	l, err := c.left.Eval(rec)
	if err != nil {
		return nil, err
	}
	r, err := c.right.Eval(rec)
	if err != nil {
		return nil, err
	}
	if l == nil || r == nil {
		return nil, nil
	}
	cmp, err := compareValues(l, r)
	if err != nil {
		return nil, err
	}
	switch c.op {
	case ">=":
		return cmp >= 0, nil
	case ">":
		return cmp > 0, nil
	case "<=":
		return cmp <= 0, nil
	case "<":
		return cmp < 0, nil
	case "=":
		return cmp == 0, nil
	}
	return nil, fmt.Errorf("unknown operator %s", c.op)
}

func compareValues(l, r any) (int, error) {
	if lf, ok := toFloat(l); ok {
		if rf, ok := toFloat(r); ok {
			switch {
			case lf < rf:
				return -1, nil
			case lf > rf:
				return 1, nil
			}
			return 0, nil
		}
	}
	switch lv := l.(type) {
	case string:
		if rv, ok := r.(string); ok {
			return strings.Compare(lv, rv), nil
		}
	case time.Time:
		if rv, ok := r.(time.Time); ok {
			return lv.Compare(rv), nil
		}
	case bool:
		if rv, ok := r.(bool); ok {
			if lv == rv {
				return 0, nil
			}
			if !lv {
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, fmt.Errorf("cannot compare %T with %T", l, r)
}

type branch struct {
	cond  Expr
	value Expr
}

// CaseExpr : ordered conditional , the first branch whose condition is true wins
type CaseExpr struct {
	branches  []branch
	otherwise Expr
}

// When : starts a conditional with one branch
func When(cond Expr, value any) *CaseExpr {
	return &CaseExpr{branches: []branch{{cond: cond, value: toExpr(value)}}}
}

// When : adds a branch evaluated after the existing ones
func (c *CaseExpr) When(cond Expr, value any) *CaseExpr {
	next := &CaseExpr{otherwise: c.otherwise}
	next.branches = append(append(next.branches, c.branches...), branch{cond: cond, value: toExpr(value)})
	return next
}

// Otherwise : value when no branch matches , without it the result is NULL
func (c *CaseExpr) Otherwise(value any) *CaseExpr {
	next := &CaseExpr{otherwise: toExpr(value)}
	next.branches = append(next.branches, c.branches...)
	return next
}

func (c *CaseExpr) SQL() (string, error) {
	var sb strings.Builder
	sb.WriteString("CASE")
	for _, b := range c.branches {
		cond, err := b.cond.SQL()
		if err != nil {
			return "", err
		}
		val, err := b.value.SQL()
		if err != nil {
			return "", err
		}
		sb.WriteString(" WHEN " + cond + " THEN " + val)
	}
	if c.otherwise != nil {
		val, err := c.otherwise.SQL()
		if err != nil {
			return "", err
		}
		sb.WriteString(" ELSE " + val)
	}
	sb.WriteString(" END")
	return sb.String(), nil
}

func (c *CaseExpr) Eval(rec Record) (any, error) {
	for _, b := range c.branches {
		v, err := b.cond.Eval(rec)
		if err != nil {
			return nil, err
		}
		if matched, ok := v.(bool); ok && matched {
			return b.value.Eval(rec)
		}
	}
	if c.otherwise == nil {
		return nil, nil
	}
	return c.otherwise.Eval(rec)
}
