package frame

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Kind : logical column type of a frame column
type Kind string

const (
	KindInteger   Kind = "INTEGER"
	KindFloat     Kind = "FLOAT"
	KindString    Kind = "STRING"
	KindBoolean   Kind = "BOOLEAN"
	KindTimestamp Kind = "TIMESTAMP"
)

// Field : one named column of the source rows
type Field struct {
	Name string
	Kind Kind
}

// Schema : ordered source columns
type Schema []Field

func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Row : one positional tuple
type Row []any

// Record : a row keyed by column name , used for local evaluation
type Record map[string]any

// ToRecord : pairs row values with names , extra values are dropped
func (r Row) ToRecord(names []string) Record {
	rec := make(Record, len(names))
	for i, n := range names {
		if i < len(r) {
			rec[n] = r[i]
		}
	}
	return rec
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

func validIdent(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteTableName : quotes TABLE , SCHEMA.TABLE or DB.SCHEMA.TABLE
func QuoteTableName(table string) (string, error) {
	parts := strings.Split(table, ".")
	if len(parts) > 3 {
		return "", fmt.Errorf("table name %q has too many parts", table)
	}
	for i, p := range parts {
		if err := validIdent(p); err != nil {
			return "", fmt.Errorf("table name %q : %w", table, err)
		}
		parts[i] = quoteIdent(p)
	}
	return strings.Join(parts, "."), nil
}

func isNumeric(k Kind) bool {
	return k == KindInteger || k == KindFloat
}

func kindOf(v any) (Kind, bool) {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger, true
	case float32, float64:
		return KindFloat, true
	case string:
		return KindString, true
	case bool:
		return KindBoolean, true
	case time.Time:
		return KindTimestamp, true
	}
	return "", false
}
