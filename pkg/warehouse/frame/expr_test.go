package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareSQL(t *testing.T) {
	s, err := Col("ORDER_AMOUNT").Ge(200).SQL()
	require.NoError(t, err)
	assert.Equal(t, `("ORDER_AMOUNT" >= 200)`, s)

	s, err = Col("NAME").Eq("O'Brien").SQL()
	require.NoError(t, err)
	assert.Equal(t, `("NAME" = 'O''Brien')`, s)

	_, err = Col("bad name").Lt(1).SQL()
	assert.Error(t, err)
}

func TestCompareEval(t *testing.T) {
	rec := Record{"A": 100.0, "B": int64(7), "S": "b", "N": nil}
	cases := []struct {
		name string
		expr Expr
		want any
	}{
		{"GeEqual", Col("A").Ge(100), true},
		{"GtEqual", Col("A").Gt(100), false},
		{"LeMixedNumeric", Col("B").Le(7.0), true},
		{"Lt", Col("B").Lt(3), false},
		{"EqString", Col("S").Eq("b"), true},
		{"NullIsNotTrue", Col("N").Ge(0), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.expr.Eval(rec)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := Col("S").Ge(1).Eval(rec)
	assert.Error(t, err)
	_, err = Col("MISSING").Ge(1).Eval(rec)
	assert.Error(t, err)
}

func TestCaseExprFirstMatchWins(t *testing.T) {
	amount := Col("AMOUNT")
	tier := When(amount.Ge(200), "PLATINUM").When(amount.Ge(100), "GOLD").Otherwise("SILVER")

	s, err := tier.SQL()
	require.NoError(t, err)
	assert.Equal(t, `CASE WHEN ("AMOUNT" >= 200) THEN 'PLATINUM' WHEN ("AMOUNT" >= 100) THEN 'GOLD' ELSE 'SILVER' END`, s)

	for amt, want := range map[float64]string{250: "PLATINUM", 200: "PLATINUM", 199.99: "GOLD", 100: "GOLD", 99.99: "SILVER", 0: "SILVER"} {
		got, err := tier.Eval(Record{"AMOUNT": amt})
		require.NoError(t, err)
		assert.Equal(t, want, got, "amount %v", amt)
	}

	got, err := tier.Eval(Record{"AMOUNT": nil})
	require.NoError(t, err)
	assert.Equal(t, "SILVER", got)
}

func TestCaseExprIsImmutable(t *testing.T) {
	base := When(Col("X").Ge(1), "A")
	withOther := base.Otherwise("Z")
	extended := base.When(Col("X").Ge(0), "B")

	s, err := base.SQL()
	require.NoError(t, err)
	assert.Equal(t, `CASE WHEN ("X" >= 1) THEN 'A' END`, s)

	got, err := withOther.Eval(Record{"X": -1})
	require.NoError(t, err)
	assert.Equal(t, "Z", got)

	got, err = extended.Eval(Record{"X": 0})
	require.NoError(t, err)
	assert.Equal(t, "B", got)

	got, err = base.Eval(Record{"X": 0})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCurrentTimestamp(t *testing.T) {
	fixed := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = orig })

	s, err := CurrentTimestamp().SQL()
	require.NoError(t, err)
	assert.Equal(t, "CURRENT_TIMESTAMP()", s)

	v, err := CurrentTimestamp().Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, fixed, v)
}

func TestRenderLiteral(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{true, "TRUE"},
		{int64(-3), "-3"},
		{uint8(9), "9"},
		{50.0, "50"},
		{120.5, "120.5"},
		{`a\b'c`, `'a\\b''c'`},
		{time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), "'2026-01-02 03:04:05'"},
	}
	for _, tc := range cases {
		got, err := renderLiteral(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := renderLiteral(struct{}{})
	assert.Error(t, err)
}
