package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baderkha/snowflake-enrich/pkg/warehouse/frame"
)

func TestSampleOrderTiers(t *testing.T) {
	want := map[int]Tier{1001: Silver, 1002: Gold, 1003: Silver, 1004: Platinum}
	expr := TierExpr(ColOrderAmount)

	for _, row := range SampleOrders() {
		rec := row.ToRecord(SampleColumns)
		id := rec[ColOrderID].(int)

		assert.Equal(t, want[id], TierFor(rec[ColOrderAmount].(float64)), "order %d", id)

		got, err := expr.Eval(rec)
		require.NoError(t, err)
		assert.Equal(t, string(want[id]), got, "order %d", id)
	}
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		amount float64
		want   Tier
	}{
		{-5, Silver},
		{0, Silver},
		{99.99, Silver},
		{100, Gold},
		{150, Gold},
		{199.99, Gold},
		{200, Platinum},
		{250, Platinum},
		{1e9, Platinum},
	}
	expr := TierExpr("AMT")
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierFor(tc.amount), "amount %v", tc.amount)

		got, err := expr.Eval(frame.Record{"AMT": tc.amount})
		require.NoError(t, err)
		assert.Equal(t, string(tc.want), got, "amount %v", tc.amount)
	}
}

func TestTierExprSQL(t *testing.T) {
	s, err := TierExpr(ColOrderAmount).SQL()
	require.NoError(t, err)
	assert.Equal(t, `CASE WHEN ("ORDER_AMOUNT" >= 200) THEN 'PLATINUM' WHEN ("ORDER_AMOUNT" >= 100) THEN 'GOLD' ELSE 'SILVER' END`, s)
}

func TestSampleOrdersIsACopy(t *testing.T) {
	rows := SampleOrders()
	rows[0][2] = 9999.0
	assert.Equal(t, 50.0, SampleOrders()[0][2])
	assert.Len(t, SampleOrders(), 4)
}

func TestEnrichColumns(t *testing.T) {
	df, err := frame.New(nil, SampleOrders(), SampleColumns)
	require.NoError(t, err)

	enriched := Enrich(df)
	require.NoError(t, enriched.Err())
	assert.Equal(t, []string{ColOrderID, ColCustomerID, ColOrderAmount, ColIngestedAt, ColOrderTier}, enriched.Columns())
}
