package enrich

import "github.com/baderkha/snowflake-enrich/pkg/warehouse/frame"

const (
	ColOrderID     = "ORDER_ID"
	ColCustomerID  = "CUSTOMER_ID"
	ColOrderAmount = "ORDER_AMOUNT"
	ColIngestedAt  = "INGESTED_AT"
	ColOrderTier   = "ORDER_TIER"

	DefaultTable = "ORDERS_ENRICHED_SNOWPARK"
)

// SampleColumns : column names of SampleOrders
var SampleColumns = []string{ColOrderID, ColCustomerID, ColOrderAmount}

// SampleOrders : the fixed input rows , a fresh copy per call
func SampleOrders() []frame.Row {
	return []frame.Row{
		{1001, 1, 50.0},
		{1002, 2, 120.0},
		{1003, 3, 75.0},
		{1004, 4, 250.0},
	}
}

// Enrich : stamps the ingestion time then derives the order tier
func Enrich(df *frame.DataFrame) *frame.DataFrame {
	return df.
		WithColumn(ColIngestedAt, frame.CurrentTimestamp()).
		WithColumn(ColOrderTier, TierExpr(ColOrderAmount))
}
