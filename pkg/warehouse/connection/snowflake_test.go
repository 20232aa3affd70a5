package connection

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baderkha/snowflake-enrich/pkg/warehouse/config"
	"github.com/baderkha/snowflake-enrich/pkg/warehouse/frame"
)

func validParams() *config.Snowflake {
	return &config.Snowflake{
		Account:   "acme-xy123",
		UserName:  "loader",
		Password:  "hunter2",
		Role:      "SYSADMIN",
		Warehouse: "COMPUTE_WH",
		DB:        "DEMO_PROJECT",
		Schema:    "DEMO_SNOWFLAKE",
	}
}

func mockOpen(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	orig := sqlOpen
	sqlOpen = func(driverName, dsn string) (*sql.DB, error) {
		assert.Equal(t, "snowflake", driverName)
		return db, nil
	}
	t.Cleanup(func() { sqlOpen = orig })
	return mock
}

func TestDialSnowflake(t *testing.T) {
	mock := mockOpen(t)
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectClose()

	sess, err := DialSnowflake(context.Background(), validParams(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, sess.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialSnowflakeRejectedCredentials(t *testing.T) {
	mock := mockOpen(t)
	mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("390100 (08004): Incorrect username or password was specified."))
	mock.ExpectClose()

	sess, err := DialSnowflake(context.Background(), validParams(), zerolog.Nop())
	require.Error(t, err)
	assert.Nil(t, sess)
	assert.True(t, errors.Is(err, ErrConnection))

	var connErr *ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, "acme-xy123", connErr.Account)
	assert.Contains(t, err.Error(), "Incorrect username or password")
	assert.NotContains(t, err.Error(), "hunter2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialSnowflakeUnexpectedPingResult(t *testing.T) {
	mock := mockOpen(t)
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(2))
	mock.ExpectClose()

	_, err := DialSnowflake(context.Background(), validParams(), zerolog.Nop())
	assert.ErrorIs(t, err, ErrConnection)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialSnowflakeAbsentSettings(t *testing.T) {
	mock := mockOpen(t)

	_, err := DialSnowflake(context.Background(), &config.Snowflake{}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrConnection)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLogger(t *testing.T) {
	db, mock, err := sqlmock.NewWithDSN("sqlmock_add_logger")
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	logged := AddLogger(db, "sqlmock_add_logger", "snowflake", zerolog.New(&buf))
	mock.ExpectExec("CREATE OR REPLACE TABLE").WillReturnResult(sqlmock.NewResult(0, 4))

	_, err = logged.Exec(`CREATE OR REPLACE TABLE "T" AS SELECT 1`)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "CREATE OR REPLACE TABLE")
	assert.Contains(t, buf.String(), `"driver":"snowflake"`)
}

func TestSessionCreateDataFrame(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	sess := NewSession(db)
	defer sess.Close()

	df, err := sess.CreateDataFrame([]frame.Row{{1001, 1, 50.0}}, "ORDER_ID", "CUSTOMER_ID", "ORDER_AMOUNT")
	require.NoError(t, err)
	assert.Equal(t, []string{"ORDER_ID", "CUSTOMER_ID", "ORDER_AMOUNT"}, df.Columns())
}

// loggedOpen : like mockOpen , but registers the mock under the real dsn so the
// query logger can reach the same connection through the driver
func loggedOpen(t *testing.T, cfg *config.Snowflake) sqlmock.Sqlmock {
	t.Helper()
	dsn, err := cfg.GetDSN()
	require.NoError(t, err)
	db, mock, err := sqlmock.NewWithDSN(dsn)
	require.NoError(t, err)
	orig := sqlOpen
	sqlOpen = func(driverName, got string) (*sql.DB, error) {
		assert.Equal(t, dsn, got)
		return db, nil
	}
	t.Cleanup(func() { sqlOpen = orig })
	return mock
}

func TestDialSnowflakeQueryLoggingClosesBothPools(t *testing.T) {
	cfg := validParams()
	cfg.QueryLogging = true
	mock := loggedOpen(t, cfg)
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectClose()
	mock.ExpectClose()

	var buf bytes.Buffer
	sess, err := DialSnowflake(context.Background(), cfg, zerolog.New(&buf))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "SELECT 1")

	require.NoError(t, sess.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialSnowflakeQueryLoggingFailedPingClosesBothPools(t *testing.T) {
	cfg := validParams()
	cfg.QueryLogging = true
	mock := loggedOpen(t, cfg)
	mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("390100 (08004): Incorrect username or password was specified."))
	mock.ExpectClose()
	mock.ExpectClose()

	sess, err := DialSnowflake(context.Background(), cfg, zerolog.Nop())
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, ErrConnection)
	assert.NoError(t, mock.ExpectationsWereMet())
}
