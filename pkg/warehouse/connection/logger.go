package connection

import (
	"database/sql"

	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
)

// AddLogger : wraps db so every statement is logged through logger
func AddLogger(db *sql.DB, dsn string, driverName string, logger zerolog.Logger) *sql.DB {
	loggerAdapter := zerologadapter.New(logger.With().Str("driver", driverName).Logger())
	db = sqldblogger.OpenDriver(dsn, db.Driver(), loggerAdapter,
		sqldblogger.WithWrapResult(false),
		sqldblogger.WithDurationFieldname("dur_ms"),
		sqldblogger.WithDurationUnit(sqldblogger.DurationMillisecond),
		sqldblogger.WithSQLQueryAsMessage(true),
		sqldblogger.WithSQLQueryFieldname("sql_query"),
	)
	return db
}
