package connection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	_ "github.com/snowflakedb/gosnowflake"

	"github.com/baderkha/snowflake-enrich/pkg/warehouse/config"
)

// ErrConnection : matches every *ConnectionError through errors.Is
var ErrConnection = errors.New("snowflake connection failed")

// sqlOpen is swapped in tests
var sqlOpen = sql.Open

// ConnectionError : the warehouse rejected or never answered the session request
type ConnectionError struct {
	Account string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("SNOWFLAKE_TARGET : could not open session for account %q due to : %v", e.Account, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// DialSnowflake : opens a session and pings it once with SELECT 1.
// There is no retry , a failed ping closes the pool and returns a *ConnectionError.
func DialSnowflake(ctx context.Context, cfg *config.Snowflake, logger zerolog.Logger) (*Session, error) {
	logger.Debug().Str("account", cfg.Account).Str("warehouse", cfg.Warehouse).Msg("getting DialSnowflake")
	dsn, err := cfg.GetDSN()
	if err != nil {
		return nil, &ConnectionError{Account: cfg.Account, Err: err}
	}
	db, err := sqlOpen("snowflake", dsn)
	if err != nil {
		return nil, &ConnectionError{Account: cfg.Account, Err: err}
	}
	sess := NewSession(db)
	if cfg.QueryLogging {
		sess = &Session{db: AddLogger(db, dsn, "snowflake", logger), base: db}
	}

	var res string
	if err := sess.db.QueryRowContext(ctx, "SELECT 1").Scan(&res); err != nil {
		sess.Close()
		return nil, &ConnectionError{Account: cfg.Account, Err: err}
	}
	if res != "1" {
		sess.Close()
		return nil, &ConnectionError{Account: cfg.Account, Err: fmt.Errorf("can't ping snowflake via select 1 , got %q", res)}
	}
	logger.Debug().Str("account", cfg.Account).Msg("got DialSnowflake")
	return sess, nil
}
