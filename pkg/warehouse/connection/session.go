package connection

import (
	"context"
	"database/sql"

	"github.com/hashicorp/go-multierror"

	"github.com/baderkha/snowflake-enrich/pkg/warehouse/frame"
)

// Session : a live handle on the warehouse , owned by whoever dialed it
type Session struct {
	db *sql.DB
	// base is the driver pool underneath db when query logging wraps it , nil otherwise
	base *sql.DB
}

func NewSession(db *sql.DB) *Session {
	return &Session{db: db}
}

func (s *Session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

func (s *Session) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

// CreateDataFrame : in-memory rows bound to this session , names label the columns in order
func (s *Session) CreateDataFrame(rows []frame.Row, names ...string) (*frame.DataFrame, error) {
	return frame.New(s, rows, names)
}

// Close : closes the session pool and , when logging wrapped it , the driver pool underneath
func (s *Session) Close() error {
	var res error
	if err := s.db.Close(); err != nil {
		res = multierror.Append(res, err)
	}
	if s.base != nil {
		if err := s.base.Close(); err != nil {
			res = multierror.Append(res, err)
		}
	}
	return res
}
