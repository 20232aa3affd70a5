// package enrich
//
// runs the order enrichment job : sample orders in , enriched snowflake table out
package enrich

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/baderkha/snowflake-enrich/pkg/warehouse/connection"
	"github.com/baderkha/snowflake-enrich/pkg/warehouse/frame"
)

// SessionFactory : hands the job a live session , called once per run
type SessionFactory func(ctx context.Context) (*connection.Session, error)

// Options : where the job writes
type Options struct {
	// Table : target table , overwritten on every run
	Table string
	// Location : DB.SCHEMA the session resolves unqualified tables against
	Location string
	// ArchiveBucket : when set the enriched rows are also uploaded as csv
	ArchiveBucket string
	ArchivePrefix string
	// WorkDir : local staging dir for the archive csv
	WorkDir  string
	MaxRetry int
}

type Job struct {
	connect  SessionFactory
	opts     Options
	out      io.Writer
	logger   zerolog.Logger
	runID    string
	fs       afero.Fs
	targetFs s3iface.S3API
}

func NewJob(connect SessionFactory, opts Options, logger zerolog.Logger, out io.Writer) (*Job, error) {
	uid, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("could not generate run id : %w", err)
	}
	if opts.Table == "" {
		opts.Table = DefaultTable
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "./tmp"
	}
	if opts.MaxRetry <= 0 {
		opts.MaxRetry = 3
	}
	j := &Job{
		connect: connect,
		opts:    opts,
		out:     out,
		logger:  logger.With().Str("run_id", uid.String()).Str("table", opts.Table).Logger(),
		runID:   uid.String(),
		fs:      afero.NewOsFs(),
	}
	if opts.ArchiveBucket != "" {
		j.targetFs = s3.New(session.Must(session.NewSession(aws.NewConfig())))
	}
	return j, nil
}

// RunID : identifier of this job instance
func (j *Job) RunID() string {
	return j.runID
}

// Run : a failed connection is reported and swallowed , any later failure is returned
func (j *Job) Run(ctx context.Context) error {
	sess, err := j.connect(ctx)
	if err != nil {
		fmt.Fprintln(j.out, "Snowflake connection failed:", err)
		j.logger.Error().Err(err).Msg("aborting run , no session")
		return nil
	}
	defer j.CleanUp(sess)
	fmt.Fprintln(j.out, "Snowflake connection successful!")

	df, err := sess.CreateDataFrame(SampleOrders(), SampleColumns...)
	if err != nil {
		return fmt.Errorf("could not build sample frame : %w", err)
	}
	enriched := Enrich(df)

	if err := enriched.Write().Mode(frame.Overwrite).SaveAsTable(ctx, j.opts.Table); err != nil {
		return err
	}
	j.logger.Info().Msg("table overwritten")

	rows, err := enriched.Collect(ctx)
	if err != nil {
		return err
	}
	frame.Print(j.out, enriched.Schema(), rows)

	if j.opts.ArchiveBucket != "" {
		if err := j.Archive(ctx, enriched.Columns(), rows); err != nil {
			return err
		}
	}

	fmt.Fprintf(j.out, "Data successfully written to %s\n", j.Target())
	return nil
}

// Target : fully qualified name of the table the job writes
func (j *Job) Target() string {
	if strings.Contains(j.opts.Table, ".") || j.opts.Location == "" {
		return j.opts.Table
	}
	return j.opts.Location + "." + j.opts.Table
}

func (j *Job) CleanUp(sess *connection.Session) {
	if err := sess.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("could not close session")
	}
}
