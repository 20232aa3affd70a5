package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/spf13/afero"

	"github.com/baderkha/snowflake-enrich/pkg/enrich"
	"github.com/baderkha/snowflake-enrich/pkg/logging"
	"github.com/baderkha/snowflake-enrich/pkg/warehouse/config"
	"github.com/baderkha/snowflake-enrich/pkg/warehouse/connection"
)

func main() {
	startTime := time.Now()

	app := kingpin.New("enrich", "Enriches the sample orders and overwrites the target snowflake table")
	envFile := app.Flag("env-file", "Optional .env file , never overrides variables already set").Default(config.DefaultEnvFile).String()
	table := app.Flag("table", "Target table , overwritten on every run").Default(enrich.DefaultTable).String()
	queryLog := app.Flag("query-log", "Log every statement sent to snowflake").Bool()
	archiveBucket := app.Flag("archive-bucket", "S3 bucket that also receives the enriched rows as csv").Envar("ORDERS_ARCHIVE_BUCKET").String()
	archivePrefix := app.Flag("archive-prefix", "Key prefix inside the archive bucket").Envar("S3_PREFIX").Default("orders_enriched").String()
	workDir := app.Flag("work-dir", "Local staging dir for the archive csv").Envar("WRITE_DIR").Default("./tmp").String()
	maxRetry := app.Flag("max-retry", "Archive upload attempts").Default("3").Int()
	logLevel := app.Flag("log-level", "zerolog level").Default("info").String()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := logging.New(os.Stderr, *logLevel)

	settings, err := config.Load(afero.NewOsFs(), *envFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load settings")
	}
	if err := settings.Missing(); err != nil {
		logger.Warn().Err(err).Msg("some snowflake settings are not set")
	}
	logger.Debug().Object("settings", settings).Msg("settings loaded")

	params := settings.Params()
	params.QueryLogging = *queryLog

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job, err := enrich.NewJob(
		func(ctx context.Context) (*connection.Session, error) {
			return connection.DialSnowflake(ctx, &params, logger)
		},
		enrich.Options{
			Table:         *table,
			Location:      params.Location(),
			ArchiveBucket: *archiveBucket,
			ArchivePrefix: *archivePrefix,
			WorkDir:       *workDir,
			MaxRetry:      *maxRetry,
		},
		logger,
		os.Stdout,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not create job")
	}

	if err := job.Run(ctx); err != nil {
		logger.Fatal().Err(err).Str("run_id", job.RunID()).Msg("enrichment run failed")
	}
	logger.Info().Str("run_id", job.RunID()).Dur("elapsed", time.Since(startTime)).Msg("done")
}
