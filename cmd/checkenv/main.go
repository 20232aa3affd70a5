package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/spf13/afero"

	"github.com/baderkha/snowflake-enrich/pkg/diag"
	"github.com/baderkha/snowflake-enrich/pkg/logging"
	"github.com/baderkha/snowflake-enrich/pkg/warehouse/config"
)

func main() {
	app := kingpin.New("checkenv", "Prints the snowflake connection settings as resolved from the environment and .env file")
	envFile := app.Flag("env-file", "Optional .env file , never overrides variables already set").Default(config.DefaultEnvFile).String()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := logging.New(os.Stderr, "info")
	diag.Print(os.Stdout, diag.LoadSettings(afero.NewOsFs(), *envFile, logger))
}
