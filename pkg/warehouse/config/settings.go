// package config
//
// resolves the snowflake connection settings from the process environment
// and an optional .env file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	KeyAccount   = "SNOWFLAKE_ACCOUNT"
	KeyUser      = "SNOWFLAKE_USER"
	KeyPassword  = "SNOWFLAKE_PASSWORD"
	KeyRole      = "SNOWFLAKE_ROLE"
	KeyWarehouse = "SNOWFLAKE_WAREHOUSE"
	KeyDatabase  = "SNOWFLAKE_DATABASE"
	KeySchema    = "SNOWFLAKE_SCHEMA"

	// DefaultEnvFile : looked up relative to the working directory
	DefaultEnvFile = ".env"
)

// Keys : every setting the loader resolves, in display order
var Keys = []string{
	KeyAccount,
	KeyUser,
	KeyPassword,
	KeyRole,
	KeyWarehouse,
	KeyDatabase,
	KeySchema,
}

// lookupEnv is swapped in tests
var lookupEnv = os.LookupEnv

// Settings : resolved values for Keys , a key is absent when neither the
// environment nor the env file defines it
type Settings struct {
	values map[string]string
}

// NewSettings : builds settings from a plain map , keys outside Keys are ignored
func NewSettings(values map[string]string) Settings {
	s := Settings{values: make(map[string]string, len(Keys))}
	for _, k := range Keys {
		if v, ok := values[k]; ok {
			s.values[k] = v
		}
	}
	return s
}

// Load : reads envFile (if it exists) then the process environment.
// Variables already set in the environment always win over the file.
// The process environment itself is left untouched.
func Load(fsys afero.Fs, envFile string) (Settings, error) {
	fileValues, err := readEnvFile(fsys, envFile)
	if err != nil {
		return Settings{}, err
	}
	resolved := make(map[string]string, len(Keys))
	for _, k := range Keys {
		if v, ok := lookupEnv(k); ok {
			resolved[k] = v
			continue
		}
		if v, ok := fileValues[k]; ok {
			resolved[k] = v
		}
	}
	return NewSettings(resolved), nil
}

func readEnvFile(fsys afero.Fs, envFile string) (map[string]string, error) {
	if envFile == "" {
		return nil, nil
	}
	f, err := fsys.Open(envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open env file %s : %w", envFile, err)
	}
	defer f.Close()
	values, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse env file %s : %w", envFile, err)
	}
	return values, nil
}

// Lookup : value for key and whether it was set at all
func (s Settings) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Get : value for key , empty when absent
func (s Settings) Get(key string) string {
	return s.values[key]
}

// Missing : aggregated error naming every absent key , nil when all are set
func (s Settings) Missing() error {
	var err error
	for _, k := range Keys {
		if _, ok := s.values[k]; !ok {
			err = multierror.Append(err, fmt.Errorf("%s is not set", k))
		}
	}
	return err
}

// Params : connection parameters for a session request
func (s Settings) Params() Snowflake {
	return Snowflake{
		Account:   s.Get(KeyAccount),
		UserName:  s.Get(KeyUser),
		Password:  s.Get(KeyPassword),
		Role:      s.Get(KeyRole),
		Warehouse: s.Get(KeyWarehouse),
		DB:        s.Get(KeyDatabase),
		Schema:    s.Get(KeySchema),
	}
}

// MarshalZerologObject : logs which keys are set , never the password value
func (s Settings) MarshalZerologObject(e *zerolog.Event) {
	for _, k := range Keys {
		v, ok := s.values[k]
		switch {
		case !ok:
			e.Str(k, "<unset>")
		case k == KeyPassword:
			e.Str(k, redact(v))
		default:
			e.Str(k, v)
		}
	}
}
