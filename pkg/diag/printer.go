// package diag
//
// prints the raw connection settings for a manual check. It prints the
// password too , so it must stay a one off tool and never feed a log.
package diag

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/baderkha/snowflake-enrich/pkg/warehouse/config"
)

// AbsentMarker : printed for a key nobody set
const AbsentMarker = "None"

// Print : one "KEY: value" line per config.Keys entry , in order
func Print(w io.Writer, s config.Settings) {
	for _, key := range config.Keys {
		v, ok := s.Lookup(key)
		if !ok {
			v = AbsentMarker
		}
		fmt.Fprintf(w, "%s: %s\n", key, v)
	}
}

// LoadSettings : like config.Load , but an unreadable env file is logged and
// skipped so the printer still shows what the environment holds
func LoadSettings(fsys afero.Fs, envFile string, logger zerolog.Logger) config.Settings {
	settings, err := config.Load(fsys, envFile)
	if err == nil {
		return settings
	}
	logger.Warn().Err(err).Str("env_file", envFile).Msg("ignoring env file")
	settings, _ = config.Load(fsys, "")
	return settings
}
