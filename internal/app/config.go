package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/peterbourgon/ff/v4/ffyaml"

	"ward/internal/lister"
	"ward/internal/logging"
	"ward/internal/patient"
)

type Config struct {
	Database       string
	PageSize       int
	SearchDebounce time.Duration
	EmptyLabel     string
	EmptyIcon      string
	Seed           bool
	Logging        logging.Options

	Version bool
}

// Parse sets config in order of precedence:
// 1. flags > 2. env vars > 3. config file
func Parse(stderr io.Writer, args []string) (Config, error) {
	var cfg Config

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("retrieving user's home directory: %w", err)
	}
	defaultDatabase := filepath.Join(home, ".ward", "ward.db")
	defaultConfigFile := filepath.Join(home, ".ward.yaml")

	fs := ff.NewFlagSet("ward")
	fs.StringVar(&cfg.Database, 'd', "database", defaultDatabase, "Path to the sqlite database.")
	fs.IntVar(&cfg.PageSize, 'p', "page-size", patient.DefaultPageSize, "The number of patients fetched per page.")
	fs.DurationVar(&cfg.SearchDebounce, 0, "search-debounce", lister.DefaultDebounce, "Delay between the last keystroke and the load it triggers.")
	fs.StringVar(&cfg.EmptyLabel, 0, "empty-label", "No patients found", "Label shown when a query matches no patients.")
	fs.StringVar(&cfg.EmptyIcon, 0, "empty-icon", "⌀", "Icon shown when a query matches no patients.")
	fs.BoolVar(&cfg.Seed, 's', "seed", "Seed an empty database with a demonstration roster.")
	fs.BoolVar(&cfg.Version, 'v', "version", "Print version.")
	_ = fs.String('c', "config", defaultConfigFile, "Path to config file.")

	{
		usage := fmt.Sprintf("Logging level (valid: %s).", strings.Join(logging.ValidLevels(), ","))
		fs.StringEnumVar(&cfg.Logging.Level, 'l', "log-level", usage, logging.ValidLevels()...)
	}

	err = ff.Parse(fs, args,
		ff.WithEnvVarPrefix("WARD"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parse),
		ff.WithConfigAllowMissingFile(),
	)
	if err != nil {
		// ff.Parse returns an error if there is an error or if -h/--help is
		// passed; in either case print flag usage in addition to error message.
		fmt.Fprintln(stderr, ffhelp.Flags(fs))
		return Config{}, err
	}

	return cfg, nil
}
