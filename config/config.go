package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var Opts *Options

// GetConfig builds the runtime configuration from defaults and environment
// variables (BOOKSYNC_ prefix). Paths derived from the data directory are
// filled in unless the caller set them explicitly.
func GetConfig() (*Options, error) {
	GetDefaultOptions()
	bindEnv()

	if err := viper.Unmarshal(Opts); err != nil {
		return nil, errors.Wrap(err, "unable to apply environment overrides")
	}

	if err := resolvePaths(Opts); err != nil {
		return nil, err
	}
	return Opts, nil
}

// ParseFile reads a config file on top of the defaults. Environment
// variables still win over file values for the bound keys.
func ParseFile(file string) (*Options, error) {
	if _, err := os.Stat(file); err != nil {
		return nil, errors.Wrapf(err, "unable to access config file %s", file)
	}

	GetDefaultOptions()
	bindEnv()

	viper.SetConfigFile(file)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := viper.Unmarshal(Opts); err != nil {
		return nil, err
	}

	if err := resolvePaths(Opts); err != nil {
		return nil, err
	}
	return Opts, nil
}

func bindEnv() {
	viper.SetEnvPrefix("booksync")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// Secrets and connection parameters are expected from the environment,
	// the rest normally comes from the config file.
	for _, key := range []string{"api_key", "dsn", "book_file", "data", "log_level"} {
		_ = viper.BindEnv(key)
	}
}

func resolvePaths(opts *Options) error {
	dataDir, err := checkDataDir(opts.Data)
	if err != nil {
		return err
	}
	opts.Data = dataDir

	if opts.BookFile == "" {
		opts.BookFile = filepath.Join(opts.Data, "book_info.csv")
	}
	if opts.DSN == "" {
		opts.DSN = filepath.Join(opts.Data, "booksync.db")
	}
	return nil
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
		}
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return "", errors.Wrapf(err, "unable to create data folder %s", dataDir)
		}
	}
	return dataDir, nil
}

// ValidateFetch reports the configuration errors that must stop a fetch run
// before any work is attempted.
func (o *Options) ValidateFetch() error {
	if o.APIKey == "" {
		return errors.New("provider API key is not set (BOOKSYNC_API_KEY)")
	}
	if o.APIBaseURL == "" {
		return errors.New("provider API base URL is not set")
	}
	return nil
}

// ValidateSync reports the configuration errors that must stop a sync run.
func (o *Options) ValidateSync() error {
	if o.DSN == "" {
		return errors.New("database DSN is not set (BOOKSYNC_DSN)")
	}
	return nil
}
