package config

const (
	defaultLogFile           = "booksync.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultData              = "data"
	defaultAPIBaseURL        = "https://dapi.kakao.com/v3/search/book"
	defaultFetchTimeout      = 10
	defaultVersion           = "0.1.0"
)

// Why use mapstructure instead of json: viper unmarshals config files through
// mapstructure, so json tags are not recognized.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// Data is the directory holding the record file and the default database
	Data string `mapstructure:"data"`
	// BookFile is the flat record file tracking fetched book metadata
	BookFile string `mapstructure:"book_file"`
	// DSN is the database to sync into. A plain path opens a sqlite file,
	// a postgres:// URL goes through lib/pq.
	DSN string `mapstructure:"dsn"`
	// APIBaseURL is the book search endpoint of the metadata provider
	APIBaseURL string `mapstructure:"api_base_url"`
	// APIKey is the provider REST API key
	APIKey string `mapstructure:"api_key"`
	// FetchTimeout is the per-request provider timeout, in seconds
	FetchTimeout int `mapstructure:"fetch_timeout"`
	// Version is the application version
	Version string `mapstructure:"version"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Data:              defaultData,
		APIBaseURL:        defaultAPIBaseURL,
		FetchTimeout:      defaultFetchTimeout,
		Version:           defaultVersion,
	}
	return Opts
}
