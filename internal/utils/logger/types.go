package logger

// LoggingConfig defines the configuration for logging.
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARNING, ERROR, CRITICAL (case-insensitive).
	Level string `yaml:"level"`
	// Path is an optional log file; empty logs to stderr only.
	Path string `yaml:"path"`
	// MaxSize is the maximum size in MB before rotation.
	MaxSize int `yaml:"max_size"`
	// MaxBackups is the maximum number of rotated files to keep.
	MaxBackups int `yaml:"max_backups"`
	// MaxAge is the maximum number of days to retain rotated files.
	MaxAge int `yaml:"max_age"`
	// Compress enables compression of rotated files.
	Compress bool `yaml:"compress"`
}
