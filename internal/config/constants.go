package config

const (
	// DefaultConfigPath is the standard location for the credage configuration file.
	DefaultConfigPath = "/etc/credage/config.yaml"

	// DefaultMaxAgeDays is the age threshold applied when none is configured.
	DefaultMaxAgeDays = 90

	// DefaultDateFormat is the strptime-style layout used to parse the
	// last-changed field of each record.
	DefaultDateFormat = "%Y-%m-%d"

	// DefaultDelimiter separates the fields of a record line.
	DefaultDelimiter = ","

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "INFO"
)
