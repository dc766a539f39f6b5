package constants

const (
	AppName            = "sknn"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/sknn/sknn.db"
	Version            = "v0.1.0"

	// DateFormat is the calendar-date format used for completion markers (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// RoutinesKey is the storage key holding the serialized routine list
	RoutinesKey = "sknn-routines"

	// MemoryConfig selects the in-process store instead of a file or database
	MemoryConfig = ":memory:"

	// ConnectionEnvVar supplies a PostgreSQL connection string when set
	ConnectionEnvVar = "SKNN_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "sknn-"
	BackupFileSuffix = ".db"

	// DeleteAnimationMs is how long the TUI shows a removing row before deleting it
	DeleteAnimationMs = 300
)
