package constants

const (
	AppName            = "goaltrack"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/goaltrack/goaltrack.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "goaltrack-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "goaltrack-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.goaltrack"

	// Reminder constants
	ReminderCadenceMinutes = 120
	ReminderStateKey       = "reminders.last_run_at"

	// Trend alert constants
	AvgDropThreshold = 0.20
	AvgDropWindow    = 7
)

// DefaultTagCategories are the built-in tag categories. Tags may also carry a
// free-form custom category.
var DefaultTagCategories = []string{"health", "work", "social", "home", "mind"}
