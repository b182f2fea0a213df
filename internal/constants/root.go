package constants

// Preference is the time-of-day region a task prefers to be scheduled in.
type Preference string

// FilterReason names why an otherwise well-formed task did not enter the
// solve.
type FilterReason string

// Status is the outcome of a single solve.
type Status string

// Variant selects which family of objective terms the Model Builder emits.
type Variant string

const (
	AppName            = "weekplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/weekplan/weekplan.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD).
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM).
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "weekplan-"
	BackupFileSuffix = ".db"

	// Preference regions (§4.2). Unknown preferences degrade to Any.
	PreferenceAny       Preference = "any"
	PreferenceMorning   Preference = "morning"
	PreferenceAfternoon Preference = "afternoon"
	PreferenceEvening   Preference = "evening"

	// Filter reasons (§4.3).
	FilterReasonPi           FilterReason = "below_success_probability"
	FilterReasonDeadline     FilterReason = "deadline_too_early"
	FilterReasonInvalidField FilterReason = "invalid_field"
	FilterReasonNonPositive  FilterReason = "non_positive_difficulty_or_priority"

	// Solve statuses (§6).
	StatusOptimal               Status = "Optimal"
	StatusSuboptimal            Status = "Suboptimal"
	StatusTimeLimitReached      Status = "TimeLimitReached"
	StatusInfeasible            Status = "Infeasible"
	StatusInfeasibleOrUnbounded Status = "InfeasibleOrUnbounded"
	StatusNoSchedulableTasks    Status = "NoSchedulableTasks"
	StatusConfigurationError    Status = "ConfigurationError"
	StatusError                Status = "Error"

	// Objective variants (§9 design notes: near-duplicate source variants
	// factored behind one selector).
	VariantBase            Variant = "base"
	VariantDeadlinePenalty Variant = "deadline_penalty"
	VariantContextual      Variant = "contextual"
)
