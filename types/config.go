package types

// AppConfig represents the complete application configuration. It is loaded
// once per invocation and passed by value into the core components; core
// packages never read ambient configuration state.
type AppConfig struct {
	ProjectName string           `mapstructure:"projectName"`
	Verbose     bool             `mapstructure:"verbose"`
	Author      string           `mapstructure:"author"`
	Project     ProjectConfig    `mapstructure:"project" validate:"required"`
	Data        DataConfig       `mapstructure:"data" validate:"required"`
	Display     DisplayConfig    `mapstructure:"display"`
	Vocabulary  VocabularyConfig `mapstructure:"vocabulary"`
	Context     ContextConfig    `mapstructure:"context"`
}

// ProjectConfig holds project directory settings.
type ProjectConfig struct {
	RootDir string `mapstructure:"rootDir" validate:"required"`
}

// DataConfig holds store file settings.
type DataConfig struct {
	TasksFile   string `mapstructure:"tasksFile" validate:"required"`
	ArchiveFile string `mapstructure:"archiveFile" validate:"required"`
	JournalFile string `mapstructure:"journalFile" validate:"required"`
	Format      string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// DisplayConfig holds terminal rendering settings.
type DisplayConfig struct {
	Width       int    `mapstructure:"width" validate:"min=60,max=200"`
	DefaultView string `mapstructure:"defaultView" validate:"oneof=table compact detailed"`
	DateFormat  string `mapstructure:"dateFormat" validate:"oneof=locale iso short"`
}

// VocabularyConfig holds the configured value sets for enumerated task
// fields. The sets are runtime configuration, not compile-time enumerations;
// every write is validated against the current sets.
type VocabularyConfig struct {
	Statuses   []string       `mapstructure:"statuses" validate:"min=1"`
	Categories []string       `mapstructure:"categories" validate:"min=1"`
	Priorities []string       `mapstructure:"priorities" validate:"min=1"`
	Efforts    []string       `mapstructure:"efforts" validate:"min=1"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	// ActiveStatuses marks the statuses the context builder treats as part
	// of the default working set.
	ActiveStatuses []string `mapstructure:"activeStatuses"`
}

// DefaultsConfig holds the values applied to unset fields on task creation.
type DefaultsConfig struct {
	Status   string `mapstructure:"status"`
	Category string `mapstructure:"category"`
	Priority string `mapstructure:"priority"`
	Effort   string `mapstructure:"effort"`
}

// ContextConfig tunes the AI context builder.
type ContextConfig struct {
	// Budget is the rendered size cap in bytes. Output above the budget is
	// truncated from the tail with a marker.
	Budget int `mapstructure:"budget" validate:"min=256"`
	// RecentWindowDays widens the default working set to tasks updated
	// within the window even when their status is not active.
	RecentWindowDays int `mapstructure:"recentWindowDays" validate:"min=1"`
	// JournalLimit caps the journal entries included in an unscoped context.
	JournalLimit int `mapstructure:"journalLimit" validate:"min=1"`
	// CacheSize bounds the rendered-document cache.
	CacheSize int `mapstructure:"cacheSize" validate:"min=1"`
}

// Vocabulary is the write-time validation view over VocabularyConfig.
type Vocabulary struct {
	Statuses   []string
	Categories []string
	Priorities []string
	Efforts    []string
}

// NewVocabulary builds the validation view from configuration.
func NewVocabulary(cfg VocabularyConfig) Vocabulary {
	return Vocabulary{
		Statuses:   cfg.Statuses,
		Categories: cfg.Categories,
		Priorities: cfg.Priorities,
		Efforts:    cfg.Efforts,
	}
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

// CheckStatus returns an InvalidValueError when value is outside the
// configured status set.
func (v Vocabulary) CheckStatus(value string) error {
	if !contains(v.Statuses, value) {
		return NewInvalidValueError("status", value, v.Statuses)
	}
	return nil
}

func (v Vocabulary) CheckCategory(value string) error {
	if !contains(v.Categories, value) {
		return NewInvalidValueError("category", value, v.Categories)
	}
	return nil
}

func (v Vocabulary) CheckPriority(value string) error {
	if !contains(v.Priorities, value) {
		return NewInvalidValueError("priority", value, v.Priorities)
	}
	return nil
}

func (v Vocabulary) CheckEffort(value string) error {
	if !contains(v.Efforts, value) {
		return NewInvalidValueError("effort", value, v.Efforts)
	}
	return nil
}
