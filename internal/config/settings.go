package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds the runtime configuration of the CLI and the feed server.
// Values come from (in increasing priority) built-in defaults, an optional
// YAML file, and GO_CALENDARS_* environment variables.
type Settings struct {
	Source   SourceSettings   `mapstructure:"source"`
	Server   ServerSettings   `mapstructure:"server"`
	Feed     FeedSettings     `mapstructure:"feed"`
	Log      LogSettings      `mapstructure:"log"`
	Calendar CalendarSettings `mapstructure:"calendar"`
}

// SourceSettings locates the vCard address book.
type SourceSettings struct {
	Mode     string `mapstructure:"mode"` // "web" or "local"
	URL      string `mapstructure:"url"`
	Path     string `mapstructure:"path"`
	Username string `mapstructure:"username"`
}

// ServerSettings configures the feed server.
type ServerSettings struct {
	Port            string `mapstructure:"port"`
	RefreshInterval int    `mapstructure:"refresh_interval_min"`
}

// FeedSettings configures the generated iCalendar feed.
type FeedSettings struct {
	Language          string `mapstructure:"language"`
	ReminderEnabled   bool   `mapstructure:"reminder_enabled"`
	ReminderValue     int    `mapstructure:"reminder_value"`
	ReminderUnit      string `mapstructure:"reminder_unit"`
	ReminderDirection string `mapstructure:"reminder_direction"`
}

// LogSettings configures slog output.
type LogSettings struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
	File   string `mapstructure:"file"`   // empty: user cache dir
}

// CalendarSettings configures the calendar core.
type CalendarSettings struct {
	// DataDir overrides the bundled table data with files from a directory.
	DataDir string `mapstructure:"data_dir"`

	// DataURL fetches table data not found locally from a remote base URL.
	DataURL string `mapstructure:"data_url"`

	HijriVariant    string `mapstructure:"hijri_variant"`
	HistoryStrategy string `mapstructure:"history_strategy"`
}

// LoadSettings reads the configuration. configPath may be empty, in which case
// config.yaml is searched in the working directory and the user config dir;
// a missing file is not an error.
func LoadSettings(configPath string) (*Settings, error) {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load(DotEnvFile)

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/" + AppCommand)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigDecode, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigInvalid, err)
	}
	return &s, nil
}

// setDefaults registers every key so that environment variables are picked up
// by Unmarshal even when no file mentions them.
func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySourceMode, SourceModeLocal)
	v.SetDefault(KeySourceURL, "")
	v.SetDefault(KeySourcePath, "")
	v.SetDefault(KeySourceUser, "")
	v.SetDefault(KeyServerPort, DefaultPort)
	v.SetDefault(KeyServerInterval, DefaultRefreshMin)
	v.SetDefault(KeyFeedLanguage, DefaultLanguage)
	v.SetDefault(KeyReminderEnabled, false)
	v.SetDefault(KeyReminderValue, DefaultReminderValue)
	v.SetDefault(KeyReminderUnit, UnitDays)
	v.SetDefault(KeyReminderDir, DirBefore)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyDataDir, "")
	v.SetDefault(KeyDataURL, "")
	v.SetDefault(KeyHijriVariant, DefaultHijriVariant)
	v.SetDefault(KeyHistoryStrategy, DefaultHistoryStrategy)
}

// Validate checks every field and reports all problems at once.
func (s *Settings) Validate() error {
	var errs []error

	switch s.Source.Mode {
	case SourceModeWeb, SourceModeLocal:
	default:
		errs = append(errs, fmt.Errorf("%s: %q", ErrModeUnsupport, s.Source.Mode))
	}

	if err := ValidatePort(s.Server.Port); err != nil {
		errs = append(errs, err)
	}
	if s.Server.RefreshInterval < DisabledInterval {
		errs = append(errs, fmt.Errorf("%s: %d", KeyServerInterval, s.Server.RefreshInterval))
	}

	if !slices.Contains(SupportedLanguages, s.Feed.Language) {
		errs = append(errs, fmt.Errorf("%s: %q", ErrLanguage, s.Feed.Language))
	}
	switch s.Feed.ReminderUnit {
	case UnitDays, UnitHours, UnitMinutes:
	default:
		errs = append(errs, fmt.Errorf("%s: %q", ErrReminderUnit, s.Feed.ReminderUnit))
	}
	switch s.Feed.ReminderDirection {
	case DirBefore, DirAfter:
	default:
		errs = append(errs, fmt.Errorf("%s: %q", ErrReminderDir, s.Feed.ReminderDirection))
	}

	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%s: %q", ErrLogLevel, s.Log.Level))
	}
	switch s.Log.Format {
	case LogFormatJSON, LogFormatText:
	default:
		errs = append(errs, fmt.Errorf("%s: %q", ErrLogFormat, s.Log.Format))
	}

	return errors.Join(errs...)
}

// ValidatePort checks that port is a number between MinPort and MaxPort.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrPortNumber, err)
	}
	if n < MinPort || n > MaxPort {
		return fmt.Errorf("%s: %d", ErrPortRange, n)
	}
	return nil
}
