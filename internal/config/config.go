package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Calendars/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Calendars"
	AppID             = "com.github.tartampluch.go-calendars"
	AppCommand        = "go-calendars"
	KeyringService    = "com.github.tartampluch.go-calendars"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	EnvPrefix         = "GO_CALENDARS"
	ConfigFileName    = "config"
	ConfigFileType    = "yaml"
	DotEnvFile        = ".env"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs and generated feeds.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdConvert     = "convert"
	CmdAnniversary = "anniversary"
	CmdNewYear     = "newyear"
	CmdFeed        = "feed"
	CmdServe       = "serve"
	CmdVersion     = "version"

	FlagConfig   = "config"
	FlagDebug    = "debug"
	FlagFrom     = "from"
	FlagTo       = "to"
	FlagKind     = "kind"
	FlagDate     = "date"
	FlagYear     = "year"
	FlagStrategy = "strategy"
	FlagEra      = "era"
	FlagSource   = "source"
	FlagUser     = "user"
	FlagOut      = "out"
	FlagLang     = "lang"
	FlagPort     = "port"

	FlagDescConfig   = "Path to a configuration file (default: ./config.yaml)"
	FlagDescDebug    = "Enable debug logging"
	FlagDescFrom     = "Source calendar system (gregorian, julian, hebrew, coptic, history, hijri[:variant])"
	FlagDescTo       = "Target calendar system"
	FlagDescKind     = "Anniversary kind (birthday or yahrzeit)"
	FlagDescDate     = "Gregorian date of the event (YYYY-MM-DD)"
	FlagDescYear     = "Target year"
	FlagDescStrategy = "New-year strategy, e.g. MARIA_ANUNCIATA:1749,BEGIN_OF_JANUARY"
	FlagDescEra      = "Historic era (BC, AD, HISPANIC, BYZANTINE, AB_URBE_CONDITA)"
	FlagDescSource   = "vCard source: local file path or http(s) URL"
	FlagDescUser     = "Username for the vCard source (password read from the OS keyring)"
	FlagDescOut      = "Output file for the iCalendar feed (default: stdout)"
	FlagDescLang     = "Language of event summaries"
	FlagDescPort     = "HTTP port of the feed server"

	CmdShortRoot        = "Multi-calendar conversion and Hebrew anniversary feeds"
	CmdShortConvert     = "Convert a date between calendar systems"
	CmdShortAnniversary = "Resolve a Hebrew birthday or yahrzeit in a Gregorian year"
	CmdShortNewYear     = "Resolve the historic new year and displayed year"
	CmdShortFeed        = "Generate an iCalendar feed of Hebrew anniversaries"
	CmdShortServe       = "Serve the anniversary feed over HTTP"
	CmdShortVersion     = "Show application version"

	CmdUseConvert = "convert <era-year-month-day>"
	CmdUseNewYear = "newyear [era-year-month-day]"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"

	// Command output lines.
	FormatDateLine      = "%s\n"
	FormatAnnivLine     = "%s\t%s\n"
	FormatNewYearLine   = "%s\t%s\n"
	FormatDisplayedYear = "%d\n"
)

// -----------------------------------------------------------------------------
// Settings Keys (viper)
// -----------------------------------------------------------------------------

const (
	KeySourceMode      = "source.mode"
	KeySourceURL       = "source.url"
	KeySourcePath      = "source.path"
	KeySourceUser      = "source.username"
	KeyServerPort      = "server.port"
	KeyServerInterval  = "server.refresh_interval_min"
	KeyFeedLanguage    = "feed.language"
	KeyReminderEnabled = "feed.reminder_enabled"
	KeyReminderValue   = "feed.reminder_value"
	KeyReminderUnit    = "feed.reminder_unit"
	KeyReminderDir     = "feed.reminder_direction"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyLogFile         = "log.file"
	KeyDataDir         = "calendar.data_dir"
	KeyDataURL         = "calendar.data_url"
	KeyHijriVariant    = "calendar.hijri_variant"
	KeyHistoryStrategy = "calendar.history_strategy"
)

// SupportedLanguages defines the list of available summary languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyEvtBirthday    = "event_hebrew_birthday"     // Requires Name
	TKeyEvtBirthdayAge = "event_hebrew_birthday_age" // Requires Name, Age
	TKeyEvtYahrzeit    = "event_yahrzeit"            // Requires Name
	TKeyEvtYahrzeitNth = "event_yahrzeit_nth"        // Requires Name, Count
	TKeyEvtDescription = "event_description"         // Requires HebrewDate
	TKeyCalName        = "calendar_name"
	TKeyMonthPrefix    = "hebrew_month_" // Suffixed with the civil month number
	TKeyMonthAdar      = "hebrew_month_adar"
)

// -----------------------------------------------------------------------------
// Calendar Systems & Defaults
// -----------------------------------------------------------------------------

const (
	SystemGregorian = "gregorian"
	SystemJulian    = "julian"
	SystemHebrew    = "hebrew"
	SystemCoptic    = "coptic"
	SystemHijri     = "hijri"
	SystemHistory   = "history"

	KindBirthday = "birthday"
	KindYahrzeit = "yahrzeit"

	// SystemVariantSeparator splits "hijri:islamic-civil:+1" into system and variant.
	SystemVariantSeparator = ":"

	// VariantAdjustmentSeparator splits a variant name from its day adjustment.
	VariantAdjustmentSeparator = ":"

	// MaxVariantAdjustment bounds the regional day shift of tabulated calendars.
	MaxVariantAdjustment = 3

	// ResourceFamilyCalendar is the family under which table data is looked up.
	ResourceFamilyCalendar = "calendar"
	ResourceDataDir        = "data/"
	ResourceDataExt        = ".data"

	DefaultHijriVariant    = "islamic-civil"
	DefaultHistoryStrategy = "BEGIN_OF_JANUARY"
	DefaultTableVersion    = "1.0"
	DefaultTableMinYear    = 1
	DefaultTableMaxYear    = 0
	MonthsPerLunarYear     = 12

	// Table property names.
	TablePropType     = "type"
	TablePropVersion  = "version"
	TablePropISOStart = "iso-start"
	TablePropMin      = "min"
	TablePropMax      = "max"

	// StrategyPartSeparator and StrategyBoundSeparator split textual strategies.
	StrategyPartSeparator  = ","
	StrategyBoundSeparator = ":"

	// YearsAround is the number of Gregorian years before and after the
	// current one covered by a generated feed.
	YearsAround = 1
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb        = "web"
	SourceModeLocal      = "local"
	DefaultPort          = "18080"
	DefaultRefreshMin    = 60
	DefaultLanguage      = "en"
	DefaultReminderValue = 1
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	LogFormatJSON        = "json"
	LogFormatText        = "text"
	UIDSalt              = "go-calendars-v1-" // Salt for deterministic UID generation
	DisabledInterval     = 0

	// Log rotation (lumberjack).
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28
)

// ISO8601 Duration Components for Reminders
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISODay            = "D"
	ISOHour           = "H"
	ISOMinute         = "M"
	ISOTimePrefix     = "T"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Calendars//Engine//EN"
	ICalCalName   = "Hebrew Anniversaries"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gocalendars"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropCategories  = "CATEGORIES"

	VCardBDAY      = "BDAY"
	VCardDeathDate = "DEATHDATE"
	VCardXDeath    = "X-DEATHDATE"
	VCardFN        = "FN"
	VCardN         = "N"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard date fields and CLI arguments.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s|%s"
	FormatUID       = "%s-%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	MaxTableSize        = 4 * 1024 * 1024   // 4MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteCalendar       = "/calendar.ics"
	RouteHealth         = "/healthz"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Kinds (calendar core)
// -----------------------------------------------------------------------------

const (
	ErrKindOutOfRange     = "out of range"
	ErrKindInvalidDate    = "invalid date"
	ErrKindDataFormat     = "data format error"
	ErrKindUnsupportedMod = "unsupported modification"
	ErrKindConstruction   = "construction conflict"
	ErrKindArgument       = "illegal argument"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrConfigRead       = "failed to read configuration"
	ErrConfigDecode     = "failed to decode configuration"
	ErrConfigInvalid    = "invalid configuration"
	ErrLogLevel         = "unsupported log level"
	ErrLogFormat        = "unsupported log format"
	ErrLanguage         = "unsupported language"
	ErrReminderUnit     = "unsupported reminder unit"
	ErrReminderDir      = "unsupported reminder direction"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrCtxCancelled     = "operation cancelled by context"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrWriteFile        = "failed to write output file"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrResourceNotFound = "resource not found"
	ErrResourceOpen     = "failed to open resource"
	ErrResourceStatus   = "unexpected HTTP status for resource"
	ErrResourceTooLarge = "resource exceeds size limit"
	ErrTableLoad        = "failed to load calendar table"
	ErrUnknownSystem    = "unknown calendar system"
	ErrUnknownKind      = "unknown anniversary kind"
	ErrUnknownEra       = "unknown era"
	ErrUnknownRule      = "unknown new-year rule"
	ErrDateArgument     = "date must be written as era-year-month-day"
	ErrStrategyRead     = "failed to read new-year strategy"
	ErrStrategyWrite    = "failed to write new-year strategy"
	ErrAnniversary      = "failed to resolve anniversary"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgHealthy      = "ok"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackBirthday    = "Hebrew birthday: %s"
	FallbackBirthdayAge = "Hebrew birthday: %s (%d)"
	FallbackYahrzeit    = "Yahrzeit: %s"
	FallbackYahrzeitNth = "Yahrzeit: %s (%d)"
	FallbackName        = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgSyncReq       = "Sync requested"
	MsgSyncFailed    = "Feed generation failed"
	MsgWorkerStart   = "Background worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgAppStop       = "Application stopped gracefully"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgSkippedEvent  = "Skipping anniversary outside calendar range"
	MsgGenSuccess    = "Calendar generation successful"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgTableLoading  = "Loading calendar table"
	MsgTableLoaded   = "Calendar table loaded"
	MsgTableFailed   = "Calendar table could not be loaded"
	MsgResourceFetch = "Fetching resource"
	MsgResourceMiss  = "Resource not found, trying next loader"
	MsgConfigLoaded  = "Configuration loaded"
	MsgAnnivToday    = "Anniversary found today"
	MsgHTTPRequest   = "HTTP request"
	MsgFeedWritten   = "Feed written"
	MsgWorkerOnce    = "Refresh disabled, feed generated once"
)

// -----------------------------------------------------------------------------
// Reminder Units & Directions
// -----------------------------------------------------------------------------

const (
	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
	DirBefore   = "before"
	DirAfter    = "after"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "anniversaries_found"
	LogKeyToday     = "anniversaries_today"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyStats     = "stats"
	LogKeyName      = "name"
	LogKeyDate      = "date"
	LogKeyKind      = "kind"
	LogKeyDuration  = "duration_ms"
	LogKeyVariant   = "variant"
	LogKeyMonths    = "months"
	LogKeyFamily    = "family"
	LogKeyPath      = "path"
	LogKeyLevel     = "level"
	LogKeyMethod    = "method"
	LogKeyRequestID = "request_id"


	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompHijri    = "hijri"
	CompResource = "resource"
	CompEngine   = "engine"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompCLI      = "cli"
)
