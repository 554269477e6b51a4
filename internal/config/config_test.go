package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendars/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"ResourceFamilyCalendar", config.ResourceFamilyCalendar},
		{"DefaultHijriVariant", config.DefaultHijriVariant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Calendars/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.Less(t, config.MaxTableSize, config.MaxHTTPResponseSize, "Table data must stay far below the vCard limit")
	assert.Equal(t, 3, config.MaxVariantAdjustment)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), config.FilePermUserRW))
	return path
}

func TestLoadSettings_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
source:
  mode: web
  url: https://example.com/contacts.vcf
feed:
  language: fr
`)

	s, err := config.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, config.SourceModeWeb, s.Source.Mode)
	assert.Equal(t, "https://example.com/contacts.vcf", s.Source.URL)
	assert.Equal(t, "fr", s.Feed.Language)
	assert.Equal(t, config.DefaultPort, s.Server.Port)
	assert.Equal(t, config.DefaultRefreshMin, s.Server.RefreshInterval)
	assert.Equal(t, config.DefaultHijriVariant, s.Calendar.HijriVariant)
	assert.Equal(t, config.DefaultHistoryStrategy, s.Calendar.HistoryStrategy)
}

func TestLoadSettings_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"8081\"\n")
	t.Setenv("GO_CALENDARS_SERVER_PORT", "9090")
	t.Setenv("GO_CALENDARS_CALENDAR_HIJRI_VARIANT", "islamic-civil:-1")

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", s.Server.Port)
	assert.Equal(t, "islamic-civil:-1", s.Calendar.HijriVariant)
}

func TestLoadSettings_Errors(t *testing.T) {
	t.Run("Missing explicit file", func(t *testing.T) {
		_, err := config.LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrConfigRead)
	})

	t.Run("Invalid values are all reported", func(t *testing.T) {
		path := writeConfig(t, `
feed:
  language: de
  reminder_unit: w
log:
  level: loud
`)
		_, err := config.LoadSettings(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrLanguage)
		assert.Contains(t, err.Error(), config.ErrReminderUnit)
		assert.Contains(t, err.Error(), config.ErrLogLevel)
	})
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		port    string
		wantErr string
	}{
		{"18080", ""},
		{"", config.ErrPortRequired},
		{"http", config.ErrPortNumber},
		{"0", config.ErrPortRange},
		{"70000", config.ErrPortRange},
	}

	for _, tt := range tests {
		t.Run(tt.port, func(t *testing.T) {
			err := config.ValidatePort(tt.port)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
