// Package i18n localizes the strings of the anniversary feed (event
// summaries, descriptions and Hebrew month names) from embedded JSON files.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/config"
	"github.com/tartampluch/go-calendars/internal/hebrew"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves translation keys for one language at a time.
type Translator struct {
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer
	languages []string
}

// New loads every embedded locale and selects lang. Unknown languages fall
// back to English.
func New(lang string) *Translator {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		t.SetLanguage(lang)
		return t
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		t.languages = append(t.languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	t.SetLanguage(lang)
	return t
}

// Languages lists the loaded locales.
func (t *Translator) Languages() []string {
	return t.languages
}

// SetLanguage switches the active language.
func (t *Translator) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	t.localizer = goi18n.NewLocalizer(t.bundle, lang, config.DefaultLanguage)
}

// Msg translates key, returning the key itself when no translation exists.
func (t *Translator) Msg(key string) string {
	return t.Format(key, nil)
}

// Format translates key with template data.
func (t *Translator) Format(key string, data map[string]any) string {
	if t == nil || t.localizer == nil {
		return key
	}
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Summary renders the title of an anniversary event. nth is the age (or the
// number of years since the death); zero leaves the count out.
func (t *Translator) Summary(kind hebrew.Anniversary, name string, nth int) string {
	switch {
	case kind == hebrew.Yahrzeit && nth > 0:
		return t.Format(config.TKeyEvtYahrzeitNth, map[string]any{"Name": name, "Count": nth})
	case kind == hebrew.Yahrzeit:
		return t.Format(config.TKeyEvtYahrzeit, map[string]any{"Name": name})
	case nth > 0:
		return t.Format(config.TKeyEvtBirthdayAge, map[string]any{"Name": name, "Age": nth})
	default:
		return t.Format(config.TKeyEvtBirthday, map[string]any{"Name": name})
	}
}

// MonthName names a Hebrew month of the given year. Adar II of a common year
// is plain Adar.
func (t *Translator) MonthName(year int, m hebrew.Month) string {
	if m == hebrew.AdarII && !hebrew.IsLeapYear(year) {
		return t.Msg(config.TKeyMonthAdar)
	}
	return t.Msg(config.TKeyMonthPrefix + strconv.Itoa(int(m)))
}

// HebrewDate renders a Hebrew date as "15 Nisan 5785".
func (t *Translator) HebrewDate(d calsys.Date) string {
	return fmt.Sprintf("%d %s %d", d.Day, t.MonthName(d.Year, hebrew.Month(d.Month)), d.Year)
}

// Description renders the event description carrying the Hebrew date.
func (t *Translator) Description(d calsys.Date) string {
	return t.Format(config.TKeyEvtDescription, map[string]any{"HebrewDate": t.HebrewDate(d)})
}
