// Package engine turns an address book into an iCalendar feed of Hebrew
// birthdays and yahrzeits.
package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/config"
	"github.com/tartampluch/go-calendars/internal/hebrew"
)

// SyncConfig contains all parameters required to perform a synchronization.
type SyncConfig struct {
	Mode            string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath       string // Path to the .vcf file
	WebURL          string // CardDAV or WebDAV URL
	WebUser         string // HTTP Basic Auth Username
	WebPass         string // HTTP Basic Auth Password
	ReminderTrigger string // ISO8601 duration string (e.g., "-P1D")
}

// Localizer renders the user-visible strings of the feed.
// *i18n.Translator implements it.
type Localizer interface {
	Msg(key string) string
	Summary(kind hebrew.Anniversary, name string, nth int) string
	Description(date calsys.Date) string
}

// Generator is the core service responsible for fetching and converting data.
type Generator struct {
	Clock   Clock        // Interface for time mocking.
	Fetcher VCardFetcher // Interface for network abstraction.

	// Localizer is optional; English fallbacks are used when nil.
	Localizer Localizer
}

// datedProp maps a vCard property to the anniversary it produces.
type datedProp struct {
	name string
	kind hebrew.Anniversary
}

var datedProps = []datedProp{
	{config.VCardBDAY, hebrew.Birthday},
	{config.VCardDeathDate, hebrew.Yahrzeit},
	{config.VCardXDeath, hebrew.Yahrzeit},
}

type syncStats struct{ processed, found, today int }

// RunSync executes the fetching, parsing, and generation pipeline.
// It returns the ICS data, the anniversaries found, the number of
// anniversaries falling today, and any error.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) ([]byte, []AnniversaryEntry, int, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncReq)

	reader, err := g.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, 0, ctx.Err()
		}
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, nil, 0, err
	}

	ics, entries, count, err := g.generateCalendar(ctx, reader, cfg.ReminderTrigger)
	if err == nil {
		log.Debug(config.MsgGenSuccess, config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return ics, entries, count, err
}

// acquireStream opens the appropriate data source based on configuration.
func (g *Generator) acquireStream(ctx context.Context, cfg SyncConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return g.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// generateCalendar parses the vCard stream and builds the feed and the
// entry list.
func (g *Generator) generateCalendar(ctx context.Context, r io.Reader, reminderTrigger string) ([]byte, []AnniversaryEntry, int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, g.msg(config.TKeyCalName, config.ICalCalName))
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// "Today" is the local calendar date; only DTSTAMP is in UTC.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	decoder := vcard.NewDecoder(r)
	var stats syncStats
	var entries []AnniversaryEntry

	for {
		if ctx.Err() != nil {
			return nil, nil, 0, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken card must not hide the others.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}
		stats.processed++

		name := cardName(card)
		// DEATHDATE and X-DEATHDATE describe the same yahrzeit; the first usable one wins.
		seen := make(map[hebrew.Anniversary]bool, len(datedProps))
		for _, dp := range datedProps {
			if seen[dp.kind] {
				continue
			}
			field := card.Get(dp.name)
			if field == nil || field.Value == "" {
				continue
			}

			source, err := parseDate(field.Value)
			if err != nil {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyDate, field.Value)
				continue
			}

			entry, events, isToday, err := g.createEvents(name, dp.kind, source, reminderTrigger, now)
			if err != nil {
				slog.Warn(config.MsgSkippedEvent,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyName, name,
					config.LogKeyDate, field.Value,
					config.LogKeyError, err)
				continue
			}
			seen[dp.kind] = true
			stats.found++
			entries = append(entries, entry)

			if isToday {
				stats.today++
				slog.Info(config.MsgAnnivToday,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyName, name,
					config.LogKeyKind, dp.kind.String())
			}

			for _, e := range events {
				e.Props.Set(dtStampProp)
				cal.Children = append(cal.Children, e.Component)
			}
		}
	}

	if len(cal.Children) == 0 {
		// An empty VCALENDAR keeps clients from flagging the feed as invalid.
		g.logSuccess(stats)
		return []byte(config.StubVCalendar), entries, 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(stats)
	return buf.Bytes(), entries, stats.today, nil
}

// logSuccess logs the final statistics of the generation process.
func (g *Generator) logSuccess(stats syncStats) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.found),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
}

// cardName picks FN, then N, then a fallback.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

// createEvents generates the events of one anniversary for the Gregorian
// years around now. Occurrences before the event itself are skipped.
func (g *Generator) createEvents(name string, kind hebrew.Anniversary, source time.Time, reminderTrigger string, now time.Time) (AnniversaryEntry, []*ical.Event, bool, error) {
	event, err := hebrew.EventOf(calsys.Gregorian, gregorianDate(source))
	if err != nil {
		return AnniversaryEntry{}, nil, false, err
	}
	eventDays := calsys.FromTime(source)
	today := calsys.FromTime(now)

	// Deterministic UID generation for stability across refreshes
	input := fmt.Sprintf(config.FormatHashInput, name, source.Format(config.DateFormatFullDash), kind, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	next, count, err := calculateNextOccurrence(now, kind, event)
	if err != nil {
		return AnniversaryEntry{}, nil, false, err
	}
	entry := AnniversaryEntry{
		UID:            uidBase,
		Name:           name,
		Kind:           kind,
		Source:         source,
		Event:          event,
		NextOccurrence: next,
		CountNext:      count,
	}

	var events []*ical.Event
	isToday := false

	for y := now.Year() - config.YearsAround; y <= now.Year()+config.YearsAround; y++ {
		dates, err := kind.ForGregorianYear(event, y)
		if err != nil {
			return AnniversaryEntry{}, nil, false, err
		}

		for _, date := range dates {
			days := calsys.GregorianDays(date.Year, date.Month, date.Day)
			if days < eventDays {
				continue
			}
			hd, err := hebrew.Calendar{}.FromDayCount(days)
			if err != nil {
				return AnniversaryEntry{}, nil, false, err
			}
			nth := hd.Year - event.Year
			if days == today {
				isToday = true
			}

			e := ical.NewEvent()
			e.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, kind, hd.Year, config.ICalDomain))

			summary := g.summary(kind, name, nth)
			e.Props.SetText(config.PropSummary, summary)
			e.Props.SetText(config.PropDescription, g.description(hd))
			e.Props.SetText(config.PropCategories, kind.String())

			dtStartProp := ical.NewProp(config.PropDTStart)
			dtStartProp.SetDate(time.Date(date.Year, time.Month(date.Month), date.Day, 0, 0, 0, 0, now.Location()))
			e.Props.Set(dtStartProp)

			if reminderTrigger != "" {
				addAlarm(e, reminderTrigger, summary)
			}
			events = append(events, e)
		}
	}
	return entry, events, isToday, nil
}

func (g *Generator) msg(key, fallback string) string {
	if g.Localizer == nil {
		return fallback
	}
	return g.Localizer.Msg(key)
}

func (g *Generator) summary(kind hebrew.Anniversary, name string, nth int) string {
	if g.Localizer != nil {
		return g.Localizer.Summary(kind, name, nth)
	}
	switch {
	case kind == hebrew.Yahrzeit && nth > 0:
		return fmt.Sprintf(config.FallbackYahrzeitNth, name, nth)
	case kind == hebrew.Yahrzeit:
		return fmt.Sprintf(config.FallbackYahrzeit, name)
	case nth > 0:
		return fmt.Sprintf(config.FallbackBirthdayAge, name, nth)
	default:
		return fmt.Sprintf(config.FallbackBirthday, name)
	}
}

func (g *Generator) description(hd calsys.Date) string {
	if g.Localizer != nil {
		return g.Localizer.Description(hd)
	}
	return fmt.Sprintf("%d %s %d", hd.Day, hebrew.Month(hd.Month), hd.Year)
}

// calculateNextOccurrence finds the first anniversary on or after both the
// local date of now and the event, looking at most two Gregorian years ahead.
func calculateNextOccurrence(now time.Time, kind hebrew.Anniversary, event calsys.Date) (time.Time, int, error) {
	eventDays, err := hebrew.Calendar{}.ToDayCount(event)
	if err != nil {
		return time.Time{}, 0, err
	}
	from := max(calsys.FromTime(now), eventDays)
	loc := now.Location()

	for y := now.Year(); y <= now.Year()+2; y++ {
		dates, err := kind.ForGregorianYear(event, y)
		if err != nil {
			return time.Time{}, 0, err
		}
		for _, d := range dates {
			days := calsys.GregorianDays(d.Year, d.Month, d.Day)
			if days < from {
				continue
			}
			hd, err := hebrew.Calendar{}.FromDayCount(days)
			if err != nil {
				return time.Time{}, 0, err
			}
			return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc), hd.Year - event.Year, nil
		}
	}
	return time.Time{}, 0, nil
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

func gregorianDate(t time.Time) calsys.Date {
	y, m, d := t.Date()
	return calsys.Date{Era: calsys.CommonEra, Year: y, Month: int(m), Day: d}
}

// parseDate handles the vCard date formats that carry a year. Dates without
// a year (--MM-DD) cannot be placed in the Hebrew calendar.
func parseDate(value string) (time.Time, error) {
	formats := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}
