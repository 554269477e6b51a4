package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/config"
	"github.com/tartampluch/go-calendars/internal/coptic"
	"github.com/tartampluch/go-calendars/internal/hebrew"
	"github.com/tartampluch/go-calendars/internal/hijri"
	"github.com/tartampluch/go-calendars/internal/history"
	"github.com/tartampluch/go-calendars/internal/resource"
)

func convertCmd(app *cli) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   config.CmdUseConvert,
		Short: config.CmdShortConvert,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := app.system(cmd.Context(), from)
			if err != nil {
				return err
			}
			dst, err := app.system(cmd.Context(), to)
			if err != nil {
				return err
			}

			date, err := parseDateArg(args[0])
			if err != nil {
				return err
			}
			if t, ok := src.(*hijri.Table); ok {
				date.Variant = t.Variant()
			}

			out, err := calsys.Convert(src, dst, date)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), config.FormatDateLine, out)
			return err
		},
	}

	cmd.Flags().StringVar(&from, config.FlagFrom, config.SystemGregorian, config.FlagDescFrom)
	cmd.Flags().StringVar(&to, config.FlagTo, config.SystemHebrew, config.FlagDescTo)
	return cmd
}

func anniversaryCmd(*cli) *cobra.Command {
	var kind, date string
	var year int

	cmd := &cobra.Command{
		Use:   config.CmdAnniversary,
		Short: config.CmdShortAnniversary,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := hebrew.ParseAnniversary(kind)
			if err != nil {
				return err
			}
			t, err := time.Parse(config.DateFormatFullDash, date)
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrDateParse, err)
			}

			event, err := hebrew.EventOf(calsys.Gregorian, calsys.Date{
				Era: calsys.CommonEra, Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
			})
			if err != nil {
				return err
			}
			if year == 0 {
				year = time.Now().Year()
			}

			dates, err := a.ForGregorianYear(event, year)
			if err != nil {
				return err
			}
			for _, d := range dates {
				hd, err := hebrew.EventOf(calsys.Gregorian, d)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), config.FormatAnnivLine, d, hd); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, config.FlagKind, config.KindBirthday, config.FlagDescKind)
	cmd.Flags().StringVar(&date, config.FlagDate, "", config.FlagDescDate)
	cmd.Flags().IntVar(&year, config.FlagYear, 0, config.FlagDescYear)
	_ = cmd.MarkFlagRequired(config.FlagDate)
	return cmd
}

// newYearCmd prints the first day of a historic year or, given a date, the
// year number a contemporary would have written on that day.
func newYearCmd(app *cli) *cobra.Command {
	var strategy, era string
	var year int

	cmd := &cobra.Command{
		Use:   config.CmdUseNewYear,
		Short: config.CmdShortNewYear,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strategy == "" {
				strategy = app.settings.Calendar.HistoryStrategy
			}
			s, err := history.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			h := history.Standard().WithStrategy(s)

			if len(args) == 1 {
				date, err := parseDateArg(args[0])
				if err != nil {
					return err
				}
				days, err := h.ToDayCount(date)
				if err != nil {
					return err
				}
				displayed, err := h.DisplayedYear(days)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), config.FormatDisplayedYear, displayed)
				return err
			}

			e, err := history.ParseEra(era)
			if err != nil {
				return err
			}
			days, err := h.BeginOfYear(e, year)
			if err != nil {
				return err
			}
			begin, err := h.FromDayCount(days)
			if err != nil {
				return err
			}
			gregorian, err := calsys.Gregorian.FromDayCount(days)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), config.FormatNewYearLine, begin, gregorian)
			return err
		},
	}

	cmd.Flags().StringVar(&strategy, config.FlagStrategy, "", config.FlagDescStrategy)
	cmd.Flags().StringVar(&era, config.FlagEra, string(history.AD), config.FlagDescEra)
	cmd.Flags().IntVar(&year, config.FlagYear, 0, config.FlagDescYear)
	return cmd
}

// system resolves a calendar name such as "hebrew" or "hijri:islamic-civil:+1".
// A bare "hijri" uses the configured variant, "history" the configured
// new-year strategy.
func (app *cli) system(ctx context.Context, name string) (calsys.System, error) {
	base, variant, hasVariant := strings.Cut(name, config.SystemVariantSeparator)

	switch strings.ToLower(base) {
	case config.SystemGregorian:
		return calsys.Gregorian, nil
	case config.SystemJulian:
		return calsys.Julian, nil
	case config.SystemHebrew:
		return hebrew.Calendar{}, nil
	case config.SystemCoptic:
		return coptic.Calendar{}, nil
	case config.SystemHistory:
		s, err := history.ParseStrategy(app.settings.Calendar.HistoryStrategy)
		if err != nil {
			return nil, err
		}
		return history.Standard().WithStrategy(s), nil
	case config.SystemHijri:
		if !hasVariant {
			variant = app.settings.Calendar.HijriVariant
		}
		t, err := app.registry().Get(ctx, variant)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, calsys.NewArgument("%s: %q", config.ErrUnknownSystem, name)
	}
}

// registry serves tables from the bundled data unless a data directory or
// mirror is configured.
func (app *cli) registry() *hijri.Registry {
	c := app.settings.Calendar
	if c.DataDir == "" && c.DataURL == "" {
		return hijri.Default()
	}
	return hijri.NewRegistry(resource.Default(c.DataDir, c.DataURL))
}

// parseDateArg reads "era-year-month-day". The era may itself contain dashes;
// a negative year is written with a second dash, as in "ce--0043-03-15".
func parseDateArg(s string) (calsys.Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 4 {
		return calsys.Date{}, calsys.NewArgument("%s: %q", config.ErrDateArgument, s)
	}

	n := len(parts)
	era := strings.Join(parts[:n-3], "-")
	negative := strings.HasSuffix(era, "-")
	era = strings.TrimSuffix(era, "-")
	if era == "" {
		return calsys.Date{}, calsys.NewArgument("%s: %q", config.ErrDateArgument, s)
	}

	var fields [3]int
	for i, p := range parts[n-3:] {
		v, err := strconv.Atoi(p)
		if err != nil {
			return calsys.Date{}, calsys.NewArgument("%s: %q", config.ErrDateArgument, s)
		}
		fields[i] = v
	}
	if negative {
		fields[0] = -fields[0]
	}

	return calsys.Date{Era: calsys.Era(era), Year: fields[0], Month: fields[1], Day: fields[2]}, nil
}
