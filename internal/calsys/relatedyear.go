package calsys

// RelatedYear projects dates of any calendar system onto the proleptic
// Gregorian year in which their own calendar year begins. The value is
// derived and cannot be set.
type RelatedYear struct {
	// System converts the dates handed to the deriver.
	System System

	// StartOfYear maps a date to the first day of its calendar year.
	// Nil means month 1, day 1 of the same era and year.
	StartOfYear func(Date) Date
}

// Value returns the Gregorian year of the first day of ctx's calendar year.
func (r RelatedYear) Value(ctx Date) (int, error) {
	days, err := r.System.ToDayCount(r.startOf(ctx))
	if err != nil {
		return 0, err
	}
	return GregorianYear(days), nil
}

// Minimum returns the related year of the earliest year the system covers.
func (r RelatedYear) Minimum(Date) (int, error) {
	return r.atBoundary(r.System.MinDayCount())
}

// Maximum returns the related year of the latest year the system covers.
func (r RelatedYear) Maximum(Date) (int, error) {
	return r.atBoundary(r.System.MaxDayCount())
}

// IsValid reports whether value equals the derived value of ctx.
func (r RelatedYear) IsValid(ctx Date, value int) bool {
	v, err := r.Value(ctx)
	return err == nil && v == value
}

// With returns ctx unchanged when value is the derived value, and fails with
// ErrUnsupportedModification otherwise.
func (r RelatedYear) With(ctx Date, value int) (Date, error) {
	if r.IsValid(ctx, value) {
		return ctx, nil
	}
	return Date{}, NewUnsupportedModification("related gregorian year of %s is read-only (requested %d)", ctx, value)
}

func (r RelatedYear) atBoundary(days DayCount) (int, error) {
	date, err := r.System.FromDayCount(days)
	if err != nil {
		return 0, err
	}
	return r.Value(date)
}

func (r RelatedYear) startOf(ctx Date) Date {
	if r.StartOfYear != nil {
		return r.StartOfYear(ctx)
	}
	return Date{Era: ctx.Era, Year: ctx.Year, Month: 1, Day: 1, Variant: ctx.Variant}
}
