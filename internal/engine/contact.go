package engine

import (
	"time"

	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/hebrew"
)

// AnniversaryEntry is one Hebrew anniversary found in the address book,
// summarized for listings.
type AnniversaryEntry struct {
	// UID is a stable hash of the contact name, date and kind.
	UID string

	// Name is the display name (Formatted Name or Structured Name).
	Name string

	Kind hebrew.Anniversary

	// Source is the Gregorian date read from the vCard.
	Source time.Time

	// Event is the Hebrew date of Source.
	Event calsys.Date

	// NextOccurrence is the first Gregorian date of the anniversary on or
	// after today. It is the zero time when none falls in the next two years.
	NextOccurrence time.Time

	// CountNext is the number of Hebrew years completed at NextOccurrence
	// (the age for a birthday).
	CountNext int
}
