package pattern

import "time"

// calendar is the private working buffer a next-match search writes into.
// Values are stored in the underlying calendar convention (months 0-based,
// day-of-week shifted up by one) and converted back to a time.Time once the
// search has committed every field. Each search owns its own calendar, so a
// half-updated buffer is never visible outside the call.
type calendar struct {
	fields [partCount]int
	loc    *time.Location

	// lastDayAware marks that the day-of-month matcher uses the
	// LastDayOfMonth sentinel, so a stored 32 resolves against the final
	// month and year rather than spilling into the following month.
	lastDayAware bool
}

func newCalendar(values Values, loc *time.Location, lastDayAware bool) *calendar {
	c := &calendar{loc: loc, lastDayAware: lastDayAware}
	for i, v := range values {
		c.set(Part(i), v)
	}
	return c
}

// set writes a public-convention field value, applying the per-field storage
// correction. The same correction runs on every write, including min resets.
func (c *calendar) set(part Part, value int) {
	switch part {
	case PartMonth:
		value -= 1
	case PartDayOfWeek:
		value += 1
	}
	c.fields[part] = value
}

// time converts the buffer to an instant in the calendar's zone. Day-of-week
// is derived from the date by time.Time itself, so the stored day-of-week
// slot participates only in the search bookkeeping. Out-of-range days (a
// 31st committed into a 30-day month) normalize forward, which the search
// detects by re-matching the result.
func (c *calendar) time() time.Time {
	day := c.fields[PartDayOfMonth]
	month := c.fields[PartMonth] + 1
	year := c.fields[PartYear]

	if c.lastDayAware && day == LastDayOfMonth {
		day = lastDayOfMonth(month, isLeapYear(year))
	}

	return time.Date(
		year,
		time.Month(month),
		day,
		c.fields[PartHour],
		c.fields[PartMinute],
		c.fields[PartSecond],
		0,
		c.loc,
	)
}
