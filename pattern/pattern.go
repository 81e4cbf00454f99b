// Package pattern decides whether an instant satisfies a seven-field
// cron-style schedule and computes the earliest instant strictly after a
// given one that does. Expression parsing happens upstream; this package
// consumes pre-built per-field matchers.
package pattern

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoMatch is returned when no future instant satisfies the schedule
// within the representable year range or the search iteration limit.
var ErrNoMatch = errors.New("pattern: no matching time found")

// ErrInvalidMatcher is returned when a Matcher is constructed with a nil
// matcher or a matcher outside the closed set of implementations.
var ErrInvalidMatcher = errors.New("invalid part matcher")

// maxSearchPasses bounds the next-match search. Each pass either commits a
// later field value or steps one day past an invalid candidate, so any
// schedule with an occurrence in the supported year range resolves in far
// fewer passes.
const maxSearchPasses = 1000

// Values is a field-value vector indexed by Part ordinal: second, minute,
// hour, day-of-month, 1-based month, 0-based day-of-week, year.
type Values [partCount]int

// FieldsOf extracts the field-value vector of an instant.
func FieldsOf(t time.Time) Values {
	return Values{
		PartSecond:     t.Second(),
		PartMinute:     t.Minute(),
		PartHour:       t.Hour(),
		PartDayOfMonth: t.Day(),
		PartMonth:      int(t.Month()),
		PartDayOfWeek:  int(t.Weekday()),
		PartYear:       t.Year(),
	}
}

// Matcher composes one PartMatcher per schedule field. It is immutable after
// construction and safe for concurrent use; every search works on its own
// buffer.
type Matcher struct {
	matchers [partCount]PartMatcher
}

// NewMatcher builds a Matcher from exactly one PartMatcher per field, in
// ordinal order. Each matcher must be an AlwaysMatcher, a SetMatcher or a
// DayOfMonthMatcher; anything else is a configuration error.
func NewMatcher(second, minute, hour, dayOfMonth, month, dayOfWeek, year PartMatcher) (*Matcher, error) {
	m := &Matcher{
		matchers: [partCount]PartMatcher{
			PartSecond:     second,
			PartMinute:     minute,
			PartHour:       hour,
			PartDayOfMonth: dayOfMonth,
			PartMonth:      month,
			PartDayOfWeek:  dayOfWeek,
			PartYear:       year,
		},
	}
	for i, pm := range m.matchers {
		switch pm.(type) {
		case AlwaysMatcher, *SetMatcher, *DayOfMonthMatcher:
		default:
			return nil, fmt.Errorf("%w: %s has %T", ErrInvalidMatcher, Part(i), pm)
		}
	}
	return m, nil
}

// Match reports whether the field vector satisfies the schedule. A negative
// second disables second-granularity checking, for minute-resolution
// schedules. Day-of-week 7 is treated as Sunday.
func (m *Matcher) Match(second, minute, hour, dayOfMonth, month, dayOfWeek, year int) bool {
	if dayOfWeek == 7 {
		dayOfWeek = 0
	}
	return (second < 0 || m.matchers[PartSecond].Match(second)) &&
		m.matchers[PartMinute].Match(minute) &&
		m.matchers[PartHour].Match(hour) &&
		m.matchDayOfMonth(dayOfMonth, month, isLeapYear(year)) &&
		m.matchers[PartMonth].Match(month) &&
		m.matchers[PartDayOfWeek].Match(dayOfWeek) &&
		m.matchers[PartYear].Match(year)
}

// MatchTime reports whether the instant satisfies the schedule.
// matchSecond false ignores the seconds field.
func (m *Matcher) MatchTime(t time.Time, matchSecond bool) bool {
	v := FieldsOf(t)
	if !matchSecond {
		v[PartSecond] = -1
	}
	return m.Match(v[PartSecond], v[PartMinute], v[PartHour], v[PartDayOfMonth], v[PartMonth], v[PartDayOfWeek], v[PartYear])
}

// matchDayOfMonth dispatches the one context-sensitive field: the
// day-of-month-aware matcher also needs the month and leap-year flag.
func (m *Matcher) matchDayOfMonth(day, month int, leapYear bool) bool {
	if dm, ok := m.matchers[PartDayOfMonth].(*DayOfMonthMatcher); ok {
		return dm.MatchDay(day, month, leapYear)
	}
	return m.matchers[PartDayOfMonth].Match(day)
}

// Next returns the earliest instant strictly after t that satisfies the
// schedule, in t's location. It returns ErrNoMatch when no such instant
// exists in the supported year range.
func (m *Matcher) Next(t time.Time) (time.Time, error) {
	// Strictly after: advance to the next whole second before searching.
	t = t.Add(time.Second - time.Duration(t.Nanosecond()))
	return m.NextAfter(FieldsOf(t), t.Location())
}

// NextAfter returns the earliest instant at or after the given field vector
// that satisfies the schedule, in the given location. The vector is expected
// to be pre-advanced past the caller's reference instant (Next does this);
// a fully matching vector is returned as-is.
func (m *Matcher) NextAfter(values Values, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	ref := newCalendar(values, loc, m.lastDayAware()).time()

	for pass := 0; pass < maxSearchPasses; pass++ {
		t, err := m.nextCandidate(values, loc)
		if err != nil {
			return time.Time{}, err
		}
		if !t.Before(ref) && m.MatchTime(t, true) {
			return t, nil
		}

		// The candidate landed on a day the schedule cannot accept (a day
		// that overflowed its month, or a day-of-week miss). Resume from the
		// start of the following day.
		base := t
		if base.Before(ref) {
			base = ref
		}
		next := time.Date(base.Year(), base.Month(), base.Day()+1, 0, 0, 0, 0, loc)
		values = FieldsOf(next)
		ref = next
	}

	return time.Time{}, ErrNoMatch
}

// nextCandidate runs one pass of the carry algorithm: scan fields from year
// down to second, commit the first field that can advance, borrow upward when
// a field's cycle wraps, then reset every lower-order field to its minimum.
func (m *Matcher) nextCandidate(values Values, loc *time.Location) (time.Time, error) {
	cal := newCalendar(values, loc, m.lastDayAware())

	year := int(PartYear)
	dayOfWeek := int(PartDayOfWeek)

	i := year
	borrow := false
	for i >= 0 {
		// The day-of-week slot cannot advance a date on its own; the
		// enclosing search enforces that constraint by day stepping.
		if i == dayOfWeek {
			i--
			continue
		}
		next := m.matchers[i].NextAfter(values[i])
		if next > values[i] {
			// This field advanced; everything below resets to minimums.
			cal.set(Part(i), next)
			i--
			break
		}
		if next < values[i] {
			// Wrapped: no value left in this field's cycle, the next field
			// up must advance strictly past its current value.
			i++
			borrow = true
			break
		}
		i--
	}

	if borrow {
		for i <= year {
			if i == dayOfWeek {
				i++
				continue
			}
			next := m.matchers[i].NextAfter(values[i] + 1)
			if next > values[i] {
				if i == year && next > PartYear.Max() {
					return time.Time{}, ErrNoMatch
				}
				cal.set(Part(i), next)
				i--
				break
			}
			i++
		}
		if i > year {
			// Borrow ran past the year field: nothing left to advance.
			return time.Time{}, ErrNoMatch
		}
	}

	for j := 0; j <= i; j++ {
		cal.set(Part(j), m.minValue(Part(j)))
	}

	return cal.time(), nil
}

// lastDayAware reports whether the day-of-month matcher accepts the
// LastDayOfMonth sentinel.
func (m *Matcher) lastDayAware() bool {
	dm, ok := m.matchers[PartDayOfMonth].(*DayOfMonthMatcher)
	return ok && dm.SetMatcher.Match(LastDayOfMonth)
}

// minValue returns the value a field resets to when a higher-order field
// advances.
func (m *Matcher) minValue(part Part) int {
	switch pm := m.matchers[part].(type) {
	case AlwaysMatcher:
		return part.Min()
	case *SetMatcher:
		return pm.MinValue()
	case *DayOfMonthMatcher:
		return pm.MinValue()
	default:
		// NewMatcher rejects anything outside the closed set.
		panic(fmt.Sprintf("pattern: unknown matcher kind %T for %s", pm, part))
	}
}
