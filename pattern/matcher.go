package pattern

import (
	"errors"
	"fmt"
)

// LastDayOfMonth is the day-of-month sentinel meaning "the last day of
// whatever month is being checked". It may appear in the value set given to
// NewDayOfMonthMatcher alongside ordinary days.
const LastDayOfMonth = 32

// ErrEmptySet is returned when a matcher is constructed with no values.
var ErrEmptySet = errors.New("matcher value set is empty")

// ErrValueOutOfRange is returned when a matcher value falls outside its
// field's legal range.
var ErrValueOutOfRange = errors.New("matcher value out of range")

// PartMatcher is the acceptance rule for a single schedule field.
//
// Implementations form a closed set: AlwaysMatcher, SetMatcher and
// DayOfMonthMatcher. Every matcher accepts at least one value, so NextAfter
// is total.
type PartMatcher interface {
	// Match reports whether value satisfies the rule.
	Match(value int) bool

	// NextAfter returns the smallest accepted value >= value. If no accepted
	// value remains at or above value, it returns the smallest accepted value
	// overall, which is necessarily < value, signaling to the caller that the
	// field's cycle wrapped and a higher-order field must advance.
	NextAfter(value int) int
}

// AlwaysMatcher accepts every value of its field.
type AlwaysMatcher struct{}

// Match always reports true.
func (AlwaysMatcher) Match(int) bool { return true }

// NextAfter returns value unchanged: every value is accepted.
func (AlwaysMatcher) NextAfter(value int) int { return value }

// SetMatcher accepts exactly a fixed set of values for one field.
type SetMatcher struct {
	part     Part
	accepted []bool // indexed by value
	min      int
}

// NewSetMatcher builds a matcher accepting exactly values for the given
// field. It returns ErrEmptySet for an empty set and ErrValueOutOfRange for
// values outside the field's range.
func NewSetMatcher(part Part, values []int) (*SetMatcher, error) {
	return newSetMatcher(part, values, part.Max())
}

func newSetMatcher(part Part, values []int, max int) (*SetMatcher, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySet, part)
	}

	m := &SetMatcher{
		part:     part,
		accepted: make([]bool, max+1),
		min:      max + 1,
	}
	for _, v := range values {
		if part == PartDayOfWeek && v == 7 {
			// 0 and 7 both mean Sunday.
			v = 0
		}
		if v < part.Min() || v > max {
			return nil, fmt.Errorf("%w: %s value %d not in [%d, %d]",
				ErrValueOutOfRange, part, v, part.Min(), max)
		}
		m.accepted[v] = true
		if v < m.min {
			m.min = v
		}
	}

	return m, nil
}

// Match reports whether value is a member of the set.
func (m *SetMatcher) Match(value int) bool {
	return value >= 0 && value < len(m.accepted) && m.accepted[value]
}

// NextAfter returns the smallest member >= value, or the smallest member
// overall when the set has no member at or above value.
func (m *SetMatcher) NextAfter(value int) int {
	if value > m.min {
		for value < len(m.accepted) {
			if m.accepted[value] {
				return value
			}
			value++
		}
	}
	return m.min
}

// MinValue returns the smallest member of the set.
func (m *SetMatcher) MinValue() int {
	return m.min
}

// DayOfMonthMatcher is a SetMatcher for the day-of-month field whose
// matching additionally depends on the month and on leap-year status,
// because the set may contain LastDayOfMonth.
type DayOfMonthMatcher struct {
	SetMatcher
}

// NewDayOfMonthMatcher builds a day-of-month matcher. In addition to days
// 1-31 the value set may contain LastDayOfMonth.
func NewDayOfMonthMatcher(values []int) (*DayOfMonthMatcher, error) {
	m, err := newSetMatcher(PartDayOfMonth, values, LastDayOfMonth)
	if err != nil {
		return nil, err
	}
	return &DayOfMonthMatcher{SetMatcher: *m}, nil
}

// MatchDay reports whether day satisfies the rule within the given month.
// A day matches either as a plain set member or, when the set contains
// LastDayOfMonth, by being the final day of that month.
func (m *DayOfMonthMatcher) MatchDay(day, month int, leapYear bool) bool {
	if m.SetMatcher.Match(day) {
		return true
	}
	// Only days 28-31 can be the last day of a month.
	return day > 27 && m.SetMatcher.Match(LastDayOfMonth) && day == lastDayOfMonth(month, leapYear)
}

// lastDayOfMonth returns the number of days in the 1-based month.
func lastDayOfMonth(month int, leapYear bool) int {
	switch month {
	case 2:
		if leapYear {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// isLeapYear reports whether the Gregorian year is a leap year.
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
