package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetMatcher_NextAfter(t *testing.T) {
	m, err := NewSetMatcher(PartMinute, []int{5, 10, 15})
	require.NoError(t, err)

	tests := []struct {
		name  string
		value int
		want  int
	}{
		{name: "below smallest member", value: 0, want: 5},
		{name: "exact member", value: 10, want: 10},
		{name: "between members", value: 11, want: 15},
		{name: "wraps past largest member", value: 20, want: 5},
		{name: "at smallest member", value: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, m.NextAfter(tt.value))
		})
	}
}

func TestSetMatcher_Match(t *testing.T) {
	m, err := NewSetMatcher(PartHour, []int{9, 17})
	require.NoError(t, err)

	require.True(t, m.Match(9))
	require.True(t, m.Match(17))
	require.False(t, m.Match(8))
	require.False(t, m.Match(23))
	require.False(t, m.Match(-1))
	require.Equal(t, 9, m.MinValue())
}

func TestSetMatcher_ConstructionErrors(t *testing.T) {
	_, err := NewSetMatcher(PartMinute, nil)
	require.ErrorIs(t, err, ErrEmptySet)

	_, err = NewSetMatcher(PartMinute, []int{60})
	require.ErrorIs(t, err, ErrValueOutOfRange)

	_, err = NewSetMatcher(PartHour, []int{-1})
	require.ErrorIs(t, err, ErrValueOutOfRange)

	_, err = NewSetMatcher(PartMonth, []int{0})
	require.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestSetMatcher_DayOfWeekSundayAlias(t *testing.T) {
	// 0 and 7 both mean Sunday; 7 is normalized on construction.
	m, err := NewSetMatcher(PartDayOfWeek, []int{7})
	require.NoError(t, err)

	require.True(t, m.Match(0))
	require.Equal(t, 0, m.MinValue())
}

func TestAlwaysMatcher(t *testing.T) {
	m := AlwaysMatcher{}
	require.True(t, m.Match(0))
	require.True(t, m.Match(59))
	require.Equal(t, 17, m.NextAfter(17))
}

func TestDayOfMonthMatcher_LastDay(t *testing.T) {
	m, err := NewDayOfMonthMatcher([]int{LastDayOfMonth})
	require.NoError(t, err)

	tests := []struct {
		name     string
		day      int
		month    int
		leapYear bool
		want     bool
	}{
		{name: "january 31st", day: 31, month: 1, want: true},
		{name: "january 30th", day: 30, month: 1, want: false},
		{name: "april 30th", day: 30, month: 4, want: true},
		{name: "april 31st", day: 31, month: 4, want: false},
		{name: "february 28th common year", day: 28, month: 2, want: true},
		{name: "february 28th leap year", day: 28, month: 2, leapYear: true, want: false},
		{name: "february 29th leap year", day: 29, month: 2, leapYear: true, want: true},
		{name: "february 29th common year", day: 29, month: 2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, m.MatchDay(tt.day, tt.month, tt.leapYear))
		})
	}
}

func TestDayOfMonthMatcher_PlainDays(t *testing.T) {
	m, err := NewDayOfMonthMatcher([]int{1, 15})
	require.NoError(t, err)

	require.True(t, m.MatchDay(15, 6, false))
	require.False(t, m.MatchDay(30, 6, false))
	// Without the last-day sentinel, the final day of a month is no
	// different from any other day.
	require.False(t, m.MatchDay(30, 4, false))
}

func TestIsLeapYear(t *testing.T) {
	require.True(t, isLeapYear(2024))
	require.True(t, isLeapYear(2000))
	require.False(t, isLeapYear(2025))
	require.False(t, isLeapYear(1900))
}

func TestLastDayOfMonth(t *testing.T) {
	require.Equal(t, 31, lastDayOfMonth(1, false))
	require.Equal(t, 28, lastDayOfMonth(2, false))
	require.Equal(t, 29, lastDayOfMonth(2, true))
	require.Equal(t, 30, lastDayOfMonth(4, false))
	require.Equal(t, 30, lastDayOfMonth(11, false))
	require.Equal(t, 31, lastDayOfMonth(12, true))
}
