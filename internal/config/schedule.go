package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/watzon/chrono/pattern"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidField     = errors.New("invalid field expression")
)

// Wildcard matches every value of a field.
const Wildcard = "*"

// LastDay is the day-of-month token meaning "last day of the month".
const LastDay = "L"

// ScheduleFile is the YAML schedule definition file: a list of named
// schedules with pre-enumerated field value sets.
type ScheduleFile struct {
	Schedules []ScheduleSpec `yaml:"schedules"`
}

// ScheduleSpec describes one schedule. Each field is "*" or a comma-separated
// list of values; day additionally accepts "L". Zero-value fields default
// to "*".
type ScheduleSpec struct {
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
	Second   string `yaml:"second"`
	Minute   string `yaml:"minute"`
	Hour     string `yaml:"hour"`
	Day      string `yaml:"day"`
	Month    string `yaml:"month"`
	Weekday  string `yaml:"weekday"`
	Year     string `yaml:"year"`
}

// Load reads and parses a schedule file.
func Load(path string) (*ScheduleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule file: %w", err)
	}

	f := &ScheduleFile{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing schedule file: %w", err)
	}

	for i := range f.Schedules {
		if f.Schedules[i].Name == "" {
			return nil, fmt.Errorf("schedule %d: missing name", i)
		}
	}

	return f, nil
}

// Find returns the named schedule.
func (f *ScheduleFile) Find(name string) (*ScheduleSpec, error) {
	for i := range f.Schedules {
		if f.Schedules[i].Name == name {
			return &f.Schedules[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrScheduleNotFound, name)
}

// Location resolves the schedule's timezone, defaulting to UTC.
func (s *ScheduleSpec) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}
	return loc, nil
}

// Matcher builds the pattern matcher for the schedule.
func (s *ScheduleSpec) Matcher() (*pattern.Matcher, error) {
	second, err := FieldMatcher(pattern.PartSecond, s.Second)
	if err != nil {
		return nil, err
	}
	minute, err := FieldMatcher(pattern.PartMinute, s.Minute)
	if err != nil {
		return nil, err
	}
	hour, err := FieldMatcher(pattern.PartHour, s.Hour)
	if err != nil {
		return nil, err
	}
	day, err := FieldMatcher(pattern.PartDayOfMonth, s.Day)
	if err != nil {
		return nil, err
	}
	month, err := FieldMatcher(pattern.PartMonth, s.Month)
	if err != nil {
		return nil, err
	}
	weekday, err := FieldMatcher(pattern.PartDayOfWeek, s.Weekday)
	if err != nil {
		return nil, err
	}
	year, err := FieldMatcher(pattern.PartYear, s.Year)
	if err != nil {
		return nil, err
	}

	return pattern.NewMatcher(second, minute, hour, day, month, weekday, year)
}

// FieldMatcher translates a field expression into a part matcher. The
// expression is "*" (or empty) for always-match, otherwise a comma-separated
// value list. The day-of-month field accepts "L" as a list entry.
func FieldMatcher(part pattern.Part, expr string) (pattern.PartMatcher, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || expr == Wildcard {
		return pattern.AlwaysMatcher{}, nil
	}

	var values []int
	for _, item := range strings.Split(expr, ",") {
		item = strings.TrimSpace(item)
		if part == pattern.PartDayOfMonth && strings.EqualFold(item, LastDay) {
			values = append(values, pattern.LastDayOfMonth)
			continue
		}
		v, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("%w: %s value %q", ErrInvalidField, part, item)
		}
		values = append(values, v)
	}

	if part == pattern.PartDayOfMonth {
		m, err := pattern.NewDayOfMonthMatcher(values)
		if err != nil {
			return nil, fmt.Errorf("%s field: %w", part, err)
		}
		return m, nil
	}

	m, err := pattern.NewSetMatcher(part, values)
	if err != nil {
		return nil, fmt.Errorf("%s field: %w", part, err)
	}
	return m, nil
}
