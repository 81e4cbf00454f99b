package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/watzon/chrono/internal/config"
)

var (
	fieldSecond  string
	fieldMinute  string
	fieldHour    string
	fieldDay     string
	fieldMonth   string
	fieldWeekday string
	fieldYear    string

	timezone     string
	scheduleFile string
	scheduleName string

	nextFrom  string
	nextCount int
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Compute upcoming schedule occurrences",
	Long: `Compute the next occurrences of a schedule, strictly after a
starting instant.

The schedule comes either from field flags or from a named entry in a
YAML schedule file.

Examples:
  chrono next --hour 9 --minute 0 --second 0
  chrono next --day L --count 6
  chrono next --file schedules.yaml --schedule payroll --count 3
  chrono next --month 2 --day 29 --from 2025-01-15T00:00:00Z`,
	RunE: runNext,
}

func init() {
	addScheduleFlags(nextCmd)
	nextCmd.Flags().StringVar(&nextFrom, "from", "", "starting instant, RFC3339 (default now)")
	nextCmd.Flags().IntVar(&nextCount, "count", 1, "number of occurrences to print")
	rootCmd.AddCommand(nextCmd)
}

// addScheduleFlags registers the per-field set flags shared by next and match.
func addScheduleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&fieldSecond, "second", "*", "second values (* or comma list)")
	cmd.Flags().StringVar(&fieldMinute, "minute", "*", "minute values (* or comma list)")
	cmd.Flags().StringVar(&fieldHour, "hour", "*", "hour values (* or comma list)")
	cmd.Flags().StringVar(&fieldDay, "day", "*", "day-of-month values (* or comma list, L for last day)")
	cmd.Flags().StringVar(&fieldMonth, "month", "*", "month values, 1-based (* or comma list)")
	cmd.Flags().StringVar(&fieldWeekday, "weekday", "*", "day-of-week values, 0 or 7 = Sunday (* or comma list)")
	cmd.Flags().StringVar(&fieldYear, "year", "*", "year values (* or comma list)")
	cmd.Flags().StringVar(&timezone, "tz", "", "timezone (default from config, else UTC)")
	cmd.Flags().StringVar(&scheduleFile, "file", "", "YAML schedule file")
	cmd.Flags().StringVar(&scheduleName, "schedule", "", "schedule name within --file")
}

// resolveSchedule builds the schedule spec from flags or the schedule file.
func resolveSchedule() (*config.ScheduleSpec, error) {
	if scheduleFile != "" {
		if scheduleName == "" {
			return nil, fmt.Errorf("--schedule is required with --file")
		}
		f, err := config.Load(scheduleFile)
		if err != nil {
			return nil, err
		}
		spec, err := f.Find(scheduleName)
		if err != nil {
			return nil, err
		}
		if timezone != "" {
			spec.Timezone = timezone
		}
		return spec, nil
	}

	tz := timezone
	if tz == "" {
		tz = viper.GetString("timezone")
	}

	return &config.ScheduleSpec{
		Timezone: tz,
		Second:   fieldSecond,
		Minute:   fieldMinute,
		Hour:     fieldHour,
		Day:      fieldDay,
		Month:    fieldMonth,
		Weekday:  fieldWeekday,
		Year:     fieldYear,
	}, nil
}

func runNext(cmd *cobra.Command, args []string) error {
	spec, err := resolveSchedule()
	if err != nil {
		return err
	}

	matcher, err := spec.Matcher()
	if err != nil {
		return fmt.Errorf("building schedule: %w", err)
	}

	loc, err := spec.Location()
	if err != nil {
		return err
	}

	from := time.Now().In(loc)
	if nextFrom != "" {
		from, err = time.Parse(time.RFC3339, nextFrom)
		if err != nil {
			return fmt.Errorf("parsing --from: %w", err)
		}
		from = from.In(loc)
	}

	log.Debug().
		Time("from", from).
		Str("timezone", loc.String()).
		Int("count", nextCount).
		Msg("Computing next occurrences")

	for i := 0; i < nextCount; i++ {
		next, err := matcher.Next(from)
		if err != nil {
			if i == 0 {
				return fmt.Errorf("no future occurrence: %w", err)
			}
			log.Debug().Int("found", i).Msg("Occurrences exhausted")
			break
		}
		fmt.Fprintln(cmd.OutOrStdout(), next.Format(time.RFC3339))
		from = next
	}

	return nil
}
