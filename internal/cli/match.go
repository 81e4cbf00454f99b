package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/watzon/chrono/pattern"
)

var (
	matchAt      string
	ignoreSecond bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Check whether an instant satisfies a schedule",
	Long: `Check whether a specific instant satisfies the schedule. Prints
"match" or "no match" and exits 0 or 1 accordingly.

Examples:
  chrono match --weekday 1 --hour 9 --at 2026-09-07T09:00:00Z
  chrono match --day L --at 2026-02-28T00:00:00Z --ignore-second`,
	RunE: runMatch,
}

func init() {
	addScheduleFlags(matchCmd)
	matchCmd.Flags().StringVar(&matchAt, "at", "", "instant to check, RFC3339 (required)")
	matchCmd.Flags().BoolVar(&ignoreSecond, "ignore-second", false, "skip the seconds field check")
	_ = matchCmd.MarkFlagRequired("at")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
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

	at, err := time.Parse(time.RFC3339, matchAt)
	if err != nil {
		return fmt.Errorf("parsing --at: %w", err)
	}
	at = at.In(loc)

	v := pattern.FieldsOf(at)
	log.Debug().
		Time("at", at).
		Ints("fields", v[:]).
		Msg("Checking instant")

	if matcher.MatchTime(at, !ignoreSecond) {
		fmt.Fprintln(cmd.OutOrStdout(), "match")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "no match")
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("no match")
}
